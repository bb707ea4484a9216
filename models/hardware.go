package models

import (
	"strings"
	"time"
)

// HardwareItem represents a single lendable inventory item. A non-nil
// HolderID means the item is currently checked out.
type HardwareItem struct {
	ID           int       `json:"id" db:"id"`
	Name         string    `json:"name" db:"name"`
	SerialNumber string    `json:"serial_number" db:"serial_number"`
	Description  string    `json:"description,omitempty" db:"description"`
	Functional   bool      `json:"functional" db:"functional"`
	HolderID     *int      `json:"holder_id,omitempty" db:"holder_id"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`

	// Image URLs in insertion order, populated from hardware_images
	ImageURLs []string `json:"image_urls,omitempty" db:"-"`
}

// HardwareImage represents an image attached to a hardware item
type HardwareImage struct {
	ID         int    `json:"id" db:"id"`
	HardwareID int    `json:"hardware_id" db:"hardware_id"`
	ImageURL   string `json:"image_url" db:"image_url"`
}

// HardwareFamily is a display grouping of hardware items sharing a
// detected common name prefix. Derived on every catalog read, never
// persisted; FamilyID is only stable within a single call.
type HardwareFamily struct {
	FamilyID string               `json:"id"`
	Title    string               `json:"title"`
	Items    []HardwareFamilyItem `json:"items"`
}

// HardwareFamilyItem is a single catalog entry within a family
type HardwareFamilyItem struct {
	FullName      string  `json:"full_name"`
	Name          string  `json:"name"`
	Subtitle      string  `json:"subtitle"`
	Description   string  `json:"description"`
	Image         *string `json:"image"`
	IsUnavailable bool    `json:"is_unavailable"`
}

// FamilySlug converts a family title into its identifier: lowercase
// with whitespace runs collapsed to single hyphens.
func FamilySlug(title string) string {
	return strings.ToLower(strings.Join(strings.Fields(title), "-"))
}

// HardwareAvailability is the slim availability listing (name and
// serial only) exposed to lending volunteers.
type HardwareAvailability struct {
	Name         string `json:"name"`
	SerialNumber string `json:"serial_number"`
}

// HardwareForm represents form data for creating/updating hardware
type HardwareForm struct {
	Name         string `json:"name"`
	SerialNumber string `json:"serial_number"`
	Description  string `json:"description"`
	Functional   bool   `json:"functional"`
}

// Validate validates the hardware form data
func (f *HardwareForm) Validate() []string {
	var errors []string

	if normalizeSpace(f.Name) == "" {
		errors = append(errors, "Hardware name is required")
	}
	if len(f.Name) > 100 {
		errors = append(errors, "Hardware name must be less than 100 characters")
	}
	if f.SerialNumber == "" {
		errors = append(errors, "Serial number is required")
	}

	return errors
}

// HardwareImageForm represents form data for attaching an image
type HardwareImageForm struct {
	ImageURL string `json:"image_url"`
}

// Validate validates the hardware image form data
func (f *HardwareImageForm) Validate() []string {
	var errors []string

	if !isValidURL(f.ImageURL) {
		errors = append(errors, "Image URL must be a valid URL")
	}

	return errors
}
