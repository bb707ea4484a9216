package models

import (
	"time"
)

// Sponsor represents a sponsor organisation
type Sponsor struct {
	ID        int       `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Website   string    `json:"website" db:"website"`
	ImageID   *int      `json:"image_id,omitempty" db:"image_id"`
	Amount    int       `json:"amount" db:"amount"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`

	// Joined fields
	ImageURL string `json:"image_url,omitempty" db:"image_url"`
	TierName string `json:"tier_name,omitempty" db:"tier_name"`
}

// SponsorTier represents a sponsorship level keyed by a minimum
// contribution threshold. Tiers are totally ordered by LowerThreshold;
// a sponsor belongs to the highest tier whose threshold its amount meets.
type SponsorTier struct {
	ID             int    `json:"id" db:"id"`
	Name           string `json:"name" db:"name"`
	LowerThreshold int    `json:"lower_threshold" db:"lower_threshold"`
	ImageWidth     int    `json:"image_width" db:"image_width"`
	ImageHeight    int    `json:"image_height" db:"image_height"`
}

// EventSponsor binds a sponsor to an event with a tier. The tier is
// per-event-binding, not global to the sponsor. TierID is nil only when
// no tiers exist at all.
type EventSponsor struct {
	ID        int  `json:"id" db:"id"`
	EventID   int  `json:"event_id" db:"event_id"`
	SponsorID int  `json:"sponsor_id" db:"sponsor_id"`
	TierID    *int `json:"tier_id,omitempty" db:"tier_id"`

	// Joined field used by tier reassignment
	SponsorAmount int `json:"sponsor_amount,omitempty" db:"sponsor_amount"`
}

// TierReassignment is a computed new tier for one event-sponsor binding.
// NewTierID is nil when no tiers remain to assign.
type TierReassignment struct {
	BindingID int
	NewTierID *int
}

// SponsorForm represents form data for creating/updating sponsors
type SponsorForm struct {
	Name    string `json:"name"`
	Website string `json:"website"`
	ImageID *int   `json:"image_id"`
	Amount  int    `json:"amount"`
	EventID int    `json:"event_id"`
	TierID  int    `json:"tier_id"`
}

// Validate validates the sponsor form data
func (f *SponsorForm) Validate() []string {
	var errors []string

	if f.Name == "" {
		errors = append(errors, "Sponsor name is required")
	}
	if f.Website != "" && !isValidURL(f.Website) {
		errors = append(errors, "Website must be a valid URL")
	}
	if f.Amount < 0 {
		errors = append(errors, "Amount must not be negative")
	}

	return errors
}

// TierForm represents form data for creating/updating sponsor tiers
type TierForm struct {
	Name           string `json:"name"`
	LowerThreshold int    `json:"lower_threshold"`
	ImageWidth     int    `json:"image_width"`
	ImageHeight    int    `json:"image_height"`
}

// Validate validates the tier form data
func (f *TierForm) Validate() []string {
	var errors []string

	if f.Name == "" {
		errors = append(errors, "Tier name is required")
	}
	if f.LowerThreshold < 0 {
		errors = append(errors, "Lower threshold must not be negative")
	}
	if f.ImageWidth < 0 || f.ImageHeight < 0 {
		errors = append(errors, "Image dimensions must not be negative")
	}

	return errors
}
