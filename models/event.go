package models

import (
	"time"
)

// Event represents a single hackathon event
type Event struct {
	ID        int       `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	StartDate time.Time `json:"start_date" db:"start_date"`
	EndDate   time.Time `json:"end_date" db:"end_date"`
	CanChange bool      `json:"can_change" db:"can_change"`
	IsActive  bool      `json:"is_active" db:"is_active"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// EventForm represents form data for creating/updating events
type EventForm struct {
	Name      string `json:"name"`
	StartDate string `json:"start_date"` // "2026-03-14" format
	EndDate   string `json:"end_date"`
	CanChange bool   `json:"can_change"`
	IsActive  bool   `json:"is_active"`
}

// Validate validates the event form data
func (f *EventForm) Validate() []string {
	var errors []string

	if f.Name == "" {
		errors = append(errors, "Event name is required")
	}
	if len(f.Name) > 100 {
		errors = append(errors, "Event name must be less than 100 characters")
	}

	start, startErr := ParseDate(f.StartDate)
	if startErr != nil {
		errors = append(errors, "Start date must be in YYYY-MM-DD format")
	}
	end, endErr := ParseDate(f.EndDate)
	if endErr != nil {
		errors = append(errors, "End date must be in YYYY-MM-DD format")
	}
	if startErr == nil && endErr == nil && end.Before(start) {
		errors = append(errors, "End date must not be before start date")
	}

	return errors
}

// EventParticipant represents a user's registration in an event,
// optionally assigned to a team
type EventParticipant struct {
	ID      int  `json:"id" db:"id"`
	EventID int  `json:"event_id" db:"event_id"`
	UserID  int  `json:"user_id" db:"user_id"`
	TeamID  *int `json:"team_id,omitempty" db:"team_id"`

	// Joined fields (populated from joins with the users table)
	FirstName string `json:"first_name,omitempty" db:"first_name"`
	LastName  string `json:"last_name,omitempty" db:"last_name"`
	Email     string `json:"email,omitempty" db:"email"`
}
