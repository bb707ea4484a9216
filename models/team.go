package models

import (
	"time"
)

// Team represents a project team within an event
type Team struct {
	ID                 int       `json:"id" db:"id"`
	EventID            int       `json:"event_id" db:"event_id"`
	Name               string    `json:"name" db:"name"`
	ProjectName        string    `json:"project_name,omitempty" db:"project_name"`
	ProjectDescription string    `json:"project_description,omitempty" db:"project_description"`
	PresentationLink   string    `json:"presentation_link,omitempty" db:"presentation_link"`
	GithubLink         string    `json:"github_link,omitempty" db:"github_link"`
	CreatedAt          time.Time `json:"created_at" db:"created_at"`
	UpdatedAt          time.Time `json:"updated_at" db:"updated_at"`
}

// TeamForm represents form data for creating/updating teams
type TeamForm struct {
	EventID            int    `json:"event_id"`
	Name               string `json:"name"`
	ProjectName        string `json:"project_name"`
	ProjectDescription string `json:"project_description"`
	PresentationLink   string `json:"presentation_link"`
	GithubLink         string `json:"github_link"`

	// Participants to assign to the team on creation
	ParticipantIDs []int `json:"participant_ids"`
}

// Validate validates the team form data
func (f *TeamForm) Validate() []string {
	var errors []string

	if f.EventID <= 0 {
		errors = append(errors, "Event is required")
	}
	if f.Name == "" {
		errors = append(errors, "Team name is required")
	}
	if len(f.Name) > 100 {
		errors = append(errors, "Team name must be less than 100 characters")
	}
	if f.PresentationLink != "" && !isValidURL(f.PresentationLink) {
		errors = append(errors, "Presentation link must be a valid URL")
	}
	if f.GithubLink != "" && !isValidURL(f.GithubLink) {
		errors = append(errors, "GitHub link must be a valid URL")
	}

	return errors
}
