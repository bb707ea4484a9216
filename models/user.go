package models

import (
	"strings"
	"time"
)

// User roles
const (
	RoleParticipant = "participant"
	RoleStaff       = "staff"
	RoleAdmin       = "admin"
)

// User represents a registered hackathon user
type User struct {
	ID                  int       `json:"id" db:"id"`
	FirstName           string    `json:"first_name" db:"first_name"`
	LastName            string    `json:"last_name" db:"last_name"`
	Email               string    `json:"email" db:"email"`
	Password            string    `json:"-" db:"password"`
	Role                string    `json:"role" db:"role"`
	PhoneNumber         string    `json:"phone_number" db:"phone_number"`
	Age                 int       `json:"age" db:"age"`
	Country             string    `json:"country" db:"country"`
	School              string    `json:"school" db:"school"`
	TShirtSize          string    `json:"t_shirt_size" db:"t_shirt_size"`
	DietaryRestrictions string    `json:"dietary_restrictions,omitempty" db:"dietary_restrictions"`
	CheckedIn           bool      `json:"checked_in" db:"checked_in"`
	Banned              bool      `json:"banned" db:"banned"`
	CreatedAt           time.Time `json:"created_at" db:"created_at"`
	UpdatedAt           time.Time `json:"updated_at" db:"updated_at"`
}

// FullName returns the user's display name
func (u *User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// RegisterForm represents registration request data
type RegisterForm struct {
	FirstName           string `json:"first_name"`
	LastName            string `json:"last_name"`
	Email               string `json:"email"`
	Password            string `json:"password"`
	PhoneNumber         string `json:"phone_number"`
	Age                 int    `json:"age"`
	Country             string `json:"country"`
	School              string `json:"school"`
	TShirtSize          string `json:"t_shirt_size"`
	DietaryRestrictions string `json:"dietary_restrictions"`
	EventID             int    `json:"event_id"`
}

// Validate validates the registration form data
func (f *RegisterForm) Validate() []string {
	var errors []string

	if f.FirstName == "" {
		errors = append(errors, "First name is required")
	}
	if f.LastName == "" {
		errors = append(errors, "Last name is required")
	}
	if f.Email == "" || !isValidEmail(f.Email) {
		errors = append(errors, "A valid email is required")
	}
	if len(f.Password) < 8 {
		errors = append(errors, "Password must be at least 8 characters")
	}
	if f.Age < 13 {
		errors = append(errors, "Participants must be at least 13 years old")
	}
	if f.EventID <= 0 {
		errors = append(errors, "Event is required")
	}

	return errors
}

// LoginForm represents login request data
type LoginForm struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate validates the login form data
func (f *LoginForm) Validate() []string {
	var errors []string

	if f.Email == "" {
		errors = append(errors, "Email is required")
	}
	if f.Password == "" {
		errors = append(errors, "Password is required")
	}

	return errors
}

// UserUpdateForm represents staff-editable user fields
type UserUpdateForm struct {
	FirstName           *string `json:"first_name"`
	LastName            *string `json:"last_name"`
	PhoneNumber         *string `json:"phone_number"`
	Country             *string `json:"country"`
	School              *string `json:"school"`
	TShirtSize          *string `json:"t_shirt_size"`
	DietaryRestrictions *string `json:"dietary_restrictions"`
	CheckedIn           *bool   `json:"checked_in"`
	Banned              *bool   `json:"banned"`
	Role                *string `json:"role"`
}

// Validate validates the update form data
func (f *UserUpdateForm) Validate() []string {
	var errors []string

	if f.FirstName != nil && *f.FirstName == "" {
		errors = append(errors, "First name cannot be empty")
	}
	if f.LastName != nil && *f.LastName == "" {
		errors = append(errors, "Last name cannot be empty")
	}
	if f.Role != nil {
		switch *f.Role {
		case RoleParticipant, RoleStaff, RoleAdmin:
		default:
			errors = append(errors, "Role must be participant, staff or admin")
		}
	}

	return errors
}
