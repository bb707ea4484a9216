package models

import (
	"testing"
)

// Test RegisterForm validation
func TestRegisterFormValidation(t *testing.T) {
	validForm := RegisterForm{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     "ada@example.com",
		Password:  "correcthorse",
		Age:       27,
		EventID:   1,
	}
	errors := validForm.Validate()
	if len(errors) != 0 {
		t.Errorf("Expected no errors for valid form, got: %v", errors)
	}

	invalidForm := RegisterForm{
		FirstName: "",
		LastName:  "",
		Email:     "not-an-email",
		Password:  "short",
		Age:       10,
		EventID:   0,
	}
	errors = invalidForm.Validate()
	if len(errors) != 6 {
		t.Errorf("Expected 6 errors for invalid form, got: %v", errors)
	}
}

// Test UserUpdateForm validation
func TestUserUpdateFormValidation(t *testing.T) {
	empty := ""
	badRole := "superuser"
	invalidForm := UserUpdateForm{
		FirstName: &empty,
		Role:      &badRole,
	}
	errors := invalidForm.Validate()
	if len(errors) != 2 {
		t.Errorf("Expected 2 errors for invalid form, got: %v", errors)
	}

	staff := RoleStaff
	validForm := UserUpdateForm{Role: &staff}
	errors = validForm.Validate()
	if len(errors) != 0 {
		t.Errorf("Expected no errors for valid form, got: %v", errors)
	}
}

// Test EventForm validation
func TestEventFormValidation(t *testing.T) {
	validForm := EventForm{
		Name:      "HackVent 2026",
		StartDate: "2026-03-14",
		EndDate:   "2026-03-16",
	}
	errors := validForm.Validate()
	if len(errors) != 0 {
		t.Errorf("Expected no errors for valid form, got: %v", errors)
	}

	// End before start
	backwards := EventForm{
		Name:      "HackVent 2026",
		StartDate: "2026-03-16",
		EndDate:   "2026-03-14",
	}
	errors = backwards.Validate()
	if len(errors) != 1 {
		t.Errorf("Expected 1 error for backwards dates, got: %v", errors)
	}

	invalidForm := EventForm{
		Name:      "",
		StartDate: "14-03-2026",
		EndDate:   "soon",
	}
	errors = invalidForm.Validate()
	if len(errors) != 3 {
		t.Errorf("Expected 3 errors for invalid form, got: %v", errors)
	}
}

// Test TeamForm validation
func TestTeamFormValidation(t *testing.T) {
	validForm := TeamForm{
		EventID:    1,
		Name:       "Bitwranglers",
		GithubLink: "https://github.com/bitwranglers/project",
	}
	errors := validForm.Validate()
	if len(errors) != 0 {
		t.Errorf("Expected no errors for valid form, got: %v", errors)
	}

	invalidForm := TeamForm{
		EventID:          0,
		Name:             "",
		PresentationLink: "not a url",
	}
	errors = invalidForm.Validate()
	if len(errors) != 3 {
		t.Errorf("Expected 3 errors for invalid form, got: %v", errors)
	}
}

// Test SponsorForm and TierForm validation
func TestSponsorFormValidation(t *testing.T) {
	validForm := SponsorForm{
		Name:    "Big Corp",
		Website: "https://bigcorp.example.com",
		Amount:  25000,
	}
	errors := validForm.Validate()
	if len(errors) != 0 {
		t.Errorf("Expected no errors for valid form, got: %v", errors)
	}

	invalidForm := SponsorForm{
		Name:    "",
		Website: "ftp://old.example.com",
		Amount:  -1,
	}
	errors = invalidForm.Validate()
	if len(errors) != 3 {
		t.Errorf("Expected 3 errors for invalid form, got: %v", errors)
	}

	invalidTier := TierForm{Name: "", LowerThreshold: -5}
	errors = invalidTier.Validate()
	if len(errors) != 2 {
		t.Errorf("Expected 2 errors for invalid tier form, got: %v", errors)
	}
}

// Test email validation helper
func TestEmailValidation(t *testing.T) {
	validEmails := []string{"a@b.co", "ada.lovelace@example.com", "x+y@sub.domain.org"}
	for _, email := range validEmails {
		if !isValidEmail(email) {
			t.Errorf("Expected %s to be valid email", email)
		}
	}

	invalidEmails := []string{"", "no-at.com", "@start.com", "end@", "two@@ats.com", "nodot@domain"}
	for _, email := range invalidEmails {
		if isValidEmail(email) {
			t.Errorf("Expected %s to be invalid email", email)
		}
	}
}

// Test URL validation helper
func TestURLValidation(t *testing.T) {
	validURLs := []string{"http://example.com", "https://example.com/path?x=1"}
	for _, raw := range validURLs {
		if !isValidURL(raw) {
			t.Errorf("Expected %s to be valid URL", raw)
		}
	}

	invalidURLs := []string{"", "example.com", "ftp://example.com", "https://"}
	for _, raw := range invalidURLs {
		if isValidURL(raw) {
			t.Errorf("Expected %s to be invalid URL", raw)
		}
	}
}

// Test the family slug derivation
func TestFamilySlug(t *testing.T) {
	tests := map[string]string{
		"Raspberry Pi":     "raspberry-pi",
		"Intel RealSense":  "intel-realsense",
		"Multimeter":       "multimeter",
		"  Spaced   Out  ": "spaced-out",
	}
	for title, want := range tests {
		if got := FamilySlug(title); got != want {
			t.Errorf("FamilySlug(%q) = %q, want %q", title, got, want)
		}
	}
}
