package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/hackvent/hackvent-backend/auth"
	"github.com/hackvent/hackvent-backend/models"
	"github.com/hackvent/hackvent-backend/repositories"
)

// TokenIssuer issues signed access tokens. Satisfied by *auth.Manager.
type TokenIssuer interface {
	Issue(userID int, role string) (string, error)
}

// UserService interface defines user account business logic
type UserService interface {
	Register(ctx context.Context, form *models.RegisterForm) (*models.User, string, error)
	Login(ctx context.Context, form *models.LoginForm) (*models.User, string, error)
	GetAllUsers(ctx context.Context) ([]models.User, error)
	GetUserByID(ctx context.Context, id int) (*models.User, error)
	UpdateUser(ctx context.Context, id int, form *models.UserUpdateForm) (*models.User, error)
	DeleteUser(ctx context.Context, id int) error
}

// userService implements UserService interface
type userService struct {
	userRepo        repositories.UserRepository
	eventRepo       repositories.EventRepository
	participantRepo repositories.ParticipantRepository
	tokens          TokenIssuer
}

// NewUserService creates a new user service
func NewUserService(userRepo repositories.UserRepository, eventRepo repositories.EventRepository, participantRepo repositories.ParticipantRepository, tokens TokenIssuer) UserService {
	return &userService{
		userRepo:        userRepo,
		eventRepo:       eventRepo,
		participantRepo: participantRepo,
		tokens:          tokens,
	}
}

// Register creates a user account, registers it to the given event and
// returns the user with a signed token. Sign-up always produces a
// participant account, regardless of what the caller sends.
func (s *userService) Register(ctx context.Context, form *models.RegisterForm) (*models.User, string, error) {
	if errors := form.Validate(); len(errors) > 0 {
		return nil, "", fmt.Errorf("validation failed: %s", strings.Join(errors, ", "))
	}

	banned, err := s.userRepo.IsBanned(ctx, form.FirstName, form.LastName, form.Email)
	if err != nil {
		return nil, "", fmt.Errorf("failed to check registration eligibility: %w", err)
	}
	if banned {
		return nil, "", fmt.Errorf("registration is not permitted for this account")
	}

	event, err := s.eventRepo.GetByID(ctx, form.EventID)
	if err != nil {
		return nil, "", fmt.Errorf("event not found: %w", err)
	}
	if !event.IsActive {
		return nil, "", fmt.Errorf("event %q is not open for registration", event.Name)
	}

	hash, err := auth.HashPassword(form.Password)
	if err != nil {
		return nil, "", fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		FirstName:           strings.TrimSpace(form.FirstName),
		LastName:            strings.TrimSpace(form.LastName),
		Email:               strings.ToLower(strings.TrimSpace(form.Email)),
		Password:            hash,
		Role:                models.RoleParticipant,
		PhoneNumber:         strings.TrimSpace(form.PhoneNumber),
		Age:                 form.Age,
		Country:             strings.TrimSpace(form.Country),
		School:              strings.TrimSpace(form.School),
		TShirtSize:          form.TShirtSize,
		DietaryRestrictions: strings.TrimSpace(form.DietaryRestrictions),
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, "", err
	}

	if _, err := s.participantRepo.Register(ctx, event.ID, user.ID); err != nil {
		return nil, "", fmt.Errorf("failed to register to event: %w", err)
	}

	token, err := s.tokens.Issue(user.ID, user.Role)
	if err != nil {
		return nil, "", fmt.Errorf("failed to issue token: %w", err)
	}

	return user, token, nil
}

// Login verifies credentials and returns the user with a signed token
func (s *userService) Login(ctx context.Context, form *models.LoginForm) (*models.User, string, error) {
	if errors := form.Validate(); len(errors) > 0 {
		return nil, "", fmt.Errorf("validation failed: %s", strings.Join(errors, ", "))
	}

	user, err := s.userRepo.GetByEmail(ctx, form.Email)
	if err != nil {
		return nil, "", fmt.Errorf("invalid email or password")
	}
	if err := auth.CheckPassword(user.Password, form.Password); err != nil {
		return nil, "", fmt.Errorf("invalid email or password")
	}
	if user.Banned {
		return nil, "", fmt.Errorf("account is banned")
	}

	token, err := s.tokens.Issue(user.ID, user.Role)
	if err != nil {
		return nil, "", fmt.Errorf("failed to issue token: %w", err)
	}

	return user, token, nil
}

// GetAllUsers retrieves all users
func (s *userService) GetAllUsers(ctx context.Context) ([]models.User, error) {
	return s.userRepo.GetAll(ctx)
}

// GetUserByID retrieves a user by ID
func (s *userService) GetUserByID(ctx context.Context, id int) (*models.User, error) {
	if id <= 0 {
		return nil, fmt.Errorf("invalid user ID: %d", id)
	}
	return s.userRepo.GetByID(ctx, id)
}

// UpdateUser applies staff edits to a user account
func (s *userService) UpdateUser(ctx context.Context, id int, form *models.UserUpdateForm) (*models.User, error) {
	if id <= 0 {
		return nil, fmt.Errorf("invalid user ID: %d", id)
	}
	if errors := form.Validate(); len(errors) > 0 {
		return nil, fmt.Errorf("validation failed: %s", strings.Join(errors, ", "))
	}

	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if form.FirstName != nil {
		user.FirstName = strings.TrimSpace(*form.FirstName)
	}
	if form.LastName != nil {
		user.LastName = strings.TrimSpace(*form.LastName)
	}
	if form.PhoneNumber != nil {
		user.PhoneNumber = strings.TrimSpace(*form.PhoneNumber)
	}
	if form.Country != nil {
		user.Country = strings.TrimSpace(*form.Country)
	}
	if form.School != nil {
		user.School = strings.TrimSpace(*form.School)
	}
	if form.TShirtSize != nil {
		user.TShirtSize = *form.TShirtSize
	}
	if form.DietaryRestrictions != nil {
		user.DietaryRestrictions = strings.TrimSpace(*form.DietaryRestrictions)
	}
	if form.CheckedIn != nil {
		user.CheckedIn = *form.CheckedIn
	}
	if form.Banned != nil {
		user.Banned = *form.Banned
	}
	if form.Role != nil {
		user.Role = *form.Role
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// DeleteUser deletes a user account
func (s *userService) DeleteUser(ctx context.Context, id int) error {
	if id <= 0 {
		return fmt.Errorf("invalid user ID: %d", id)
	}
	return s.userRepo.Delete(ctx, id)
}
