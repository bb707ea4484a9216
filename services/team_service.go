package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/hackvent/hackvent-backend/models"
	"github.com/hackvent/hackvent-backend/repositories"
)

// TeamService interface defines team business logic
type TeamService interface {
	GetTeamsByEvent(ctx context.Context, eventID int) ([]models.Team, error)
	GetTeamByID(ctx context.Context, id int) (*models.Team, error)
	GetTeamMembers(ctx context.Context, teamID int) ([]models.EventParticipant, error)
	CreateTeam(ctx context.Context, form *models.TeamForm) (*models.Team, error)
	UpdateTeam(ctx context.Context, id int, form *models.TeamForm) (*models.Team, error)
	DeleteTeam(ctx context.Context, id int) error
	AddMember(ctx context.Context, teamID, userID int) error
	RemoveMember(ctx context.Context, teamID, userID int) error
}

// teamService implements TeamService interface
type teamService struct {
	teamRepo        repositories.TeamRepository
	eventRepo       repositories.EventRepository
	participantRepo repositories.ParticipantRepository
}

// NewTeamService creates a new team service
func NewTeamService(teamRepo repositories.TeamRepository, eventRepo repositories.EventRepository, participantRepo repositories.ParticipantRepository) TeamService {
	return &teamService{
		teamRepo:        teamRepo,
		eventRepo:       eventRepo,
		participantRepo: participantRepo,
	}
}

// GetTeamsByEvent retrieves all teams for an event
func (s *teamService) GetTeamsByEvent(ctx context.Context, eventID int) ([]models.Team, error) {
	if eventID <= 0 {
		return nil, fmt.Errorf("invalid event ID: %d", eventID)
	}
	return s.teamRepo.GetByEvent(ctx, eventID)
}

// GetTeamByID retrieves a team by ID
func (s *teamService) GetTeamByID(ctx context.Context, id int) (*models.Team, error) {
	if id <= 0 {
		return nil, fmt.Errorf("invalid team ID: %d", id)
	}
	return s.teamRepo.GetByID(ctx, id)
}

// GetTeamMembers retrieves all participants assigned to a team
func (s *teamService) GetTeamMembers(ctx context.Context, teamID int) ([]models.EventParticipant, error) {
	if teamID <= 0 {
		return nil, fmt.Errorf("invalid team ID: %d", teamID)
	}
	return s.participantRepo.GetByTeam(ctx, teamID)
}

// CreateTeam creates a new team and assigns any listed participants to it
func (s *teamService) CreateTeam(ctx context.Context, form *models.TeamForm) (*models.Team, error) {
	if errors := form.Validate(); len(errors) > 0 {
		return nil, fmt.Errorf("validation failed: %s", strings.Join(errors, ", "))
	}

	if _, err := s.eventRepo.GetByID(ctx, form.EventID); err != nil {
		return nil, fmt.Errorf("event not found: %w", err)
	}

	team := &models.Team{
		EventID:            form.EventID,
		Name:               strings.TrimSpace(form.Name),
		ProjectName:        strings.TrimSpace(form.ProjectName),
		ProjectDescription: strings.TrimSpace(form.ProjectDescription),
		PresentationLink:   strings.TrimSpace(form.PresentationLink),
		GithubLink:         strings.TrimSpace(form.GithubLink),
	}

	if err := s.teamRepo.Create(ctx, team); err != nil {
		return nil, fmt.Errorf("failed to create team: %w", err)
	}

	for _, userID := range form.ParticipantIDs {
		if err := s.participantRepo.AssignToTeam(ctx, userID, team.EventID, &team.ID); err != nil {
			return nil, fmt.Errorf("failed to assign user %d to team: %w", userID, err)
		}
	}

	return team, nil
}

// UpdateTeam updates an existing team
func (s *teamService) UpdateTeam(ctx context.Context, id int, form *models.TeamForm) (*models.Team, error) {
	if id <= 0 {
		return nil, fmt.Errorf("invalid team ID: %d", id)
	}
	if errors := form.Validate(); len(errors) > 0 {
		return nil, fmt.Errorf("validation failed: %s", strings.Join(errors, ", "))
	}

	team, err := s.teamRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("team not found: %w", err)
	}

	team.Name = strings.TrimSpace(form.Name)
	team.ProjectName = strings.TrimSpace(form.ProjectName)
	team.ProjectDescription = strings.TrimSpace(form.ProjectDescription)
	team.PresentationLink = strings.TrimSpace(form.PresentationLink)
	team.GithubLink = strings.TrimSpace(form.GithubLink)

	if err := s.teamRepo.Update(ctx, team); err != nil {
		return nil, fmt.Errorf("failed to update team: %w", err)
	}
	return team, nil
}

// DeleteTeam deletes a team. Members keep their event registration,
// the team reference is cleared by the schema.
func (s *teamService) DeleteTeam(ctx context.Context, id int) error {
	if id <= 0 {
		return fmt.Errorf("invalid team ID: %d", id)
	}
	return s.teamRepo.Delete(ctx, id)
}

// AddMember assigns a registered participant to a team
func (s *teamService) AddMember(ctx context.Context, teamID, userID int) error {
	team, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		return fmt.Errorf("team not found: %w", err)
	}
	return s.participantRepo.AssignToTeam(ctx, userID, team.EventID, &team.ID)
}

// RemoveMember clears a participant's team assignment
func (s *teamService) RemoveMember(ctx context.Context, teamID, userID int) error {
	team, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		return fmt.Errorf("team not found: %w", err)
	}
	return s.participantRepo.AssignToTeam(ctx, userID, team.EventID, nil)
}
