package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/hackvent/hackvent-backend/models"
)

// TeamRepository interface defines team database operations
type TeamRepository interface {
	GetByEvent(ctx context.Context, eventID int) ([]models.Team, error)
	GetByID(ctx context.Context, id int) (*models.Team, error)
	Create(ctx context.Context, team *models.Team) error
	Update(ctx context.Context, team *models.Team) error
	Delete(ctx context.Context, id int) error
}

// teamRepository implements TeamRepository interface
type teamRepository struct {
	db    *sql.DB
	hooks *EntityHooks
}

// NewTeamRepository creates a new team repository
func NewTeamRepository(db *sql.DB, registry *HookRegistry) TeamRepository {
	r := &teamRepository{db: db}
	r.hooks = registry.Register(EntityTeams, func(ctx context.Context, id int) (any, error) {
		return r.GetByID(ctx, id)
	})
	return r
}

const teamColumns = `id, event_id, name, project_name, project_description,
	       presentation_link, github_link, created_at, updated_at`

func scanTeam(scan func(dest ...any) error) (*models.Team, error) {
	var team models.Team
	err := scan(
		&team.ID,
		&team.EventID,
		&team.Name,
		&team.ProjectName,
		&team.ProjectDescription,
		&team.PresentationLink,
		&team.GithubLink,
		&team.CreatedAt,
		&team.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &team, nil
}

// GetByEvent retrieves all teams for an event
func (r *teamRepository) GetByEvent(ctx context.Context, eventID int) ([]models.Team, error) {
	query := `SELECT ` + teamColumns + ` FROM teams WHERE event_id = ? ORDER BY name ASC`

	rows, err := r.db.QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to query teams: %w", err)
	}
	defer rows.Close()

	var teams []models.Team
	for rows.Next() {
		team, err := scanTeam(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan team: %w", err)
		}
		teams = append(teams, *team)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating teams: %w", err)
	}

	return teams, nil
}

// GetByID retrieves a team by ID
func (r *teamRepository) GetByID(ctx context.Context, id int) (*models.Team, error) {
	query := `SELECT ` + teamColumns + ` FROM teams WHERE id = ?`

	team, err := scanTeam(r.db.QueryRowContext(ctx, query, id).Scan)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("team with ID %d not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get team: %w", err)
	}

	return team, nil
}

// Create creates a new team
func (r *teamRepository) Create(ctx context.Context, team *models.Team) error {
	query := `
		INSERT INTO teams (event_id, name, project_name, project_description,
		                   presentation_link, github_link, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	now := time.Now()
	result, err := r.db.ExecContext(ctx, query,
		team.EventID,
		team.Name,
		team.ProjectName,
		team.ProjectDescription,
		team.PresentationLink,
		team.GithubLink,
		now,
		now,
	)
	if err != nil {
		return fmt.Errorf("failed to create team: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get inserted ID: %w", err)
	}

	team.ID = int(id)
	team.CreatedAt = now
	team.UpdatedAt = now
	r.hooks.FireAfterCreate(ctx, team.ID, team)
	return nil
}

// Update updates an existing team
func (r *teamRepository) Update(ctx context.Context, team *models.Team) error {
	query := `
		UPDATE teams
		SET name = ?, project_name = ?, project_description = ?,
		    presentation_link = ?, github_link = ?, updated_at = ?
		WHERE id = ?
	`

	now := time.Now()
	r.hooks.FireBeforeUpdate(ctx, team.ID, team)

	result, err := r.db.ExecContext(ctx, query,
		team.Name,
		team.ProjectName,
		team.ProjectDescription,
		team.PresentationLink,
		team.GithubLink,
		now,
		team.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update team: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("team with ID %d not found", team.ID)
	}

	team.UpdatedAt = now
	return nil
}

// Delete deletes a team by ID
func (r *teamRepository) Delete(ctx context.Context, id int) error {
	team, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}

	r.hooks.FireBeforeDelete(ctx, id, team)

	result, err := r.db.ExecContext(ctx, `DELETE FROM teams WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete team: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("team with ID %d not found", id)
	}

	return nil
}
