package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/hackvent/hackvent-backend/models"
)

// ParticipantRepository defines event-participant database operations.
// The join entity is deliberately not registered for lifecycle hooks:
// routine team assignment would flood the audit log.
type ParticipantRepository interface {
	GetByEvent(ctx context.Context, eventID int) ([]models.EventParticipant, error)
	GetByTeam(ctx context.Context, teamID int) ([]models.EventParticipant, error)
	Register(ctx context.Context, eventID, userID int) (*models.EventParticipant, error)
	AssignToTeam(ctx context.Context, userID, eventID int, teamID *int) error
	Remove(ctx context.Context, eventID, userID int) error
}

// participantRepository implements ParticipantRepository interface
type participantRepository struct {
	db *sql.DB
}

// NewParticipantRepository creates a new participant repository
func NewParticipantRepository(db *sql.DB) ParticipantRepository {
	return &participantRepository{db: db}
}

const participantQuery = `
	SELECT ep.id, ep.event_id, ep.user_id, ep.team_id,
	       u.first_name, u.last_name, u.email
	FROM event_participants ep
	JOIN users u ON u.id = ep.user_id
`

func (r *participantRepository) queryParticipants(ctx context.Context, where string, args ...any) ([]models.EventParticipant, error) {
	rows, err := r.db.QueryContext(ctx, participantQuery+where, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query participants: %w", err)
	}
	defer rows.Close()

	var participants []models.EventParticipant
	for rows.Next() {
		var p models.EventParticipant
		err := rows.Scan(
			&p.ID,
			&p.EventID,
			&p.UserID,
			&p.TeamID,
			&p.FirstName,
			&p.LastName,
			&p.Email,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan participant: %w", err)
		}
		participants = append(participants, p)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating participants: %w", err)
	}

	return participants, nil
}

// GetByEvent retrieves all participants registered to an event
func (r *participantRepository) GetByEvent(ctx context.Context, eventID int) ([]models.EventParticipant, error) {
	return r.queryParticipants(ctx, ` WHERE ep.event_id = ? ORDER BY u.last_name ASC, u.first_name ASC`, eventID)
}

// GetByTeam retrieves all participants assigned to a team
func (r *participantRepository) GetByTeam(ctx context.Context, teamID int) ([]models.EventParticipant, error) {
	return r.queryParticipants(ctx, ` WHERE ep.team_id = ? ORDER BY u.last_name ASC, u.first_name ASC`, teamID)
}

// Register registers a user to an event
func (r *participantRepository) Register(ctx context.Context, eventID, userID int) (*models.EventParticipant, error) {
	query := `INSERT INTO event_participants (event_id, user_id) VALUES (?, ?)`

	result, err := r.db.ExecContext(ctx, query, eventID, userID)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return nil, fmt.Errorf("user %d is already registered to event %d", userID, eventID)
		}
		return nil, fmt.Errorf("failed to register participant: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get inserted ID: %w", err)
	}

	return &models.EventParticipant{ID: int(id), EventID: eventID, UserID: userID}, nil
}

// AssignToTeam sets (or clears, with nil) a participant's team
func (r *participantRepository) AssignToTeam(ctx context.Context, userID, eventID int, teamID *int) error {
	query := `UPDATE event_participants SET team_id = ? WHERE user_id = ? AND event_id = ?`

	result, err := r.db.ExecContext(ctx, query, teamID, userID, eventID)
	if err != nil {
		return fmt.Errorf("failed to assign participant to team: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("user %d is not registered to event %d", userID, eventID)
	}

	return nil
}

// Remove removes a user's registration from an event
func (r *participantRepository) Remove(ctx context.Context, eventID, userID int) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM event_participants WHERE event_id = ? AND user_id = ?`, eventID, userID)
	if err != nil {
		return fmt.Errorf("failed to remove participant: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("user %d is not registered to event %d", userID, eventID)
	}

	return nil
}
