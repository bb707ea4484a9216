package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/hackvent/hackvent-backend/models"
)

// EventRepository interface defines event database operations
type EventRepository interface {
	GetAll(ctx context.Context) ([]models.Event, error)
	GetByID(ctx context.Context, id int) (*models.Event, error)
	GetActive(ctx context.Context) (*models.Event, error)
	Create(ctx context.Context, event *models.Event) error
	Update(ctx context.Context, event *models.Event) error
	Delete(ctx context.Context, id int) error
}

// eventRepository implements EventRepository interface
type eventRepository struct {
	db    *sql.DB
	hooks *EntityHooks
}

// NewEventRepository creates a new event repository
func NewEventRepository(db *sql.DB, registry *HookRegistry) EventRepository {
	r := &eventRepository{db: db}
	r.hooks = registry.Register(EntityEvents, func(ctx context.Context, id int) (any, error) {
		return r.GetByID(ctx, id)
	})
	return r
}

const eventColumns = `id, name, start_date, end_date, can_change, is_active, created_at, updated_at`

func scanEvent(scan func(dest ...any) error) (*models.Event, error) {
	var event models.Event
	err := scan(
		&event.ID,
		&event.Name,
		&event.StartDate,
		&event.EndDate,
		&event.CanChange,
		&event.IsActive,
		&event.CreatedAt,
		&event.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &event, nil
}

// GetAll retrieves all events, most recent first
func (r *eventRepository) GetAll(ctx context.Context) ([]models.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events ORDER BY start_date DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query events: %w", err)
	}
	defer rows.Close()

	var events []models.Event
	for rows.Next() {
		event, err := scanEvent(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		events = append(events, *event)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating events: %w", err)
	}

	return events, nil
}

// GetByID retrieves an event by ID
func (r *eventRepository) GetByID(ctx context.Context, id int) (*models.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE id = ?`

	event, err := scanEvent(r.db.QueryRowContext(ctx, query, id).Scan)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("event with ID %d not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get event: %w", err)
	}

	return event, nil
}

// GetActive retrieves the currently active event
func (r *eventRepository) GetActive(ctx context.Context) (*models.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE is_active = 1 ORDER BY start_date DESC LIMIT 1`

	event, err := scanEvent(r.db.QueryRowContext(ctx, query).Scan)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("no active event")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get active event: %w", err)
	}

	return event, nil
}

// Create creates a new event
func (r *eventRepository) Create(ctx context.Context, event *models.Event) error {
	query := `
		INSERT INTO events (name, start_date, end_date, can_change, is_active, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	now := time.Now()
	result, err := r.db.ExecContext(ctx, query,
		event.Name,
		event.StartDate,
		event.EndDate,
		event.CanChange,
		event.IsActive,
		now,
		now,
	)
	if err != nil {
		return fmt.Errorf("failed to create event: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get inserted ID: %w", err)
	}

	event.ID = int(id)
	event.CreatedAt = now
	event.UpdatedAt = now
	r.hooks.FireAfterCreate(ctx, event.ID, event)
	return nil
}

// Update updates an existing event
func (r *eventRepository) Update(ctx context.Context, event *models.Event) error {
	query := `
		UPDATE events
		SET name = ?, start_date = ?, end_date = ?, can_change = ?, is_active = ?, updated_at = ?
		WHERE id = ?
	`

	now := time.Now()
	r.hooks.FireBeforeUpdate(ctx, event.ID, event)

	result, err := r.db.ExecContext(ctx, query,
		event.Name,
		event.StartDate,
		event.EndDate,
		event.CanChange,
		event.IsActive,
		now,
		event.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update event: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("event with ID %d not found", event.ID)
	}

	event.UpdatedAt = now
	return nil
}

// Delete deletes an event by ID
func (r *eventRepository) Delete(ctx context.Context, id int) error {
	event, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}

	r.hooks.FireBeforeDelete(ctx, id, event)

	result, err := r.db.ExecContext(ctx, `DELETE FROM events WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("event with ID %d not found", id)
	}

	return nil
}
