package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/hackvent/hackvent-backend/models"
)

// SponsorRepository defines sponsor, tier and event-sponsor database
// operations
type SponsorRepository interface {
	GetAllSponsors(ctx context.Context) ([]models.Sponsor, error)
	GetSponsorByID(ctx context.Context, id int) (*models.Sponsor, error)
	GetSponsorsByEvent(ctx context.Context, eventID int) ([]models.Sponsor, error)
	CreateSponsor(ctx context.Context, sponsor *models.Sponsor) error
	UpdateSponsor(ctx context.Context, sponsor *models.Sponsor) error
	DeleteSponsor(ctx context.Context, id int) error

	GetTiers(ctx context.Context) ([]models.SponsorTier, error)
	GetTierByID(ctx context.Context, id int) (*models.SponsorTier, error)
	GetTiersExcluding(ctx context.Context, excludeID int) ([]models.SponsorTier, error)
	CreateTier(ctx context.Context, tier *models.SponsorTier) error
	UpdateTier(ctx context.Context, tier *models.SponsorTier) error
	ReassignAndDeleteTier(ctx context.Context, tier *models.SponsorTier, reassignments []models.TierReassignment) error

	GetBindingByID(ctx context.Context, id int) (*models.EventSponsor, error)
	GetBindingsByTier(ctx context.Context, tierID int) ([]models.EventSponsor, error)
	CountBindingsByTier(ctx context.Context, tierID int) (int, error)
	AddSponsorToEvent(ctx context.Context, binding *models.EventSponsor) error
	RemoveSponsorFromEvent(ctx context.Context, eventID, sponsorID int) error
}

// sponsorRepository implements SponsorRepository interface
type sponsorRepository struct {
	db           *sql.DB
	sponsorHooks *EntityHooks
	tierHooks    *EntityHooks
	bindingHooks *EntityHooks
}

// NewSponsorRepository creates a new sponsor repository
func NewSponsorRepository(db *sql.DB, registry *HookRegistry) SponsorRepository {
	r := &sponsorRepository{db: db}
	r.sponsorHooks = registry.Register(EntitySponsors, func(ctx context.Context, id int) (any, error) {
		return r.GetSponsorByID(ctx, id)
	})
	r.tierHooks = registry.Register(EntitySponsorTiers, func(ctx context.Context, id int) (any, error) {
		return r.GetTierByID(ctx, id)
	})
	r.bindingHooks = registry.Register(EntityEventSponsors, func(ctx context.Context, id int) (any, error) {
		return r.GetBindingByID(ctx, id)
	})
	return r
}

// GetAllSponsors retrieves all sponsors
func (r *sponsorRepository) GetAllSponsors(ctx context.Context) ([]models.Sponsor, error) {
	query := `
		SELECT s.id, s.name, s.website, s.image_id, s.amount, s.created_at, s.updated_at,
		       COALESCE(i.url, '')
		FROM sponsors s
		LEFT JOIN images i ON i.id = s.image_id
		ORDER BY s.amount DESC, s.name ASC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query sponsors: %w", err)
	}
	defer rows.Close()

	var sponsors []models.Sponsor
	for rows.Next() {
		var s models.Sponsor
		err := rows.Scan(&s.ID, &s.Name, &s.Website, &s.ImageID, &s.Amount,
			&s.CreatedAt, &s.UpdatedAt, &s.ImageURL)
		if err != nil {
			return nil, fmt.Errorf("failed to scan sponsor: %w", err)
		}
		sponsors = append(sponsors, s)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating sponsors: %w", err)
	}

	return sponsors, nil
}

// GetSponsorByID retrieves a sponsor by ID
func (r *sponsorRepository) GetSponsorByID(ctx context.Context, id int) (*models.Sponsor, error) {
	query := `
		SELECT id, name, website, image_id, amount, created_at, updated_at
		FROM sponsors WHERE id = ?
	`

	var s models.Sponsor
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&s.ID, &s.Name, &s.Website, &s.ImageID, &s.Amount, &s.CreatedAt, &s.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("sponsor with ID %d not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get sponsor: %w", err)
	}

	return &s, nil
}

// GetSponsorsByEvent retrieves sponsors bound to an event, with image
// URL and tier name joined in
func (r *sponsorRepository) GetSponsorsByEvent(ctx context.Context, eventID int) ([]models.Sponsor, error) {
	query := `
		SELECT s.id, s.name, s.website, s.image_id, s.amount, s.created_at, s.updated_at,
		       COALESCE(i.url, ''), COALESCE(t.name, '')
		FROM sponsors s
		JOIN event_sponsors es ON es.sponsor_id = s.id AND es.event_id = ?
		LEFT JOIN images i ON i.id = s.image_id
		LEFT JOIN sponsor_tiers t ON t.id = es.tier_id
		ORDER BY COALESCE(t.lower_threshold, -1) DESC, s.name ASC
	`

	rows, err := r.db.QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to query event sponsors: %w", err)
	}
	defer rows.Close()

	var sponsors []models.Sponsor
	for rows.Next() {
		var s models.Sponsor
		err := rows.Scan(&s.ID, &s.Name, &s.Website, &s.ImageID, &s.Amount,
			&s.CreatedAt, &s.UpdatedAt, &s.ImageURL, &s.TierName)
		if err != nil {
			return nil, fmt.Errorf("failed to scan event sponsor: %w", err)
		}
		sponsors = append(sponsors, s)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating event sponsors: %w", err)
	}

	return sponsors, nil
}

// CreateSponsor creates a new sponsor
func (r *sponsorRepository) CreateSponsor(ctx context.Context, sponsor *models.Sponsor) error {
	query := `
		INSERT INTO sponsors (name, website, image_id, amount, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	now := time.Now()
	result, err := r.db.ExecContext(ctx, query,
		sponsor.Name, sponsor.Website, sponsor.ImageID, sponsor.Amount, now, now)
	if err != nil {
		return fmt.Errorf("failed to create sponsor: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get inserted ID: %w", err)
	}

	sponsor.ID = int(id)
	sponsor.CreatedAt = now
	sponsor.UpdatedAt = now
	r.sponsorHooks.FireAfterCreate(ctx, sponsor.ID, sponsor)
	return nil
}

// UpdateSponsor updates an existing sponsor
func (r *sponsorRepository) UpdateSponsor(ctx context.Context, sponsor *models.Sponsor) error {
	query := `
		UPDATE sponsors SET name = ?, website = ?, image_id = ?, amount = ?, updated_at = ?
		WHERE id = ?
	`

	now := time.Now()
	r.sponsorHooks.FireBeforeUpdate(ctx, sponsor.ID, sponsor)

	result, err := r.db.ExecContext(ctx, query,
		sponsor.Name, sponsor.Website, sponsor.ImageID, sponsor.Amount, now, sponsor.ID)
	if err != nil {
		return fmt.Errorf("failed to update sponsor: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("sponsor with ID %d not found", sponsor.ID)
	}

	sponsor.UpdatedAt = now
	return nil
}

// DeleteSponsor deletes a sponsor by ID
func (r *sponsorRepository) DeleteSponsor(ctx context.Context, id int) error {
	sponsor, err := r.GetSponsorByID(ctx, id)
	if err != nil {
		return err
	}

	r.sponsorHooks.FireBeforeDelete(ctx, id, sponsor)

	result, err := r.db.ExecContext(ctx, `DELETE FROM sponsors WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete sponsor: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("sponsor with ID %d not found", id)
	}

	return nil
}

const tierColumns = `id, name, lower_threshold, image_width, image_height`

// GetTiers retrieves all tiers ordered ascending by threshold
func (r *sponsorRepository) GetTiers(ctx context.Context) ([]models.SponsorTier, error) {
	return r.queryTiers(ctx, `SELECT `+tierColumns+` FROM sponsor_tiers ORDER BY lower_threshold ASC`)
}

// GetTiersExcluding retrieves all tiers except the given one, ordered
// ascending by threshold
func (r *sponsorRepository) GetTiersExcluding(ctx context.Context, excludeID int) ([]models.SponsorTier, error) {
	return r.queryTiers(ctx,
		`SELECT `+tierColumns+` FROM sponsor_tiers WHERE id != ? ORDER BY lower_threshold ASC`, excludeID)
}

func (r *sponsorRepository) queryTiers(ctx context.Context, query string, args ...any) ([]models.SponsorTier, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query tiers: %w", err)
	}
	defer rows.Close()

	var tiers []models.SponsorTier
	for rows.Next() {
		var t models.SponsorTier
		err := rows.Scan(&t.ID, &t.Name, &t.LowerThreshold, &t.ImageWidth, &t.ImageHeight)
		if err != nil {
			return nil, fmt.Errorf("failed to scan tier: %w", err)
		}
		tiers = append(tiers, t)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating tiers: %w", err)
	}

	return tiers, nil
}

// GetTierByID retrieves a tier by ID
func (r *sponsorRepository) GetTierByID(ctx context.Context, id int) (*models.SponsorTier, error) {
	query := `SELECT ` + tierColumns + ` FROM sponsor_tiers WHERE id = ?`

	var t models.SponsorTier
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&t.ID, &t.Name, &t.LowerThreshold, &t.ImageWidth, &t.ImageHeight)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("sponsor tier with ID %d not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get tier: %w", err)
	}

	return &t, nil
}

// CreateTier creates a new sponsor tier
func (r *sponsorRepository) CreateTier(ctx context.Context, tier *models.SponsorTier) error {
	query := `
		INSERT INTO sponsor_tiers (name, lower_threshold, image_width, image_height)
		VALUES (?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query,
		tier.Name, tier.LowerThreshold, tier.ImageWidth, tier.ImageHeight)
	if err != nil {
		return fmt.Errorf("failed to create tier: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get inserted ID: %w", err)
	}

	tier.ID = int(id)
	r.tierHooks.FireAfterCreate(ctx, tier.ID, tier)
	return nil
}

// UpdateTier updates an existing sponsor tier
func (r *sponsorRepository) UpdateTier(ctx context.Context, tier *models.SponsorTier) error {
	query := `
		UPDATE sponsor_tiers SET name = ?, lower_threshold = ?, image_width = ?, image_height = ?
		WHERE id = ?
	`

	r.tierHooks.FireBeforeUpdate(ctx, tier.ID, tier)

	result, err := r.db.ExecContext(ctx, query,
		tier.Name, tier.LowerThreshold, tier.ImageWidth, tier.ImageHeight, tier.ID)
	if err != nil {
		return fmt.Errorf("failed to update tier: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("sponsor tier with ID %d not found", tier.ID)
	}

	return nil
}

// ReassignAndDeleteTier applies the computed binding reassignments and
// removes the tier, in a single transaction: either every binding is
// moved and the tier row is gone, or nothing changed. The delete hook
// fires before the transaction so the audit write precedes the delete
// without contending with the open transaction.
func (r *sponsorRepository) ReassignAndDeleteTier(ctx context.Context, tier *models.SponsorTier, reassignments []models.TierReassignment) error {
	r.tierHooks.FireBeforeDelete(ctx, tier.ID, tier)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, reassignment := range reassignments {
		_, err := tx.ExecContext(ctx,
			`UPDATE event_sponsors SET tier_id = ? WHERE id = ?`,
			reassignment.NewTierID, reassignment.BindingID)
		if err != nil {
			return fmt.Errorf("failed to reassign binding %d: %w", reassignment.BindingID, err)
		}
	}

	result, err := tx.ExecContext(ctx, `DELETE FROM sponsor_tiers WHERE id = ?`, tier.ID)
	if err != nil {
		return fmt.Errorf("failed to delete tier: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("sponsor tier with ID %d not found", tier.ID)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit tier deletion: %w", err)
	}

	return nil
}

// GetBindingByID retrieves an event-sponsor binding by ID
func (r *sponsorRepository) GetBindingByID(ctx context.Context, id int) (*models.EventSponsor, error) {
	query := `SELECT id, event_id, sponsor_id, tier_id FROM event_sponsors WHERE id = ?`

	var b models.EventSponsor
	err := r.db.QueryRowContext(ctx, query, id).Scan(&b.ID, &b.EventID, &b.SponsorID, &b.TierID)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("event sponsor with ID %d not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get event sponsor: %w", err)
	}

	return &b, nil
}

// GetBindingsByTier retrieves all event-sponsor bindings on a tier,
// each annotated with the bound sponsor's amount
func (r *sponsorRepository) GetBindingsByTier(ctx context.Context, tierID int) ([]models.EventSponsor, error) {
	query := `
		SELECT es.id, es.event_id, es.sponsor_id, es.tier_id, s.amount
		FROM event_sponsors es
		JOIN sponsors s ON s.id = es.sponsor_id
		WHERE es.tier_id = ?
	`

	rows, err := r.db.QueryContext(ctx, query, tierID)
	if err != nil {
		return nil, fmt.Errorf("failed to query bindings: %w", err)
	}
	defer rows.Close()

	var bindings []models.EventSponsor
	for rows.Next() {
		var b models.EventSponsor
		err := rows.Scan(&b.ID, &b.EventID, &b.SponsorID, &b.TierID, &b.SponsorAmount)
		if err != nil {
			return nil, fmt.Errorf("failed to scan binding: %w", err)
		}
		bindings = append(bindings, b)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating bindings: %w", err)
	}

	return bindings, nil
}

// CountBindingsByTier counts event-sponsor bindings on a tier
func (r *sponsorRepository) CountBindingsByTier(ctx context.Context, tierID int) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM event_sponsors WHERE tier_id = ?`, tierID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count bindings: %w", err)
	}
	return count, nil
}

// AddSponsorToEvent creates an event-sponsor binding
func (r *sponsorRepository) AddSponsorToEvent(ctx context.Context, binding *models.EventSponsor) error {
	query := `INSERT INTO event_sponsors (event_id, sponsor_id, tier_id) VALUES (?, ?, ?)`

	result, err := r.db.ExecContext(ctx, query, binding.EventID, binding.SponsorID, binding.TierID)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return fmt.Errorf("sponsor %d is already bound to event %d", binding.SponsorID, binding.EventID)
		}
		return fmt.Errorf("failed to add sponsor to event: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get inserted ID: %w", err)
	}

	binding.ID = int(id)
	r.bindingHooks.FireAfterCreate(ctx, binding.ID, binding)
	return nil
}

// RemoveSponsorFromEvent removes a sponsor's binding to an event
func (r *sponsorRepository) RemoveSponsorFromEvent(ctx context.Context, eventID, sponsorID int) error {
	var binding models.EventSponsor
	err := r.db.QueryRowContext(ctx,
		`SELECT id, event_id, sponsor_id, tier_id FROM event_sponsors WHERE event_id = ? AND sponsor_id = ?`,
		eventID, sponsorID).Scan(&binding.ID, &binding.EventID, &binding.SponsorID, &binding.TierID)
	if err == sql.ErrNoRows {
		return fmt.Errorf("sponsor %d is not bound to event %d", sponsorID, eventID)
	}
	if err != nil {
		return fmt.Errorf("failed to get event sponsor: %w", err)
	}

	r.bindingHooks.FireBeforeDelete(ctx, binding.ID, &binding)

	if _, err := r.db.ExecContext(ctx, `DELETE FROM event_sponsors WHERE id = ?`, binding.ID); err != nil {
		return fmt.Errorf("failed to remove sponsor from event: %w", err)
	}

	return nil
}
