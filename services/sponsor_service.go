package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/hackvent/hackvent-backend/models"
	"github.com/hackvent/hackvent-backend/repositories"
)

// SponsorService interface defines sponsor and tier business logic
type SponsorService interface {
	GetAllSponsors(ctx context.Context) ([]models.Sponsor, error)
	GetSponsorsByEvent(ctx context.Context, eventID int) ([]models.Sponsor, error)
	AddSponsorToEvent(ctx context.Context, form *models.SponsorForm) (*models.Sponsor, *models.EventSponsor, error)
	UpdateSponsor(ctx context.Context, id int, form *models.SponsorForm) (*models.Sponsor, error)
	DeleteSponsor(ctx context.Context, id int) error
	RemoveSponsorFromEvent(ctx context.Context, eventID, sponsorID int) error

	GetTiers(ctx context.Context) ([]models.SponsorTier, error)
	CreateTier(ctx context.Context, form *models.TierForm) (*models.SponsorTier, error)
	UpdateTier(ctx context.Context, id int, form *models.TierForm) (*models.SponsorTier, error)
	DeleteTier(ctx context.Context, id int) error
}

// sponsorService implements SponsorService interface
type sponsorService struct {
	sponsorRepo repositories.SponsorRepository
	eventRepo   repositories.EventRepository
}

// NewSponsorService creates a new sponsor service
func NewSponsorService(sponsorRepo repositories.SponsorRepository, eventRepo repositories.EventRepository) SponsorService {
	return &sponsorService{
		sponsorRepo: sponsorRepo,
		eventRepo:   eventRepo,
	}
}

// GetAllSponsors retrieves all sponsors
func (s *sponsorService) GetAllSponsors(ctx context.Context) ([]models.Sponsor, error) {
	return s.sponsorRepo.GetAllSponsors(ctx)
}

// GetSponsorsByEvent retrieves sponsors bound to an event
func (s *sponsorService) GetSponsorsByEvent(ctx context.Context, eventID int) ([]models.Sponsor, error) {
	if eventID <= 0 {
		return nil, fmt.Errorf("invalid event ID: %d", eventID)
	}
	return s.sponsorRepo.GetSponsorsByEvent(ctx, eventID)
}

// AddSponsorToEvent creates a sponsor and binds it to an event with a tier
func (s *sponsorService) AddSponsorToEvent(ctx context.Context, form *models.SponsorForm) (*models.Sponsor, *models.EventSponsor, error) {
	if errors := form.Validate(); len(errors) > 0 {
		return nil, nil, fmt.Errorf("validation failed: %s", strings.Join(errors, ", "))
	}
	if form.EventID <= 0 {
		return nil, nil, fmt.Errorf("invalid event ID: %d", form.EventID)
	}

	if _, err := s.eventRepo.GetByID(ctx, form.EventID); err != nil {
		return nil, nil, fmt.Errorf("event not found: %w", err)
	}
	if _, err := s.sponsorRepo.GetTierByID(ctx, form.TierID); err != nil {
		return nil, nil, fmt.Errorf("sponsor tier not found: %w", err)
	}

	sponsor := &models.Sponsor{
		Name:    strings.TrimSpace(form.Name),
		Website: strings.TrimSpace(form.Website),
		ImageID: form.ImageID,
		Amount:  form.Amount,
	}
	if err := s.sponsorRepo.CreateSponsor(ctx, sponsor); err != nil {
		return nil, nil, fmt.Errorf("failed to create sponsor: %w", err)
	}

	tierID := form.TierID
	binding := &models.EventSponsor{
		EventID:   form.EventID,
		SponsorID: sponsor.ID,
		TierID:    &tierID,
	}
	if err := s.sponsorRepo.AddSponsorToEvent(ctx, binding); err != nil {
		return nil, nil, fmt.Errorf("failed to bind sponsor to event: %w", err)
	}

	return sponsor, binding, nil
}

// UpdateSponsor updates an existing sponsor
func (s *sponsorService) UpdateSponsor(ctx context.Context, id int, form *models.SponsorForm) (*models.Sponsor, error) {
	if id <= 0 {
		return nil, fmt.Errorf("invalid sponsor ID: %d", id)
	}
	if errors := form.Validate(); len(errors) > 0 {
		return nil, fmt.Errorf("validation failed: %s", strings.Join(errors, ", "))
	}

	sponsor, err := s.sponsorRepo.GetSponsorByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("sponsor not found: %w", err)
	}

	sponsor.Name = strings.TrimSpace(form.Name)
	sponsor.Website = strings.TrimSpace(form.Website)
	sponsor.ImageID = form.ImageID
	sponsor.Amount = form.Amount

	if err := s.sponsorRepo.UpdateSponsor(ctx, sponsor); err != nil {
		return nil, fmt.Errorf("failed to update sponsor: %w", err)
	}
	return sponsor, nil
}

// DeleteSponsor deletes a sponsor
func (s *sponsorService) DeleteSponsor(ctx context.Context, id int) error {
	if id <= 0 {
		return fmt.Errorf("invalid sponsor ID: %d", id)
	}
	return s.sponsorRepo.DeleteSponsor(ctx, id)
}

// RemoveSponsorFromEvent removes a sponsor's event binding
func (s *sponsorService) RemoveSponsorFromEvent(ctx context.Context, eventID, sponsorID int) error {
	if eventID <= 0 || sponsorID <= 0 {
		return fmt.Errorf("invalid event or sponsor ID")
	}
	return s.sponsorRepo.RemoveSponsorFromEvent(ctx, eventID, sponsorID)
}

// GetTiers retrieves all sponsor tiers ordered by threshold
func (s *sponsorService) GetTiers(ctx context.Context) ([]models.SponsorTier, error) {
	return s.sponsorRepo.GetTiers(ctx)
}

// CreateTier creates a new sponsor tier
func (s *sponsorService) CreateTier(ctx context.Context, form *models.TierForm) (*models.SponsorTier, error) {
	if errors := form.Validate(); len(errors) > 0 {
		return nil, fmt.Errorf("validation failed: %s", strings.Join(errors, ", "))
	}

	tier := &models.SponsorTier{
		Name:           strings.TrimSpace(form.Name),
		LowerThreshold: form.LowerThreshold,
		ImageWidth:     form.ImageWidth,
		ImageHeight:    form.ImageHeight,
	}
	if err := s.sponsorRepo.CreateTier(ctx, tier); err != nil {
		return nil, fmt.Errorf("failed to create tier: %w", err)
	}
	return tier, nil
}

// UpdateTier updates an existing sponsor tier
func (s *sponsorService) UpdateTier(ctx context.Context, id int, form *models.TierForm) (*models.SponsorTier, error) {
	if id <= 0 {
		return nil, fmt.Errorf("invalid tier ID: %d", id)
	}
	if errors := form.Validate(); len(errors) > 0 {
		return nil, fmt.Errorf("validation failed: %s", strings.Join(errors, ", "))
	}

	tier, err := s.sponsorRepo.GetTierByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("sponsor tier not found: %w", err)
	}

	tier.Name = strings.TrimSpace(form.Name)
	tier.LowerThreshold = form.LowerThreshold
	tier.ImageWidth = form.ImageWidth
	tier.ImageHeight = form.ImageHeight

	if err := s.sponsorRepo.UpdateTier(ctx, tier); err != nil {
		return nil, fmt.Errorf("failed to update tier: %w", err)
	}
	return tier, nil
}

// DeleteTier deletes a sponsor tier, first migrating every event
// binding on it to the best remaining tier so no binding is left
// pointing at a nonexistent tier. Reassignment and deletion run in one
// transaction; any failure means the tier deletion did not succeed and
// nothing changed.
func (s *sponsorService) DeleteTier(ctx context.Context, id int) error {
	if id <= 0 {
		return fmt.Errorf("invalid tier ID: %d", id)
	}

	tier, err := s.sponsorRepo.GetTierByID(ctx, id)
	if err != nil {
		return fmt.Errorf("sponsor tier not found: %w", err)
	}

	remaining, err := s.sponsorRepo.GetTiersExcluding(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to load remaining tiers: %w", err)
	}

	bindings, err := s.sponsorRepo.GetBindingsByTier(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to load affected sponsors: %w", err)
	}

	reassignments := computeReassignments(remaining, bindings)

	if err := s.sponsorRepo.ReassignAndDeleteTier(ctx, tier, reassignments); err != nil {
		return fmt.Errorf("failed to delete tier: %w", err)
	}
	return nil
}

// computeReassignments picks the new tier for every binding on a tier
// being deleted. remaining must be sorted ascending by threshold.
func computeReassignments(remaining []models.SponsorTier, bindings []models.EventSponsor) []models.TierReassignment {
	reassignments := make([]models.TierReassignment, 0, len(bindings))
	for _, binding := range bindings {
		reassignments = append(reassignments, models.TierReassignment{
			BindingID: binding.ID,
			NewTierID: bestTierFor(binding.SponsorAmount, remaining),
		})
	}
	return reassignments
}

// bestTierFor returns the id of the highest tier whose threshold the
// amount meets. An amount below every threshold falls back to the
// lowest tier; with no tiers at all there is nothing to assign and the
// result is nil.
func bestTierFor(amount int, tiersAsc []models.SponsorTier) *int {
	for i := len(tiersAsc) - 1; i >= 0; i-- {
		if amount >= tiersAsc[i].LowerThreshold {
			return &tiersAsc[i].ID
		}
	}
	if len(tiersAsc) > 0 {
		return &tiersAsc[0].ID
	}
	return nil
}
