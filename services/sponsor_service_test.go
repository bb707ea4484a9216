package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hackvent/hackvent-backend/models"
	"github.com/hackvent/hackvent-backend/repositories"
)

// mockSponsorRepository is a hand-written mock backed by function
// fields, so each test only wires the calls it expects
type mockSponsorRepository struct {
	getTierByIDFn           func(ctx context.Context, id int) (*models.SponsorTier, error)
	getTiersExcludingFn     func(ctx context.Context, excludeID int) ([]models.SponsorTier, error)
	getBindingsByTierFn     func(ctx context.Context, tierID int) ([]models.EventSponsor, error)
	reassignAndDeleteTierFn func(ctx context.Context, tier *models.SponsorTier, reassignments []models.TierReassignment) error
}

var _ repositories.SponsorRepository = (*mockSponsorRepository)(nil)

func (m *mockSponsorRepository) GetAllSponsors(ctx context.Context) ([]models.Sponsor, error) {
	return nil, nil
}

func (m *mockSponsorRepository) GetSponsorByID(ctx context.Context, id int) (*models.Sponsor, error) {
	return nil, nil
}

func (m *mockSponsorRepository) GetSponsorsByEvent(ctx context.Context, eventID int) ([]models.Sponsor, error) {
	return nil, nil
}

func (m *mockSponsorRepository) CreateSponsor(ctx context.Context, sponsor *models.Sponsor) error {
	return nil
}

func (m *mockSponsorRepository) UpdateSponsor(ctx context.Context, sponsor *models.Sponsor) error {
	return nil
}

func (m *mockSponsorRepository) DeleteSponsor(ctx context.Context, id int) error { return nil }

func (m *mockSponsorRepository) GetTiers(ctx context.Context) ([]models.SponsorTier, error) {
	return nil, nil
}

func (m *mockSponsorRepository) GetTierByID(ctx context.Context, id int) (*models.SponsorTier, error) {
	return m.getTierByIDFn(ctx, id)
}

func (m *mockSponsorRepository) GetTiersExcluding(ctx context.Context, excludeID int) ([]models.SponsorTier, error) {
	return m.getTiersExcludingFn(ctx, excludeID)
}

func (m *mockSponsorRepository) CreateTier(ctx context.Context, tier *models.SponsorTier) error {
	return nil
}

func (m *mockSponsorRepository) UpdateTier(ctx context.Context, tier *models.SponsorTier) error {
	return nil
}

func (m *mockSponsorRepository) ReassignAndDeleteTier(ctx context.Context, tier *models.SponsorTier, reassignments []models.TierReassignment) error {
	return m.reassignAndDeleteTierFn(ctx, tier, reassignments)
}

func (m *mockSponsorRepository) GetBindingByID(ctx context.Context, id int) (*models.EventSponsor, error) {
	return nil, nil
}

func (m *mockSponsorRepository) GetBindingsByTier(ctx context.Context, tierID int) ([]models.EventSponsor, error) {
	return m.getBindingsByTierFn(ctx, tierID)
}

func (m *mockSponsorRepository) CountBindingsByTier(ctx context.Context, tierID int) (int, error) {
	return 0, nil
}

func (m *mockSponsorRepository) AddSponsorToEvent(ctx context.Context, binding *models.EventSponsor) error {
	return nil
}

func (m *mockSponsorRepository) RemoveSponsorFromEvent(ctx context.Context, eventID, sponsorID int) error {
	return nil
}

// bronze/silver/gold at 0/5000/20000, sorted ascending as the
// repository returns them
func tiersAsc() []models.SponsorTier {
	return []models.SponsorTier{
		{ID: 1, Name: "Bronze", LowerThreshold: 0},
		{ID: 2, Name: "Silver", LowerThreshold: 5000},
		{ID: 3, Name: "Gold", LowerThreshold: 20000},
	}
}

func TestBestTierFor(t *testing.T) {
	tiers := tiersAsc()

	tests := []struct {
		name   string
		amount int
		want   int
	}{
		{"amount above every threshold lands on the highest tier", 50000, 3},
		{"amount exactly at a threshold meets it", 20000, 3},
		{"amount between thresholds lands on the lower tier", 19999, 2},
		{"amount meeting only the bottom threshold", 100, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := bestTierFor(tt.amount, tiers)
			require.NotNil(t, got)
			assert.Equal(t, tt.want, *got)
		})
	}
}

func TestBestTierFor_BelowEveryThresholdFallsToLowest(t *testing.T) {
	tiers := []models.SponsorTier{
		{ID: 4, Name: "Silver", LowerThreshold: 5000},
		{ID: 5, Name: "Gold", LowerThreshold: 20000},
	}

	got := bestTierFor(100, tiers)

	require.NotNil(t, got)
	assert.Equal(t, 4, *got)
}

func TestBestTierFor_NoTiersLeft(t *testing.T) {
	assert.Nil(t, bestTierFor(100, nil))
}

func TestComputeReassignments(t *testing.T) {
	bindings := []models.EventSponsor{
		{ID: 10, SponsorAmount: 50000},
		{ID: 11, SponsorAmount: 6000},
		{ID: 12, SponsorAmount: 100},
	}

	reassignments := computeReassignments(tiersAsc(), bindings)

	require.Len(t, reassignments, 3)
	assert.Equal(t, 10, reassignments[0].BindingID)
	assert.Equal(t, 3, *reassignments[0].NewTierID)
	assert.Equal(t, 2, *reassignments[1].NewTierID)
	assert.Equal(t, 1, *reassignments[2].NewTierID)
}

func TestDeleteTier_ReassignsBeforeDeleting(t *testing.T) {
	deleted := &models.SponsorTier{ID: 2, Name: "Silver", LowerThreshold: 5000}
	remaining := []models.SponsorTier{
		{ID: 1, Name: "Bronze", LowerThreshold: 0},
		{ID: 3, Name: "Gold", LowerThreshold: 20000},
	}

	var gotTier *models.SponsorTier
	var gotReassignments []models.TierReassignment
	repo := &mockSponsorRepository{
		getTierByIDFn: func(ctx context.Context, id int) (*models.SponsorTier, error) {
			return deleted, nil
		},
		getTiersExcludingFn: func(ctx context.Context, excludeID int) ([]models.SponsorTier, error) {
			assert.Equal(t, 2, excludeID)
			return remaining, nil
		},
		getBindingsByTierFn: func(ctx context.Context, tierID int) ([]models.EventSponsor, error) {
			return []models.EventSponsor{
				{ID: 20, SponsorAmount: 25000},
				{ID: 21, SponsorAmount: 6000},
			}, nil
		},
		reassignAndDeleteTierFn: func(ctx context.Context, tier *models.SponsorTier, reassignments []models.TierReassignment) error {
			gotTier = tier
			gotReassignments = reassignments
			return nil
		},
	}
	service := NewSponsorService(repo, nil)

	require.NoError(t, service.DeleteTier(context.Background(), 2))

	require.NotNil(t, gotTier)
	assert.Equal(t, 2, gotTier.ID)
	require.Len(t, gotReassignments, 2)
	// 25000 meets Gold, 6000 only meets Bronze now that Silver is gone
	assert.Equal(t, 3, *gotReassignments[0].NewTierID)
	assert.Equal(t, 1, *gotReassignments[1].NewTierID)
}

func TestDeleteTier_LastTierLeavesBindingsUntiered(t *testing.T) {
	repo := &mockSponsorRepository{
		getTierByIDFn: func(ctx context.Context, id int) (*models.SponsorTier, error) {
			return &models.SponsorTier{ID: 1, Name: "Bronze"}, nil
		},
		getTiersExcludingFn: func(ctx context.Context, excludeID int) ([]models.SponsorTier, error) {
			return nil, nil
		},
		getBindingsByTierFn: func(ctx context.Context, tierID int) ([]models.EventSponsor, error) {
			return []models.EventSponsor{{ID: 30, SponsorAmount: 1000}}, nil
		},
		reassignAndDeleteTierFn: func(ctx context.Context, tier *models.SponsorTier, reassignments []models.TierReassignment) error {
			require.Len(t, reassignments, 1)
			assert.Nil(t, reassignments[0].NewTierID)
			return nil
		},
	}
	service := NewSponsorService(repo, nil)

	require.NoError(t, service.DeleteTier(context.Background(), 1))
}

func TestDeleteTier_MissingTier(t *testing.T) {
	repo := &mockSponsorRepository{
		getTierByIDFn: func(ctx context.Context, id int) (*models.SponsorTier, error) {
			return nil, assert.AnError
		},
	}
	service := NewSponsorService(repo, nil)

	err := service.DeleteTier(context.Background(), 99)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}
