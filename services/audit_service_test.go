package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hackvent/hackvent-backend/models"
	"github.com/hackvent/hackvent-backend/repositories"
)

// mockAuditRepository records the filter the repository actually
// received
type mockAuditRepository struct {
	gotFilter *models.AuditFilter
}

var _ repositories.AuditRepository = (*mockAuditRepository)(nil)

func (m *mockAuditRepository) Append(ctx context.Context, entry *models.AuditLogEntry) error {
	return nil
}

func (m *mockAuditRepository) Search(ctx context.Context, filter models.AuditFilter) ([]models.AuditLogEntry, int, error) {
	m.gotFilter = &filter
	return []models.AuditLogEntry{}, 0, nil
}

func TestAuditSearch(t *testing.T) {
	t.Run("defaults fill in missing limit and page", func(t *testing.T) {
		repo := &mockAuditRepository{}
		svc := NewAuditService(repo)

		filter := models.AuditFilter{}
		_, _, err := svc.Search(context.Background(), &filter)
		require.NoError(t, err)

		require.NotNil(t, repo.gotFilter)
		assert.Equal(t, 100, repo.gotFilter.Limit)
		assert.Equal(t, 1, repo.gotFilter.Page)
	})

	t.Run("oversized limit is clamped and reported back", func(t *testing.T) {
		repo := &mockAuditRepository{}
		svc := NewAuditService(repo)

		filter := models.AuditFilter{Limit: 1000, Page: 3}
		_, _, err := svc.Search(context.Background(), &filter)
		require.NoError(t, err)

		require.NotNil(t, repo.gotFilter)
		assert.Equal(t, 500, repo.gotFilter.Limit)
		// The caller's filter carries the applied values, so response
		// pagination metadata matches the query that ran
		assert.Equal(t, 500, filter.Limit)
		assert.Equal(t, 3, filter.Page)
	})

	t.Run("rejects unknown actions", func(t *testing.T) {
		repo := &mockAuditRepository{}
		svc := NewAuditService(repo)

		filter := models.AuditFilter{Action: "TRUNCATE"}
		_, _, err := svc.Search(context.Background(), &filter)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid action")
		assert.Nil(t, repo.gotFilter)
	})

	t.Run("rejects a window that ends before it starts", func(t *testing.T) {
		repo := &mockAuditRepository{}
		svc := NewAuditService(repo)

		start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
		end := start.Add(-time.Hour)
		filter := models.AuditFilter{Start: &start, End: &end}
		_, _, err := svc.Search(context.Background(), &filter)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "end must not be before start")
	})
}
