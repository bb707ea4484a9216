package services

import (
	"context"
	"fmt"

	"github.com/hackvent/hackvent-backend/models"
	"github.com/hackvent/hackvent-backend/repositories"
)

const (
	auditDefaultLimit = 100
	auditMaxLimit     = 500
)

// AuditService interface defines audit log reporting
type AuditService interface {
	Search(ctx context.Context, filter *models.AuditFilter) ([]models.AuditLogEntry, int, error)
}

// auditService implements AuditService interface
type auditService struct {
	auditRepo repositories.AuditRepository
}

// NewAuditService creates a new audit service
func NewAuditService(auditRepo repositories.AuditRepository) AuditService {
	return &auditService{auditRepo: auditRepo}
}

// Search validates and clamps the filter, then queries audit entries.
// Returns the matching page and the total match count. The filter is
// clamped in place so callers see the limit and page actually applied.
func (s *auditService) Search(ctx context.Context, filter *models.AuditFilter) ([]models.AuditLogEntry, int, error) {
	if filter.Action != "" {
		switch filter.Action {
		case models.AuditCreate, models.AuditUpdate, models.AuditDelete:
		default:
			return nil, 0, fmt.Errorf("invalid action %q", filter.Action)
		}
	}
	if filter.Start != nil && filter.End != nil && filter.End.Before(*filter.Start) {
		return nil, 0, fmt.Errorf("end must not be before start")
	}

	if filter.Limit <= 0 {
		filter.Limit = auditDefaultLimit
	}
	if filter.Limit > auditMaxLimit {
		filter.Limit = auditMaxLimit
	}
	if filter.Page <= 0 {
		filter.Page = 1
	}

	return s.auditRepo.Search(ctx, *filter)
}
