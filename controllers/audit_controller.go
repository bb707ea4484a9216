package controllers

import (
	"net/http"
	"strings"

	"github.com/hackvent/hackvent-backend/models"
	"github.com/hackvent/hackvent-backend/services"
)

// AuditController handles audit log reporting requests
type AuditController struct {
	services *services.Services
}

// NewAuditController creates a new audit controller
func NewAuditController(services *services.Services) *AuditController {
	return &AuditController{
		services: services,
	}
}

// searchResponse wraps an audit page with pagination totals
type searchResponse struct {
	Entries []models.AuditLogEntry `json:"entries"`
	Total   int                    `json:"total"`
	Page    int                    `json:"page"`
	Limit   int                    `json:"limit"`
}

// Search handles POST /audit-logs/search
func (c *AuditController) Search(w http.ResponseWriter, r *http.Request) {
	var filter models.AuditFilter
	if err := decodeJSON(r, &filter); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	entries, total, err := c.services.Audit.Search(r.Context(), &filter)
	if err != nil {
		if strings.Contains(err.Error(), "invalid") || strings.Contains(err.Error(), "must not") {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		respondError(w, http.StatusInternalServerError, "Failed to search audit log: "+err.Error())
		return
	}

	if entries == nil {
		entries = []models.AuditLogEntry{}
	}

	// The service clamped the filter, so these are the values that
	// actually shaped the query
	respondJSON(w, http.StatusOK, searchResponse{
		Entries: entries,
		Total:   total,
		Page:    filter.Page,
		Limit:   filter.Limit,
	})
}
