package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/hackvent/hackvent-backend/models"
	"github.com/hackvent/hackvent-backend/services"
)

// SponsorController handles sponsor and tier management requests
type SponsorController struct {
	services *services.Services
}

// NewSponsorController creates a new sponsor controller
func NewSponsorController(services *services.Services) *SponsorController {
	return &SponsorController{
		services: services,
	}
}

// Index handles GET /sponsors
func (c *SponsorController) Index(w http.ResponseWriter, r *http.Request) {
	sponsors, err := c.services.Sponsors.GetAllSponsors(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to load sponsors: "+err.Error())
		return
	}

	respondJSON(w, http.StatusOK, sponsors)
}

// ByEvent handles GET /events/{id}/sponsors
func (c *SponsorController) ByEvent(w http.ResponseWriter, r *http.Request) {
	eventID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid event ID")
		return
	}

	sponsors, err := c.services.Sponsors.GetSponsorsByEvent(r.Context(), eventID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to load sponsors: "+err.Error())
		return
	}

	respondJSON(w, http.StatusOK, sponsors)
}

// Create handles POST /sponsors
func (c *SponsorController) Create(w http.ResponseWriter, r *http.Request) {
	var form models.SponsorForm
	if err := decodeJSON(r, &form); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	sponsor, binding, err := c.services.Sponsors.AddSponsorToEvent(r.Context(), &form)
	if err != nil {
		switch {
		case strings.Contains(err.Error(), "validation failed"),
			strings.Contains(err.Error(), "invalid"):
			respondError(w, http.StatusBadRequest, err.Error())
		case strings.Contains(err.Error(), "not found"):
			respondError(w, http.StatusNotFound, err.Error())
		default:
			respondError(w, http.StatusInternalServerError, "Failed to create sponsor: "+err.Error())
		}
		return
	}

	respondJSON(w, http.StatusCreated, map[string]any{
		"sponsor": sponsor,
		"binding": binding,
	})
}

// Update handles PUT /sponsors/{id}
func (c *SponsorController) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid sponsor ID")
		return
	}

	var form models.SponsorForm
	if err := decodeJSON(r, &form); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	sponsor, err := c.services.Sponsors.UpdateSponsor(r.Context(), id, &form)
	if err != nil {
		switch {
		case strings.Contains(err.Error(), "validation failed"):
			respondError(w, http.StatusBadRequest, err.Error())
		case strings.Contains(err.Error(), "not found"):
			respondError(w, http.StatusNotFound, err.Error())
		default:
			respondError(w, http.StatusInternalServerError, "Failed to update sponsor: "+err.Error())
		}
		return
	}

	respondJSON(w, http.StatusOK, sponsor)
}

// Delete handles DELETE /sponsors/{id}
func (c *SponsorController) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid sponsor ID")
		return
	}

	if err := c.services.Sponsors.DeleteSponsor(r.Context(), id); err != nil {
		if strings.Contains(err.Error(), "not found") {
			respondError(w, http.StatusNotFound, err.Error())
			return
		}
		respondError(w, http.StatusInternalServerError, "Failed to delete sponsor: "+err.Error())
		return
	}

	respondJSON(w, http.StatusNoContent, nil)
}

// RemoveFromEvent handles DELETE /events/{id}/sponsors/{sponsorID}
func (c *SponsorController) RemoveFromEvent(w http.ResponseWriter, r *http.Request) {
	eventID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid event ID")
		return
	}

	sponsorID, err := strconv.Atoi(chi.URLParam(r, "sponsorID"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid sponsor ID")
		return
	}

	if err := c.services.Sponsors.RemoveSponsorFromEvent(r.Context(), eventID, sponsorID); err != nil {
		if strings.Contains(err.Error(), "not found") {
			respondError(w, http.StatusNotFound, err.Error())
			return
		}
		respondError(w, http.StatusInternalServerError, "Failed to remove sponsor: "+err.Error())
		return
	}

	respondJSON(w, http.StatusNoContent, nil)
}

// Tiers handles GET /sponsor-tiers
func (c *SponsorController) Tiers(w http.ResponseWriter, r *http.Request) {
	tiers, err := c.services.Sponsors.GetTiers(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to load tiers: "+err.Error())
		return
	}

	respondJSON(w, http.StatusOK, tiers)
}

// CreateTier handles POST /sponsor-tiers
func (c *SponsorController) CreateTier(w http.ResponseWriter, r *http.Request) {
	var form models.TierForm
	if err := decodeJSON(r, &form); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	tier, err := c.services.Sponsors.CreateTier(r.Context(), &form)
	if err != nil {
		if strings.Contains(err.Error(), "validation failed") {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		respondError(w, http.StatusInternalServerError, "Failed to create tier: "+err.Error())
		return
	}

	respondJSON(w, http.StatusCreated, tier)
}

// UpdateTier handles PUT /sponsor-tiers/{id}
func (c *SponsorController) UpdateTier(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid tier ID")
		return
	}

	var form models.TierForm
	if err := decodeJSON(r, &form); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	tier, err := c.services.Sponsors.UpdateTier(r.Context(), id, &form)
	if err != nil {
		switch {
		case strings.Contains(err.Error(), "validation failed"):
			respondError(w, http.StatusBadRequest, err.Error())
		case strings.Contains(err.Error(), "not found"):
			respondError(w, http.StatusNotFound, err.Error())
		default:
			respondError(w, http.StatusInternalServerError, "Failed to update tier: "+err.Error())
		}
		return
	}

	respondJSON(w, http.StatusOK, tier)
}

// DeleteTier handles DELETE /sponsor-tiers/{id}. Sponsors bound to the
// tier are moved to the best remaining tier before the tier is removed.
func (c *SponsorController) DeleteTier(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid tier ID")
		return
	}

	if err := c.services.Sponsors.DeleteTier(r.Context(), id); err != nil {
		if strings.Contains(err.Error(), "not found") {
			respondError(w, http.StatusNotFound, err.Error())
			return
		}
		respondError(w, http.StatusInternalServerError, "Failed to delete tier: "+err.Error())
		return
	}

	respondJSON(w, http.StatusNoContent, nil)
}
