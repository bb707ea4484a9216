package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/hackvent/hackvent-backend/models"
	"github.com/hackvent/hackvent-backend/services"
)

// TeamController handles team management requests
type TeamController struct {
	services *services.Services
}

// NewTeamController creates a new team controller
func NewTeamController(services *services.Services) *TeamController {
	return &TeamController{
		services: services,
	}
}

// Index handles GET /events/{id}/teams
func (c *TeamController) Index(w http.ResponseWriter, r *http.Request) {
	eventID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid event ID")
		return
	}

	teams, err := c.services.Teams.GetTeamsByEvent(r.Context(), eventID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to load teams: "+err.Error())
		return
	}

	respondJSON(w, http.StatusOK, teams)
}

// Show handles GET /teams/{id}
func (c *TeamController) Show(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid team ID")
		return
	}

	team, err := c.services.Teams.GetTeamByID(r.Context(), id)
	if err != nil {
		respondError(w, http.StatusNotFound, "Team not found: "+err.Error())
		return
	}

	respondJSON(w, http.StatusOK, team)
}

// Members handles GET /teams/{id}/members
func (c *TeamController) Members(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid team ID")
		return
	}

	members, err := c.services.Teams.GetTeamMembers(r.Context(), id)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to load members: "+err.Error())
		return
	}

	respondJSON(w, http.StatusOK, members)
}

// Create handles POST /teams
func (c *TeamController) Create(w http.ResponseWriter, r *http.Request) {
	var form models.TeamForm
	if err := decodeJSON(r, &form); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	team, err := c.services.Teams.CreateTeam(r.Context(), &form)
	if err != nil {
		switch {
		case strings.Contains(err.Error(), "validation failed"):
			respondError(w, http.StatusBadRequest, err.Error())
		case strings.Contains(err.Error(), "not found"):
			respondError(w, http.StatusNotFound, err.Error())
		default:
			respondError(w, http.StatusInternalServerError, "Failed to create team: "+err.Error())
		}
		return
	}

	respondJSON(w, http.StatusCreated, team)
}

// Update handles PUT /teams/{id}
func (c *TeamController) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid team ID")
		return
	}

	var form models.TeamForm
	if err := decodeJSON(r, &form); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	team, err := c.services.Teams.UpdateTeam(r.Context(), id, &form)
	if err != nil {
		switch {
		case strings.Contains(err.Error(), "validation failed"):
			respondError(w, http.StatusBadRequest, err.Error())
		case strings.Contains(err.Error(), "not found"):
			respondError(w, http.StatusNotFound, err.Error())
		default:
			respondError(w, http.StatusInternalServerError, "Failed to update team: "+err.Error())
		}
		return
	}

	respondJSON(w, http.StatusOK, team)
}

// Delete handles DELETE /teams/{id}
func (c *TeamController) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid team ID")
		return
	}

	if err := c.services.Teams.DeleteTeam(r.Context(), id); err != nil {
		if strings.Contains(err.Error(), "not found") {
			respondError(w, http.StatusNotFound, err.Error())
			return
		}
		respondError(w, http.StatusInternalServerError, "Failed to delete team: "+err.Error())
		return
	}

	respondJSON(w, http.StatusNoContent, nil)
}

// memberForm is the body for adding or removing a team member
type memberForm struct {
	UserID int `json:"user_id"`
}

// AddMember handles POST /teams/{id}/members
func (c *TeamController) AddMember(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid team ID")
		return
	}

	var form memberForm
	if err := decodeJSON(r, &form); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if form.UserID <= 0 {
		respondError(w, http.StatusBadRequest, "user_id is required")
		return
	}

	if err := c.services.Teams.AddMember(r.Context(), id, form.UserID); err != nil {
		if strings.Contains(err.Error(), "not found") || strings.Contains(err.Error(), "not registered") {
			respondError(w, http.StatusNotFound, err.Error())
			return
		}
		respondError(w, http.StatusInternalServerError, "Failed to add member: "+err.Error())
		return
	}

	respondJSON(w, http.StatusNoContent, nil)
}

// RemoveMember handles DELETE /teams/{id}/members/{userID}
func (c *TeamController) RemoveMember(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid team ID")
		return
	}

	userID, err := strconv.Atoi(chi.URLParam(r, "userID"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	if err := c.services.Teams.RemoveMember(r.Context(), id, userID); err != nil {
		if strings.Contains(err.Error(), "not found") || strings.Contains(err.Error(), "not registered") {
			respondError(w, http.StatusNotFound, err.Error())
			return
		}
		respondError(w, http.StatusInternalServerError, "Failed to remove member: "+err.Error())
		return
	}

	respondJSON(w, http.StatusNoContent, nil)
}
