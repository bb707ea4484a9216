package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/hackvent/hackvent-backend/models"
	"github.com/hackvent/hackvent-backend/services"
)

// EventController handles event management requests
type EventController struct {
	services *services.Services
}

// NewEventController creates a new event controller
func NewEventController(services *services.Services) *EventController {
	return &EventController{
		services: services,
	}
}

// Index handles GET /events
func (c *EventController) Index(w http.ResponseWriter, r *http.Request) {
	events, err := c.services.Events.GetAllEvents(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to load events: "+err.Error())
		return
	}

	respondJSON(w, http.StatusOK, events)
}

// Active handles GET /events/active
func (c *EventController) Active(w http.ResponseWriter, r *http.Request) {
	event, err := c.services.Events.GetActiveEvent(r.Context())
	if err != nil {
		respondError(w, http.StatusNotFound, "No active event: "+err.Error())
		return
	}

	respondJSON(w, http.StatusOK, event)
}

// Show handles GET /events/{id}
func (c *EventController) Show(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid event ID")
		return
	}

	event, err := c.services.Events.GetEventByID(r.Context(), id)
	if err != nil {
		respondError(w, http.StatusNotFound, "Event not found: "+err.Error())
		return
	}

	respondJSON(w, http.StatusOK, event)
}

// Create handles POST /events
func (c *EventController) Create(w http.ResponseWriter, r *http.Request) {
	var form models.EventForm
	if err := decodeJSON(r, &form); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	event, err := c.services.Events.CreateEvent(r.Context(), &form)
	if err != nil {
		if strings.Contains(err.Error(), "validation failed") {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		respondError(w, http.StatusInternalServerError, "Failed to create event: "+err.Error())
		return
	}

	respondJSON(w, http.StatusCreated, event)
}

// Update handles PUT /events/{id}
func (c *EventController) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid event ID")
		return
	}

	var form models.EventForm
	if err := decodeJSON(r, &form); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	event, err := c.services.Events.UpdateEvent(r.Context(), id, &form)
	if err != nil {
		switch {
		case strings.Contains(err.Error(), "validation failed"):
			respondError(w, http.StatusBadRequest, err.Error())
		case strings.Contains(err.Error(), "not found"):
			respondError(w, http.StatusNotFound, err.Error())
		case strings.Contains(err.Error(), "locked"):
			respondError(w, http.StatusConflict, err.Error())
		default:
			respondError(w, http.StatusInternalServerError, "Failed to update event: "+err.Error())
		}
		return
	}

	respondJSON(w, http.StatusOK, event)
}

// Delete handles DELETE /events/{id}
func (c *EventController) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid event ID")
		return
	}

	if err := c.services.Events.DeleteEvent(r.Context(), id); err != nil {
		if strings.Contains(err.Error(), "not found") {
			respondError(w, http.StatusNotFound, err.Error())
			return
		}
		respondError(w, http.StatusInternalServerError, "Failed to delete event: "+err.Error())
		return
	}

	respondJSON(w, http.StatusNoContent, nil)
}

// Participants handles GET /events/{id}/participants
func (c *EventController) Participants(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid event ID")
		return
	}

	participants, err := c.services.Events.GetParticipants(r.Context(), id)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to load participants: "+err.Error())
		return
	}

	respondJSON(w, http.StatusOK, participants)
}
