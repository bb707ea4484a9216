package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/hackvent/hackvent-backend/services"
)

// respondJSON writes data as a JSON response with the provided status code
func respondJSON(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if data == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logrus.WithError(err).Error("failed to encode JSON response")
	}
}

// respondError writes an error message as a JSON response
func respondError(w http.ResponseWriter, statusCode int, message string) {
	respondJSON(w, statusCode, map[string]any{"error": message})
}

// decodeJSON decodes the request body into dst, rejecting unknown fields
func decodeJSON(r *http.Request, dst any) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(dst)
}

// Controllers holds all controller instances
type Controllers struct {
	Users    *UserController
	Events   *EventController
	Teams    *TeamController
	Sponsors *SponsorController
	Hardware *HardwareController
	Audit    *AuditController
}

// NewControllers creates and initializes all controller instances
func NewControllers(services *services.Services) *Controllers {
	return &Controllers{
		Users:    NewUserController(services),
		Events:   NewEventController(services),
		Teams:    NewTeamController(services),
		Sponsors: NewSponsorController(services),
		Hardware: NewHardwareController(services),
		Audit:    NewAuditController(services),
	}
}
