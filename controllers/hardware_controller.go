package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/hackvent/hackvent-backend/models"
	"github.com/hackvent/hackvent-backend/services"
	"github.com/hackvent/hackvent-backend/userctx"
)

// HardwareController handles hardware inventory requests
type HardwareController struct {
	services *services.Services
}

// NewHardwareController creates a new hardware controller
func NewHardwareController(services *services.Services) *HardwareController {
	return &HardwareController{
		services: services,
	}
}

// Catalog handles GET /hardware/catalog
func (c *HardwareController) Catalog(w http.ResponseWriter, r *http.Request) {
	families, err := c.services.Hardware.GetCatalog(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to load catalog: "+err.Error())
		return
	}

	respondJSON(w, http.StatusOK, families)
}

// Index handles GET /hardware
func (c *HardwareController) Index(w http.ResponseWriter, r *http.Request) {
	items, err := c.services.Hardware.GetAllItems(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to load hardware: "+err.Error())
		return
	}

	respondJSON(w, http.StatusOK, items)
}

// Show handles GET /hardware/{id}
func (c *HardwareController) Show(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid hardware ID")
		return
	}

	item, err := c.services.Hardware.GetItemByID(r.Context(), id)
	if err != nil {
		respondError(w, http.StatusNotFound, "Hardware item not found: "+err.Error())
		return
	}

	respondJSON(w, http.StatusOK, item)
}

// Availability handles GET /hardware/availability
func (c *HardwareController) Availability(w http.ResponseWriter, r *http.Request) {
	availability, err := c.services.Hardware.GetAvailability(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to load availability: "+err.Error())
		return
	}

	respondJSON(w, http.StatusOK, availability)
}

// Create handles POST /hardware
func (c *HardwareController) Create(w http.ResponseWriter, r *http.Request) {
	var form models.HardwareForm
	if err := decodeJSON(r, &form); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	item, err := c.services.Hardware.CreateItem(r.Context(), &form)
	if err != nil {
		if strings.Contains(err.Error(), "validation failed") {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		respondError(w, http.StatusInternalServerError, "Failed to create hardware item: "+err.Error())
		return
	}

	respondJSON(w, http.StatusCreated, item)
}

// Update handles PUT /hardware/{id}
func (c *HardwareController) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid hardware ID")
		return
	}

	var form models.HardwareForm
	if err := decodeJSON(r, &form); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	item, err := c.services.Hardware.UpdateItem(r.Context(), id, &form)
	if err != nil {
		switch {
		case strings.Contains(err.Error(), "validation failed"):
			respondError(w, http.StatusBadRequest, err.Error())
		case strings.Contains(err.Error(), "not found"):
			respondError(w, http.StatusNotFound, err.Error())
		default:
			respondError(w, http.StatusInternalServerError, "Failed to update hardware item: "+err.Error())
		}
		return
	}

	respondJSON(w, http.StatusOK, item)
}

// Delete handles DELETE /hardware/{id}
func (c *HardwareController) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid hardware ID")
		return
	}

	if err := c.services.Hardware.DeleteItem(r.Context(), id); err != nil {
		if strings.Contains(err.Error(), "not found") {
			respondError(w, http.StatusNotFound, err.Error())
			return
		}
		respondError(w, http.StatusInternalServerError, "Failed to delete hardware item: "+err.Error())
		return
	}

	respondJSON(w, http.StatusNoContent, nil)
}

// checkoutForm is the body for lending a hardware item. UserID is
// optional for staff: when absent the item is lent to the caller.
type checkoutForm struct {
	UserID int `json:"user_id"`
}

// Checkout handles POST /hardware/{id}/checkout
func (c *HardwareController) Checkout(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid hardware ID")
		return
	}

	var form checkoutForm
	if err := decodeJSON(r, &form); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	userID := form.UserID
	if userID <= 0 {
		actorID := userctx.ActorID(r.Context())
		if actorID == nil {
			respondError(w, http.StatusBadRequest, "user_id is required")
			return
		}
		userID = *actorID
	}

	if err := c.services.Hardware.Checkout(r.Context(), id, userID); err != nil {
		switch {
		case strings.Contains(err.Error(), "not found"):
			respondError(w, http.StatusNotFound, err.Error())
		case strings.Contains(err.Error(), "already checked out"),
			strings.Contains(err.Error(), "not functional"):
			respondError(w, http.StatusConflict, err.Error())
		default:
			respondError(w, http.StatusInternalServerError, "Failed to check out hardware: "+err.Error())
		}
		return
	}

	respondJSON(w, http.StatusNoContent, nil)
}

// Return handles POST /hardware/{id}/return
func (c *HardwareController) Return(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid hardware ID")
		return
	}

	if err := c.services.Hardware.Return(r.Context(), id); err != nil {
		switch {
		case strings.Contains(err.Error(), "not found"):
			respondError(w, http.StatusNotFound, err.Error())
		case strings.Contains(err.Error(), "not checked out"):
			respondError(w, http.StatusConflict, err.Error())
		default:
			respondError(w, http.StatusInternalServerError, "Failed to return hardware: "+err.Error())
		}
		return
	}

	respondJSON(w, http.StatusNoContent, nil)
}

// Images handles GET /hardware/{id}/images
func (c *HardwareController) Images(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid hardware ID")
		return
	}

	images, err := c.services.Hardware.GetImages(r.Context(), id)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to load images: "+err.Error())
		return
	}

	respondJSON(w, http.StatusOK, images)
}

// AddImage handles POST /hardware/{id}/images
func (c *HardwareController) AddImage(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid hardware ID")
		return
	}

	var form models.HardwareImageForm
	if err := decodeJSON(r, &form); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	image, err := c.services.Hardware.AddImage(r.Context(), id, &form)
	if err != nil {
		switch {
		case strings.Contains(err.Error(), "validation failed"):
			respondError(w, http.StatusBadRequest, err.Error())
		case strings.Contains(err.Error(), "not found"):
			respondError(w, http.StatusNotFound, err.Error())
		default:
			respondError(w, http.StatusInternalServerError, "Failed to add image: "+err.Error())
		}
		return
	}

	respondJSON(w, http.StatusCreated, image)
}

// RemoveImage handles DELETE /hardware/images/{imageID}
func (c *HardwareController) RemoveImage(w http.ResponseWriter, r *http.Request) {
	imageID, err := strconv.Atoi(chi.URLParam(r, "imageID"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid image ID")
		return
	}

	if err := c.services.Hardware.RemoveImage(r.Context(), imageID); err != nil {
		if strings.Contains(err.Error(), "not found") {
			respondError(w, http.StatusNotFound, err.Error())
			return
		}
		respondError(w, http.StatusInternalServerError, "Failed to remove image: "+err.Error())
		return
	}

	respondJSON(w, http.StatusNoContent, nil)
}
