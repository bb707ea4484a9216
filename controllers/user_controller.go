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

// UserController handles account and user management requests
type UserController struct {
	services *services.Services
}

// NewUserController creates a new user controller
func NewUserController(services *services.Services) *UserController {
	return &UserController{
		services: services,
	}
}

// authResponse is the body returned by Register and Login
type authResponse struct {
	User  *models.User `json:"user"`
	Token string       `json:"token"`
}

// Register handles POST /auth/register
func (c *UserController) Register(w http.ResponseWriter, r *http.Request) {
	var form models.RegisterForm
	if err := decodeJSON(r, &form); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	user, token, err := c.services.Users.Register(r.Context(), &form)
	if err != nil {
		switch {
		case strings.Contains(err.Error(), "validation failed"):
			respondError(w, http.StatusBadRequest, err.Error())
		case strings.Contains(err.Error(), "already exists"):
			respondError(w, http.StatusConflict, err.Error())
		case strings.Contains(err.Error(), "not permitted"),
			strings.Contains(err.Error(), "not open for registration"):
			respondError(w, http.StatusForbidden, err.Error())
		default:
			respondError(w, http.StatusInternalServerError, "Failed to register: "+err.Error())
		}
		return
	}

	respondJSON(w, http.StatusCreated, authResponse{User: user, Token: token})
}

// Login handles POST /auth/login
func (c *UserController) Login(w http.ResponseWriter, r *http.Request) {
	var form models.LoginForm
	if err := decodeJSON(r, &form); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	user, token, err := c.services.Users.Login(r.Context(), &form)
	if err != nil {
		if strings.Contains(err.Error(), "validation failed") {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		respondError(w, http.StatusUnauthorized, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, authResponse{User: user, Token: token})
}

// Me handles GET /me
func (c *UserController) Me(w http.ResponseWriter, r *http.Request) {
	actorID := userctx.ActorID(r.Context())
	if actorID == nil {
		respondError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	user, err := c.services.Users.GetUserByID(r.Context(), *actorID)
	if err != nil {
		respondError(w, http.StatusNotFound, "User not found: "+err.Error())
		return
	}

	respondJSON(w, http.StatusOK, user)
}

// Index handles GET /users
func (c *UserController) Index(w http.ResponseWriter, r *http.Request) {
	users, err := c.services.Users.GetAllUsers(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to load users: "+err.Error())
		return
	}

	respondJSON(w, http.StatusOK, users)
}

// Show handles GET /users/{id}
func (c *UserController) Show(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	user, err := c.services.Users.GetUserByID(r.Context(), id)
	if err != nil {
		respondError(w, http.StatusNotFound, "User not found: "+err.Error())
		return
	}

	respondJSON(w, http.StatusOK, user)
}

// Update handles PUT /users/{id}
func (c *UserController) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	var form models.UserUpdateForm
	if err := decodeJSON(r, &form); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	user, err := c.services.Users.UpdateUser(r.Context(), id, &form)
	if err != nil {
		switch {
		case strings.Contains(err.Error(), "validation failed"):
			respondError(w, http.StatusBadRequest, err.Error())
		case strings.Contains(err.Error(), "not found"):
			respondError(w, http.StatusNotFound, err.Error())
		default:
			respondError(w, http.StatusInternalServerError, "Failed to update user: "+err.Error())
		}
		return
	}

	respondJSON(w, http.StatusOK, user)
}

// Delete handles DELETE /users/{id}
func (c *UserController) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	if err := c.services.Users.DeleteUser(r.Context(), id); err != nil {
		if strings.Contains(err.Error(), "not found") {
			respondError(w, http.StatusNotFound, err.Error())
			return
		}
		respondError(w, http.StatusInternalServerError, "Failed to delete user: "+err.Error())
		return
	}

	respondJSON(w, http.StatusNoContent, nil)
}
