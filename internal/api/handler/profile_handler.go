package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/orionasc/enflow/internal/api/validation"
	"github.com/orionasc/enflow/internal/domain"
	"github.com/orionasc/enflow/internal/service"
	"github.com/orionasc/enflow/pkg/problem"
)

type ProfileHandler struct {
	service service.ProfileService
}

func NewProfileHandler(service service.ProfileService) *ProfileHandler {
	return &ProfileHandler{service: service}
}

// Get handles GET /v1/users/{userId}/profile
// @Summary Fetch the user profile
// @Tags profile
// @Produce json
// @Param userId path string true "User UUID" format(uuid)
// @Success 200 {object} domain.ProfileRecord "Profile"
// @Failure 400 {object} problem.Problem "Invalid user ID"
// @Failure 404 {object} problem.Problem "User or profile not found"
// @Failure 500 {object} problem.Problem "Server error"
// @Router /users/{userId}/profile [get]
func (h *ProfileHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(chi.URLParam(r, "userId"))
	if err != nil {
		problem.BadRequest("Invalid user ID format").Write(w)
		return
	}

	record, err := h.service.Get(r.Context(), userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			problem.NotFound("Profile not found").Write(w)
			return
		}
		problem.InternalError("Failed to fetch profile").Write(w)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(record)
}

// Upsert handles PUT /v1/users/{userId}/profile
// @Summary Create or replace the user profile
// @Description Person-level configuration biasing the circadian curve and baseline. Chronotype and clock times are validated here; the estimators assume a well-formed profile.
// @Tags profile
// @Accept json
// @Produce json
// @Param userId path string true "User UUID" format(uuid)
// @Param request body domain.UpsertProfileRequest true "Profile"
// @Success 200 {object} domain.ProfileRecord "Profile stored"
// @Failure 400 {object} problem.Problem "Invalid request body or parameters"
// @Failure 404 {object} problem.Problem "User not found"
// @Failure 422 {object} problem.Problem "Validation failed"
// @Failure 500 {object} problem.Problem "Server error"
// @Router /users/{userId}/profile [put]
func (h *ProfileHandler) Upsert(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(chi.URLParam(r, "userId"))
	if err != nil {
		problem.BadRequest("Invalid user ID format").Write(w)
		return
	}

	var req domain.UpsertProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		problem.BadRequest("Invalid JSON body").Write(w)
		return
	}

	if fieldErrors := validation.Validate(req); fieldErrors != nil {
		problem.ValidationError("Request body contains invalid fields", fieldErrors).Write(w)
		return
	}

	record, err := h.service.Upsert(r.Context(), userID, &req)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			problem.NotFound("User not found").Write(w)
			return
		}
		problem.InternalError("Failed to store profile").Write(w)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(record)
}
