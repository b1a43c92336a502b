package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/orionasc/enflow/internal/api/validation"
	"github.com/orionasc/enflow/internal/domain"
	"github.com/orionasc/enflow/internal/service"
	"github.com/orionasc/enflow/pkg/problem"
)

type CalendarEventHandler struct {
	service service.CalendarEventService
}

func NewCalendarEventHandler(service service.CalendarEventService) *CalendarEventHandler {
	return &CalendarEventHandler{service: service}
}

// Create handles POST /v1/users/{userId}/events
// @Summary Record a calendar event
// @Description Store a scheduled item. energy_delta may be pre-scored in [-1, 1]; unscored events are classified from title and duration when consumed.
// @Tags events
// @Accept json
// @Produce json
// @Param userId path string true "User UUID" format(uuid)
// @Param request body domain.CreateCalendarEventRequest true "Calendar event"
// @Success 201 {object} domain.CalendarEventRecord "Event created"
// @Failure 400 {object} problem.Problem "Invalid request body or parameters"
// @Failure 404 {object} problem.Problem "User not found"
// @Failure 422 {object} problem.Problem "Validation failed"
// @Failure 500 {object} problem.Problem "Server error"
// @Router /users/{userId}/events [post]
func (h *CalendarEventHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(chi.URLParam(r, "userId"))
	if err != nil {
		problem.BadRequest("Invalid user ID format").Write(w)
		return
	}

	var req domain.CreateCalendarEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		problem.BadRequest("Invalid JSON body").Write(w)
		return
	}

	if fieldErrors := validation.Validate(req); fieldErrors != nil {
		problem.ValidationError("Request body contains invalid fields", fieldErrors).Write(w)
		return
	}

	record, err := h.service.Create(r.Context(), userID, &req)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			problem.NotFound("User not found").Write(w)
			return
		}
		problem.InternalError("Failed to create event").Write(w)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(record)
}

// List handles GET /v1/users/{userId}/events
// @Summary List calendar events
// @Description Fetch events starting within [from, to), ordered by start time.
// @Tags events
// @Produce json
// @Param userId path string true "User UUID" format(uuid)
// @Param from query string true "Range start (RFC3339)" format(date-time)
// @Param to query string true "Range end (RFC3339)" format(date-time)
// @Success 200 {object} domain.CalendarEventListResponse "Events in range"
// @Failure 400 {object} problem.Problem "Invalid query parameters"
// @Failure 404 {object} problem.Problem "User not found"
// @Failure 500 {object} problem.Problem "Server error"
// @Router /users/{userId}/events [get]
func (h *CalendarEventHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(chi.URLParam(r, "userId"))
	if err != nil {
		problem.BadRequest("Invalid user ID format").Write(w)
		return
	}

	from, err := time.Parse(time.RFC3339, r.URL.Query().Get("from"))
	if err != nil {
		problem.BadRequest("from must be an RFC3339 timestamp").Write(w)
		return
	}
	to, err := time.Parse(time.RFC3339, r.URL.Query().Get("to"))
	if err != nil {
		problem.BadRequest("to must be an RFC3339 timestamp").Write(w)
		return
	}

	response, err := h.service.ListRange(r.Context(), userID, from, to)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			problem.NotFound("User not found").Write(w)
			return
		}
		problem.InternalError("Failed to list events").Write(w)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

// Delete handles DELETE /v1/users/{userId}/events/{eventId}
// @Summary Delete a calendar event
// @Tags events
// @Param userId path string true "User UUID" format(uuid)
// @Param eventId path string true "Event UUID" format(uuid)
// @Success 204 "Event deleted"
// @Failure 400 {object} problem.Problem "Invalid parameters"
// @Failure 404 {object} problem.Problem "User or event not found"
// @Failure 500 {object} problem.Problem "Server error"
// @Router /users/{userId}/events/{eventId} [delete]
func (h *CalendarEventHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(chi.URLParam(r, "userId"))
	if err != nil {
		problem.BadRequest("Invalid user ID format").Write(w)
		return
	}
	eventID, err := uuid.Parse(chi.URLParam(r, "eventId"))
	if err != nil {
		problem.BadRequest("Invalid event ID format").Write(w)
		return
	}

	if err := h.service.Delete(r.Context(), userID, eventID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			problem.NotFound("User or event not found").Write(w)
			return
		}
		problem.InternalError("Failed to delete event").Write(w)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
