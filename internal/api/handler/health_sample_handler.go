package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/orionasc/enflow/internal/api/validation"
	"github.com/orionasc/enflow/internal/domain"
	"github.com/orionasc/enflow/internal/service"
	"github.com/orionasc/enflow/pkg/problem"
)

type HealthSampleHandler struct {
	service service.HealthSampleService
}

func NewHealthSampleHandler(service service.HealthSampleService) *HealthSampleHandler {
	return &HealthSampleHandler{service: service}
}

// Upsert handles POST /v1/users/{userId}/health-samples
// @Summary Record a day of health data
// @Description Insert or replace the daily aggregate for one calendar day. The available_metrics list declares which fields were actually measured; unlisted fields are ignored by the estimators.
// @Tags health-samples
// @Accept json
// @Produce json
// @Param userId path string true "User UUID" format(uuid)
// @Param request body domain.UpsertHealthSampleRequest true "Daily health aggregate"
// @Success 200 {object} domain.HealthSampleRecord "Sample stored"
// @Failure 400 {object} problem.Problem "Invalid request body or parameters"
// @Failure 404 {object} problem.Problem "User not found"
// @Failure 422 {object} problem.Problem "Validation failed"
// @Failure 500 {object} problem.Problem "Server error"
// @Router /users/{userId}/health-samples [post]
func (h *HealthSampleHandler) Upsert(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(chi.URLParam(r, "userId"))
	if err != nil {
		problem.BadRequest("Invalid user ID format").Write(w)
		return
	}

	var req domain.UpsertHealthSampleRequest
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
		if errors.Is(err, domain.ErrInvalidInput) {
			problem.BadRequest("Unknown metric kind in available_metrics").Write(w)
			return
		}
		problem.InternalError("Failed to store health sample").Write(w)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(record)
}

// List handles GET /v1/users/{userId}/health-samples
// @Summary List health samples
// @Description Fetch daily health aggregates newest-first with cursor pagination. Filter by date range.
// @Tags health-samples
// @Produce json
// @Param userId path string true "User UUID" format(uuid)
// @Param from query string false "Start of date range (YYYY-MM-DD)" format(date)
// @Param to query string false "End of date range (YYYY-MM-DD)" format(date)
// @Param limit query integer false "Results per page (1-100)" default(20)
// @Param cursor query string false "Cursor from previous response's next_cursor"
// @Success 200 {object} domain.HealthSampleListResponse "Samples with pagination"
// @Failure 400 {object} problem.Problem "Invalid query parameters"
// @Failure 404 {object} problem.Problem "User not found"
// @Failure 500 {object} problem.Problem "Server error"
// @Router /users/{userId}/health-samples [get]
func (h *HealthSampleHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(chi.URLParam(r, "userId"))
	if err != nil {
		problem.BadRequest("Invalid user ID format").Write(w)
		return
	}

	filter, fieldErrors := parseSampleFilter(r)
	if fieldErrors != nil {
		problem.ValidationError("Invalid query parameters", fieldErrors).Write(w)
		return
	}

	response, err := h.service.List(r.Context(), userID, filter)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			problem.NotFound("User not found").Write(w)
			return
		}
		problem.InternalError("Failed to list health samples").Write(w)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

func parseSampleFilter(r *http.Request) (domain.HealthSampleFilter, []problem.FieldError) {
	var filter domain.HealthSampleFilter
	var fieldErrors []problem.FieldError

	if from := r.URL.Query().Get("from"); from != "" {
		t, err := time.Parse("2006-01-02", from)
		if err != nil {
			fieldErrors = append(fieldErrors, problem.FieldError{Field: "from", Message: "must be a calendar day in YYYY-MM-DD format"})
		} else {
			filter.From = &t
		}
	}
	if to := r.URL.Query().Get("to"); to != "" {
		t, err := time.Parse("2006-01-02", to)
		if err != nil {
			fieldErrors = append(fieldErrors, problem.FieldError{Field: "to", Message: "must be a calendar day in YYYY-MM-DD format"})
		} else {
			filter.To = &t
		}
	}
	if limit := r.URL.Query().Get("limit"); limit != "" {
		n, err := strconv.Atoi(limit)
		if err != nil || n < 1 || n > 100 {
			fieldErrors = append(fieldErrors, problem.FieldError{Field: "limit", Message: "must be between 1 and 100"})
		} else {
			filter.Limit = n
		}
	}
	filter.Cursor = r.URL.Query().Get("cursor")

	if fieldErrors != nil {
		return domain.HealthSampleFilter{}, fieldErrors
	}
	return filter, nil
}
