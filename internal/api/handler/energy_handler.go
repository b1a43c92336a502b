package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/orionasc/enflow/internal/domain"
	"github.com/orionasc/enflow/internal/service"
	"github.com/orionasc/enflow/pkg/problem"
)

type EnergyHandler struct {
	service service.EnergyService
}

func NewEnergyHandler(service service.EnergyService) *EnergyHandler {
	return &EnergyHandler{service: service}
}

// Summary handles GET /v1/users/{userId}/energy/{date}/summary
// @Summary Observed day energy
// @Description Mental/physical sub-scores, hourly waveform with event deltas, coverage and confidence for one day, from observed data only.
// @Tags energy
// @Produce json
// @Param userId path string true "User UUID" format(uuid)
// @Param date path string true "Calendar day (YYYY-MM-DD)" format(date)
// @Success 200 {object} domain.DayEnergySummary "Day summary"
// @Failure 400 {object} problem.Problem "Invalid parameters"
// @Failure 404 {object} problem.Problem "User not found"
// @Failure 500 {object} problem.Problem "Server error"
// @Router /users/{userId}/energy/{date}/summary [get]
func (h *EnergyHandler) Summary(w http.ResponseWriter, r *http.Request) {
	userID, day, ok := h.parseUserDay(w, r)
	if !ok {
		return
	}

	summary, err := h.service.Summary(r.Context(), userID, day)
	if err != nil {
		h.writeError(w, err, "Failed to compute summary")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(summary)
}

// Forecast handles GET /v1/users/{userId}/energy/{date}/forecast
// @Summary Forecast day energy
// @Description Projected hourly waveform from the historical baseline, circadian curve, event windows, and profile. 404 when no health history can support a forecast.
// @Tags energy
// @Produce json
// @Param userId path string true "User UUID" format(uuid)
// @Param date path string true "Calendar day (YYYY-MM-DD)" format(date)
// @Success 200 {object} domain.DayEnergyForecast "Day forecast"
// @Failure 400 {object} problem.Problem "Invalid parameters"
// @Failure 404 {object} problem.Problem "User not found or no forecast available"
// @Failure 500 {object} problem.Problem "Server error"
// @Router /users/{userId}/energy/{date}/forecast [get]
func (h *EnergyHandler) Forecast(w http.ResponseWriter, r *http.Request) {
	userID, day, ok := h.parseUserDay(w, r)
	if !ok {
		return
	}

	forecast, err := h.service.Forecast(r.Context(), userID, day)
	if err != nil {
		h.writeError(w, err, "Failed to compute forecast")
		return
	}
	if forecast == nil {
		problem.NotFound("No forecast available for this day").Write(w)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(forecast)
}

// Blended handles GET /v1/users/{userId}/energy/{date}/blended
// @Summary Blended day energy
// @Description Primary day view: observed hours up to now, forecast hours afterwards; future days are forecast wholesale, past days stay observed with forecast accuracy recorded.
// @Tags energy
// @Produce json
// @Param userId path string true "User UUID" format(uuid)
// @Param date path string true "Calendar day (YYYY-MM-DD)" format(date)
// @Success 200 {object} domain.DayEnergySummary "Blended summary"
// @Failure 400 {object} problem.Problem "Invalid parameters"
// @Failure 404 {object} problem.Problem "User not found"
// @Failure 500 {object} problem.Problem "Server error"
// @Router /users/{userId}/energy/{date}/blended [get]
func (h *EnergyHandler) Blended(w http.ResponseWriter, r *http.Request) {
	userID, day, ok := h.parseUserDay(w, r)
	if !ok {
		return
	}

	summary, err := h.service.Blended(r.Context(), userID, day)
	if err != nil {
		h.writeError(w, err, "Failed to compute blended summary")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(summary)
}

// Accuracy handles GET /v1/users/{userId}/energy/accuracy
// @Summary Trailing forecast accuracy
// @Description Average recorded per-day forecast accuracy over the last N days; days without a recorded value are skipped. 404 when nothing is recorded in the window.
// @Tags energy
// @Produce json
// @Param userId path string true "User UUID" format(uuid)
// @Param days query integer false "Window length in days (default 7)" default(7)
// @Success 200 {object} domain.AccuracyResponse "Trailing accuracy"
// @Failure 400 {object} problem.Problem "Invalid parameters"
// @Failure 404 {object} problem.Problem "User not found or no recorded accuracy"
// @Failure 500 {object} problem.Problem "Server error"
// @Router /users/{userId}/energy/accuracy [get]
func (h *EnergyHandler) Accuracy(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(chi.URLParam(r, "userId"))
	if err != nil {
		problem.BadRequest("Invalid user ID format").Write(w)
		return
	}

	days := 7
	if raw := r.URL.Query().Get("days"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			problem.BadRequest("days must be a positive integer").Write(w)
			return
		}
		days = n
	}

	accuracy, ok, err := h.service.TrailingAccuracy(r.Context(), userID, days)
	if err != nil {
		h.writeError(w, err, "Failed to compute accuracy")
		return
	}
	if !ok {
		problem.NotFound("No recorded accuracy in the window").Write(w)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(domain.AccuracyResponse{Days: days, Accuracy: accuracy})
}

func (h *EnergyHandler) parseUserDay(w http.ResponseWriter, r *http.Request) (uuid.UUID, time.Time, bool) {
	userID, err := uuid.Parse(chi.URLParam(r, "userId"))
	if err != nil {
		problem.BadRequest("Invalid user ID format").Write(w)
		return uuid.Nil, time.Time{}, false
	}
	day, err := time.Parse("2006-01-02", chi.URLParam(r, "date"))
	if err != nil {
		problem.BadRequest("date must be a calendar day in YYYY-MM-DD format").Write(w)
		return uuid.Nil, time.Time{}, false
	}
	return userID, day, true
}

func (h *EnergyHandler) writeError(w http.ResponseWriter, err error, fallback string) {
	if errors.Is(err, domain.ErrNotFound) {
		problem.NotFound("User not found").Write(w)
		return
	}
	problem.InternalError(fallback).Write(w)
}
