package handler

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/orionasc/enflow/internal/domain"
)

func TestHealthSampleHandler_Upsert(t *testing.T) {
	userID := uuid.New()

	tests := []struct {
		name           string
		body           string
		mockService    *MockHealthSampleService
		wantStatusCode int
	}{
		{
			name:           "valid request",
			body:           `{"date": "2026-08-20", "step_count": 9200, "resting_hr": 58, "available_metrics": ["stepCount", "restingHR"]}`,
			mockService:    &MockHealthSampleService{},
			wantStatusCode: http.StatusOK,
		},
		{
			name:           "invalid JSON",
			body:           `{invalid}`,
			mockService:    &MockHealthSampleService{},
			wantStatusCode: http.StatusBadRequest,
		},
		{
			name:           "missing date",
			body:           `{"step_count": 9200, "available_metrics": ["stepCount"]}`,
			mockService:    &MockHealthSampleService{},
			wantStatusCode: http.StatusUnprocessableEntity,
		},
		{
			name:           "bad date format",
			body:           `{"date": "08/20/2026", "available_metrics": ["stepCount"]}`,
			mockService:    &MockHealthSampleService{},
			wantStatusCode: http.StatusUnprocessableEntity,
		},
		{
			name:           "empty available metrics",
			body:           `{"date": "2026-08-20", "available_metrics": []}`,
			mockService:    &MockHealthSampleService{},
			wantStatusCode: http.StatusUnprocessableEntity,
		},
		{
			name: "unknown metric kind",
			body: `{"date": "2026-08-20", "available_metrics": ["bloodPressure"]}`,
			mockService: &MockHealthSampleService{
				upsertFunc: func(ctx context.Context, id uuid.UUID, req *domain.UpsertHealthSampleRequest) (*domain.HealthSampleRecord, error) {
					return nil, domain.ErrInvalidInput
				},
			},
			wantStatusCode: http.StatusBadRequest,
		},
		{
			name: "unknown user",
			body: `{"date": "2026-08-20", "available_metrics": ["stepCount"]}`,
			mockService: &MockHealthSampleService{
				upsertFunc: func(ctx context.Context, id uuid.UUID, req *domain.UpsertHealthSampleRequest) (*domain.HealthSampleRecord, error) {
					return nil, domain.ErrNotFound
				},
			},
			wantStatusCode: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewHealthSampleHandler(tt.mockService)

			req := httptest.NewRequest(http.MethodPost, "/v1/users/"+userID.String()+"/health-samples", bytes.NewBufferString(tt.body))
			req.Header.Set("Content-Type", "application/json")
			rec := httptest.NewRecorder()

			rctx := chi.NewRouteContext()
			rctx.URLParams.Add("userId", userID.String())
			req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))

			handler.Upsert(rec, req)

			if rec.Code != tt.wantStatusCode {
				t.Errorf("Upsert() status = %d, want %d, body: %s", rec.Code, tt.wantStatusCode, rec.Body.String())
			}
		})
	}
}

func TestHealthSampleHandler_List(t *testing.T) {
	userID := uuid.New()

	tests := []struct {
		name           string
		query          string
		mockService    *MockHealthSampleService
		wantStatusCode int
	}{
		{
			name:           "no filters",
			query:          "",
			mockService:    &MockHealthSampleService{},
			wantStatusCode: http.StatusOK,
		},
		{
			name:           "date range",
			query:          "?from=2026-08-01&to=2026-08-20&limit=10",
			mockService:    &MockHealthSampleService{},
			wantStatusCode: http.StatusOK,
		},
		{
			name:           "bad from date",
			query:          "?from=yesterday",
			mockService:    &MockHealthSampleService{},
			wantStatusCode: http.StatusUnprocessableEntity,
		},
		{
			name:           "limit out of range",
			query:          "?limit=500",
			mockService:    &MockHealthSampleService{},
			wantStatusCode: http.StatusUnprocessableEntity,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewHealthSampleHandler(tt.mockService)

			req := httptest.NewRequest(http.MethodGet, "/v1/users/"+userID.String()+"/health-samples"+tt.query, nil)
			rec := httptest.NewRecorder()

			rctx := chi.NewRouteContext()
			rctx.URLParams.Add("userId", userID.String())
			req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))

			handler.List(rec, req)

			if rec.Code != tt.wantStatusCode {
				t.Errorf("List() status = %d, want %d, body: %s", rec.Code, tt.wantStatusCode, rec.Body.String())
			}
		})
	}
}
