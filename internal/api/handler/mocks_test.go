package handler

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/orionasc/enflow/internal/domain"
)

// MockEnergyService is a mock implementation of EnergyService
type MockEnergyService struct {
	summaryFunc  func(ctx context.Context, userID uuid.UUID, day time.Time) (*domain.DayEnergySummary, error)
	forecastFunc func(ctx context.Context, userID uuid.UUID, day time.Time) (*domain.DayEnergyForecast, error)
	blendedFunc  func(ctx context.Context, userID uuid.UUID, day time.Time) (*domain.DayEnergySummary, error)
	accuracyFunc func(ctx context.Context, userID uuid.UUID, days int) (float64, bool, error)
}

func (m *MockEnergyService) Summary(ctx context.Context, userID uuid.UUID, day time.Time) (*domain.DayEnergySummary, error) {
	if m.summaryFunc != nil {
		return m.summaryFunc(ctx, userID, day)
	}
	return &domain.DayEnergySummary{
		OverallEnergyScore: 50,
		HourlyWaveform:     make([]float64, domain.HoursPerDay),
	}, nil
}

func (m *MockEnergyService) Forecast(ctx context.Context, userID uuid.UUID, day time.Time) (*domain.DayEnergyForecast, error) {
	if m.forecastFunc != nil {
		return m.forecastFunc(ctx, userID, day)
	}
	return &domain.DayEnergyForecast{
		Date:            day,
		Values:          make([]float64, domain.HoursPerDay),
		Score:           0.5,
		ConfidenceScore: 0.8,
		SourceType:      domain.SourceHistoricalModel,
	}, nil
}

func (m *MockEnergyService) Blended(ctx context.Context, userID uuid.UUID, day time.Time) (*domain.DayEnergySummary, error) {
	if m.blendedFunc != nil {
		return m.blendedFunc(ctx, userID, day)
	}
	return &domain.DayEnergySummary{
		OverallEnergyScore: 50,
		HourlyWaveform:     make([]float64, domain.HoursPerDay),
	}, nil
}

func (m *MockEnergyService) TrailingAccuracy(ctx context.Context, userID uuid.UUID, days int) (float64, bool, error) {
	if m.accuracyFunc != nil {
		return m.accuracyFunc(ctx, userID, days)
	}
	return 0, false, nil
}

// MockHealthSampleService is a mock implementation of HealthSampleService
type MockHealthSampleService struct {
	upsertFunc func(ctx context.Context, userID uuid.UUID, req *domain.UpsertHealthSampleRequest) (*domain.HealthSampleRecord, error)
	listFunc   func(ctx context.Context, userID uuid.UUID, filter domain.HealthSampleFilter) (*domain.HealthSampleListResponse, error)
}

func (m *MockHealthSampleService) Upsert(ctx context.Context, userID uuid.UUID, req *domain.UpsertHealthSampleRequest) (*domain.HealthSampleRecord, error) {
	if m.upsertFunc != nil {
		return m.upsertFunc(ctx, userID, req)
	}
	day, _ := time.Parse("2006-01-02", req.Date)
	return &domain.HealthSampleRecord{
		ID:         uuid.New(),
		UserID:     userID,
		Date:       day,
		HasSamples: true,
		CreatedAt:  time.Now(),
	}, nil
}

func (m *MockHealthSampleService) List(ctx context.Context, userID uuid.UUID, filter domain.HealthSampleFilter) (*domain.HealthSampleListResponse, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, userID, filter)
	}
	return &domain.HealthSampleListResponse{
		Data:       []domain.HealthSampleRecord{},
		Pagination: domain.PaginationResponse{HasMore: false},
	}, nil
}
