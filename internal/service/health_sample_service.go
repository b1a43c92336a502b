package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/orionasc/enflow/internal/domain"
	"github.com/orionasc/enflow/internal/repository"
	"github.com/orionasc/enflow/pkg/pagination"
	"gorm.io/datatypes"
)

// HealthSampleService stores and lists daily health aggregates; this is the
// ingestion side of the health acquisition contract.
type HealthSampleService interface {
	Upsert(ctx context.Context, userID uuid.UUID, req *domain.UpsertHealthSampleRequest) (*domain.HealthSampleRecord, error)
	List(ctx context.Context, userID uuid.UUID, filter domain.HealthSampleFilter) (*domain.HealthSampleListResponse, error)
}

type healthSampleService struct {
	sampleRepo repository.HealthSampleRepository
	userRepo   repository.UserRepository
}

// NewHealthSampleService creates a new HealthSampleService.
func NewHealthSampleService(sampleRepo repository.HealthSampleRepository, userRepo repository.UserRepository) HealthSampleService {
	return &healthSampleService{sampleRepo: sampleRepo, userRepo: userRepo}
}

func (s *healthSampleService) Upsert(ctx context.Context, userID uuid.UUID, req *domain.UpsertHealthSampleRequest) (*domain.HealthSampleRecord, error) {
	exists, err := s.userRepo.Exists(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, domain.ErrNotFound
	}

	available := domain.NewMetricSet()
	for _, kind := range req.AvailableMetrics {
		if !knownMetric(kind) {
			return nil, domain.ErrInvalidInput
		}
		available.Add(kind)
	}
	availableJSON, err := json.Marshal(available)
	if err != nil {
		return nil, err
	}

	// Validated by the dayformat rule before reaching here.
	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return nil, domain.ErrInvalidDay
	}

	record := &domain.HealthSampleRecord{
		UserID:           userID,
		Date:             date,
		HRV:              req.HRV,
		RestingHR:        req.RestingHR,
		SleepEfficiency:  req.SleepEfficiency,
		SleepLatency:     req.SleepLatency,
		DeepSleepMinutes: req.DeepSleepMinutes,
		REMSleepMinutes:  req.REMSleepMinutes,
		StepCount:        req.StepCount,
		ActiveEnergy:     req.ActiveEnergy,
		AvailableMetrics: datatypes.JSON(availableJSON),
		HasSamples:       true,
	}
	if err := s.sampleRepo.Upsert(ctx, record); err != nil {
		return nil, err
	}
	return record, nil
}

func (s *healthSampleService) List(ctx context.Context, userID uuid.UUID, filter domain.HealthSampleFilter) (*domain.HealthSampleListResponse, error) {
	exists, err := s.userRepo.Exists(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, domain.ErrNotFound
	}

	records, err := s.sampleRepo.List(ctx, userID, filter)
	if err != nil {
		return nil, err
	}

	limit := pagination.NormalizeLimit(filter.Limit)
	response := &domain.HealthSampleListResponse{Data: records}
	if len(records) > limit {
		response.Data = records[:limit]
		last := response.Data[len(response.Data)-1]
		cursor := pagination.Cursor{Date: last.Date, ID: last.ID}
		response.Pagination.NextCursor = cursor.Encode()
		response.Pagination.HasMore = true
	}
	return response, nil
}

func knownMetric(kind domain.MetricKind) bool {
	for _, known := range domain.AllMetrics {
		if kind == known {
			return true
		}
	}
	return false
}
