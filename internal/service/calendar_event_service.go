package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/orionasc/enflow/internal/domain"
	"github.com/orionasc/enflow/internal/repository"
)

// CalendarEventService stores and lists scheduled events; the calendar
// acquisition contract.
type CalendarEventService interface {
	Create(ctx context.Context, userID uuid.UUID, req *domain.CreateCalendarEventRequest) (*domain.CalendarEventRecord, error)
	ListRange(ctx context.Context, userID uuid.UUID, from, to time.Time) (*domain.CalendarEventListResponse, error)
	Delete(ctx context.Context, userID, eventID uuid.UUID) error
}

type calendarEventService struct {
	eventRepo repository.CalendarEventRepository
	userRepo  repository.UserRepository
}

// NewCalendarEventService creates a new CalendarEventService.
func NewCalendarEventService(eventRepo repository.CalendarEventRepository, userRepo repository.UserRepository) CalendarEventService {
	return &calendarEventService{eventRepo: eventRepo, userRepo: userRepo}
}

func (s *calendarEventService) Create(ctx context.Context, userID uuid.UUID, req *domain.CreateCalendarEventRequest) (*domain.CalendarEventRecord, error) {
	exists, err := s.userRepo.Exists(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, domain.ErrNotFound
	}

	record := &domain.CalendarEventRecord{
		UserID:      userID,
		Title:       req.Title,
		StartAt:     req.StartAt,
		EndAt:       req.EndAt,
		AllDay:      req.AllDay,
		EnergyDelta: req.EnergyDelta,
	}
	if err := s.eventRepo.Create(ctx, record); err != nil {
		return nil, err
	}
	return record, nil
}

func (s *calendarEventService) ListRange(ctx context.Context, userID uuid.UUID, from, to time.Time) (*domain.CalendarEventListResponse, error) {
	exists, err := s.userRepo.Exists(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, domain.ErrNotFound
	}

	records, err := s.eventRepo.ListRange(ctx, userID, from, to)
	if err != nil {
		return nil, err
	}
	return &domain.CalendarEventListResponse{Data: records}, nil
}

func (s *calendarEventService) Delete(ctx context.Context, userID, eventID uuid.UUID) error {
	exists, err := s.userRepo.Exists(ctx, userID)
	if err != nil {
		return err
	}
	if !exists {
		return domain.ErrNotFound
	}
	return s.eventRepo.Delete(ctx, userID, eventID)
}
