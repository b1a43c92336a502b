package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/orionasc/enflow/internal/domain"
	"github.com/orionasc/enflow/internal/repository"
)

// ProfileService edits the person-level parameters biasing energy
// estimation. Requests are validated (closed chronotype set, HH:MM times)
// before anything reaches the estimators.
type ProfileService interface {
	Get(ctx context.Context, userID uuid.UUID) (*domain.ProfileRecord, error)
	Upsert(ctx context.Context, userID uuid.UUID, req *domain.UpsertProfileRequest) (*domain.ProfileRecord, error)
}

type profileService struct {
	profileRepo repository.ProfileRepository
	userRepo    repository.UserRepository
}

// NewProfileService creates a new ProfileService.
func NewProfileService(profileRepo repository.ProfileRepository, userRepo repository.UserRepository) ProfileService {
	return &profileService{profileRepo: profileRepo, userRepo: userRepo}
}

func (s *profileService) Get(ctx context.Context, userID uuid.UUID) (*domain.ProfileRecord, error) {
	exists, err := s.userRepo.Exists(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, domain.ErrNotFound
	}
	return s.profileRepo.Get(ctx, userID)
}

func (s *profileService) Upsert(ctx context.Context, userID uuid.UUID, req *domain.UpsertProfileRequest) (*domain.ProfileRecord, error) {
	exists, err := s.userRepo.Exists(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, domain.ErrNotFound
	}

	record := &domain.ProfileRecord{
		UserID:            userID,
		CaffeineMgPerDay:  req.CaffeineMgPerDay,
		CaffeineMorning:   req.CaffeineMorning,
		CaffeineAfternoon: req.CaffeineAfternoon,
		CaffeineEvening:   req.CaffeineEvening,
		ExerciseFrequency: req.ExerciseFrequency,
		WakeTime:          req.TypicalWakeTime,
		SleepTime:         req.TypicalSleepTime,
		UsesSleepAid:      req.UsesSleepAid,
		ScreenBeforeBed:   req.ScreenBeforeBed,
		RegularMeals:      req.RegularMeals,
		Chronotype:        req.Chronotype,
		Notes:             req.Notes,
	}
	if err := s.profileRepo.Upsert(ctx, record); err != nil {
		return nil, err
	}
	return record, nil
}
