package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/orionasc/enflow/internal/cache"
	"github.com/orionasc/enflow/internal/domain"
	"github.com/orionasc/enflow/internal/observability"
	"github.com/orionasc/enflow/internal/repository"
)

// HistoryWindowDays is how far back the sample history loaded for a
// forecast reaches. Comfortably covers the 14-day baseline window.
const HistoryWindowDays = 45

// EnergyService is the entry point for day views: it loads a user's data,
// runs the classifier over unscored events, and delegates to the summarizer,
// the forecast engine, and the blender.
type EnergyService interface {
	Summary(ctx context.Context, userID uuid.UUID, day time.Time) (*domain.DayEnergySummary, error)
	// Forecast returns (nil, nil) when no forecast can be produced.
	Forecast(ctx context.Context, userID uuid.UUID, day time.Time) (*domain.DayEnergyForecast, error)
	Blended(ctx context.Context, userID uuid.UUID, day time.Time) (*domain.DayEnergySummary, error)
	// TrailingAccuracy averages recorded forecast accuracy over the last
	// `days` days; ok is false when nothing is recorded in the window.
	TrailingAccuracy(ctx context.Context, userID uuid.UUID, days int) (accuracy float64, ok bool, err error)
}

type energyService struct {
	userRepo    repository.UserRepository
	sampleRepo  repository.HealthSampleRepository
	eventRepo   repository.CalendarEventRepository
	profileRepo repository.ProfileRepository
	stores      repository.ForecastStoreFactory
	summaries   SummaryService
	classifier  ClassifierService
	metrics     *observability.Metrics
	now         func() time.Time

	mu      sync.Mutex
	engines map[uuid.UUID]*userEngines
}

// userEngines bundles the per-user cache with the services bound to it.
// The forecast engine and cache hold state for a single person, so each
// user gets their own instances.
type userEngines struct {
	cache     cache.ForecastCache
	forecasts ForecastService
	blends    BlendService
}

// NewEnergyService creates a new EnergyService. stores may be nil, in which
// case per-user caches are memory-only.
func NewEnergyService(
	userRepo repository.UserRepository,
	sampleRepo repository.HealthSampleRepository,
	eventRepo repository.CalendarEventRepository,
	profileRepo repository.ProfileRepository,
	stores repository.ForecastStoreFactory,
	metrics *observability.Metrics,
) EnergyService {
	return &energyService{
		userRepo:    userRepo,
		sampleRepo:  sampleRepo,
		eventRepo:   eventRepo,
		profileRepo: profileRepo,
		stores:      stores,
		summaries:   NewSummaryService(),
		classifier:  NewClassifierService(),
		metrics:     metrics,
		now:         time.Now,
		engines:     make(map[uuid.UUID]*userEngines),
	}
}

func (s *energyService) Summary(ctx context.Context, userID uuid.UUID, day time.Time) (*domain.DayEnergySummary, error) {
	samples, events, profile, err := s.loadInputs(ctx, userID, day)
	if err != nil {
		return nil, err
	}
	return s.summaries.Summarize(ctx, day, samples, events, profile), nil
}

func (s *energyService) Forecast(ctx context.Context, userID uuid.UUID, day time.Time) (*domain.DayEnergyForecast, error) {
	samples, events, profile, err := s.loadInputs(ctx, userID, day)
	if err != nil {
		return nil, err
	}
	return s.enginesFor(userID).forecasts.Forecast(ctx, day, samples, events, profile), nil
}

func (s *energyService) Blended(ctx context.Context, userID uuid.UUID, day time.Time) (*domain.DayEnergySummary, error) {
	samples, events, profile, err := s.loadInputs(ctx, userID, day)
	if err != nil {
		return nil, err
	}
	return s.enginesFor(userID).blends.Blended(ctx, day, samples, events, profile), nil
}

func (s *energyService) TrailingAccuracy(ctx context.Context, userID uuid.UUID, days int) (float64, bool, error) {
	exists, err := s.userRepo.Exists(ctx, userID)
	if err != nil {
		return 0, false, err
	}
	if !exists {
		return 0, false, domain.ErrNotFound
	}
	accuracy, ok := s.enginesFor(userID).cache.TrailingAccuracy(s.now().UTC(), days)
	return accuracy, ok, nil
}

// loadInputs validates the user and gathers the history window, the day's
// classified events, and the optional profile.
func (s *energyService) loadInputs(ctx context.Context, userID uuid.UUID, day time.Time) ([]domain.DailyHealthSample, []domain.CalendarEvent, *domain.UserProfile, error) {
	exists, err := s.userRepo.Exists(ctx, userID)
	if err != nil {
		return nil, nil, nil, err
	}
	if !exists {
		return nil, nil, nil, domain.ErrNotFound
	}

	dayStart := startOfDay(day)
	from := dayStart.AddDate(0, 0, -HistoryWindowDays)
	records, err := s.sampleRepo.ListRange(ctx, userID, from, dayStart)
	if err != nil {
		return nil, nil, nil, err
	}
	samples := make([]domain.DailyHealthSample, len(records))
	for i := range records {
		samples[i] = records[i].ToSample()
	}

	eventRecords, err := s.eventRepo.ListRange(ctx, userID, dayStart, dayStart.Add(domain.HoursPerDay*time.Hour))
	if err != nil {
		return nil, nil, nil, err
	}
	events := make([]domain.CalendarEvent, len(eventRecords))
	for i := range eventRecords {
		events[i] = eventRecords[i].ToEvent()
	}
	events = s.classifier.Classify(events)

	var profile *domain.UserProfile
	profileRecord, err := s.profileRepo.Get(ctx, userID)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			return nil, nil, nil, err
		}
	} else {
		p := profileRecord.ToProfile()
		profile = &p
	}

	return samples, events, profile, nil
}

// enginesFor lazily builds the per-user cache plus the forecast and blend
// services bound to it.
func (s *energyService) enginesFor(userID uuid.UUID) *userEngines {
	s.mu.Lock()
	defer s.mu.Unlock()
	if engines, ok := s.engines[userID]; ok {
		return engines
	}
	var store cache.Store
	if s.stores != nil {
		store = s.stores.ForUser(userID)
	}
	forecastCache := cache.NewForecastCache(store)
	forecasts := NewForecastService(forecastCache, s.metrics)
	engines := &userEngines{
		cache:     forecastCache,
		forecasts: forecasts,
		blends:    NewBlendService(s.summaries, forecasts, forecastCache, s.metrics),
	}
	s.engines[userID] = engines
	return engines
}
