package service

import (
	"context"
	"math"
	"time"

	"github.com/orionasc/enflow/internal/cache"
	"github.com/orionasc/enflow/internal/domain"
	"github.com/orionasc/enflow/internal/observability"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// BlendService merges the observed summary with the forecast: past hours of
// today keep observed values, future hours take forecast values; future
// days are forecast wholesale; past days stay observed and have their
// forecast accuracy recorded.
type BlendService interface {
	Blended(ctx context.Context, date time.Time, samples []domain.DailyHealthSample, events []domain.CalendarEvent, profile *domain.UserProfile) *domain.DayEnergySummary
}

type blendService struct {
	summaries SummaryService
	forecasts ForecastService
	cache     cache.ForecastCache
	metrics   *observability.Metrics
	now       func() time.Time
}

// NewBlendService creates a new BlendService.
func NewBlendService(summaries SummaryService, forecasts ForecastService, forecastCache cache.ForecastCache, metrics *observability.Metrics) BlendService {
	return &blendService{
		summaries: summaries,
		forecasts: forecasts,
		cache:     forecastCache,
		metrics:   metrics,
		now:       time.Now,
	}
}

func (s *blendService) Blended(ctx context.Context, date time.Time, samples []domain.DailyHealthSample, events []domain.CalendarEvent, profile *domain.UserProfile) *domain.DayEnergySummary {
	tracer := otel.Tracer("enflow-api/energy")
	ctx, span := tracer.Start(ctx, "BlendService.Blended",
		trace.WithAttributes(attribute.String("day", date.Format("2006-01-02"))),
	)
	defer span.End()

	summary := s.summaries.Summarize(ctx, date, samples, events, profile)

	// A forecast already cached for this day predates this call; only such
	// records count for accuracy scoring of past days.
	previous, hadPrevious := s.cache.Forecast(date)

	forecast := s.forecasts.Forecast(ctx, date, samples, events, profile)
	if forecast == nil {
		span.SetAttributes(attribute.Bool("blend.forecast_absent", true))
		return summary
	}
	s.cache.SaveForecast(*forecast)

	// Day keys are UTC midnights; anchor the clock to UTC so a non-UTC
	// host does not shift today into the past or future bucket.
	now := s.now().UTC()
	day := startOfDay(date)
	today := startOfDay(now)
	switch {
	case day.Equal(today):
		for h := now.Hour(); h < domain.HoursPerDay; h++ {
			summary.HourlyWaveform[h] = forecast.Values[h]
		}
	case day.After(today):
		copy(summary.HourlyWaveform, forecast.Values)
	default:
		// Past day: observed waveform stands; score it against what was
		// forecast at the time.
		s.cache.SetWave(day, summary.HourlyWaveform)
		if hadPrevious && len(previous.Values) == domain.HoursPerDay {
			accuracy := 1 - meanAbsDiff(previous.Values, summary.HourlyWaveform)
			s.cache.SetAccuracy(day, accuracy)
			s.metrics.ObserveAccuracyRecorded()
			span.SetAttributes(attribute.Float64("blend.accuracy", accuracy))
		}
	}

	summary.OverallEnergyScore = math.Round(mean(summary.HourlyWaveform) * 100)
	return summary
}

func meanAbsDiff(a, b []float64) float64 {
	sum := 0.0
	for i := range a {
		sum += math.Abs(a[i] - b[i])
	}
	return sum / float64(len(a))
}
