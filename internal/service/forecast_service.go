package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/orionasc/enflow/internal/cache"
	"github.com/orionasc/enflow/internal/domain"
	"github.com/orionasc/enflow/internal/observability"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const (
	// Baseline windows: composites come from the most recent 14 history
	// entries, the baseline averages the most recent 7 valid ones.
	baselineCompositeDays = 14
	baselineAverageDays   = 7

	// History-depth confidence tiers.
	historyDeepThreshold    = 7
	historyShallowThreshold = 3
	confidenceDeepHistory   = 0.8
	confidenceSomeHistory   = 0.4
	confidenceThinHistory   = 0.2

	// lowConfidenceCutoff gates amplitude damping, debug info, and the
	// sleep floor.
	lowConfidenceCutoff = 0.5

	// sleepFloorCeiling caps hours inside the typical sleep window when
	// confidence is low or required metrics are missing.
	sleepFloorCeiling = 0.2

	// referenceWakeHour anchors the circadian curve; the rotation offset is
	// the profile's deviation from it.
	referenceWakeHour = 7

	caffeineHeavyMgPerDay = 300
	caffeineDip           = 0.1
	caffeineMorningHour   = 11
	caffeineAfternoonHour = 18
	caffeineEveningHour   = 23
)

// circadianCurve is the fixed intraday deviation from baseline (hour 0..23):
// dips near 02:00 and 15:00, peaks near 10:00 and 18:00.
var circadianCurve = [domain.HoursPerDay]float64{
	-0.05, -0.05, -0.05, -0.04, -0.02, 0.02, 0.06, 0.10,
	0.12, 0.10, 0.08, 0.05, 0.03, 0.00, -0.02, -0.04,
	-0.03, 0.00, 0.08, 0.12, 0.10, 0.05, 0.00, -0.04,
}

// smoothingKernel is the 5-point weighted moving average applied to
// interior hours.
var smoothingKernel = [5]float64{1, 2, 3, 2, 1}

// ForecastService projects an energy waveform for a day from a health
// history, scheduled events, and an optional profile.
type ForecastService interface {
	// Forecast returns the day's forecast, serving a cached record verbatim
	// when one exists. A nil result means no forecast can be produced (no
	// history at all, or no valid baseline composites); it is not an error.
	Forecast(ctx context.Context, date time.Time, history []domain.DailyHealthSample, events []domain.CalendarEvent, profile *domain.UserProfile) *domain.DayEnergyForecast
}

type forecastService struct {
	cache   cache.ForecastCache
	metrics *observability.Metrics
}

// NewForecastService creates a new ForecastService writing through the
// given cache.
func NewForecastService(forecastCache cache.ForecastCache, metrics *observability.Metrics) ForecastService {
	return &forecastService{cache: forecastCache, metrics: metrics}
}

func (s *forecastService) Forecast(ctx context.Context, date time.Time, history []domain.DailyHealthSample, events []domain.CalendarEvent, profile *domain.UserProfile) *domain.DayEnergyForecast {
	tracer := otel.Tracer("enflow-api/energy")
	_, span := tracer.Start(ctx, "ForecastService.Forecast",
		trace.WithAttributes(
			attribute.String("day", date.Format("2006-01-02")),
			attribute.Int("history", len(history)),
		),
	)
	defer span.End()

	if cached, ok := s.cache.Forecast(date); ok {
		span.SetAttributes(attribute.Bool("cache.hit", true))
		s.metrics.ObserveForecastCache(true)
		return cached
	}
	s.metrics.ObserveForecastCache(false)

	target := startOfDay(date)
	relevant := historyThrough(target, history)
	if len(relevant) == 0 {
		span.SetAttributes(attribute.Bool("forecast.absent", true))
		return nil
	}
	daySample := resolveDaySample(target, relevant)

	base, ok := historicalBaseline(relevant)
	if !ok {
		span.SetAttributes(attribute.Bool("forecast.absent", true))
		return nil
	}
	adjustedBase := profileAdjustedBase(base, profile)

	wave := seedCircadianWave(adjustedBase, profile)
	applyEventWindows(wave, eventsForDay(target, events))
	applyCaffeineDips(wave, profile)
	smoothWave(wave)

	confidence := historyConfidence(len(relevant))
	if confidence < lowConfidenceCutoff {
		dampTowardBase(wave, adjustedBase, confidence)
	}

	missing := daySample.Available.Missing(domain.RequiredForBaseline())
	if profile != nil && (confidence < lowConfidenceCutoff || len(missing) > 0) {
		applySleepFloor(wave, profile)
	}

	forecast := &domain.DayEnergyForecast{
		Date:            target,
		Values:          wave,
		Score:           mean(wave) * 100,
		ConfidenceScore: confidence,
		MissingMetrics:  missing,
		SourceType:      domain.SourceHistoricalModel,
	}
	if confidence < lowConfidenceCutoff {
		forecast.DebugInfo = missingDebugInfo(missing)
	}

	s.cache.SaveForecast(*forecast)
	s.metrics.ObserveForecastComputed(string(forecast.SourceType))
	span.SetAttributes(
		attribute.Float64("forecast.confidence", confidence),
		attribute.Float64("forecast.score", forecast.Score),
	)
	return forecast
}

// historyThrough filters samples to date <= target and sorts ascending.
func historyThrough(target time.Time, history []domain.DailyHealthSample) []domain.DailyHealthSample {
	var relevant []domain.DailyHealthSample
	for _, sample := range history {
		if !startOfDay(sample.Date).After(target) {
			relevant = append(relevant, sample)
		}
	}
	sort.SliceStable(relevant, func(i, j int) bool {
		return relevant[i].Date.Before(relevant[j].Date)
	})
	return relevant
}

// resolveDaySample finds the target day's sample, falling back to the most
// recent prior one. relevant must be non-empty and sorted ascending.
func resolveDaySample(target time.Time, relevant []domain.DailyHealthSample) domain.DailyHealthSample {
	for i := range relevant {
		if startOfDay(relevant[i].Date).Equal(target) {
			return relevant[i]
		}
	}
	return relevant[len(relevant)-1]
}

// historicalBaseline averages the most recent valid per-day composites.
// The second return is false when no entry yields a composite.
func historicalBaseline(relevant []domain.DailyHealthSample) (float64, bool) {
	start := 0
	if len(relevant) > baselineCompositeDays {
		start = len(relevant) - baselineCompositeDays
	}
	var composites []float64
	for i := len(relevant) - 1; i >= start; i-- {
		if !relevant[i].HasSamples {
			continue
		}
		composites = append(composites, dayComposite(relevant[i]))
		if len(composites) == baselineAverageDays {
			break
		}
	}
	if len(composites) == 0 {
		return 0, false
	}
	return mean(composites), true
}

// dayComposite is the fixed weighted blend of one day's signals in [0, 1].
func dayComposite(sample domain.DailyHealthSample) float64 {
	return 0.35*normalize(sample.SleepEfficiency, 60, 100) +
		0.25*normalize(sample.HRV, 20, 120) +
		0.15*(1-normalize(sample.RestingHR, 40, 100)) +
		0.15*normalize(sample.DeepSleepMinutes+sample.REMSleepMinutes, 60, 300) +
		0.10*activityProximity(sample.StepCount)
}

func profileAdjustedBase(base float64, profile *domain.UserProfile) float64 {
	if profile == nil {
		return clamp01(base)
	}
	base += float64(profile.ExerciseFrequency-3) * 0.01
	if !profile.RegularMeals {
		base -= 0.03
	}
	return clamp01(base)
}

// seedCircadianWave rotates the literal curve by the profile's wake-hour
// deviation plus the chronotype shift and adds it to the base. A positive
// offset makes output hour 0 read `offset` hours into the un-rotated curve.
func seedCircadianWave(adjustedBase float64, profile *domain.UserProfile) []float64 {
	offset := 0
	if profile != nil {
		offset = (profile.TypicalWakeTime.Hour() - referenceWakeHour) + chronotypeShift(profile.Chronotype)
	}
	wave := make([]float64, domain.HoursPerDay)
	for i := range wave {
		idx := ((i+offset)%domain.HoursPerDay + domain.HoursPerDay) % domain.HoursPerDay
		wave[i] = clamp01(adjustedBase + circadianCurve[idx])
	}
	return wave
}

func chronotypeShift(chronotype domain.Chronotype) int {
	switch chronotype {
	case domain.ChronotypeMorning:
		return -1
	case domain.ChronotypeEvening:
		return 1
	default:
		return 0
	}
}

// applyEventWindows spreads each scored event's delta over a 3-hour window
// centered on its start hour with weights 0.25/0.5/0.25. Hours outside the
// day are skipped, not wrapped; clamping happens after every addition.
func applyEventWindows(wave []float64, events []domain.CalendarEvent) {
	offsets := [3]int{-1, 0, 1}
	weights := [3]float64{0.25, 0.5, 0.25}
	for _, event := range events {
		if event.EnergyDelta == nil {
			continue
		}
		hour := event.StartAt.Hour()
		for i, off := range offsets {
			h := hour + off
			if h < 0 || h >= domain.HoursPerDay {
				continue
			}
			wave[h] = clamp01(wave[h] + *event.EnergyDelta*weights[i])
		}
	}
}

// applyCaffeineDips subtracts the crash penalty at the hour each habitual
// dose wears off, for heavy consumers only.
func applyCaffeineDips(wave []float64, profile *domain.UserProfile) {
	if profile == nil || profile.CaffeineMgPerDay <= caffeineHeavyMgPerDay {
		return
	}
	dip := func(hour int) {
		wave[hour] -= caffeineDip
		if wave[hour] < 0 {
			wave[hour] = 0
		}
	}
	if profile.CaffeineMorning {
		dip(caffeineMorningHour)
	}
	if profile.CaffeineAfternoon {
		dip(caffeineAfternoonHour)
	}
	if profile.CaffeineEvening {
		dip(caffeineEveningHour)
	}
}

// smoothWave applies the 5-point kernel to interior hours [2, len-3]; the
// two hours at each edge stay raw.
func smoothWave(wave []float64) {
	if len(wave) < len(smoothingKernel) {
		return
	}
	raw := make([]float64, len(wave))
	copy(raw, wave)
	kernelSum := 0.0
	for _, w := range smoothingKernel {
		kernelSum += w
	}
	for i := 2; i <= len(wave)-3; i++ {
		sum := 0.0
		for k, w := range smoothingKernel {
			sum += raw[i+k-2] * w
		}
		wave[i] = sum / kernelSum
	}
}

func historyConfidence(entries int) float64 {
	switch {
	case entries >= historyDeepThreshold:
		return confidenceDeepHistory
	case entries >= historyShallowThreshold:
		return confidenceSomeHistory
	default:
		return confidenceThinHistory
	}
}

// dampTowardBase pulls every hour toward the adjusted base by 0.5+confidence,
// flattening the shape when data is thin.
func dampTowardBase(wave []float64, base, confidence float64) {
	factor := lowConfidenceCutoff + confidence
	for i := range wave {
		wave[i] = clamp01(base + (wave[i]-base)*factor)
	}
}

// applySleepFloor caps every hour in the circular [sleepHour, wakeHour)
// range. Runs after damping so the cap is final.
func applySleepFloor(wave []float64, profile *domain.UserProfile) {
	sleepHour := profile.TypicalSleepTime.Hour()
	wakeHour := profile.TypicalWakeTime.Hour()
	for h := sleepHour; h != wakeHour; h = (h + 1) % domain.HoursPerDay {
		if wave[h] > sleepFloorCeiling {
			wave[h] = sleepFloorCeiling
		}
	}
}

func missingDebugInfo(missing []domain.MetricKind) string {
	if len(missing) == 0 {
		return "missing: none"
	}
	names := make([]string, len(missing))
	for i, kind := range missing {
		names[i] = string(kind)
	}
	return fmt.Sprintf("missing: %s", strings.Join(names, ", "))
}
