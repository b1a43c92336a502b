package service

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/orionasc/enflow/internal/domain"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const (
	// Confidence tiers, evaluated top to bottom (see summaryConfidence).
	ConfidenceMissingRequired = 0.2
	ConfidenceMinimumOnly     = 0.4
	ConfidenceNeutral         = 0.6
	ConfidenceBroadCoverage   = 0.8

	// BroadCoverageCount is the metric count granting the 0.8 tier.
	BroadCoverageCount = 5

	// Neutral mid-scale score used when no sample exists for the day.
	fallbackEnergyScore = 50.0

	// Activity proximity bell: a personal step mean and spread.
	personalStepMean = 8000.0
	personalStepSD   = 3000.0

	maxExplainers   = 5
	maxRankedEvents = 3

	lowDataWarning = "Limited health data for this day; energy estimate may be unreliable"
)

// SummaryService converts one day's health sample and calendar events into
// an observed energy summary.
type SummaryService interface {
	// Summarize builds the day's summary. Inputs outside the
	// [startOfDay, startOfDay+24h) window are ignored. A missing sample
	// degrades to mid-scale scores, never errors.
	Summarize(ctx context.Context, day time.Time, samples []domain.DailyHealthSample, events []domain.CalendarEvent, profile *domain.UserProfile) *domain.DayEnergySummary
}

type summaryService struct{}

// NewSummaryService creates a new SummaryService.
func NewSummaryService() SummaryService {
	return &summaryService{}
}

func (s *summaryService) Summarize(ctx context.Context, day time.Time, samples []domain.DailyHealthSample, events []domain.CalendarEvent, profile *domain.UserProfile) *domain.DayEnergySummary {
	tracer := otel.Tracer("enflow-api/energy")
	_, span := tracer.Start(ctx, "SummaryService.Summarize",
		trace.WithAttributes(
			attribute.String("day", day.Format("2006-01-02")),
			attribute.Int("samples", len(samples)),
			attribute.Int("events", len(events)),
		),
	)
	defer span.End()

	sample := sampleForDay(day, samples)
	dayEvents := eventsForDay(day, events)

	mental := fallbackEnergyScore
	physical := fallbackEnergyScore
	if sample != nil {
		mental = mentalEnergy(sample)
		physical = physicalEnergy(sample)
	}
	overall := (mental + physical) / 2

	waveform := make([]float64, domain.HoursPerDay)
	for i := range waveform {
		waveform[i] = overall / 100
	}
	applyHourDeltas(waveform, dayEvents)

	available := domain.NewMetricSet()
	if sample != nil {
		available = sample.Available
	}
	coverage := float64(available.Len()) / float64(len(domain.AllMetrics))
	confidence, warning := summaryConfidence(available)

	sleepEfficiency := 0.0
	if sample != nil && available.Has(domain.MetricSleepEfficiency) {
		sleepEfficiency = sample.SleepEfficiency
	}

	boosters, drainers := rankedEvents(dayEvents)

	summary := &domain.DayEnergySummary{
		Date:               startOfDay(day),
		OverallEnergyScore: math.Round(overall),
		MentalEnergy:       mental,
		PhysicalEnergy:     physical,
		SleepEfficiency:    sleepEfficiency,
		CoverageRatio:      coverage,
		Confidence:         confidence,
		Warning:            warning,
		HourlyWaveform:     waveform,
		TopBoosters:        boosters,
		TopDrainers:        drainers,
		Explainers:         explainers(sample, dayEvents, mental, physical),
	}

	span.SetAttributes(
		attribute.Float64("summary.overall", overall),
		attribute.Float64("summary.confidence", confidence),
	)
	return summary
}

// sampleForDay picks the first sample falling on the given calendar day.
func sampleForDay(day time.Time, samples []domain.DailyHealthSample) *domain.DailyHealthSample {
	start := startOfDay(day)
	for i := range samples {
		if startOfDay(samples[i].Date).Equal(start) {
			return &samples[i]
		}
	}
	return nil
}

// eventsForDay filters events to the half-open [startOfDay, startOfDay+24h)
// window by start time.
func eventsForDay(day time.Time, events []domain.CalendarEvent) []domain.CalendarEvent {
	start := startOfDay(day)
	end := start.Add(domain.HoursPerDay * time.Hour)
	var filtered []domain.CalendarEvent
	for _, event := range events {
		if !event.StartAt.Before(start) && event.StartAt.Before(end) {
			filtered = append(filtered, event)
		}
	}
	return filtered
}

// mentalEnergy scores recovery-oriented signals 0-100. Only metrics the
// sample actually carries contribute; with none at all, proximity of the
// day's steps to the personal mean stands in.
func mentalEnergy(sample *domain.DailyHealthSample) float64 {
	var parts []float64
	if sample.Available.Has(domain.MetricREMSleep) {
		parts = append(parts, normalize(sample.REMSleepMinutes, 0, 180))
	}
	if sample.Available.Has(domain.MetricSleepLatency) {
		parts = append(parts, 1-normalize(sample.SleepLatency, 0, 60))
	}
	if sample.Available.Has(domain.MetricHeartRateVariability) {
		parts = append(parts, normalize(sample.HRV, 20, 120))
	} else if sample.Available.Has(domain.MetricRestingHR) {
		parts = append(parts, 1-normalize(sample.RestingHR, 40, 100))
	}
	if len(parts) == 0 {
		return activityProximity(sample.StepCount) * 100
	}
	return mean(parts) * 100
}

// physicalEnergy is the symmetric composite over restorative-sleep and
// cardiovascular signals.
func physicalEnergy(sample *domain.DailyHealthSample) float64 {
	var parts []float64
	if sample.Available.Has(domain.MetricDeepSleep) {
		parts = append(parts, normalize(sample.DeepSleepMinutes, 0, 120))
	}
	if sample.Available.Has(domain.MetricRestingHR) {
		parts = append(parts, 1-normalize(sample.RestingHR, 40, 100))
	} else if sample.Available.Has(domain.MetricHeartRateVariability) {
		parts = append(parts, normalize(sample.HRV, 20, 120))
	}
	if sample.Available.Has(domain.MetricSleepEfficiency) {
		parts = append(parts, normalize(sample.SleepEfficiency, 60, 100))
	}
	if len(parts) == 0 {
		return activityProximity(sample.StepCount) * 100
	}
	return mean(parts) * 100
}

// applyHourDeltas adds each scored event's delta to the single hour bucket
// matching its start, clamping after every addition so same-hour events
// compound.
func applyHourDeltas(waveform []float64, events []domain.CalendarEvent) {
	for _, event := range events {
		if event.EnergyDelta == nil {
			continue
		}
		hour := event.StartAt.Hour()
		waveform[hour] = clamp01(waveform[hour] + *event.EnergyDelta)
	}
}

// summaryConfidence applies the ordered tier ladder: missing any required
// metric, exactly the required minimum, broad coverage, then the neutral
// default. Exactly one branch fires.
func summaryConfidence(available domain.MetricSet) (float64, string) {
	required := domain.RequiredForBaseline()
	switch {
	case !available.ContainsAll(required):
		return ConfidenceMissingRequired, lowDataWarning
	case available.Len() == required.Len():
		return ConfidenceMinimumOnly, lowDataWarning
	case available.Len() >= BroadCoverageCount:
		return ConfidenceBroadCoverage, ""
	default:
		return ConfidenceNeutral, ""
	}
}

func explainers(sample *domain.DailyHealthSample, events []domain.CalendarEvent, mental, physical float64) []string {
	var lines []string
	if sample != nil {
		if sample.Available.Has(domain.MetricSleepEfficiency) {
			lines = append(lines, fmt.Sprintf("Sleep efficiency %.0f%%", sample.SleepEfficiency))
		}
		if sample.Available.Has(domain.MetricHeartRateVariability) {
			lines = append(lines, fmt.Sprintf("HRV %.0f ms", sample.HRV))
		}
		if sample.Available.Has(domain.MetricRestingHR) {
			lines = append(lines, fmt.Sprintf("Resting HR %.0f bpm", sample.RestingHR))
		}
	}
	if count := morningMeetings(events); count > 0 {
		noun := "meetings"
		if count == 1 {
			noun = "meeting"
		}
		lines = append(lines, fmt.Sprintf("%d morning %s", count, noun))
	}
	lines = append(lines, fmt.Sprintf("Mental %.0f / Physical %.0f", mental, physical))
	if len(lines) > maxExplainers {
		lines = lines[:maxExplainers]
	}
	return lines
}

func morningMeetings(events []domain.CalendarEvent) int {
	count := 0
	for _, event := range events {
		if event.StartAt.Hour() < 12 && strings.Contains(strings.ToLower(event.Title), "meeting") {
			count++
		}
	}
	return count
}

// rankedEvents returns the top booster and drainer titles by delta.
func rankedEvents(events []domain.CalendarEvent) (boosters, drainers []string) {
	var scored []domain.CalendarEvent
	for _, event := range events {
		if event.EnergyDelta != nil {
			scored = append(scored, event)
		}
	}
	sort.SliceStable(scored, func(i, j int) bool {
		return *scored[i].EnergyDelta > *scored[j].EnergyDelta
	})
	for _, event := range scored {
		if *event.EnergyDelta > 0 && len(boosters) < maxRankedEvents {
			boosters = append(boosters, event.Title)
		}
	}
	for i := len(scored) - 1; i >= 0; i-- {
		if *scored[i].EnergyDelta < 0 && len(drainers) < maxRankedEvents {
			drainers = append(drainers, scored[i].Title)
		}
	}
	return boosters, drainers
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func normalize(value, lo, hi float64) float64 {
	if hi <= lo {
		return 0
	}
	return clamp01((value - lo) / (hi - lo))
}

func clamp01(value float64) float64 {
	if value < 0 {
		return 0
	}
	if value > 1 {
		return 1
	}
	return value
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// activityProximity is a Gaussian bell peaking at the personal step mean.
func activityProximity(steps float64) float64 {
	deviation := (steps - personalStepMean) / personalStepSD
	return math.Exp(-0.5 * deviation * deviation)
}
