package service

import (
	"context"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/orionasc/enflow/internal/domain"
)

func testDay(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func floatPtr(v float64) *float64 {
	return &v
}

func flatWave(value float64) []float64 {
	wave := make([]float64, domain.HoursPerDay)
	for i := range wave {
		wave[i] = value
	}
	return wave
}

func fullSample(day time.Time) domain.DailyHealthSample {
	return domain.DailyHealthSample{
		Date:             day,
		HRV:              70,
		RestingHR:        55,
		SleepEfficiency:  90,
		SleepLatency:     12,
		DeepSleepMinutes: 80,
		REMSleepMinutes:  100,
		StepCount:        8000,
		ActiveEnergy:     450,
		Available: domain.NewMetricSet(
			domain.MetricStepCount,
			domain.MetricRestingHR,
			domain.MetricActiveEnergyBurned,
			domain.MetricHeartRateVariability,
			domain.MetricSleepEfficiency,
			domain.MetricSleepLatency,
			domain.MetricDeepSleep,
			domain.MetricREMSleep,
		),
		HasSamples: true,
	}
}

func TestSummaryService_NoSampleFallsBackToNeutral(t *testing.T) {
	svc := NewSummaryService()
	day := testDay("2026-08-20")

	summary := svc.Summarize(context.Background(), day, nil, nil, nil)

	if summary.OverallEnergyScore != fallbackEnergyScore {
		t.Fatalf("OverallEnergyScore = %v, want %v", summary.OverallEnergyScore, fallbackEnergyScore)
	}
	if summary.MentalEnergy != fallbackEnergyScore || summary.PhysicalEnergy != fallbackEnergyScore {
		t.Fatalf("sub-scores = %v/%v, want neutral", summary.MentalEnergy, summary.PhysicalEnergy)
	}
	if summary.Confidence != ConfidenceMissingRequired {
		t.Fatalf("Confidence = %v, want %v", summary.Confidence, ConfidenceMissingRequired)
	}
	if summary.Warning == "" {
		t.Fatalf("expected low-data warning")
	}
	if len(summary.HourlyWaveform) != domain.HoursPerDay {
		t.Fatalf("waveform length = %d", len(summary.HourlyWaveform))
	}
	for h, v := range summary.HourlyWaveform {
		if v != 0.5 {
			t.Fatalf("hour %d = %v, want flat 0.5", h, v)
		}
	}
}

func TestSummaryService_OverallScoreIsRoundedWaveformMean(t *testing.T) {
	day := testDay("2026-08-20")
	svc := NewSummaryService()

	// With no events the waveform is flat at overall/100, so the score
	// must equal round(mean(waveform)*100) exactly.
	summary := svc.Summarize(context.Background(), day, []domain.DailyHealthSample{fullSample(day)}, nil, nil)

	if summary.OverallEnergyScore != math.Round(summary.OverallEnergyScore) {
		t.Fatalf("OverallEnergyScore = %v, want an integer value", summary.OverallEnergyScore)
	}
	want := math.Round(mean(summary.HourlyWaveform) * 100)
	if summary.OverallEnergyScore != want {
		t.Fatalf("OverallEnergyScore = %v, want %v", summary.OverallEnergyScore, want)
	}
	if got := math.Round((summary.MentalEnergy + summary.PhysicalEnergy) / 2); summary.OverallEnergyScore != got {
		t.Fatalf("OverallEnergyScore = %v, want rounded sub-score mean %v", summary.OverallEnergyScore, got)
	}
}

func TestSummaryService_ConfidenceTiers(t *testing.T) {
	required := domain.RequiredForBaseline()

	tests := []struct {
		name        string
		available   domain.MetricSet
		wantTier    float64
		wantWarning bool
	}{
		{
			name:        "missing required",
			available:   domain.NewMetricSet(domain.MetricStepCount),
			wantTier:    ConfidenceMissingRequired,
			wantWarning: true,
		},
		{
			name:        "exactly required minimum",
			available:   required,
			wantTier:    ConfidenceMinimumOnly,
			wantWarning: true,
		},
		{
			name: "required plus one",
			available: domain.NewMetricSet(
				domain.MetricStepCount, domain.MetricRestingHR,
				domain.MetricActiveEnergyBurned, domain.MetricSleepEfficiency,
			),
			wantTier: ConfidenceNeutral,
		},
		{
			name: "broad coverage",
			available: domain.NewMetricSet(
				domain.MetricStepCount, domain.MetricRestingHR,
				domain.MetricActiveEnergyBurned, domain.MetricSleepEfficiency,
				domain.MetricHeartRateVariability,
			),
			wantTier: ConfidenceBroadCoverage,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, warning := summaryConfidence(tt.available)
			if got != tt.wantTier {
				t.Errorf("confidence = %v, want %v", got, tt.wantTier)
			}
			if (warning != "") != tt.wantWarning {
				t.Errorf("warning = %q, wantWarning %v", warning, tt.wantWarning)
			}
		})
	}
}

func TestSummaryService_EventDeltasClampPerAddition(t *testing.T) {
	svc := NewSummaryService()
	day := testDay("2026-08-20")

	events := []domain.CalendarEvent{
		{Title: "Gym", StartAt: day.Add(7 * time.Hour), EndAt: day.Add(8 * time.Hour), EnergyDelta: floatPtr(0.9)},
		{Title: "Second workout", StartAt: day.Add(7 * time.Hour), EndAt: day.Add(8 * time.Hour), EnergyDelta: floatPtr(0.3)},
		{Title: "Crunch deadline", StartAt: day.Add(15 * time.Hour), EndAt: day.Add(16 * time.Hour), EnergyDelta: floatPtr(-2)},
		{Title: "Unscored", StartAt: day.Add(10 * time.Hour), EndAt: day.Add(11 * time.Hour)},
	}

	summary := svc.Summarize(context.Background(), day, nil, events, nil)

	// 0.5 + 0.9 clamps to 1 before the second event lands, then clamps again.
	if summary.HourlyWaveform[7] != 1 {
		t.Fatalf("hour 7 = %v, want 1", summary.HourlyWaveform[7])
	}
	if summary.HourlyWaveform[15] != 0 {
		t.Fatalf("hour 15 = %v, want 0", summary.HourlyWaveform[15])
	}
	// Unscored events leave the waveform alone.
	if summary.HourlyWaveform[10] != 0.5 {
		t.Fatalf("hour 10 = %v, want 0.5", summary.HourlyWaveform[10])
	}
}

func TestSummaryService_EventsOutsideDayIgnored(t *testing.T) {
	svc := NewSummaryService()
	day := testDay("2026-08-20")

	events := []domain.CalendarEvent{
		{Title: "Yesterday", StartAt: day.Add(-2 * time.Hour), EndAt: day.Add(-1 * time.Hour), EnergyDelta: floatPtr(-0.4)},
		{Title: "Tomorrow", StartAt: day.Add(25 * time.Hour), EndAt: day.Add(26 * time.Hour), EnergyDelta: floatPtr(-0.4)},
	}

	summary := svc.Summarize(context.Background(), day, nil, events, nil)
	for h, v := range summary.HourlyWaveform {
		if v != 0.5 {
			t.Fatalf("hour %d = %v, want untouched 0.5", h, v)
		}
	}
}

func TestSummaryService_ActivityProximityFallback(t *testing.T) {
	// Only step data: both sub-scores fall back to the proximity bell.
	sample := domain.DailyHealthSample{
		Date:       testDay("2026-08-20"),
		StepCount:  personalStepMean,
		Available:  domain.NewMetricSet(domain.MetricStepCount),
		HasSamples: true,
	}

	if got := mentalEnergy(&sample); got != 100 {
		t.Fatalf("mentalEnergy at personal mean = %v, want 100", got)
	}

	sample.StepCount = personalStepMean + personalStepSD
	want := math.Exp(-0.5) * 100
	if got := physicalEnergy(&sample); math.Abs(got-want) > 1e-9 {
		t.Fatalf("physicalEnergy one sigma out = %v, want %v", got, want)
	}

	// Far from the mean the bell approaches zero.
	sample.StepCount = personalStepMean + 5*personalStepSD
	if got := mentalEnergy(&sample); got > 1 {
		t.Fatalf("mentalEnergy far from mean = %v, want near 0", got)
	}
}

func TestSummaryService_SubScoresUseOnlyAvailableMetrics(t *testing.T) {
	day := testDay("2026-08-20")
	sample := fullSample(day)

	// HRV present: resting HR must not contribute to mental energy.
	withHRV := mentalEnergy(&sample)

	noHRV := fullSample(day)
	delete(noHRV.Available, domain.MetricHeartRateVariability)
	withRestingHR := mentalEnergy(&noHRV)

	if withHRV == withRestingHR {
		t.Fatalf("expected HRV and resting-HR paths to differ: %v", withHRV)
	}

	// Garbage in an unavailable field must not change the score.
	polluted := fullSample(day)
	delete(polluted.Available, domain.MetricHeartRateVariability)
	polluted.HRV = -9999
	if got := mentalEnergy(&polluted); got != withRestingHR {
		t.Fatalf("unavailable field leaked into score: %v != %v", got, withRestingHR)
	}
}

func TestSummaryService_Explainers(t *testing.T) {
	svc := NewSummaryService()
	day := testDay("2026-08-20")
	sample := fullSample(day)

	events := []domain.CalendarEvent{
		{Title: "Team meeting", StartAt: day.Add(9 * time.Hour), EndAt: day.Add(10 * time.Hour)},
		{Title: "Client meeting", StartAt: day.Add(11 * time.Hour), EndAt: day.Add(12 * time.Hour)},
		{Title: "Evening meeting", StartAt: day.Add(19 * time.Hour), EndAt: day.Add(20 * time.Hour)},
	}

	summary := svc.Summarize(context.Background(), day, []domain.DailyHealthSample{sample}, events, nil)

	if len(summary.Explainers) == 0 || len(summary.Explainers) > maxExplainers {
		t.Fatalf("explainer count = %d", len(summary.Explainers))
	}

	var hasMeetings, hasSleep bool
	for _, line := range summary.Explainers {
		if strings.Contains(line, "2 morning meetings") {
			hasMeetings = true
		}
		if strings.Contains(line, "Sleep efficiency") {
			hasSleep = true
		}
	}
	if !hasMeetings {
		t.Errorf("expected morning meeting explainer, got %v", summary.Explainers)
	}
	if !hasSleep {
		t.Errorf("expected sleep efficiency explainer, got %v", summary.Explainers)
	}
}

func TestSummaryService_RankedEvents(t *testing.T) {
	day := testDay("2026-08-20")
	events := []domain.CalendarEvent{
		{Title: "Morning run", StartAt: day.Add(6 * time.Hour), EnergyDelta: floatPtr(0.3)},
		{Title: "Lunch walk", StartAt: day.Add(12 * time.Hour), EnergyDelta: floatPtr(0.1)},
		{Title: "Swim", StartAt: day.Add(17 * time.Hour), EnergyDelta: floatPtr(0.2)},
		{Title: "Bike ride", StartAt: day.Add(18 * time.Hour), EnergyDelta: floatPtr(0.05)},
		{Title: "Budget review", StartAt: day.Add(14 * time.Hour), EnergyDelta: floatPtr(-0.3)},
		{Title: "Standup", StartAt: day.Add(9 * time.Hour), EnergyDelta: floatPtr(-0.1)},
		{Title: "Unscored", StartAt: day.Add(10 * time.Hour)},
	}

	boosters, drainers := rankedEvents(events)

	if len(boosters) != maxRankedEvents {
		t.Fatalf("boosters = %v, want %d entries", boosters, maxRankedEvents)
	}
	if boosters[0] != "Morning run" || boosters[1] != "Swim" || boosters[2] != "Lunch walk" {
		t.Fatalf("boosters order = %v", boosters)
	}
	if len(drainers) != 2 || drainers[0] != "Budget review" || drainers[1] != "Standup" {
		t.Fatalf("drainers = %v", drainers)
	}
}

func TestSummaryService_CoverageRatio(t *testing.T) {
	svc := NewSummaryService()
	day := testDay("2026-08-20")
	sample := fullSample(day)

	summary := svc.Summarize(context.Background(), day, []domain.DailyHealthSample{sample}, nil, nil)

	want := float64(sample.Available.Len()) / float64(len(domain.AllMetrics))
	if summary.CoverageRatio != want {
		t.Fatalf("CoverageRatio = %v, want %v", summary.CoverageRatio, want)
	}
	if summary.SleepEfficiency != 90 {
		t.Fatalf("SleepEfficiency = %v, want 90", summary.SleepEfficiency)
	}
}
