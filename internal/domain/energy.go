package domain

import "time"

// HoursPerDay is the fixed waveform length. A waveform holds one energy
// value in [0, 1] per hour of the day.
const HoursPerDay = 24

// ForecastSource identifies how a forecast was produced.
// @Description historicalModel for baseline-derived forecasts,
// @Description defaultHeuristic for placeholder output.
type ForecastSource string

const (
	SourceHistoricalModel  ForecastSource = "historicalModel"
	SourceDefaultHeuristic ForecastSource = "defaultHeuristic"
)

// DayEnergySummary is the per-day output of the summarizer (and, after
// blending, of the blended view). Scores are 0-100; waveform values,
// coverage and confidence are 0-1.
// @Description Observed (or blended) energy picture for one day.
type DayEnergySummary struct {
	Date               time.Time `json:"date"`
	OverallEnergyScore float64   `json:"overall_energy_score" example:"64"`
	MentalEnergy       float64   `json:"mental_energy" example:"61"`
	PhysicalEnergy     float64   `json:"physical_energy" example:"67"`
	SleepEfficiency    float64   `json:"sleep_efficiency" example:"91"`
	CoverageRatio      float64   `json:"coverage_ratio" example:"0.44"`
	Confidence         float64   `json:"confidence" example:"0.8"`
	Warning            string    `json:"warning,omitempty"`
	HourlyWaveform     []float64 `json:"hourly_waveform"`
	TopBoosters        []string  `json:"top_boosters,omitempty"`
	TopDrainers        []string  `json:"top_drainers,omitempty"`
	Explainers         []string  `json:"explainers,omitempty"`
}

// DayEnergyForecast is the projected waveform for one day.
// @Description Forecast energy waveform with confidence and data coverage.
type DayEnergyForecast struct {
	Date            time.Time      `json:"date"`
	Values          []float64      `json:"values"`
	Score           float64        `json:"score" example:"58"`
	ConfidenceScore float64        `json:"confidence_score" example:"0.8"`
	MissingMetrics  []MetricKind   `json:"missing_metrics"`
	SourceType      ForecastSource `json:"source_type" example:"historicalModel"`
	DebugInfo       string         `json:"debug_info,omitempty"`
}

// AccuracyResponse reports trailing forecast accuracy.
// @Description Average of recorded per-day forecast accuracy over a window.
type AccuracyResponse struct {
	// Window length in days
	Days int `json:"days" example:"7"`
	// Average accuracy in [0, 1]
	Accuracy float64 `json:"accuracy" example:"0.87"`
}
