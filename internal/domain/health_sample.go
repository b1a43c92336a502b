package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// DailyHealthSample aggregates one calendar day of physiological metrics.
// Fields whose kind is not in Available hold meaningless defaults and must
// not be read.
type DailyHealthSample struct {
	Date             time.Time `json:"date"`
	HRV              float64   `json:"hrv_ms"`
	RestingHR        float64   `json:"resting_hr_bpm"`
	SleepEfficiency  float64   `json:"sleep_efficiency_pct"`
	SleepLatency     float64   `json:"sleep_latency_min"`
	DeepSleepMinutes float64   `json:"deep_sleep_min"`
	REMSleepMinutes  float64   `json:"rem_sleep_min"`
	StepCount        float64   `json:"step_count"`
	ActiveEnergy     float64   `json:"active_energy_kcal"`
	Available        MetricSet `json:"available_metrics"`
	HasSamples       bool      `json:"has_samples"`
}

// HealthSampleRecord is the persisted form of a daily sample, one row per
// user per day.
type HealthSampleRecord struct {
	ID               uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	UserID           uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:idx_health_samples_user_date" json:"user_id"`
	Date             time.Time      `gorm:"type:date;not null;uniqueIndex:idx_health_samples_user_date" json:"date"`
	HRV              float64        `gorm:"not null;default:0" json:"hrv_ms"`
	RestingHR        float64        `gorm:"not null;default:0" json:"resting_hr_bpm"`
	SleepEfficiency  float64        `gorm:"not null;default:0" json:"sleep_efficiency_pct"`
	SleepLatency     float64        `gorm:"not null;default:0" json:"sleep_latency_min"`
	DeepSleepMinutes float64        `gorm:"not null;default:0" json:"deep_sleep_min"`
	REMSleepMinutes  float64        `gorm:"not null;default:0" json:"rem_sleep_min"`
	StepCount        float64        `gorm:"not null;default:0" json:"step_count"`
	ActiveEnergy     float64        `gorm:"not null;default:0" json:"active_energy_kcal"`
	AvailableMetrics datatypes.JSON `gorm:"type:jsonb" json:"available_metrics"`
	HasSamples       bool           `gorm:"not null;default:false" json:"has_samples"`
	CreatedAt        time.Time      `gorm:"autoCreateTime" json:"created_at"`

	// Associations
	User User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

func (HealthSampleRecord) TableName() string {
	return "health_samples"
}

// ToSample converts the persisted row into the value type the engines
// consume. A malformed metric-set payload degrades to an empty set, which
// downstream confidence scoring already handles.
func (r *HealthSampleRecord) ToSample() DailyHealthSample {
	var available MetricSet
	if len(r.AvailableMetrics) > 0 {
		_ = json.Unmarshal(r.AvailableMetrics, &available)
	}
	if available == nil {
		available = NewMetricSet()
	}
	return DailyHealthSample{
		Date:             r.Date,
		HRV:              r.HRV,
		RestingHR:        r.RestingHR,
		SleepEfficiency:  r.SleepEfficiency,
		SleepLatency:     r.SleepLatency,
		DeepSleepMinutes: r.DeepSleepMinutes,
		REMSleepMinutes:  r.REMSleepMinutes,
		StepCount:        r.StepCount,
		ActiveEnergy:     r.ActiveEnergy,
		Available:        available,
		HasSamples:       r.HasSamples,
	}
}

// UpsertHealthSampleRequest is the request body for recording one day of
// health data.
// @Description One calendar day of physiological aggregates with an explicit
// @Description list of which metrics were actually measured.
type UpsertHealthSampleRequest struct {
	// Calendar day the sample covers, in YYYY-MM-DD
	Date string `json:"date" validate:"required,dayformat" example:"2024-03-10"`
	// Heart-rate variability in milliseconds
	HRV float64 `json:"hrv_ms" validate:"omitempty,min=0" example:"72"`
	// Resting heart rate in beats per minute
	RestingHR float64 `json:"resting_hr_bpm" validate:"omitempty,min=0" example:"56"`
	// Sleep efficiency percentage (0-100)
	SleepEfficiency float64 `json:"sleep_efficiency_pct" validate:"omitempty,min=0,max=100" example:"91"`
	// Sleep latency in minutes
	SleepLatency float64 `json:"sleep_latency_min" validate:"omitempty,min=0" example:"14"`
	// Deep sleep in minutes
	DeepSleepMinutes float64 `json:"deep_sleep_min" validate:"omitempty,min=0" example:"95"`
	// REM sleep in minutes
	REMSleepMinutes float64 `json:"rem_sleep_min" validate:"omitempty,min=0" example:"105"`
	// Step count for the day
	StepCount float64 `json:"step_count" validate:"omitempty,min=0" example:"8200"`
	// Active energy burned in kcal
	ActiveEnergy float64 `json:"active_energy_kcal" validate:"omitempty,min=0" example:"540"`
	// Metric kinds actually measured; unlisted fields are treated as absent
	AvailableMetrics []MetricKind `json:"available_metrics" validate:"required,min=1"`
}

// HealthSampleListResponse is the paginated response for listing samples.
// @Description Paginated list of daily health samples, newest first.
type HealthSampleListResponse struct {
	Data       []HealthSampleRecord `json:"data"`
	Pagination PaginationResponse   `json:"pagination"`
}

// PaginationResponse contains pagination metadata.
// @Description Cursor-based pagination info.
type PaginationResponse struct {
	// Cursor for fetching the next page (empty if no more pages)
	NextCursor string `json:"next_cursor,omitempty"`
	// True if more results are available
	HasMore bool `json:"has_more" example:"true"`
}

// HealthSampleFilter contains filter parameters for listing samples.
type HealthSampleFilter struct {
	From   *time.Time
	To     *time.Time
	Limit  int
	Cursor string
}
