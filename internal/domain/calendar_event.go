package domain

import (
	"time"

	"github.com/google/uuid"
)

// CalendarEvent is one scheduled item. EnergyDelta, when set, is the signed
// local energy contribution in [-1, 1]: positive events are boosters,
// negative events are drainers, nil means unscored.
type CalendarEvent struct {
	Title       string    `json:"title"`
	StartAt     time.Time `json:"start_at"`
	EndAt       time.Time `json:"end_at"`
	AllDay      bool      `json:"all_day"`
	EnergyDelta *float64  `json:"energy_delta,omitempty"`
}

// CalendarEventRecord is the persisted form of a calendar event.
type CalendarEventRecord struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;index:idx_calendar_events_user_start" json:"user_id"`
	Title       string    `gorm:"type:varchar(255);not null" json:"title"`
	StartAt     time.Time `gorm:"not null;index:idx_calendar_events_user_start" json:"start_at"`
	EndAt       time.Time `gorm:"not null" json:"end_at"`
	AllDay      bool      `gorm:"not null;default:false" json:"all_day"`
	EnergyDelta *float64  `gorm:"type:double precision" json:"energy_delta,omitempty"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`

	// Associations
	User User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

func (CalendarEventRecord) TableName() string {
	return "calendar_events"
}

// ToEvent converts the persisted row into the value type the engines consume.
func (r *CalendarEventRecord) ToEvent() CalendarEvent {
	return CalendarEvent{
		Title:       r.Title,
		StartAt:     r.StartAt,
		EndAt:       r.EndAt,
		AllDay:      r.AllDay,
		EnergyDelta: r.EnergyDelta,
	}
}

// CreateCalendarEventRequest is the request body for recording an event.
// @Description A scheduled calendar item, optionally pre-scored with a
// @Description signed energy delta in [-1, 1].
type CreateCalendarEventRequest struct {
	// Event title
	Title string `json:"title" validate:"required,max=255" example:"Team meeting"`
	// Event start in RFC3339
	StartAt time.Time `json:"start_at" validate:"required" example:"2024-03-10T09:00:00Z"`
	// Event end in RFC3339 (must be after start_at)
	EndAt time.Time `json:"end_at" validate:"required,gtfield=StartAt" example:"2024-03-10T10:00:00Z"`
	// All-day flag
	AllDay bool `json:"all_day" example:"false"`
	// Optional pre-scored energy delta in [-1, 1]
	EnergyDelta *float64 `json:"energy_delta,omitempty" validate:"omitempty,min=-1,max=1" example:"-0.3"`
}

// CalendarEventListResponse is the response for listing events in a range.
// @Description Calendar events ordered by start time.
type CalendarEventListResponse struct {
	Data []CalendarEventRecord `json:"data"`
}
