package domain

import (
	"time"

	"github.com/google/uuid"
)

// Chronotype is the person's preferred time-of-day energy alignment.
// @Description Chronotype: morning, intermediate, or evening.
type Chronotype string

const (
	ChronotypeMorning      Chronotype = "morning"
	ChronotypeIntermediate Chronotype = "intermediate"
	ChronotypeEvening      Chronotype = "evening"
)

// UserProfile holds person-level parameters that bias the circadian curve
// and baseline. TypicalWakeTime and TypicalSleepTime carry only a time of
// day; consumers read hour/minute and ignore the date component.
type UserProfile struct {
	CaffeineMgPerDay  float64    `json:"caffeine_mg_per_day"`
	CaffeineMorning   bool       `json:"caffeine_morning"`
	CaffeineAfternoon bool       `json:"caffeine_afternoon"`
	CaffeineEvening   bool       `json:"caffeine_evening"`
	ExerciseFrequency int        `json:"exercise_sessions_per_week"`
	TypicalWakeTime   time.Time  `json:"typical_wake_time"`
	TypicalSleepTime  time.Time  `json:"typical_sleep_time"`
	UsesSleepAid      bool       `json:"uses_sleep_aid"`
	ScreenBeforeBed   bool       `json:"screen_before_bed"`
	RegularMeals      bool       `json:"regular_meals"`
	Chronotype        Chronotype `json:"chronotype"`
	UpdatedAt         time.Time  `json:"updated_at"`
	Notes             string     `json:"notes,omitempty"`
}

// ProfileRecord is the persisted form of a user profile, one row per user.
type ProfileRecord struct {
	UserID            uuid.UUID  `gorm:"type:uuid;primaryKey" json:"user_id"`
	CaffeineMgPerDay  float64    `gorm:"not null;default:0" json:"caffeine_mg_per_day"`
	CaffeineMorning   bool       `gorm:"not null;default:false" json:"caffeine_morning"`
	CaffeineAfternoon bool       `gorm:"not null;default:false" json:"caffeine_afternoon"`
	CaffeineEvening   bool       `gorm:"not null;default:false" json:"caffeine_evening"`
	ExerciseFrequency int        `gorm:"type:smallint;not null;default:0" json:"exercise_sessions_per_week"`
	WakeTime          string     `gorm:"type:varchar(5);not null;default:'07:00'" json:"typical_wake_time"`
	SleepTime         string     `gorm:"type:varchar(5);not null;default:'23:00'" json:"typical_sleep_time"`
	UsesSleepAid      bool       `gorm:"not null;default:false" json:"uses_sleep_aid"`
	ScreenBeforeBed   bool       `gorm:"not null;default:false" json:"screen_before_bed"`
	RegularMeals      bool       `gorm:"not null;default:true" json:"regular_meals"`
	Chronotype        Chronotype `gorm:"type:varchar(16);not null;default:'intermediate'" json:"chronotype"`
	Notes             string     `gorm:"type:text;not null;default:''" json:"notes,omitempty"`
	UpdatedAt         time.Time  `gorm:"autoUpdateTime" json:"updated_at"`

	// Associations
	User User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

func (ProfileRecord) TableName() string {
	return "profiles"
}

// ToProfile converts the persisted row into the value type the engines
// consume. Stored HH:MM strings become times on a reference date; only
// hour and minute are meaningful.
func (r *ProfileRecord) ToProfile() UserProfile {
	return UserProfile{
		CaffeineMgPerDay:  r.CaffeineMgPerDay,
		CaffeineMorning:   r.CaffeineMorning,
		CaffeineAfternoon: r.CaffeineAfternoon,
		CaffeineEvening:   r.CaffeineEvening,
		ExerciseFrequency: r.ExerciseFrequency,
		TypicalWakeTime:   parseClockTime(r.WakeTime, 7),
		TypicalSleepTime:  parseClockTime(r.SleepTime, 23),
		UsesSleepAid:      r.UsesSleepAid,
		ScreenBeforeBed:   r.ScreenBeforeBed,
		RegularMeals:      r.RegularMeals,
		Chronotype:        r.Chronotype,
		UpdatedAt:         r.UpdatedAt,
		Notes:             r.Notes,
	}
}

func parseClockTime(hhmm string, fallbackHour int) time.Time {
	t, err := time.Parse("15:04", hhmm)
	if err != nil {
		return time.Date(2000, 1, 1, fallbackHour, 0, 0, 0, time.UTC)
	}
	return time.Date(2000, 1, 1, t.Hour(), t.Minute(), 0, 0, time.UTC)
}

// UpsertProfileRequest is the request body for creating or replacing a
// user profile.
// @Description Person-level configuration biasing energy estimation.
type UpsertProfileRequest struct {
	// Average caffeine intake in mg per day
	CaffeineMgPerDay float64 `json:"caffeine_mg_per_day" validate:"min=0" example:"250"`
	// Caffeine habitually consumed in the morning
	CaffeineMorning bool `json:"caffeine_morning" example:"true"`
	// Caffeine habitually consumed in the afternoon
	CaffeineAfternoon bool `json:"caffeine_afternoon" example:"false"`
	// Caffeine habitually consumed in the evening
	CaffeineEvening bool `json:"caffeine_evening" example:"false"`
	// Exercise sessions per week
	ExerciseFrequency int `json:"exercise_sessions_per_week" validate:"min=0,max=21" example:"3"`
	// Typical wake time as HH:MM
	TypicalWakeTime string `json:"typical_wake_time" validate:"required,clocktime" example:"07:00"`
	// Typical sleep time as HH:MM
	TypicalSleepTime string `json:"typical_sleep_time" validate:"required,clocktime" example:"23:00"`
	// Sleep-aid usage
	UsesSleepAid bool `json:"uses_sleep_aid" example:"false"`
	// Screen use before bed
	ScreenBeforeBed bool `json:"screen_before_bed" example:"true"`
	// Regular meal schedule
	RegularMeals bool `json:"regular_meals" example:"true"`
	// Chronotype: morning, intermediate, or evening
	Chronotype Chronotype `json:"chronotype" validate:"required,oneof=morning intermediate evening" example:"intermediate"`
	// Free-text notes
	Notes string `json:"notes" validate:"max=2000" example:"Shift worker, alternating weeks"`
}
