package seed

import (
	"encoding/json"
	"fmt"
	"log"
	"math"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/orionasc/enflow/internal/domain"
	"gorm.io/gorm"
)

const seededDays = 40

// Run seeds the database with sample users, health history, calendar events
// and lifestyle profiles. Safe to call multiple times.
func Run(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&domain.User{},
		&domain.HealthSampleRecord{},
		&domain.CalendarEventRecord{},
		&domain.ProfileRecord{},
	); err != nil {
		return fmt.Errorf("failed to migrate: %w", err)
	}

	users := []domain.User{
		{ID: uuid.MustParse("11111111-1111-1111-1111-111111111111"), DisplayName: "Demo Lark", Timezone: "Europe/Amsterdam"},
		{ID: uuid.MustParse("22222222-2222-2222-2222-222222222222"), DisplayName: "Demo Owl", Timezone: "America/New_York"},
		{ID: uuid.MustParse("33333333-3333-3333-3333-333333333333"), DisplayName: "Demo Sparse", Timezone: "Asia/Tokyo"},
	}

	for _, user := range users {
		if err := db.Where("id = ?", user.ID).FirstOrCreate(&user).Error; err != nil {
			return fmt.Errorf("failed to create user %s: %w", user.ID, err)
		}
	}

	profiles := []domain.ProfileRecord{
		{
			UserID:            users[0].ID,
			CaffeineMgPerDay:  180,
			CaffeineMorning:   true,
			ExerciseFrequency: 4,
			WakeTime:          "06:30",
			SleepTime:         "22:30",
			RegularMeals:      true,
			Chronotype:        domain.ChronotypeMorning,
		},
		{
			UserID:            users[1].ID,
			CaffeineMgPerDay:  420,
			CaffeineMorning:   true,
			CaffeineAfternoon: true,
			CaffeineEvening:   true,
			ExerciseFrequency: 1,
			WakeTime:          "08:30",
			SleepTime:         "01:00",
			ScreenBeforeBed:   true,
			RegularMeals:      false,
			Chronotype:        domain.ChronotypeEvening,
		},
	}
	for _, profile := range profiles {
		if err := db.Save(&profile).Error; err != nil {
			return fmt.Errorf("failed to create profile for %s: %w", profile.UserID, err)
		}
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	for i, user := range users {
		// The last user gets no profile and spotty coverage, so the
		// low-confidence and absent-forecast paths are reachable with
		// seeded data.
		sparse := i == len(users)-1
		if err := seedHealthSamplesForUser(db, user, rng, sparse); err != nil {
			return err
		}
		if err := seedEventsForUser(db, user, rng); err != nil {
			return err
		}
	}

	log.Println("Seed completed")
	return nil
}

func seedHealthSamplesForUser(db *gorm.DB, user domain.User, rng *rand.Rand, sparse bool) error {
	now := time.Now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	for i := 0; i < seededDays; i++ {
		if sparse && rng.Float32() < 0.6 {
			continue
		}
		date := today.AddDate(0, 0, -i)

		// Weekly rhythm: weekend days skew toward more sleep, fewer steps.
		weekend := date.Weekday() == time.Saturday || date.Weekday() == time.Sunday
		steps := 7000 + rng.Float64()*5000
		if weekend {
			steps -= 2500
		}

		available := domain.NewMetricSet(
			domain.MetricStepCount,
			domain.MetricRestingHR,
			domain.MetricActiveEnergyBurned,
			domain.MetricSleepEfficiency,
		)
		record := domain.HealthSampleRecord{
			UserID:          user.ID,
			Date:            date,
			RestingHR:       54 + rng.Float64()*12,
			SleepEfficiency: 78 + rng.Float64()*18,
			StepCount:       math.Round(steps),
			ActiveEnergy:    300 + rng.Float64()*400,
			HasSamples:      true,
		}

		// Wearable metrics are present on most days, not all.
		if rng.Float32() < 0.7 {
			record.HRV = 35 + rng.Float64()*45
			record.SleepLatency = 8 + rng.Float64()*25
			record.DeepSleepMinutes = 50 + rng.Float64()*60
			record.REMSleepMinutes = 70 + rng.Float64()*50
			available.Add(domain.MetricHeartRateVariability)
			available.Add(domain.MetricSleepLatency)
			available.Add(domain.MetricDeepSleep)
			available.Add(domain.MetricREMSleep)
		}

		payload, err := json.Marshal(available)
		if err != nil {
			return fmt.Errorf("failed to encode metric set: %w", err)
		}
		record.AvailableMetrics = payload

		err = db.Where("user_id = ? AND date = ?", user.ID, date).FirstOrCreate(&record).Error
		if err != nil {
			return fmt.Errorf("failed to create health sample: %w", err)
		}
	}
	return nil
}

func seedEventsForUser(db *gorm.DB, user domain.User, rng *rand.Rand) error {
	now := time.Now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	titles := []struct {
		name  string
		hour  int
		delta float64
	}{
		{"Morning gym session", 7, 0.2},
		{"Team standup", 9, -0.1},
		{"Quarterly planning review", 14, -0.2},
		{"Evening walk", 18, 0.15},
		{"1:1 with manager", 11, -0.1},
	}

	for i := -seededDays; i <= 2; i++ {
		if rng.Float32() < 0.5 {
			continue
		}
		date := today.AddDate(0, 0, i)
		pick := titles[rng.Intn(len(titles))]

		start := date.Add(time.Duration(pick.hour) * time.Hour)
		delta := pick.delta
		event := domain.CalendarEventRecord{
			UserID:      user.ID,
			Title:       pick.name,
			StartAt:     start,
			EndAt:       start.Add(time.Hour),
			EnergyDelta: &delta,
		}

		err := db.Where("user_id = ? AND title = ? AND start_at = ?", user.ID, pick.name, start).
			FirstOrCreate(&event).Error
		if err != nil {
			return fmt.Errorf("failed to create calendar event: %w", err)
		}
	}
	return nil
}
