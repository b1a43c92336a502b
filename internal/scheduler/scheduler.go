package scheduler

import (
	"context"
	"log"
	"time"

	"github.com/orionasc/enflow/internal/repository"
	"github.com/orionasc/enflow/internal/service"
	"github.com/robfig/cron/v3"
)

// Scheduler refreshes energy state for every user on a daily cadence.
// Running the blend for yesterday records forecast accuracy before the
// observed day scrolls out of the window, and computing today's forecast
// warms the cache ahead of the first request.
type Scheduler struct {
	cron     *cron.Cron
	userRepo repository.UserRepository
	energy   service.EnergyService
}

func New(userRepo repository.UserRepository, energy service.EnergyService) *Scheduler {
	return &Scheduler{
		cron:     cron.New(),
		userRepo: userRepo,
		energy:   energy,
	}
}

// Start registers the daily refresh job and begins the cron loop.
// The job runs at 05:00 server time, after overnight health data has
// usually synced.
func (s *Scheduler) Start() error {
	_, err := s.cron.AddFunc("0 5 * * *", s.refreshAll)
	if err != nil {
		return err
	}
	s.cron.Start()
	log.Println("Scheduler started: daily energy refresh at 05:00")
	return nil
}

// Stop halts the cron loop and waits for a running job to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}

func (s *Scheduler) refreshAll() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	users, err := s.userRepo.ListAll(ctx)
	if err != nil {
		log.Printf("Scheduler: failed to list users: %v", err)
		return
	}

	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	yesterday := today.AddDate(0, 0, -1)

	var refreshed, failed int
	for _, user := range users {
		if _, err := s.energy.Blended(ctx, user.ID, yesterday); err != nil {
			log.Printf("Scheduler: blend for user %s failed: %v", user.ID, err)
			failed++
			continue
		}
		if _, err := s.energy.Forecast(ctx, user.ID, today); err != nil {
			log.Printf("Scheduler: forecast for user %s failed: %v", user.ID, err)
			failed++
			continue
		}
		refreshed++
	}

	log.Printf("Scheduler: daily refresh done, %d users refreshed, %d failed", refreshed, failed)
}
