// Enflow API
//
// REST API for hour-by-hour personal energy estimation and forecasting.
//
//	@title			Enflow API
//	@version		1.0
//	@description	Daily health aggregates, calendar events and lifestyle profiles feed observed, forecast and blended hourly energy views per user.
//
//	@BasePath	/v1
//
//	@tag.name			users
//	@tag.description	User management endpoints
//
//	@tag.name			health-samples
//	@tag.description	Daily health aggregate endpoints
//
//	@tag.name			events
//	@tag.description	Calendar event endpoints
//
//	@tag.name			profile
//	@tag.description	Lifestyle profile endpoints
//
//	@tag.name			energy
//	@tag.description	Observed, forecast and blended energy views
package main

import (
	"context"
	"log"
	"net/http"

	"github.com/orionasc/enflow/internal/api"
	"github.com/orionasc/enflow/internal/api/handler"
	"github.com/orionasc/enflow/internal/config"
	"github.com/orionasc/enflow/internal/domain"
	"github.com/orionasc/enflow/internal/observability"
	"github.com/orionasc/enflow/internal/repository"
	"github.com/orionasc/enflow/internal/scheduler"
	"github.com/orionasc/enflow/internal/seed"
	"github.com/orionasc/enflow/internal/service"
	"github.com/orionasc/enflow/internal/telemetry"
)

func main() {
	ctx := context.Background()

	// Load configuration
	cfg := config.Load()

	// Initialize tracing (no-op when no collector is configured)
	shutdownTracer, err := telemetry.InitTracer(ctx, cfg, "enflow-api")
	if err != nil {
		log.Fatalf("Failed to initialize tracer: %v", err)
	}
	defer func() {
		if err := shutdownTracer(context.Background()); err != nil {
			log.Printf("Failed to shut down tracer: %v", err)
		}
	}()

	// Connect to database
	db, err := config.NewDatabase(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Auto-migrate database schema
	if err := db.AutoMigrate(
		&domain.User{},
		&domain.HealthSampleRecord{},
		&domain.CalendarEventRecord{},
		&domain.ProfileRecord{},
		&repository.ForecastCacheEntry{},
	); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
	log.Println("Database migration completed")

	if cfg.Seed {
		log.Println("Seeding database with sample data (SEED=true)...")
		if err := seed.Run(db); err != nil {
			log.Fatalf("Failed to seed database: %v", err)
		}
	}

	// Initialize metrics
	metrics := observability.NewMetrics()

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	sampleRepo := repository.NewHealthSampleRepository(db)
	eventRepo := repository.NewCalendarEventRepository(db)
	profileRepo := repository.NewProfileRepository(db)
	forecastStores := repository.NewForecastStoreFactory(db)

	// Initialize services
	userService := service.NewUserService(userRepo)
	sampleService := service.NewHealthSampleService(sampleRepo, userRepo)
	eventService := service.NewCalendarEventService(eventRepo, userRepo)
	profileService := service.NewProfileService(profileRepo, userRepo)
	energyService := service.NewEnergyService(userRepo, sampleRepo, eventRepo, profileRepo, forecastStores, metrics)

	// Initialize handlers
	userHandler := handler.NewUserHandler(userService)
	sampleHandler := handler.NewHealthSampleHandler(sampleService)
	eventHandler := handler.NewCalendarEventHandler(eventService)
	profileHandler := handler.NewProfileHandler(profileService)
	energyHandler := handler.NewEnergyHandler(energyService)

	// Start daily refresh scheduler
	if cfg.SchedulerEnabled {
		sched := scheduler.New(userRepo, energyService)
		if err := sched.Start(); err != nil {
			log.Fatalf("Failed to start scheduler: %v", err)
		}
		defer sched.Stop()
	}

	// Setup router
	router := api.NewRouter(userHandler, sampleHandler, eventHandler, profileHandler, energyHandler, metrics)
	routerHandler := router.Setup()

	// Start server
	addr := ":" + cfg.Port
	log.Printf("Starting server on %s", addr)
	if err := http.ListenAndServe(addr, routerHandler); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
