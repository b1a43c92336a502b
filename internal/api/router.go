package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	_ "github.com/orionasc/enflow/docs"
	"github.com/orionasc/enflow/internal/api/handler"
	"github.com/orionasc/enflow/internal/api/middleware"
	"github.com/orionasc/enflow/internal/observability"
	httpSwagger "github.com/swaggo/http-swagger/v2"
)

type Router struct {
	userHandler    *handler.UserHandler
	sampleHandler  *handler.HealthSampleHandler
	eventHandler   *handler.CalendarEventHandler
	profileHandler *handler.ProfileHandler
	energyHandler  *handler.EnergyHandler
	metrics        *observability.Metrics
}

func NewRouter(
	userHandler *handler.UserHandler,
	sampleHandler *handler.HealthSampleHandler,
	eventHandler *handler.CalendarEventHandler,
	profileHandler *handler.ProfileHandler,
	energyHandler *handler.EnergyHandler,
	metrics *observability.Metrics,
) *Router {
	return &Router{
		userHandler:    userHandler,
		sampleHandler:  sampleHandler,
		eventHandler:   eventHandler,
		profileHandler: profileHandler,
		energyHandler:  energyHandler,
		metrics:        metrics,
	}
}

func (rt *Router) Setup() http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Recovery)
	r.Use(middleware.Tracing)
	r.Use(middleware.Metrics(rt.metrics))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	})

	// Prometheus metrics
	r.Handle("/metrics", rt.metrics.Handler())

	// Swagger documentation
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
		httpSwagger.DeepLinking(true),
		httpSwagger.DocExpansion("list"),
		httpSwagger.DomID("swagger-ui"),
	))

	// API v1 routes
	r.Route("/v1", func(r chi.Router) {
		r.Route("/users", func(r chi.Router) {
			r.Post("/", rt.userHandler.Create)
			r.Get("/{userId}", rt.userHandler.GetByID)

			// Raw health samples (nested under users)
			r.Route("/{userId}/health-samples", func(r chi.Router) {
				r.Post("/", rt.sampleHandler.Upsert)
				r.Get("/", rt.sampleHandler.List)
			})

			// Calendar events
			r.Route("/{userId}/events", func(r chi.Router) {
				r.Post("/", rt.eventHandler.Create)
				r.Get("/", rt.eventHandler.List)
				r.Delete("/{eventId}", rt.eventHandler.Delete)
			})

			// Lifestyle profile
			r.Route("/{userId}/profile", func(r chi.Router) {
				r.Put("/", rt.profileHandler.Upsert)
				r.Get("/", rt.profileHandler.Get)
			})

			// Energy views
			r.Route("/{userId}/energy", func(r chi.Router) {
				r.Get("/accuracy", rt.energyHandler.Accuracy)
				r.Get("/{date}/summary", rt.energyHandler.Summary)
				r.Get("/{date}/forecast", rt.energyHandler.Forecast)
				r.Get("/{date}/blended", rt.energyHandler.Blended)
			})
		})
	})

	return r
}
