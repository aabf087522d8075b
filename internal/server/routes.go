package server

import (
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"verdict/internal/decision"
	"verdict/internal/handlers"
	"verdict/internal/handlers/api"
	"verdict/internal/middleware"
)

// RegisterRoutes registers all application routes.
func (s *Server) RegisterRoutes(engine *decision.Engine, desks *decision.Registry, gatherer prometheus.Gatherer) {
	// Initialize middleware
	deskMiddleware := middleware.NewDeskMiddleware(desks)

	// Initialize handlers
	deskHandler := handlers.NewDeskHandler(engine, s.Cfg)
	probeHandler := handlers.NewProbeHandler(s.Cfg)
	apiDeskHandler := api.NewDeskHandler(engine)

	// Probes and metrics
	s.App.Get("/healthz", probeHandler.Liveness)
	s.App.Get("/readyz", probeHandler.Readiness)
	s.App.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))

	// Screen - a full page load always starts from a fresh desk
	s.App.Get("/", deskMiddleware.Fresh, deskHandler.Index)
	s.App.Get("/desk", deskMiddleware.Attach, deskHandler.Show)
	s.App.Post("/query", deskMiddleware.Attach, deskHandler.Query)
	s.App.Post("/decide", deskMiddleware.Attach, deskHandler.Submit)
	s.App.Post("/reset", deskMiddleware.Attach, deskHandler.Reset)

	// JSON API over the same session desk
	v1 := s.App.Group("/api/v1", deskMiddleware.Attach)
	v1.Get("/desk", apiDeskHandler.Show)
	v1.Post("/decide", apiDeskHandler.Decide)
	v1.Post("/reset", apiDeskHandler.Reset)
}
