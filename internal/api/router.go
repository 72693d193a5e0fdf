// Package api provides the read-only HTTP surface over the analysis engine.
// Every endpoint recomputes its result from the store on each request; the
// engine keeps no cached or incremental state to invalidate.
package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"timeline-insight/internal/config"
	"timeline-insight/internal/intelligence"
	"timeline-insight/internal/logging"
	"timeline-insight/internal/storage"
)

// maxRequestBody bounds request bodies; the API is read-only so anything
// beyond small query payloads is suspect.
const maxRequestBody = 1 << 20

// Router wires the analysis endpoints onto a chi mux.
type Router struct {
	cfg      *config.Config
	mux      *chi.Mux
	store    storage.ArtifactStore
	detector *intelligence.Detector
	logger   logging.Logger
}

// NewRouter creates the API router with middleware and routes installed.
func NewRouter(cfg *config.Config, store storage.ArtifactStore, logger logging.Logger) *Router {
	if logger == nil {
		logger = logging.NewNop()
	}
	r := &Router{
		cfg:   cfg,
		mux:   chi.NewRouter(),
		store: store,
		detector: intelligence.NewDetector(
			intelligence.WithSimilarityThreshold(cfg.Engine.SimilarityThreshold),
			intelligence.WithDateConflictMinDays(cfg.Engine.DateConflictDays),
			intelligence.WithMaxConflicts(cfg.Engine.MaxConflicts),
		),
		logger: logger.WithComponent("api"),
	}

	r.setupMiddleware()
	r.setupRoutes()
	return r
}

// Handler returns the HTTP handler.
func (r *Router) Handler() http.Handler {
	return r.mux
}

func (r *Router) setupMiddleware() {
	r.mux.Use(chimiddleware.Recoverer)
	r.mux.Use(chimiddleware.RequestSize(maxRequestBody))
	r.mux.Use(chimiddleware.Timeout(time.Duration(r.cfg.Server.ReadTimeout) * time.Second))
	r.mux.Use(chimiddleware.Heartbeat("/ping"))
}

func (r *Router) setupRoutes() {
	r.mux.Get("/healthz", r.handleHealth)

	r.mux.Route("/api/v1", func(mux chi.Router) {
		mux.Get("/quality", r.handleQuality)
		mux.Get("/conflicts", r.handleConflicts)
		mux.Get("/artifacts", r.handleArtifacts)
		mux.Get("/artifacts/{artifactID}/entities", r.handleArtifactEntities)
	})
}
