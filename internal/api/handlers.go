package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"timeline-insight/internal/extraction"
	"timeline-insight/internal/quality"
	"timeline-insight/internal/timeline"
	"timeline-insight/pkg/types"
)

// qualityReport is the dashboard payload: date coverage plus per-field gaps.
type qualityReport struct {
	Coverage    types.CoverageSummary   `json:"coverage"`
	MissingInfo types.MissingInfoResult `json:"missingInfo"`
}

// conflictsReport wraps the conflict list with scan metadata.
type conflictsReport struct {
	TotalArtifacts int                       `json:"totalArtifacts"`
	ConflictsFound int                       `json:"conflictsFound"`
	Conflicts      []types.PotentialConflict `json:"conflicts"`
	ScannedAt      string                    `json:"scannedAt"`
}

// artifactEntities is the per-artifact entity listing.
type artifactEntities struct {
	ArtifactID string   `json:"artifactId"`
	Entities   []string `json:"entities"`
}

func (r *Router) handleHealth(w http.ResponseWriter, req *http.Request) {
	if _, err := r.store.List(req.Context()); err != nil {
		r.logger.Error("health check failed", "error", err.Error())
		writeError(w, http.StatusServiceUnavailable, "artifact store unavailable")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func (r *Router) handleQuality(w http.ResponseWriter, req *http.Request) {
	entries, ok := r.loadEntries(w, req)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, qualityReport{
		Coverage:    timeline.Coverage(entries),
		MissingInfo: quality.ComputeMissingInfo(entries),
	})
}

func (r *Router) handleConflicts(w http.ResponseWriter, req *http.Request) {
	entries, ok := r.loadEntries(w, req)
	if !ok {
		return
	}
	conflicts := r.detector.DetectConflicts(entries)
	writeJSON(w, http.StatusOK, conflictsReport{
		TotalArtifacts: len(entries),
		ConflictsFound: len(conflicts),
		Conflicts:      conflicts,
		ScannedAt:      time.Now().UTC().Format(time.RFC3339),
	})
}

func (r *Router) handleArtifacts(w http.ResponseWriter, req *http.Request) {
	entries, ok := r.loadEntries(w, req)
	if !ok {
		return
	}
	if q := req.URL.Query().Get("entity"); q != "" {
		entries = extraction.FilterByEntity(entries, q)
	}
	if entries == nil {
		entries = []types.EntryRecord{}
	}
	writeJSON(w, http.StatusOK, entries)
}

func (r *Router) handleArtifactEntities(w http.ResponseWriter, req *http.Request) {
	artifactID := chi.URLParam(req, "artifactID")
	entry, err := r.store.GetByID(req.Context(), artifactID)
	if err != nil {
		r.logger.Error("artifact lookup failed", "artifact_id", artifactID, "error", err.Error())
		writeError(w, http.StatusInternalServerError, "failed to load artifact")
		return
	}
	if entry == nil {
		writeError(w, http.StatusNotFound, "artifact not found")
		return
	}
	writeJSON(w, http.StatusOK, artifactEntities{
		ArtifactID: artifactID,
		Entities:   extraction.Entities(&entry.Artifact),
	})
}

// loadEntries fetches the capped entry list, writing the error response
// itself when the store fails.
func (r *Router) loadEntries(w http.ResponseWriter, req *http.Request) ([]types.EntryRecord, bool) {
	entries, err := r.store.List(req.Context())
	if err != nil {
		r.logger.Error("failed to list artifacts", "error", err.Error())
		writeError(w, http.StatusInternalServerError, "failed to load artifacts")
		return nil, false
	}
	if max := r.cfg.Store.MaxArtifacts; len(entries) > max {
		r.logger.Warn("artifact collection exceeds cap, truncating", "count", len(entries), "cap", max)
		entries = entries[:max]
	}
	return entries, true
}
