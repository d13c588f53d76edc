// AccessLens - Insider Access Anomaly Feature Derivation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/accesslens

package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/tomtom215/accesslens/internal/detection"
	"github.com/tomtom215/accesslens/internal/export"
	"github.com/tomtom215/accesslens/internal/logging"
	"github.com/tomtom215/accesslens/internal/models"
	"github.com/tomtom215/accesslens/internal/store"
)

// Handler holds dependencies for all HTTP handlers.
type Handler struct {
	store     *store.Store
	engine    *detection.Engine
	startTime time.Time
}

// NewHandler creates a Handler backed by the given store and engine.
func NewHandler(st *store.Store, engine *detection.Engine) *Handler {
	return &Handler{
		store:     st,
		engine:    engine,
		startTime: time.Now(),
	}
}

// Health reports service health: database connectivity and stored event count.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	dbConnected := false
	var count int64
	if h.store != nil {
		n, err := h.store.CountEvents(r.Context())
		if err == nil {
			dbConnected = true
			count = n
		}
	}

	status := "healthy"
	if !dbConnected {
		status = "degraded"
	}

	code := http.StatusOK
	if !dbConnected {
		code = http.StatusServiceUnavailable
	}

	respondJSON(w, code, &models.APIResponse{
		Status: "success",
		Data: models.HealthStatus{
			Status:            status,
			Version:           "1.0.0",
			DatabaseConnected: dbConnected,
			EventCount:        count,
			Uptime:            time.Since(h.startTime).Seconds(),
		},
		Metadata: models.Metadata{Timestamp: time.Now().UTC()},
	})
}

// ImportEvents ingests access events from a JSONL request body and appends
// them to the store. Duplicate event IDs reject the whole batch.
func (h *Handler) ImportEvents(w http.ResponseWriter, r *http.Request) {
	events, err := store.ReadJSONL(r.Body)
	if err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_BODY", "request body is not valid JSONL", err)
		return
	}
	if len(events) == 0 {
		respondError(w, http.StatusBadRequest, "EMPTY_BODY", "no events in request body", nil)
		return
	}

	if err := h.store.InsertEvents(r.Context(), events); err != nil {
		respondError(w, http.StatusConflict, "INSERT_FAILED", "failed to insert events", err)
		return
	}

	respondJSON(w, http.StatusCreated, &models.APIResponse{
		Status:   "success",
		Data:     map[string]interface{}{"imported": len(events)},
		Metadata: models.Metadata{Timestamp: time.Now().UTC()},
	})
}

// RunFeatures executes a full feature derivation run over every stored event.
//
// The format query parameter selects the response body: "json" (default)
// wraps the run summary and records in the standard envelope, "jsonl" and
// "csv" stream the feature records directly.
func (h *Handler) RunFeatures(w http.ResponseWriter, r *http.Request) {
	ctx := logging.ContextWithNewRunID(r.Context())
	runID := logging.RunIDFromContext(ctx)
	start := time.Now()

	events, err := h.store.ListEvents(ctx)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "STORE_ERROR", "failed to load events", err)
		return
	}

	records, err := h.engine.Run(ctx, events)
	if err != nil {
		status, code := classifyRunError(err)
		respondError(w, status, code, err.Error(), err)
		return
	}

	switch r.URL.Query().Get("format") {
	case "jsonl":
		w.Header().Set("Content-Type", "application/x-ndjson")
		if err := export.WriteJSONL(w, records); err != nil {
			logging.Ctx(ctx).Error().Err(err).Msg("Failed to stream JSONL response")
		}
	case "csv":
		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", `attachment; filename="features.csv"`)
		if err := export.WriteCSV(w, records); err != nil {
			logging.Ctx(ctx).Error().Err(err).Msg("Failed to stream CSV response")
		}
	default:
		respondJSON(w, http.StatusOK, &models.APIResponse{
			Status: "success",
			Data: models.RunSummary{
				RunID:          runID,
				EventsIn:       len(events),
				RecordsOut:     len(records),
				DurationMillis: time.Since(start).Milliseconds(),
				Records:        records,
			},
			Metadata: models.Metadata{
				Timestamp: time.Now().UTC(),
				RunID:     runID,
			},
		})
	}
}

// classifyRunError maps engine failures to HTTP status codes. Malformed
// input is the caller's fault, an empty population means there is nothing
// to derive from, and an assembly gap is an internal defect.
func classifyRunError(err error) (int, string) {
	var malformed *detection.MalformedEventError
	if errors.As(err, &malformed) {
		return http.StatusBadRequest, "MALFORMED_EVENT"
	}
	var empty *detection.EmptyPopulationError
	if errors.As(err, &empty) {
		return http.StatusUnprocessableEntity, "EMPTY_POPULATION"
	}
	var gap *detection.AssemblyGapError
	if errors.As(err, &gap) {
		return http.StatusInternalServerError, "ASSEMBLY_GAP"
	}
	return http.StatusInternalServerError, "RUN_FAILED"
}
