// AccessLens - Insider Access Anomaly Feature Derivation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/accesslens

package models

import "time"

// APIResponse is the standard envelope for all API responses.
type APIResponse struct {
	Status   string      `json:"status"`
	Data     interface{} `json:"data,omitempty"`
	Error    *APIError   `json:"error,omitempty"`
	Metadata Metadata    `json:"metadata"`
}

// APIError carries a machine-readable code and human-readable message.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Metadata holds response metadata.
type Metadata struct {
	Timestamp time.Time `json:"timestamp"`
	RunID     string    `json:"run_id,omitempty"`
}

// HealthStatus reports service health for the health endpoint.
type HealthStatus struct {
	Status            string  `json:"status"`
	Version           string  `json:"version"`
	DatabaseConnected bool    `json:"database_connected"`
	EventCount        int64   `json:"event_count"`
	Uptime            float64 `json:"uptime_seconds"`
}

// RunSummary reports the outcome of a feature derivation run.
type RunSummary struct {
	RunID          string          `json:"run_id"`
	EventsIn       int             `json:"events_in"`
	RecordsOut     int             `json:"records_out"`
	DurationMillis int64           `json:"duration_ms"`
	Records        []FeatureRecord `json:"records,omitempty"`
}
