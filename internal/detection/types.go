// AccessLens - Insider Access Anomaly Feature Derivation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/accesslens

package detection

import (
	"context"

	"github.com/tomtom215/accesslens/internal/models"
)

// Signal identifies one detector output column.
type Signal string

const (
	// SignalSpike flags events whose records_viewed falls strictly outside
	// the population percentile bounds.
	SignalSpike Signal = "volume_spike"

	// SignalFirstTime flags the first time a user touches a given resource.
	SignalFirstTime Signal = "first_access"

	// SignalRoleViolation flags events inconsistent with the role policy table.
	SignalRoleViolation Signal = "role_policy"

	// SignalImpossibleTravel flags location changes faster than plausible travel.
	SignalImpossibleTravel Signal = "location_velocity"

	// SignalRapidDeviceSwitch flags device changes within the switching window.
	SignalRapidDeviceSwitch Signal = "device_velocity"

	// SignalOffHours flags events outside the standard business window.
	SignalOffHours Signal = "off_hours"

	// SignalUserAggregate names the per-user ratio aggregator. Not a flag
	// detector, but assembly gaps and empty-population failures need a
	// component name for diagnosis.
	SignalUserAggregate Signal = "user_aggregate"
)

// FlagDetector is the interface implemented by every boolean per-event
// detector. Evaluate must be total over the input: it returns exactly one
// flag per distinct event_id, for every event it was given. The assembler
// treats a missing entry as a detector bug (AssemblyGapError).
//
// Detectors are read-only over the event slice and hold no mutable state
// across runs, so the engine may evaluate them concurrently.
type FlagDetector interface {
	// Signal returns the output column this detector computes.
	Signal() Signal

	// Evaluate computes the flag for every event in the set.
	Evaluate(ctx context.Context, events []models.AccessEvent) (map[int64]bool, error)
}

// PopulationBounds holds the percentile bounds over records_viewed for one
// run. Recomputed from the full event set on each run; there are no
// incremental update semantics.
type PopulationBounds struct {
	P5  float64 `json:"p5"`
	P95 float64 `json:"p95"`
}

// UserAggregate holds a user's whole-history volume aggregates. Ratios are
// rounded to 3 decimal places and defined as 0 when TotalRecords is 0.
//
// These are deliberately not running values: every event of a user in one
// run carries the identical ratio, measuring overall behavior rather than
// behavior up to that event's timestamp.
type UserAggregate struct {
	UserID              int64   `json:"user_id"`
	TotalRecords        int64   `json:"total_records"`
	UnauthorizedRecords int64   `json:"unauthorized_records"`
	UnauthorizedRatio   float64 `json:"unauthorized_ratio"`
	SensitiveRecords    int64   `json:"sensitive_records"`
	SensitiveRatio      float64 `json:"sensitive_ratio"`
}
