// AccessLens - Insider Access Anomaly Feature Derivation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/accesslens

package detection

import (
	"fmt"
)

// EmptyPopulationError is returned when percentile bounds are requested over
// an empty event set. Percentiles are undefined in that case; callers must
// not proceed to per-event spike classification. Always fatal for the run.
type EmptyPopulationError struct {
	// Component names the detector that required the population, for
	// diagnosis in multi-detector runs.
	Component Signal
}

func (e *EmptyPopulationError) Error() string {
	return fmt.Sprintf("%s: percentile bounds undefined over empty event set", e.Component)
}

// MalformedEventError reports an event that fails the input contract: a
// negative records_viewed, an unrecognized role or access type, or a zero
// required field. The run fails closed rather than silently coercing.
type MalformedEventError struct {
	EventID int64
	Field   string
	Reason  string
}

func (e *MalformedEventError) Error() string {
	return fmt.Sprintf("malformed event %d: field %s: %s", e.EventID, e.Field, e.Reason)
}

// AssemblyGapError reports a detector that produced no output for an event
// it was given. Every detector is total over the event set, so a gap is an
// internal invariant violation (a detector bug) and always fatal.
type AssemblyGapError struct {
	Component Signal
	EventID   int64
}

func (e *AssemblyGapError) Error() string {
	return fmt.Sprintf("assembly gap: %s produced no output for event %d", e.Component, e.EventID)
}
