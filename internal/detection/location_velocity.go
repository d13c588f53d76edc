// AccessLens - Insider Access Anomaly Feature Derivation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/accesslens

package detection

import (
	"context"
	"time"

	"github.com/tomtom215/accesslens/internal/models"
)

// LocationVelocityConfig configures the impossible-travel detector.
type LocationVelocityConfig struct {
	// TravelWindow is the minimum plausible time to appear in a different
	// location. A location change in strictly less time is flagged.
	TravelWindow time.Duration `json:"travel_window" koanf:"travel_window"`
}

// DefaultLocationVelocityConfig returns the standard 2-hour travel window.
func DefaultLocationVelocityConfig() LocationVelocityConfig {
	return LocationVelocityConfig{
		TravelWindow: 2 * time.Hour,
	}
}

// LocationVelocityDetector flags users who appear in a different coarse
// location faster than plausible travel allows. It walks each user's
// chronological event sequence and compares every event to its immediate
// predecessor.
type LocationVelocityDetector struct {
	config LocationVelocityConfig
}

// NewLocationVelocityDetector creates an impossible-travel detector.
func NewLocationVelocityDetector(cfg LocationVelocityConfig) *LocationVelocityDetector {
	return &LocationVelocityDetector{config: cfg}
}

// Signal returns the output column this detector computes.
func (d *LocationVelocityDetector) Signal() Signal {
	return SignalImpossibleTravel
}

// Evaluate computes impossible_travel for every event: true iff a previous
// event exists for the user, the location differs, and the time gap is
// strictly less than the travel window.
//
// The strict comparison is deliberate and asymmetric with the device
// velocity detector's inclusive window; the two boundaries are part of the
// output contract. A user's first chronological event has no predecessor
// and is always false.
func (d *LocationVelocityDetector) Evaluate(ctx context.Context, events []models.AccessEvent) (map[int64]bool, error) {
	flags := make(map[int64]bool, len(events))

	for _, seq := range userSequences(events) {
		for i := range seq {
			if i == 0 {
				flags[seq[i].EventID] = false
				continue
			}
			prev := &seq[i-1]
			gap := seq[i].AccessTimestamp.Sub(prev.AccessTimestamp)
			flags[seq[i].EventID] = seq[i].Location != prev.Location && gap < d.config.TravelWindow
		}
	}

	return flags, nil
}
