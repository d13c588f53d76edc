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

// OffHoursConfig configures the temporal window classifier.
type OffHoursConfig struct {
	// StartHour is the first hour of the standard business window (0-23).
	StartHour int `json:"start_hour" koanf:"start_hour"`

	// EndHour is the last hour of the standard business window (0-23).
	// The boundary is hour-granular: the whole hour EndHour:00 through
	// EndHour:59 counts as standard hours.
	EndHour int `json:"end_hour" koanf:"end_hour"`
}

// DefaultOffHoursConfig returns the standard 08:00-18:59 business window.
func DefaultOffHoursConfig() OffHoursConfig {
	return OffHoursConfig{
		StartHour: 8,
		EndHour:   18,
	}
}

// OffHoursClassifier flags events outside standard business hours: any
// Saturday or Sunday event, or a weekday event whose hour-of-day is before
// the start hour or strictly after the end hour.
//
// The boundary is hour-granular rather than minute-precise: with the
// default window, 18:00:00 through 18:59:59 is NOT off-hours because the
// hour value 18 is not greater than 18. Downstream consumers depend on
// this exact boundary; do not tighten it to minute precision.
type OffHoursClassifier struct {
	config OffHoursConfig
}

// NewOffHoursClassifier creates a temporal window classifier.
func NewOffHoursClassifier(cfg OffHoursConfig) *OffHoursClassifier {
	return &OffHoursClassifier{config: cfg}
}

// Signal returns the output column this detector computes.
func (d *OffHoursClassifier) Signal() Signal {
	return SignalOffHours
}

// Evaluate computes is_off_hours for every event. Pure per-event function
// of the access timestamp alone; no ordering requirement.
func (d *OffHoursClassifier) Evaluate(ctx context.Context, events []models.AccessEvent) (map[int64]bool, error) {
	flags := make(map[int64]bool, len(events))
	for i := range events {
		flags[events[i].EventID] = d.offHours(events[i].AccessTimestamp)
	}
	return flags, nil
}

// offHours applies the weekend-or-outside-window rule to one timestamp.
// time.Weekday already follows the 0=Sunday..6=Saturday convention.
func (d *OffHoursClassifier) offHours(ts time.Time) bool {
	switch ts.Weekday() {
	case time.Saturday, time.Sunday:
		return true
	}
	hour := ts.Hour()
	return hour < d.config.StartHour || hour > d.config.EndHour
}
