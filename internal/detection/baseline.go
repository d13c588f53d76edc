// AccessLens - Insider Access Anomaly Feature Derivation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/accesslens

package detection

import (
	"context"
	"math"
	"sort"

	"github.com/tomtom215/accesslens/internal/models"
)

// BaselineConfig configures the population baseline calculator.
type BaselineConfig struct {
	// LowerPercentile is the lower bound percentile (0-100).
	LowerPercentile float64 `json:"lower_percentile" koanf:"lower_percentile"`

	// UpperPercentile is the upper bound percentile (0-100).
	UpperPercentile float64 `json:"upper_percentile" koanf:"upper_percentile"`
}

// DefaultBaselineConfig returns the standard 5th/95th percentile bounds.
func DefaultBaselineConfig() BaselineConfig {
	return BaselineConfig{
		LowerPercentile: 5,
		UpperPercentile: 95,
	}
}

// ComputeBounds calculates percentile bounds over records_viewed for the
// whole event set using linear interpolation between order statistics
// (continuous percentile, not nearest-rank).
//
// Returns EmptyPopulationError when the event set is empty: percentiles are
// undefined and callers must not proceed to spike classification.
func ComputeBounds(events []models.AccessEvent, cfg BaselineConfig) (PopulationBounds, error) {
	if len(events) == 0 {
		return PopulationBounds{}, &EmptyPopulationError{Component: SignalSpike}
	}

	values := make([]float64, len(events))
	for i := range events {
		values[i] = float64(events[i].RecordsViewed)
	}
	sort.Float64s(values)

	return PopulationBounds{
		P5:  interpolatedPercentile(values, cfg.LowerPercentile),
		P95: interpolatedPercentile(values, cfg.UpperPercentile),
	}, nil
}

// interpolatedPercentile computes the p-th percentile of sorted values by
// linear interpolation between the two nearest order statistics. values must
// be non-empty and sorted ascending.
func interpolatedPercentile(values []float64, p float64) float64 {
	if len(values) == 1 {
		return values[0]
	}

	rank := p / 100 * float64(len(values)-1)
	lower := int(math.Floor(rank))
	upper := int(math.Ceil(rank))
	if lower == upper {
		return values[lower]
	}

	frac := rank - float64(lower)
	return values[lower] + frac*(values[upper]-values[lower])
}

// VolumeSpikeDetector flags events whose records_viewed lies strictly
// outside the population percentile bounds. Ties at exactly p5 or p95 are
// not flagged: the comparison is strict on both sides.
type VolumeSpikeDetector struct {
	config BaselineConfig
}

// NewVolumeSpikeDetector creates a volume spike detector with the given
// percentile configuration.
func NewVolumeSpikeDetector(cfg BaselineConfig) *VolumeSpikeDetector {
	return &VolumeSpikeDetector{config: cfg}
}

// Signal returns the output column this detector computes.
func (d *VolumeSpikeDetector) Signal() Signal {
	return SignalSpike
}

// Bounds exposes the percentile bounds for the given event set, shared by
// every event in the run. Useful for run summaries.
func (d *VolumeSpikeDetector) Bounds(events []models.AccessEvent) (PopulationBounds, error) {
	return ComputeBounds(events, d.config)
}

// Evaluate computes is_spike for every event. Pure per-event function once
// the bounds are known; no ordering requirement.
func (d *VolumeSpikeDetector) Evaluate(ctx context.Context, events []models.AccessEvent) (map[int64]bool, error) {
	bounds, err := ComputeBounds(events, d.config)
	if err != nil {
		return nil, err
	}

	flags := make(map[int64]bool, len(events))
	for i := range events {
		v := float64(events[i].RecordsViewed)
		flags[events[i].EventID] = v < bounds.P5 || v > bounds.P95
	}
	return flags, nil
}
