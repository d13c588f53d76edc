// AccessLens - Insider Access Anomaly Feature Derivation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/accesslens

package detection

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/tomtom215/accesslens/internal/logging"
	"github.com/tomtom215/accesslens/internal/metrics"
	"github.com/tomtom215/accesslens/internal/models"
)

// Config collects the tunable thresholds of every detector. Defaults match
// the production policy; overriding them is a configuration change, not a
// code change.
type Config struct {
	Baseline         BaselineConfig         `json:"baseline" koanf:"baseline"`
	LocationVelocity LocationVelocityConfig `json:"location_velocity" koanf:"location_velocity"`
	DeviceVelocity   DeviceVelocityConfig   `json:"device_velocity" koanf:"device_velocity"`
	OffHours         OffHoursConfig         `json:"off_hours" koanf:"off_hours"`
}

// DefaultConfig returns the standard detector thresholds.
func DefaultConfig() Config {
	return Config{
		Baseline:         DefaultBaselineConfig(),
		LocationVelocity: DefaultLocationVelocityConfig(),
		DeviceVelocity:   DefaultDeviceVelocityConfig(),
		OffHours:         DefaultOffHoursConfig(),
	}
}

// Engine coordinates the detectors and the assembler for one run at a time.
// It is a stateless batch transform: the engine holds configuration only,
// and a run neither mutates the input nor leaves state behind, so re-runs
// over identical input are idempotent.
type Engine struct {
	spike      *VolumeSpikeDetector
	detectors  []FlagDetector
	aggregator *UserAggregator
}

// NewEngine creates an engine with every detector registered.
func NewEngine(cfg Config) *Engine {
	spike := NewVolumeSpikeDetector(cfg.Baseline)
	return &Engine{
		spike: spike,
		detectors: []FlagDetector{
			spike,
			NewFirstAccessDetector(),
			NewRolePolicyEvaluator(),
			NewLocationVelocityDetector(cfg.LocationVelocity),
			NewDeviceVelocityDetector(cfg.DeviceVelocity),
			NewOffHoursClassifier(cfg.OffHours),
		},
		aggregator: NewUserAggregator(),
	}
}

// Run derives one FeatureRecord per input event.
//
// The input is validated first and the run fails closed on any malformed
// event. Detectors then evaluate concurrently against the shared read-only
// event slice; the assembler waits for all of them before emitting any row.
// The first detector error cancels the remaining work.
func (e *Engine) Run(ctx context.Context, events []models.AccessEvent) ([]models.FeatureRecord, error) {
	start := time.Now()
	log := logging.Ctx(ctx)
	log.Info().Int("events", len(events)).Msg("feature derivation run started")

	if err := ValidateEvents(events); err != nil {
		metrics.RunsTotal.WithLabelValues("error").Inc()
		return nil, err
	}

	outputs := DetectorOutputs{
		Flags: make(map[Signal]map[int64]bool, len(e.detectors)),
	}
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)

	for _, d := range e.detectors {
		g.Go(func() error {
			defer metrics.TrackDetector(string(d.Signal()))()
			flags, err := d.Evaluate(gctx, events)
			if err != nil {
				return err
			}
			mu.Lock()
			outputs.Flags[d.Signal()] = flags
			mu.Unlock()
			return nil
		})
	}

	g.Go(func() error {
		defer metrics.TrackDetector(string(SignalUserAggregate))()
		aggregates, err := e.aggregator.Aggregate(gctx, events)
		if err != nil {
			return err
		}
		mu.Lock()
		outputs.Aggregates = aggregates
		mu.Unlock()
		return nil
	})

	if err := g.Wait(); err != nil {
		metrics.RunsTotal.WithLabelValues("error").Inc()
		return nil, err
	}

	records, err := Assemble(events, outputs)
	if err != nil {
		metrics.RunsTotal.WithLabelValues("error").Inc()
		return nil, err
	}

	e.logSummary(log, events, outputs, time.Since(start))
	metrics.RunsTotal.WithLabelValues("ok").Inc()
	metrics.EventsProcessed.Add(float64(len(events)))
	metrics.RunDuration.Observe(time.Since(start).Seconds())

	return records, nil
}

// logSummary emits one structured line per run with the population bounds
// and the per-signal flag counts, for operator review and run-to-run diffs.
func (e *Engine) logSummary(log *zerolog.Logger, events []models.AccessEvent, outputs DetectorOutputs, elapsed time.Duration) {
	summary := log.Info().
		Int("events", len(events)).
		Int("users", len(outputs.Aggregates)).
		Dur("elapsed", elapsed)

	if bounds, err := e.spike.Bounds(events); err == nil {
		summary = summary.Float64("p5", bounds.P5).Float64("p95", bounds.P95)
	}

	for _, sig := range requiredSignals {
		count := 0
		for _, flagged := range outputs.Flags[sig] {
			if flagged {
				count++
			}
		}
		metrics.FlagsEmitted.WithLabelValues(string(sig)).Add(float64(count))
		summary = summary.Int(string(sig), count)
	}

	summary.Msg("feature derivation run completed")
}
