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

// DeviceVelocityConfig configures the rapid-device-switch detector.
type DeviceVelocityConfig struct {
	// SwitchWindow is the window within which a device-class change counts
	// as a rapid switch. The comparison is inclusive of the boundary.
	SwitchWindow time.Duration `json:"switch_window" koanf:"switch_window"`
}

// DefaultDeviceVelocityConfig returns the standard 30-minute switch window.
func DefaultDeviceVelocityConfig() DeviceVelocityConfig {
	return DeviceVelocityConfig{
		SwitchWindow: 30 * time.Minute,
	}
}

// DeviceVelocityDetector flags users who switch device classes within a
// short window. Same shape as the location velocity detector: per-user
// chronological walk with a previous-event comparison.
type DeviceVelocityDetector struct {
	config DeviceVelocityConfig
}

// NewDeviceVelocityDetector creates a rapid-device-switch detector.
func NewDeviceVelocityDetector(cfg DeviceVelocityConfig) *DeviceVelocityDetector {
	return &DeviceVelocityDetector{config: cfg}
}

// Signal returns the output column this detector computes.
func (d *DeviceVelocityDetector) Signal() Signal {
	return SignalRapidDeviceSwitch
}

// Evaluate computes rapid_device_switch for every event: true iff a
// previous event exists for the user, the device type differs, and the
// time gap is less than or equal to the switch window.
//
// Note the inclusive <= boundary: a switch at exactly the window still
// flags, unlike the location detector's strict comparison. Preserve
// exactly; the asymmetry is contractual. A user's first chronological
// event is always false.
func (d *DeviceVelocityDetector) Evaluate(ctx context.Context, events []models.AccessEvent) (map[int64]bool, error) {
	flags := make(map[int64]bool, len(events))

	for _, seq := range userSequences(events) {
		for i := range seq {
			if i == 0 {
				flags[seq[i].EventID] = false
				continue
			}
			prev := &seq[i-1]
			gap := seq[i].AccessTimestamp.Sub(prev.AccessTimestamp)
			flags[seq[i].EventID] = seq[i].DeviceType != prev.DeviceType && gap <= d.config.SwitchWindow
		}
	}

	return flags, nil
}
