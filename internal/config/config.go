// AccessLens - Insider Access Anomaly Feature Derivation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/accesslens

package config

import (
	"fmt"
	"time"

	"github.com/tomtom215/accesslens/internal/detection"
	"github.com/tomtom215/accesslens/internal/store"
)

// Config holds all application configuration.
//
// Loading order (Koanf v2):
//  1. Defaults: built-in values for every setting
//  2. Config file: optional YAML file (config.yaml)
//  3. Environment variables: override any setting
//
// Config is immutable after Load() and safe for concurrent read access.
type Config struct {
	Store   store.Config     `koanf:"store"`
	Engine  detection.Config `koanf:"engine"`
	Server  ServerConfig     `koanf:"server"`
	Logging LoggingConfig    `koanf:"logging"`
}

// ServerConfig holds HTTP server settings for the serve surface.
type ServerConfig struct {
	Host    string        `koanf:"host"`
	Port    int           `koanf:"port"`
	Timeout time.Duration `koanf:"timeout"`
}

// LoggingConfig holds log output settings.
type LoggingConfig struct {
	// Level is the minimum log level: trace, debug, info, warn, error, fatal.
	Level string `koanf:"level"`

	// Format is the output format: json or console.
	Format string `koanf:"format"`
}

// Validate checks the configuration for values that cannot work at runtime.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535, got %d", c.Server.Port)
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("server.timeout must be positive, got %s", c.Server.Timeout)
	}
	if c.Store.Threads < 0 {
		return fmt.Errorf("store.threads must not be negative, got %d", c.Store.Threads)
	}

	switch c.Logging.Format {
	case "json", "console":
	default:
		return fmt.Errorf("logging.format must be json or console, got %q", c.Logging.Format)
	}

	b := c.Engine.Baseline
	if b.LowerPercentile < 0 || b.UpperPercentile > 100 || b.LowerPercentile >= b.UpperPercentile {
		return fmt.Errorf("engine.baseline percentiles must satisfy 0 <= lower < upper <= 100, got [%v, %v]",
			b.LowerPercentile, b.UpperPercentile)
	}
	if c.Engine.LocationVelocity.TravelWindow <= 0 {
		return fmt.Errorf("engine.location_velocity.travel_window must be positive, got %s",
			c.Engine.LocationVelocity.TravelWindow)
	}
	if c.Engine.DeviceVelocity.SwitchWindow <= 0 {
		return fmt.Errorf("engine.device_velocity.switch_window must be positive, got %s",
			c.Engine.DeviceVelocity.SwitchWindow)
	}
	oh := c.Engine.OffHours
	if oh.StartHour < 0 || oh.EndHour > 23 || oh.StartHour > oh.EndHour {
		return fmt.Errorf("engine.off_hours hours must satisfy 0 <= start <= end <= 23, got [%d, %d]",
			oh.StartHour, oh.EndHour)
	}

	return nil
}
