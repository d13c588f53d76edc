// AccessLens - Insider Access Anomaly Feature Derivation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/accesslens

// Package store provides the DuckDB-backed access event store.
//
// The store is the boundary collaborator supplying the engine's input: an
// append-only, immutable sequence of typed access events. The engine reads
// the complete set through EventSource and never mutates or deletes rows;
// writes happen only through the ingest path, before a run starts.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	_ "github.com/duckdb/duckdb-go/v2"

	"github.com/tomtom215/accesslens/internal/logging"
	"github.com/tomtom215/accesslens/internal/metrics"
	"github.com/tomtom215/accesslens/internal/models"
)

// EventSource is the read side of the event store: the complete event set
// as one iterable collection. The engine assumes the snapshot is consistent
// for the duration of a run.
type EventSource interface {
	// ListEvents returns every stored event ordered by event_id.
	ListEvents(ctx context.Context) ([]models.AccessEvent, error)

	// CountEvents returns the number of stored events.
	CountEvents(ctx context.Context) (int64, error)
}

// Config holds event store configuration.
type Config struct {
	// Path is the DuckDB database file. Empty means in-memory.
	Path string `json:"path" koanf:"path"`

	// MaxMemory caps DuckDB's memory usage (e.g. "1GB").
	MaxMemory string `json:"max_memory" koanf:"max_memory"`

	// Threads is the DuckDB thread count. 0 uses runtime.NumCPU().
	Threads int `json:"threads" koanf:"threads"`
}

// DefaultConfig returns the standard store configuration.
func DefaultConfig() Config {
	return Config{
		Path:      "accesslens.duckdb",
		MaxMemory: "1GB",
		Threads:   0,
	}
}

// Store is a DuckDB-backed event store.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the event store and bootstraps its schema.
func Open(cfg Config) (*Store, error) {
	numThreads := cfg.Threads
	if numThreads <= 0 {
		numThreads = runtime.NumCPU()
	}

	dsn := ":memory:"
	if cfg.Path != "" {
		// Parent directory must exist before DuckDB creates the file.
		dbDir := filepath.Dir(cfg.Path)
		if dbDir != "" && dbDir != "." {
			if err := os.MkdirAll(dbDir, 0o750); err != nil {
				return nil, fmt.Errorf("failed to create database directory %s: %w", dbDir, err)
			}
		}
		dsn = cfg.Path
	}
	connStr := fmt.Sprintf("%s?access_mode=read_write&threads=%d&max_memory=%s&autoinstall_known_extensions=false&autoload_known_extensions=false",
		dsn, numThreads, cfg.MaxMemory)

	db, err := sql.Open("duckdb", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	s := &Store{db: db}
	if err := s.initSchema(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	logging.Info().Str("path", cfg.Path).Msg("event store opened")
	return s, nil
}

// initSchema creates the access_events table if it does not exist.
func (s *Store) initSchema() error {
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS access_events (
		event_id             BIGINT PRIMARY KEY,
		user_id              BIGINT NOT NULL,
		user_role            VARCHAR NOT NULL,
		resource_accessed    VARCHAR NOT NULL,
		resource_sens        BOOLEAN NOT NULL,
		access_timestamp     TIMESTAMP NOT NULL,
		location             VARCHAR NOT NULL,
		device_type          VARCHAR NOT NULL,
		access_type          VARCHAR NOT NULL,
		records_viewed       BIGINT NOT NULL,
		is_authorized        BOOLEAN NOT NULL,
		is_privacy_violation BOOLEAN NOT NULL
	)`)
	return err
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// InsertEvents appends events to the store in one transaction. Existing
// rows are never updated: a conflicting event_id fails the whole batch,
// preserving the append-only contract.
func (s *Store) InsertEvents(ctx context.Context, events []models.AccessEvent) error {
	defer metrics.TrackStoreQuery("insert_events")()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		metrics.StoreQueryErrors.WithLabelValues("insert_events").Inc()
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO access_events (
		event_id, user_id, user_role, resource_accessed, resource_sens,
		access_timestamp, location, device_type, access_type,
		records_viewed, is_authorized, is_privacy_violation
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		metrics.StoreQueryErrors.WithLabelValues("insert_events").Inc()
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for i := range events {
		ev := &events[i]
		if _, err := stmt.ExecContext(ctx,
			ev.EventID, ev.UserID, string(ev.UserRole), ev.ResourceAccessed,
			ev.ResourceSensitive, ev.AccessTimestamp.UTC(), ev.Location,
			ev.DeviceType, string(ev.AccessType), ev.RecordsViewed,
			ev.IsAuthorized, ev.IsPrivacyViolation,
		); err != nil {
			metrics.StoreQueryErrors.WithLabelValues("insert_events").Inc()
			return fmt.Errorf("failed to insert event %d: %w", ev.EventID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		metrics.StoreQueryErrors.WithLabelValues("insert_events").Inc()
		return fmt.Errorf("failed to commit: %w", err)
	}
	return nil
}

// ListEvents returns every stored event ordered by event_id, giving the
// engine a deterministic snapshot of the complete history.
func (s *Store) ListEvents(ctx context.Context) ([]models.AccessEvent, error) {
	defer metrics.TrackStoreQuery("list_events")()

	rows, err := s.db.QueryContext(ctx, `SELECT
		event_id, user_id, user_role, resource_accessed, resource_sens,
		access_timestamp, location, device_type, access_type,
		records_viewed, is_authorized, is_privacy_violation
	FROM access_events ORDER BY event_id`)
	if err != nil {
		metrics.StoreQueryErrors.WithLabelValues("list_events").Inc()
		return nil, fmt.Errorf("failed to query events: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var events []models.AccessEvent
	for rows.Next() {
		var ev models.AccessEvent
		var role, accessType string
		if err := rows.Scan(
			&ev.EventID, &ev.UserID, &role, &ev.ResourceAccessed,
			&ev.ResourceSensitive, &ev.AccessTimestamp, &ev.Location,
			&ev.DeviceType, &accessType, &ev.RecordsViewed,
			&ev.IsAuthorized, &ev.IsPrivacyViolation,
		); err != nil {
			metrics.StoreQueryErrors.WithLabelValues("list_events").Inc()
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		ev.UserRole = models.Role(role)
		ev.AccessType = models.AccessType(accessType)
		ev.AccessTimestamp = ev.AccessTimestamp.UTC()
		events = append(events, ev)
	}
	if err := rows.Err(); err != nil {
		metrics.StoreQueryErrors.WithLabelValues("list_events").Inc()
		return nil, fmt.Errorf("failed to iterate events: %w", err)
	}

	return events, nil
}

// CountEvents returns the number of stored events.
func (s *Store) CountEvents(ctx context.Context) (int64, error) {
	defer metrics.TrackStoreQuery("count")()

	var count int64
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM access_events`).Scan(&count); err != nil {
		metrics.StoreQueryErrors.WithLabelValues("count").Inc()
		return 0, fmt.Errorf("failed to count events: %w", err)
	}
	return count, nil
}
