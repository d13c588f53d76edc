// AccessLens - Insider Access Anomaly Feature Derivation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/accesslens

package store

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/accesslens/internal/models"
)

// timestampLayouts are accepted on ingest, tried in order. Values without a
// zone are treated as UTC, matching the store's time-zone-free semantics.
var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
}

// ReadJSONL decodes access events from JSON Lines input: one event object
// per line, field names matching the AccessEvent JSON schema.
func ReadJSONL(r io.Reader) ([]models.AccessEvent, error) {
	dec := json.NewDecoder(r)

	var events []models.AccessEvent
	for {
		var ev models.AccessEvent
		if err := dec.Decode(&ev); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("failed to decode event %d: %w", len(events)+1, err)
		}
		ev.AccessTimestamp = ev.AccessTimestamp.UTC()
		events = append(events, ev)
	}
	return events, nil
}

// csvColumns is the expected header of CSV ingest files, matching the
// access_events table column order.
var csvColumns = []string{
	"event_id", "user_id", "user_role", "resource_accessed", "resource_sens",
	"access_timestamp", "location", "device_type", "access_type",
	"records_viewed", "is_authorized", "is_privacy_violation",
}

// ReadCSV decodes access events from CSV input with a required header row.
func ReadCSV(r io.Reader) ([]models.AccessEvent, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(csvColumns)

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}
	for i, want := range csvColumns {
		if header[i] != want {
			return nil, fmt.Errorf("unexpected column %d: got %q, want %q", i, header[i], want)
		}
	}

	var events []models.AccessEvent
	line := 1
	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("failed to read line %d: %w", line, err)
		}

		ev, err := parseCSVRecord(record)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		events = append(events, ev)
	}
	return events, nil
}

// parseCSVRecord converts one CSV row into an AccessEvent.
func parseCSVRecord(record []string) (models.AccessEvent, error) {
	var ev models.AccessEvent
	var err error

	if ev.EventID, err = strconv.ParseInt(record[0], 10, 64); err != nil {
		return ev, fmt.Errorf("event_id: %w", err)
	}
	if ev.UserID, err = strconv.ParseInt(record[1], 10, 64); err != nil {
		return ev, fmt.Errorf("user_id: %w", err)
	}
	ev.UserRole = models.Role(record[2])
	ev.ResourceAccessed = record[3]
	if ev.ResourceSensitive, err = strconv.ParseBool(record[4]); err != nil {
		return ev, fmt.Errorf("resource_sens: %w", err)
	}
	if ev.AccessTimestamp, err = parseTimestamp(record[5]); err != nil {
		return ev, fmt.Errorf("access_timestamp: %w", err)
	}
	ev.Location = record[6]
	ev.DeviceType = record[7]
	ev.AccessType = models.AccessType(record[8])
	if ev.RecordsViewed, err = strconv.ParseInt(record[9], 10, 64); err != nil {
		return ev, fmt.Errorf("records_viewed: %w", err)
	}
	if ev.IsAuthorized, err = strconv.ParseBool(record[10]); err != nil {
		return ev, fmt.Errorf("is_authorized: %w", err)
	}
	if ev.IsPrivacyViolation, err = strconv.ParseBool(record[11]); err != nil {
		return ev, fmt.Errorf("is_privacy_violation: %w", err)
	}

	return ev, nil
}

// parseTimestamp tries each accepted layout and normalizes to UTC.
func parseTimestamp(s string) (time.Time, error) {
	for _, layout := range timestampLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", s)
}
