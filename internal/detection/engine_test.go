// AccessLens - Insider Access Anomaly Feature Derivation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/accesslens

package detection

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/accesslens/internal/models"
)

// fixtureEvents builds a small mixed history exercising every detector:
// a weekend HR violation, an impossible-travel pair, a rapid device switch,
// and an unauthorized access.
func fixtureEvents() []models.AccessEvent {
	saturday := time.Date(2025, 3, 8, 10, 0, 0, 0, time.UTC)

	e1 := testEvent(1, 100, tuesday)
	e1.UserRole = models.RoleHR
	e1.ResourceAccessed = "hr_files"
	e1.RecordsViewed = 20

	e2 := testEvent(2, 100, tuesday.Add(90*time.Minute)) // location jump in 90m
	e2.UserRole = models.RoleHR
	e2.ResourceAccessed = "hr_files"
	e2.Location = "Denver"
	e2.RecordsViewed = 25

	e3 := testEvent(3, 100, tuesday.Add(2*time.Hour)) // device switch in 30m
	e3.UserRole = models.RoleHR
	e3.ResourceAccessed = "payroll_records"
	e3.Location = "Denver"
	e3.DeviceType = "mobile"
	e3.AccessType = models.AccessWrite // read-only role: violation
	e3.RecordsViewed = 30

	e4 := testEvent(4, 200, saturday) // weekend event
	e4.UserRole = models.RoleFinance
	e4.ResourceAccessed = "payroll_records"
	e4.IsAuthorized = false
	e4.RecordsViewed = 1000 // population outlier

	e5 := testEvent(5, 200, saturday.Add(26*time.Hour)) // Sunday, slow follow-up
	e5.UserRole = models.RoleFinance
	e5.ResourceAccessed = "payroll_records"
	e5.ResourceSensitive = true
	e5.RecordsViewed = 40

	return []models.AccessEvent{e1, e2, e3, e4, e5}
}

func TestEngineRunEndToEnd(t *testing.T) {
	engine := NewEngine(DefaultConfig())
	records, err := engine.Run(context.Background(), fixtureEvents())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 5 {
		t.Fatalf("got %d records, want 5", len(records))
	}

	byID := make(map[int64]models.FeatureRecord, len(records))
	for _, r := range records {
		byID[r.EventID] = r
	}

	if !byID[2].ImpossibleTravel {
		t.Error("90-minute location jump not flagged as impossible travel")
	}
	if !byID[3].RapidDeviceSwitch {
		t.Error("30-minute device switch not flagged")
	}
	if !byID[3].IsRoleViolation {
		t.Error("HR write to payroll_records not flagged as role violation")
	}
	if byID[1].IsRoleViolation {
		t.Error("HR read of hr_files flagged as role violation")
	}
	if !byID[4].IsOffHours || !byID[5].IsOffHours {
		t.Error("weekend events not flagged as off-hours")
	}
	if byID[1].IsOffHours {
		t.Error("Tuesday 10:00 event flagged as off-hours")
	}
	if !byID[4].IsSpike {
		t.Error("1000-record outlier not flagged as spike")
	}
	if !byID[1].IsFirstTime {
		t.Error("first touch of hr_files by user 100 not flagged")
	}
	if byID[2].IsFirstTime {
		t.Error("second touch of hr_files flagged as first time")
	}

	// User 200: 1040 total, 1000 unauthorized, 40 sensitive. Both of that
	// user's rows carry the identical broadcast ratios.
	if byID[4].UnauthorizedRatio != 0.962 {
		t.Errorf("UnauthorizedRatio = %v, want 0.962", byID[4].UnauthorizedRatio)
	}
	if byID[4].UnauthorizedRatio != byID[5].UnauthorizedRatio {
		t.Error("broadcast ratio differs between one user's rows")
	}
	if byID[5].SensitiveRatio != 0.038 {
		t.Errorf("SensitiveRatio = %v, want 0.038", byID[5].SensitiveRatio)
	}
}

func TestEngineRunIdempotent(t *testing.T) {
	engine := NewEngine(DefaultConfig())

	first, err := engine.Run(context.Background(), fixtureEvents())
	if err != nil {
		t.Fatalf("first run: %v", err)
	}
	second, err := engine.Run(context.Background(), fixtureEvents())
	if err != nil {
		t.Fatalf("second run: %v", err)
	}

	a, err := json.Marshal(first)
	if err != nil {
		t.Fatalf("marshal first: %v", err)
	}
	b, err := json.Marshal(second)
	if err != nil {
		t.Fatalf("marshal second: %v", err)
	}
	if !bytes.Equal(a, b) {
		t.Error("identical input produced non-identical serialized output")
	}
}

func TestEngineRunEmptyInputFailsClosed(t *testing.T) {
	engine := NewEngine(DefaultConfig())
	_, err := engine.Run(context.Background(), nil)

	var popErr *EmptyPopulationError
	if !errors.As(err, &popErr) {
		t.Fatalf("error = %v, want *EmptyPopulationError", err)
	}
}

func TestEngineRunMalformedInputFailsClosed(t *testing.T) {
	events := fixtureEvents()
	events[2].RecordsViewed = -5

	engine := NewEngine(DefaultConfig())
	_, err := engine.Run(context.Background(), events)

	var malformed *MalformedEventError
	if !errors.As(err, &malformed) {
		t.Fatalf("error = %v, want *MalformedEventError", err)
	}
	if malformed.EventID != 3 {
		t.Errorf("EventID = %d, want 3", malformed.EventID)
	}
}

func TestEngineOutputOrderedByTimestamp(t *testing.T) {
	engine := NewEngine(DefaultConfig())
	records, err := engine.Run(context.Background(), fixtureEvents())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for i := 1; i < len(records); i++ {
		prev, cur := &records[i-1], &records[i]
		if cur.AccessTimestamp.Before(prev.AccessTimestamp) {
			t.Fatalf("records out of timestamp order at index %d", i)
		}
		if cur.AccessTimestamp.Equal(prev.AccessTimestamp) && cur.UserID < prev.UserID {
			t.Fatalf("records out of user order at index %d", i)
		}
	}
}
