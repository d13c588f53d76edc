// AccessLens - Insider Access Anomaly Feature Derivation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/accesslens

package detection

import (
	"context"
	"testing"
	"time"

	"github.com/tomtom215/accesslens/internal/models"
)

func TestFirstAccessFlagsEarliestPerPartition(t *testing.T) {
	events := []models.AccessEvent{
		testEvent(1, 1, tuesday.Add(2*time.Hour)),
		testEvent(2, 1, tuesday), // earliest for (1, customer_table)
		testEvent(3, 1, tuesday.Add(time.Hour)),
		testEvent(4, 2, tuesday.Add(3*time.Hour)), // singleton partition
	}

	flags, err := NewFirstAccessDetector().Evaluate(context.Background(), events)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := map[int64]bool{1: false, 2: true, 3: false, 4: true}
	for id, w := range want {
		if flags[id] != w {
			t.Errorf("is_first_time for event %d = %v, want %v", id, flags[id], w)
		}
	}
}

func TestFirstAccessSeparateResourcePartitions(t *testing.T) {
	// Same user, two resources: each partition gets its own first flag.
	events := []models.AccessEvent{
		testEvent(1, 1, tuesday),
		testEvent(2, 1, tuesday.Add(time.Hour)),
	}
	events[1].ResourceAccessed = "hr_files"

	flags, err := NewFirstAccessDetector().Evaluate(context.Background(), events)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !flags[1] || !flags[2] {
		t.Errorf("flags = %v, want both events flagged as first in their partitions", flags)
	}
}

func TestFirstAccessTimestampTieBreaksOnEventID(t *testing.T) {
	// Concurrent timestamps: the lower event_id wins, deterministically.
	events := []models.AccessEvent{
		testEvent(9, 1, tuesday),
		testEvent(4, 1, tuesday),
		testEvent(7, 1, tuesday),
	}

	detector := NewFirstAccessDetector()
	for run := 0; run < 5; run++ {
		flags, err := detector.Evaluate(context.Background(), events)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !flags[4] || flags[7] || flags[9] {
			t.Fatalf("run %d: flags = %v, want only event 4 flagged", run, flags)
		}
	}
}

func TestFirstAccessExactlyOnePerPartition(t *testing.T) {
	events := []models.AccessEvent{
		testEvent(1, 1, tuesday.Add(time.Minute)),
		testEvent(2, 1, tuesday),
		testEvent(3, 2, tuesday),
		testEvent(4, 2, tuesday.Add(time.Second)),
		testEvent(5, 3, tuesday),
	}

	flags, err := NewFirstAccessDetector().Evaluate(context.Background(), events)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	perUser := make(map[int64]int)
	for i := range events {
		if flags[events[i].EventID] {
			perUser[events[i].UserID]++
		}
	}
	for userID, count := range perUser {
		if count != 1 {
			t.Errorf("user %d has %d first-time flags, want exactly 1", userID, count)
		}
	}
	if len(perUser) != 3 {
		t.Errorf("flagged partitions = %d, want 3", len(perUser))
	}
}
