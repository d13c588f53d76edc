// AccessLens - Insider Access Anomaly Feature Derivation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/accesslens

package detection

import (
	"testing"
	"time"

	"github.com/tomtom215/accesslens/internal/models"
)

func TestUserSequencesOrdering(t *testing.T) {
	events := []models.AccessEvent{
		testEvent(3, 1, tuesday.Add(2*time.Hour)),
		testEvent(1, 1, tuesday),
		testEvent(2, 1, tuesday.Add(time.Hour)),
		testEvent(4, 2, tuesday),
	}

	sequences := userSequences(events)
	if len(sequences) != 2 {
		t.Fatalf("got %d user sequences, want 2", len(sequences))
	}

	got := make([]int64, 0, 3)
	for _, ev := range sequences[1] {
		got = append(got, ev.EventID)
	}
	want := []int64{1, 2, 3}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("user 1 sequence = %v, want %v", got, want)
		}
	}
}

func TestUserSequencesTieBreakOnEventID(t *testing.T) {
	events := []models.AccessEvent{
		testEvent(8, 1, tuesday),
		testEvent(2, 1, tuesday),
		testEvent(5, 1, tuesday),
	}

	sequences := userSequences(events)
	seq := sequences[1]
	want := []int64{2, 5, 8}
	for i := range want {
		if seq[i].EventID != want[i] {
			t.Fatalf("tie-broken sequence order = [%d %d %d], want %v",
				seq[0].EventID, seq[1].EventID, seq[2].EventID, want)
		}
	}
}

func TestUserSequencesDoesNotMutateInput(t *testing.T) {
	events := []models.AccessEvent{
		testEvent(2, 1, tuesday.Add(time.Hour)),
		testEvent(1, 1, tuesday),
	}

	userSequences(events)

	if events[0].EventID != 2 || events[1].EventID != 1 {
		t.Error("input slice order changed by sequence grouping")
	}
}
