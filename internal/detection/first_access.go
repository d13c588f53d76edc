// AccessLens - Insider Access Anomaly Feature Derivation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/accesslens

package detection

import (
	"context"

	"github.com/tomtom215/accesslens/internal/models"
)

// FirstAccessDetector flags the first time a user touches a given resource.
// Events are partitioned by (user_id, resource_accessed) and the
// chronologically earliest event in each partition is flagged; all others
// are false. Partitions of size 1 are always flagged true.
type FirstAccessDetector struct{}

// NewFirstAccessDetector creates a first-access detector.
func NewFirstAccessDetector() *FirstAccessDetector {
	return &FirstAccessDetector{}
}

// Signal returns the output column this detector computes.
func (d *FirstAccessDetector) Signal() Signal {
	return SignalFirstTime
}

// userResource is the partition key for first-access detection.
type userResource struct {
	userID   int64
	resource string
}

// Evaluate computes is_first_time for every event. Timestamp ties within a
// partition break on event_id, so repeated runs over the same input flag
// the same event.
func (d *FirstAccessDetector) Evaluate(ctx context.Context, events []models.AccessEvent) (map[int64]bool, error) {
	// earliest holds the current winner per partition; a single pass keeps
	// the minimum under the (timestamp, event_id) order.
	earliest := make(map[userResource]*models.AccessEvent)
	for i := range events {
		ev := &events[i]
		key := userResource{userID: ev.UserID, resource: ev.ResourceAccessed}
		if cur, ok := earliest[key]; !ok || ev.Before(cur) {
			earliest[key] = ev
		}
	}

	first := make(map[int64]struct{}, len(earliest))
	for _, ev := range earliest {
		first[ev.EventID] = struct{}{}
	}

	flags := make(map[int64]bool, len(events))
	for i := range events {
		_, isFirst := first[events[i].EventID]
		flags[events[i].EventID] = isFirst
	}
	return flags, nil
}
