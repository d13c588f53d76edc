// AccessLens - Insider Access Anomaly Feature Derivation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/accesslens

package detection

import (
	"sort"

	"github.com/tomtom215/accesslens/internal/models"
)

// userSequences groups events by user_id into ordered arenas: each user's
// events sorted by access_timestamp ascending with event_id as the
// deterministic tie-break. The sequential pattern detectors walk these
// arenas with an index-based "previous event" lookup.
//
// The arenas copy event values rather than aliasing the caller's slice
// order, so concurrent detectors can sort independently of one another.
func userSequences(events []models.AccessEvent) map[int64][]models.AccessEvent {
	sequences := make(map[int64][]models.AccessEvent)
	for i := range events {
		sequences[events[i].UserID] = append(sequences[events[i].UserID], events[i])
	}

	for _, seq := range sequences {
		sort.Slice(seq, func(i, j int) bool {
			return seq[i].Before(&seq[j])
		})
	}

	return sequences
}
