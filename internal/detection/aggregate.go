// AccessLens - Insider Access Anomaly Feature Derivation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/accesslens

package detection

import (
	"context"
	"math"

	"github.com/tomtom215/accesslens/internal/models"
)

// UserAggregator computes whole-history volume aggregates per user: the
// unauthorized-access ratio and the sensitive-resource ratio. The aggregates
// are broadcast onto every event of that user during assembly, so all of a
// user's events in one run carry identical ratio values.
type UserAggregator struct{}

// NewUserAggregator creates a per-user aggregator.
func NewUserAggregator() *UserAggregator {
	return &UserAggregator{}
}

// Aggregate groups all events by user_id and computes each user's totals.
// Ratios are rounded to 3 decimal places and defined as 0 when the user's
// total record volume is 0. The computation covers the complete history,
// not a window, so the ratios stay well-defined across runs.
func (a *UserAggregator) Aggregate(ctx context.Context, events []models.AccessEvent) (map[int64]UserAggregate, error) {
	aggregates := make(map[int64]UserAggregate)

	for i := range events {
		ev := &events[i]
		agg := aggregates[ev.UserID]
		agg.UserID = ev.UserID
		agg.TotalRecords += ev.RecordsViewed
		if !ev.IsAuthorized {
			agg.UnauthorizedRecords += ev.RecordsViewed
		}
		if ev.ResourceSensitive {
			agg.SensitiveRecords += ev.RecordsViewed
		}
		aggregates[ev.UserID] = agg
	}

	for userID, agg := range aggregates {
		agg.UnauthorizedRatio = roundRatio(agg.UnauthorizedRecords, agg.TotalRecords)
		agg.SensitiveRatio = roundRatio(agg.SensitiveRecords, agg.TotalRecords)
		aggregates[userID] = agg
	}

	return aggregates, nil
}

// roundRatio divides part by total rounded to 3 decimal places, with the
// zero-volume default: 0 when total is 0.
func roundRatio(part, total int64) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(part)/float64(total)*1000) / 1000
}
