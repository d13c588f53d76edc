// AccessLens - Insider Access Anomaly Feature Derivation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/accesslens

package detection

import (
	"time"

	"github.com/tomtom215/accesslens/internal/models"
)

// tuesday is a mid-week reference inside business hours.
var tuesday = time.Date(2025, 3, 11, 10, 0, 0, 0, time.UTC)

// testEvent returns a well-formed event with sensible defaults; tests
// override only the fields a case exercises.
func testEvent(id, userID int64, ts time.Time) models.AccessEvent {
	return models.AccessEvent{
		EventID:          id,
		UserID:           userID,
		UserRole:         models.RoleIT,
		ResourceAccessed: "customer_table",
		AccessTimestamp:  ts,
		Location:         "Chicago",
		DeviceType:       "desktop",
		AccessType:       models.AccessRead,
		RecordsViewed:    10,
		IsAuthorized:     true,
	}
}
