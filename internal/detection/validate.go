// AccessLens - Insider Access Anomaly Feature Derivation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/accesslens

package detection

import (
	"fmt"

	"github.com/tomtom215/accesslens/internal/models"
	"github.com/tomtom215/accesslens/internal/validation"
)

// ValidateEvents checks the input contract for the whole event set before a
// run starts. The engine fails closed on the first malformed event rather
// than silently coercing: a negative records_viewed, an unrecognized role or
// access type, a zero required field, or a duplicate event_id all abort the
// run with the offending event identified.
func ValidateEvents(events []models.AccessEvent) error {
	seen := make(map[int64]struct{}, len(events))

	for i := range events {
		ev := &events[i]

		if _, dup := seen[ev.EventID]; dup {
			return &MalformedEventError{
				EventID: ev.EventID,
				Field:   "event_id",
				Reason:  "duplicate event id",
			}
		}
		seen[ev.EventID] = struct{}{}

		if ev.RecordsViewed < 0 {
			return &MalformedEventError{
				EventID: ev.EventID,
				Field:   "records_viewed",
				Reason:  fmt.Sprintf("negative volume %d", ev.RecordsViewed),
			}
		}
		if !ev.UserRole.Valid() {
			return &MalformedEventError{
				EventID: ev.EventID,
				Field:   "user_role",
				Reason:  fmt.Sprintf("unrecognized role %q", ev.UserRole),
			}
		}
		if !ev.AccessType.Valid() {
			return &MalformedEventError{
				EventID: ev.EventID,
				Field:   "access_type",
				Reason:  fmt.Sprintf("unrecognized access type %q", ev.AccessType),
			}
		}

		// Required-field coverage (zero timestamps, empty resource and
		// location strings) comes from the struct tags.
		if verr := validation.ValidateStruct(ev); verr != nil {
			fe := verr.Errors()[0]
			return &MalformedEventError{
				EventID: ev.EventID,
				Field:   fe.Field(),
				Reason:  fe.Error(),
			}
		}
	}

	return nil
}
