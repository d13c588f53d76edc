// AccessLens - Insider Access Anomaly Feature Derivation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/accesslens

package detection

import (
	"sort"

	"github.com/tomtom215/accesslens/internal/models"
)

// DetectorOutputs collects every detector's result for one run, keyed the
// way the assembler joins them: boolean signals by event_id, aggregates by
// user_id (broadcast onto every event of that user).
type DetectorOutputs struct {
	Flags      map[Signal]map[int64]bool
	Aggregates map[int64]UserAggregate
}

// requiredSignals lists every boolean column the assembler must find for
// each event. The base event set is authoritative: a signal missing for any
// event surfaces as an AssemblyGapError, never as a dropped row.
var requiredSignals = []Signal{
	SignalSpike,
	SignalFirstTime,
	SignalRoleViolation,
	SignalImpossibleTravel,
	SignalRapidDeviceSwitch,
	SignalOffHours,
}

// Assemble joins all detector outputs onto the base event set, producing
// one FeatureRecord per event ordered by access_timestamp ascending, then
// user_id ascending, then event_id ascending. The final tie-break makes
// repeated runs over identical input byte-identical when serialized.
func Assemble(events []models.AccessEvent, out DetectorOutputs) ([]models.FeatureRecord, error) {
	records := make([]models.FeatureRecord, 0, len(events))

	for i := range events {
		ev := &events[i]

		flags := make(map[Signal]bool, len(requiredSignals))
		for _, sig := range requiredSignals {
			v, ok := out.Flags[sig][ev.EventID]
			if !ok {
				return nil, &AssemblyGapError{Component: sig, EventID: ev.EventID}
			}
			flags[sig] = v
		}

		agg, ok := out.Aggregates[ev.UserID]
		if !ok {
			return nil, &AssemblyGapError{Component: SignalUserAggregate, EventID: ev.EventID}
		}

		records = append(records, models.FeatureRecord{
			EventID:            ev.EventID,
			UserID:             ev.UserID,
			UserRole:           ev.UserRole,
			ResourceAccessed:   ev.ResourceAccessed,
			AccessType:         ev.AccessType,
			Location:           ev.Location,
			DeviceType:         ev.DeviceType,
			AccessTimestamp:    ev.AccessTimestamp,
			RecordsViewed:      ev.RecordsViewed,
			IsPrivacyViolation: ev.IsPrivacyViolation,
			IsSpike:            flags[SignalSpike],
			UnauthorizedRatio:  agg.UnauthorizedRatio,
			SensitiveRatio:     agg.SensitiveRatio,
			IsFirstTime:        flags[SignalFirstTime],
			IsRoleViolation:    flags[SignalRoleViolation],
			ImpossibleTravel:   flags[SignalImpossibleTravel],
			RapidDeviceSwitch:  flags[SignalRapidDeviceSwitch],
			IsOffHours:         flags[SignalOffHours],
		})
	}

	sort.Slice(records, func(i, j int) bool {
		a, b := &records[i], &records[j]
		if !a.AccessTimestamp.Equal(b.AccessTimestamp) {
			return a.AccessTimestamp.Before(b.AccessTimestamp)
		}
		if a.UserID != b.UserID {
			return a.UserID < b.UserID
		}
		return a.EventID < b.EventID
	})

	return records, nil
}
