// AccessLens - Insider Access Anomaly Feature Derivation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/accesslens

package models

import (
	"time"
)

// FeatureRecord is one derived row per AccessEvent: the originating event's
// descriptive fields joined with every detector's output for that event.
//
// Records are created fresh on each engine run, never mutated, and superseded
// wholesale by the next run. Output ordering is access_timestamp ascending,
// then user_id ascending, then event_id ascending, so two runs over identical
// input serialize byte-identically.
type FeatureRecord struct {
	EventID            int64      `json:"event_id"`
	UserID             int64      `json:"user_id"`
	UserRole           Role       `json:"user_role"`
	ResourceAccessed   string     `json:"resource_accessed"`
	AccessType         AccessType `json:"access_type"`
	Location           string     `json:"location"`
	DeviceType         string     `json:"device_type"`
	AccessTimestamp    time.Time  `json:"access_timestamp"`
	RecordsViewed      int64      `json:"records_viewed"`
	IsPrivacyViolation bool       `json:"is_privacy_violation"`

	// Detector signals.
	IsSpike           bool    `json:"is_spike"`
	UnauthorizedRatio float64 `json:"unauthorized_ratio"`
	SensitiveRatio    float64 `json:"sensitive_ratio"`
	IsFirstTime       bool    `json:"is_first_time"`
	IsRoleViolation   bool    `json:"is_role_violation"`
	ImpossibleTravel  bool    `json:"impossible_travel"`
	RapidDeviceSwitch bool    `json:"rapid_device_switch"`
	IsOffHours        bool    `json:"is_off_hours"`
}

// FeatureFieldNames lists the FeatureRecord fields in their contractual
// export order. CSV export and the output contract both derive from this
// single slice so the column order cannot drift.
var FeatureFieldNames = []string{
	"event_id",
	"user_id",
	"user_role",
	"resource_accessed",
	"access_type",
	"location",
	"device_type",
	"access_timestamp",
	"records_viewed",
	"is_privacy_violation",
	"is_spike",
	"unauthorized_ratio",
	"sensitive_ratio",
	"is_first_time",
	"is_role_violation",
	"impossible_travel",
	"rapid_device_switch",
	"is_off_hours",
}
