// AccessLens - Insider Access Anomaly Feature Derivation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/accesslens

package models

import (
	"time"
)

// Role is the closed enumeration of principal roles. A user's role is carried
// on each event and may differ across a user's events if their real-world role
// changes; it is not normalized per user.
type Role string

const (
	RoleHR              Role = "HR"
	RoleFinance         Role = "Finance"
	RoleIT              Role = "IT"
	RoleCustomerService Role = "Customer Service"
	RolePilot           Role = "Pilot"
)

// Roles lists every member of the enumeration in a fixed order.
// Used by validation and by the policy table's exhaustiveness test.
var Roles = []Role{RoleHR, RoleFinance, RoleIT, RoleCustomerService, RolePilot}

// Valid reports whether r is a member of the closed role enumeration.
func (r Role) Valid() bool {
	switch r {
	case RoleHR, RoleFinance, RoleIT, RoleCustomerService, RolePilot:
		return true
	}
	return false
}

// AccessType is the closed enumeration of access operations.
type AccessType string

const (
	AccessWrite  AccessType = "write"
	AccessRead   AccessType = "read"
	AccessExport AccessType = "export"
	AccessDelete AccessType = "delete"
)

// AccessTypes lists every member of the enumeration in a fixed order.
var AccessTypes = []AccessType{AccessWrite, AccessRead, AccessExport, AccessDelete}

// Valid reports whether a is a member of the closed access-type enumeration.
func (a AccessType) Valid() bool {
	switch a {
	case AccessWrite, AccessRead, AccessExport, AccessDelete:
		return true
	}
	return false
}

// AccessEvent represents a single recorded access to a resource.
//
// Events arrive from the event store as an append-only, immutable sequence.
// EventID is globally unique but its generation order is not guaranteed to
// match time order; Timestamp is the ordering key for all sequence-based
// detectors, with EventID as the deterministic tie-break.
//
// Timestamps carry time-zone-free semantics: they are stored and compared
// as naive wall-clock values, normalized to UTC on ingest.
type AccessEvent struct {
	EventID           int64      `json:"event_id" validate:"required"`
	UserID            int64      `json:"user_id" validate:"required"`
	UserRole          Role       `json:"user_role" validate:"required"`
	ResourceAccessed  string     `json:"resource_accessed" validate:"required"`
	ResourceSensitive bool       `json:"resource_sens"`
	AccessTimestamp   time.Time  `json:"access_timestamp" validate:"required"`
	Location          string     `json:"location" validate:"required"`
	DeviceType        string     `json:"device_type" validate:"required"`
	AccessType        AccessType `json:"access_type" validate:"required"`
	RecordsViewed     int64      `json:"records_viewed" validate:"min=0"`
	IsAuthorized      bool       `json:"is_authorized"`
	// IsPrivacyViolation is a ground-truth label carried through to the
	// feature record, never derived here.
	IsPrivacyViolation bool `json:"is_privacy_violation"`
}

// Before reports whether e sorts chronologically before other, breaking
// timestamp ties on EventID so repeated runs order identically.
func (e *AccessEvent) Before(other *AccessEvent) bool {
	if e.AccessTimestamp.Equal(other.AccessTimestamp) {
		return e.EventID < other.EventID
	}
	return e.AccessTimestamp.Before(other.AccessTimestamp)
}
