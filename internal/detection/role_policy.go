// AccessLens - Insider Access Anomaly Feature Derivation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/accesslens

package detection

import (
	"context"

	"github.com/tomtom215/accesslens/internal/models"
)

// rolePolicy describes the allow-list for a single role. A nil resources
// slice allows any resource; a nil accessTypes slice allows any access type.
type rolePolicy struct {
	resources   []string
	accessTypes []models.AccessType
}

// policyTable is the single source of policy truth. Every verdict derives
// from this table, so a rule change is a data change here, not a code
// change scattered across conditionals.
//
//	HR               hr_files, payroll_records      read only
//	Customer Service customer_table                 any
//	Finance          payroll_records                any
//	IT               any resource                   any
//	Pilot            flight_logs, maintenance_logs  read only
var policyTable = map[models.Role]rolePolicy{
	models.RoleHR: {
		resources:   []string{"hr_files", "payroll_records"},
		accessTypes: []models.AccessType{models.AccessRead},
	},
	models.RoleCustomerService: {
		resources: []string{"customer_table"},
	},
	models.RoleFinance: {
		resources: []string{"payroll_records"},
	},
	models.RoleIT: {}, // unconditionally exempt
	models.RolePilot: {
		resources:   []string{"flight_logs", "maintenance_logs"},
		accessTypes: []models.AccessType{models.AccessRead},
	},
}

// allows reports whether the policy permits the given resource and access
// type combination.
func (p rolePolicy) allows(resource string, access models.AccessType) bool {
	if p.resources != nil && !containsString(p.resources, resource) {
		return false
	}
	if p.accessTypes != nil && !containsAccessType(p.accessTypes, access) {
		return false
	}
	return true
}

func containsString(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

func containsAccessType(list []models.AccessType, v models.AccessType) bool {
	for _, a := range list {
		if a == v {
			return true
		}
	}
	return false
}

// RolePolicyEvaluator classifies each event as policy-compliant or a role
// violation using the static allow-list table. Stateless: each event is
// evaluated independently.
type RolePolicyEvaluator struct{}

// NewRolePolicyEvaluator creates a role-policy evaluator over the static
// policy table.
func NewRolePolicyEvaluator() *RolePolicyEvaluator {
	return &RolePolicyEvaluator{}
}

// Signal returns the output column this detector computes.
func (d *RolePolicyEvaluator) Signal() Signal {
	return SignalRoleViolation
}

// Evaluate computes is_role_violation for every event. An event is a
// violation iff it matches none of the allowed combinations for its role.
// The role enumeration is closed, so a role absent from the table cannot
// occur past input validation; it still falls through to "no match".
func (d *RolePolicyEvaluator) Evaluate(ctx context.Context, events []models.AccessEvent) (map[int64]bool, error) {
	flags := make(map[int64]bool, len(events))
	for i := range events {
		ev := &events[i]
		policy, ok := policyTable[ev.UserRole]
		flags[ev.EventID] = !ok || !policy.allows(ev.ResourceAccessed, ev.AccessType)
	}
	return flags, nil
}
