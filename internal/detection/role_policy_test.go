// AccessLens - Insider Access Anomaly Feature Derivation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/accesslens

package detection

import (
	"context"
	"testing"

	"github.com/tomtom215/accesslens/internal/models"
)

func TestRolePolicyTable(t *testing.T) {
	tests := []struct {
		name          string
		role          models.Role
		resource      string
		access        models.AccessType
		wantViolation bool
	}{
		// HR: hr_files and payroll_records, read only.
		{"hr read hr_files", models.RoleHR, "hr_files", models.AccessRead, false},
		{"hr read payroll", models.RoleHR, "payroll_records", models.AccessRead, false},
		{"hr write hr_files", models.RoleHR, "hr_files", models.AccessWrite, true},
		{"hr export payroll", models.RoleHR, "payroll_records", models.AccessExport, true},
		{"hr delete hr_files", models.RoleHR, "hr_files", models.AccessDelete, true},
		{"hr read customer_table", models.RoleHR, "customer_table", models.AccessRead, true},

		// Customer Service: customer_table, any access type.
		{"cs read customer_table", models.RoleCustomerService, "customer_table", models.AccessRead, false},
		{"cs write customer_table", models.RoleCustomerService, "customer_table", models.AccessWrite, false},
		{"cs delete customer_table", models.RoleCustomerService, "customer_table", models.AccessDelete, false},
		{"cs export customer_table", models.RoleCustomerService, "customer_table", models.AccessExport, false},
		{"cs read payroll", models.RoleCustomerService, "payroll_records", models.AccessRead, true},

		// Finance: payroll_records, any access type.
		{"finance read payroll", models.RoleFinance, "payroll_records", models.AccessRead, false},
		{"finance write payroll", models.RoleFinance, "payroll_records", models.AccessWrite, false},
		{"finance export payroll", models.RoleFinance, "payroll_records", models.AccessExport, false},
		{"finance read hr_files", models.RoleFinance, "hr_files", models.AccessRead, true},
		{"finance delete customer_table", models.RoleFinance, "customer_table", models.AccessDelete, true},

		// IT: unconditionally exempt.
		{"it read hr_files", models.RoleIT, "hr_files", models.AccessRead, false},
		{"it delete payroll", models.RoleIT, "payroll_records", models.AccessDelete, false},
		{"it export anything", models.RoleIT, "flight_logs", models.AccessExport, false},
		{"it write unknown resource", models.RoleIT, "backup_archive", models.AccessWrite, false},

		// Pilot: flight_logs and maintenance_logs, read only.
		{"pilot read flight_logs", models.RolePilot, "flight_logs", models.AccessRead, false},
		{"pilot read maintenance_logs", models.RolePilot, "maintenance_logs", models.AccessRead, false},
		{"pilot write flight_logs", models.RolePilot, "flight_logs", models.AccessWrite, true},
		{"pilot delete maintenance_logs", models.RolePilot, "maintenance_logs", models.AccessDelete, true},
		{"pilot read customer_table", models.RolePilot, "customer_table", models.AccessRead, true},
	}

	evaluator := NewRolePolicyEvaluator()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ev := testEvent(1, 1, tuesday)
			ev.UserRole = tt.role
			ev.ResourceAccessed = tt.resource
			ev.AccessType = tt.access

			flags, err := evaluator.Evaluate(context.Background(), []models.AccessEvent{ev})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if flags[1] != tt.wantViolation {
				t.Errorf("is_role_violation = %v, want %v", flags[1], tt.wantViolation)
			}
		})
	}
}

func TestRolePolicyITNeverViolates(t *testing.T) {
	// IT is exempt across the full access-type enumeration and arbitrary
	// resources.
	evaluator := NewRolePolicyEvaluator()
	resources := []string{"hr_files", "payroll_records", "customer_table", "flight_logs", "audit_trail"}

	id := int64(1)
	var events []models.AccessEvent
	for _, resource := range resources {
		for _, access := range models.AccessTypes {
			ev := testEvent(id, 1, tuesday)
			ev.UserRole = models.RoleIT
			ev.ResourceAccessed = resource
			ev.AccessType = access
			events = append(events, ev)
			id++
		}
	}

	flags, err := evaluator.Evaluate(context.Background(), events)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for eventID, flagged := range flags {
		if flagged {
			t.Errorf("IT event %d flagged as violation", eventID)
		}
	}
}

func TestPolicyTableCoversEveryRole(t *testing.T) {
	for _, role := range models.Roles {
		if _, ok := policyTable[role]; !ok {
			t.Errorf("policy table missing role %q", role)
		}
	}
	if len(policyTable) != len(models.Roles) {
		t.Errorf("policy table has %d roles, want %d", len(policyTable), len(models.Roles))
	}
}
