// AccessLens - Insider Access Anomaly Feature Derivation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/accesslens

// Package export serializes feature records for downstream consumers.
//
// Both formats are deterministic: field order is pinned by
// models.FeatureFieldNames, ratios always carry exactly 3 decimal places,
// and timestamps serialize as naive UTC wall-clock values. Re-running the
// engine over identical input therefore exports byte-identical files.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/goccy/go-json"

	"github.com/tomtom215/accesslens/internal/models"
)

// timestampLayout is the export timestamp format, zone-free by contract.
const timestampLayout = "2006-01-02 15:04:05"

// WriteJSONL writes one JSON object per line in record order.
func WriteJSONL(w io.Writer, records []models.FeatureRecord) error {
	enc := json.NewEncoder(w)
	for i := range records {
		if err := enc.Encode(&records[i]); err != nil {
			return fmt.Errorf("failed to encode record %d: %w", records[i].EventID, err)
		}
	}
	return nil
}

// WriteCSV writes a header row followed by one row per record.
func WriteCSV(w io.Writer, records []models.FeatureRecord) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(models.FeatureFieldNames); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for i := range records {
		if err := cw.Write(csvRow(&records[i])); err != nil {
			return fmt.Errorf("failed to write record %d: %w", records[i].EventID, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// csvRow renders one record in FeatureFieldNames order.
func csvRow(r *models.FeatureRecord) []string {
	return []string{
		strconv.FormatInt(r.EventID, 10),
		strconv.FormatInt(r.UserID, 10),
		string(r.UserRole),
		r.ResourceAccessed,
		string(r.AccessType),
		r.Location,
		r.DeviceType,
		r.AccessTimestamp.UTC().Format(timestampLayout),
		strconv.FormatInt(r.RecordsViewed, 10),
		strconv.FormatBool(r.IsPrivacyViolation),
		strconv.FormatBool(r.IsSpike),
		strconv.FormatFloat(r.UnauthorizedRatio, 'f', 3, 64),
		strconv.FormatFloat(r.SensitiveRatio, 'f', 3, 64),
		strconv.FormatBool(r.IsFirstTime),
		strconv.FormatBool(r.IsRoleViolation),
		strconv.FormatBool(r.ImpossibleTravel),
		strconv.FormatBool(r.RapidDeviceSwitch),
		strconv.FormatBool(r.IsOffHours),
	}
}
