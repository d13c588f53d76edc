// AccessLens - Insider Access Anomaly Feature Derivation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/accesslens

/*
Package models defines data structures for the AccessLens application.

This package is the single source of truth for the shapes exchanged between
the event store, the detection engine, and the export layer.

Key Components:

  - AccessEvent: One recorded access action by a user against a resource.
    Immutable and append-only; the engine never mutates or deletes events.
  - FeatureRecord: One derived row per AccessEvent, the join of all detector
    outputs plus the originating event's descriptive fields. Created fresh on
    each run and superseded wholesale by the next run.
  - Role / AccessType: Closed enumerations carried on every event.

JSON serialization uses snake_case field names matching the on-disk and
export schema exactly, so a record round-trips byte-identically.
*/
package models
