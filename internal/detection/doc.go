// AccessLens - Insider Access Anomaly Feature Derivation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/accesslens

// Package detection derives anomaly-detection features from a log of
// resource-access events: one FeatureRecord per AccessEvent, consumed by
// downstream classifiers flagging suspicious insider behavior.
//
// Detection Architecture:
//
//	AccessEvent set -> Detectors (parallel) -> Assembler -> FeatureRecord set
//
// Each detector computes one signal over the full, immutable event set:
//
//   - Volume Spike: records_viewed strictly outside the population p5/p95
//     bounds (linearly interpolated percentiles over the whole run)
//   - Per-User Aggregates: whole-history unauthorized and sensitive ratios,
//     broadcast onto every event of that user
//   - First Access: the chronologically earliest event per (user, resource)
//   - Role Policy: a static, centralized allow-list per role
//   - Location Velocity: location change faster than plausible travel
//   - Device Velocity: device change within a short switching window
//   - Off Hours: weekend or outside the standard business window
//
// Detectors never depend on each other's outputs, so the engine runs them
// concurrently against a shared read-only event slice; the assembler is the
// single synchronization point and emits nothing until every detector has
// produced a total result. A run is a pure batch transform: identical input
// yields byte-identical output, including row ordering.
package detection
