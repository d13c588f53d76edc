// AccessLens - Insider Access Anomaly Feature Derivation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/accesslens

package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRunsTotalIncrements(t *testing.T) {
	before := testutil.ToFloat64(RunsTotal.WithLabelValues("ok"))
	RunsTotal.WithLabelValues("ok").Inc()
	after := testutil.ToFloat64(RunsTotal.WithLabelValues("ok"))

	if after != before+1 {
		t.Errorf("RunsTotal ok = %v, want %v", after, before+1)
	}
}

func TestFlagsEmittedPerDetector(t *testing.T) {
	FlagsEmitted.WithLabelValues("off_hours").Add(3)
	if got := testutil.ToFloat64(FlagsEmitted.WithLabelValues("off_hours")); got < 3 {
		t.Errorf("FlagsEmitted off_hours = %v, want >= 3", got)
	}
}

func TestTrackStoreQueryObserves(t *testing.T) {
	done := TrackStoreQuery("list_events")
	done()

	count := testutil.CollectAndCount(StoreQueryDuration)
	if count == 0 {
		t.Error("StoreQueryDuration collected no series")
	}
}

func TestTrackDetectorObserves(t *testing.T) {
	done := TrackDetector("volume_spike")
	done()

	count := testutil.CollectAndCount(DetectorDuration)
	if count == 0 {
		t.Error("DetectorDuration collected no series")
	}
}
