// Shelfmark - Story to EPUB Conversion Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shelfmark

package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	dto "github.com/prometheus/client_model/go"
)

func histogramCount(t *testing.T) uint64 {
	t.Helper()
	m := &dto.Metric{}
	if err := EPUBSizeBytes.Write(m); err != nil {
		t.Fatalf("write histogram: %v", err)
	}
	return m.GetHistogram().GetSampleCount()
}

func TestRecordAPIRequest(t *testing.T) {
	before := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("POST", "/generate-epub", "404"))

	RecordAPIRequest("POST", "/generate-epub", "404", 20*time.Millisecond)

	after := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("POST", "/generate-epub", "404"))
	if after-before != 1 {
		t.Errorf("expected counter to increase by 1, got %v", after-before)
	}
}

func TestTrackActiveRequest(t *testing.T) {
	before := testutil.ToFloat64(APIActiveRequests)

	TrackActiveRequest(true)
	if got := testutil.ToFloat64(APIActiveRequests); got != before+1 {
		t.Errorf("expected gauge %v, got %v", before+1, got)
	}
	TrackActiveRequest(false)
	if got := testutil.ToFloat64(APIActiveRequests); got != before {
		t.Errorf("expected gauge %v, got %v", before, got)
	}
}

func TestRecordEPUBGeneration(t *testing.T) {
	counter := EPUBGenerationsTotal.WithLabelValues(SessionAuthenticated, "story_not_found")
	before := testutil.ToFloat64(counter)

	RecordEPUBGeneration(SessionAuthenticated, "story_not_found", time.Second, 0)

	if got := testutil.ToFloat64(counter) - before; got != 1 {
		t.Errorf("expected failure counter to increase by 1, got %v", got)
	}
}

func TestRecordEPUBGenerationSizeOnlyOnSuccess(t *testing.T) {
	before := histogramCount(t)

	RecordEPUBGeneration(SessionAnonymous, "download_failed", time.Second, 0)
	if got := histogramCount(t); got != before {
		t.Errorf("failure observed a size: count %d, want %d", got, before)
	}

	RecordEPUBGeneration(SessionAnonymous, ResultSuccess, time.Second, 64*1024)
	if got := histogramCount(t); got != before+1 {
		t.Errorf("success count = %d, want %d", got, before+1)
	}
}

func TestRecordCredentialsDiscarded(t *testing.T) {
	before := testutil.ToFloat64(CredentialsDiscarded)

	RecordCredentialsDiscarded(0)
	RecordCredentialsDiscarded(3)

	if got := testutil.ToFloat64(CredentialsDiscarded) - before; got != 3 {
		t.Errorf("expected discarded counter to increase by 3, got %v", got)
	}
}

func TestSessionLabel(t *testing.T) {
	t.Parallel()

	if SessionLabel(true) != SessionAuthenticated {
		t.Error("expected authenticated label")
	}
	if SessionLabel(false) != SessionAnonymous {
		t.Error("expected anonymous label")
	}
}
