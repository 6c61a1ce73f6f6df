package main

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestClockBeforeSync(t *testing.T) {
	clock := NewClock()

	if clock.Synced() {
		t.Error("Clock should not be synced initially")
	}
	if !clock.ShouldResync() {
		t.Error("Should need to sync when never synced")
	}

	// Before syncing, Now() falls back to the local clock.
	diff := clock.Now().Sub(time.Now())
	if diff > 100*time.Millisecond || diff < -100*time.Millisecond {
		t.Errorf("Unsynced clock differs from system time: %v", diff)
	}
}

func TestClockResyncAfterStaleness(t *testing.T) {
	clock := NewClock()
	clock.synced = true
	clock.lastSync = time.Now()

	if clock.ShouldResync() {
		t.Error("Should not need to resync immediately after syncing")
	}

	clock.lastSync = time.Now().Add(-2 * time.Hour)
	if !clock.ShouldResync() {
		t.Error("Should need to resync after 2 hours")
	}
}

func TestHeaderOffsetAgainstLocalServer(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Date", time.Now().UTC().Format(http.TimeFormat))
	}))
	defer server.Close()

	offset, err := headerOffset(server.URL)
	if err != nil {
		t.Fatalf("headerOffset failed: %v", err)
	}

	// Local server, local clock: the offset should be within Date-header
	// granularity (one second) plus slack.
	if offset > 2*time.Second || offset < -2*time.Second {
		t.Errorf("offset against local server seems unreasonable: %v", offset)
	}
}

func TestHeaderOffsetMissingDateHeader(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// httptest sets Date automatically; suppress it.
		w.Header()["Date"] = nil
	}))
	defer server.Close()

	if _, err := headerOffset(server.URL); err == nil {
		t.Error("expected an error when the Date header is missing")
	}
}

func TestClockNowAppliesOffset(t *testing.T) {
	clock := NewClock()
	clock.synced = true
	clock.offset = 3 * time.Second

	diff := clock.Now().Sub(time.Now())
	if diff < 2900*time.Millisecond || diff > 3100*time.Millisecond {
		t.Errorf("expected ~3s offset, got %v", diff)
	}
}
