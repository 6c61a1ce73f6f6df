package main

import (
	"fmt"
	"net/http"
	"time"
)

// Clock estimates real time by averaging HTTP Date-header offsets from a few
// well-run servers. The midnight unlock happens on the portal's clock, not
// ours, so a machine that drifts by a few seconds would otherwise wake too
// late. When sync fails the local clock is used as-is; sync is best effort,
// never fatal.
type Clock struct {
	offset   time.Duration
	synced   bool
	lastSync time.Time
}

var timeServers = []string{
	"https://www.google.com",
	"https://www.cloudflare.com",
	"https://www.amazon.com",
}

func NewClock() *Clock {
	return &Clock{}
}

// Sync probes the time servers and stores the average offset. Fails only if
// no server answered.
func (c *Clock) Sync() error {
	var total time.Duration
	count := 0

	for _, server := range timeServers {
		offset, err := headerOffset(server)
		if err != nil {
			continue
		}
		total += offset
		count++
	}

	if count == 0 {
		return fmt.Errorf("failed to sync clock with any server")
	}

	c.offset = total / time.Duration(count)
	c.lastSync = time.Now()
	c.synced = true
	return nil
}

// Now returns local time adjusted by the last synced offset, or plain local
// time before the first successful sync.
func (c *Clock) Now() time.Time {
	if !c.synced {
		return time.Now()
	}
	return time.Now().Add(c.offset)
}

func (c *Clock) Synced() bool {
	return c.synced
}

func (c *Clock) Offset() time.Duration {
	return c.offset
}

// ShouldResync reports whether the offset is stale. Long midnight waits
// resync periodically so the wakeup stays accurate.
func (c *Clock) ShouldResync() bool {
	return !c.synced || time.Since(c.lastSync) > time.Hour
}

func headerOffset(url string) (time.Duration, error) {
	client := &http.Client{Timeout: 5 * time.Second}

	before := time.Now()
	req, err := http.NewRequest(http.MethodHead, url, nil)
	if err != nil {
		return 0, err
	}
	resp, err := client.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()
	after := time.Now()

	dateHeader := resp.Header.Get("Date")
	if dateHeader == "" {
		return 0, fmt.Errorf("no Date header in response")
	}
	serverTime, err := http.ParseTime(dateHeader)
	if err != nil {
		return 0, fmt.Errorf("failed to parse Date header: %w", err)
	}

	// Approximate one-way latency as half the round trip.
	latency := after.Sub(before) / 2
	local := before.Add(latency)
	return serverTime.Sub(local), nil
}
