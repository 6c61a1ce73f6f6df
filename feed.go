package main

import (
	"strings"
	"sync"
)

// The flow publishes plain progress lines plus two reserved sentinels the
// display loop uses to detect termination. Same wire protocol the portal
// bot has always used, so log consumers stay trivial.
const (
	statusDonePrefix  = "STATUS:DONE:"
	statusErrorPrefix = "STATUS:ERROR:"
)

func doneMessage(artifact string) string {
	return statusDonePrefix + artifact
}

func errorMessage(err error) string {
	return statusErrorPrefix + err.Error()
}

// LogQueue is the one-way channel between the booking flow (producer) and
// the display loop (consumer). Append-only, thread safe, drained on a fixed
// interval by the front-end.
type LogQueue struct {
	mu   sync.Mutex
	msgs []string
}

func NewLogQueue() *LogQueue {
	return &LogQueue{}
}

func (q *LogQueue) Put(msg string) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.msgs = append(q.msgs, msg)
}

// Drain returns and clears all pending messages in publish order.
func (q *LogQueue) Drain() []string {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.msgs) == 0 {
		return nil
	}
	out := q.msgs
	q.msgs = nil
	return out
}

type feedStatus int

const (
	feedProgress feedStatus = iota
	feedDone
	feedError
)

// classify splits a drained message into its status and payload. Progress
// lines pass through unchanged.
func classify(msg string) (feedStatus, string) {
	switch {
	case strings.HasPrefix(msg, statusDonePrefix):
		return feedDone, strings.TrimPrefix(msg, statusDonePrefix)
	case strings.HasPrefix(msg, statusErrorPrefix):
		return feedError, strings.TrimPrefix(msg, statusErrorPrefix)
	default:
		return feedProgress, msg
	}
}
