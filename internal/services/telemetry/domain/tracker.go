package domain

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"scopegen/internal/core/generate"
)

// Tracker accumulates one run from orchestrator transitions
type Tracker struct {
	mu      sync.Mutex
	now     func() time.Time
	start   time.Time
	calls   int
	reasons []string
}

// NewTracker starts timing a run
func NewTracker(now func() time.Time) *Tracker {
	if now == nil {
		now = time.Now
	}
	return &Tracker{now: now, start: now()}
}

// Observe is a generate observer
func (t *Tracker) Observe(tr generate.Transition) {
	t.mu.Lock()
	defer t.mu.Unlock()
	switch {
	case tr.To == generate.StateAwaitingBackend:
		t.calls++
	case tr.To == generate.StateRetrying,
		tr.To == generate.StateBuilding && tr.From == generate.StateAwaitingBackend:
		t.reasons = append(t.reasons, tr.Reason.String())
	}
}

// Finish completes base with what was observed and the run's error
func (t *Tracker) Finish(base Run, err error) Run {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := base
	if out.ID == uuid.Nil {
		out.ID = uuid.New()
	}
	out.StartedAt = t.start
	out.BackendCalls = t.calls
	out.RetryReasons = append([]string{}, t.reasons...)
	out.LatencyMs = t.now().Sub(t.start).Milliseconds()
	out.ErrorKind, out.Violations = Classify(err)
	out.Outcome = OutcomeSucceeded
	if err != nil {
		out.Outcome = OutcomeFailed
	}
	return out
}
