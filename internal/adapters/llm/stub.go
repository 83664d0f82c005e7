package llm

import (
	"context"
	"encoding/json"
	"sync"

	"scopegen/internal/core/generate"
	"scopegen/internal/core/scopedoc"
)

// Stub is a scripted backend for tests and offline runs. It replays its
// replies in order and repeats the last one; with no replies it answers with
// the output template.
type Stub struct {
	mu       sync.Mutex
	replies  []generate.Completion
	requests []generate.Request
}

// NewStub returns a Stub that replays replies
func NewStub(replies ...generate.Completion) *Stub {
	return &Stub{replies: replies}
}

// Complete implements generate.Backend
func (s *Stub) Complete(ctx context.Context, r generate.Request) (generate.Completion, error) {
	if err := ctx.Err(); err != nil {
		return generate.Completion{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	i := len(s.requests)
	s.requests = append(s.requests, r)

	if len(s.replies) == 0 {
		b, err := json.Marshal(scopedoc.Template())
		if err != nil {
			return generate.Completion{}, err
		}
		return generate.Completion{Text: string(b), Reason: generate.ReasonComplete}, nil
	}
	if i >= len(s.replies) {
		i = len(s.replies) - 1
	}
	return s.replies[i], nil
}

// Calls reports how many requests the stub has served
func (s *Stub) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.requests)
}

// Requests returns a copy of every request served
func (s *Stub) Requests() []generate.Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]generate.Request(nil), s.requests...)
}
