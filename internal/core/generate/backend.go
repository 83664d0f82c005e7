package generate

import "context"

// CompletionReason is why the backend stopped producing text
type CompletionReason string

const (
	ReasonComplete CompletionReason = "complete"
	ReasonLength   CompletionReason = "length"
	ReasonOther    CompletionReason = "other"
)

// Request is one backend round-trip
type Request struct {
	Instructions    string
	Payload         string
	MaxOutputTokens int
	Attempt         int
}

// Completion is the backend's answer. Text may be empty.
type Completion struct {
	Text   string
	Reason CompletionReason
}

// Backend is the external text generation service. Implementations must
// tolerate at least two calls per Generate without coordination.
type Backend interface {
	Complete(ctx context.Context, req Request) (Completion, error)
}

// BackendFunc adapts a function to Backend
type BackendFunc func(ctx context.Context, req Request) (Completion, error)

// Complete implements Backend
func (f BackendFunc) Complete(ctx context.Context, req Request) (Completion, error) {
	return f(ctx, req)
}
