// Package generate turns a validated intake into a validated scope document
//
// A Generator runs one state machine per call. Each attempt builds the
// prompt, calls the backend, parses the text as JSON, normalizes it and
// validates it. A length-truncated or empty reply and a reply that fails
// validation both escalate to a single second attempt with the compaction
// instructions and a larger budget; the two share one attempt counter, so a
// call never reaches the backend more than twice.
package generate

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"scopegen/internal/core/intake"
	"scopegen/internal/core/jsonv"
	"scopegen/internal/core/normalize"
	"scopegen/internal/core/prompt"
	"scopegen/internal/core/scopedoc"
)

const (
	// MaxAttempts bounds backend round-trips per call
	MaxAttempts = 2

	DefaultFirstBudget = 4500
	DefaultRetryBudget = 6500
)

// State is an orchestrator state
type State uint8

const (
	StateBuilding State = iota
	StateAwaitingBackend
	StateParsing
	StateValidating
	StateRetrying
	StateSucceeded
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateBuilding:
		return "BUILDING"
	case StateAwaitingBackend:
		return "AWAITING_BACKEND"
	case StateParsing:
		return "PARSING"
	case StateValidating:
		return "VALIDATING"
	case StateRetrying:
		return "RETRYING"
	case StateSucceeded:
		return "SUCCEEDED"
	case StateFailed:
		return "FAILED"
	default:
		return fmt.Sprintf("State(%d)", uint8(s))
	}
}

// RetryReason records why the current attempt was started
type RetryReason uint8

const (
	RetryNone RetryReason = iota
	RetryTruncated
	RetryInvalidJSON
	RetrySchemaInvalid
)

func (r RetryReason) String() string {
	switch r {
	case RetryNone:
		return "none"
	case RetryTruncated:
		return "truncated"
	case RetryInvalidJSON:
		return "invalid-json"
	case RetrySchemaInvalid:
		return "schema-invalid"
	default:
		return fmt.Sprintf("RetryReason(%d)", uint8(r))
	}
}

// MalformedPolicy decides what non-JSON backend text does
type MalformedPolicy uint8

const (
	// MalformedFail fails the call immediately with MalformedOutputError
	MalformedFail MalformedPolicy = iota
	// MalformedRetry treats non-JSON text like a validation failure and retries once
	MalformedRetry
)

func (p MalformedPolicy) String() string {
	if p == MalformedRetry {
		return "retry"
	}
	return "fail"
}

// ParseMalformedPolicy reads "fail" or "retry"
func ParseMalformedPolicy(s string) (MalformedPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "fail":
		return MalformedFail, nil
	case "retry":
		return MalformedRetry, nil
	}
	return MalformedFail, fmt.Errorf("unknown malformed output policy %q", s)
}

// Transition is reported to an observer on every state change
type Transition struct {
	From    State
	To      State
	Attempt int
	Reason  RetryReason
}

// Option configures a Generator
type Option func(*Generator)

// WithBudgets sets the output token budgets for attempt 1 and attempt 2
func WithBudgets(first, retry int) Option {
	return func(g *Generator) {
		if first > 0 {
			g.firstBudget = first
		}
		if retry > 0 {
			g.retryBudget = retry
		}
	}
}

// WithMalformedPolicy sets how non-JSON text is handled
func WithMalformedPolicy(p MalformedPolicy) Option {
	return func(g *Generator) { g.malformed = p }
}

// WithObserver registers a callback for every transition. It runs inline and must not block.
func WithObserver(fn func(Transition)) Option {
	return func(g *Generator) { g.observe = fn }
}

type observerKey struct{}

// ContextWithObserver attaches a per-call transition callback, reported after
// any observer set with WithObserver. It runs inline and must not block.
func ContextWithObserver(ctx context.Context, fn func(Transition)) context.Context {
	if fn == nil {
		return ctx
	}
	return context.WithValue(ctx, observerKey{}, fn)
}

func observerFrom(ctx context.Context) func(Transition) {
	fn, _ := ctx.Value(observerKey{}).(func(Transition))
	return fn
}

// Generator is safe for concurrent use; it holds no per-call state
type Generator struct {
	backend     Backend
	firstBudget int
	retryBudget int
	malformed   MalformedPolicy
	observe     func(Transition)
}

// New builds a Generator. A nil backend yields ConfigurationError on every call.
func New(b Backend, opts ...Option) *Generator {
	g := &Generator{
		backend:     b,
		firstBudget: DefaultFirstBudget,
		retryBudget: DefaultRetryBudget,
		malformed:   MalformedFail,
	}
	for _, o := range opts {
		o(g)
	}
	return g
}

// Budget returns the output token budget for an attempt
func (g *Generator) Budget(attempt int) int {
	if attempt <= 1 {
		return g.firstBudget
	}
	return g.retryBudget
}

// MalformedPolicy reports the configured policy
func (g *Generator) MalformedPolicy() MalformedPolicy { return g.malformed }

// GenerateScopeFromIntake runs the pipeline and returns a schema-valid document
// or one of ConfigurationError, EmptyResponseError, MalformedOutputError and
// SchemaValidationError. Context cancellation is returned as the context error.
func (g *Generator) GenerateScopeFromIntake(ctx context.Context, in intake.Intake) (scopedoc.Document, error) {
	if g == nil || g.backend == nil {
		return scopedoc.Document{}, &ConfigurationError{Err: errors.New("no generation backend configured")}
	}
	r := &run{g: g, in: in, attempt: 1, state: StateBuilding, observe: observerFrom(ctx)}
	for r.state != StateSucceeded && r.state != StateFailed {
		switch r.state {
		case StateBuilding:
			r.build()
		case StateAwaitingBackend:
			r.await(ctx)
		case StateParsing:
			r.parse()
		case StateValidating:
			r.validate()
		case StateRetrying:
			r.retry()
		}
	}
	if r.state == StateFailed {
		return scopedoc.Document{}, r.err
	}
	return r.doc, nil
}

// run is the state of one call
type run struct {
	g       *Generator
	in      intake.Intake
	observe func(Transition)

	state   State
	attempt int
	reason  RetryReason

	req        Request
	completion Completion
	parsed     any
	doc        scopedoc.Document
	err        error
}

func (r *run) to(s State) {
	t := Transition{From: r.state, To: s, Attempt: r.attempt, Reason: r.reason}
	if r.g.observe != nil {
		r.g.observe(t)
	}
	if r.observe != nil {
		r.observe(t)
	}
	r.state = s
}

func (r *run) fail(err error) {
	r.err = err
	r.to(StateFailed)
}

func (r *run) build() {
	payload, err := prompt.Payload(r.in, scopedoc.Template())
	if err != nil {
		r.fail(fmt.Errorf("build payload: %w", err))
		return
	}
	r.req = Request{
		Instructions:    prompt.Instructions(r.attempt),
		Payload:         payload,
		MaxOutputTokens: r.g.Budget(r.attempt),
		Attempt:         r.attempt,
	}
	r.to(StateAwaitingBackend)
}

func (r *run) await(ctx context.Context) {
	if err := ctx.Err(); err != nil {
		r.fail(err)
		return
	}
	c, err := r.g.backend.Complete(ctx, r.req)
	if err != nil {
		var cfg *ConfigurationError
		switch {
		case ctx.Err() != nil:
			r.fail(ctx.Err())
		case errors.As(err, &cfg):
			r.fail(err)
		default:
			r.fail(&ConfigurationError{Err: err})
		}
		return
	}
	c.Text = strings.TrimSpace(c.Text)
	r.completion = c

	if c.Text == "" || c.Reason == ReasonLength {
		if r.attempt >= MaxAttempts {
			r.fail(&EmptyResponseError{Reason: c.Reason, Attempts: r.attempt})
			return
		}
		// straight back to BUILDING with the compaction variant
		r.attempt++
		r.reason = RetryTruncated
		r.to(StateBuilding)
		return
	}
	r.to(StateParsing)
}

func (r *run) parse() {
	v, err := jsonv.Decode([]byte(stripFence(r.completion.Text)))
	if err != nil {
		if r.g.malformed == MalformedRetry && r.attempt < MaxAttempts {
			r.reason = RetryInvalidJSON
			r.to(StateRetrying)
			return
		}
		r.fail(&MalformedOutputError{Err: err, Attempts: r.attempt})
		return
	}
	r.parsed = v
	r.to(StateValidating)
}

func (r *run) validate() {
	doc, violations := scopedoc.Validate(normalize.Normalize(r.parsed))
	if len(violations) == 0 {
		r.doc = doc
		r.to(StateSucceeded)
		return
	}
	if r.attempt < MaxAttempts {
		r.reason = RetrySchemaInvalid
		r.to(StateRetrying)
		return
	}
	r.fail(&SchemaValidationError{Violations: violations, Attempts: r.attempt})
}

func (r *run) retry() {
	r.attempt++
	r.to(StateBuilding)
}

// stripFence removes a markdown code fence wrapped around the whole reply
func stripFence(s string) string {
	if !strings.HasPrefix(s, "```") {
		return s
	}
	body := strings.TrimPrefix(s, "```")
	nl := strings.IndexByte(body, '\n')
	if nl < 0 {
		return s
	}
	body = body[nl+1:] // drop the info string, e.g. json
	body = strings.TrimSpace(body)
	if !strings.HasSuffix(body, "```") {
		return s
	}
	return strings.TrimSpace(strings.TrimSuffix(body, "```"))
}
