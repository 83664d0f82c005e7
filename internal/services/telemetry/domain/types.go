// Package domain holds generation telemetry types and ports
package domain

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"scopegen/internal/core/generate"
)

// Outcome of one generation run
type Outcome string

// Outcomes
const (
	OutcomeSucceeded Outcome = "succeeded"
	OutcomeFailed    Outcome = "failed"
)

// Error kinds recorded for failed runs
const (
	KindNone             = ""
	KindConfiguration    = "configuration"
	KindEmptyResponse    = "empty_response"
	KindMalformedOutput  = "malformed_output"
	KindSchemaValidation = "schema_validation"
	KindCanceled         = "canceled"
	KindInternal         = "internal"
)

// Run is one orchestrator invocation as stored in the analytics sink
type Run struct {
	ID           uuid.UUID
	StartedAt    time.Time
	Owner        string
	IntakeID     string
	Provider     string
	Model        string
	BackendCalls int
	RetryReasons []string
	Outcome      Outcome
	ErrorKind    string
	Violations   int
	LatencyMs    int64
}

// OutcomeCount is one row of the run summary
type OutcomeCount struct {
	Outcome      string  `json:"outcome"`
	ErrorKind    string  `json:"errorKind,omitempty"`
	Runs         uint64  `json:"runs"`
	AvgLatencyMs float64 `json:"avgLatencyMs"`
	AvgCalls     float64 `json:"avgBackendCalls"`
}

// RecorderPort stores runs; failures are the recorder's concern, never the caller's
type RecorderPort interface {
	Record(ctx context.Context, run Run)
}

// QueryPort summarizes stored runs
type QueryPort interface {
	Summary(ctx context.Context, since time.Time) ([]OutcomeCount, error)
}

// Classify maps an orchestrator error to an error kind and its violation count
func Classify(err error) (string, int) {
	if err == nil {
		return KindNone, 0
	}
	var (
		cfg   *generate.ConfigurationError
		empty *generate.EmptyResponseError
		mal   *generate.MalformedOutputError
		sch   *generate.SchemaValidationError
	)
	switch {
	case errors.As(err, &sch):
		return KindSchemaValidation, len(sch.Violations)
	case errors.As(err, &empty):
		return KindEmptyResponse, 0
	case errors.As(err, &mal):
		return KindMalformedOutput, 0
	case errors.As(err, &cfg):
		return KindConfiguration, 0
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return KindCanceled, 0
	default:
		return KindInternal, 0
	}
}
