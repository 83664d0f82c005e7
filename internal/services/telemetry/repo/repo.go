// Package repo provides clickhouse storage for generation runs
package repo

import (
	"context"
	"errors"
	"regexp"
	"time"

	"scopegen/internal/platform/store"
	"scopegen/internal/services/telemetry/domain"
)

// DefaultTable holds one row per orchestrator run
const DefaultTable = "scope_generation_runs"

var tableName = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*(\.[A-Za-z_][A-Za-z0-9_]*)?$`)

// Storage is the telemetry persistence surface
type Storage interface {
	Migrate(ctx context.Context) error
	Insert(ctx context.Context, runs []domain.Run) error
	Summary(ctx context.Context, since time.Time) ([]domain.OutcomeCount, error)
}

// CH implements Storage on ClickHouse
type CH struct {
	db    store.Clickhouse
	table string
}

// NewCH binds a clickhouse seam to a table; an empty table uses DefaultTable
func NewCH(db store.Clickhouse, table string) (*CH, error) {
	if db == nil {
		return nil, errors.New("telemetry: nil clickhouse")
	}
	if table == "" {
		table = DefaultTable
	}
	if !tableName.MatchString(table) {
		return nil, errors.New("telemetry: invalid table name " + table)
	}
	return &CH{db: db, table: table}, nil
}

// Table returns the bound table name
func (c *CH) Table() string { return c.table }

// Migrate creates the runs table
func (c *CH) Migrate(ctx context.Context) error {
	return c.db.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS `+c.table+` (
			run_id        UUID,
			started_at    DateTime64(3, 'UTC'),
			owner         String,
			intake_id     String,
			provider      LowCardinality(String),
			model         LowCardinality(String),
			backend_calls UInt8,
			retry_reasons Array(LowCardinality(String)),
			outcome       LowCardinality(String),
			error_kind    LowCardinality(String),
			violations    UInt32,
			latency_ms    UInt32
		)
		ENGINE = MergeTree
		PARTITION BY toYYYYMM(started_at)
		ORDER BY (started_at, run_id)`)
}

// Insert writes runs in one batch
func (c *CH) Insert(ctx context.Context, runs []domain.Run) error {
	if len(runs) == 0 {
		return nil
	}
	rows := make([][]any, 0, len(runs))
	for _, r := range runs {
		rows = append(rows, Values(r))
	}
	return c.db.Insert(ctx, c.table, rows)
}

// Values lists a run in table column order
func Values(r domain.Run) []any {
	reasons := r.RetryReasons
	if reasons == nil {
		reasons = []string{}
	}
	return []any{
		r.ID,
		r.StartedAt.UTC(),
		r.Owner,
		r.IntakeID,
		r.Provider,
		r.Model,
		clampU8(r.BackendCalls),
		reasons,
		string(r.Outcome),
		r.ErrorKind,
		clampU32(int64(r.Violations)),
		clampU32(r.LatencyMs),
	}
}

// Summary groups runs since a point in time by outcome and error kind
func (c *CH) Summary(ctx context.Context, since time.Time) ([]domain.OutcomeCount, error) {
	rows, err := c.db.Query(ctx, `
		SELECT outcome, error_kind, count(), avg(latency_ms), avg(backend_calls)
		FROM `+c.table+`
		WHERE started_at >= ?
		GROUP BY outcome, error_kind
		ORDER BY count() DESC, outcome, error_kind`, since.UTC())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.OutcomeCount{}
	for rows.Next() {
		var oc domain.OutcomeCount
		if err := rows.Scan(&oc.Outcome, &oc.ErrorKind, &oc.Runs, &oc.AvgLatencyMs, &oc.AvgCalls); err != nil {
			return nil, err
		}
		out = append(out, oc)
	}
	return out, rows.Err()
}

func clampU8(n int) uint8 {
	switch {
	case n < 0:
		return 0
	case n > 255:
		return 255
	}
	return uint8(n)
}

func clampU32(n int64) uint32 {
	switch {
	case n < 0:
		return 0
	case n > int64(^uint32(0)):
		return ^uint32(0)
	}
	return uint32(n)
}
