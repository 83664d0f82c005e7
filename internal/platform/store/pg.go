package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"scopegen/internal/platform/logger"
	pnet "scopegen/internal/platform/net"
)

// pgxConn is what a pool and an open transaction have in common
type pgxConn interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// pgxPool is the subset of *pgxpool.Pool the store uses
type pgxPool interface {
	pgxConn
	Begin(ctx context.Context) (pgx.Tx, error)
	Ping(ctx context.Context) error
	Close()
}

var (
	newPool     = func(ctx context.Context, c *pgxpool.Config) (pgxPool, error) { return pgxpool.NewWithConfig(ctx, c) }
	pingBackoff = 150 * time.Millisecond
)

const maxPingBackoff = 2 * time.Second

// pgQuerier adapts a pgxConn to RowQuerier and traces every statement
type pgQuerier struct {
	conn  pgxConn
	trace *sqlTracer
}

func (q pgQuerier) Exec(ctx context.Context, sql string, args ...any) (CommandTag, error) {
	done := q.trace.begin(ctx, sql, args)
	ct, err := q.conn.Exec(ctx, sql, args...)
	done(err)
	return ct, err
}

func (q pgQuerier) Query(ctx context.Context, sql string, args ...any) (Rows, error) {
	done := q.trace.begin(ctx, sql, args)
	rs, err := q.conn.Query(ctx, sql, args...)
	done(err)
	if err != nil {
		return nil, err
	}
	return pgRows{rs}, nil
}

// QueryRow traces once Scan returns, since pgx defers the error until then
func (q pgQuerier) QueryRow(ctx context.Context, sql string, args ...any) Row {
	done := q.trace.begin(ctx, sql, args)
	return tracedRow{row: q.conn.QueryRow(ctx, sql, args...), done: done}
}

type tracedRow struct {
	row  pgx.Row
	done func(error)
}

func (r tracedRow) Scan(dest ...any) error {
	err := r.row.Scan(dest...)
	r.done(err)
	return err
}

type pgRows struct{ pgx.Rows }

func (r pgRows) Columns() []string {
	fds := r.FieldDescriptions()
	out := make([]string, len(fds))
	for i, fd := range fds {
		out[i] = fd.Name
	}
	return out
}

// pgDB is the pooled TxRunner returned by Open
type pgDB struct {
	pgQuerier
	pool pgxPool
}

func (db *pgDB) Tx(ctx context.Context, fn func(q RowQuerier) error) error {
	return pgx.BeginFunc(ctx, db.pool, func(tx pgx.Tx) error {
		return fn(pgQuerier{conn: tx, trace: db.trace})
	})
}

func (db *pgDB) Ping(ctx context.Context) error { return db.pool.Ping(ctx) }

func (db *pgDB) Close() error {
	db.pool.Close()
	return nil
}

func openPG(ctx context.Context, app string, cfg PGConfig, log logger.Logger) (*pgDB, error) {
	pcfg, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, err
	}
	if cfg.MaxConns > 0 {
		pcfg.MaxConns = cfg.MaxConns
	}
	if app != "" {
		if pcfg.ConnConfig.RuntimeParams == nil {
			pcfg.ConnConfig.RuntimeParams = map[string]string{}
		}
		pcfg.ConnConfig.RuntimeParams["application_name"] = app
	}

	pool, err := newPool(ctx, pcfg)
	if err != nil {
		return nil, err
	}
	// the pool dials lazily, so readiness is proven here rather than on the first request
	if err := pingWithBackoff(ctx, pool.Ping, cfg.ConnectRetries, cfg.PingTimeout); err != nil {
		pool.Close()
		return nil, err
	}

	db := &pgDB{pool: pool, pgQuerier: pgQuerier{conn: pool}}
	if cfg.LogSQL {
		db.trace = newSQLTracer(log, cfg.SlowQuery)
	}
	return db, nil
}

func pingWithBackoff(ctx context.Context, ping func(context.Context) error, attempts int, timeout time.Duration) error {
	if attempts <= 0 {
		attempts = 6
	}
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	wait := pingBackoff
	var err error
	for i := range attempts {
		pctx, cancel := context.WithTimeout(ctx, timeout)
		err = ping(pctx)
		cancel()
		if err == nil {
			return nil
		}
		if i == attempts-1 {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
		}
		wait = min(wait*2, maxPingBackoff)
	}
	return fmt.Errorf("ping failed after %d attempts: %w", attempts, err)
}

// sqlTracer logs statements with their timing; a nil tracer is a no-op
type sqlTracer struct {
	log  logger.Logger
	slow time.Duration
}

// newSQLTracer logs regardless of the root level once LOG_SQL is on
func newSQLTracer(root logger.Logger, slow time.Duration) *sqlTracer {
	return &sqlTracer{
		log:  root.Level(zerolog.DebugLevel).With().Str("component", "pg").Logger(),
		slow: slow,
	}
}

func (t *sqlTracer) begin(ctx context.Context, sql string, args []any) func(error) {
	if t == nil {
		return func(error) {}
	}
	start := time.Now()
	return func(err error) {
		elapsed := time.Since(start)
		slow := t.slow > 0 && elapsed >= t.slow

		ev := t.log.Info()
		if slow {
			ev = t.log.Warn()
		}
		if rid := pnet.RequestID(ctx); rid != "" {
			ev = ev.Str("request_id", rid)
		}
		ev.Float64("elapsed_ms", float64(elapsed.Microseconds())/1000).
			Bool("slow", slow).
			Str("sql", strings.Join(strings.Fields(sql), " ")).
			Interface("args", args).
			Err(err).
			Msg("pg query")
	}
}
