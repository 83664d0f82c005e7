// Package store opens the postgres and clickhouse backends behind small seams
//
// Repos only see RowQuerier and TxRunner; telemetry only sees Clickhouse.
// Driver types stay inside this package.
package store

import (
	"context"
	"errors"
	"fmt"

	"scopegen/internal/platform/logger"
)

// Row is a single result row
type Row interface {
	Scan(dest ...any) error
}

// Rows is a forward only result set
type Rows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
	Close()
	Columns() []string
}

// CommandTag reports what a write did
type CommandTag interface {
	String() string
	RowsAffected() int64
}

// RowQuerier runs sql against a pool or an open transaction
type RowQuerier interface {
	Exec(ctx context.Context, sql string, args ...any) (CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) Row
}

// TxRunner commits when fn returns nil and rolls back otherwise
type TxRunner interface {
	RowQuerier
	Tx(ctx context.Context, fn func(q RowQuerier) error) error
}

// Clickhouse is the columnar seam used by telemetry
type Clickhouse interface {
	Insert(ctx context.Context, table string, rows [][]any) error
	Exec(ctx context.Context, sql string, args ...any) error
	Query(ctx context.Context, sql string, args ...any) (Rows, error)
	Close() error
}

// Pinger is implemented by seams that can report readiness
type Pinger interface{ Ping(context.Context) error }

// Store holds the enabled backends; disabled ones stay nil
type Store struct {
	Log logger.Logger
	PG  TxRunner
	CH  Clickhouse
}

// Option mutates Store during Open
type Option func(*Store) error

// WithLogger sets the logger handed to the sql tracer
func WithLogger(log logger.Logger) Option {
	return func(s *Store) error {
		s.Log = log
		return nil
	}
}

// Open connects every backend enabled in cfg.
// A failure closes whatever was already opened.
func Open(ctx context.Context, cfg Config, opts ...Option) (*Store, error) {
	s := &Store{}
	for _, o := range opts {
		if err := o(s); err != nil {
			return nil, err
		}
	}

	if cfg.PG.Enabled {
		db, err := openPG(ctx, cfg.AppName, cfg.PG, s.Log)
		if err != nil {
			return nil, fmt.Errorf("store: postgres: %w", err)
		}
		s.PG = db
	}
	if cfg.CH.Enabled {
		c, err := openCH(cfg.CH)
		if err != nil {
			_ = s.Close(ctx)
			return nil, fmt.Errorf("store: clickhouse: %w", err)
		}
		s.CH = c
	}
	return s, nil
}

// Guard pings every backend that supports it and joins the failures
func (s *Store) Guard(ctx context.Context) error {
	if s == nil {
		return errors.New("store: nil store")
	}
	var errs []error
	check := func(name string, seam any) {
		if p, ok := seam.(Pinger); ok {
			if err := p.Ping(ctx); err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", name, err))
			}
		}
	}
	if s.PG != nil {
		check("pg", s.PG)
	}
	if s.CH != nil {
		check("ch", s.CH)
	}
	return errors.Join(errs...)
}

// Close releases every opened backend
func (s *Store) Close(context.Context) error {
	var errs []error
	if s.CH != nil {
		errs = append(errs, s.CH.Close())
	}
	if c, ok := s.PG.(interface{ Close() error }); ok {
		errs = append(errs, c.Close())
	}
	return errors.Join(errs...)
}
