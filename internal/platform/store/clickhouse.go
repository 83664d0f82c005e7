package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"runtime"
	"runtime/debug"
	"strings"

	"github.com/ClickHouse/clickhouse-go/v2"
	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
)

var errCHClosed = errors.New("ch: not connected")

// chDB implements Clickhouse over a native clickhouse-go connection
type chDB struct {
	conn driver.Conn
}

var (
	_ Clickhouse = (*chDB)(nil)
	_ Pinger     = (*chDB)(nil)
)

// openCH parses the DSN and opens a lazily dialed native connection
func openCH(cfg CHConfig) (*chDB, error) {
	if cfg.URL == "" {
		return nil, errors.New("ch: empty url")
	}
	opts, err := clickhouse.ParseDSN(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("ch: parse dsn: %w", err)
	}
	opts.ClientInfo = clientInfo(cfg.Role, cfg.Tag)
	conn, err := clickhouse.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("ch: open: %w", err)
	}
	return &chDB{conn: conn}, nil
}

// Insert sends rows in one batch, each row in table column order
func (c *chDB) Insert(ctx context.Context, table string, rows [][]any) error {
	if len(rows) == 0 {
		return nil
	}
	if c == nil || c.conn == nil {
		return errCHClosed
	}
	batch, err := c.conn.PrepareBatch(ctx, "INSERT INTO "+table)
	if err != nil {
		return fmt.Errorf("ch: prepare %s: %w", table, err)
	}
	for i, r := range rows {
		if err := batch.Append(r...); err != nil {
			_ = batch.Abort()
			return fmt.Errorf("ch: append row %d: %w", i, err)
		}
	}
	if err := batch.Send(); err != nil {
		return fmt.Errorf("ch: send %s: %w", table, err)
	}
	return nil
}

func (c *chDB) Exec(ctx context.Context, sql string, args ...any) error {
	if c == nil || c.conn == nil {
		return errCHClosed
	}
	return c.conn.Exec(ctx, sql, args...)
}

func (c *chDB) Query(ctx context.Context, sql string, args ...any) (Rows, error) {
	if c == nil || c.conn == nil {
		return nil, errCHClosed
	}
	rs, err := c.conn.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	return chRows{rs}, nil
}

func (c *chDB) Ping(ctx context.Context) error {
	if c == nil || c.conn == nil {
		return errCHClosed
	}
	return c.conn.Ping(ctx)
}

func (c *chDB) Close() error {
	if c == nil || c.conn == nil {
		return nil
	}
	return c.conn.Close()
}

type chRows struct{ driver.Rows }

func (r chRows) Close() { _ = r.Rows.Close() }

// clientInfo names this process in system.query_log
func clientInfo(role, tag string) clickhouse.ClientInfo {
	host, _ := os.Hostname()
	orUnknown := func(s string) string {
		if s = strings.TrimSpace(s); s == "" {
			return "unknown"
		}
		return s
	}
	type product = struct{ Name, Version string }
	return clickhouse.ClientInfo{Products: []product{
		{Name: "scopegen", Version: orUnknown(tag)},
		{Name: "role", Version: orUnknown(role)},
		{Name: "go", Version: runtime.Version()},
		{Name: "commit", Version: orUnknown(vcsRevision())},
		{Name: "host", Version: orUnknown(host)},
	}}
}

func vcsRevision() string {
	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return ""
	}
	for _, s := range bi.Settings {
		if s.Key == "vcs.revision" && len(s.Value) >= 7 {
			return s.Value[:7]
		}
	}
	return ""
}
