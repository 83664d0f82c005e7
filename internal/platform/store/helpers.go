package store

import (
	"context"

	perr "scopegen/internal/platform/errors"
)

// Driver errors leaving these helpers carry a perr code (see perr.FromPostgres),
// so repos can return them unchanged.

// Exec runs a write and returns its CommandTag
func Exec(ctx context.Context, q RowQuerier, sql string, args ...any) (CommandTag, error) {
	tag, err := q.Exec(ctx, sql, args...)
	return tag, perr.FromPostgres(err, "exec failed")
}

// ExecOne runs a write that must touch exactly one row.
// Zero rows is perr.ErrNotFound, so an owner scoped delete of a foreign row reads as missing.
func ExecOne(ctx context.Context, q RowQuerier, sql string, args ...any) error {
	tag, err := Exec(ctx, q, sql, args...)
	if err != nil {
		return err
	}
	switch n := tag.RowsAffected(); {
	case n == 0:
		return perr.ErrNotFound
	case n > 1:
		return perr.DBf("expected one row affected, got %d", n)
	}
	return nil
}

// One scans exactly one row; no rows is perr.ErrNotFound
func One[T any](ctx context.Context, q RowQuerier, scan func(Row) (T, error), sql string, args ...any) (T, error) {
	var zero T
	items, err := collect(ctx, q, scan, 2, sql, args...)
	switch {
	case err != nil:
		return zero, err
	case len(items) == 0:
		return zero, perr.ErrNotFound
	case len(items) > 1:
		return zero, perr.DBf("expected one row, got more")
	}
	return items[0], nil
}

// Many scans every row
func Many[T any](ctx context.Context, q RowQuerier, scan func(Row) (T, error), sql string, args ...any) ([]T, error) {
	return collect(ctx, q, scan, -1, sql, args...)
}

// collect stops after limit rows when limit is positive
func collect[T any](ctx context.Context, q RowQuerier, scan func(Row) (T, error), limit int, sql string, args ...any) ([]T, error) {
	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return nil, perr.FromPostgres(err, "query failed")
	}
	defer rows.Close()

	var out []T
	for rows.Next() {
		item, err := scan(rows)
		if err != nil {
			return nil, perr.FromPostgres(err, "scan failed")
		}
		out = append(out, item)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	if err := rows.Err(); err != nil {
		return nil, perr.FromPostgres(err, "query failed")
	}
	return out, nil
}
