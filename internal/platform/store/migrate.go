package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Migrate applies idempotent DDL in order inside a single transaction, skipping blank statements
func Migrate(ctx context.Context, db TxRunner, stmts ...string) error {
	if db == nil {
		return errors.New("migrate: postgres is not configured")
	}
	return db.Tx(ctx, func(q RowQuerier) error {
		for i, s := range stmts {
			if strings.TrimSpace(s) == "" {
				continue
			}
			if _, err := q.Exec(ctx, s); err != nil {
				return fmt.Errorf("migrate: statement %d: %w", i, err)
			}
		}
		return nil
	})
}
