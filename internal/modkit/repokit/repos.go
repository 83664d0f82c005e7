// Package repokit is the seam between domain repos and the SQL store
package repokit

import (
	"context"

	"scopegen/internal/platform/store"
)

type (
	// Queryer is what a bound repo runs statements against, the pool or a tx
	Queryer    = store.RowQuerier
	TxRunner   = store.TxRunner
	Rows       = store.Rows
	Row        = store.Row
	CommandTag = store.CommandTag
)

// Binder produces a repo bound to q
type Binder[T any] interface {
	Bind(q Queryer) T
}

// BindFunc adapts a constructor to Binder
type BindFunc[T any] func(Queryer) T

func (f BindFunc[T]) Bind(q Queryer) T { return f(q) }

// WithTx runs fn in one transaction; fn's error rolls it back
func WithTx(ctx context.Context, tx TxRunner, fn func(q Queryer) error) error {
	return tx.Tx(ctx, fn)
}
