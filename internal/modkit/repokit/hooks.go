package repokit

import "context"

// BeginHook runs first inside every transaction, e.g. to SET LOCAL a timeout
type BeginHook func(ctx context.Context, q Queryer) error

// WithBeginHooks returns a runner whose transactions start with hooks in order.
// Statements outside Tx go straight to inner.
func WithBeginHooks(inner TxRunner, hooks ...BeginHook) TxRunner {
	return hookedTx{TxRunner: inner, hooks: hooks}
}

type hookedTx struct {
	TxRunner
	hooks []BeginHook
}

func (h hookedTx) Tx(ctx context.Context, fn func(q Queryer) error) error {
	return h.TxRunner.Tx(ctx, func(q Queryer) error {
		for _, hook := range h.hooks {
			if err := hook(ctx, q); err != nil {
				return err
			}
		}
		return fn(q)
	})
}
