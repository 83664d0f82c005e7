package repokit

import (
	"context"
	"fmt"
)

// MustGuard panics when st reports an unreachable dependency; use at startup only
func MustGuard(ctx context.Context, st interface{ Guard(context.Context) error }) {
	if err := st.Guard(ctx); err != nil {
		panic(fmt.Errorf("dependency guard failed: %w", err))
	}
}
