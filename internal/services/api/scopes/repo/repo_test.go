package repo

import (
	"context"
	"errors"
	"testing"
	"time"

	"scopegen/internal/platform/store"
)

type execRecorder struct {
	sql []string
	err error
}

func (e *execRecorder) Exec(_ context.Context, sql string, _ ...any) (store.CommandTag, error) {
	e.sql = append(e.sql, sql)
	return nil, e.err
}

func (e *execRecorder) Query(context.Context, string, ...any) (store.Rows, error) { return nil, nil }
func (e *execRecorder) QueryRow(context.Context, string, ...any) store.Row        { return nil }

func TestLockTimeout_SetsLocalTimeout(t *testing.T) {
	q := &execRecorder{}
	if err := LockTimeout(2500*time.Millisecond)(context.Background(), q); err != nil {
		t.Fatalf("hook: %v", err)
	}
	if len(q.sql) != 1 || q.sql[0] != "SET LOCAL lock_timeout = '2500ms'" {
		t.Fatalf("sql = %q", q.sql)
	}
}

func TestLockTimeout_PropagatesExecError(t *testing.T) {
	boom := errors.New("boom")
	q := &execRecorder{err: boom}
	if err := LockTimeout(time.Second)(context.Background(), q); !errors.Is(err, boom) {
		t.Fatalf("err = %v", err)
	}
}
