package store

import (
	"context"
	"strings"
	"testing"
)

func TestMigrate(t *testing.T) {
	db := &memDB{}
	if err := Migrate(context.Background(), db, "CREATE TABLE a ()", " \n", "CREATE INDEX b"); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if strings.Join(db.execs, ";") != "CREATE TABLE a ();CREATE INDEX b" {
		t.Fatalf("execs = %q", db.execs)
	}

	failing := &memDB{failExec: 1}
	err := Migrate(context.Background(), failing, "CREATE BROKEN", "CREATE LATER")
	if err == nil || !strings.Contains(err.Error(), "statement 0") || len(failing.execs) != 1 {
		t.Fatalf("err = %v execs = %v", err, failing.execs)
	}

	if err := Migrate(context.Background(), nil, "x"); err == nil {
		t.Fatal("nil runner accepted")
	}
}
