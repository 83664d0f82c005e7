package store

import (
	"context"
	"testing"
)

func TestClientInfo(t *testing.T) {
	info := clientInfo("api", " ")
	got := map[string]string{}
	for _, p := range info.Products {
		got[p.Name] = p.Version
	}
	if got["role"] != "api" || got["scopegen"] != "unknown" || got["go"] == "" {
		t.Fatalf("products = %v", got)
	}
}

func TestOpenCH_Errors(t *testing.T) {
	if _, err := openCH(CHConfig{}); err == nil {
		t.Fatal("empty url accepted")
	}
	if _, err := openCH(CHConfig{URL: "://nope"}); err == nil {
		t.Fatal("bad dsn accepted")
	}
}

func TestCHDB_Unconnected(t *testing.T) {
	var c *chDB
	ctx := context.Background()
	if err := c.Insert(ctx, "generation_runs", nil); err != nil {
		t.Fatalf("empty insert should be a no-op: %v", err)
	}
	if err := c.Insert(ctx, "generation_runs", [][]any{{1}}); err != errCHClosed {
		t.Fatalf("insert = %v", err)
	}
	if err := c.Ping(ctx); err != errCHClosed {
		t.Fatalf("ping = %v", err)
	}
	if err := c.Close(); err != nil {
		t.Fatalf("close = %v", err)
	}
}
