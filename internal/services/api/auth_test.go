package api

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestParseTokens(t *testing.T) {
	got, err := ParseTokens(" t1:alice , ,t2:bob")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(got) != 2 || got["t1"] != "alice" || got["t2"] != "bob" {
		t.Fatalf("tokens = %v", got)
	}

	for _, bad := range []string{"t1", "t1:", ":alice", "t1:a,t1:b"} {
		if _, err := ParseTokens(bad); err == nil {
			t.Fatalf("%q should fail", bad)
		}
	}

	empty, err := ParseTokens("")
	if err != nil || len(empty) != 0 {
		t.Fatalf("empty = %v, %v", empty, err)
	}
}

func TestTokenPort(t *testing.T) {
	p := TokenPort(map[string]string{"secret": "alice"})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer secret")
	uid, err := p.Parse(req)
	if err != nil || uid != "alice" {
		t.Fatalf("uid = %q, err = %v", uid, err)
	}

	req.Header.Set("Authorization", "Bearer nope")
	if _, err := p.Parse(req); err == nil {
		t.Fatal("unknown token accepted")
	}
}
