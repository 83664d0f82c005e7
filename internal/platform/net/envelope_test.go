package net_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	perr "scopegen/internal/platform/errors"
	pnet "scopegen/internal/platform/net"
)

func TestReply(t *testing.T) {
	env := pnet.Reply(http.StatusCreated, map[string]int{"version": 2}, "rid-1")
	if env.StatusCode != 201 || env.Status != "Created" || env.RequestID != "rid-1" || env.Error != "" {
		t.Fatalf("env = %+v", env)
	}
}

func TestFail(t *testing.T) {
	err := perr.WithDetails(perr.Generationf("backend output failed validation"), []string{"goals: required"})
	status, env := pnet.Fail(err, "rid-2")
	if status != http.StatusBadGateway || env.StatusCode != status || env.Code != perr.ErrorCodeGeneration {
		t.Fatalf("status=%d env=%+v", status, env)
	}
	if env.Error != "backend output failed validation" || env.Data == nil {
		t.Fatalf("env = %+v", env)
	}

	status, env = pnet.Fail(perr.ErrNotFound, "")
	if status != http.StatusNotFound || env.Data != nil {
		t.Fatalf("not found = %d %+v", status, env)
	}
}

func TestWriteJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	pnet.WriteJSON(rec, http.StatusAccepted, pnet.Reply(http.StatusAccepted, "queued", ""))

	if rec.Code != http.StatusAccepted || rec.Header().Get("Content-Type") != "application/json; charset=utf-8" {
		t.Fatalf("code=%d headers=%v", rec.Code, rec.Header())
	}
	var got map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got["data"] != "queued" {
		t.Fatalf("body = %v", got)
	}
	if _, ok := got["request_id"]; ok {
		t.Fatal("empty request id should be omitted")
	}
}
