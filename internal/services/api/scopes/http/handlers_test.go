package http

import (
	"context"
	"encoding/json"
	stdhttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"scopegen/internal/modkit/httpkit"
	perr "scopegen/internal/platform/errors"
	pnet "scopegen/internal/platform/net"
	phttp "scopegen/internal/platform/net/http"
	"scopegen/internal/services/api/scopes/domain"
)

// fakeSvc records what the handlers pass through
type fakeSvc struct {
	owner    string
	intakeID uuid.UUID
	patch    domain.PatchInput
	err      error
}

func (f *fakeSvc) Generate(_ context.Context, owner string, intakeID uuid.UUID) (domain.Record, error) {
	f.owner, f.intakeID = owner, intakeID
	return domain.Record{ID: uuid.NewString(), IntakeID: intakeID.String(), Version: 3, Status: domain.StatusGenerated}, f.err
}

func (f *fakeSvc) Get(_ context.Context, owner string, id uuid.UUID) (domain.Record, error) {
	f.owner = owner
	return domain.Record{ID: id.String()}, f.err
}

func (f *fakeSvc) ListForIntake(_ context.Context, owner string, intakeID uuid.UUID) (domain.ListOutput, error) {
	f.owner, f.intakeID = owner, intakeID
	return domain.ListOutput{IntakeID: intakeID.String(), Items: []domain.Record{}}, f.err
}

func (f *fakeSvc) Patch(_ context.Context, owner string, id uuid.UUID, in domain.PatchInput) (domain.Record, error) {
	f.owner, f.patch = owner, in
	return domain.Record{ID: id.String()}, f.err
}

func (f *fakeSvc) Delete(_ context.Context, owner string, _ uuid.UUID) error {
	f.owner = owner
	return f.err
}

// asUser injects an authenticated user like the auth middleware does
func asUser(uid string) func(stdhttp.Handler) stdhttp.Handler {
	return func(next stdhttp.Handler) stdhttp.Handler {
		return stdhttp.HandlerFunc(func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
			next.ServeHTTP(w, r.WithContext(pnet.WithUser(r.Context(), uid)))
		})
	}
}

func newRouter(s *fakeSvc, uid string) stdhttp.Handler {
	m := chi.NewRouter()
	root := phttp.AdaptChi(m)
	if uid != "" {
		root.Use(asUser(uid))
	}
	root.Route("/scopes", func(r httpkit.Router) { Register(r, s) })
	root.Route("/intakes", func(r httpkit.Router) { RegisterIntakeRoutes(r, s) })
	return m
}

func do(t *testing.T, h stdhttp.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *stdhttp.Request
	if body == "" {
		req = httptest.NewRequest(method, path, stdhttp.NoBody)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestGenerate_PathAndBodyRoutes(t *testing.T) {
	s := &fakeSvc{}
	h := newRouter(s, "u1")
	id := uuid.New()

	rec := do(t, h, stdhttp.MethodPost, "/intakes/"+id.String()+"/generate", "")
	if rec.Code != stdhttp.StatusCreated {
		t.Fatalf("status = %d body=%s", rec.Code, rec.Body)
	}
	if s.owner != "u1" || s.intakeID != id {
		t.Fatalf("service saw owner=%q intake=%s", s.owner, s.intakeID)
	}

	other := uuid.New()
	rec = do(t, h, stdhttp.MethodPost, "/scopes/generate", `{"intakeId":"`+other.String()+`"}`)
	if rec.Code != stdhttp.StatusCreated || s.intakeID != other {
		t.Fatalf("status = %d intake=%s", rec.Code, s.intakeID)
	}
}

func TestGenerate_BadInput(t *testing.T) {
	h := newRouter(&fakeSvc{}, "u1")

	if rec := do(t, h, stdhttp.MethodPost, "/scopes/generate", `{"intakeId":"nope"}`); rec.Code != stdhttp.StatusBadRequest {
		t.Fatalf("bad body status = %d", rec.Code)
	}
	if rec := do(t, h, stdhttp.MethodPost, "/intakes/nope/generate", ""); rec.Code != perr.HTTPStatusCode(perr.ErrorCodeInvalidArgument) {
		t.Fatalf("bad path status = %d", rec.Code)
	}
}

func TestGenerate_ErrorStatusFromService(t *testing.T) {
	s := &fakeSvc{err: perr.Generationf("backend output unusable")}
	rec := do(t, newRouter(s, "u1"), stdhttp.MethodPost, "/intakes/"+uuid.NewString()+"/generate", "")
	if rec.Code != stdhttp.StatusBadGateway {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestRoutes_RequireUser(t *testing.T) {
	rec := do(t, newRouter(&fakeSvc{}, ""), stdhttp.MethodGet, "/scopes/"+uuid.NewString(), "")
	if rec.Code != stdhttp.StatusUnauthorized {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestPatch_PassesEditAndStatus(t *testing.T) {
	s := &fakeSvc{}
	h := newRouter(s, "u1")

	rec := do(t, h, stdhttp.MethodPatch, "/scopes/"+uuid.NewString(), `{"editedJson":{"projectTitle":"x"},"status":"final"}`)
	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("status = %d body=%s", rec.Code, rec.Body)
	}
	if s.patch.Status == nil || *s.patch.Status != "final" {
		t.Fatalf("status not passed: %+v", s.patch)
	}
	var edit map[string]any
	if err := json.Unmarshal(s.patch.EditedJSON, &edit); err != nil || edit["projectTitle"] != "x" {
		t.Fatalf("edit = %s", s.patch.EditedJSON)
	}

	if rec := do(t, h, stdhttp.MethodPatch, "/scopes/"+uuid.NewString(), `{"status":"archived"}`); rec.Code != stdhttp.StatusBadRequest {
		t.Fatalf("unknown status code = %d", rec.Code)
	}
}

func TestListAndDelete(t *testing.T) {
	s := &fakeSvc{}
	h := newRouter(s, "u1")
	id := uuid.New()

	if rec := do(t, h, stdhttp.MethodGet, "/intakes/"+id.String()+"/scopes", ""); rec.Code != stdhttp.StatusOK || s.intakeID != id {
		t.Fatalf("list status = %d", rec.Code)
	}
	if rec := do(t, h, stdhttp.MethodDelete, "/scopes/"+uuid.NewString(), ""); rec.Code != stdhttp.StatusNoContent {
		t.Fatalf("delete status = %d", rec.Code)
	}
}
