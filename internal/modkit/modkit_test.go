package modkit

import (
	"net/http"
	"net/http/httptest"
	"slices"
	"testing"

	"github.com/go-chi/chi/v5"

	"scopegen/internal/modkit/httpkit"
	phttp "scopegen/internal/platform/net/http"
	"scopegen/internal/platform/testkit"
)

func header(k, v string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Add(k, v)
			next.ServeHTTP(w, r)
		})
	}
}

func TestBuild(t *testing.T) {
	var order []string
	src := []func(http.Handler) http.Handler{header("X-A", "1")}
	b := Build(
		WithName("first"), WithName("intakes"),
		WithPrefix("/intakes"),
		WithMiddlewares(src...),
		WithMiddlewares(header("X-B", "2")),
		WithPorts(42),
		WithRegister(func(httpkit.Router) { order = append(order, "a") }),
		WithRegister(func(httpkit.Router) { order = append(order, "b") }),
	)
	if b.Name != "intakes" || b.Prefix != "/intakes" || b.Ports != 42 || len(b.Mw) != 2 {
		t.Fatalf("built = %+v", b)
	}
	src[0] = nil
	if b.Mw[0] == nil {
		t.Fatal("middleware slice aliases the caller's")
	}
	b.Register(nil)
	if !slices.Equal(order, []string{"a", "b"}) {
		t.Fatalf("register order = %v", order)
	}

	if empty := Build(); empty.Register != nil || empty.Ports != nil || len(empty.Mw) != 0 {
		t.Fatalf("zero build = %+v", empty)
	}
}

func TestMounter(t *testing.T) {
	b := Build(
		WithName("intakes"),
		WithPrefix(" intakes/ "),
		WithMiddlewares(header("X-Module", "intakes")),
		WithRegister(func(r httpkit.Router) {
			httpkit.Get(r, "/extra", func(*http.Request) (any, error) { return "extra", nil })
		}),
	)
	m := NewMounter(b, "exposed", func(r httpkit.Router) {
		httpkit.Get(r, "/", func(*http.Request) (any, error) { return "own", nil })
	})
	if m.Name() != "intakes" || m.Prefix() != "/intakes" || m.Ports() != "exposed" {
		t.Fatalf("mounter = %s %s %v", m.Name(), m.Prefix(), m.Ports())
	}

	mux := chi.NewRouter()
	m.MountRoutes(phttp.AdaptChi(mux))
	for _, p := range []string{"/intakes", "/intakes/extra"} {
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, p, nil))
		if rec.Code != http.StatusOK || rec.Header().Get("X-Module") != "intakes" {
			t.Fatalf("%s: %d %v", p, rec.Code, rec.Header())
		}
	}
}

func TestNewMounter_RequiresNameAndPrefix(t *testing.T) {
	testkit.MustPanic(t, func() { NewMounter(Build(WithPrefix("/x")), nil, nil) })
	testkit.MustPanic(t, func() { NewMounter(Build(WithName("x"), WithPrefix(" / ")), nil, nil) })
}
