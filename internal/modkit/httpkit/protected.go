package httpkit

import (
	"net/http"
	"path"

	"scopegen/internal/modkit/swaggerkit"
	phttp "scopegen/internal/platform/net/http"
	"scopegen/internal/platform/net/middleware"
)

// Protected runs fn on a group behind bearer auth.
// Every route registered through it is marked as secured in the served swagger doc.
func Protected(r Router, p middleware.AuthPort, fn func(Router)) {
	r.Group(func(gr Router) {
		gr.Use(Auth(p))
		fn(&securedRouter{Router: gr, base: "/"})
	})
}

// securedRouter tracks the path prefix so swagger sees the full documented path
type securedRouter struct {
	Router
	base string
}

func (s *securedRouter) mark(method, p string) {
	swaggerkit.MarkSecurePath(path.Join(s.base, p), method)
}

func (s *securedRouter) Route(prefix string, fn func(Router)) {
	base := path.Join(s.base, prefix)
	s.Router.Route(prefix, func(sub Router) { fn(&securedRouter{Router: sub, base: base}) })
}

func (s *securedRouter) Group(fn func(Router)) {
	s.Router.Group(func(sub Router) { fn(&securedRouter{Router: sub, base: s.base}) })
}

func (s *securedRouter) Get(p string, h phttp.Handler) {
	s.mark(http.MethodGet, p)
	s.Router.Get(p, h)
}

func (s *securedRouter) Post(p string, h phttp.Handler) {
	s.mark(http.MethodPost, p)
	s.Router.Post(p, h)
}

func (s *securedRouter) Patch(p string, h phttp.Handler) {
	s.mark(http.MethodPatch, p)
	s.Router.Patch(p, h)
}

func (s *securedRouter) Delete(p string, h phttp.Handler) {
	s.mark(http.MethodDelete, p)
	s.Router.Delete(p, h)
}
