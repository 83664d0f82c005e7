package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// chiRouter adapts a chi router, root or nested, to Router
type chiRouter struct{ r chi.Router }

// AdaptChi wraps m so modules can mount without importing chi
func AdaptChi(m *chi.Mux) Router { return chiRouter{r: m} }

func (c chiRouter) Get(p string, h Handler)    { c.r.Get(p, h) }
func (c chiRouter) Post(p string, h Handler)   { c.r.Post(p, h) }
func (c chiRouter) Patch(p string, h Handler)  { c.r.Patch(p, h) }
func (c chiRouter) Delete(p string, h Handler) { c.r.Delete(p, h) }

func (c chiRouter) Handle(p string, h http.Handler)           { c.r.Handle(p, h) }
func (c chiRouter) Use(mw ...func(http.Handler) http.Handler) { c.r.Use(mw...) }
func (c chiRouter) Mux() http.Handler                         { return c.r }

func (c chiRouter) Group(fn func(Router)) {
	c.r.Group(func(sub chi.Router) { fn(chiRouter{r: sub}) })
}

func (c chiRouter) Route(pattern string, fn func(Router)) {
	c.r.Route(pattern, func(sub chi.Router) { fn(chiRouter{r: sub}) })
}
