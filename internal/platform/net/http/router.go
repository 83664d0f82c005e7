package http

import "net/http"

// Handler is the handler type routes register
type Handler = func(http.ResponseWriter, *http.Request)

// Router is the routing surface modules mount against.
// Only the verbs the API serves are exposed.
type Router interface {
	Get(path string, h Handler)
	Post(path string, h Handler)
	Patch(path string, h Handler)
	Delete(path string, h Handler)

	Handle(path string, h http.Handler)
	Use(mw ...func(http.Handler) http.Handler)
	Group(fn func(Router))
	Route(pattern string, fn func(Router))

	// Mux is the underlying handler to serve
	Mux() http.Handler
}
