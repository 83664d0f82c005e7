// Package httpkit is the routing and handler surface modules build against.
// Modules import it rather than the platform http package.
package httpkit

import (
	"net/http"

	phttp "scopegen/internal/platform/net/http"
)

type (
	// Envelope is the response body every endpoint returns
	Envelope = phttp.Envelope

	Router = phttp.Router
)

func Created(data any) phttp.Response { return phttp.Created(data) }
func NoContent() phttp.Response       { return phttp.NoContent() }

// Call adapts fn to the envelope writer.
// fn may return a phttp.Response to choose the status; any other value is a 200.
func Call(fn func(*http.Request) (any, error)) phttp.Handler {
	return phttp.Handle(func(r *http.Request) phttp.Response {
		out, err := fn(r)
		if err != nil {
			return phttp.Error(err)
		}
		if resp, ok := out.(phttp.Response); ok {
			return resp
		}
		return phttp.OK(out)
	})
}
