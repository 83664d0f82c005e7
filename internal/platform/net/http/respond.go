// Package http holds the chi backed router, the server and the return style handler adapter
package http

import (
	stdhttp "net/http"

	pnet "scopegen/internal/platform/net"
)

// Envelope is re-exported for swagger annotations
type Envelope = pnet.Envelope

// JSON writes v as application/json
func JSON(w stdhttp.ResponseWriter, status int, v any) { pnet.WriteJSON(w, status, v) }

// Response is what return style handlers produce; an error Body picks its own status
type Response struct {
	Status int
	Body   any
}

func OK(data any) Response      { return Response{Status: stdhttp.StatusOK, Body: data} }
func Created(data any) Response { return Response{Status: stdhttp.StatusCreated, Body: data} }
func NoContent() Response       { return Response{Status: stdhttp.StatusNoContent} }
func Error(err error) Response  { return Response{Body: err} }

// Handle adapts a return style handler to net/http
func Handle(h func(r *stdhttp.Request) Response) stdhttp.HandlerFunc {
	return func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
		h(r).write(w, r)
	}
}

func (resp Response) write(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	reqID := pnet.RequestID(r.Context())
	if err, ok := resp.Body.(error); ok && err != nil {
		status, env := pnet.Fail(err, reqID)
		JSON(w, status, env)
		return
	}

	status := resp.Status
	switch status {
	case 0:
		status = stdhttp.StatusOK
	case stdhttp.StatusNoContent:
		w.WriteHeader(status)
		return
	}
	JSON(w, status, pnet.Reply(status, resp.Body, reqID))
}
