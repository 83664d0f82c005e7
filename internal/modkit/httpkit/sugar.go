package httpkit

import "net/http"

// handlers read their own body via bind.ParseJSON, so every verb goes through Call

// Get registers a handler under GET using the envelope adapter
func Get(r Router, path string, h func(*http.Request) (any, error)) {
	r.Get(path, Call(h))
}

// Post registers a handler under POST using the envelope adapter
func Post(r Router, path string, h func(*http.Request) (any, error)) {
	r.Post(path, Call(h))
}

// Patch registers a handler under PATCH using the envelope adapter
func Patch(r Router, path string, h func(*http.Request) (any, error)) {
	r.Patch(path, Call(h))
}

// Delete registers a handler under DELETE using the envelope adapter
func Delete(r Router, path string, h func(*http.Request) (any, error)) {
	r.Delete(path, Call(h))
}
