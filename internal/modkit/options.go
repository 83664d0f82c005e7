package modkit

import (
	"net/http"
	"slices"

	"scopegen/internal/modkit/httpkit"
)

// Option adjusts how a module is built
type Option func(*Built)

// Built is the result of applying options
type Built struct {
	Name   string
	Prefix string
	Mw     []func(http.Handler) http.Handler
	// Ports is whatever WithPorts injected; the receiving module asserts its own type
	Ports any
	// Register attaches routes owned by another module under this module's prefix
	Register func(httpkit.Router)
}

func WithName(name string) Option     { return func(b *Built) { b.Name = name } }
func WithPrefix(prefix string) Option { return func(b *Built) { b.Prefix = prefix } }

// WithMiddlewares appends mw; it only wraps this module's subtree
func WithMiddlewares(mw ...func(http.Handler) http.Handler) Option {
	return func(b *Built) { b.Mw = append(b.Mw, mw...) }
}

func WithPorts[T any](p T) Option { return func(b *Built) { b.Ports = p } }

// WithRegister chains fn after any register set earlier
func WithRegister(fn func(httpkit.Router)) Option {
	return func(b *Built) {
		prev := b.Register
		b.Register = func(r httpkit.Router) {
			if prev != nil {
				prev(r)
			}
			fn(r)
		}
	}
}

// Build applies opts in order; later options win except middleware and register, which accumulate
func Build(opts ...Option) Built {
	var b Built
	for _, o := range opts {
		o(&b)
	}
	b.Mw = slices.Clone(b.Mw)
	return b
}
