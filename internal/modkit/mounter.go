package modkit

import (
	"net/http"

	"scopegen/internal/modkit/httpkit"
	str "scopegen/internal/platform/strings"
)

// Mounter implements Module for a Built; API modules embed it
type Mounter struct {
	name    string
	prefix  string
	mw      []func(http.Handler) http.Handler
	exposed any
	routes  []func(httpkit.Router)
}

// NewMounter panics on a missing name or prefix so wiring mistakes fail at startup.
// own registers first, then anything attached through WithRegister.
func NewMounter(b Built, exposed any, own func(httpkit.Router)) *Mounter {
	m := &Mounter{
		name:    str.MustString(b.Name, "module name"),
		prefix:  str.MustPrefix(b.Prefix),
		mw:      b.Mw,
		exposed: exposed,
	}
	for _, fn := range []func(httpkit.Router){own, b.Register} {
		if fn != nil {
			m.routes = append(m.routes, fn)
		}
	}
	return m
}

func (m *Mounter) Name() string   { return m.name }
func (m *Mounter) Prefix() string { return m.prefix }
func (m *Mounter) Ports() any     { return m.exposed }

func (m *Mounter) MountRoutes(r httpkit.Router) {
	httpkit.MountUnder(r, m.prefix, m.mw, func(sub httpkit.Router) {
		for _, fn := range m.routes {
			fn(sub)
		}
	})
}
