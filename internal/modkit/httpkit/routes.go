package httpkit

import "net/http"

// MountUnder routes prefix to mount, with mw applied to that subtree only
func MountUnder(r Router, prefix string, mw []func(http.Handler) http.Handler, mount func(Router)) {
	r.Route(prefix, func(sub Router) {
		if len(mw) > 0 {
			sub.Use(mw...)
		}
		mount(sub)
	})
}

// MountAPIV1 is MountUnder at /api/v1
func MountAPIV1(r Router, mw []func(http.Handler) http.Handler, mount func(Router)) {
	MountUnder(r, "/api/v1", mw, mount)
}
