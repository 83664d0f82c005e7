package middleware

import (
	"net/http"

	"scopegen/internal/platform/logger"
	pnet "scopegen/internal/platform/net"
)

// AuthPort resolves the owner of a request
type AuthPort interface {
	// Parse returns the user id for the request or an error
	Parse(r *http.Request) (userID string, err error)
}

// Auth is a no-op when p is nil. Otherwise it rejects requests the port cannot resolve
func Auth(p AuthPort, write func(w http.ResponseWriter, status int, body any)) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if p == nil {
				next.ServeHTTP(w, r)
				return
			}
			uid, err := p.Parse(r)
			if err != nil {
				status, body := pnet.Fail(err, pnet.RequestID(r.Context()))
				write(w, status, body)
				return
			}
			ctx := pnet.WithUser(r.Context(), uid)
			ctx = logger.WithRequest(ctx, pnet.RequestID(ctx), uid)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
