// Package middleware holds the request middleware the API stacks, over chi's where one exists
package middleware

import (
	"net/http"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"

	"scopegen/internal/platform/logger"
)

// AccessLogOptions tunes AccessLogZerolog
type AccessLogOptions struct {
	// Slow logs requests at or above it as warnings, 0 disables
	Slow time.Duration
}

// AccessLogZerolog writes one line per request through the request scoped logger
func AccessLogZerolog(opt AccessLogOptions) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			elapsed := time.Since(start)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			log := logger.C(r.Context())
			ev := log.Info()
			if opt.Slow > 0 && elapsed >= opt.Slow {
				ev = log.Warn()
			}
			ev.Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", status).
				Int("bytes", ww.BytesWritten()).
				Dur("elapsed", elapsed).
				Msg("request done")
		})
	}
}
