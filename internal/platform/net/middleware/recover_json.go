package middleware

import (
	"net/http"
	"runtime/debug"

	perr "scopegen/internal/platform/errors"
	"scopegen/internal/platform/logger"
	pnet "scopegen/internal/platform/net"
)

// RecoverJSON turns a panic into a 500 envelope and logs the stack.
// http.ErrAbortHandler is re-raised so the server can abort the connection.
func RecoverJSON(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			v := recover()
			if v == nil {
				return
			}
			if v == http.ErrAbortHandler {
				panic(v)
			}
			reqID := pnet.RequestID(r.Context())
			logger.C(r.Context()).Error().
				Str("request_id", reqID).
				Interface("panic", v).
				Bytes("stack", debug.Stack()).
				Msg("panic recovered")

			if reqID != "" {
				w.Header().Set("X-Request-ID", reqID)
			}
			status, body := pnet.Fail(perr.PanicErrf("internal error"), reqID)
			pnet.WriteJSON(w, status, body)
		}()
		next.ServeHTTP(w, r)
	})
}
