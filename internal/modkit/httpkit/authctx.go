package httpkit

import (
	"net/http"

	perrs "scopegen/internal/platform/errors"
	pnet "scopegen/internal/platform/net"
)

// User returns the authenticated user id from the request context
func User(r *http.Request) (string, error) {
	uid := pnet.UserID(r.Context())
	if uid == "" {
		return "", perrs.Unauthorizedf("missing bearer token")
	}
	return uid, nil
}
