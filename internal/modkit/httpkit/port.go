package httpkit

import (
	"net/http"
	"strings"

	perrs "scopegen/internal/platform/errors"
)

// TokenFunc resolves a bearer token to the owning user id
type TokenFunc func(token string) (userID string, err error)

// Port implements middleware.AuthPort over the Authorization header
type Port struct {
	parse TokenFunc
}

func NewPortFunc(fn TokenFunc) *Port { return &Port{parse: fn} }

// Parse accepts "Bearer <token>" with a case insensitive scheme.
// Every failure is the same unauthorized error so callers learn nothing about tokens.
func (p *Port) Parse(r *http.Request) (string, error) {
	scheme, token, _ := strings.Cut(strings.TrimSpace(r.Header.Get("Authorization")), " ")
	token = strings.TrimSpace(token)
	if !strings.EqualFold(scheme, "bearer") || token == "" {
		return "", perrs.Unauthorizedf("missing bearer token")
	}
	if p.parse == nil {
		return "", perrs.Unauthorizedf("invalid bearer token")
	}
	uid, err := p.parse(token)
	if err != nil || uid == "" {
		return "", perrs.Unauthorizedf("invalid bearer token")
	}
	return uid, nil
}
