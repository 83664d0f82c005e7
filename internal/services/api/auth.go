package api

import (
	"crypto/subtle"
	"fmt"
	"strings"

	"scopegen/internal/modkit/httpkit"
	perr "scopegen/internal/platform/errors"
)

// ParseTokens reads "token:user,token:user" into a token table
func ParseTokens(csv string) (map[string]string, error) {
	out := map[string]string{}
	for _, part := range strings.Split(csv, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		tok, user, ok := strings.Cut(part, ":")
		tok, user = strings.TrimSpace(tok), strings.TrimSpace(user)
		if !ok || tok == "" || user == "" {
			return nil, fmt.Errorf("auth token entry %q: want token:user", part)
		}
		if _, dup := out[tok]; dup {
			return nil, fmt.Errorf("auth token for %q listed twice", user)
		}
		out[tok] = user
	}
	return out, nil
}

// TokenPort resolves bearer tokens to owners from a fixed table
func TokenPort(tokens map[string]string) *httpkit.Port {
	return httpkit.NewPortFunc(func(raw string) (string, error) {
		for tok, user := range tokens {
			if subtle.ConstantTimeCompare([]byte(tok), []byte(raw)) == 1 {
				return user, nil
			}
		}
		return "", perr.Unauthorizedf("unknown token")
	})
}
