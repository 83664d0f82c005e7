package httpkit

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	perrs "scopegen/internal/platform/errors"
)

// UUIDParam parses a route parameter; a bad value is an invalid argument on that field
func UUIDParam(r *http.Request, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(chi.URLParam(r, name)))
	if err != nil {
		return uuid.Nil, perrs.WithField(perrs.InvalidArgf("%s must be a uuid", name), name)
	}
	return id, nil
}

// QueryInt reads an integer query value, def when absent or malformed
func QueryInt(r *http.Request, name string, def int) int {
	n, err := strconv.Atoi(strings.TrimSpace(r.URL.Query().Get(name)))
	if err != nil {
		return def
	}
	return n
}
