// Package raw reads the environment during bootstrap, before the logger exists.
// It must not import the logger.
package raw

import (
	"os"
	"strconv"
	"strings"
)

// Conf is a prefixed view over environment variables
type Conf struct{ prefix string }

// New returns the root view
func New() Conf { return Conf{} }

// Prefix returns a child view
func (c Conf) Prefix(p string) Conf { return Conf{prefix: c.prefix + p} }

func (c Conf) value(key string) string { return strings.TrimSpace(os.Getenv(c.prefix + key)) }

// Get returns the value or def when unset
func (c Conf) Get(key, def string) string {
	if v := c.value(key); v != "" {
		return v
	}
	return def
}

// GetBool treats 1, true and yes as true and anything else set as false
func (c Conf) GetBool(key string, def bool) bool {
	switch strings.ToLower(c.value(key)) {
	case "":
		return def
	case "1", "true", "yes":
		return true
	default:
		return false
	}
}

// GetInt returns a non-negative integer or def when unset or not all digits
func (c Conf) GetInt(key string, def int) int {
	v := c.value(key)
	if v == "" || strings.TrimLeft(v, "0123456789") != "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}
