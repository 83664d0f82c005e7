// Package config reads settings from the environment through prefixed views
//
// Must* readers panic through the logger when a required value is missing.
// May* readers fall back to a default and log a warning when a value does not parse.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"scopegen/internal/platform/logger"
)

// Conf is a view over environment variables that share a prefix such as "GENERATOR_"
type Conf struct{ prefix string }

// New returns the root view
func New() Conf { return Conf{} }

// Prefix returns a child view, prefixes nest
func (c Conf) Prefix(p string) Conf { return Conf{prefix: c.prefix + p} }

func (c Conf) key(k string) string { return c.prefix + k }

// lookup returns the full variable name and its trimmed value
func (c Conf) lookup(k string) (string, string) {
	name := c.key(k)
	return name, strings.TrimSpace(os.Getenv(name))
}

// MustString returns a required value
func (c Conf) MustString(key string) string {
	name, v := c.lookup(key)
	if v == "" {
		logger.Get().Panic().Str("key", name).Msg("missing required env")
	}
	return v
}

// MayString returns the value or def when unset
func (c Conf) MayString(key, def string) string {
	if _, v := c.lookup(key); v != "" {
		return v
	}
	return def
}

func mayParse[T any](c Conf, key string, def T, parse func(string) (T, error)) T {
	name, v := c.lookup(key)
	if v == "" {
		return def
	}
	out, err := parse(v)
	if err != nil {
		logger.Get().Warn().Str("key", name).Str("value", v).Interface("default", def).
			Msg("unparsable env value, using default")
		return def
	}
	return out
}

// MayInt returns the value or def when unset or not an integer
func (c Conf) MayInt(key string, def int) int { return mayParse(c, key, def, strconv.Atoi) }

// MayBool returns the value or def when unset or not a strconv bool
func (c Conf) MayBool(key string, def bool) bool { return mayParse(c, key, def, strconv.ParseBool) }

// MayDuration returns the value or def when unset or not a Go duration like 250ms or 2m
func (c Conf) MayDuration(key string, def time.Duration) time.Duration {
	return mayParse(c, key, def, time.ParseDuration)
}

// MayCSV splits a comma separated value, dropping blanks, and returns def when nothing is left
func (c Conf) MayCSV(key string, def []string) []string {
	_, v := c.lookup(key)
	var out []string
	for _, p := range strings.Split(v, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}

// MayEnum returns the value when it matches one of allowed (case-insensitively) or def when unset.
// A value outside allowed is a startup error and panics.
func (c Conf) MayEnum(key, def string, allowed ...string) string {
	v := c.MayString(key, def)
	if v == "" {
		return v
	}
	for _, a := range allowed {
		if strings.EqualFold(v, a) {
			return v
		}
	}
	logger.Get().Panic().Str("key", c.key(key)).Str("value", v).Strs("allowed", allowed).Msg("env value not in allowed set")
	return ""
}
