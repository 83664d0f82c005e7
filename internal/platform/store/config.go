package store

import "time"

// Config lists the backends Open should bring up
type Config struct {
	// AppName shows up as application_name in pg_stat_activity
	AppName string

	PG PGConfig
	CH CHConfig
}

type PGConfig struct {
	Enabled  bool
	URL      string
	MaxConns int32

	// LogSQL logs every statement; SlowQuery promotes slow ones to warnings
	LogSQL    bool
	SlowQuery time.Duration

	ConnectRetries int           // 6 when zero
	PingTimeout    time.Duration // 5s when zero
}

type CHConfig struct {
	Enabled bool
	URL     string

	// Role and Tag are reported as client info, e.g. "api" and the build version
	Role string
	Tag  string
}
