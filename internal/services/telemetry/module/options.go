package module

import (
	"time"

	"scopegen/internal/platform/config"
	"scopegen/internal/services/telemetry/repo"
)

// Options holds configuration settings for the telemetry module
type Options struct {
	Table        string
	WriteTimeout time.Duration
	AutoMigrate  bool
}

// FromConfig reads CORE_TELEMETRY_* settings
func FromConfig(cfg config.Conf) Options {
	tc := cfg.Prefix("CORE_TELEMETRY_")
	return Options{
		Table:        tc.MayString("TABLE", repo.DefaultTable),
		WriteTimeout: tc.MayDuration("WRITE_TIMEOUT", 5*time.Second),
		AutoMigrate:  tc.MayBool("AUTO_MIGRATE", true),
	}
}
