package raw

import "testing"

func TestReaders(t *testing.T) {
	log := New().Prefix("LOG_")
	t.Setenv("LOG_LEVEL", " warn ")
	t.Setenv("LOG_CALLER", "YES")
	t.Setenv("LOG_COLOR", "nope")
	t.Setenv("LOG_SAMPLE_EVERY", "10")
	t.Setenv("LOG_BAD_INT", "-3")

	if got := log.Get("LEVEL", "debug"); got != "warn" {
		t.Errorf("Get = %q", got)
	}
	if got := log.Get("FORMAT", "console"); got != "console" {
		t.Errorf("Get default = %q", got)
	}
	if !log.GetBool("CALLER", false) || log.GetBool("COLOR", true) || !log.GetBool("UNSET", true) {
		t.Error("GetBool mismatch")
	}
	if got := log.GetInt("SAMPLE_EVERY", 0); got != 10 {
		t.Errorf("GetInt = %d", got)
	}
	if got := log.GetInt("BAD_INT", 4); got != 4 {
		t.Errorf("GetInt with sign = %d, want default", got)
	}
	if got := New().Prefix("LOG_").Prefix("SAMPLE_").GetInt("EVERY", 1); got != 10 {
		t.Errorf("nested prefix = %d", got)
	}
}
