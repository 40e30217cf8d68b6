package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestParseYAMLConfig(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, "config.yaml", `
logging:
  level: debug
  console: false
poll:
  schedule: "5m"
  request_timeout: "3s"
notifier:
  rate_per_sec: 1
`)

	cfg, err := NewManager(path).Parse()
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if cfg.Logging.Level != "debug" {
		t.Fatalf("Logging.Level = %q, want %q", cfg.Logging.Level, "debug")
	}
	if cfg.Logging.Console == nil || *cfg.Logging.Console {
		t.Fatal("Logging.Console: want explicit false")
	}
	if cfg.Poll.Schedule != "5m" {
		t.Fatalf("Poll.Schedule = %q, want %q", cfg.Poll.Schedule, "5m")
	}
	if cfg.Notifier.RatePerSec != 1 {
		t.Fatalf("Notifier.RatePerSec = %d, want 1", cfg.Notifier.RatePerSec)
	}
	// Unset fields still get defaults.
	if cfg.Poll.Endpoint != defaultEndpoint {
		t.Fatalf("Poll.Endpoint = %q, want default", cfg.Poll.Endpoint)
	}
	if cfg.Poll.Lookback != defaultLookback {
		t.Fatalf("Poll.Lookback = %q, want default", cfg.Poll.Lookback)
	}
}

func TestParseRejectsUnknownKeys(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, "config.json", `{"pol": {"schedule": "5m"}}`)
	if _, err := NewManager(path).Parse(); err == nil {
		t.Fatal("expected error for unknown key")
	}
}

func TestParseMissingFileFallsBackToDefaults(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "does-not-exist.yaml")
	cfg, err := NewManager(path).Parse()
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if cfg.Poll.Schedule != defaultSchedule {
		t.Fatalf("Poll.Schedule = %q, want %q", cfg.Poll.Schedule, defaultSchedule)
	}
	if cfg.Notifier.RatePerSec != defaultRatePerSec {
		t.Fatalf("Notifier.RatePerSec = %d, want %d", cfg.Notifier.RatePerSec, defaultRatePerSec)
	}
	if cfg.Logging.Console == nil || !*cfg.Logging.Console {
		t.Fatal("Logging.Console default: want true")
	}
}

func TestReloadPublishesChanges(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, "config.yaml", "poll:\n  schedule: \"10m\"\n")
	m := NewManager(path)
	if _, err := m.Load(); err != nil {
		t.Fatalf("Load error: %v", err)
	}

	sub := m.Subscribe(1)
	defer m.Unsubscribe(sub)

	if err := os.WriteFile(path, []byte("poll:\n  schedule: \"5m\"\n"), 0o644); err != nil {
		t.Fatalf("rewrite config: %v", err)
	}
	m.reloadOnce()

	select {
	case cfg := <-sub:
		if cfg.Poll.Schedule != "5m" {
			t.Fatalf("published Poll.Schedule = %q, want %q", cfg.Poll.Schedule, "5m")
		}
	default:
		t.Fatal("expected a published config after reload")
	}
	if got := m.Get().Poll.Schedule; got != "5m" {
		t.Fatalf("Get().Poll.Schedule = %q, want %q", got, "5m")
	}

	// Unchanged content must not publish again.
	m.reloadOnce()
	select {
	case <-sub:
		t.Fatal("unchanged config was published")
	default:
	}
}

func TestReloadKeepsPreviousOnParseError(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, "config.yaml", "poll:\n  schedule: \"10m\"\n")
	m := NewManager(path)
	if _, err := m.Load(); err != nil {
		t.Fatalf("Load error: %v", err)
	}

	sub := m.Subscribe(1)
	defer m.Unsubscribe(sub)

	if err := os.WriteFile(path, []byte("poll: [broken\n"), 0o644); err != nil {
		t.Fatalf("rewrite config: %v", err)
	}
	m.reloadOnce()

	select {
	case <-sub:
		t.Fatal("broken config was published")
	default:
	}
	if got := m.Get().Poll.Schedule; got != "10m" {
		t.Fatalf("Get().Poll.Schedule = %q, want previous %q", got, "10m")
	}
}

func TestParseDurationFields(t *testing.T) {
	t.Parallel()

	if d, err := ParseDurationField("x", "90s"); err != nil || d != 90*time.Second {
		t.Fatalf("ParseDurationField = (%v, %v), want 90s", d, err)
	}
	if d, err := ParseDurationField("x", ""); err != nil || d != 0 {
		t.Fatalf("empty duration = (%v, %v), want 0", d, err)
	}
	if _, err := ParseDurationField("x", "soon"); err == nil || !strings.Contains(err.Error(), "x:") {
		t.Fatalf("expected path-prefixed error, got %v", err)
	}
	if _, err := ParseDurationField("x", "-5s"); err == nil {
		t.Fatal("expected error for negative duration")
	}
	if d, err := ParseDurationOrDefault("x", "", 7*time.Second); err != nil || d != 7*time.Second {
		t.Fatalf("ParseDurationOrDefault = (%v, %v), want default 7s", d, err)
	}
}
