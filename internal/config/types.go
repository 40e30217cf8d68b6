package config

// Config is the file-backed tuning config.
//
// Secrets never live here: tokens and the destination chat come from the
// environment (see Credentials). The file only carries operational knobs, so
// the daemon runs fine without one — missing file means all defaults.
//
// All durations are Go duration strings (e.g. "500ms", "10s", "1m").
type Config struct {
	Logging  LoggingConfig  `json:"logging"`
	Notifier NotifierConfig `json:"notifier"`
	Poll     PollConfig     `json:"poll"`
}

type LoggingConfig struct {
	Level   string      `json:"level,omitempty"`
	Console *bool       `json:"console,omitempty"`
	File    LoggingFile `json:"file"`
}

type LoggingFile struct {
	Enabled bool   `json:"enabled"`
	Path    string `json:"path,omitempty"`
}

// NotifierConfig controls Telegram delivery pacing.
type NotifierConfig struct {
	RatePerSec int `json:"rate_per_sec,omitempty"`
}

// PollConfig controls the review-API poll loop.
//
// Schedule accepts either a Go duration ("10m") or a cron expression
// ("*/10 * * * *", "@hourly"); an explicit "cron:" prefix forces cron parsing.
type PollConfig struct {
	Endpoint string `json:"endpoint,omitempty"`
	Schedule string `json:"schedule,omitempty"`

	// RequestTimeout bounds a single review-API call.
	RequestTimeout string `json:"request_timeout,omitempty"`

	// Lookback sets the initial cursor to now-Lookback on startup.
	Lookback string `json:"lookback,omitempty"`
}

const (
	defaultEndpoint       = "https://practicum.yandex.ru/api/user_api/homework_statuses/"
	defaultSchedule       = "10m"
	defaultRequestTimeout = "15s"
	defaultLookback       = "720h" // 30 days
	defaultRatePerSec     = 3
)

// Default returns the config used when no config file exists.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

func (c *Config) applyDefaults() {
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Console == nil {
		t := true
		c.Logging.Console = &t
	}
	if c.Notifier.RatePerSec <= 0 {
		c.Notifier.RatePerSec = defaultRatePerSec
	}
	if c.Poll.Endpoint == "" {
		c.Poll.Endpoint = defaultEndpoint
	}
	if c.Poll.Schedule == "" {
		c.Poll.Schedule = defaultSchedule
	}
	if c.Poll.RequestTimeout == "" {
		c.Poll.RequestTimeout = defaultRequestTimeout
	}
	if c.Poll.Lookback == "" {
		c.Poll.Lookback = defaultLookback
	}
}
