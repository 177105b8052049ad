package config

import "time"

// Config holds runtime settings for the gradebook CLI.
//
// Fields:
//   - BaseURL: API root of the backend, including the /api prefix.
//   - RequestTimeout: upper bound for a single HTTP request.
//   - SessionDBPath: SQLite file holding the session record; empty keeps the
//     session in memory only.
//   - LogLevel: debug, info, warn or error.
type Config struct {
	BaseURL        string        `env:"BASE_URL"`
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
	SessionDBPath  string        `env:"SESSION_DB"`
	LogLevel       string        `env:"LOG_LEVEL"`
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.BaseURL = "http://127.0.0.1:5000/api"
	c.RequestTimeout = 5000 * time.Millisecond
	c.SessionDBPath = "session.db"
	c.LogLevel = "info"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// the environment (and .env), JSON (if present) and command-line flags (if
// present). Later sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
