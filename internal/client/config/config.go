package config

import (
	"time"
)

// Config holds runtime settings for the finkeeper CLI.
type Config struct {
	// ServerBaseURL is the root of the finkeeper API, e.g. http://127.0.0.1:8080.
	ServerBaseURL string
	// DatabasePath is the SQLite file holding local data.
	DatabasePath string
	// RequestTimeout bounds every API request.
	RequestTimeout time.Duration
	// OnlineCheckInterval is how often the client probes server reachability.
	OnlineCheckInterval time.Duration

	LogLevel  string
	LogFormat string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerBaseURL = "http://127.0.0.1:8080"
	c.DatabasePath = "finkeeper.db"
	c.RequestTimeout = 10 * time.Second
	c.OnlineCheckInterval = 3 * time.Second
	c.LogLevel = "warn"
	c.LogFormat = "text"
}

// LoadConfig builds a Config from defaults, then the config file named by
// -c/-config (if any), then command-line flags. Later sources win.
func LoadConfig(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if err := parseFile(cfg, args); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	return cfg, nil
}
