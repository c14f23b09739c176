package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/finkeeper/internal/flagx"
	"github.com/dmitrijs2005/finkeeper/internal/timex"
	"gopkg.in/yaml.v3"
)

// fileConfig is the on-disk shape shared by JSON and YAML files. Durations
// may be strings like "3s" or integer nanoseconds.
type fileConfig struct {
	ServerBaseURL       string         `json:"server_base_url" yaml:"server_base_url"`
	DatabasePath        string         `json:"database_path" yaml:"database_path"`
	RequestTimeout      timex.Duration `json:"request_timeout" yaml:"request_timeout"`
	OnlineCheckInterval timex.Duration `json:"online_check_interval" yaml:"online_check_interval"`
	LogLevel            string         `json:"log_level" yaml:"log_level"`
	LogFormat           string         `json:"log_format" yaml:"log_format"`
}

// parseFile overlays cfg with the non-empty values of the config file given
// by -c/-config. Without that flag it does nothing.
func parseFile(cfg *Config, args []string) error {
	path := flagx.ConfigFileFlag(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}

	var fc fileConfig
	switch flagx.ConfigFileFormat(path) {
	case flagx.FormatYAML:
		err = yaml.Unmarshal(data, &fc)
	default:
		err = json.Unmarshal(data, &fc)
	}
	if err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}

	if fc.ServerBaseURL != "" {
		cfg.ServerBaseURL = fc.ServerBaseURL
	}
	if fc.DatabasePath != "" {
		cfg.DatabasePath = fc.DatabasePath
	}
	if fc.RequestTimeout.Duration > 0 {
		cfg.RequestTimeout = fc.RequestTimeout.Duration
	}
	if fc.OnlineCheckInterval.Duration > 0 {
		cfg.OnlineCheckInterval = fc.OnlineCheckInterval.Duration
	}
	if fc.LogLevel != "" {
		cfg.LogLevel = fc.LogLevel
	}
	if fc.LogFormat != "" {
		cfg.LogFormat = fc.LogFormat
	}
	return nil
}
