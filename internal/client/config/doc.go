// Package config loads runtime configuration for the finkeeper CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional config file selected via -c or -config. Files ending in
//     .yaml/.yml are read as YAML, everything else as JSON.
//  3. Command-line flags, which override earlier values.
//
// Supported flags
//
//	-a string   server base URL
//	-d string   local SQLite database path
//	-t int      request timeout (seconds)
//	-i int      online status check interval (seconds)
//	-l string   log level
//
// # File schema
//
//	{
//	  "server_base_url": "http://127.0.0.1:8080",
//	  "database_path": "finkeeper.db",
//	  "request_timeout": "10s",
//	  "online_check_interval": "3s",
//	  "log_level": "info",
//	  "log_format": "zap"
//	}
package config
