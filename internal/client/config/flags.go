package config

import (
	"flag"
	"fmt"
	"io"
	"time"

	"github.com/dmitrijs2005/finkeeper/internal/flagx"
)

// parseFlags populates Config fields from command-line flags:
//
//	-a string   server base URL
//	-d string   path to the local database
//	-t int      request timeout (seconds)
//	-i int      online check interval (seconds)
//	-l string   log level
//
// Unknown arguments are filtered out first, so other flag sets may share args.
func parseFlags(cfg *Config, args []string) error {
	args = flagx.FilterArgs(args, []string{"-a", "-d", "-t", "-i", "-l"})

	fs := flag.NewFlagSet("finkeeper", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.ServerBaseURL, "a", cfg.ServerBaseURL, "server base URL")
	fs.StringVar(&cfg.DatabasePath, "d", cfg.DatabasePath, "path to the local database")
	timeout := fs.Int("t", 0, "request timeout (in seconds)")
	interval := fs.Int("i", 0, "online check interval (in seconds)")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level (debug, info, warn, error)")

	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("parse flags: %w", err)
	}

	// Durations from the config file stay untouched unless the flag was given.
	var err error
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "t":
			if *timeout <= 0 {
				err = fmt.Errorf("parse flags: timeout must be positive")
			}
			cfg.RequestTimeout = time.Duration(*timeout) * time.Second
		case "i":
			if *interval <= 0 {
				err = fmt.Errorf("parse flags: interval must be positive")
			}
			cfg.OnlineCheckInterval = time.Duration(*interval) * time.Second
		}
	})
	return err
}
