package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// EnvPrefix prefixes every environment variable read by parseEnv.
const EnvPrefix = "FINKEEPER_"

// dotenvFile is loaded before the environment is read. Variables already
// set in the process environment take precedence over the file.
var dotenvFile = ".env"

// parseEnv overlays cfg with FINKEEPER_* environment variables.
func parseEnv(cfg *Config) error {
	if err := godotenv.Load(dotenvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load %s: %w", dotenvFile, err)
	}

	strs := map[string]*string{
		"ENDPOINT_ADDR":    &cfg.EndpointAddr,
		"DATABASE_DSN":     &cfg.DatabaseDSN,
		"SECRET_KEY":       &cfg.SecretKey,
		"S3_ROOT_USER":     &cfg.S3RootUser,
		"S3_ROOT_PASSWORD": &cfg.S3RootPassword,
		"S3_BUCKET":        &cfg.S3Bucket,
		"S3_REGION":        &cfg.S3Region,
		"S3_BASE_ENDPOINT": &cfg.S3BaseEndpoint,
		"AMQP_URL":         &cfg.AMQPURL,
		"AMQP_EXCHANGE":    &cfg.AMQPExchange,
		"AMQP_QUEUE":       &cfg.AMQPQueue,
		"LOG_LEVEL":        &cfg.LogLevel,
		"LOG_FORMAT":       &cfg.LogFormat,
	}
	for name, dst := range strs {
		if v, ok := os.LookupEnv(EnvPrefix + name); ok && v != "" {
			*dst = v
		}
	}

	if v, ok := os.LookupEnv(EnvPrefix + "ACCESS_TOKEN_VALIDITY"); ok && v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("parse %sACCESS_TOKEN_VALIDITY: %w", EnvPrefix, err)
		}
		cfg.AccessTokenValidityDuration = d
	}
	if v, ok := os.LookupEnv(EnvPrefix + "SHUTDOWN_TIMEOUT_SECONDS"); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("parse %sSHUTDOWN_TIMEOUT_SECONDS: %w", EnvPrefix, err)
		}
		cfg.ShutdownTimeout = time.Duration(n) * time.Second
	}
	return nil
}
