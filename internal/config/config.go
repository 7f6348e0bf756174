package config

import (
	"os"
	"strconv"
	"time"

	"github.com/pkg/errors"
)

// Config holds server configuration, loaded from the environment.
type Config struct {
	Port string

	// Debounce window applied to text-surface edits.
	Debounce time.Duration
	// How long a navigation highlight stays visible.
	HighlightDuration time.Duration

	// Upload limit for serialize/preview payloads.
	MaxBodyBytes int64

	Debug bool
}

// Load reads configuration from environment variables with defaults.
func Load() Config {
	return Config{
		Port:              envOr("PORT", "8086"),
		Debounce:          envDurationMS("DEBOUNCE_MS", 300*time.Millisecond),
		HighlightDuration: envDurationMS("HIGHLIGHT_MS", 2000*time.Millisecond),
		MaxBodyBytes:      envInt64("MAX_BODY_BYTES", 4<<20),
		Debug:             os.Getenv("DEBUG") == "1" || os.Getenv("DEBUG") == "true",
	}
}

// Validate checks the loaded values.
func (c Config) Validate() error {
	if c.Port == "" {
		return errors.New("port must not be empty")
	}
	if _, err := strconv.Atoi(c.Port); err != nil {
		return errors.Wrapf(err, "invalid port %q", c.Port)
	}
	if c.Debounce <= 0 {
		return errors.New("debounce must be positive")
	}
	if c.HighlightDuration <= 0 {
		return errors.New("highlight duration must be positive")
	}
	if c.MaxBodyBytes <= 0 {
		return errors.New("max body bytes must be positive")
	}
	return nil
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envDurationMS(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	ms, err := strconv.Atoi(v)
	if err != nil || ms <= 0 {
		return def
	}
	return time.Duration(ms) * time.Millisecond
}

func envInt64(key string, def int64) int64 {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil || n <= 0 {
		return def
	}
	return n
}
