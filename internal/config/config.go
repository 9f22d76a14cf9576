// Package config loads server settings from environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Addr      string        // listen address, e.g. ":8080"
	JoinGrace time.Duration // how long a fresh connection has to send join-room
	ReadLimit int64         // max inbound frame size in bytes

	LogLevel  string // "debug", "info", "warn", "error"
	LogFormat string // "json" or "console"

	PingMessage string
}

func Default() Config {
	return Config{
		Addr:        ":8080",
		JoinGrace:   10 * time.Second,
		ReadLimit:   32 * 1024,
		LogLevel:    "info",
		LogFormat:   "json",
		PingMessage: "pong",
	}
}

// FromEnv builds a Config from environment variables, starting from Default.
// main is expected to have already run godotenv.Load.
func FromEnv() (Config, error) {
	cfg := Default()

	if v := os.Getenv("PORT"); v != "" {
		p, err := strconv.Atoi(v)
		if err != nil || p < 1 || p > 65535 {
			return cfg, fmt.Errorf("invalid PORT %q", v)
		}
		cfg.Addr = ":" + v
	}
	if v := os.Getenv("JOIN_GRACE"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			return cfg, fmt.Errorf("invalid JOIN_GRACE %q", v)
		}
		cfg.JoinGrace = d
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		switch v {
		case "debug", "info", "warn", "error":
			cfg.LogLevel = v
		default:
			return cfg, fmt.Errorf("invalid LOG_LEVEL %q", v)
		}
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		switch v {
		case "json", "console":
			cfg.LogFormat = v
		default:
			return cfg, fmt.Errorf("invalid LOG_FORMAT %q", v)
		}
	}
	if v := os.Getenv("PING_MESSAGE"); v != "" {
		cfg.PingMessage = v
	}
	return cfg, nil
}
