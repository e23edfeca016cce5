package config

import (
	"fmt"
	"os"
	"strings"
	"time"
)

type Config struct {
	HTTPAddr    string
	GRPCAddr    string
	RedisAddr   string // empty selects the in-memory session store
	SessionTTL  time.Duration
	NoticeDelay time.Duration
	LogLevel    string
}

// Load reads the configuration from the environment.
func Load() (Config, error) {
	return load(os.Getenv)
}

func load(getenv func(string) string) (Config, error) {
	get := func(key, fallback string) string {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			return v
		}
		return fallback
	}

	ttl, err := time.ParseDuration(get("SESSION_TTL", "2h"))
	if err != nil {
		return Config{}, fmt.Errorf("SESSION_TTL: %w", err)
	}
	delay, err := time.ParseDuration(get("NOTICE_DELAY", "500ms"))
	if err != nil {
		return Config{}, fmt.Errorf("NOTICE_DELAY: %w", err)
	}
	if ttl < 0 || delay < 0 {
		return Config{}, fmt.Errorf("durations must not be negative")
	}

	return Config{
		HTTPAddr:    get("HTTP_ADDR", ":8080"),
		GRPCAddr:    get("GRPC_ADDR", ":50051"),
		RedisAddr:   get("REDIS_ADDR", ""),
		SessionTTL:  ttl,
		NoticeDelay: delay,
		LogLevel:    get("LOG_LEVEL", "info"),
	}, nil
}
