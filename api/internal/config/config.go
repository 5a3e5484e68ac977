package config

import (
	"log"
	"os"
	"time"
)

type Config struct {
	Port string

	TelegramBotToken string
	APIBaseURL       string

	DefaultLanguage string

	// Optional backends; empty disables the feature.
	RedisURL string
	CacheTTL time.Duration

	// Freshness window for the Postgres result cache.
	HistoryMaxAge time.Duration
}

func mustEnv(k string) string {
	v := os.Getenv(k)
	if v == "" {
		log.Fatalf("missing required env %s", k)
	}
	return v
}

func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getDuration(k string, def time.Duration) time.Duration {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Fatalf("bad duration in env %s: %v", k, err)
	}
	return d
}

func Load() *Config {
	return &Config{
		Port: getEnv("PORT", "8080"),

		TelegramBotToken: mustEnv("TELEGRAM_BOT_TOKEN"),
		APIBaseURL:       mustEnv("TRUTHGUARD_API_URL"),

		DefaultLanguage: getEnv("DEFAULT_LANGUAGE", "en"),

		RedisURL: os.Getenv("REDIS_URL"),
		CacheTTL: getDuration("CACHE_TTL", 30*time.Minute),

		HistoryMaxAge: getDuration("HISTORY_MAX_AGE", 24*time.Hour),
	}
}
