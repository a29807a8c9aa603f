package config

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// Config aggregates application configuration loaded from environment
// variables. It is passed explicitly into constructors; no package
// holds mutable global configuration.
type Config struct {
	Env      string
	HTTPAddr string

	// Document store. An empty MongoURI is a structural absence: the
	// service starts directly in fallback mode.
	MongoURI         string
	MongoDB          string
	CollectionPrefix string

	// Optional event broker; empty disables publishing.
	KafkaBrokers []string
	KafkaTopic   string

	// Notification dispatch; empty API key selects the log simulator.
	SendGridAPIKey    string
	SendGridFromEmail string
	SendGridFromName  string

	// Admin accounts and sessions.
	AdminEmail        string
	AdminPasswordHash string
	SessionTTL        time.Duration

	// Weekly summary cron expression; empty disables the job.
	SummarySchedule string

	// Simulated round-trip for fallback-mode mutations.
	FallbackDelay time.Duration
}

// Load parses configuration from the current environment. On error the
// partially populated config is still returned so the caller can run a
// degraded session from whatever did parse.
func Load() (Config, error) {
	cfg := Config{
		Env:               getEnv("APP_ENV", "dev"),
		HTTPAddr:          getEnv("HTTP_ADDR", ":8080"),
		MongoURI:          os.Getenv("MONGO_URI"),
		MongoDB:           getEnv("MONGO_DB", "archatara"),
		CollectionPrefix:  os.Getenv("COLLECTION_PREFIX"),
		KafkaTopic:        getEnv("KAFKA_TOPIC", "archatara.reservations"),
		SendGridAPIKey:    os.Getenv("SENDGRID_API_KEY"),
		SendGridFromEmail: getEnv("SENDGRID_FROM_EMAIL", "no-reply@archatara.com"),
		SendGridFromName:  getEnv("SENDGRID_FROM_NAME", "ArchaTara Riverside"),
		AdminEmail:        getEnv("ADMIN_EMAIL", "admin@archatara.com"),
		AdminPasswordHash: os.Getenv("ADMIN_PASSWORD_HASH"),
		SummarySchedule:   getEnv("SUMMARY_SCHEDULE", "0 9 * * 1"),
	}
	if brokers := os.Getenv("KAFKA_BROKERS"); brokers != "" {
		for _, b := range strings.Split(brokers, ",") {
			if b = strings.TrimSpace(b); b != "" {
				cfg.KafkaBrokers = append(cfg.KafkaBrokers, b)
			}
		}
	}

	ttl, err := parseDurationEnv("SESSION_TTL", 12*time.Hour)
	if err != nil {
		return cfg, err
	}
	cfg.SessionTTL = ttl

	delay, err := parseDurationEnv("FALLBACK_DELAY", 0)
	if err != nil {
		return cfg, err
	}
	cfg.FallbackDelay = delay

	if cfg.AdminPasswordHash == "" {
		return cfg, fmt.Errorf("ADMIN_PASSWORD_HASH is not set")
	}
	return cfg, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func parseDurationEnv(key string, def time.Duration) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return def, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s duration: %w", key, err)
	}
	return d, nil
}
