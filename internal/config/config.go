package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	ListenAddr string
	LogLevel   string

	DatabaseURL string
	SQLitePath  string

	SessionSecret []byte
	SessionTTL    time.Duration

	SignInPath     string
	DefaultLanding string

	KafkaBrokers []string
	AuditTopic   string

	ESURL         string
	ESUser        string
	ESPassword    string
	CustomerIndex string

	SeedAccounts bool
}

func Load() *Config {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Notice: .env file not found: %v. Using system environment variables", err)
	}

	cfg := &Config{
		ListenAddr: EnvDefault("PORTAL_ADDR", ":8080"),
		LogLevel:   EnvDefault("LOG_LEVEL", "info"),

		DatabaseURL: os.Getenv("DATABASE_URL"),
		SQLitePath:  EnvDefault("SQLITE_PATH", "portal.db"),

		SessionSecret: []byte(os.Getenv("SESSION_SECRET")),
		SessionTTL:    EnvDurationDefault("SESSION_TTL", time.Hour),

		SignInPath:     "/auth/signin",
		DefaultLanding: "/dashboard",

		KafkaBrokers: CSV(os.Getenv("KAFKA_BROKERS")),
		AuditTopic:   EnvDefault("AUDIT_TOPIC", "auth_events"),

		ESURL:         os.Getenv("ES_URL"),
		ESUser:        os.Getenv("ES_USER"),
		ESPassword:    os.Getenv("ES_PASSWORD"),
		CustomerIndex: EnvDefault("CUSTOMER_INDEX", "customers"),

		SeedAccounts: EnvBoolDefault("SEED_ACCOUNTS", true),
	}

	MustNonEmptyBytes(cfg.SessionSecret, "SESSION_SECRET")

	return cfg
}

func CSV(v string) []string {
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func EnvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func EnvBoolDefault(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

func EnvDurationDefault(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}
