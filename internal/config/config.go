package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	// Database
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// JWT (tokens are minted by the auth service, we only verify)
	JWTSecret string

	// Admin
	AdminEmails  string
	AdminUserIDs string
	AdminToken   string

	// Server
	Port        string
	CORSOrigins string

	// Moderation business windows. These are policy, not tuning knobs:
	// the reversal window bounds how late an admin can undo a removal,
	// the notify delay batches reporter-facing notices.
	ReversalWindow      time.Duration
	ReporterNotifyDelay time.Duration

	// Reporter notification scheduler
	NotifyInterval  time.Duration
	NotifyBatchSize int
}

func Load() *Config {
	return &Config{
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBName:     getEnv("DB_NAME", "socialnet_db"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		JWTSecret: getEnv("JWT_SECRET", ""),

		AdminEmails:  getEnv("ADMIN_EMAILS", ""),
		AdminUserIDs: getEnv("ADMIN_USER_IDS", ""),
		AdminToken:   getEnv("ADMIN_TOKEN", ""),

		Port:        getEnv("PORT", "8080"),
		CORSOrigins: getEnv("CORS_ORIGINS", "*"),

		ReversalWindow:      parseDuration(getEnv("REVERSAL_WINDOW", "720h"), 720*time.Hour),
		ReporterNotifyDelay: parseDuration(getEnv("REPORTER_NOTIFY_DELAY", "600h"), 600*time.Hour),

		NotifyInterval:  parseDuration(getEnv("NOTIFY_SCHEDULER_INTERVAL", "10m"), 10*time.Minute),
		NotifyBatchSize: parseInt(getEnv("NOTIFY_BATCH_SIZE", "100"), 100),
	}
}

func (c *Config) DSN() string {
	return "host=" + c.DBHost +
		" user=" + c.DBUser +
		" password=" + c.DBPassword +
		" dbname=" + c.DBName +
		" port=" + c.DBPort +
		" sslmode=" + c.DBSSLMode +
		" TimeZone=UTC"
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func parseDuration(s string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil {
		return fallback
	}
	return d
}

func parseInt(s string, fallback int) int {
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}
