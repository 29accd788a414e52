package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	// Server configuration (the listen address itself is owned by the serve
	// command's flags)
	Environment string

	// Admin identities allowed to manage moderated collections
	AdminEmails []string

	// Rate limiter configuration
	RateLimitBackend  string // "memory" or "redis"
	RateLimitAttempts int
	RateLimitWindow   time.Duration

	// Redis configuration (only required for the redis limiter backend)
	RedisURL      string
	RedisPassword string
	RedisDB       int

	// PubNub configuration (submission notifications, optional)
	PubNubPublishKey   string
	PubNubSubscribeKey string
	PubNubSecretKey    string
	NotifyChannel      string

	// Cache configuration
	RosterCacheTTL time.Duration

	// Monitoring
	EnableMetrics bool
	MetricsPort   string
}

func LoadConfig() *Config {
	return &Config{
		// Server
		Environment: getEnv("ENVIRONMENT", "development"),

		// Admin
		AdminEmails: getEnvAsList("ADMIN_EMAILS", "admin@club.example"),

		// Rate limiting
		RateLimitBackend:  getEnv("RATE_LIMIT_BACKEND", "memory"),
		RateLimitAttempts: getEnvAsInt("RATE_LIMIT_ATTEMPTS", 5),
		RateLimitWindow:   getEnvAsDuration("RATE_LIMIT_WINDOW", "15m"),

		// Redis
		RedisURL:      getEnv("REDIS_URL", "localhost:6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvAsInt("REDIS_DB", 0),

		// PubNub
		PubNubPublishKey:   getEnv("PUBNUB_PUBLISH_KEY", ""),
		PubNubSubscribeKey: getEnv("PUBNUB_SUBSCRIBE_KEY", ""),
		PubNubSecretKey:    getEnv("PUBNUB_SECRET_KEY", ""),
		NotifyChannel:      getEnv("NOTIFY_CHANNEL", "admin-inbox"),

		// Cache
		RosterCacheTTL: getEnvAsDuration("ROSTER_CACHE_TTL", "1h"),

		// Monitoring
		EnableMetrics: getEnvAsBool("ENABLE_METRICS", true),
		MetricsPort:   getEnv("METRICS_PORT", "9090"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := getEnv(key, defaultValue)
	if duration, err := time.ParseDuration(valueStr); err == nil {
		return duration
	}
	// If parsing fails, try to parse default value
	duration, _ := time.ParseDuration(defaultValue)
	return duration
}

func getEnvAsList(key string, defaultValue string) []string {
	valueStr := getEnv(key, defaultValue)

	var values []string
	for _, part := range strings.Split(valueStr, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			values = append(values, trimmed)
		}
	}
	return values
}
