package config

import (
	"os"
	"strconv"
	"time"
	_ "time/tzdata"
)

type Config struct {
	Port        string
	Environment string
	LogLevel    string

	DatabaseURL string

	RedisURL string

	JWTSecret  string
	JWTExpiry  time.Duration
	BcryptCost int

	MinIOEndpoint       string
	MinIOPublicEndpoint string
	MinIOAccessKey      string
	MinIOSecretKey      string
	MinIOBucket         string
	MinIOUseSSL         bool
	MinIOPublicUseSSL   bool
	ResumeMaxSize       int64

	CORSOrigins string

	ResendAPIKey string
	FromEmail    string
	AppURL       string

	EventBufferSize   int
	EventRelayEnabled bool
	EventRelayChannel string
	SSEHeartbeat      time.Duration

	AuthRateLimit  int
	AuthRateWindow time.Duration

	DashboardCacheTTL time.Duration
	DisplayTimezone   string
}

func Load() *Config {
	return &Config{
		Port:        getEnv("PORT", "8080"),
		Environment: getEnv("ENVIRONMENT", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),

		DatabaseURL: getEnv("DATABASE_URL", ""),

		RedisURL: getEnv("REDIS_URL", "redis://localhost:6379"),

		JWTSecret:  getEnv("JWT_SECRET", ""),
		JWTExpiry:  getDurationEnv("JWT_EXPIRY", 24*time.Hour),
		BcryptCost: getIntEnv("BCRYPT_COST", 12),

		MinIOEndpoint:       getEnv("MINIO_ENDPOINT", "localhost:9000"),
		MinIOPublicEndpoint: getEnv("MINIO_PUBLIC_ENDPOINT", getEnv("MINIO_ENDPOINT", "localhost:9000")),
		MinIOAccessKey:      getEnv("MINIO_ACCESS_KEY", "minioadmin"),
		MinIOSecretKey:      getEnv("MINIO_SECRET_KEY", "minioadmin"),
		MinIOBucket:         getEnv("MINIO_BUCKET", "recruitment-resumes"),
		MinIOUseSSL:         getBoolEnv("MINIO_USE_SSL", false),
		MinIOPublicUseSSL:   getBoolEnv("MINIO_PUBLIC_USE_SSL", true),
		ResumeMaxSize:       int64(getIntEnv("RESUME_MAX_SIZE", 5*1024*1024)),

		CORSOrigins: getEnv("CORS_ORIGINS", "http://localhost:5173"),

		ResendAPIKey: getEnv("RESEND_API_KEY", ""),
		FromEmail:    getEnv("FROM_EMAIL", "noreply@example.com"),
		AppURL:       getEnv("APP_URL", "http://localhost:5173"),

		EventBufferSize:   getIntEnv("EVENT_BUFFER_SIZE", 64),
		EventRelayEnabled: getBoolEnv("EVENT_RELAY_ENABLED", false),
		EventRelayChannel: getEnv("EVENT_RELAY_CHANNEL", "recruitment:events"),
		SSEHeartbeat:      getDurationEnv("SSE_HEARTBEAT", 15*time.Second),

		AuthRateLimit:  getIntEnv("AUTH_RATE_LIMIT", 10),
		AuthRateWindow: getDurationEnv("AUTH_RATE_WINDOW", time.Minute),

		DashboardCacheTTL: getDurationEnv("DASHBOARD_CACHE_TTL", time.Minute),
		DisplayTimezone:   getEnv("DISPLAY_TIMEZONE", "UTC"),
	}
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// Location resolves DisplayTimezone, falling back to UTC when it is unknown.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.DisplayTimezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		parsed, err := strconv.ParseBool(value)
		if err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		parsed, err := time.ParseDuration(value)
		if err == nil {
			return parsed
		}
	}
	return defaultValue
}
