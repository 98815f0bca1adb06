package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds application configuration shared by the tripbound binaries.
// Each binary reads the subset it needs.
type Config struct {
	ServerPort   string
	DatabaseType string
	DatabasePath string
	DatabaseURL  string

	MigrationsPath string

	// Service discovery
	RegistryURL       string
	ServiceName       string
	AdvertiseURL      string
	HeartbeatInterval time.Duration

	// Gateway
	AuthServiceName string
	TripServiceName string
	ValidateTimeout time.Duration

	// Token signing
	JWTPrivateKeyPath string
	JWTPublicKeyPath  string
	TokenIssuer       string
	TokenDuration     time.Duration

	// Events
	RedisURL      string
	EventStream   string
	ConsumerGroup string

	// Notifier / SES
	AWSRegion    string
	SESFromEmail string
	SESFromName  string
	AppBaseURL   string

	// Directory lookups from the trip service
	DirectoryTimeout time.Duration

	Debug bool
}

// Load reads configuration from environment variables with sensible defaults
func Load() *Config {
	return &Config{
		ServerPort:   getEnv("PORT", "8080"),
		DatabaseType: getEnv("DB_TYPE", "sqlite"),
		DatabasePath: getEnv("DB_PATH", "./tripbound.db"),
		DatabaseURL:  getEnv("DB_URL", ""),

		MigrationsPath: getEnv("MIGRATIONS_PATH", "./migrations"),

		RegistryURL:       getEnv("REGISTRY_URL", "http://localhost:8761"),
		ServiceName:       getEnv("SERVICE_NAME", ""),
		AdvertiseURL:      getEnv("ADVERTISE_URL", ""),
		HeartbeatInterval: getDuration("HEARTBEAT_INTERVAL", 15*time.Second),

		AuthServiceName: getEnv("AUTH_SERVICE_NAME", "authserver"),
		TripServiceName: getEnv("TRIP_SERVICE_NAME", "tripserver"),
		ValidateTimeout: getDuration("VALIDATE_TIMEOUT", 5*time.Second),

		JWTPrivateKeyPath: getEnv("JWT_PRIVATE_KEY_PATH", ""),
		JWTPublicKeyPath:  getEnv("JWT_PUBLIC_KEY_PATH", ""),
		TokenIssuer:       getEnv("TOKEN_ISSUER", "tripbound-auth"),
		TokenDuration:     getDuration("TOKEN_DURATION", 2*time.Hour),

		RedisURL:      getEnv("REDIS_URL", "localhost:6379"),
		EventStream:   getEnv("EVENT_STREAM", "tripbound:invite-created"),
		ConsumerGroup: getEnv("CONSUMER_GROUP", "notifier"),

		AWSRegion:    getEnv("AWS_REGION", "eu-west-1"),
		SESFromEmail: getEnv("SES_FROM_EMAIL", ""),
		SESFromName:  getEnv("SES_FROM_NAME", "Tripbound"),
		AppBaseURL:   getEnv("APP_BASE_URL", "http://localhost:8080"),

		DirectoryTimeout: getDuration("DIRECTORY_TIMEOUT", 5*time.Second),

		Debug: getBool("DEBUG", false),
	}
}

// getEnv reads an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func getBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}
