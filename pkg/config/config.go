package config

import (
	"fmt"
	"os"
)

// Server configuration struct.
type ServerConfiguration struct {
	Port      string
	JWTSecret string
}

// Database configuration struct.
type DatabaseConfiguration struct {
	URL            string
	Database       string
	MigrationsPath string
}

// Redis configuration struct.
type RedisConfiguration struct {
	Host     string
	Port     string
	Password string
}

// Logs configuration for the S3 log uploads.
type LogsConfiguration struct {
	Bucket    string
	Region    string
	AccessKey string
	SecretKey string
}

var (
	Server   ServerConfiguration
	Database DatabaseConfiguration
	Redis    RedisConfiguration
	Logs     LogsConfiguration
)

// Load reads the environment into the package level configuration.
func Load() error {
	Server.Port = getDefault("SERVER_PORT", "8080")
	Server.JWTSecret = os.Getenv("JWT_SECRET")

	Database.URL = os.Getenv("DATABASE_URL")
	Database.Database = getDefault("DATABASE_NAME", "goclan")
	Database.MigrationsPath = getDefault("MIGRATIONS_PATH", "migrations")

	Redis.Host = os.Getenv("REDIS_HOST")
	Redis.Port = os.Getenv("REDIS_PORT")
	Redis.Password = os.Getenv("REDIS_PASSWORD")

	Logs.Bucket = os.Getenv("LOGS_BUCKET")
	Logs.Region = getDefault("LOGS_REGION", "us-east-1")
	Logs.AccessKey = os.Getenv("LOGS_ACCESS_KEY")
	Logs.SecretKey = os.Getenv("LOGS_SECRET_KEY")

	if Database.URL == "" {
		return fmt.Errorf("DATABASE_URL must be set")
	}

	return nil
}

// Get a environment variable with a fallback default.
func getDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
