package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	AppEnv         string
	Port           string
	LogLevel       string
	LogFormat      string
	DatabaseURL    string
	SessionSecret  string
	BroadcastToken string

	HeartbeatInterval time.Duration
	WriteTimeout      time.Duration

	MaxConnections      int64
	MaxConnectionsPerIP int
	ConnectionRate      float64
	ConnectionBurst     int
}

func Load() (*Config, error) {
	cfg := &Config{
		AppEnv:         getEnv("APP_ENV", "development"),
		Port:           getEnv("PORT", "8080"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		LogFormat:      getEnv("LOG_FORMAT", "text"),
		DatabaseURL:    getEnv("DATABASE_URL", ""),
		SessionSecret:  getEnv("SESSION_SECRET", ""),
		BroadcastToken: getEnv("BROADCAST_TOKEN", ""),
	}

	var err error
	if cfg.HeartbeatInterval, err = getEnvDuration("HEARTBEAT_INTERVAL", 25*time.Second); err != nil {
		return nil, err
	}
	if cfg.WriteTimeout, err = getEnvDuration("WRITE_TIMEOUT", 5*time.Second); err != nil {
		return nil, err
	}
	if cfg.MaxConnections, err = getEnvInt64("MAX_CONNECTIONS", 10000); err != nil {
		return nil, err
	}
	if cfg.MaxConnectionsPerIP, err = getEnvInt("MAX_CONNECTIONS_PER_IP", 20); err != nil {
		return nil, err
	}
	if cfg.ConnectionRate, err = getEnvFloat("CONNECTION_RATE", 10); err != nil {
		return nil, err
	}
	if cfg.ConnectionBurst, err = getEnvInt("CONNECTION_BURST", 20); err != nil {
		return nil, err
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}
	if cfg.SessionSecret == "" {
		return nil, fmt.Errorf("SESSION_SECRET is required")
	}
	if cfg.BroadcastToken == "" {
		return nil, fmt.Errorf("BROADCAST_TOKEN is required")
	}
	if len(cfg.BroadcastToken) < 16 {
		return nil, fmt.Errorf("BROADCAST_TOKEN must be at least 16 characters")
	}
	if cfg.HeartbeatInterval <= 0 {
		return nil, fmt.Errorf("HEARTBEAT_INTERVAL must be positive")
	}
	if cfg.WriteTimeout <= 0 {
		return nil, fmt.Errorf("WRITE_TIMEOUT must be positive")
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("%s must be a valid duration: %w", key, err)
	}
	return d, nil
}

func getEnvInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", key, err)
	}
	return n, nil
}

func getEnvInt64(key string, defaultValue int64) (int64, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", key, err)
	}
	return n, nil
}

func getEnvFloat(key string, defaultValue float64) (float64, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be a number: %w", key, err)
	}
	return f, nil
}
