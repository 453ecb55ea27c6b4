package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration, populated from environment
// variables with a .env file as an optional source.
type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Providers ProvidersConfig
	Model     ModelConfig
	History   HistoryConfig
	Logging   LoggingConfig
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Host         string
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// DatabaseConfig holds PostgreSQL settings for the prediction history store
type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	Database        string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

// ProvidersConfig holds settings for the outbound geocoding and weather calls
type ProvidersConfig struct {
	MapmyIndiaKey  string
	GeocodeBaseURL string
	OpenWeatherKey string
	WeatherBaseURL string
	Timeout        time.Duration
}

// ModelConfig holds model server settings
type ModelConfig struct {
	URL     string
	Timeout time.Duration
}

// HistoryConfig controls the optional prediction history store. The core
// prediction flow never depends on it.
type HistoryConfig struct {
	Enabled bool
}

// LoggingConfig holds logging settings
type LoggingConfig struct {
	Level string
}

// LoadConfig reads configuration from the environment, loading a .env file
// first when one is present.
func LoadConfig() (*Config, error) {
	// Missing .env is fine; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Host:         envOrDefault("SERVER_HOST", "0.0.0.0"),
			Port:         envIntOrDefault("SERVER_PORT", 8080),
			ReadTimeout:  envDurationOrDefault("SERVER_READ_TIMEOUT", 15*time.Second),
			WriteTimeout: envDurationOrDefault("SERVER_WRITE_TIMEOUT", 30*time.Second),
			IdleTimeout:  envDurationOrDefault("SERVER_IDLE_TIMEOUT", 60*time.Second),
		},
		Database: DatabaseConfig{
			Host:            envOrDefault("DB_HOST", "localhost"),
			Port:            envIntOrDefault("DB_PORT", 5432),
			User:            envOrDefault("DB_USER", "postgres"),
			Password:        os.Getenv("DB_PASSWORD"),
			Database:        envOrDefault("DB_NAME", "yield_platform"),
			SSLMode:         envOrDefault("DB_SSLMODE", "disable"),
			MaxOpenConns:    envIntOrDefault("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns:    envIntOrDefault("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: envDurationOrDefault("DB_CONN_MAX_LIFETIME", 30*time.Minute),
			ConnMaxIdleTime: envDurationOrDefault("DB_CONN_MAX_IDLE_TIME", 5*time.Minute),
		},
		Providers: ProvidersConfig{
			MapmyIndiaKey:  os.Getenv("MAPMYINDIA_KEY"),
			GeocodeBaseURL: envOrDefault("GEOCODE_BASE_URL", "https://apis.mapmyindia.com"),
			OpenWeatherKey: os.Getenv("OPENWEATHER_KEY"),
			WeatherBaseURL: envOrDefault("WEATHER_BASE_URL", "https://api.openweathermap.org"),
			Timeout:        envDurationOrDefault("PROVIDER_TIMEOUT", 6*time.Second),
		},
		Model: ModelConfig{
			URL:     envOrDefault("MODEL_SERVER_URL", "http://localhost:5001"),
			Timeout: envDurationOrDefault("MODEL_SERVER_TIMEOUT", 10*time.Second),
		},
		History: HistoryConfig{
			Enabled: envBoolOrDefault("HISTORY_ENABLED", false),
		},
		Logging: LoggingConfig{
			Level: envOrDefault("LOG_LEVEL", "info"),
		},
	}

	return cfg, nil
}

// Validate checks the configuration for values that would make the service
// unusable at runtime.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	if c.Model.URL == "" {
		return fmt.Errorf("MODEL_SERVER_URL is required")
	}
	if c.Providers.Timeout <= 0 {
		return fmt.Errorf("provider timeout must be positive")
	}
	if c.History.Enabled && c.Database.Database == "" {
		return fmt.Errorf("DB_NAME is required when HISTORY_ENABLED is true")
	}
	return nil
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envIntOrDefault(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func envBoolOrDefault(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}

func envDurationOrDefault(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
