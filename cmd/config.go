package cmd

import (
	"fmt"

	"github.com/caarlos0/env"
)

// Config holds everything the app needs from the environment. Values come
// from the process environment, optionally seeded from a .env file.
type Config struct {
	HTTPPort string `env:"HTTP_PORT" envDefault:"8080"`

	DBHost     string `env:"DB_HOST" envDefault:"localhost"`
	DBPort     string `env:"DB_PORT" envDefault:"5432"`
	DBUser     string `env:"DB_USER" envDefault:"postgres"`
	DBPassword string `env:"DB_PASSWORD" envDefault:"postgres"`
	DBName     string `env:"DB_NAME" envDefault:"courier"`
	DBSslMode  string `env:"DB_SSLMODE" envDefault:"disable"`

	RedisAddr     string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPassword string `env:"REDIS_PASSWORD" envDefault:""`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`

	MarketplaceBaseURL      string `env:"MARKETPLACE_BASE_URL,required"`
	MarketplaceTokenURL     string `env:"MARKETPLACE_TOKEN_URL,required"`
	MarketplaceClientID     string `env:"MARKETPLACE_CLIENT_ID,required"`
	MarketplaceClientSecret string `env:"MARKETPLACE_CLIENT_SECRET,required"`

	CourierID string `env:"COURIER_ID,required"`

	// Minimum movement in meters before a GPS fix counts as a change.
	// Zero keeps the tracker's default.
	SignificantChangeMeters float64 `env:"SIGNIFICANT_CHANGE_METERS" envDefault:"0"`
}

// LoadConfig parses the configuration from the environment.
func LoadConfig() (Config, error) {
	var config Config
	if err := env.Parse(&config); err != nil {
		return Config{}, fmt.Errorf("failed to parse configuration: %w", err)
	}
	return config, nil
}

// PostgresDSN builds the GORM connection string.
func (c Config) PostgresDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode,
	)
}
