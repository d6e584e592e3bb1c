package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"parkgate/internal/service"
	"parkgate/internal/utils"
)

type Config struct {
	DatabaseURL      string
	Port             string
	AdminToken       string
	CarRatePerHour   float64
	BikeRatePerHour  float64
	StaleTicketAfter time.Duration
}

// Load reads configuration from the environment, after loading a .env file
// if one is present. DATABASE_URL is the only required variable.
func Load() (*Config, error) {
	godotenv.Load()

	cfg := &Config{
		DatabaseURL:      os.Getenv("DATABASE_URL"),
		Port:             os.Getenv("PORT"),
		AdminToken:       os.Getenv("ADMIN_API_TOKEN"),
		CarRatePerHour:   service.DefaultCarRatePerHour,
		BikeRatePerHour:  service.DefaultBikeRatePerHour,
		StaleTicketAfter: 24 * time.Hour,
	}
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL not set")
	}
	if cfg.Port == "" {
		cfg.Port = "8080"
	}

	var err error
	if cfg.CarRatePerHour, err = floatEnv("CAR_RATE_PER_HOUR", cfg.CarRatePerHour); err != nil {
		return nil, err
	}
	if cfg.BikeRatePerHour, err = floatEnv("BIKE_RATE_PER_HOUR", cfg.BikeRatePerHour); err != nil {
		return nil, err
	}
	if v := os.Getenv("STALE_TICKET_AFTER"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("invalid STALE_TICKET_AFTER %q: %w", v, err)
		}
		cfg.StaleTicketAfter = d
	}
	return cfg, nil
}

// RateConfig exposes the configured hourly rates in the shape the fare
// calculator consumes.
func (c *Config) RateConfig() service.RateConfig {
	return service.RateConfig{
		HourlyRates: map[string]float64{
			utils.CategoryCar:  c.CarRatePerHour,
			utils.CategoryBike: c.BikeRatePerHour,
		},
	}
}

func floatEnv(name string, fallback float64) (float64, error) {
	v := os.Getenv(name)
	if v == "" {
		return fallback, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", name, v, err)
	}
	return f, nil
}
