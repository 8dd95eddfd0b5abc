package config

import (
	"os"
	"strconv"
	"time"

	"epiview/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Server     ServerConfig
	HTTP       HTTPConfig
	Dashboards DashboardsConfig
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port    string
	GinMode string
}

// HTTPConfig holds outbound request settings for the dataset fetches
type HTTPConfig struct {
	Timeout time.Duration
}

// DashboardsConfig holds the remote endpoints of the three dashboards.
// Each dashboard has exactly one data endpoint and one chart-image base URL;
// there is no further environment configuration by design of the feeds.
type DashboardsConfig struct {
	Measles EndpointConfig
	AIDS    EndpointConfig
	Malaria EndpointConfig
}

// EndpointConfig pairs a dashboard's data endpoint with its chart server base
type EndpointConfig struct {
	DataURL       string
	ChartsBaseURL string
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Server: ServerConfig{
			Port:    getEnv("SERVER_PORT", "3000"),
			GinMode: getEnv("GIN_MODE", "release"),
		},
		HTTP: HTTPConfig{
			Timeout: getEnvDuration("HTTP_TIMEOUT_SECONDS", 30),
		},
		Dashboards: DashboardsConfig{
			// Defaults match the ports the upstream feed servers publish on.
			Measles: EndpointConfig{
				DataURL:       getEnv("MEASLES_DATA_URL", "http://localhost:8080/api/measles/data"),
				ChartsBaseURL: getEnv("MEASLES_CHARTS_BASE_URL", "http://localhost:8082/api/measles/charts"),
			},
			AIDS: EndpointConfig{
				DataURL:       getEnv("AIDS_DATA_URL", "http://localhost:5000/api/aids/data"),
				ChartsBaseURL: getEnv("AIDS_CHARTS_BASE_URL", "http://localhost:5001/api/charts"),
			},
			Malaria: EndpointConfig{
				DataURL:       getEnv("MALARIA_DATA_URL", "http://localhost:5000/api/malaria/data"),
				ChartsBaseURL: getEnv("MALARIA_CHARTS_BASE_URL", "http://localhost:8083/api/malaria/charts"),
			},
		},
	}

	if err := validate(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}
	return config, nil
}

func validate(config *Config) error {
	if config.Server.Port == "" {
		return errors.ConfigInvalid("SERVER_PORT must not be empty")
	}
	endpoints := []EndpointConfig{
		config.Dashboards.Measles,
		config.Dashboards.AIDS,
		config.Dashboards.Malaria,
	}
	for _, e := range endpoints {
		if e.DataURL == "" {
			return errors.ConfigInvalid("every dashboard needs a data URL")
		}
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvDuration(key string, fallbackSeconds int) time.Duration {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return time.Duration(n) * time.Second
		}
	}
	return time.Duration(fallbackSeconds) * time.Second
}
