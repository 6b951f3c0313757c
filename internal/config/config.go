package config

import (
	"fmt"
	"math"
	"os"
	"strconv"

	"classci/internal/errors"

	"github.com/joho/godotenv"
)

// DefaultExactPrecision is the weight given to the exact interval when none is configured
const DefaultExactPrecision = 0.05

// Config represents the complete application configuration
type Config struct {
	Server     ServerConfig
	Estimation EstimationConfig
	Paths      PathConfig
	Log        LogConfig
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port    string
	GinMode string
}

// EstimationConfig holds defaults applied to requests that leave them unset
type EstimationConfig struct {
	ConfidenceLevel float64
	ExactPrecision  float64
	Iterations      int
	// Seed is nil when every run should draw from a fresh random source
	Seed *int64
}

// PathConfig holds file system paths
type PathConfig struct {
	// PlotDir is where API-triggered plots are written; empty disables plotting
	PlotDir string
}

// LogConfig holds logging settings
type LogConfig struct {
	Level string
}

// Load reads .env (when present) and the environment, then validates the result
func Load() (*Config, error) {
	// .env is optional; real environment variables take precedence
	_ = godotenv.Load()
	return FromEnv()
}

// FromEnv builds the configuration from the current environment only
func FromEnv() (*Config, error) {
	config := &Config{}

	config.Server = ServerConfig{
		Port:    getEnvOrDefault("SERVER_PORT", "8080"),
		GinMode: getEnvOrDefault("GIN_MODE", "release"),
	}

	estimation, err := loadEstimationConfig()
	if err != nil {
		return nil, errors.Wrap(err, "failed to load estimation configuration")
	}
	config.Estimation = *estimation

	config.Paths = PathConfig{
		PlotDir: getEnvOrDefault("PLOT_DIR", ""),
	}
	config.Log = LogConfig{
		Level: getEnvOrDefault("LOG_LEVEL", "INFO"),
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return config, nil
}

func loadEstimationConfig() (*EstimationConfig, error) {
	confidence, err := getEnvFloat("CCI_CONFIDENCE_LEVEL", 0.95)
	if err != nil {
		return nil, err
	}
	precision, err := getEnvFloat("CCI_EXACT_PRECISION", DefaultExactPrecision)
	if err != nil {
		return nil, err
	}
	iterations, err := getEnvInt("CCI_ITERATIONS", 1000)
	if err != nil {
		return nil, err
	}

	cfg := &EstimationConfig{
		ConfidenceLevel: confidence,
		ExactPrecision:  precision,
		Iterations:      iterations,
	}

	if value := os.Getenv("CCI_SEED"); value != "" {
		seed, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return nil, errors.ConfigInvalid(fmt.Sprintf("CCI_SEED must be an integer, got %q", value))
		}
		cfg.Seed = &seed
	}

	return cfg, nil
}

func validateConfig(config *Config) error {
	est := config.Estimation
	if math.IsNaN(est.ConfidenceLevel) || est.ConfidenceLevel <= 0 || est.ConfidenceLevel >= 1 {
		return errors.ConfigInvalid("CCI_CONFIDENCE_LEVEL must be strictly between 0 and 1")
	}
	if math.IsNaN(est.ExactPrecision) || est.ExactPrecision < 0 || est.ExactPrecision > 1 {
		return errors.ConfigInvalid("CCI_EXACT_PRECISION must be within [0, 1]")
	}
	if est.Iterations <= 0 {
		return errors.ConfigInvalid("CCI_ITERATIONS must be positive")
	}
	if config.Server.Port == "" {
		return errors.ConfigInvalid("SERVER_PORT is required")
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	intValue, err := strconv.Atoi(value)
	if err != nil {
		return 0, errors.ConfigInvalid(fmt.Sprintf("%s must be an integer, got %q", key, value))
	}
	return intValue, nil
}

func getEnvFloat(key string, defaultValue float64) (float64, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	floatValue, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, errors.ConfigInvalid(fmt.Sprintf("%s must be a number, got %q", key, value))
	}
	return floatValue, nil
}
