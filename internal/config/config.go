// File: internal/config/config.go
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
type Config struct {
	// Server Configuration
	GinMode       string        `mapstructure:"GIN_MODE"`
	ServerHost    string        `mapstructure:"SERVER_HOST"`
	ServerPort    string        `mapstructure:"SERVER_PORT"`
	ServerTimeout time.Duration `mapstructure:"SERVER_TIMEOUT_SECONDS"`

	// Logging Configuration
	LogLevel  string `mapstructure:"LOG_LEVEL"`
	LogFormat string `mapstructure:"LOG_FORMAT"`

	// Firebase / Firestore Configuration
	FirebaseServiceAccountKeyPath string `mapstructure:"FIREBASE_SERVICE_ACCOUNT_KEY_PATH"`
	FirebaseProjectID             string `mapstructure:"FIREBASE_PROJECT_ID"`

	// Stale-request expiry job
	RequestExpiryDays        int    `mapstructure:"REQUEST_EXPIRY_DAYS"`
	RequestExpiryJobSchedule string `mapstructure:"REQUEST_EXPIRY_JOB_SCHEDULE"`
}

// UsesEmulator reports whether the process is pointed at the local Firebase
// emulator suite. The Admin SDK and the Firestore client pick the emulator
// host variables up on their own; we only need to know so the service-account
// key requirement can be relaxed during development.
func (c *Config) UsesEmulator() bool {
	return os.Getenv("FIRESTORE_EMULATOR_HOST") != "" ||
		os.Getenv("FIREBASE_AUTH_EMULATOR_HOST") != ""
}

// Load attempts to load configuration from a .env file (if present) and environment variables.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("error loading .env file: %w", err)
		}
	}

	v := viper.New()

	// Set default values
	v.SetDefault("GIN_MODE", "debug")
	v.SetDefault("SERVER_HOST", "0.0.0.0")
	v.SetDefault("SERVER_PORT", "8080")
	v.SetDefault("SERVER_TIMEOUT_SECONDS", 30)

	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "console")

	// Firebase
	v.SetDefault("FIREBASE_PROJECT_ID", "")
	v.SetDefault("FIREBASE_SERVICE_ACCOUNT_KEY_PATH", "")

	// Expiry job (an empty schedule disables the job)
	v.SetDefault("REQUEST_EXPIRY_DAYS", 14)
	v.SetDefault("REQUEST_EXPIRY_JOB_SCHEDULE", "@daily")

	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling configuration: %w", err)
	}

	// Convert duration fields
	cfg.ServerTimeout = time.Duration(v.GetInt("SERVER_TIMEOUT_SECONDS")) * time.Second

	// Basic validation for critical configs. Against the emulator suite the
	// Admin SDK does not need real credentials, so the key file is only
	// mandatory when talking to production Firebase.
	if !cfg.UsesEmulator() {
		if strings.TrimSpace(cfg.FirebaseServiceAccountKeyPath) == "" {
			return nil, fmt.Errorf("FATAL: FIREBASE_SERVICE_ACCOUNT_KEY_PATH is not set. This is required for Firebase Admin SDK initialization")
		}
		if _, err := os.Stat(cfg.FirebaseServiceAccountKeyPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("FATAL: Firebase service account key file specified in FIREBASE_SERVICE_ACCOUNT_KEY_PATH (%s) not found", cfg.FirebaseServiceAccountKeyPath)
		}
	}
	if strings.TrimSpace(cfg.FirebaseProjectID) == "" {
		return nil, fmt.Errorf("FATAL: FIREBASE_PROJECT_ID is not set. This is required for the Firestore client")
	}

	return &cfg, nil
}
