package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Load reads configuration from an optional config.yaml in the working
// directory and from environment variables with the PLANWATCH_ prefix.
// Environment variables take precedence over values from the config file.
// Returns a populated Config struct or an error if loading/validation fails.
func Load() (*Config, error) {
	v := viper.New()

	// Set default values
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.log_level", "info")
	v.SetDefault("sweep.interval_seconds", 60)
	v.SetDefault("sweep.worker_count", 4)
	v.SetDefault("sweep.plan_timeout_seconds", 5)
	v.SetDefault("mail.port", 587)
	v.SetDefault("mail.timeout_seconds", 10)

	// Read from an optional config file in the working directory
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		// A missing config file is fine; anything else is a real problem.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	// Configure environment variables
	v.SetEnvPrefix("PLANWATCH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Explicitly bind nested keys so they resolve even without a config file
	bindEnvs := []struct {
		key    string
		envVar string
	}{
		{"server.port", "PLANWATCH_SERVER_PORT"},
		{"server.log_level", "PLANWATCH_SERVER_LOG_LEVEL"},
		{"database.url", "PLANWATCH_DATABASE_URL"},
		{"sweep.interval_seconds", "PLANWATCH_SWEEP_INTERVAL_SECONDS"},
		{"sweep.worker_count", "PLANWATCH_SWEEP_WORKER_COUNT"},
		{"sweep.plan_timeout_seconds", "PLANWATCH_SWEEP_PLAN_TIMEOUT_SECONDS"},
		{"mail.host", "PLANWATCH_MAIL_HOST"},
		{"mail.port", "PLANWATCH_MAIL_PORT"},
		{"mail.username", "PLANWATCH_MAIL_USERNAME"},
		{"mail.password", "PLANWATCH_MAIL_PASSWORD"},
		{"mail.from", "PLANWATCH_MAIL_FROM"},
		{"mail.timeout_seconds", "PLANWATCH_MAIL_TIMEOUT_SECONDS"},
	}

	for _, env := range bindEnvs {
		if err := v.BindEnv(env.key, env.envVar); err != nil {
			return nil, fmt.Errorf("error binding environment variable %s: %w", env.envVar, err)
		}
	}

	// Unmarshal and validate
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	validate := validator.New()
	if err := validate.Struct(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}
