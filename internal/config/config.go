package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"   validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Sweep    SweepConfig    `mapstructure:"sweep"    validate:"required"`
	Mail     MailConfig     `mapstructure:"mail"`
}

// ServerConfig contains all HTTP-server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"required"`
}

// SweepConfig controls the idle-plan sweep.
type SweepConfig struct {
	// IntervalSeconds is the fixed rate of the sweep timer. The default of
	// 60 seconds stays finer than the minimum permitted cooldown of one
	// minute, so even the shortest user-configured cooldowns are honored
	// with bounded lag.
	IntervalSeconds int `mapstructure:"interval_seconds" validate:"required,gte=1"`

	// WorkerCount is the number of concurrent workers evaluating plans
	// within a single sweep pass.
	WorkerCount int `mapstructure:"worker_count" validate:"required,gte=1"`

	// PlanTimeoutSeconds bounds the storage and transport calls made while
	// processing one plan. A deadline hit counts as that plan's failure for
	// the tick.
	PlanTimeoutSeconds int `mapstructure:"plan_timeout_seconds" validate:"required,gte=1"`
}

// MailConfig contains SMTP transport settings. When Host or From is empty
// the transport runs in disabled mode: sends are logged and skipped.
type MailConfig struct {
	Host           string `mapstructure:"host"`
	Port           int    `mapstructure:"port"            validate:"omitempty,gt=0,lt=65536"`
	Username       string `mapstructure:"username"`
	Password       string `mapstructure:"password"`
	From           string `mapstructure:"from"            validate:"omitempty,email"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds" validate:"omitempty,gte=1"`
}

// Enabled reports whether the mail transport is configured to send.
func (m MailConfig) Enabled() bool {
	return m.Host != "" && m.From != ""
}
