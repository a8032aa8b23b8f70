package config

// Storage backend names accepted by DatabaseConfig.Backend.
const (
	BackendMemory   = "memory"
	BackendPostgres = "postgres"
)

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"   validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// DatabaseConfig contains all storage-related configuration settings.
// Backend selects the store implementation; URL is only consulted (and
// required) when the backend is postgres.
type DatabaseConfig struct {
	Backend string `mapstructure:"backend" validate:"required,oneof=memory postgres"`
	URL     string `mapstructure:"url"     validate:"required_if=Backend postgres,omitempty,url"`
}
