package models

import "time"

// Config holds all configuration for the application
type Config struct {
	// Application
	AppName    string `mapstructure:"app_name"`
	AppVersion string `mapstructure:"app_version"`
	AppEnv     string `mapstructure:"app_env"`
	AppHost    string `mapstructure:"app_host"`
	AppPort    string `mapstructure:"app_port"`

	// AWS
	AWSRegion           string `mapstructure:"aws_region"`
	AWSAccessKeyID      string `mapstructure:"aws_access_key_id"`
	AWSSecretAccessKey  string `mapstructure:"aws_secret_access_key"`
	DynamoDBEndpoint    string `mapstructure:"dynamodb_endpoint"`
	DynamoDBTablePrefix string `mapstructure:"dynamodb_table_prefix"`

	// Email notifications
	EmailFrom string `mapstructure:"email_from"`
	EmailTo   string `mapstructure:"email_to"`

	// Timeouts
	StoreTimeout  time.Duration `mapstructure:"store_timeout"`
	NotifyTimeout time.Duration `mapstructure:"notify_timeout"`

	// Logging
	LogLevel  string `mapstructure:"log_level"`
	LogFormat string `mapstructure:"log_format"`

	// CORS
	CORSOrigins []string `mapstructure:"cors_origins"`

	// Admin access. Empty disables the check (development only).
	AdminAPIKey string `mapstructure:"admin_api_key"`

	// Base Path
	BasePath string `mapstructure:"basePath"`

	Tables []string `mapstructure:"tables"`
}

// IsDevelopment reports whether the app runs in development mode.
// Internal error detail is only surfaced to clients in development.
func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}
