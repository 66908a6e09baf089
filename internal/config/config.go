package config

import "time"

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"   validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Auth     AuthConfig     `mapstructure:"auth"     validate:"required"`
	Tasks    TasksConfig    `mapstructure:"tasks"    validate:"required"`
	Cache    CacheConfig    `mapstructure:"cache"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// DatabaseConfig selects the database the API talks to. The URL scheme picks
// the driver: postgres:// and postgresql:// use pgx, sqlite:// uses SQLite.
type DatabaseConfig struct {
	URL     string `mapstructure:"url"      validate:"required"`
	TestURL string `mapstructure:"test_url" validate:"required_if=UseTest true"`
	UseTest bool   `mapstructure:"use_test"`
}

// DSN returns the connection string in effect, honouring the test database switch.
func (c DatabaseConfig) DSN() string {
	if c.UseTest {
		return c.TestURL
	}
	return c.URL
}

// AuthConfig contains all authentication and authorization settings.
type AuthConfig struct {
	// JWTSecret is optional. When empty a random key is generated at start-up
	// and every restart invalidates previously issued tokens.
	JWTSecret            string `mapstructure:"jwt_secret"             validate:"omitempty,min=32"`
	TokenLifetimeMinutes int    `mapstructure:"token_lifetime_minutes" validate:"required,gt=0,lte=10080"`
	BcryptCost           int    `mapstructure:"bcrypt_cost"            validate:"required,gte=4,lte=31"`
	// RateLimitPerMinute caps login and sign-up attempts per client; 0 disables it.
	RateLimitPerMinute int `mapstructure:"rate_limit_per_minute" validate:"gte=0"`
}

// TokenLifetime returns the access token TTL as a duration.
func (c AuthConfig) TokenLifetime() time.Duration {
	return time.Duration(c.TokenLifetimeMinutes) * time.Minute
}

// TasksConfig holds task listing settings.
type TasksConfig struct {
	PageSize int `mapstructure:"page_size" validate:"required,gt=0,lte=100"`
}

// CacheConfig configures the task list cache.
type CacheConfig struct {
	// TTLSeconds of 0 disables caching.
	TTLSeconds int    `mapstructure:"ttl_seconds" validate:"gte=0"`
	RedisURL   string `mapstructure:"redis_url"   validate:"omitempty,url"`
}

// TTL returns the cache entry lifetime.
func (c CacheConfig) TTL() time.Duration {
	return time.Duration(c.TTLSeconds) * time.Second
}
