package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every configuration key when read from the environment,
// e.g. TASKAPI_SERVER_PORT for server.port.
const EnvPrefix = "TASKAPI"

// envAliases lists the unprefixed environment variable names accepted for a key,
// checked after the prefixed name.
var envAliases = map[string][]string{
	"server.port":                 {"PORT"},
	"server.log_level":            {"LOG_LEVEL"},
	"database.url":                {"DATABASE_URL"},
	"database.test_url":           {"TEST_DATABASE_URL"},
	"database.use_test":           {"USE_DATABASE_TEST"},
	"auth.jwt_secret":             {"AUTH_JWT_SECRET"},
	"auth.token_lifetime_minutes": {"AUTH_TOKEN_LIFETIME_MINUTES"},
	"auth.bcrypt_cost":            {"AUTH_BCRYPT_COST"},
	"auth.rate_limit_per_minute":  {"AUTH_RATE_LIMIT_PER_MINUTE"},
	"tasks.page_size":             {"TASKS_PAGE_SIZE"},
	"cache.ttl_seconds":           {"CACHE_TTL_SECONDS"},
	"cache.redis_url":             {"REDIS_URL"},
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.log_level", "info")
	v.SetDefault("database.url", "sqlite://tasks.db")
	v.SetDefault("database.test_url", "sqlite://tasks_test.db")
	v.SetDefault("database.use_test", false)
	v.SetDefault("auth.jwt_secret", "")
	v.SetDefault("auth.token_lifetime_minutes", 60)
	v.SetDefault("auth.bcrypt_cost", 10)
	v.SetDefault("auth.rate_limit_per_minute", 30)
	v.SetDefault("tasks.page_size", 10)
	v.SetDefault("cache.ttl_seconds", 30)
	v.SetDefault("cache.redis_url", "")
}

// Load reads configuration from environment variables, after loading any
// variables found in the given .env files (missing files are skipped).
// Variables already present in the environment are never overwritten by .env values.
// Returns a populated Config struct or an error if loading/validation fails.
func Load(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load env file %s: %w", f, err)
		}
	}

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key, aliases := range envAliases {
		prefixed := EnvPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
		if err := v.BindEnv(append([]string{key, prefixed}, aliases...)...); err != nil {
			return nil, fmt.Errorf("failed to bind environment for %s: %w", key, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks the struct tags on cfg.
func Validate(cfg *Config) error {
	if err := validator.New().Struct(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}
