package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Load reads configuration from environment variables and an optional
// config.yaml in the working directory. Environment variables use the
// SAVOR_ prefix with underscores for nesting (SAVOR_DATABASE_URL) and take
// precedence over file values. Returns a populated Config or an error if
// loading or validation fails.
func Load() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// No file is fine; env vars alone can carry the config.
	}

	v.SetEnvPrefix("SAVOR")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	validate := validator.New()
	if err := validate.Struct(&cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// setDefaults registers defaults for everything that has a sensible one.
// Secrets and connection strings default to empty so viper knows the keys
// (AutomaticEnv only resolves registered keys during Unmarshal); validation
// rejects them when they stay empty.
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.log_level", "info")

	v.SetDefault("database.url", "")
	v.SetDefault("auth.jwt_secret", "")
	v.SetDefault("auth.admin_token_hash", "")
	v.SetDefault("llm.gemini_api_key", "")
	v.SetDefault("storage.bucket", "")

	v.SetDefault("llm.default_model", "gemini-2.5-flash-lite")
	v.SetDefault("llm.pro_model", "gemini-2.5-flash")

	v.SetDefault("scheduler.word_list_spec", "0 5 * * *")
	v.SetDefault("scheduler.daily_task_spec", "0 6 * * *")
	v.SetDefault("scheduler.monthly_gems_spec", "0 0 1 * *")
	v.SetDefault("scheduler.daily_reminder_spec", "0 19 * * *")
	v.SetDefault("scheduler.word_list_reminder_spec", "0 23 * * *")
	v.SetDefault("scheduler.plan_sync_spec", "0 0 * * *")
}
