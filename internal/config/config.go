package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"    validate:"required"`
	Database  DatabaseConfig  `mapstructure:"database"  validate:"required"`
	Auth      AuthConfig      `mapstructure:"auth"      validate:"required"`
	LLM       LLMConfig       `mapstructure:"llm"       validate:"required"`
	Storage   StorageConfig   `mapstructure:"storage"   validate:"required"`
	Scheduler SchedulerConfig `mapstructure:"scheduler" validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"required,url"`
}

// AuthConfig contains all authentication and authorization settings.
// AdminTokenHash is the bcrypt hash of the shared token that authorizes
// the broadcast notification endpoint.
type AuthConfig struct {
	JWTSecret      string `mapstructure:"jwt_secret"       validate:"required,min=32"`
	AdminTokenHash string `mapstructure:"admin_token_hash" validate:"omitempty,min=32"`
}

// LLMConfig contains the generative-AI integration settings. The default
// and pro model names map subscription plans to model tiers.
type LLMConfig struct {
	GeminiAPIKey string `mapstructure:"gemini_api_key" validate:"required"`
	DefaultModel string `mapstructure:"default_model"  validate:"required"`
	ProModel     string `mapstructure:"pro_model"      validate:"required"`
}

// StorageConfig contains object storage settings for uploaded documents
// and synthesized audio.
type StorageConfig struct {
	Bucket string `mapstructure:"bucket" validate:"required"`
}

// SchedulerConfig carries the cron specs for the scheduled jobs. Specs use
// the standard five-field cron syntax.
type SchedulerConfig struct {
	WordListSpec         string `mapstructure:"word_list_spec"          validate:"required"`
	DailyTaskSpec        string `mapstructure:"daily_task_spec"         validate:"required"`
	MonthlyGemsSpec      string `mapstructure:"monthly_gems_spec"       validate:"required"`
	DailyReminderSpec    string `mapstructure:"daily_reminder_spec"     validate:"required"`
	WordListReminderSpec string `mapstructure:"word_list_reminder_spec" validate:"required"`
	PlanSyncSpec         string `mapstructure:"plan_sync_spec"          validate:"required"`
}
