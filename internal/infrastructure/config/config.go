package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	sharedConfig "garage/internal/shared/config"
)

type Config struct {
	Server       sharedConfig.ServerConfig       `mapstructure:"server"`
	Database     sharedConfig.DatabaseConfig     `mapstructure:"database"`
	Logger       sharedConfig.LoggerConfig       `mapstructure:"logger"`
	Auth         sharedConfig.AuthConfig         `mapstructure:"auth"`
	Email        sharedConfig.EmailConfig        `mapstructure:"email"`
	Redis        sharedConfig.RedisConfig        `mapstructure:"redis"`
	Telegram     sharedConfig.TelegramConfig     `mapstructure:"telegram"`
	Slack        sharedConfig.SlackConfig        `mapstructure:"slack"`
	Notification sharedConfig.NotificationConfig `mapstructure:"notification"`
	Scheduler    sharedConfig.SchedulerConfig    `mapstructure:"scheduler"`
	ServiceOrder sharedConfig.ServiceOrderConfig `mapstructure:"service_order"`
	RateLimit    sharedConfig.RateLimitConfig    `mapstructure:"rate_limit"`
	Seed         sharedConfig.SeedConfig         `mapstructure:"seed"`
}

var (
	appConfig   *Config
	appConfigMu sync.RWMutex
)

// Load reads configs/config.yaml and GARAGE_* environment variables. A .env
// file in the working directory is loaded first when present. A missing
// config file is not an error; defaults and the environment still apply.
func Load(env string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./configs")
	v.AddConfigPath("../configs")
	v.AddConfigPath("../../configs")

	v.SetEnvPrefix("GARAGE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// Allow env parameter to override server mode if provided
	if env != "" && env != "default" {
		v.Set("server.mode", env)
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}

	appConfigMu.Lock()
	appConfig = &config
	appConfigMu.Unlock()

	return &config, nil
}

// Get returns the loaded configuration
func Get() *Config {
	appConfigMu.RLock()
	defer appConfigMu.RUnlock()
	return appConfig
}

// Validate rejects settings the server cannot start with.
func (c *Config) Validate() error {
	switch strings.ToLower(c.Database.Driver) {
	case "mysql", "sqlite":
	default:
		return fmt.Errorf("unsupported database driver %q", c.Database.Driver)
	}
	if c.isProduction() && c.Auth.JWT.Secret == defaultJWTSecret {
		return fmt.Errorf("auth.jwt.secret must be changed in release mode")
	}
	if c.Telegram.Enabled && (c.Telegram.BotToken == "" || c.Telegram.ChatID == 0) {
		return fmt.Errorf("telegram is enabled but bot_token or chat_id is missing")
	}
	if c.Slack.Enabled && c.Slack.WebhookURL == "" {
		return fmt.Errorf("slack is enabled but webhook_url is missing")
	}
	if c.ServiceOrder.NumberMaxAttempts < 1 {
		return fmt.Errorf("service_order.number_max_attempts must be at least 1")
	}
	return nil
}

const defaultJWTSecret = "change-me-in-production"

func (c *Config) isProduction() bool {
	switch strings.ToLower(c.Server.Mode) {
	case "release", "production", "prod":
		return true
	}
	return false
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "debug")
	v.SetDefault("server.timezone", "America/Sao_Paulo")
	v.SetDefault("server.allowed_origins", []string{"*"})

	// Database defaults
	v.SetDefault("database.driver", "mysql")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 3306)
	v.SetDefault("database.username", "root")
	v.SetDefault("database.password", "password")
	v.SetDefault("database.database", "garage_dev")
	v.SetDefault("database.sqlite_path", "garage.db")
	v.SetDefault("database.max_idle_conns", 10)
	v.SetDefault("database.max_open_conns", 100)
	v.SetDefault("database.conn_max_lifetime", 60)

	// Logger defaults
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.output_path", "stdout")

	// Auth defaults
	v.SetDefault("auth.password.bcrypt_cost", 12)
	v.SetDefault("auth.jwt.secret", defaultJWTSecret)
	v.SetDefault("auth.jwt.access_exp_minutes", 480)

	// Email defaults
	v.SetDefault("email.enabled", false)
	v.SetDefault("email.smtp_host", "localhost")
	v.SetDefault("email.smtp_port", 1025)
	v.SetDefault("email.from_address", "noreply@garage.local")
	v.SetDefault("email.from_name", "Garage")

	// Redis defaults (empty host disables redis)
	v.SetDefault("redis.host", "")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.db", 0)

	// Notification defaults
	v.SetDefault("telegram.enabled", false)
	v.SetDefault("slack.enabled", false)
	v.SetDefault("notification.locale", "pt-BR")
	v.SetDefault("notification.currency", "BRL")

	v.SetDefault("scheduler.enabled", false)
	v.SetDefault("scheduler.agenda_cron", "0 18 * * *")

	// Service order defaults
	v.SetDefault("service_order.number_prefix", "OS")
	v.SetDefault("service_order.number_max_attempts", 5)
	v.SetDefault("service_order.default_payment_method", "cash")
	v.SetDefault("service_order.default_per_page", 15)
	v.SetDefault("service_order.export_max_rows", 5000)
	v.SetDefault("service_order.stats_cache_seconds", 60)

	v.SetDefault("rate_limit.enabled", false)
	v.SetDefault("rate_limit.requests", 120)
	v.SetDefault("rate_limit.window_seconds", 60)

	v.SetDefault("seed.admin_email", "admin@garage.local")
	v.SetDefault("seed.admin_password", "admin123")
}
