package config

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	sharedConfig "talentika/internal/shared/config"
)

type Config struct {
	Server       sharedConfig.ServerConfig       `mapstructure:"server"`
	Database     sharedConfig.DatabaseConfig     `mapstructure:"database"`
	Logger       sharedConfig.LoggerConfig       `mapstructure:"logger"`
	Auth         sharedConfig.AuthConfig         `mapstructure:"auth"`
	Payment      sharedConfig.PaymentConfig      `mapstructure:"payment"`
	RateLimit    sharedConfig.RateLimitConfig    `mapstructure:"rate_limit"`
	Notification sharedConfig.NotificationConfig `mapstructure:"notification"`
	Scheduler    sharedConfig.SchedulerConfig    `mapstructure:"scheduler"`
	Redis        sharedConfig.RedisConfig        `mapstructure:"redis"`
}

var (
	appConfig   *Config
	appConfigMu sync.RWMutex
)

// Load loads configuration from an optional .env file, the config file and
// TALENTIKA_* environment variables, in increasing order of precedence.
func Load(env string) (*Config, error) {
	// .env is a local development convenience; a missing file is fine.
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./configs")
	v.AddConfigPath("../configs")
	v.AddConfigPath("../../configs")

	v.SetEnvPrefix("TALENTIKA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

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

// Validate rejects configurations the server cannot run with. The mock gateway needs
// no credentials; xendit needs both the secret key and the callback token.
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case "mysql", "postgres":
	default:
		return fmt.Errorf("unsupported database driver: %q", c.Database.Driver)
	}

	switch c.Payment.Provider {
	case "mock":
	case "xendit":
		if c.Payment.SecretKey == "" {
			return errors.New("payment.secret_key is required for the xendit provider")
		}
		if c.Payment.CallbackToken == "" {
			return errors.New("payment.callback_token is required for the xendit provider")
		}
	default:
		return fmt.Errorf("unsupported payment provider: %q", c.Payment.Provider)
	}

	if c.Auth.JWTSecret == "" {
		return errors.New("auth.jwt_secret is required")
	}
	return nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "debug")
	v.SetDefault("server.base_url", "http://localhost:8080")
	v.SetDefault("server.allowed_origins", []string{"http://localhost:3000"})
	v.SetDefault("server.timezone", "Asia/Jakarta")

	// Database defaults
	v.SetDefault("database.driver", "mysql")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 3306)
	v.SetDefault("database.username", "root")
	v.SetDefault("database.password", "password")
	v.SetDefault("database.database", "talentika_dev")
	v.SetDefault("database.ssl_mode", "disable")
	v.SetDefault("database.max_idle_conns", 10)
	v.SetDefault("database.max_open_conns", 100)
	v.SetDefault("database.conn_max_lifetime", 60)

	// Logger defaults
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.output_path", "stdout")

	// Auth defaults
	v.SetDefault("auth.jwt_secret", "")
	v.SetDefault("auth.issuer", "")
	v.SetDefault("auth.audience", "authenticated")

	// Payment defaults
	v.SetDefault("payment.provider", "mock")
	v.SetDefault("payment.base_url", "https://api.xendit.co")
	v.SetDefault("payment.secret_key", "")
	v.SetDefault("payment.callback_token", "")
	v.SetDefault("payment.success_redirect_url", "http://localhost:3000/payment/success")
	v.SetDefault("payment.failure_redirect_url", "http://localhost:3000/payment/failed")
	v.SetDefault("payment.invoice_duration_hours", 24)
	v.SetDefault("payment.request_timeout_sec", 15)

	// Rate limit defaults
	v.SetDefault("rate_limit.enabled", false)
	v.SetDefault("rate_limit.invoice_limit", 10)
	v.SetDefault("rate_limit.invoice_window_sec", 60)

	// Notification defaults
	v.SetDefault("notification.enabled", false)
	v.SetDefault("notification.smtp_host", "localhost")
	v.SetDefault("notification.smtp_port", 1025)
	v.SetDefault("notification.smtp_user", "")
	v.SetDefault("notification.smtp_password", "")
	v.SetDefault("notification.from_address", "noreply@talentika.local")
	v.SetDefault("notification.from_name", "Talentika Billing")
	v.SetDefault("notification.ops_addresses", []string{})

	// Scheduler defaults
	v.SetDefault("scheduler.expiry_interval_min", 15)
	v.SetDefault("scheduler.activation_interval_min", 5)
	v.SetDefault("scheduler.activation_batch_size", 100)

	// Redis defaults
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
}
