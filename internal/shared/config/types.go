package config

import (
	"fmt"
	"net/url"
	"time"
)

type ServerConfig struct {
	Host           string   `mapstructure:"host"`
	Port           int      `mapstructure:"port"`
	Mode           string   `mapstructure:"mode"`
	BaseURL        string   `mapstructure:"base_url"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
	Timezone       string   `mapstructure:"timezone"`
}

func (s *ServerConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

type DatabaseConfig struct {
	Driver          string `mapstructure:"driver"`
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	Username        string `mapstructure:"username"`
	Password        string `mapstructure:"password"`
	Database        string `mapstructure:"database"`
	SSLMode         string `mapstructure:"ssl_mode"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns"`
	MaxOpenConns    int    `mapstructure:"max_open_conns"`
	ConnMaxLifetime int    `mapstructure:"conn_max_lifetime"`
}

// GetDSN renders the driver specific connection string. All timestamps are stored in UTC.
func (d *DatabaseConfig) GetDSN() string {
	if d.Driver == "postgres" {
		sslMode := d.SSLMode
		if sslMode == "" {
			sslMode = "disable"
		}
		return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s TimeZone=UTC",
			d.Host, d.Port, d.Username, d.Password, d.Database, sslMode)
	}
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
		d.Username, url.QueryEscape(d.Password), d.Host, d.Port, d.Database)
}

type LoggerConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	OutputPath string `mapstructure:"output_path"`
}

// AuthConfig describes how access tokens minted by the external identity provider are
// verified.
type AuthConfig struct {
	JWTSecret string `mapstructure:"jwt_secret"`
	Issuer    string `mapstructure:"issuer"`
	Audience  string `mapstructure:"audience"`
}

type PaymentConfig struct {
	Provider             string `mapstructure:"provider"`
	BaseURL              string `mapstructure:"base_url"`
	SecretKey            string `mapstructure:"secret_key"`
	CallbackToken        string `mapstructure:"callback_token"`
	SuccessRedirectURL   string `mapstructure:"success_redirect_url"`
	FailureRedirectURL   string `mapstructure:"failure_redirect_url"`
	InvoiceDurationHours int    `mapstructure:"invoice_duration_hours"`
	RequestTimeoutSec    int    `mapstructure:"request_timeout_sec"`
}

func (p *PaymentConfig) InvoiceDuration() time.Duration {
	if p.InvoiceDurationHours <= 0 {
		return 24 * time.Hour
	}
	return time.Duration(p.InvoiceDurationHours) * time.Hour
}

func (p *PaymentConfig) RequestTimeout() time.Duration {
	if p.RequestTimeoutSec <= 0 {
		return 15 * time.Second
	}
	return time.Duration(p.RequestTimeoutSec) * time.Second
}

type RateLimitConfig struct {
	Enabled        bool `mapstructure:"enabled"`
	InvoiceLimit   int  `mapstructure:"invoice_limit"`
	InvoiceWindowS int  `mapstructure:"invoice_window_sec"`
}

type NotificationConfig struct {
	Enabled      bool     `mapstructure:"enabled"`
	SMTPHost     string   `mapstructure:"smtp_host"`
	SMTPPort     int      `mapstructure:"smtp_port"`
	SMTPUser     string   `mapstructure:"smtp_user"`
	SMTPPassword string   `mapstructure:"smtp_password"`
	FromAddress  string   `mapstructure:"from_address"`
	FromName     string   `mapstructure:"from_name"`
	OpsAddresses []string `mapstructure:"ops_addresses"`
}

type SchedulerConfig struct {
	ExpiryIntervalMin     int `mapstructure:"expiry_interval_min"`
	ActivationIntervalMin int `mapstructure:"activation_interval_min"`
	ActivationBatchSize   int `mapstructure:"activation_batch_size"`
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

func (r *RedisConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}
