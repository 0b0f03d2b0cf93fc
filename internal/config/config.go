package config

import (
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator"
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf"
	"github.com/knadh/koanf/providers/env"
)

const envPrefix = "GROUPGATE_"

type Config struct {
	Primary  Primary        `koanf:"primary"`
	Server   ServerConfig   `koanf:"server"`
	Database DatabaseConfig `koanf:"database"`
	Stripe   StripeConfig   `koanf:"stripe"`
	Telegram TelegramConfig `koanf:"telegram"`
	Retry    RetryConfig    `koanf:"retry"`
	Logger   LoggerConfig   `koanf:"logger"`
	Worker   WorkerConfig   `koanf:"worker"`
	Scan     ScanConfig     `koanf:"scan"`
}

type Primary struct {
	Env string `koanf:"env" validate:"required"`
}

type ServerConfig struct {
	Port           string        `koanf:"port" validate:"required"`
	ReadTimeout    time.Duration `koanf:"read_timeout" validate:"required"`
	WriteTimeout   time.Duration `koanf:"write_timeout" validate:"required"`
	IdleTimeout    time.Duration `koanf:"idle_timeout" validate:"required"`
	RequestTimeout time.Duration `koanf:"request_timeout"`
}

type DatabaseConfig struct {
	Host            string        `koanf:"host" validate:"required"`
	Port            int           `koanf:"port" validate:"required"`
	User            string        `koanf:"user" validate:"required"`
	Password        string        `koanf:"password" validate:"required"`
	Name            string        `koanf:"name" validate:"required"`
	SSLMode         string        `koanf:"ssl_mode" validate:"required"`
	MaxOpenConns    int           `koanf:"max_open_conns" validate:"required"`
	MaxIdleConns    int           `koanf:"max_idle_conns" validate:"required"`
	ConnMaxLifetime time.Duration `koanf:"conn_max_lifetime" validate:"required"`
	ConnMaxIdleTime time.Duration `koanf:"conn_max_idle_time" validate:"required"`
	AutoMigrate     bool          `koanf:"auto_migrate"`
}

// StripeConfig holds gateway credentials. APIBaseURL overrides the Stripe API host.
type StripeConfig struct {
	SecretKey      string        `koanf:"secret_key" validate:"required"`
	PublishableKey string        `koanf:"publishable_key"`
	Timeout        time.Duration `koanf:"timeout" validate:"required"`
	APIBaseURL     string        `koanf:"api_base_url"`
}

type TelegramConfig struct {
	RequestTimeout time.Duration `koanf:"request_timeout" validate:"required"`
	APIBaseURL     string        `koanf:"api_base_url"`
}

type RetryConfig struct {
	BaseDelay  time.Duration `koanf:"base_delay"`
	MaxRetries int           `koanf:"max_retries"`
}

type WorkerConfig struct {
	ReconcileInterval   time.Duration `koanf:"reconcile_interval" validate:"required"`
	ReconcileAfter      time.Duration `koanf:"reconcile_after" validate:"required"`
	ReconcileMaxBackoff time.Duration `koanf:"reconcile_max_backoff"`
	BatchSize           int           `koanf:"batch_size" validate:"required"`
	ScanEnabled         bool          `koanf:"scan_enabled"`
	ScanInterval        time.Duration `koanf:"scan_interval"`
}

type ScanConfig struct {
	Concurrency   int `koanf:"concurrency"`
	ThresholdDays int `koanf:"threshold_days" validate:"omitempty,min=1,max=365"`
}

func LoadConfig() (*Config, error) {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelError,
	}))
	k := koanf.New(".")

	err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.ReplaceAll(
			strings.ToLower(strings.TrimPrefix(s, envPrefix)),
			"__",
			".",
		)
	}), nil)
	if err != nil {
		logger.Error("failed to load environment variables", "error", err)
		return nil, err
	}

	mainConfig := &Config{}

	err = k.Unmarshal("", mainConfig)
	if err != nil {
		logger.Error("could not unmarshal main config", "error", err)
		return nil, err
	}

	mainConfig.applyDefaults()

	validate := validator.New()

	err = validate.Struct(mainConfig)
	if err != nil {
		logger.Error("config validation failed", "error", err)
		return nil, err
	}

	return mainConfig, nil
}

func (c *Config) applyDefaults() {
	if c.Retry.MaxRetries == 0 {
		c.Retry.MaxRetries = 3
	}
	if c.Retry.BaseDelay == 0 {
		c.Retry.BaseDelay = 500 * time.Millisecond
	}
	if c.Server.RequestTimeout == 0 {
		c.Server.RequestTimeout = 30 * time.Second
	}
	if c.Scan.Concurrency == 0 {
		c.Scan.Concurrency = 8
	}
	if c.Scan.ThresholdDays == 0 {
		c.Scan.ThresholdDays = 7
	}
	if c.Worker.ScanInterval == 0 {
		c.Worker.ScanInterval = time.Hour
	}
	if c.Worker.ReconcileMaxBackoff == 0 {
		c.Worker.ReconcileMaxBackoff = 6 * time.Hour
	}
}
