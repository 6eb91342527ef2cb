package config

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// Config конфигурация сервиса, загружается из TOML-файла при старте
type Config struct {
	Server          ServerConfig      `toml:"server"`
	Database        DatabaseConfig    `toml:"database"`
	Redis           RedisConfig       `toml:"redis"`
	RabbitMQ        RabbitMQConfig    `toml:"rabbitmq"`
	Logs            LogsConfig        `toml:"logs"`
	Metrics         MetricsConfig     `toml:"metrics"`
	AuthProvider    IntegrationConfig `toml:"auth_provider"`
	ProDirectory    IntegrationConfig `toml:"pro_directory"`
	PaymentProvider ProviderConfig    `toml:"payment_provider"`
	PayoutProvider  ProviderConfig    `toml:"payout_provider"`
	Platform        PlatformConfig    `toml:"platform"`
}

// ServerConfig настройки HTTP-сервера
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

// DatabaseConfig настройки подключения к PostgreSQL
type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"`
}

// DSN возвращает строку подключения к PostgreSQL
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// RedisConfig настройки подключения к Redis (блокировки агрегации выплат)
type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

// RabbitMQConfig настройки подключения к RabbitMQ (события уведомлений)
type RabbitMQConfig struct {
	URL      string `toml:"url"`
	Exchange string `toml:"exchange"`
}

// LogsConfig настройки логирования
type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// MetricsConfig настройки prometheus-метрик
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// IntegrationConfig настройки внутреннего HTTP-клиента
type IntegrationConfig struct {
	URL     string `toml:"url"`
	Timeout int    `toml:"timeout"` // seconds
}

// ProviderConfig настройки клиента внешнего провайдера (платежи, выплаты)
type ProviderConfig struct {
	Name         string `toml:"name"`
	URL          string `toml:"url"`
	Timeout      int    `toml:"timeout"`       // seconds
	MaxAttempts  int    `toml:"max_attempts"`  // бюджет повторов для transient-ошибок
	BaseDelayMs  int    `toml:"base_delay_ms"` // базовая задержка экспоненциального backoff
}

// PlatformConfig бизнес-настройки платформы
type PlatformConfig struct {
	FeeBps   int64  `toml:"fee_bps"` // комиссия платформы, базисные пункты
	Currency string `toml:"currency"`
}

// Load загружает конфигурацию из TOML-файла
func Load(path string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("config: failed to decode %s: %w", path, err)
	}

	if cfg.Platform.FeeBps == 0 {
		cfg.Platform.FeeBps = 1000
	}
	if cfg.Platform.Currency == "" {
		cfg.Platform.Currency = "ARS"
	}
	if cfg.PaymentProvider.MaxAttempts == 0 {
		cfg.PaymentProvider.MaxAttempts = 3
	}
	if cfg.PaymentProvider.BaseDelayMs == 0 {
		cfg.PaymentProvider.BaseDelayMs = 200
	}
	if cfg.PayoutProvider.MaxAttempts == 0 {
		cfg.PayoutProvider.MaxAttempts = 3
	}
	if cfg.PayoutProvider.BaseDelayMs == 0 {
		cfg.PayoutProvider.BaseDelayMs = 200
	}

	return &cfg, nil
}
