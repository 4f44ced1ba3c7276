package config

import (
	"errors"
	"fmt"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/BurntSushi/toml"
	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix префикс переменных окружения для секретов
const EnvPrefix = "WELLMIO"

var (
	// ErrLoad возвращается, когда файл конфигурации не удалось прочитать
	ErrLoad = errors.New("config: failed to load")

	// ErrInvalid возвращается, когда конфигурация не прошла проверку
	ErrInvalid = errors.New("config: invalid configuration")
)

// Config конфигурация сервиса
type Config struct {
	Server   ServerConfig   `toml:"server"`
	Database DatabaseConfig `toml:"database"`
	Logs     LogsConfig     `toml:"logs"`
	Metrics  MetricsConfig  `toml:"metrics"`
	Auth     AuthConfig     `toml:"auth"`
	Payments PaymentsConfig `toml:"payments"`
	Cache    CacheConfig    `toml:"cache"`
	Events   EventsConfig   `toml:"events"`
	Booking  BookingConfig  `toml:"booking"`
}

type ServerConfig struct {
	HTTPPort              int `toml:"http_port"`
	ReadTimeout           int `toml:"read_timeout"`
	WriteTimeout          int `toml:"write_timeout"`
	IdleTimeout           int `toml:"idle_timeout"`
	ShutdownTimeout       int `toml:"shutdown_timeout"`
	RequestTimeoutSeconds int `toml:"request_timeout_seconds"`
}

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

// DSN строка подключения для lib/pq
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

type LogsConfig struct {
	File       string `toml:"file"`
	Level      string `toml:"level"`
	MaxSizeMB  int    `toml:"max_size_mb"`
	MaxBackups int    `toml:"max_backups"`
	MaxAgeDays int    `toml:"max_age_days"`
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

type AuthConfig struct {
	JWTSecret string `toml:"jwt_secret"`
	AdminRole string `toml:"admin_role"`
}

type PaymentsConfig struct {
	BaseURL                 string `toml:"base_url"`
	SecretKey               string `toml:"secret_key"`
	WebhookSecret           string `toml:"webhook_secret"`
	SuccessURL              string `toml:"success_url"`
	CancelURL               string `toml:"cancel_url"`
	ProductName             string `toml:"product_name"`
	TimeoutSeconds          int    `toml:"timeout_seconds"`
	WebhookToleranceSeconds int    `toml:"webhook_tolerance_seconds"`
}

type CacheConfig struct {
	Enabled    bool   `toml:"enabled"`
	Addr       string `toml:"addr"`
	Password   string `toml:"password"`
	DB         int    `toml:"db"`
	TTLSeconds int    `toml:"ttl_seconds"`
}

type EventsConfig struct {
	Enabled  bool   `toml:"enabled"`
	URL      string `toml:"url"`
	Exchange string `toml:"exchange"`
}

type BookingConfig struct {
	DefaultTimezone string `toml:"default_timezone"`
}

// secrets значения, которые можно переопределить из окружения (WELLMIO_*)
type secrets struct {
	DatabasePassword string `envconfig:"DB_PASSWORD"`
	JWTSecret        string `envconfig:"JWT_SECRET"`
	PaymentsKey      string `envconfig:"PAYMENTS_SECRET_KEY"`
	WebhookSecret    string `envconfig:"PAYMENTS_WEBHOOK_SECRET"`
	CachePassword    string `envconfig:"CACHE_PASSWORD"`
	EventsURL        string `envconfig:"EVENTS_URL"`
}

// Default конфигурация по умолчанию
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:              8080,
			ReadTimeout:           10,
			WriteTimeout:          30,
			IdleTimeout:           60,
			ShutdownTimeout:       15,
			RequestTimeoutSeconds: 20,
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			User:            "postgres",
			DBName:          "wellmio",
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Logs: LogsConfig{
			Level:      "info",
			MaxSizeMB:  100,
			MaxBackups: 5,
			MaxAgeDays: 30,
		},
		Metrics: MetricsConfig{
			Enabled:     true,
			Path:        "/metrics",
			ServiceName: "wellmio-booking",
		},
		Auth: AuthConfig{
			AdminRole: "admin",
		},
		Payments: PaymentsConfig{
			BaseURL:                 "https://api.stripe.com",
			ProductName:             "Massage chair session",
			TimeoutSeconds:          10,
			WebhookToleranceSeconds: 300,
		},
		Cache: CacheConfig{
			Addr:       "localhost:6379",
			TTLSeconds: 30,
		},
		Events: EventsConfig{
			Exchange: "wellmio.bookings",
		},
		Booking: BookingConfig{
			DefaultTimezone: "Europe/Stockholm",
		},
	}
}

// Load читает TOML файл поверх значений по умолчанию, применяет секреты из окружения и проверяет результат
func Load(path string) (*Config, error) {
	cfg := Default()

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrLoad, path, err)
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) applyEnv() error {
	var env secrets
	if err := envconfig.Process(EnvPrefix, &env); err != nil {
		return fmt.Errorf("%w: environment: %v", ErrLoad, err)
	}

	override(&c.Database.Password, env.DatabasePassword)
	override(&c.Auth.JWTSecret, env.JWTSecret)
	override(&c.Payments.SecretKey, env.PaymentsKey)
	override(&c.Payments.WebhookSecret, env.WebhookSecret)
	override(&c.Cache.Password, env.CachePassword)
	override(&c.Events.URL, env.EventsURL)
	return nil
}

func override(dst *string, value string) {
	if value != "" {
		*dst = value
	}
}

// Validate проверяет обязательные параметры
func (c *Config) Validate() error {
	var problems []string

	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		problems = append(problems, "server.http_port must be in 1..65535")
	}
	if c.Auth.JWTSecret == "" {
		problems = append(problems, "auth.jwt_secret is required")
	}
	if c.Auth.AdminRole == "" {
		problems = append(problems, "auth.admin_role is required")
	}
	if c.Payments.BaseURL == "" {
		problems = append(problems, "payments.base_url is required")
	}
	if c.Payments.WebhookSecret == "" {
		problems = append(problems, "payments.webhook_secret is required")
	}
	if c.Payments.TimeoutSeconds <= 0 {
		problems = append(problems, "payments.timeout_seconds must be positive")
	}
	if c.Payments.WebhookToleranceSeconds < 0 {
		problems = append(problems, "payments.webhook_tolerance_seconds must not be negative")
	}
	if c.Cache.Enabled && c.Cache.Addr == "" {
		problems = append(problems, "cache.addr is required when cache is enabled")
	}
	if c.Events.Enabled && c.Events.URL == "" {
		problems = append(problems, "events.url is required when events are enabled")
	}
	if _, err := time.LoadLocation(c.Booking.DefaultTimezone); err != nil {
		problems = append(problems, fmt.Sprintf("booking.default_timezone %q is unknown", c.Booking.DefaultTimezone))
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalid, strings.Join(problems, "; "))
	}
	return nil
}

// Location часовой пояс по умолчанию. Вызывается после Validate.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Booking.DefaultTimezone)
	if err != nil {
		return time.UTC
	}
	return loc
}
