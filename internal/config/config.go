package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

// Хранилище бронирований
const (
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// Драйвер database/sql для PostgreSQL
const (
	SQLDriverPQ  = "postgres"
	SQLDriverPGX = "pgx"
)

var (
	// ErrReadConfig ошибка чтения файла конфигурации
	ErrReadConfig = errors.New("config: failed to read config file")
	// ErrInvalidConfig конфигурация не прошла валидацию
	ErrInvalidConfig = errors.New("config: invalid config")
)

// Config конфигурация сервиса
type Config struct {
	Server        ServerConfig        `toml:"server"`
	Database      DatabaseConfig      `toml:"database"`
	Logs          LogsConfig          `toml:"logs"`
	Metrics       MetricsConfig       `toml:"metrics"`
	MentorProfile MentorProfileConfig `toml:"mentor_profile"`
	Events        EventsConfig        `toml:"events"`
	RTC           RTCConfig           `toml:"rtc"`
	Booking       BookingConfig       `toml:"booking"`
	Live          LiveConfig          `toml:"live"`
}

type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

type DatabaseConfig struct {
	Driver          string `toml:"driver"`
	SQLDriver       string `toml:"sql_driver"`
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
	Level string `toml:"level"`
	File  string `toml:"file"`
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

type MentorProfileConfig struct {
	URL     string `toml:"url"`
	Timeout int    `toml:"timeout"`
}

type EventsConfig struct {
	Enabled bool   `toml:"enabled"`
	NatsURL string `toml:"nats_url"`
	Prefix  string `toml:"subject_prefix"`
}

type RTCConfig struct {
	URL       string `toml:"url"`
	APIKey    string `toml:"api_key"`
	APISecret string `toml:"api_secret"`
}

type BookingConfig struct {
	Timezone string `toml:"timezone"`
}

// Location часовой пояс, в котором интерпретируются дата и слот бронирования
func (c BookingConfig) Location() (*time.Location, error) {
	return time.LoadLocation(c.Timezone)
}

type LiveConfig struct {
	QueueSize        int     `toml:"queue_size"`
	DeliveryAttempts int     `toml:"delivery_attempts"`
	RetryDelayMs     int     `toml:"retry_delay_ms"`
	TranscriptLimit  int     `toml:"transcript_limit"`
	MessageMaxLength int     `toml:"message_max_length"`
	RatePerSecond    float64 `toml:"rate_per_second"`
	RateBurst        int     `toml:"rate_burst"`
	SweepInterval    int     `toml:"sweep_interval"`
}

// Load читает конфигурацию из TOML файла, применяет значения по умолчанию и переменные окружения
func Load(path string) (*Config, error) {
	cfg := Default()

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrReadConfig, err)
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Default конфигурация по умолчанию
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     15,
			WriteTimeout:    15,
			IdleTimeout:     60,
			ShutdownTimeout: 10,
		},
		Database: DatabaseConfig{
			Driver:          DriverPostgres,
			SQLDriver:       SQLDriverPQ,
			Host:            "localhost",
			Port:            5432,
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Logs: LogsConfig{
			Level: "info",
		},
		Metrics: MetricsConfig{
			Path:        "/metrics",
			ServiceName: "mentoring-service",
		},
		MentorProfile: MentorProfileConfig{
			Timeout: 5,
		},
		Events: EventsConfig{
			Prefix: "mentoring",
		},
		Booking: BookingConfig{
			Timezone: "UTC",
		},
		Live: LiveConfig{
			QueueSize:        64,
			DeliveryAttempts: 3,
			RetryDelayMs:     200,
			TranscriptLimit:  200,
			MessageMaxLength: 2000,
			RatePerSecond:    5,
			RateBurst:        10,
			SweepInterval:    60,
		},
	}
}

func (c *Config) applyEnv() {
	if v := os.Getenv("DB_PASSWORD"); v != "" {
		c.Database.Password = v
	}
	if v := os.Getenv("RTC_API_SECRET"); v != "" {
		c.RTC.APISecret = v
	}
	if v := os.Getenv("NATS_URL"); v != "" {
		c.Events.NatsURL = v
	}
}

// Validate проверяет обязательные параметры
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case DriverPostgres:
		if c.Database.Host == "" || c.Database.DBName == "" {
			return fmt.Errorf("%w: database host and dbname are required", ErrInvalidConfig)
		}
		if c.Database.SQLDriver != SQLDriverPQ && c.Database.SQLDriver != SQLDriverPGX {
			return fmt.Errorf("%w: unknown database.sql_driver %q", ErrInvalidConfig, c.Database.SQLDriver)
		}
	case DriverMemory:
	default:
		return fmt.Errorf("%w: unknown database driver %q", ErrInvalidConfig, c.Database.Driver)
	}

	if c.Server.HTTPPort <= 0 {
		return fmt.Errorf("%w: server.http_port must be positive", ErrInvalidConfig)
	}
	if c.MentorProfile.URL == "" {
		return fmt.Errorf("%w: mentor_profile.url is required", ErrInvalidConfig)
	}
	if c.RTC.APISecret == "" {
		return fmt.Errorf("%w: rtc.api_secret is required (or RTC_API_SECRET)", ErrInvalidConfig)
	}
	if c.Events.Enabled && c.Events.NatsURL == "" {
		return fmt.Errorf("%w: events.nats_url is required when events are enabled", ErrInvalidConfig)
	}
	if _, err := c.Booking.Location(); err != nil {
		return fmt.Errorf("%w: booking.timezone: %v", ErrInvalidConfig, err)
	}
	if c.Live.DeliveryAttempts < 1 || c.Live.QueueSize < 1 {
		return fmt.Errorf("%w: live.delivery_attempts and live.queue_size must be positive", ErrInvalidConfig)
	}
	if c.Live.SweepInterval < 1 {
		return fmt.Errorf("%w: live.sweep_interval must be at least 1 second", ErrInvalidConfig)
	}

	return nil
}
