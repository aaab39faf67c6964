// Package config загрузка конфигурации сервиса
// Основной источник - config.toml, переменные окружения с префиксом ARENA
// перекрывают значения из файла (например ARENA_DATABASE_PASSWORD, ARENA_SERVER_HTTP_PORT)
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix префикс переменных окружения
const EnvPrefix = "ARENA"

const (
	StorageDriverPostgres = "postgres"
	StorageDriverMemory   = "memory"

	EventsDriverNone     = "none"
	EventsDriverRabbitMQ = "rabbitmq"
	EventsDriverKafka    = "kafka"
)

var (
	// ErrReadConfig возвращается, когда файл конфигурации не удалось прочитать
	ErrReadConfig = errors.New("config: failed to read config file")

	// ErrEnvOverride возвращается при ошибке разбора переменных окружения
	ErrEnvOverride = errors.New("config: failed to apply environment overrides")

	// ErrInvalidConfig возвращается при недопустимых значениях
	ErrInvalidConfig = errors.New("config: invalid configuration")
)

// Config конфигурация сервиса
type Config struct {
	Server   ServerConfig   `toml:"server" split_words:"true"`
	Database DatabaseConfig `toml:"database" split_words:"true"`
	Storage  StorageConfig  `toml:"storage" split_words:"true"`
	Redis    RedisConfig    `toml:"redis" split_words:"true"`
	Events   EventsConfig   `toml:"events" split_words:"true"`
	Booking  BookingConfig  `toml:"booking" split_words:"true"`
	Metrics  MetricsConfig  `toml:"metrics" split_words:"true"`
	Logs     LogsConfig     `toml:"logs" split_words:"true"`
}

// ServerConfig параметры HTTP сервера, таймауты в секундах
type ServerConfig struct {
	HTTPPort        int `toml:"http_port" split_words:"true"`
	ReadTimeout     int `toml:"read_timeout" split_words:"true"`
	WriteTimeout    int `toml:"write_timeout" split_words:"true"`
	IdleTimeout     int `toml:"idle_timeout" split_words:"true"`
	ShutdownTimeout int `toml:"shutdown_timeout" split_words:"true"`
}

// DatabaseConfig параметры подключения к PostgreSQL
type DatabaseConfig struct {
	Host            string `toml:"host" split_words:"true"`
	Port            int    `toml:"port" split_words:"true"`
	User            string `toml:"user" split_words:"true"`
	Password        string `toml:"password" split_words:"true"`
	DBName          string `toml:"dbname" split_words:"true"`
	SSLMode         string `toml:"sslmode" split_words:"true"`
	MaxOpenConns    int    `toml:"max_open_conns" split_words:"true"`
	MaxIdleConns    int    `toml:"max_idle_conns" split_words:"true"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime" split_words:"true"` // секунды
}

// DSN строка подключения для lib/pq
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// StorageConfig выбор хранилища: postgres или memory
type StorageConfig struct {
	Driver string `toml:"driver" split_words:"true"`
}

// RedisConfig кеш каталога площадок
type RedisConfig struct {
	Enabled  bool   `toml:"enabled" split_words:"true"`
	Addr     string `toml:"addr" split_words:"true"`
	Password string `toml:"password" split_words:"true"`
	DB       int    `toml:"db" split_words:"true"`
	TTL      int    `toml:"ttl" split_words:"true"` // секунды
}

// TTLDuration время жизни записей кеша
func (c RedisConfig) TTLDuration() time.Duration {
	return time.Duration(c.TTL) * time.Second
}

// EventsConfig публикация событий бронирований
type EventsConfig struct {
	Driver   string         `toml:"driver" split_words:"true"`
	RabbitMQ RabbitMQConfig `toml:"rabbitmq" split_words:"true"`
	Kafka    KafkaConfig    `toml:"kafka" split_words:"true"`
}

// RabbitMQConfig параметры публикации в RabbitMQ
type RabbitMQConfig struct {
	URL      string `toml:"url" split_words:"true"`
	Exchange string `toml:"exchange" split_words:"true"`
}

// KafkaConfig параметры публикации в Kafka
type KafkaConfig struct {
	Brokers []string `toml:"brokers" split_words:"true"`
	Topic   string   `toml:"topic" split_words:"true"`
}

// BookingConfig правила бронирования
type BookingConfig struct {
	// Timezone часовой пояс, в котором вычисляется "сегодня"
	Timezone string `toml:"timezone" split_words:"true"`
}

// Location загружает часовой пояс бронирований
func (c BookingConfig) Location() (*time.Location, error) {
	return time.LoadLocation(c.Timezone)
}

// MetricsConfig параметры Prometheus
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled" split_words:"true"`
	Path        string `toml:"path" split_words:"true"`
	ServiceName string `toml:"service_name" split_words:"true"`
}

// LogsConfig параметры логирования
type LogsConfig struct {
	File  string `toml:"file" split_words:"true"`
	Level string `toml:"level" split_words:"true"`
}

// Default конфигурация по умолчанию, поверх нее применяется файл
func Default() Config {
	return Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     15,
			WriteTimeout:    15,
			IdleTimeout:     60,
			ShutdownTimeout: 30,
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			User:            "postgres",
			DBName:          "arena",
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Storage: StorageConfig{Driver: StorageDriverPostgres},
		Redis:   RedisConfig{Addr: "localhost:6379", TTL: 300},
		Events: EventsConfig{
			Driver:   EventsDriverNone,
			RabbitMQ: RabbitMQConfig{Exchange: "arena.bookings"},
			Kafka:    KafkaConfig{Topic: "arena.bookings"},
		},
		Booking: BookingConfig{Timezone: "America/Sao_Paulo"},
		Metrics: MetricsConfig{Path: "/metrics", ServiceName: "booking-service"},
		Logs:    LogsConfig{Level: "info"},
	}
}

// Load читает конфигурацию из TOML файла и применяет переменные окружения
func Load(path string) (*Config, error) {
	cfg := Default()

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrReadConfig, path, err)
	}

	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEnvOverride, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate проверяет согласованность настроек
func (c *Config) Validate() error {
	switch c.Storage.Driver {
	case StorageDriverPostgres, StorageDriverMemory:
	default:
		return fmt.Errorf("%w: unknown storage driver %q", ErrInvalidConfig, c.Storage.Driver)
	}

	switch c.Events.Driver {
	case EventsDriverNone, "":
	case EventsDriverRabbitMQ:
		if c.Events.RabbitMQ.URL == "" {
			return fmt.Errorf("%w: events.rabbitmq.url is required", ErrInvalidConfig)
		}
	case EventsDriverKafka:
		if len(c.Events.Kafka.Brokers) == 0 {
			return fmt.Errorf("%w: events.kafka.brokers is required", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: unknown events driver %q", ErrInvalidConfig, c.Events.Driver)
	}

	if _, err := c.Booking.Location(); err != nil {
		return fmt.Errorf("%w: booking.timezone: %v", ErrInvalidConfig, err)
	}

	if c.Server.HTTPPort <= 0 {
		return fmt.Errorf("%w: server.http_port must be positive", ErrInvalidConfig)
	}

	return nil
}
