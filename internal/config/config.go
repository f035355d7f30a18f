package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// Переменные окружения с секретами, перекрывают значения из файла
const (
	EnvDBPassword    = "SCHEDULING_DB_PASSWORD"
	EnvRedisPassword = "SCHEDULING_REDIS_PASSWORD"
)

var (
	// ErrReadConfig возвращается, когда файл конфигурации не удалось прочитать
	ErrReadConfig = errors.New("config: failed to read config file")

	// ErrInvalidConfig возвращается, когда конфигурация не прошла проверку
	ErrInvalidConfig = errors.New("config: invalid configuration")
)

// Config конфигурация сервиса
type Config struct {
	Server       ServerConfig       `toml:"server"`
	Database     DatabaseConfig     `toml:"database"`
	Logs         LogsConfig         `toml:"logs"`
	Metrics      MetricsConfig      `toml:"metrics"`
	StaffService StaffServiceConfig `toml:"staff_service"`
	Kafka        KafkaConfig        `toml:"kafka"`
	Redis        RedisConfig        `toml:"redis"`
	Policy       PolicyConfig       `toml:"policy"`
}

// ServerConfig настройки HTTP сервера, таймауты в секундах
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
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
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
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

// StaffServiceConfig клиент справочника сотрудников, таймаут в секундах
type StaffServiceConfig struct {
	URL     string `toml:"url"`
	Timeout int    `toml:"timeout"`
}

// KafkaConfig публикация доменных событий
// При enabled = false события пишутся в лог
type KafkaConfig struct {
	Enabled     bool     `toml:"enabled"`
	Brokers     []string `toml:"brokers"`
	ClientID    string   `toml:"client_id"`
	TopicPrefix string   `toml:"topic_prefix"`
}

// RedisConfig хранилище ключей идемпотентности, TTL в секундах
type RedisConfig struct {
	Enabled    bool   `toml:"enabled"`
	Addr       string `toml:"addr"`
	Password   string `toml:"password"`
	DB         int    `toml:"db"`
	KeyPrefix  string `toml:"key_prefix"`
	PendingTTL int    `toml:"pending_ttl"`
	TTL        int    `toml:"ttl"`
}

type PolicyConfig struct {
	ReschedulingEnabled   bool `toml:"rescheduling_enabled"`
	AssignmentEnabled     bool `toml:"assignment_enabled"`
	MaxAdvanceBookingDays int  `toml:"max_advance_booking_days"`
}

// Load читает конфигурацию из TOML файла
// Перед чтением подгружается .env из рабочей директории, если он есть
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := Default()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrReadConfig, path, err)
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Default конфигурация со значениями по умолчанию
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
			ServiceName: "scheduling_service",
		},
		StaffService: StaffServiceConfig{
			Timeout: 5,
		},
		Kafka: KafkaConfig{
			ClientID:    "scheduling-service",
			TopicPrefix: "smc.",
		},
		Redis: RedisConfig{
			KeyPrefix:  "idempotency",
			PendingTTL: 30,
			TTL:        86400,
		},
		Policy: PolicyConfig{
			ReschedulingEnabled: true,
			AssignmentEnabled:   true,
		},
	}
}

func (c *Config) applyEnv() {
	if v, ok := os.LookupEnv(EnvDBPassword); ok {
		c.Database.Password = v
	}
	if v, ok := os.LookupEnv(EnvRedisPassword); ok {
		c.Redis.Password = v
	}
}

// Validate проверяет обязательные поля и диапазоны
func (c *Config) Validate() error {
	var problems []string

	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		problems = append(problems, "server.http_port must be in 1..65535")
	}
	if c.Database.Host == "" || c.Database.DBName == "" || c.Database.User == "" {
		problems = append(problems, "database.host, database.dbname and database.user are required")
	}
	if c.StaffService.URL == "" {
		problems = append(problems, "staff_service.url is required")
	}
	if c.StaffService.Timeout <= 0 {
		problems = append(problems, "staff_service.timeout must be positive")
	}
	if c.Kafka.Enabled && len(c.Kafka.Brokers) == 0 {
		problems = append(problems, "kafka.brokers is required when kafka is enabled")
	}
	if c.Redis.Enabled && c.Redis.Addr == "" {
		problems = append(problems, "redis.addr is required when redis is enabled")
	}
	if c.Policy.MaxAdvanceBookingDays < 0 {
		problems = append(problems, "policy.max_advance_booking_days must not be negative")
	}
	switch strings.ToLower(c.Logs.Level) {
	case "debug", "info", "warn", "error":
	default:
		problems = append(problems, fmt.Sprintf("logs.level %q is not supported", c.Logs.Level))
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(problems, "; "))
	}
	return nil
}

// DomainPolicy политика планирования для вызовов ядра
func (c *Config) DomainPolicy() domain.Policy {
	return domain.Policy{
		ReschedulingEnabled:   c.Policy.ReschedulingEnabled,
		AssignmentEnabled:     c.Policy.AssignmentEnabled,
		MaxAdvanceBookingDays: c.Policy.MaxAdvanceBookingDays,
	}
}
