package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"
	StorageMongo    = "mongo"

	BrokerNone     = "none"
	BrokerKafka    = "kafka"
	BrokerRabbitMQ = "rabbitmq"
)

type Config struct {
	HTTP     HTTPConfig     `yaml:"http"`
	GRPC     GRPCConfig     `yaml:"grpc"`
	Storage  StorageConfig  `yaml:"storage"`
	Database DatabaseConfig `yaml:"database"`
	Mongo    MongoConfig    `yaml:"mongo"`
	Redis    RedisConfig    `yaml:"redis"`
	Broker   BrokerConfig   `yaml:"broker"`
	Kafka    KafkaConfig    `yaml:"kafka"`
	RabbitMQ RabbitMQConfig `yaml:"rabbitmq"`
	Booking  BookingConfig  `yaml:"booking"`
	Worker   WorkerConfig   `yaml:"worker"`
	Log      LogConfig      `yaml:"log"`
	Metrics  MetricsConfig  `yaml:"metrics"`
}

type HTTPConfig struct {
	Address string `yaml:"address"`
	Swagger bool   `yaml:"swagger"`
}

type GRPCConfig struct {
	Address string `yaml:"address"`
}

type StorageConfig struct {
	Driver string `yaml:"driver"`
}

type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
	SSLMode  string `yaml:"ssl_mode"`
}

func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s", d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode)
}

type MongoConfig struct {
	URI      string `yaml:"uri"`
	Database string `yaml:"database"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type BrokerConfig struct {
	Kind string `yaml:"kind"`
}

type KafkaConfig struct {
	Brokers []string `yaml:"brokers"`
	GroupID string   `yaml:"group_id"`
}

type RabbitMQConfig struct {
	URL string `yaml:"url"`
}

// BookingConfig tunes the booking and cancellation workflows.
type BookingConfig struct {
	CodePrefix              string `yaml:"code_prefix"`
	CodeLength              int    `yaml:"code_length"`
	MaxReserveAttempts      int    `yaml:"max_reserve_attempts"`
	MaxCodeAttempts         int    `yaml:"max_code_attempts"`
	CancellationWindowHours int    `yaml:"cancellation_window_hours"`
	Timezone                string `yaml:"timezone"`
	SearchCacheTTLSeconds   int    `yaml:"search_cache_ttl_seconds"`
	BookingTopic            string `yaml:"booking_topic"`
	NotificationsTopic      string `yaml:"notifications_topic"`
	ReconciliationTopic     string `yaml:"reconciliation_topic"`
}

func (b BookingConfig) CancellationWindow() time.Duration {
	return time.Duration(b.CancellationWindowHours) * time.Hour
}

func (b BookingConfig) SearchCacheTTL() time.Duration {
	return time.Duration(b.SearchCacheTTLSeconds) * time.Second
}

// Location resolves the timezone flight schedules are expressed in.
func (b BookingConfig) Location() (*time.Location, error) {
	return time.LoadLocation(b.Timezone)
}

type WorkerConfig struct {
	AuditIntervalMinutes int `yaml:"audit_interval_minutes"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

type MetricsConfig struct {
	Namespace string `yaml:"namespace"`
}

// LoadConfig reads .env (when present) and then the YAML file at path.
func LoadConfig(path string) (*Config, error) {
	_ = godotenv.Load()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	cfg.applyDefaults()

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Path returns CONFIG_PATH or the default file name.
func Path() string {
	if p := os.Getenv("CONFIG_PATH"); p != "" {
		return p
	}
	return "config.yaml"
}

func (c *Config) applyDefaults() {
	if c.HTTP.Address == "" {
		c.HTTP.Address = ":8080"
	}
	if c.GRPC.Address == "" {
		c.GRPC.Address = ":9090"
	}
	if c.Storage.Driver == "" {
		c.Storage.Driver = StorageMemory
	}
	if c.Broker.Kind == "" {
		c.Broker.Kind = BrokerNone
	}
	if c.Mongo.Database == "" {
		c.Mongo.Database = "flights"
	}
	if c.Kafka.GroupID == "" {
		c.Kafka.GroupID = "flightinventory-worker"
	}

	b := &c.Booking
	if b.CodePrefix == "" {
		b.CodePrefix = "FL"
	}
	if b.CodeLength == 0 {
		b.CodeLength = 8
	}
	if b.MaxReserveAttempts == 0 {
		b.MaxReserveAttempts = 5
	}
	if b.MaxCodeAttempts == 0 {
		b.MaxCodeAttempts = 3
	}
	if b.CancellationWindowHours == 0 {
		b.CancellationWindowHours = 24
	}
	if b.Timezone == "" {
		b.Timezone = "UTC"
	}
	if b.SearchCacheTTLSeconds == 0 {
		b.SearchCacheTTLSeconds = 30
	}
	if b.BookingTopic == "" {
		b.BookingTopic = "booking.events"
	}
	if b.NotificationsTopic == "" {
		b.NotificationsTopic = "booking.notifications"
	}
	if b.ReconciliationTopic == "" {
		b.ReconciliationTopic = "inventory.reconciliation"
	}

	if c.Worker.AuditIntervalMinutes == 0 {
		c.Worker.AuditIntervalMinutes = 15
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Metrics.Namespace == "" {
		c.Metrics.Namespace = "flightinventory"
	}
}

func (c *Config) validate() error {
	switch c.Storage.Driver {
	case StorageMemory, StoragePostgres, StorageMongo:
	default:
		return fmt.Errorf("unknown storage driver %q", c.Storage.Driver)
	}
	switch c.Broker.Kind {
	case BrokerNone, BrokerKafka, BrokerRabbitMQ:
	default:
		return fmt.Errorf("unknown broker kind %q", c.Broker.Kind)
	}
	if c.Booking.CodeLength < 4 {
		return fmt.Errorf("booking.code_length must be at least 4, got %d", c.Booking.CodeLength)
	}
	if c.Booking.MaxReserveAttempts < 1 || c.Booking.MaxCodeAttempts < 1 {
		return fmt.Errorf("booking retry limits must be positive")
	}
	if _, err := c.Booking.Location(); err != nil {
		return fmt.Errorf("booking.timezone: %w", err)
	}
	if c.Worker.AuditIntervalMinutes < 1 {
		return fmt.Errorf("worker.audit_interval_minutes must be at least 1, got %d", c.Worker.AuditIntervalMinutes)
	}
	return nil
}
