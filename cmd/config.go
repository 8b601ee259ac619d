package cmd

import (
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"go.yaml.in/yaml/v4"
)

type Config struct {
	HTTPPort   string `yaml:"http_port"`
	DBHost     string `yaml:"db_host"`
	DBPort     string `yaml:"db_port"`
	DBUser     string `yaml:"db_user"`
	DBPassword string `yaml:"db_password"`
	DBName     string `yaml:"db_name"`
	DBSslMode  string `yaml:"db_sslmode"`

	KafkaBrokers     []string `yaml:"kafka_brokers"`
	KafkaEventsTopic string   `yaml:"kafka_events_topic"`

	RedisAddr       string        `yaml:"redis_addr"`
	CourierCacheTTL time.Duration `yaml:"courier_cache_ttl"`

	OutboxRelaySchedule string `yaml:"outbox_relay_schedule"`
	OutboxBatchSize     int    `yaml:"outbox_batch_size"`
}

// DefaultConfig returns the settings used when neither the file nor the environment sets a key.
func DefaultConfig() Config {
	return Config{
		HTTPPort:            "8080",
		DBPort:              "5432",
		DBSslMode:           "disable",
		KafkaBrokers:        []string{"localhost:9092"},
		KafkaEventsTopic:    "candy.events",
		RedisAddr:           "localhost:6379",
		CourierCacheTTL:     5 * time.Minute,
		OutboxRelaySchedule: "*/2 * * * * *",
		OutboxBatchSize:     100,
	}
}

// LoadConfig reads configuration in order: defaults → YAML file (--config) → .env → environment → flags.
func LoadConfig(args []string) (Config, error) {
	fs := pflag.NewFlagSet("candydelivery", pflag.ContinueOnError)
	configPath := fs.StringP("config", "c", "", "path to a YAML config file")
	port := fs.StringP("port", "p", "", "HTTP port to listen on")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	cfg := DefaultConfig()
	if *configPath != "" {
		if err := cfg.loadFile(*configPath); err != nil {
			return Config{}, err
		}
	}

	// A missing .env is fine; variables already in the environment win.
	_ = godotenv.Load(".env")

	if err := cfg.applyEnv(); err != nil {
		return Config{}, err
	}

	if fs.Changed("port") {
		cfg.HTTPPort = *port
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err = yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to unmarshal YAML: %w", err)
	}
	return nil
}

func (c *Config) applyEnv() error {
	vars := map[string]*string{
		"HTTP_PORT":             &c.HTTPPort,
		"DB_HOST":               &c.DBHost,
		"DB_PORT":               &c.DBPort,
		"DB_USER":               &c.DBUser,
		"DB_PASSWORD":           &c.DBPassword,
		"DB_NAME":               &c.DBName,
		"DB_SSLMODE":            &c.DBSslMode,
		"KAFKA_EVENTS_TOPIC":    &c.KafkaEventsTopic,
		"REDIS_ADDR":            &c.RedisAddr,
		"OUTBOX_RELAY_SCHEDULE": &c.OutboxRelaySchedule,
	}
	for key, dst := range vars {
		if v, ok := os.LookupEnv(key); ok {
			*dst = v
		}
	}

	if v, ok := os.LookupEnv("KAFKA_BROKERS"); ok {
		c.KafkaBrokers = splitList(v)
	}
	if v, ok := os.LookupEnv("COURIER_CACHE_TTL"); ok {
		ttl, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid COURIER_CACHE_TTL: %w", err)
		}
		c.CourierCacheTTL = ttl
	}
	if v, ok := os.LookupEnv("OUTBOX_BATCH_SIZE"); ok {
		size, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid OUTBOX_BATCH_SIZE: %w", err)
		}
		c.OutboxBatchSize = size
	}
	return nil
}

// Validate rejects settings the service cannot start with.
func (c Config) Validate() error {
	if c.DBHost == "" {
		return fmt.Errorf("db host is required")
	}
	if c.DBName == "" {
		return fmt.Errorf("db name is required")
	}
	if err := validatePort("http port", c.HTTPPort); err != nil {
		return err
	}
	if err := validatePort("db port", c.DBPort); err != nil {
		return err
	}
	if len(c.KafkaBrokers) == 0 {
		return fmt.Errorf("at least one kafka broker is required")
	}
	if c.KafkaEventsTopic == "" {
		return fmt.Errorf("kafka events topic is required")
	}
	if c.CourierCacheTTL <= 0 {
		return fmt.Errorf("invalid courier cache ttl: %s", c.CourierCacheTTL)
	}
	if c.OutboxBatchSize <= 0 {
		return fmt.Errorf("invalid outbox batch size: %d", c.OutboxBatchSize)
	}
	return nil
}

// DSN returns the PostgreSQL connection string.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}

// HTTPAddr returns the listen address of the HTTP server.
func (c Config) HTTPAddr() string {
	return net.JoinHostPort("0.0.0.0", c.HTTPPort)
}

func validatePort(name, value string) error {
	p, err := strconv.Atoi(value)
	if err != nil || p <= 0 || p > 65535 {
		return fmt.Errorf("invalid %s: %q", name, value)
	}
	return nil
}

func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
