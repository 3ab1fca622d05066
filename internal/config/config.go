package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/vadimdav12/TestTGBOT/internal/order"
)

type Config struct {
	HTTP     HTTPConfig
	Mongo    MongoConfig
	Redis    RedisConfig
	Postgres order.Credentials
	Kafka    KafkaConfig
	Payment  PaymentConfig
	Bot      BotConfig
}

type HTTPConfig struct {
	Port            string
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
}

type MongoConfig struct {
	URI string
	DB  string
}

// RedisConfig is optional: an empty Addr disables the cart cache.
type RedisConfig struct {
	Addr string
}

// KafkaConfig is optional: empty Brokers disable event publishing.
type KafkaConfig struct {
	Brokers []string
	Topic   string
}

type PaymentConfig struct {
	GatewayURL     string
	Currency       string
	GatewayTimeout time.Duration
	ReceiptsDir    string
}

type BotConfig struct {
	AdminIDs []int64
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	adminIDs, err := parseIDList(getEnv("ADMIN_IDS", ""))
	if err != nil {
		return nil, fmt.Errorf("invalid ADMIN_IDS: %w", err)
	}

	postgresPort, err := strconv.Atoi(getEnv("POSTGRES_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid POSTGRES_PORT: %w", err)
	}

	cfg := &Config{
		HTTP: HTTPConfig{
			Port:            getEnv("HTTP_PORT", "8080"),
			RequestTimeout:  30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Mongo: MongoConfig{
			URI: getEnv("MONGO_URI", "mongodb://localhost:27017"),
			DB:  getEnv("MONGO_DB", "shopdb"),
		},
		Redis: RedisConfig{
			Addr: getEnv("REDIS_ADDR", ""),
		},
		Postgres: order.Credentials{
			Host:              getEnv("POSTGRES_HOST", "localhost"),
			Port:              postgresPort,
			User:              getEnv("POSTGRES_USER", "postgres"),
			Password:          getEnv("POSTGRES_PASSWORD", "postgres"),
			DBName:            getEnv("POSTGRES_DB", "orders"),
			MigrationsDirPath: getEnv("MIGRATIONS_DIR", "migrations"),
		},
		Kafka: KafkaConfig{
			Brokers: splitNonEmpty(getEnv("KAFKA_BROKERS", "")),
			Topic:   getEnv("KAFKA_ORDER_EVENTS_TOPIC", "order-events"),
		},
		Payment: PaymentConfig{
			GatewayURL:     getEnv("PAYMENT_GATEWAY_URL", "http://localhost:9090"),
			Currency:       getEnv("PAYMENT_CURRENCY", "RUB"),
			GatewayTimeout: 10 * time.Second,
			ReceiptsDir:    getEnv("RECEIPTS_DIR", "receipts"),
		},
		Bot: BotConfig{
			AdminIDs: adminIDs,
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.HTTP.Port == "" {
		return fmt.Errorf("HTTP_PORT is required")
	}
	if c.Mongo.URI == "" {
		return fmt.Errorf("MONGO_URI is required")
	}
	if c.Mongo.DB == "" {
		return fmt.Errorf("MONGO_DB is required")
	}
	if c.Postgres.Host == "" {
		return fmt.Errorf("POSTGRES_HOST is required")
	}
	if c.Payment.GatewayURL == "" {
		return fmt.Errorf("PAYMENT_GATEWAY_URL is required")
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func splitNonEmpty(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func parseIDList(s string) ([]int64, error) {
	var out []int64
	for _, part := range splitNonEmpty(s) {
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("bad id %q: %w", part, err)
		}
		out = append(out, id)
	}
	return out, nil
}
