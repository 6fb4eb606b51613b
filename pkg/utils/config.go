package utils

import (
	"errors"
	"os"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	JWT       JWTConfig
	Payment   PaymentConfig
	Redis     RedisConfig
	Kafka     KafkaConfig
	Storage   StorageConfig
	Telemetry TelemetryConfig
	Order     OrderConfig
}

type AppConfig struct {
	Name    string
	Port    string
	Debug   bool
	LogPath string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	SSLMode  string
	MaxConns int32
}

type JWTConfig struct {
	Secret      string
	ExpiryHours int
}

// PaymentConfig points at the Snap-style transaction endpoint of the gateway.
type PaymentConfig struct {
	TransactionURL string
	ServerKey      string
	TimeoutSeconds int
}

type RedisConfig struct {
	Addr             string
	Password         string
	DB               int
	RegionTTLMinutes int
}

type KafkaConfig struct {
	Brokers []string
	Topic   string
}

type StorageConfig struct {
	Dir       string
	PublicURL string
}

type TelemetryConfig struct {
	OTLPEndpoint   string
	ServiceVersion string
}

type OrderConfig struct {
	CodeLength int
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")

	// Set defaults
	viper.SetDefault("APP_NAME", "event-ticketing")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("DEBUG", false)
	viper.SetDefault("LOG_PATH", "logs/")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_SSLMODE", "disable")
	viper.SetDefault("DB_MAX_CONNS", 10)
	viper.SetDefault("JWT_EXPIRY_HOURS", 1)
	viper.SetDefault("PAYMENT_TIMEOUT_SECONDS", 10)
	viper.SetDefault("REDIS_REGION_TTL_MINUTES", 60)
	viper.SetDefault("KAFKA_TOPIC", "orders")
	viper.SetDefault("STORAGE_DIR", "uploads/")
	viper.SetDefault("STORAGE_PUBLIC_URL", "http://localhost:8080/uploads")
	viper.SetDefault("SERVICE_VERSION", "dev")
	viper.SetDefault("ORDER_CODE_LENGTH", 5)

	// .env is optional, the environment wins either way
	if err := viper.ReadInConfig(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}

	viper.AutomaticEnv()

	config := &Config{
		App: AppConfig{
			Name:    viper.GetString("APP_NAME"),
			Port:    viper.GetString("PORT"),
			Debug:   viper.GetBool("DEBUG"),
			LogPath: viper.GetString("LOG_PATH"),
		},
		Database: DatabaseConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			Name:     viper.GetString("DB_NAME"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASS"),
			SSLMode:  viper.GetString("DB_SSLMODE"),
			MaxConns: viper.GetInt32("DB_MAX_CONNS"),
		},
		JWT: JWTConfig{
			Secret:      viper.GetString("JWT_SECRET"),
			ExpiryHours: viper.GetInt("JWT_EXPIRY_HOURS"),
		},
		Payment: PaymentConfig{
			TransactionURL: viper.GetString("MIDTRANS_TRANSACTION_URL"),
			ServerKey:      viper.GetString("MIDTRANS_SERVER_KEY"),
			TimeoutSeconds: viper.GetInt("PAYMENT_TIMEOUT_SECONDS"),
		},
		Redis: RedisConfig{
			Addr:             viper.GetString("REDIS_ADDR"),
			Password:         viper.GetString("REDIS_PASSWORD"),
			DB:               viper.GetInt("REDIS_DB"),
			RegionTTLMinutes: viper.GetInt("REDIS_REGION_TTL_MINUTES"),
		},
		Kafka: KafkaConfig{
			Brokers: splitList(viper.GetString("KAFKA_BROKERS")),
			Topic:   viper.GetString("KAFKA_TOPIC"),
		},
		Storage: StorageConfig{
			Dir:       viper.GetString("STORAGE_DIR"),
			PublicURL: viper.GetString("STORAGE_PUBLIC_URL"),
		},
		Telemetry: TelemetryConfig{
			OTLPEndpoint:   viper.GetString("OTEL_EXPORTER_OTLP_ENDPOINT"),
			ServiceVersion: viper.GetString("SERVICE_VERSION"),
		},
		Order: OrderConfig{
			CodeLength: viper.GetInt("ORDER_CODE_LENGTH"),
		},
	}

	if config.JWT.Secret == "" {
		return nil, errors.New("JWT_SECRET is required")
	}

	return config, nil
}

func splitList(value string) []string {
	if value == "" {
		return nil
	}

	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
