package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config is the whole application configuration, loaded from env.
type Config struct {
	Port string

	PostgresUser     string
	PostgresPassword string
	PostgresDB       string
	PostgresHost     string
	PostgresPort     int
	PostgresSSLMode  string

	JWTSecret string

	// Delivery fee schedule, centavos.
	DeliveryFee int64
	PickupFee   int64

	// Optional integrations; empty disables them.
	KafkaBrokers []string
	KafkaTopic   string
	ElasticURL   string
	ElasticIndex string

	GoEnv string
	FEURL string
}

// Load reads the environment. Core settings are required, integrations
// and the fee schedule have defaults.
func Load() (Config, error) {
	pgPort, err := mustAtoi("POSTGRES_PORT")
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		Port: os.Getenv("PORT"),

		PostgresUser:     os.Getenv("POSTGRES_USER"),
		PostgresPassword: os.Getenv("POSTGRES_PASSWORD"),
		PostgresDB:       os.Getenv("POSTGRES_DB"),
		PostgresHost:     os.Getenv("POSTGRES_HOST"),
		PostgresPort:     pgPort,
		PostgresSSLMode:  getenv("POSTGRES_SSLMODE", "disable"),

		JWTSecret: os.Getenv("JWT_SECRET"),

		DeliveryFee: envInt64("DELIVERY_FEE_CENTAVOS", 2000),
		PickupFee:   envInt64("PICKUP_FEE_CENTAVOS", 0),

		KafkaTopic:   getenv("KAFKA_TOPIC", "order-events"),
		ElasticURL:   os.Getenv("ELASTICSEARCH_URL"),
		ElasticIndex: getenv("ELASTICSEARCH_INDEX", "products"),

		GoEnv: getenv("GO_ENV", "dev"),
		FEURL: os.Getenv("FE_URL"),
	}

	if v := os.Getenv("KAFKA_BROKERS"); v != "" {
		cfg.KafkaBrokers = strings.Split(v, ",")
	}

	if cfg.Port == "" {
		return Config{}, fmt.Errorf("PORT is required")
	}
	if cfg.PostgresUser == "" {
		return Config{}, fmt.Errorf("POSTGRES_USER is required")
	}
	if cfg.PostgresPassword == "" {
		return Config{}, fmt.Errorf("POSTGRES_PASSWORD is required")
	}
	if cfg.PostgresDB == "" {
		return Config{}, fmt.Errorf("POSTGRES_DB is required")
	}
	if cfg.PostgresHost == "" {
		return Config{}, fmt.Errorf("POSTGRES_HOST is required")
	}
	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("JWT_SECRET is required")
	}

	return cfg, nil
}

// FeeFor returns the delivery fee for an option; validation of the
// option itself happens in the order usecase.
func (c Config) FeeFor(option string) int64 {
	if option == "pickup" {
		return c.PickupFee
	}
	return c.DeliveryFee
}

func getenv(key string, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}

func envInt64(key string, def int64) int64 {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	i, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return def
	}
	return i
}

func mustAtoi(key string) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return 0, fmt.Errorf("%s is required", key)
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be number: %w", key, err)
	}
	return i, nil
}
