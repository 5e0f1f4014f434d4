package config

import (
	"os"
	"strings"

	"checkout-service/pkg/database"

	"go.uber.org/zap"
)

type Config struct {
	Port string

	DB     DB
	Ventas Ventas

	JWT JWT

	KafkaBrokers []string
	KafkaTopic   string
}

type DB struct {
	database.Config
}

// Ventas is the secondary analytical store. The service keeps running
// when it is unreachable, so every field is optional.
type Ventas struct {
	database.Config
	Enabled bool
}

type JWT struct {
	Secret   string
	Issuer   string
	Audience string
}

func Load(log *zap.Logger) *Config {
	return &Config{
		Port: getEnv("APP_PORT", log),
		DB: DB{
			Config: database.Config{
				Host:     getEnv("DB_HOST", log),
				Port:     getEnv("DB_PORT", log),
				User:     getEnv("DB_USER", log),
				Password: getEnv("DB_PASSWORD", log),
				Name:     getEnv("DB_NAME", log),
				SSLMode:  getEnv("DB_SSLMODE", log),
			},
		},
		Ventas: Ventas{
			Enabled: os.Getenv("VENTAS_DB_ENABLED") == "true",
			Config: database.Config{
				Host:     os.Getenv("VENTAS_DB_HOST"),
				Port:     os.Getenv("VENTAS_DB_PORT"),
				User:     os.Getenv("VENTAS_DB_USER"),
				Password: os.Getenv("VENTAS_DB_PASSWORD"),
				Name:     os.Getenv("VENTAS_DB_NAME"),
				SSLMode:  os.Getenv("VENTAS_DB_SSLMODE"),
			},
		},
		JWT: JWT{
			Secret:   getEnv("JWT_SECRET", log),
			Issuer:   getEnv("JWT_ISSUER", log),
			Audience: getEnv("JWT_AUDIENCE", log),
		},
		KafkaBrokers: splitAndTrim(os.Getenv("KAFKA_BROKERS")),
		KafkaTopic:   os.Getenv("KAFKA_TOPIC_ORDERS"),
	}
}

func getEnv(key string, log *zap.Logger) string {
	if val, exists := os.LookupEnv(key); exists {
		return val
	}
	log.Error("required environment variable is not set", zap.String("key", key))
	panic("missing required environment variable: " + key)
}

func splitAndTrim(s string) []string {
	if s == "" {
		return nil
	}
	parts := []string{}
	for _, p := range strings.Split(s, ",") {
		pt := strings.TrimSpace(p)
		if pt != "" {
			parts = append(parts, pt)
		}
	}
	return parts
}
