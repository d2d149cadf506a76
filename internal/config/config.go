package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPAddr string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	KafkaBrokers        []string
	KafkaGroupID        string
	KafkaConnectRetries int
	KafkaConnectDelay   time.Duration
	KafkaPollTimeout    time.Duration

	DefaultPageSize int
	MaxPageSize     int

	OTELServiceName string
	OTLPEndpoint    string
	OTLPInsecure    bool
}

func New() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		HTTPAddr:            ":8080",
		KafkaGroupID:        "notification-service",
		KafkaConnectRetries: 5,
		KafkaConnectDelay:   3 * time.Second,
		KafkaPollTimeout:    time.Second,
		DefaultPageSize:     10,
		MaxPageSize:         100,
		OTELServiceName:     "notification-service",
		OTLPInsecure:        true,
	}

	if addr := os.Getenv("HTTP_ADDR"); addr != "" {
		cfg.HTTPAddr = addr
	} else if port := os.Getenv("PORT"); port != "" {
		cfg.HTTPAddr = ":" + port
	}

	cfg.RedisAddr = os.Getenv("REDIS_ADDR")
	cfg.RedisPassword = os.Getenv("REDIS_PASSWORD")
	if v := os.Getenv("REDIS_DB"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.RedisDB = n
		}
	}

	if v := os.Getenv("KAFKA_BROKERS"); v != "" {
		for _, broker := range strings.Split(v, ",") {
			if broker = strings.TrimSpace(broker); broker != "" {
				cfg.KafkaBrokers = append(cfg.KafkaBrokers, broker)
			}
		}
	}
	if v := os.Getenv("KAFKA_GROUP_ID"); v != "" {
		cfg.KafkaGroupID = v
	}
	if v := os.Getenv("KAFKA_CONNECT_RETRIES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.KafkaConnectRetries = n
		}
	}
	if v := os.Getenv("KAFKA_CONNECT_DELAY_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.KafkaConnectDelay = time.Duration(n) * time.Second
		}
	}
	if v := os.Getenv("KAFKA_POLL_TIMEOUT_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.KafkaPollTimeout = time.Duration(n) * time.Second
		}
	}

	if v := os.Getenv("OTEL_SERVICE_NAME"); v != "" {
		cfg.OTELServiceName = v
	}
	if v := os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"); v != "" {
		cfg.OTLPEndpoint = v
	}
	if v := os.Getenv("OTEL_EXPORTER_OTLP_INSECURE"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.OTLPInsecure = b
		}
	}

	return cfg
}
