package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port             string
	Env              string
	PostgresUser     string
	PostgresPassword string
	PostgresDB       string
	PostgresHost     string
	PostgresPort     string
	PostgresSSLMode  string
	RedisURL         string
	CartTTL          time.Duration
	JWTSecret        string
	DeliveryFee      int
	CORSOrigins      []string

	// Payment confirmation tuning
	MpesaCompletionDelay time.Duration
	PaymentPollInterval  time.Duration
	PaymentPollBudget    time.Duration

	// Prescription upload storage
	UploadDir     string
	PublicBaseURL string
	S3Bucket      string
	S3Region      string

	// Optional order event stream
	KafkaBrokers string
	KafkaTopic   string

	// Optional SMS confirmations
	TwilioEnabled bool
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		// No .env file is fine; system environment is used.
	}

	cfg := &Config{
		Port:             getEnv("PORT", "5000"),
		Env:              getEnv("APP_ENV", "development"),
		PostgresUser:     os.Getenv("POSTGRES_USER"),
		PostgresPassword: os.Getenv("POSTGRES_PASSWORD"),
		PostgresDB:       os.Getenv("POSTGRES_DB"),
		PostgresHost:     getEnv("POSTGRES_HOST", "localhost"),
		PostgresPort:     getEnv("POSTGRES_PORT", "5432"),
		PostgresSSLMode:  getEnv("POSTGRES_SSLMODE", "disable"),
		RedisURL:         getEnv("REDIS_URL", "redis://localhost:6379"),
		CartTTL:          getDuration("CART_TTL", 7*24*time.Hour),
		JWTSecret:        getEnv("JWT_SECRET", "afyabora_secret_key_123"),
		DeliveryFee:      getInt("DELIVERY_FEE", 200),
		CORSOrigins:      strings.Split(getEnv("CORS_ORIGINS", "http://localhost:3000,http://localhost:5173"), ","),

		MpesaCompletionDelay: getDuration("MPESA_COMPLETION_DELAY", 5*time.Second),
		PaymentPollInterval:  getDuration("PAYMENT_POLL_INTERVAL", 2*time.Second),
		PaymentPollBudget:    getDuration("PAYMENT_POLL_BUDGET", 60*time.Second),

		UploadDir:     getEnv("UPLOAD_DIR", "uploads"),
		PublicBaseURL: getEnv("PUBLIC_BASE_URL", "http://localhost:5000"),
		S3Bucket:      os.Getenv("S3_BUCKET"),
		S3Region:      getEnv("AWS_REGION", "eu-west-2"),

		KafkaBrokers: os.Getenv("KAFKA_BROKERS"),
		KafkaTopic:   getEnv("ORDER_EVENTS_TOPIC", "order.events"),

		TwilioEnabled: os.Getenv("TWILIO_ACCOUNT_SID") != "",
	}

	if cfg.PostgresUser == "" || cfg.PostgresPassword == "" || cfg.PostgresDB == "" {
		return nil, fmt.Errorf("database config incomplete")
	}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			return n
		}
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
	}
	return fallback
}
