package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Tables holds the DynamoDB table names, one per collection.
type Tables struct {
	WorkOrders     string
	Invoices       string
	Statuses       string
	Counters       string
	PaymentMethods string
	Payments       string
}

type AWS struct {
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	// DynamoDBEndpoint points the client at a local DynamoDB when set.
	DynamoDBEndpoint string
}

type MercadoPago struct {
	AccessToken     string
	Mock            bool
	TestPayerEmail  string
	TestPayerUserID string
}

// Config holds application configuration.
type Config struct {
	Port           string
	GinMode        string
	AWS            AWS
	Tables         Tables
	AllocationMode string

	RedisAddr    string
	IssueLockTTL time.Duration

	KafkaBrokers []string
	KafkaTopic   string

	MercadoPago MercadoPago

	// RateLimit uses the ulule/limiter formatted notation, e.g. "100-M".
	RateLimit          string
	CORSAllowedOrigins []string
}

// Load reads configuration from the environment, after loading .env when present.
// Empty Redis or Kafka settings disable the matching component.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetDefault("PORT", "8080")
	v.SetDefault("GIN_MODE", "debug")
	v.SetDefault("AWS_REGION", "us-east-1")
	v.SetDefault("AWS_ACCESS_KEY_ID", "local")
	v.SetDefault("AWS_SECRET_ACCESS_KEY", "local")
	v.SetDefault("DYNAMODB_ENDPOINT", "")
	v.SetDefault("WORK_ORDERS_TABLE", "work_orders")
	v.SetDefault("INVOICES_TABLE", "invoices")
	v.SetDefault("STATUSES_TABLE", "statuses")
	v.SetDefault("COUNTERS_TABLE", "invoice_counters")
	v.SetDefault("PAYMENT_METHODS_TABLE", "payment_methods")
	v.SetDefault("PAYMENTS_TABLE", "payments")
	v.SetDefault("ALLOCATION_MODE", "scan")
	v.SetDefault("REDIS_ADDR", "")
	v.SetDefault("ISSUE_LOCK_TTL", "30s")
	v.SetDefault("KAFKA_BROKERS", "")
	v.SetDefault("KAFKA_TOPIC", "work-order-lifecycle")
	v.SetDefault("MERCADOPAGO_ACCESS_TOKEN", "")
	v.SetDefault("PAYMENT_GATEWAY_MOCK", false)
	v.SetDefault("MERCADOPAGO_TEST_PAYER_EMAIL", "")
	v.SetDefault("MERCADOPAGO_TEST_PAYER_USER_ID", "")
	v.SetDefault("RATE_LIMIT", "300-M")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "*")
	v.AutomaticEnv()

	cfg := &Config{
		Port:    v.GetString("PORT"),
		GinMode: v.GetString("GIN_MODE"),
		AWS: AWS{
			Region:           v.GetString("AWS_REGION"),
			AccessKeyID:      v.GetString("AWS_ACCESS_KEY_ID"),
			SecretAccessKey:  v.GetString("AWS_SECRET_ACCESS_KEY"),
			DynamoDBEndpoint: v.GetString("DYNAMODB_ENDPOINT"),
		},
		Tables: Tables{
			WorkOrders:     v.GetString("WORK_ORDERS_TABLE"),
			Invoices:       v.GetString("INVOICES_TABLE"),
			Statuses:       v.GetString("STATUSES_TABLE"),
			Counters:       v.GetString("COUNTERS_TABLE"),
			PaymentMethods: v.GetString("PAYMENT_METHODS_TABLE"),
			Payments:       v.GetString("PAYMENTS_TABLE"),
		},
		AllocationMode: strings.ToLower(strings.TrimSpace(v.GetString("ALLOCATION_MODE"))),
		RedisAddr:      v.GetString("REDIS_ADDR"),
		KafkaBrokers:   splitList(v.GetString("KAFKA_BROKERS")),
		KafkaTopic:     v.GetString("KAFKA_TOPIC"),
		MercadoPago: MercadoPago{
			AccessToken:     v.GetString("MERCADOPAGO_ACCESS_TOKEN"),
			Mock:            mockEnabled(v.GetString("PAYMENT_GATEWAY_MOCK")),
			TestPayerEmail:  v.GetString("MERCADOPAGO_TEST_PAYER_EMAIL"),
			TestPayerUserID: v.GetString("MERCADOPAGO_TEST_PAYER_USER_ID"),
		},
		RateLimit:          v.GetString("RATE_LIMIT"),
		CORSAllowedOrigins: splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
	}

	ttlStr := v.GetString("ISSUE_LOCK_TTL")
	ttl, err := time.ParseDuration(ttlStr)
	if err != nil || ttl <= 0 {
		ttl = 30 * time.Second
		log.Printf("[config] invalid ISSUE_LOCK_TTL=%q, defaulting to %s", ttlStr, ttl)
	}
	cfg.IssueLockTTL = ttl

	if cfg.MercadoPago.AccessToken == "" && !cfg.MercadoPago.Mock {
		log.Printf("[config] MERCADOPAGO_ACCESS_TOKEN not set; payments will fail until PAYMENT_GATEWAY_MOCK is enabled")
	}

	return cfg, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func mockEnabled(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "yes", "on", "mock":
		return true
	}
	return false
}
