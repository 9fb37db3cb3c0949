package config

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Addr        string
	DatabaseURL string
	AppBaseURL  string

	StripeSecretKey     string
	StripeWebhookSecret string

	ResendAPIKey string
	EmailFrom    string

	JWTSecret string

	AMQPURL       string
	OrderExchange string

	ProductCacheTTL time.Duration
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

// Load reads configuration from the environment (plus a local .env when
// present). Secrets are left empty when unset; callers decide whether that
// is fatal for the feature they wire.
func Load() Config {
	_ = godotenv.Load()

	ttl := 5 * time.Minute
	if v := os.Getenv("PRODUCT_CACHE_TTL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			ttl = d
		} else {
			log.Printf("[config] invalid PRODUCT_CACHE_TTL %q, using %s", v, ttl)
		}
	}

	cfg := Config{
		Addr:                getenv("APP_ADDR", ":8080"),
		DatabaseURL:         os.Getenv("DATABASE_URL"),
		AppBaseURL:          getenv("APP_BASE_URL", "http://localhost:3000"),
		StripeSecretKey:     os.Getenv("STRIPE_SECRET_KEY"),
		StripeWebhookSecret: os.Getenv("STRIPE_WEBHOOK_SECRET"),
		ResendAPIKey:        os.Getenv("RESEND_API_KEY"),
		EmailFrom:           getenv("EMAIL_FROM", "SafeHeat <orders@safeheat.com>"),
		JWTSecret:           os.Getenv("JWT_SECRET"),
		AMQPURL:             os.Getenv("RABBITMQ_URL"),
		OrderExchange:       getenv("ORDER_EXCHANGE", "orders_exchange"),
		ProductCacheTTL:     ttl,
	}

	log.Printf("[config] APP_ADDR=%s", cfg.Addr)
	log.Printf("[config] APP_BASE_URL=%s", cfg.AppBaseURL)
	log.Printf("[config] PRODUCT_CACHE_TTL=%s", cfg.ProductCacheTTL)
	return cfg
}
