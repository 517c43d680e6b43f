package config

import (
	"os"
	"strconv"
)

type Config struct {
	DatabaseDSN         string
	ServerPort          string
	AppURL              string
	StripeSecretKey     string
	StripeWebhookSecret string
	SMTP2GoAPIKey       string
	SMTP2GoSenderEmail  string
	TestBypassCode      string
	JWTSecret           string
	S3Bucket            string
	SessionExpiryDays   int
}

func Load() *Config {
	return &Config{
		DatabaseDSN:         getEnv("DATABASE_DSN", "root:password@tcp(localhost:3306)/catering?charset=utf8mb4&parseTime=True&loc=Local"),
		ServerPort:          getEnv("PORT", "8080"),
		AppURL:              getEnv("APP_URL", "http://localhost:3000"),
		StripeSecretKey:     getEnv("STRIPE_SECRET_KEY", ""),
		StripeWebhookSecret: getEnv("STRIPE_WEBHOOK_SECRET", ""),
		SMTP2GoAPIKey:       getEnv("SMTP2GO_API_KEY", ""),
		SMTP2GoSenderEmail:  getEnv("SMTP2GO_SENDER_EMAIL", "orders@bluecilantro.ca"),
		TestBypassCode:      getEnv("TEST_BYPASS_CODE", ""),
		JWTSecret:           getEnv("JWT_SECRET", ""),
		S3Bucket:            getEnv("AWS_S3_BUCKET", ""),
		SessionExpiryDays:   getEnvAsInt("SESSION_EXPIRY_DAYS", 7),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
