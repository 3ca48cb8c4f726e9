package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Config holds every process-wide setting. It is loaded once in main and
// handed to the constructors that need it; nothing reads the environment
// after startup.
type Config struct {
	Port        string
	DatabaseDSN string

	JWTSecret string

	RazorpayKeyID     string
	RazorpayKeySecret string
	RazorpayBaseURL   string
	PaymentCurrency   string

	FrontendURL string

	SMTPAddress       string
	SMTPHost          string
	FromEmail         string
	FromEmailPassword string

	S3Bucket string
}

func Load() (Config, error) {
	if err := godotenv.Load(); err != nil {
		// A missing .env file is fine in deployed environments.
		if !os.IsNotExist(err) {
			return Config{}, err
		}
	}

	cfg := Config{
		Port:              getEnv("PORT", "3000"),
		DatabaseDSN:       os.Getenv("DATABASE_DSN"),
		JWTSecret:         os.Getenv("JWT_SECRET"),
		RazorpayKeyID:     os.Getenv("RAZORPAY_KEY_ID"),
		RazorpayKeySecret: os.Getenv("RAZORPAY_KEY_SECRET"),
		RazorpayBaseURL:   getEnv("RAZORPAY_BASE_URL", "https://api.razorpay.com"),
		PaymentCurrency:   getEnv("PAYMENT_CURRENCY", "INR"),
		FrontendURL:       os.Getenv("FRONTEND_URL"),
		SMTPAddress:       os.Getenv("SMTP_ADDRESS"),
		SMTPHost:          os.Getenv("FROM_EMAIL_SMTP"),
		FromEmail:         os.Getenv("FROM_EMAIL"),
		FromEmailPassword: os.Getenv("FROM_EMAIL_PASSWORD"),
		S3Bucket:          getEnv("S3_BUCKET", "samvriksha"),
	}

	if cfg.DatabaseDSN == "" {
		return Config{}, fmt.Errorf("DATABASE_DSN is not set")
	}
	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("JWT_SECRET is not set")
	}
	if cfg.RazorpayKeyID == "" || cfg.RazorpayKeySecret == "" {
		return Config{}, fmt.Errorf("razorpay credentials are not set")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
