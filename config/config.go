package config

import (
	"fmt"
	"os"
	"time"
)

// Config holds everything read from the environment at startup. It is built
// once in main and handed to the services and handlers that need it, so no
// component reads os.Getenv on its own.
type Config struct {
	Port        string
	DatabaseURL string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	JWTSecret     string
	AdminAPIKey   string
	AdminUsername string
	AdminPassword string

	MercadoPago MercadoPagoConfig
	Supabase    SupabaseConfig
	SMTP        SMTPConfig
}

// MercadoPagoConfig configures the payment gateway client.
type MercadoPagoConfig struct {
	AccessToken string
	PublicKey   string
	BaseURL     string
	Timeout     time.Duration
	SuccessURL  string
	PendingURL  string
	FailureURL  string
}

// SupabaseConfig configures the object storage client.
type SupabaseConfig struct {
	URL     string
	Key     string
	Bucket  string
	Timeout time.Duration
}

// SMTPConfig configures the order notification mailer. Empty Host disables it.
type SMTPConfig struct {
	Host     string
	Port     string
	Username string
	Password string
	From     string
}

// Load builds the Config from environment variables. It fails fast when the
// payment gateway credentials are missing, since checkout cannot work without
// them.
func Load() (*Config, error) {
	cfg := &Config{
		Port:        getEnv("PORT", "8080"),
		DatabaseURL: os.Getenv("DATABASE_URL"),

		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     os.Getenv("DB_USER"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     os.Getenv("DB_NAME"),

		JWTSecret:     os.Getenv("JWT_SECRET"),
		AdminAPIKey:   os.Getenv("ADMIN_API_KEY"),
		AdminUsername: os.Getenv("ADMIN_USERNAME"),
		AdminPassword: os.Getenv("ADMIN_PASSWORD"),

		MercadoPago: MercadoPagoConfig{
			AccessToken: os.Getenv("MERCADOPAGO_ACCESS_TOKEN"),
			PublicKey:   os.Getenv("MERCADOPAGO_PUBLIC_KEY"),
			BaseURL:     getEnv("MERCADOPAGO_BASE_URL", "https://api.mercadopago.com"),
			Timeout:     getDuration("MERCADOPAGO_TIMEOUT", 10*time.Second),
			SuccessURL:  os.Getenv("MERCADOPAGO_SUCCESS_URL"),
			PendingURL:  os.Getenv("MERCADOPAGO_PENDING_URL"),
			FailureURL:  os.Getenv("MERCADOPAGO_FAILURE_URL"),
		},
		Supabase: SupabaseConfig{
			URL:     os.Getenv("SUPABASE_URL"),
			Key:     os.Getenv("SUPABASE_KEY"),
			Bucket:  getEnv("SUPABASE_BUCKET", "imagens-produtos"),
			Timeout: getDuration("SUPABASE_TIMEOUT", 30*time.Second),
		},
		SMTP: SMTPConfig{
			Host:     os.Getenv("SMTP_HOST"),
			Port:     getEnv("SMTP_PORT", "587"),
			Username: os.Getenv("SMTP_USERNAME"),
			Password: os.Getenv("SMTP_PASSWORD"),
			From:     os.Getenv("SMTP_FROM"),
		},
	}

	if cfg.MercadoPago.AccessToken == "" {
		return nil, fmt.Errorf("MERCADOPAGO_ACCESS_TOKEN is not set")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is not set")
	}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
