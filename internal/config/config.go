package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const PROD_STRING = "prod"

// Config holds all application configuration loaded from environment.
type Config struct {
	IsProduction bool
	ProdOrigins  string
	HTTPAddr     string
	DBDSN        string
	AMQPURL      string

	// Operating window for alternative-slot search, as wall-clock times in
	// WindowLocation. The whole system runs on one configured zone; callers
	// never influence it.
	DayOpen        string
	DayClose       string
	WindowTimezone string

	MaxSuggestions   int
	AdmissionRetries int
}

// Load loads configuration from .env (optional) and environment variables.
func Load() (*Config, error) {
	// Load .env file if it exists
	err := godotenv.Load()
	if err != nil {
		log.Printf("failed to load .env file: %v", err)
	}

	cfg := &Config{}

	// Production origin (default: empty)
	cfg.ProdOrigins = getEnv("PROD_ORIGINS", "")

	// Application environment (default: dev)
	appEnvStr := getEnv("APP_ENV", "dev")
	cfg.IsProduction = appEnvStr == PROD_STRING

	// HTTP listen address (default: :8080)
	cfg.HTTPAddr = getEnv("HTTP_ADDR", ":8080")

	// Database DSN is required
	cfg.DBDSN = os.Getenv("DB_DSN")
	if cfg.DBDSN == "" {
		return nil, fmt.Errorf("DB_DSN is required")
	}

	// AMQP broker for booking-decision events (optional; empty disables publishing)
	cfg.AMQPURL = getEnv("AMQP_URL", "")

	// Daily operating window, validated as HH:MM wall-clock times
	cfg.DayOpen = getEnv("BOOKING_DAY_OPEN", "08:00")
	cfg.DayClose = getEnv("BOOKING_DAY_CLOSE", "20:00")
	for _, v := range []string{cfg.DayOpen, cfg.DayClose} {
		if _, err := time.Parse("15:04", v); err != nil {
			return nil, fmt.Errorf("invalid operating window time %q: %w", v, err)
		}
	}

	// Timezone the operating window is anchored in (default: UTC)
	cfg.WindowTimezone = getEnv("BOOKING_TIMEZONE", "UTC")
	if _, err := time.LoadLocation(cfg.WindowTimezone); err != nil {
		return nil, fmt.Errorf("invalid BOOKING_TIMEZONE: %w", err)
	}

	// Max number of alternative slots suggested on conflict (default: 3)
	cfg.MaxSuggestions, err = getEnvAsInt("BOOKING_MAX_SUGGESTIONS", 3)
	if err != nil {
		return nil, fmt.Errorf("invalid BOOKING_MAX_SUGGESTIONS: %w", err)
	}

	// Admission retries after a storage-level exclusion race (default: 2)
	cfg.AdmissionRetries, err = getEnvAsInt("BOOKING_ADMISSION_RETRIES", 2)
	if err != nil {
		return nil, fmt.Errorf("invalid BOOKING_ADMISSION_RETRIES: %w", err)
	}

	return cfg, nil
}

// getEnv returns the value of the environment variable if set,
// otherwise returns the provided default value.
func getEnv(key, defaultValue string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return defaultValue
}

// getEnvAsInt retrieves an environment variable as an integer.
// It returns the default value if the variable is not set.
// It returns an error if the variable is set but is not a valid integer.
func getEnvAsInt(key string, defaultValue int) (int, error) {
	valStr := getEnv(key, "")
	if valStr == "" {
		return defaultValue, nil
	}

	val, err := strconv.Atoi(valStr)
	if err != nil {
		return 0, fmt.Errorf("env %s value %q is not a valid integer: %w", key, valStr, err)
	}

	return val, nil
}
