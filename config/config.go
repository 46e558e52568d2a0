// Package config loads client settings from an optional .env file and the
// process environment. Every setting has a default so the binary runs with
// no configuration at all.
package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	defaultAPIBaseURL = "http://localhost:8000/api"
	defaultPaymentURL = "https://pay.eventify.example/checkout"
	defaultLogDir     = "logs"
)

type Config struct {
	// APIBaseURL is the root of the storefront API, including the /api prefix.
	APIBaseURL string
	// PaymentURL is the hosted card-payment page. The client secret is passed
	// as a query parameter when the page is opened.
	PaymentURL string
	LogDir     string
	Debug      bool
}

// Load reads .env (if present) and then the environment. Environment
// variables win over .env values, which is godotenv's default behavior.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		APIBaseURL: strings.TrimRight(getEnv("EVENTIFY_API_BASE_URL", defaultAPIBaseURL), "/"),
		PaymentURL: getEnv("EVENTIFY_PAYMENT_URL", defaultPaymentURL),
		LogDir:     getEnv("EVENTIFY_LOG_DIR", defaultLogDir),
		Debug:      getEnvBool("EVENTIFY_DEBUG", false),
	}
}

func getEnv(key, fallback string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return fallback
	}
	return value
}
