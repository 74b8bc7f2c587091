package config

import (
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL  string
	Port         string
	IsProduction bool
	JWTSecret    string

	// Payment deadline windows, measured from issue (DP, full) and from the
	// later of issue/unblock (auto-cancel).
	DPDueGrace          time.Duration
	FullPaymentDueGrace time.Duration
	AutoCancelGrace     time.Duration

	// Overdue sweep tuning.
	SweepInterval  time.Duration
	SweepBatchSize int

	// Ledger currency settings. ExchangeRates maps currency code to the rate
	// into the base currency, applied once at posting time.
	BaseCurrency  string
	ExchangeRates map[string]decimal.Decimal

	PosthogAPIKey string
}

// LoadConfig loads configuration from environment variables.
// It looks for a .env file first.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("PORT", "8080")
	v.SetDefault("IS_PRODUCTION", false)
	v.SetDefault("DP_DUE_GRACE", "72h")
	v.SetDefault("FULL_PAYMENT_DUE_GRACE", "336h")
	v.SetDefault("AUTO_CANCEL_GRACE", "96h")
	v.SetDefault("SWEEP_INTERVAL", "15m")
	v.SetDefault("SWEEP_BATCH_SIZE", 100)
	v.SetDefault("BASE_CURRENCY", "IDR")

	dbURL := v.GetString("PGSQL_URL")
	if dbURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	jwtSecret := v.GetString("JWT_SECRET")
	if jwtSecret == "" {
		log.Println("Warning: JWT_SECRET environment variable not set.")
	}

	rates, err := parseExchangeRates(v.GetString("EXCHANGE_RATES"))
	if err != nil {
		return nil, fmt.Errorf("invalid EXCHANGE_RATES: %w", err)
	}

	return &Config{
		DatabaseURL:         dbURL,
		Port:                v.GetString("PORT"),
		IsProduction:        v.GetBool("IS_PRODUCTION"),
		JWTSecret:           jwtSecret,
		DPDueGrace:          v.GetDuration("DP_DUE_GRACE"),
		FullPaymentDueGrace: v.GetDuration("FULL_PAYMENT_DUE_GRACE"),
		AutoCancelGrace:     v.GetDuration("AUTO_CANCEL_GRACE"),
		SweepInterval:       v.GetDuration("SWEEP_INTERVAL"),
		SweepBatchSize:      v.GetInt("SWEEP_BATCH_SIZE"),
		BaseCurrency:        v.GetString("BASE_CURRENCY"),
		ExchangeRates:       rates,
		PosthogAPIKey:       v.GetString("POSTHOG_API_KEY"),
	}, nil
}

// parseExchangeRates decodes a JSON object of currency code to rate, e.g.
// {"USD":"16250","SGD":"12100"}. An empty value means base-currency only.
func parseExchangeRates(raw string) (map[string]decimal.Decimal, error) {
	rates := map[string]decimal.Decimal{}
	if raw == "" {
		return rates, nil
	}
	var asStrings map[string]string
	if err := json.Unmarshal([]byte(raw), &asStrings); err != nil {
		return nil, err
	}
	for code, val := range asStrings {
		rate, err := decimal.NewFromString(val)
		if err != nil {
			return nil, fmt.Errorf("rate for %s: %w", code, err)
		}
		if rate.LessThanOrEqual(decimal.Zero) {
			return nil, fmt.Errorf("rate for %s must be positive", code)
		}
		rates[code] = rate
	}
	return rates, nil
}
