package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration values. Everything has a
// default so the service runs with no environment at all; REDIS_ADDR left
// empty selects the in-memory session store.
type Config struct {
	Addr      string
	RedisAddr string

	InterestRate   float64
	ServiceFeeRate float64

	MinQualifiedAmount float64
	MaxQualifiedAmount float64

	PaybillNumber string

	AuthorizeContactDelay time.Duration
	AuthorizeApproveDelay time.Duration

	Development bool
}

// Load reads configuration from environment variables.
func Load() *Config {
	return &Config{
		Addr:                  getString("ADDR", ":8080"),
		RedisAddr:             getString("REDIS_ADDR", ""),
		InterestRate:          getFloat("INTEREST_RATE", 0.08),
		ServiceFeeRate:        getFloat("SERVICE_FEE_RATE", 0.05),
		MinQualifiedAmount:    getFloat("MIN_QUALIFIED_AMOUNT", 2000),
		MaxQualifiedAmount:    getFloat("MAX_QUALIFIED_AMOUNT", 50000),
		PaybillNumber:         getString("PAYBILL_NUMBER", "9876543"),
		AuthorizeContactDelay: getDuration("AUTHORIZE_CONTACT_DELAY", 2*time.Second),
		AuthorizeApproveDelay: getDuration("AUTHORIZE_APPROVE_DELAY", 4*time.Second),
		Development:           getBool("DEVELOPMENT", false),
	}
}

func getString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
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

func getBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}
