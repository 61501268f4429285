// Package config reads the quoting settings from the environment, after an
// optional .env file.
package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Defaults used when a variable is unset or empty.
const (
	DefaultCompanyName = "Catalog Quote"
	DefaultCurrency    = "₫"
)

// Config holds the application settings not owned by PocketBase.
type Config struct {
	CompanyName string
	Currency    string
	SeedDemo    bool
}

// Load reads a .env file from the working directory unless ENV is
// "production", then builds the Config from the environment. A missing
// .env file is not an error.
func Load() Config {
	if os.Getenv("ENV") != "production" {
		if err := godotenv.Load(); err != nil {
			log.Printf("config: Load: no .env file loaded, using system environment: %v", err)
		}
	}
	return FromEnv(os.Getenv)
}

// FromEnv builds the Config through getenv.
func FromEnv(getenv func(string) string) Config {
	cfg := Config{
		CompanyName: DefaultCompanyName,
		Currency:    DefaultCurrency,
		SeedDemo:    true,
	}
	if v := strings.TrimSpace(getenv("QUOTE_COMPANY_NAME")); v != "" {
		cfg.CompanyName = v
	}
	if v := strings.TrimSpace(getenv("QUOTE_CURRENCY")); v != "" {
		cfg.Currency = v
	}
	if v := strings.TrimSpace(getenv("QUOTE_SEED_DEMO")); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			log.Printf("config: FromEnv: invalid QUOTE_SEED_DEMO %q, keeping %v", v, cfg.SeedDemo)
		} else {
			cfg.SeedDemo = b
		}
	}
	return cfg
}
