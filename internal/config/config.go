package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/text/currency"
)

const (
	StorageFile     = "file"
	StoragePostgres = "postgres"
	StorageMemory   = "memory"
)

type Config struct {
	Env      string
	LogLevel string

	// APIURL is the storefront API root, e.g. https://shop.example/api.
	// Empty means offline: fallback catalog, checkout disabled.
	APIURL      string
	HTTPTimeout time.Duration

	StorageDriver string
	StorageDir    string
	StorageKey    string
	DatabaseURL   string

	Currency currency.Unit

	PersistPolicy      string
	CatalogFallback    string
	CheckoutCartPolicy string
}

// Load reads the configuration from the environment. Outside production a
// .env file in the working directory is loaded first; it never overrides
// variables that are already set.
func Load() (Config, error) {
	env := getenv("STOREFRONT_ENV", "dev")
	if env != "production" {
		if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("godotenv.Load: %w", err)
		}
	}

	unit, err := currency.ParseISO(getenv("STOREFRONT_CURRENCY", "ARS"))
	if err != nil {
		return Config{}, fmt.Errorf("currency.ParseISO: %w", err)
	}

	timeout, err := parseDuration(getenv("STOREFRONT_HTTP_TIMEOUT", "10s"))
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		Env:      env,
		LogLevel: getenv("LOG_LEVEL", "warn"),

		APIURL:      strings.TrimRight(getenv("STOREFRONT_API_URL", ""), "/"),
		HTTPTimeout: timeout,

		StorageDriver: strings.ToLower(getenv("STOREFRONT_STORAGE", StorageFile)),
		StorageDir:    getenv("STOREFRONT_STORAGE_DIR", defaultStorageDir()),
		StorageKey:    getenv("STOREFRONT_CART_KEY", "cart"),
		DatabaseURL:   getenv("DATABASE_URL", ""),

		Currency: unit,

		PersistPolicy:      getenv("STOREFRONT_PERSIST_POLICY", "warn"),
		CatalogFallback:    getenv("STOREFRONT_CATALOG_FALLBACK", "on-error"),
		CheckoutCartPolicy: getenv("STOREFRONT_CHECKOUT_CART", "keep"),
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (c Config) validate() error {
	switch c.StorageDriver {
	case StorageFile:
		if c.StorageDir == "" {
			return fmt.Errorf("STOREFRONT_STORAGE_DIR is empty")
		}
	case StoragePostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required for storage[%s]", c.StorageDriver)
		}
	case StorageMemory:
	default:
		return fmt.Errorf("storage[%s] is not supported", c.StorageDriver)
	}

	return nil
}

func getenv(key, def string) string {
	if v := os.Getenv(key); strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v)
	}
	return def
}

func parseDuration(v string) (time.Duration, error) {
	d, err := time.ParseDuration(v)
	if err == nil {
		return d, nil
	}

	// bare numbers are seconds
	secs, convErr := strconv.Atoi(v)
	if convErr != nil {
		return 0, fmt.Errorf("STOREFRONT_HTTP_TIMEOUT[%s] is not a duration: %w", v, err)
	}

	return time.Duration(secs) * time.Second, nil
}

func defaultStorageDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ".storefront"
	}
	return filepath.Join(dir, "storefront")
}
