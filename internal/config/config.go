// Package config loads runtime settings from the environment, with an
// optional .env file for local development.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// SlotConfig holds the settings of the slot machine front end.
type SlotConfig struct {
	Addr            string        // address the web UI listens on
	CatalogEndpoint string        // remote catalog URL
	TestingPoolSize int           // 0 draws from the whole catalog
	FetchTimeout    time.Duration // upper bound on one catalog request
	Seed            uint64        // 0 seeds from the clock
	SessionTTL      time.Duration
	CleanupInterval time.Duration
	LogVerbose      bool
}

// CatalogConfig holds the settings of the catalog service.
type CatalogConfig struct {
	Addr               string
	DataPath           string // empty serves the embedded catalog
	Seed               uint64
	DiscountMean       float64
	DiscountStdDev     float64
	DiscountValidHours int
	LogVerbose         bool
}

// loadDotEnv reads .env when present. Variables already set in the
// environment win.
func loadDotEnv() {
	_ = godotenv.Load()
}

// LoadSlot reads SlotConfig from the environment.
func LoadSlot() SlotConfig {
	loadDotEnv()
	return SlotConfig{
		Addr:            getenv("SLOT_ADDR", ":8080"),
		CatalogEndpoint: getenv("CATALOG_ENDPOINT", "http://localhost:8001/api/v1/splats"),
		TestingPoolSize: atoi(getenv("TESTING_POOL_SIZE", "5")),
		FetchTimeout:    parseDur(getenv("FETCH_TIMEOUT", "5s"), 5*time.Second),
		Seed:            parseUint(os.Getenv("RANDOM_SEED")),
		SessionTTL:      parseDur(getenv("SESSION_TTL", "1h"), time.Hour),
		CleanupInterval: parseDur(getenv("CLEANUP_INTERVAL", "10m"), 10*time.Minute),
		LogVerbose:      parseBool(getenv("LOG_VERBOSE", "true")),
	}
}

// LoadCatalog reads CatalogConfig from the environment.
func LoadCatalog() CatalogConfig {
	loadDotEnv()
	return CatalogConfig{
		Addr:               getenv("CATALOG_ADDR", ":8001"),
		DataPath:           os.Getenv("CATALOG_DATA"),
		Seed:               parseUint(os.Getenv("RANDOM_SEED")),
		DiscountMean:       parseFloat(getenv("DISCOUNT_MEAN", "10"), 10),
		DiscountStdDev:     parseFloat(getenv("DISCOUNT_STDDEV", "10"), 10),
		DiscountValidHours: atoi(getenv("DISCOUNT_VALID_HOURS", "12")),
		LogVerbose:         parseBool(getenv("LOG_VERBOSE", "true")),
	}
}

func getenv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func atoi(s string) int {
	i, _ := strconv.Atoi(s)
	if i < 0 {
		return 0
	}
	return i
}

func parseUint(s string) uint64 {
	n, _ := strconv.ParseUint(strings.TrimSpace(s), 10, 64)
	return n
}

func parseFloat(s string, def float64) float64 {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return def
	}
	return f
}

func parseBool(s string) bool {
	b, _ := strconv.ParseBool(strings.TrimSpace(s))
	return b
}

func parseDur(s string, def time.Duration) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return def
	}
	return d
}
