package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	Env string

	// Server
	Port           string
	PipelineAPIKey string

	// Database
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// Source site
	SourceBaseURL  string
	UserAgent      string
	RequestTimeout time.Duration

	// Sync
	Tabs                  []string
	ListingTab            string
	MarketCapLookbackDays int
	InsertBatchSize       int
	FillMarketCaps        bool
}

// DefaultUserAgent is sent with every request to the source site, which
// serves an empty page to clients that do not look like a browser.
const DefaultUserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_4) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/83.0.4103.97 Safari/537.36"

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if not already loaded
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	config := &Config{
		Env: getEnv("ENV", "development"),

		// Server
		Port:           getEnv("PORT", "8080"),
		PipelineAPIKey: getEnv("PIPELINE_API_KEY", ""),

		// Database
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "fundsync"),
		DBPassword: getEnv("DB_PASSWORD", "fundsync"),
		DBName:     getEnv("DB_NAME", "fundsync"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		// Source site
		SourceBaseURL: strings.TrimRight(getEnv("SOURCE_BASE_URL", "https://www.mufap.com.pk"), "/"),
		UserAgent:     getEnv("USER_AGENT", DefaultUserAgent),

		// Sync
		Tabs:       splitList(getEnv("SYNC_TABS", "01,02,04,05")),
		ListingTab: getEnv("LISTING_TAB", "01"),
	}

	timeoutStr := getEnv("REQUEST_TIMEOUT", "30s")
	timeout, err := time.ParseDuration(timeoutStr)
	if err != nil || timeout <= 0 {
		log.Printf("Warning: invalid REQUEST_TIMEOUT value '%s', falling back to 30s\n", timeoutStr)
		timeout = 30 * time.Second
	}
	config.RequestTimeout = timeout

	config.MarketCapLookbackDays = getEnvInt("MARKET_CAP_LOOKBACK_DAYS", 90)
	config.InsertBatchSize = getEnvInt("INSERT_BATCH_SIZE", 500)
	config.FillMarketCaps = getEnvBool("FILL_MARKET_CAPS", true)

	return config, nil
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	raw := getEnv(key, "")
	if raw == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		log.Printf("Warning: invalid %s value '%s', falling back to %d\n", key, raw, defaultValue)
		return defaultValue
	}
	return n
}

func getEnvBool(key string, defaultValue bool) bool {
	switch strings.ToLower(getEnv(key, "")) {
	case "":
		return defaultValue
	case "true", "1":
		return true
	case "false", "0":
		return false
	default:
		log.Printf("Warning: invalid %s value, falling back to %v\n", key, defaultValue)
		return defaultValue
	}
}

// splitList parses a comma-separated list, dropping blanks.
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
