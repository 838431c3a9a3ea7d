package config

import (
	"log"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds the full application configuration loaded from environment variables or .env file.
//
// It is composed of smaller structs that represent different concerns of the system,
// such as server settings, the market data provider and dashboard defaults.
//
// Example ENV equivalent:
//
//	SERVER_PORT=8080
//	MARKETDATA_PROVIDER=yahoo
//	POLYGON_API_KEY=...
//	CSV_DATA_DIR=./data/prices
//	DASHBOARD_DEFAULT_TICKER=RY
//	DASHBOARD_MOVING_AVERAGE_WINDOW=100
type Config struct {
	Server     ServerConfig     // HTTP server configuration
	MarketData MarketDataConfig // Market data provider settings
	Dashboard  DashboardConfig  // Form defaults and analysis parameters
	RateLimit  RateLimitConfig  // Per-client request throttling
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port           string        // The TCP port the HTTP server will listen on (e.g., "8080")
	RequestTimeout time.Duration // Deadline applied to every request context
}

// MarketDataConfig selects and configures the market data provider.
//
// Fields:
//   - Provider: one of "yahoo", "polygon" or "csv".
//   - HTTPTimeout: timeout of the outbound HTTP client used by the yahoo provider.
//   - YahooBaseURL: base URL of the Yahoo Finance chart API.
//   - PolygonAPIKey: API key, required when Provider is "polygon".
//   - CSVDataDir: directory with <TICKER>.csv files, required when Provider is "csv".
type MarketDataConfig struct {
	Provider      string
	HTTPTimeout   time.Duration
	YahooBaseURL  string
	PolygonAPIKey string
	CSVDataDir    string
}

// DashboardConfig holds the values pre-filled in the dashboard form and
// the default moving average window.
type DashboardConfig struct {
	DefaultTicker       string
	DefaultStart        string
	DefaultEnd          string
	DefaultIncome       string
	MovingAverageWindow int
}

// RateLimitConfig configures the token bucket applied per client IP.
type RateLimitConfig struct {
	RPS   float64
	Burst int
}

// Supported market data providers.
const (
	ProviderYahoo   = "yahoo"
	ProviderPolygon = "polygon"
	ProviderCSV     = "csv"
)

// AppConfig is the globally accessible configuration instance.
//
// It is populated once via LoadConfig() and used throughout the application.
var AppConfig Config

// LoadConfig initializes the global AppConfig by reading from .env file
// or directly from environment variables.
//
// Precedence (from lowest to highest):
//  1. Defaults set in this function.
//  2. Values from .env file (if present).
//  3. Environment variables.
//
// Fatal exit:
//   - If required variables are missing, validateConfig() will terminate the app
//     with a descriptive log message.
func LoadConfig() {
	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("SERVER_REQUEST_TIMEOUT", "10s")

	viper.SetDefault("MARKETDATA_PROVIDER", ProviderYahoo)
	viper.SetDefault("MARKETDATA_HTTP_TIMEOUT", "8s")
	viper.SetDefault("YAHOO_BASE_URL", "https://query1.finance.yahoo.com")
	viper.SetDefault("POLYGON_API_KEY", "")
	viper.SetDefault("CSV_DATA_DIR", "./data/prices")

	viper.SetDefault("DASHBOARD_DEFAULT_TICKER", "RY")
	viper.SetDefault("DASHBOARD_DEFAULT_START", "2022-01-02")
	viper.SetDefault("DASHBOARD_DEFAULT_END", "2022-07-29")
	viper.SetDefault("DASHBOARD_DEFAULT_INCOME", "1000")
	viper.SetDefault("DASHBOARD_MOVING_AVERAGE_WINDOW", 100)

	viper.SetDefault("RATE_LIMIT_RPS", 1.0)
	viper.SetDefault("RATE_LIMIT_BURST", 60)

	// Optionally read from .env if present (common in local dev)
	viper.SetConfigFile(".env")
	_ = viper.ReadInConfig() // ignore error if no .env

	viper.AutomaticEnv()

	AppConfig = Config{
		Server: ServerConfig{
			Port:           viper.GetString("SERVER_PORT"),
			RequestTimeout: viper.GetDuration("SERVER_REQUEST_TIMEOUT"),
		},
		MarketData: MarketDataConfig{
			Provider:      strings.ToLower(strings.TrimSpace(viper.GetString("MARKETDATA_PROVIDER"))),
			HTTPTimeout:   viper.GetDuration("MARKETDATA_HTTP_TIMEOUT"),
			YahooBaseURL:  strings.TrimRight(viper.GetString("YAHOO_BASE_URL"), "/"),
			PolygonAPIKey: viper.GetString("POLYGON_API_KEY"),
			CSVDataDir:    viper.GetString("CSV_DATA_DIR"),
		},
		Dashboard: DashboardConfig{
			DefaultTicker:       viper.GetString("DASHBOARD_DEFAULT_TICKER"),
			DefaultStart:        viper.GetString("DASHBOARD_DEFAULT_START"),
			DefaultEnd:          viper.GetString("DASHBOARD_DEFAULT_END"),
			DefaultIncome:       viper.GetString("DASHBOARD_DEFAULT_INCOME"),
			MovingAverageWindow: viper.GetInt("DASHBOARD_MOVING_AVERAGE_WINDOW"),
		},
		RateLimit: RateLimitConfig{
			RPS:   viper.GetFloat64("RATE_LIMIT_RPS"),
			Burst: viper.GetInt("RATE_LIMIT_BURST"),
		},
	}

	validateConfig()
}

// missingFields returns the names of required variables that are empty in AppConfig.
// Provider specific keys are only required when that provider is selected.
func missingFields() []string {
	var missing []string

	if AppConfig.Server.Port == "" {
		missing = append(missing, "SERVER_PORT")
	}
	if AppConfig.Server.RequestTimeout <= 0 {
		missing = append(missing, "SERVER_REQUEST_TIMEOUT")
	}
	if w := AppConfig.Dashboard.MovingAverageWindow; w <= 0 || w > 1000 {
		missing = append(missing, "DASHBOARD_MOVING_AVERAGE_WINDOW")
	}

	switch AppConfig.MarketData.Provider {
	case ProviderYahoo:
		if AppConfig.MarketData.YahooBaseURL == "" {
			missing = append(missing, "YAHOO_BASE_URL")
		}
	case ProviderPolygon:
		if AppConfig.MarketData.PolygonAPIKey == "" {
			missing = append(missing, "POLYGON_API_KEY")
		}
	case ProviderCSV:
		if AppConfig.MarketData.CSVDataDir == "" {
			missing = append(missing, "CSV_DATA_DIR")
		}
	default:
		missing = append(missing, "MARKETDATA_PROVIDER")
	}

	return missing
}

// validateConfig terminates the application when required variables are missing.
func validateConfig() {
	if missing := missingFields(); len(missing) > 0 {
		log.Fatalf("❌ Missing or invalid environment variables: %v\n", missing)
	}
}
