package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds all configuration for the voice studio service
type Config struct {
	// Server configuration
	Port      string `envconfig:"PORT" default:"3000"`
	PublicDir string `envconfig:"PUBLIC_DIR" default:"public"` // Static assets for the browser UI

	// Azure Speech configuration.
	// Credentials are not validated at startup; a missing key or region
	// surfaces as an upstream error on the first provider call.
	AzureSubscriptionKey string `envconfig:"AZURE_SUBSCRIPTION_KEY"`
	AzureServiceRegion   string `envconfig:"AZURE_SERVICE_REGION"`
	AzureBaseURL         string `envconfig:"AZURE_BASE_URL" default:""` // Overrides https://<region>.tts.speech.microsoft.com
	UpstreamTimeout      int    `envconfig:"UPSTREAM_TIMEOUT" default:"30"` // seconds

	// Voice catalog configuration
	VoicesFile    string `envconfig:"VOICES_FILE" default:"voices.json"`
	FlagBaseURL   string `envconfig:"FLAG_BASE_URL" default:"https://flagcdn.com/w40"`
	CatalogEngine string `envconfig:"CATALOG_ENGINE" default:"vercelli"`

	// Synthesis cache (disabled when REDIS_URL is empty)
	RedisURL          string `envconfig:"REDIS_URL" default:""`
	SynthesisCacheTTL int    `envconfig:"SYNTHESIS_CACHE_TTL" default:"3600"` // seconds

	// Resilience configuration
	CircuitBreakerMaxFailures  int `envconfig:"CIRCUIT_BREAKER_MAX_FAILURES" default:"5"`   // Failures before opening circuit
	CircuitBreakerResetTimeout int `envconfig:"CIRCUIT_BREAKER_RESET_TIMEOUT" default:"30"` // Seconds before attempting recovery

	// HTTP surface
	CORSAllowedOrigins string `envconfig:"CORS_ALLOWED_ORIGINS" default:"*"` // Comma separated

	// Observability configuration
	LogLevel       string `envconfig:"LOG_LEVEL" default:"info"`       // Log level: debug, info, warn, error
	LogPretty      bool   `envconfig:"LOG_PRETTY" default:"false"`     // Pretty print logs (for development)
	MetricsEnabled bool   `envconfig:"METRICS_ENABLED" default:"true"` // Enable Prometheus metrics
}

// Load reads configuration from environment variables
// It first attempts to load from a .env file if it exists, then from environment.
// ENV_FILE points at a different dotenv file.
func Load() (*Config, error) {
	// Try to load .env file (ignore error if it doesn't exist)
	_ = godotenv.Load(GetEnv("ENV_FILE", ".env"))

	return LoadFromEnv()
}

// LoadFromEnv loads configuration directly from environment variables
// without attempting to load .env file (useful for containerized deployments)
func LoadFromEnv() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if cfg.VoicesFile == "" {
		return nil, fmt.Errorf("VOICES_FILE must not be empty")
	}
	if cfg.UpstreamTimeout <= 0 {
		return nil, fmt.Errorf("UPSTREAM_TIMEOUT must be positive, got %d", cfg.UpstreamTimeout)
	}

	return &cfg, nil
}

// UpstreamTimeoutDuration returns the bounded timeout for provider calls
func (c *Config) UpstreamTimeoutDuration() time.Duration {
	return time.Duration(c.UpstreamTimeout) * time.Second
}

// SynthesisCacheTTLDuration returns how long synthesized results stay cached
func (c *Config) SynthesisCacheTTLDuration() time.Duration {
	return time.Duration(c.SynthesisCacheTTL) * time.Second
}

// CircuitBreakerResetDuration returns the open-circuit cool down
func (c *Config) CircuitBreakerResetDuration() time.Duration {
	return time.Duration(c.CircuitBreakerResetTimeout) * time.Second
}

// AllowedOrigins splits CORSAllowedOrigins into a list
func (c *Config) AllowedOrigins() []string {
	var origins []string
	for _, o := range strings.Split(c.CORSAllowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}

// GetEnv returns the value of an environment variable or a default value
func GetEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
