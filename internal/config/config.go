package config

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"verdict/internal/validation"
)

// Supported inference providers.
const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	// Environment
	Env string // "development", "production", etc.

	// Server
	ServerAddr string
	BaseURL    string
	ViewsDir   string
	StaticDir  string

	// TLS/mTLS
	TLSEnabled  bool
	TLSCertFile string
	TLSKeyFile  string
	TLSCAFile   string // CA for verifying client certs (mTLS)

	// Session
	SessionSecret string // Used for encrypting cookies (min 32 chars)
	RedisURL      string // Session storage; empty keeps sessions in memory

	// CORS
	CORSOrigins string // Comma-separated allowed origins, e.g. "https://example.com,https://app.example.com"

	// Inference
	Provider      string // env: INFERENCE_PROVIDER, "gemini" or "openai"
	Model         string // env: INFERENCE_MODEL, empty selects the provider default
	ProviderURL   string // env: INFERENCE_BASE_URL, empty selects the provider default
	CredentialEnv string // env: CREDENTIAL_ENV, name of the variable holding the API key

	// Desks
	DeskIdleTTL       time.Duration
	DeskSweepInterval time.Duration

	// Logging
	LogFile string

	// Site Branding
	SiteTitle  string // env: SITE_TITLE, default: "Autonomous Decision Engine"
	SiteFooter string // env: SITE_FOOTER, default: "Deterministic • Authoritative • Precise"
}

// Load reads configuration from an optional .env file, then environment
// variables with sensible defaults, then the optional YAML overlay.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, using system environment")
	}

	cfg := &Config{
		Env:               getEnv("ENV", "development"),
		ServerAddr:        getEnv("SERVER_ADDR", ":3000"),
		BaseURL:           getEnv("BASE_URL", "http://localhost:3000"),
		ViewsDir:          getEnv("VIEWS_DIR", "./views"),
		StaticDir:         getEnv("STATIC_DIR", "./static"),
		TLSEnabled:        getEnv("TLS_ENABLED", "") != "",
		TLSCertFile:       getEnv("TLS_CERT_FILE", ""),
		TLSKeyFile:        getEnv("TLS_KEY_FILE", ""),
		TLSCAFile:         getEnv("TLS_CA_FILE", ""),
		SessionSecret:     getEnv("SESSION_SECRET", "change-me-in-production-min-32-chars"),
		RedisURL:          getEnv("REDIS_URL", ""),
		CORSOrigins:       getEnv("CORS_ORIGINS", ""),
		Provider:          strings.ToLower(getEnv("INFERENCE_PROVIDER", ProviderGemini)),
		Model:             getEnv("INFERENCE_MODEL", ""),
		ProviderURL:       getEnv("INFERENCE_BASE_URL", ""),
		CredentialEnv:     getEnv("CREDENTIAL_ENV", "API_KEY"),
		DeskIdleTTL:       getEnvDuration("DESK_IDLE_TTL", 30*time.Minute),
		DeskSweepInterval: getEnvDuration("DESK_SWEEP_INTERVAL", time.Minute),
		LogFile:           getEnv("LOG_FILE", "logs/verdict.log"),

		SiteTitle:  getEnv("SITE_TITLE", "Autonomous Decision Engine"),
		SiteFooter: getEnv("SITE_FOOTER", "Deterministic • Authoritative • Precise"),
	}

	overlay, err := LoadYAMLConfig()
	if err != nil {
		return nil, fmt.Errorf("load yaml config: %w", err)
	}
	overlay.Apply(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	d, err := time.ParseDuration(value)
	if err != nil || d <= 0 {
		log.Printf("Warning: invalid %s=%q, using %v", key, value, fallback)
		return fallback
	}
	return d
}

// Validate rejects configuration the server cannot start with.
func (c *Config) Validate() error {
	switch c.Provider {
	case ProviderGemini, ProviderOpenAI:
	default:
		return fmt.Errorf("INFERENCE_PROVIDER %q: must be %q or %q", c.Provider, ProviderGemini, ProviderOpenAI)
	}
	if ok, msg := validation.ValidateBaseURL(c.ProviderURL); !ok {
		return fmt.Errorf("INFERENCE_BASE_URL %q: %s", c.ProviderURL, msg)
	}
	if strings.TrimSpace(c.CredentialEnv) == "" {
		return fmt.Errorf("CREDENTIAL_ENV must name an environment variable")
	}
	if c.TLSEnabled && (c.TLSCertFile == "" || c.TLSKeyFile == "") {
		return fmt.Errorf("TLS_ENABLED requires TLS_CERT_FILE and TLS_KEY_FILE")
	}
	return nil
}

// IsDev returns true if the environment is set to development.
func (c *Config) IsDev() bool {
	return c.Env == "development" || c.Env == "dev"
}

// IsMTLSEnabled returns true if mTLS is configured with a CA file.
func (c *Config) IsMTLSEnabled() bool {
	return c.TLSEnabled && c.TLSCAFile != ""
}

// HasCredential reports whether the credential variable is currently set.
func (c *Config) HasCredential() bool {
	return strings.TrimSpace(os.Getenv(c.CredentialEnv)) != ""
}
