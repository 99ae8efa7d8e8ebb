// Package config loads finpulse settings from a TOML file, an optional .env
// file and the process environment, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v8"
	"github.com/joho/godotenv"
)

// Config holds all finpulse configuration.
type Config struct {
	Server     ServerConfig     `toml:"server"`
	Database   DatabaseConfig   `toml:"database"`
	Advisor    AdvisorConfig    `toml:"advisor"`
	Identity   IdentityConfig   `toml:"identity"`
	Log        LogConfig        `toml:"log"`
	Appearance AppearanceConfig `toml:"appearance"`
}

// ServerConfig holds HTTP API settings.
type ServerConfig struct {
	Addr         string   `toml:"addr" env:"FINPULSE_ADDR"`
	EventsBuffer int      `toml:"events_buffer" env:"FINPULSE_EVENTS_BUFFER"`
	CORSOrigins  []string `toml:"cors_origins,omitempty" env:"FINPULSE_CORS_ORIGINS" envSeparator:","`
}

// DatabaseConfig holds storage settings.
type DatabaseConfig struct {
	Path string `toml:"path,omitempty" env:"FINPULSE_DB_PATH"`
}

// Advisor providers.
const (
	ProviderGroq      = "groq"
	ProviderAnthropic = "anthropic"
)

// AdvisorConfig holds text-generation provider settings.
type AdvisorConfig struct {
	Provider    string  `toml:"provider" env:"FINPULSE_ADVISOR_PROVIDER"`
	Model       string  `toml:"model,omitempty" env:"FINPULSE_ADVISOR_MODEL"`
	BaseURL     string  `toml:"base_url,omitempty" env:"FINPULSE_ADVISOR_BASE_URL"`
	APIKey      string  `toml:"api_key,omitempty" env:"FINPULSE_ADVISOR_API_KEY"`
	Temperature float64 `toml:"temperature" env:"FINPULSE_ADVISOR_TEMPERATURE"`
	MaxTokens   int64   `toml:"max_tokens" env:"FINPULSE_ADVISOR_MAX_TOKENS"`
	TimeoutSecs int     `toml:"timeout_secs" env:"FINPULSE_ADVISOR_TIMEOUT_SECS"`
}

// Timeout returns the request timeout as a duration.
func (a AdvisorConfig) Timeout() time.Duration {
	return time.Duration(a.TimeoutSecs) * time.Second
}

// Identity modes.
const (
	IdentityClerk = "clerk"
	IdentityJWT   = "jwt"
	IdentityNone  = "none"
)

// IdentityConfig holds bearer token verification settings.
type IdentityConfig struct {
	Mode           string `toml:"mode" env:"FINPULSE_IDENTITY_MODE"`
	ClerkSecretKey string `toml:"clerk_secret_key,omitempty" env:"CLERK_SECRET_KEY"`
	ClerkAPIURL    string `toml:"clerk_api_url,omitempty" env:"CLERK_API_URL"`
	JWTSecret      string `toml:"jwt_secret,omitempty" env:"FINPULSE_JWT_SECRET"`
	JWTIssuer      string `toml:"jwt_issuer,omitempty" env:"FINPULSE_JWT_ISSUER"`
	CacheTTLSecs   int    `toml:"cache_ttl_secs" env:"FINPULSE_IDENTITY_CACHE_TTL_SECS"`
	LocalSubject   string `toml:"local_subject" env:"FINPULSE_LOCAL_SUBJECT"`
}

// CacheTTL returns the verification cache TTL as a duration.
func (i IdentityConfig) CacheTTL() time.Duration {
	return time.Duration(i.CacheTTLSecs) * time.Second
}

// LogConfig holds logger settings.
type LogConfig struct {
	Level       string `toml:"level" env:"FINPULSE_LOG_LEVEL"`
	Development bool   `toml:"development" env:"FINPULSE_LOG_DEVELOPMENT"`
}

// AppearanceConfig holds theme settings.
type AppearanceConfig struct {
	Theme string `toml:"theme" env:"FINPULSE_THEME"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Server: ServerConfig{
			Addr:         "127.0.0.1:5000",
			EventsBuffer: 200,
		},
		Advisor: AdvisorConfig{
			Provider:    ProviderGroq,
			Temperature: 0.7,
			MaxTokens:   1500,
			TimeoutSecs: 60,
		},
		Identity: IdentityConfig{
			Mode:         IdentityNone,
			CacheTTLSecs: 120,
			LocalSubject: "local",
		},
		Log: LogConfig{
			Level: "info",
		},
		Appearance: AppearanceConfig{
			Theme: "flexoki-dark",
		},
	}
}

// ConfigDir returns the XDG-compliant config directory.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "finpulse")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "finpulse")
}

// ConfigPath returns the full path to the default config file.
func ConfigPath() string {
	return filepath.Join(ConfigDir(), "config.toml")
}

// DataDir returns the XDG-compliant data directory.
func DataDir() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "finpulse")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", "finpulse")
}

// DBPath returns the configured database path, or the default one.
func (c Config) DBPath() string {
	if c.Database.Path != "" {
		return c.Database.Path
	}
	return filepath.Join(DataDir(), "finpulse.db")
}

// Load reads the default config file, the .env file in the working
// directory and the environment.
func Load() (Config, error) {
	return LoadFile(ConfigPath())
}

// LoadFile is Load with an explicit config file path. A missing file yields
// defaults.
func LoadFile(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parsing config: %w", err)
		}
	case !errors.Is(err, fs.ErrNotExist):
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return cfg, fmt.Errorf("loading .env: %w", err)
	}

	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parsing environment: %w", err)
	}

	return cfg, nil
}

// Save writes the config to the default path.
func Save(cfg Config) error {
	return SaveFile(ConfigPath(), cfg)
}

// SaveFile writes the config to path with owner-only permissions.
func SaveFile(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer f.Close()

	enc := toml.NewEncoder(f)
	return enc.Encode(cfg)
}

// GetAdvisorAPIKey returns the provider API key. The provider's conventional
// env var wins over the config file.
func GetAdvisorAPIKey(cfg Config) string {
	var envKey string
	switch cfg.Advisor.Provider {
	case ProviderAnthropic:
		envKey = "ANTHROPIC_API_KEY"
	default:
		envKey = "GROQ_API_KEY"
	}
	if key := os.Getenv(envKey); key != "" {
		return key
	}
	return cfg.Advisor.APIKey
}

// Exists returns true if a config file exists at path.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
