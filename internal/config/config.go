package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	Server       ServerConfig       `yaml:"server"`
	Database     DatabaseConfig     `yaml:"database"`
	Generation   GenerationConfig   `yaml:"generation"`
	Session      SessionConfig      `yaml:"session"`
	Resolver     ResolverConfig     `yaml:"resolver"`
	Orders       OrdersConfig       `yaml:"orders"`
	Localization LocalizationConfig `yaml:"localization"`
	Log          LogConfig          `yaml:"log"`
	Currency     string             `yaml:"currency"`
}

// ServerConfig holds the HTTP listener settings
type ServerConfig struct {
	Port        int `yaml:"port"`
	MetricsPort int `yaml:"metrics_port"`
}

// DatabaseConfig selects the gorm dialect and its connection string
type DatabaseConfig struct {
	Driver string `yaml:"driver"`
	DSN    string `yaml:"dsn"`
	Debug  bool   `yaml:"debug"`
}

// GenerationConfig configures the free-form chat provider
type GenerationConfig struct {
	Provider    string        `yaml:"provider"`
	Model       string        `yaml:"model"`
	BaseURL     string        `yaml:"base_url"`
	APIKey      string        `yaml:"api_key"`
	Timeout     time.Duration `yaml:"timeout"`
	MaxTokens   int           `yaml:"max_tokens"`
	Temperature float64       `yaml:"temperature"`
	Azure       AzureConfig   `yaml:"azure"`
}

// AzureConfig holds the Azure OpenAI deployment details
type AzureConfig struct {
	Endpoint       string `yaml:"endpoint"`
	APIKey         string `yaml:"api_key"`
	DeploymentName string `yaml:"deployment_name"`
}

// SessionConfig configures chat session tokens
type SessionConfig struct {
	Secret string        `yaml:"secret"`
	TTL    time.Duration `yaml:"ttl"`
}

// ResolverConfig tunes item matching
type ResolverConfig struct {
	NameBoost       int      `yaml:"name_boost"`
	PaymentKeywords []string `yaml:"payment_keywords"`
}

// OrdersConfig holds order lifecycle settings
type OrdersConfig struct {
	StrictTransitions bool     `yaml:"strict_transitions"`
	PaymentMethods    []string `yaml:"payment_methods"`
}

// LocalizationConfig points at an optional YAML file overriding built-in texts
type LocalizationConfig struct {
	Path string `yaml:"path"`
}

// LogConfig configures logrus
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:        8080,
			MetricsPort: 9090,
		},
		Database: DatabaseConfig{
			Driver: "sqlite3",
			DSN:    "pizza_hut.db",
		},
		Generation: GenerationConfig{
			Provider:    "none",
			Model:       "gpt-4o-mini",
			Timeout:     8 * time.Second,
			MaxTokens:   128,
			Temperature: 0.7,
		},
		Session: SessionConfig{
			Secret: "change-me",
			TTL:    2 * time.Hour,
		},
		Resolver: ResolverConfig{
			NameBoost:       3,
			PaymentKeywords: []string{"jazzcash", "gpay"},
		},
		Orders: OrdersConfig{
			StrictTransitions: true,
			PaymentMethods:    []string{"Cash on Delivery", "JazzCash", "GPay"},
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
		Currency: "PKR",
	}
}

// Load reads the YAML file at path over the defaults, then applies .env and
// environment overrides. A missing file is not an error when path is empty.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
			return nil, fmt.Errorf("config file %s not found: %w", path, err)
		case err != nil:
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	// .env is optional
	_ = godotenv.Load()
	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnv overrides secrets and connection settings from the environment.
func (c *Config) applyEnv() {
	setString(&c.Database.Driver, "PIZZABOT_DB_DRIVER")
	setString(&c.Database.DSN, "PIZZABOT_DB_DSN")
	setString(&c.Session.Secret, "PIZZABOT_SESSION_SECRET")
	setString(&c.Log.Level, "PIZZABOT_LOG_LEVEL")
	setString(&c.Generation.Provider, "PIZZABOT_GENERATION_PROVIDER")
	setString(&c.Generation.APIKey, "OPENAI_API_KEY")
	setString(&c.Generation.BaseURL, "OPENAI_BASE_URL")
	setString(&c.Generation.Azure.Endpoint, "AZURE_OPENAI_ENDPOINT")
	setString(&c.Generation.Azure.APIKey, "AZURE_OPENAI_API_KEY")
	setString(&c.Generation.Azure.DeploymentName, "AZURE_OPENAI_DEPLOYMENT_NAME")
}

func setString(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		*dst = v
	}
}

// Validate checks the settings that would otherwise fail late.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	if c.Server.MetricsPort < 0 || c.Server.MetricsPort > 65535 {
		return fmt.Errorf("invalid metrics port: %d", c.Server.MetricsPort)
	}
	switch c.Database.Driver {
	case "sqlite3", "postgres":
	default:
		return fmt.Errorf("unsupported database driver: %s", c.Database.Driver)
	}
	if c.Database.DSN == "" {
		return errors.New("database dsn is required")
	}
	switch strings.ToLower(c.Generation.Provider) {
	case "none", "openai", "azure":
	default:
		return fmt.Errorf("unsupported generation provider: %s", c.Generation.Provider)
	}
	if c.Generation.Timeout <= 0 {
		return errors.New("generation timeout must be positive")
	}
	if c.Session.Secret == "" {
		return errors.New("session secret is required")
	}
	if c.Resolver.NameBoost < 3 {
		return fmt.Errorf("resolver name_boost must be at least 3, got %d", c.Resolver.NameBoost)
	}
	if len(c.Orders.PaymentMethods) == 0 {
		return errors.New("at least one payment method is required")
	}
	return nil
}
