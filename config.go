package openrouter

import (
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

var validate = validator.New()

// Config is the explicit configuration surface for building a client.
// There is no global state: load one, validate it, and hand it to
// NewClientFromConfig.
type Config struct {
	APIKey  string            `validate:"required"`
	BaseURL string            `validate:"omitempty,url"`
	Model   string
	Referer string `validate:"omitempty,url"`
	Title   string
	Timeout time.Duration
	Headers map[string]string
}

// ConfigFromEnv builds a Config from OPENROUTER_* environment variables,
// loading a .env file first when present.
func ConfigFromEnv() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		APIKey:  os.Getenv("OPENROUTER_API_KEY"),
		BaseURL: getEnv("OPENROUTER_BASE_URL", DefaultBaseURL),
		Model:   os.Getenv("OPENROUTER_MODEL"),
		Referer: os.Getenv("OPENROUTER_REFERER"),
		Title:   os.Getenv("OPENROUTER_TITLE"),
	}

	if raw := os.Getenv("OPENROUTER_TIMEOUT"); raw != "" {
		timeout, err := time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid OPENROUTER_TIMEOUT: %w", err)
		}
		cfg.Timeout = timeout
	}

	return cfg, nil
}

// ConfigFromFile reads a YAML config file. Durations are written in Go
// syntax, e.g. "45s".
func ConfigFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var file struct {
		APIKey  string            `yaml:"api_key"`
		BaseURL string            `yaml:"base_url"`
		Model   string            `yaml:"model"`
		Referer string            `yaml:"referer"`
		Title   string            `yaml:"title"`
		Timeout string            `yaml:"timeout"`
		Headers map[string]string `yaml:"headers"`
	}
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg := &Config{
		APIKey:  file.APIKey,
		BaseURL: file.BaseURL,
		Model:   file.Model,
		Referer: file.Referer,
		Title:   file.Title,
		Headers: file.Headers,
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if file.Timeout != "" {
		timeout, err := time.ParseDuration(file.Timeout)
		if err != nil {
			return nil, fmt.Errorf("invalid timeout in config file: %w", err)
		}
		cfg.Timeout = timeout
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	return validate.Struct(c)
}

// NewClientFromConfig validates cfg and maps it onto client options.
func NewClientFromConfig(cfg *Config) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	opts := []ClientOption{WithAPIKey(cfg.APIKey)}
	if cfg.BaseURL != "" {
		opts = append(opts, WithBaseURL(cfg.BaseURL))
	}
	if cfg.Model != "" {
		opts = append(opts, WithModel(cfg.Model))
	}
	if cfg.Referer != "" {
		opts = append(opts, WithReferer(cfg.Referer))
	}
	if cfg.Title != "" {
		opts = append(opts, WithTitle(cfg.Title))
	}
	if cfg.Timeout > 0 {
		opts = append(opts, WithTimeout(cfg.Timeout))
	}
	if len(cfg.Headers) > 0 {
		opts = append(opts, WithDefaultHeaders(cfg.Headers))
	}

	return NewClient(opts...)
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}
