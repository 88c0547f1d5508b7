package openrouter

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestConfigFromEnv(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		t.Setenv("OPENROUTER_API_KEY", "sk-or-test")
		t.Setenv("OPENROUTER_BASE_URL", "")
		os.Unsetenv("OPENROUTER_BASE_URL")

		cfg, err := ConfigFromEnv()
		if err != nil {
			t.Fatalf("ConfigFromEnv: %v", err)
		}
		if cfg.APIKey != "sk-or-test" {
			t.Errorf("unexpected key %q", cfg.APIKey)
		}
		if cfg.BaseURL != DefaultBaseURL {
			t.Errorf("expected default base URL, got %q", cfg.BaseURL)
		}
	})

	t.Run("CustomValues", func(t *testing.T) {
		t.Setenv("OPENROUTER_API_KEY", "sk-or-test")
		t.Setenv("OPENROUTER_BASE_URL", "https://proxy.internal/api/v1")
		t.Setenv("OPENROUTER_MODEL", "openai/gpt-4o")
		t.Setenv("OPENROUTER_TIMEOUT", "90s")

		cfg, err := ConfigFromEnv()
		if err != nil {
			t.Fatalf("ConfigFromEnv: %v", err)
		}
		if cfg.BaseURL != "https://proxy.internal/api/v1" {
			t.Errorf("unexpected base URL %q", cfg.BaseURL)
		}
		if cfg.Model != "openai/gpt-4o" {
			t.Errorf("unexpected model %q", cfg.Model)
		}
		if cfg.Timeout != 90*time.Second {
			t.Errorf("unexpected timeout %v", cfg.Timeout)
		}
	})

	t.Run("BadTimeout", func(t *testing.T) {
		t.Setenv("OPENROUTER_API_KEY", "sk-or-test")
		t.Setenv("OPENROUTER_TIMEOUT", "ninety")

		if _, err := ConfigFromEnv(); err == nil {
			t.Error("expected error for unparseable timeout")
		}
	})
}

func TestConfigFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "openrouter.yaml")
	content := `api_key: sk-or-file
model: anthropic/claude-3.5-sonnet
referer: https://example.com
timeout: 45s
headers:
  X-Org: acme
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := ConfigFromFile(path)
	if err != nil {
		t.Fatalf("ConfigFromFile: %v", err)
	}
	if cfg.APIKey != "sk-or-file" {
		t.Errorf("unexpected key %q", cfg.APIKey)
	}
	if cfg.Model != "anthropic/claude-3.5-sonnet" {
		t.Errorf("unexpected model %q", cfg.Model)
	}
	if cfg.Timeout != 45*time.Second {
		t.Errorf("unexpected timeout %v", cfg.Timeout)
	}
	if cfg.BaseURL != DefaultBaseURL {
		t.Errorf("expected default base URL, got %q", cfg.BaseURL)
	}
	if cfg.Headers["X-Org"] != "acme" {
		t.Errorf("headers not loaded: %v", cfg.Headers)
	}
}

func TestConfigFromFile_Missing(t *testing.T) {
	if _, err := ConfigFromFile(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestConfigValidate(t *testing.T) {
	t.Run("MissingAPIKey", func(t *testing.T) {
		cfg := &Config{BaseURL: DefaultBaseURL}
		if err := cfg.Validate(); err == nil {
			t.Error("expected validation error without api key")
		}
	})

	t.Run("BadBaseURL", func(t *testing.T) {
		cfg := &Config{APIKey: "sk-or-test", BaseURL: "not a url"}
		if err := cfg.Validate(); err == nil {
			t.Error("expected validation error for malformed base URL")
		}
	})

	t.Run("Valid", func(t *testing.T) {
		cfg := &Config{APIKey: "sk-or-test", BaseURL: DefaultBaseURL}
		if err := cfg.Validate(); err != nil {
			t.Errorf("expected valid config, got %v", err)
		}
	})
}

func TestNewClientFromConfig(t *testing.T) {
	cfg := &Config{
		APIKey:  "sk-or-test",
		BaseURL: "https://proxy.internal/api/v1",
		Model:   "openai/gpt-4o",
		Timeout: 10 * time.Second,
		Headers: map[string]string{"X-Org": "acme"},
	}

	c, err := NewClientFromConfig(cfg)
	if err != nil {
		t.Fatalf("NewClientFromConfig: %v", err)
	}
	if c.baseURL != cfg.BaseURL {
		t.Errorf("base URL not applied: %q", c.baseURL)
	}
	if c.model != cfg.Model {
		t.Errorf("model not applied: %q", c.model)
	}
	if c.defaultHeaders["X-Org"] != "acme" {
		t.Errorf("headers not applied: %v", c.defaultHeaders)
	}

	if _, err := NewClientFromConfig(&Config{}); err == nil {
		t.Error("expected error for invalid config")
	}
}
