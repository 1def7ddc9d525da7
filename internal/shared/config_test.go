package shared

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeFileOrFail(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}
}

func readFileOrFail(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read file: %v", err)
	}
	return string(data)
}

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	if config.Gateway.Provider != "gemini" {
		t.Errorf("expected gemini provider, got %s", config.Gateway.Provider)
	}
	if config.Database.Path != "kazegaku.db" {
		t.Errorf("expected default database path, got %s", config.Database.Path)
	}
	if err := config.Validate(); err != nil {
		t.Errorf("expected default config to validate, got %v", err)
	}
}

func TestLoadConfig(t *testing.T) {
	t.Run("valid config", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.toml")
		writeFileOrFail(t, path, `
[gateway]
provider = "openai"
requests_per_minute = 5

[credentials.openai]
api_key = "key"

[database]
path = "test.db"
`)

		config, err := LoadConfig(path)
		if err != nil {
			t.Fatalf("failed to load config: %v", err)
		}
		if config.Gateway.Provider != "openai" {
			t.Errorf("expected openai, got %s", config.Gateway.Provider)
		}
		if config.Credentials.OpenAI.APIKey != "key" {
			t.Error("expected credentials to be loaded")
		}
	})

	t.Run("missing file", func(t *testing.T) {
		if _, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
			t.Error("expected error for missing file")
		}
	})

	t.Run("malformed toml", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.toml")
		writeFileOrFail(t, path, `[gateway`)

		if _, err := LoadConfig(path); err == nil {
			t.Error("expected error for malformed toml")
		}
	})

	t.Run("unknown provider", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.toml")
		writeFileOrFail(t, path, `
[gateway]
provider = "claude"
`)

		_, err := LoadConfig(path)
		if !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("expected ErrInvalidConfig, got %v", err)
		}
	})
}

func TestCreateConfigFile(t *testing.T) {
	t.Run("creates the example config", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.toml")

		if err := CreateConfigFile(path); err != nil {
			t.Fatalf("failed to create config file: %v", err)
		}

		config, err := LoadConfig(path)
		if err != nil {
			t.Fatalf("failed to load created config: %v", err)
		}
		if config.Gateway.Provider != "gemini" {
			t.Errorf("expected gemini provider, got %s", config.Gateway.Provider)
		}
	})

	t.Run("refuses to overwrite", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.toml")
		writeFileOrFail(t, path, "existing")

		if err := CreateConfigFile(path); err == nil {
			t.Error("expected error when file exists")
		}
		if readFileOrFail(t, path) != "existing" {
			t.Error("expected existing file to be untouched")
		}
	})
}
