package config

import (
	"os"
	"testing"
	"time"
)

func TestLoad(t *testing.T) {
	// Keep the loader away from any config.yaml in the working dir.
	os.Setenv("STOREFRONT_CONFIG", "testdata/does-not-exist.yaml")
	defer os.Unsetenv("STOREFRONT_CONFIG")

	t.Run("defaults", func(t *testing.T) {
		os.Unsetenv("STOREFRONT_SERVER__PORT")
		os.Unsetenv("STOREFRONT_BACKEND__BASE_URL")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}

		if cfg.Server.Port != 3000 {
			t.Errorf("Load() port = %v, want 3000", cfg.Server.Port)
		}
		if cfg.Backend.BaseURL != DefaultBackendURL {
			t.Errorf("Load() backend url = %v, want %v", cfg.Backend.BaseURL, DefaultBackendURL)
		}
		if cfg.Backend.Timeout != 10*time.Second {
			t.Errorf("Load() backend timeout = %v, want 10s", cfg.Backend.Timeout)
		}
		if cfg.Search.Debounce != 500*time.Millisecond {
			t.Errorf("Load() debounce = %v, want 500ms", cfg.Search.Debounce)
		}
		if cfg.Chat.Language != "es" {
			t.Errorf("Load() language = %v, want es", cfg.Chat.Language)
		}
		if cfg.Storage.Type != "memory" {
			t.Errorf("Load() storage type = %v, want memory", cfg.Storage.Type)
		}
	})

	t.Run("env var overrides", func(t *testing.T) {
		os.Setenv("STOREFRONT_SERVER__PORT", "9000")
		os.Setenv("STOREFRONT_BACKEND__BASE_URL", "http://localhost:8000/")
		defer os.Unsetenv("STOREFRONT_SERVER__PORT")
		defer os.Unsetenv("STOREFRONT_BACKEND__BASE_URL")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}

		if cfg.Server.Port != 9000 {
			t.Errorf("Load() port = %v, want 9000", cfg.Server.Port)
		}
		// Trailing slash is trimmed so origin+path joins stay clean.
		if cfg.Backend.BaseURL != "http://localhost:8000" {
			t.Errorf("Load() backend url = %v, want http://localhost:8000", cfg.Backend.BaseURL)
		}
	})
}

func TestSubstituteEnvVars(t *testing.T) {
	os.Setenv("TEST_VAR", "test-value")
	defer os.Unsetenv("TEST_VAR")

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "simple substitution",
			input: "${TEST_VAR}",
			want:  "test-value",
		},
		{
			name:  "substitution in string",
			input: "prefix-${TEST_VAR}-suffix",
			want:  "prefix-test-value-suffix",
		},
		{
			name:  "no substitution",
			input: "plain-string",
			want:  "plain-string",
		},
		{
			name:  "undefined var",
			input: "${UNDEFINED_VAR}",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := substituteEnvVars(tt.input)
			if got != tt.want {
				t.Errorf("substituteEnvVars() = %v, want %v", got, tt.want)
			}
		})
	}
}
