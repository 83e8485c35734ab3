package config

import (
	"errors"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// DefaultBackendURL is the fallback data-service origin used when no
// backend URL is configured. The origin is resolved once at startup and
// never changes during the process lifetime.
const DefaultBackendURL = "https://genai-product-backend.vercel.app"

type Config struct {
	Server  ServerConfig  `koanf:"server"`
	Backend BackendConfig `koanf:"backend"`
	Search  SearchConfig  `koanf:"search"`
	Chat    ChatConfig    `koanf:"chat"`
	Storage StorageConfig `koanf:"storage"`
}

type ServerConfig struct {
	Port int `koanf:"port"`
}

type BackendConfig struct {
	// BaseURL is the origin the gateway proxy and backend client talk to.
	BaseURL string `koanf:"base_url"`
	// Timeout bounds every outbound call; expiry is a transport failure.
	Timeout time.Duration `koanf:"timeout"`
}

type SearchConfig struct {
	// Debounce is how long input must settle before a search is issued.
	Debounce time.Duration `koanf:"debounce"`
	// BlurGrace keeps the results panel open after input blur so a
	// click on a result can land before the panel closes.
	BlurGrace time.Duration `koanf:"blur_grace"`
}

type ChatConfig struct {
	// Language is forwarded to the assistant endpoint with each question.
	Language string `koanf:"language"`
	// OpenAIKey, when set, is forwarded verbatim with each assistant
	// request. It is never persisted.
	OpenAIKey string `koanf:"openai_key"`
}

type StorageConfig struct {
	Type   string       `koanf:"type"` // memory, sqlite
	SQLite SQLiteConfig `koanf:"sqlite"`
}

type SQLiteConfig struct {
	Path string `koanf:"path"`
}

var envVarPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

// Load builds the configuration from an optional yaml file (path taken
// from STOREFRONT_CONFIG, default config.yaml) overlaid with
// STOREFRONT_-prefixed environment variables.
func Load() (*Config, error) {
	k := koanf.New(".")

	path := os.Getenv("STOREFRONT_CONFIG")
	if path == "" {
		path = "config.yaml"
	}
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		// A missing file is fine, env vars carry the config.
		if !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
	}

	if err := k.Load(env.Provider("STOREFRONT_", ".", func(s string) string {
		return strings.Replace(strings.ToLower(strings.TrimPrefix(s, "STOREFRONT_")), "__", ".", -1)
	}), nil); err != nil {
		return nil, err
	}

	applyDefaults(k)

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, err
	}

	cfg.Backend.BaseURL = strings.TrimSuffix(substituteEnvVars(cfg.Backend.BaseURL), "/")
	cfg.Chat.OpenAIKey = substituteEnvVars(cfg.Chat.OpenAIKey)

	return &cfg, nil
}

func applyDefaults(k *koanf.Koanf) {
	defaults := map[string]any{
		"server.port":       3000,
		"backend.base_url":  DefaultBackendURL,
		"backend.timeout":   10 * time.Second,
		"search.debounce":   500 * time.Millisecond,
		"search.blur_grace": 200 * time.Millisecond,
		"chat.language":     "es",
		"storage.type":      "memory",
	}
	for key, value := range defaults {
		if !k.Exists(key) {
			k.Set(key, value)
		}
	}
}

func substituteEnvVars(s string) string {
	return envVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		varName := envVarPattern.FindStringSubmatch(match)[1]
		return os.Getenv(varName)
	})
}
