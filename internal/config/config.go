package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

type Config struct {
	App struct {
		Env string `yaml:"env"`
	} `yaml:"app"`

	API struct {
		Host    string `yaml:"host"`   // NEXT_PUBLIC_HOST
		Prefix  string `yaml:"prefix"` // versioned prefix, "/api/v1"
		Timeout int    `yaml:"timeout_seconds"`
	} `yaml:"api"`

	WS struct {
		URL                string `yaml:"url"` // NEXT_PUBLIC_WS_URL
		ReconnectDelayMS   int    `yaml:"reconnect_delay_ms"`
		TicketRetryDelayMS int    `yaml:"ticket_retry_delay_ms"`
	} `yaml:"ws"`

	Site struct {
		URL string `yaml:"url"` // NEXT_PUBLIC_SITE_URL
	} `yaml:"site"`

	Storage struct {
		Type     string `yaml:"type"`      // local, memory
		BasePath string `yaml:"base_path"` // For local storage
	} `yaml:"storage"`

	Upload struct {
		MaxSize      int64    `yaml:"max_size"`      // Max file size in bytes
		AllowedTypes []string `yaml:"allowed_types"` // Allowed MIME types
	} `yaml:"upload"`
}

const (
	DefaultConfigPath       = "config/config.yaml"
	DefaultReconnectDelay   = 3000 * time.Millisecond
	DefaultTicketRetryDelay = 5000 * time.Millisecond
)

var AppConfig *Config

// Defaults returns a config usable without any file on disk.
func Defaults() *Config {
	var cfg Config

	cfg.App.Env = "production"
	cfg.API.Host = "http://localhost:8000"
	cfg.API.Prefix = "/api/v1"
	cfg.API.Timeout = 30
	cfg.WS.URL = "ws://localhost:8000"
	cfg.WS.ReconnectDelayMS = int(DefaultReconnectDelay / time.Millisecond)
	cfg.WS.TicketRetryDelayMS = int(DefaultTicketRetryDelay / time.Millisecond)
	cfg.Site.URL = "http://localhost:3000"
	cfg.Storage.Type = "local"
	cfg.Storage.BasePath = defaultStoragePath()
	cfg.Upload.MaxSize = 5 * 1024 * 1024 // 5MB
	cfg.Upload.AllowedTypes = []string{
		"image/jpeg", "image/png", "image/webp", "application/pdf",
	}

	return &cfg
}

// LoadConfig reads .env (if any), then the YAML file, then environment
// overrides. A missing YAML file is not an error: defaults are used.
func LoadConfig(path string) (*Config, error) {
	// .env is optional, like in the dashboard build
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	cfg := Defaults()

	if path == "" {
		path = os.Getenv("CONFIG_PATH")
	}
	if path == "" {
		path = DefaultConfigPath
	}

	f, err := os.Open(path)
	switch {
	case err == nil:
		defer f.Close()
		if err := yaml.NewDecoder(f).Decode(cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file at %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist):
	default:
		return nil, fmt.Errorf("failed to open config file at %s: %w", path, err)
	}

	applyEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	AppConfig = cfg
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("NEXT_PUBLIC_HOST"); v != "" {
		cfg.API.Host = v
	}
	if v := os.Getenv("NEXT_PUBLIC_WS_URL"); v != "" {
		cfg.WS.URL = v
	}
	if v := os.Getenv("NEXT_PUBLIC_SITE_URL"); v != "" {
		cfg.Site.URL = v
	}
	if v := os.Getenv("SELLER_ENV"); v != "" {
		cfg.App.Env = v
	}
	if v := os.Getenv("SELLER_STORAGE_PATH"); v != "" {
		cfg.Storage.BasePath = v
	}
	if v, err := strconv.Atoi(os.Getenv("SELLER_API_TIMEOUT")); err == nil && v > 0 {
		cfg.API.Timeout = v
	}
}

// Validate checks the fields every component depends on.
func (c *Config) Validate() error {
	if c.API.Host == "" {
		return errors.New("config: api.host (NEXT_PUBLIC_HOST) is required")
	}
	if c.WS.URL == "" {
		return errors.New("config: ws.url (NEXT_PUBLIC_WS_URL) is required")
	}
	if !strings.HasPrefix(c.WS.URL, "ws://") && !strings.HasPrefix(c.WS.URL, "wss://") {
		return fmt.Errorf("config: ws.url must use ws:// or wss://, got %q", c.WS.URL)
	}
	switch c.Storage.Type {
	case "local", "memory":
	default:
		return fmt.Errorf("config: unsupported storage type: %s", c.Storage.Type)
	}
	return nil
}

// APIBaseURL is the REST root, e.g. http://host/api/v1.
func (c *Config) APIBaseURL() string {
	return strings.TrimRight(c.API.Host, "/") + c.API.Prefix
}

func (c *Config) ReconnectDelay() time.Duration {
	if c.WS.ReconnectDelayMS <= 0 {
		return DefaultReconnectDelay
	}
	return time.Duration(c.WS.ReconnectDelayMS) * time.Millisecond
}

func (c *Config) TicketRetryDelay() time.Duration {
	if c.WS.TicketRetryDelayMS <= 0 {
		return DefaultTicketRetryDelay
	}
	return time.Duration(c.WS.TicketRetryDelayMS) * time.Millisecond
}

func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.API.Timeout) * time.Second
}

func GetConfig() *Config {
	if AppConfig == nil {
		cfg, err := LoadConfig("")
		if err != nil {
			AppConfig = Defaults()
			return AppConfig
		}
		return cfg
	}
	return AppConfig
}

func defaultStoragePath() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return dir + "/negromart-seller"
	}
	return "./.seller"
}
