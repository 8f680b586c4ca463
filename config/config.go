package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

type APIConfig struct {
	// BaseURL is the content API origin, also used to resolve
	// relative asset paths.
	BaseURL string `yaml:"base_url"`
	Timeout string `yaml:"timeout"`
}

// DegradedAuthConfig is the documented degraded-mode credential pair,
// honored only when the login endpoint is unreachable. An empty login
// disables it.
type DegradedAuthConfig struct {
	Login    string `yaml:"login"`
	Password string `yaml:"password"`
}

type ServerConfig struct {
	Port string `yaml:"port"`
}

type Config struct {
	API          APIConfig          `yaml:"api"`
	DegradedAuth DegradedAuthConfig `yaml:"degraded_auth"`
	DatabaseURL  string             `yaml:"database_url"`
	Server       ServerConfig       `yaml:"server"`
}

func defaults() *Config {
	return &Config{
		API: APIConfig{
			BaseURL: "http://localhost/api",
			Timeout: "10s",
		},
		DegradedAuth: DegradedAuthConfig{
			Login:    "admin",
			Password: "password",
		},
		DatabaseURL: "file:comfort-snapshots.db",
		Server: ServerConfig{
			Port: "8080",
		},
	}
}

// Load reads the config file at path (missing file is fine, the
// defaults stand) and applies environment overrides on top.
func Load(path string) (*Config, error) {
	cfg := defaults()

	f, err := os.Open(path)
	if err == nil {
		defer f.Close()
		decoder := yaml.NewDecoder(f)
		if err := decoder.Decode(cfg); err != nil {
			return nil, fmt.Errorf("failed to decode %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}

	overrideFromEnv(cfg)

	if _, err := time.ParseDuration(cfg.API.Timeout); err != nil {
		return nil, fmt.Errorf("invalid api timeout %q: %w", cfg.API.Timeout, err)
	}

	return cfg, nil
}

// APITimeout returns the parsed request timeout. Load validated it.
func (c *Config) APITimeout() time.Duration {
	d, err := time.ParseDuration(c.API.Timeout)
	if err != nil {
		return 10 * time.Second
	}
	return d
}

func overrideFromEnv(cfg *Config) {
	if v := os.Getenv("COMFORT_API_URL"); v != "" {
		cfg.API.BaseURL = v
	}
	if v := os.Getenv("COMFORT_API_TIMEOUT"); v != "" {
		cfg.API.Timeout = v
	}
	if v := os.Getenv("COMFORT_DEGRADED_LOGIN"); v != "" {
		cfg.DegradedAuth.Login = v
	}
	if v := os.Getenv("COMFORT_DEGRADED_PASSWORD"); v != "" {
		cfg.DegradedAuth.Password = v
	}
	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.DatabaseURL = v
	}
	if v := os.Getenv("PORT"); v != "" {
		if _, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = v
		}
	}
}
