// Package config loads the application configuration the API clients are
// initialised from: a YAML file, with environment variables taking
// precedence so deployments can override individual values.
package config

import (
	"fmt"
	"os"
	"strconv"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/hashicorp/go-hclog"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// APISettings is the connection surface one client reads at
// initialisation: base URL and bearer token.
type APISettings struct {
	URL       string `yaml:"url"`
	AuthToken string `yaml:"auth_token"`
}

// SearchAPISettings adds the Search API's enabled flag.
type SearchAPISettings struct {
	APISettings `yaml:",inline"`
	Enabled     bool `yaml:"enabled"`
}

// Config is the application configuration.
type Config struct {
	DataAPI   APISettings       `yaml:"data_api"`
	SearchAPI SearchAPISettings `yaml:"search_api"`
	LogLevel  string            `yaml:"log_level"`
}

// Environment variable overrides. ES_ENABLED keeps its historical name
// from when the search backend was Elasticsearch.
const (
	envDataAPIURL     = "DM_DATA_API_URL"
	envDataAPIToken   = "DM_DATA_API_AUTH_TOKEN"
	envSearchAPIURL   = "DM_SEARCH_API_URL"
	envSearchAPIToken = "DM_SEARCH_API_AUTH_TOKEN"
	envSearchEnabled  = "ES_ENABLED"
	envLogLevel       = "DM_LOG_LEVEL"
)

// Load reads the configuration file at path, then applies environment
// overrides. A .env file in the working directory is loaded first when
// present. An empty path skips the file and uses environment values only.
func Load(path string) (*Config, error) {
	// Missing .env is the normal case outside development.
	_ = godotenv.Load()

	cfg := &Config{LogLevel: "info"}

	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("config: failed to read %s: %w", path, err)
		}
		if err := yaml.Unmarshal(raw, cfg); err != nil {
			return nil, fmt.Errorf("config: failed to parse %s: %w", path, err)
		}
	}

	applyEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: invalid configuration: %w", err)
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv(envDataAPIURL); v != "" {
		cfg.DataAPI.URL = v
	}
	if v := os.Getenv(envDataAPIToken); v != "" {
		cfg.DataAPI.AuthToken = v
	}
	if v := os.Getenv(envSearchAPIURL); v != "" {
		cfg.SearchAPI.URL = v
	}
	if v := os.Getenv(envSearchAPIToken); v != "" {
		cfg.SearchAPI.AuthToken = v
	}
	if v := os.Getenv(envSearchEnabled); v != "" {
		if enabled, err := strconv.ParseBool(v); err == nil {
			cfg.SearchAPI.Enabled = enabled
		}
	}
	if v := os.Getenv(envLogLevel); v != "" {
		cfg.LogLevel = v
	}
}

// Validate checks that every configured URL is well formed. URLs are
// optional: an application may use only one of the APIs.
func (c *Config) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.DataAPI, validation.By(validateSettings)),
		validation.Field(&c.SearchAPI, validation.By(func(value any) error {
			s := value.(SearchAPISettings)
			return validateSettings(s.APISettings)
		})),
	)
}

func validateSettings(value any) error {
	s := value.(APISettings)
	return validation.ValidateStruct(&s,
		validation.Field(&s.URL, is.URL),
	)
}

// NewLogger builds the application logger from the configured level.
func (c *Config) NewLogger(name string) hclog.Logger {
	return hclog.New(&hclog.LoggerOptions{
		Name:  name,
		Level: hclog.LevelFromString(c.LogLevel),
	})
}
