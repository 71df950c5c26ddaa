// Package config loads the configuration for the fireauth command.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config represents the command configuration.
type Config struct {
	// APIKey is the Identity Platform web API key.
	APIKey string `yaml:"api_key"`
	// ProjectID is required only for server-side token verification.
	ProjectID string `yaml:"project_id,omitempty"`
	// TenantID scopes operations to a tenant (multi-tenant projects).
	TenantID string `yaml:"tenant_id,omitempty"`
	// Credentials is a service account file path for token verification.
	Credentials string `yaml:"credentials,omitempty"`
	// ContinueURL is the default continuation URL for sign-in links.
	ContinueURL string `yaml:"continue_url,omitempty"`
}

// Load reads configuration from the specified YAML file. When path is
// empty the configuration comes from environment variables alone.
// Environment variables override file values:
//   - FIREAUTH_API_KEY overrides api_key
//   - FIREAUTH_PROJECT_ID overrides project_id
//   - FIREAUTH_TENANT_ID overrides tenant_id
//   - FIREAUTH_CREDENTIALS overrides credentials
//   - FIREAUTH_CONTINUE_URL overrides continue_url
func Load(path string) (*Config, error) {
	var cfg Config

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse YAML: %w", err)
		}
	}

	applyEnvOverrides(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// LoadFromEnv loads configuration from environment variables only.
func LoadFromEnv() (*Config, error) {
	return Load("")
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("FIREAUTH_API_KEY"); v != "" {
		cfg.APIKey = v
	}
	if v := os.Getenv("FIREAUTH_PROJECT_ID"); v != "" {
		cfg.ProjectID = v
	}
	if v := os.Getenv("FIREAUTH_TENANT_ID"); v != "" {
		cfg.TenantID = v
	}
	if v := os.Getenv("FIREAUTH_CREDENTIALS"); v != "" {
		cfg.Credentials = v
	}
	if v := os.Getenv("FIREAUTH_CONTINUE_URL"); v != "" {
		cfg.ContinueURL = v
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.APIKey == "" {
		return fmt.Errorf("api_key is required (set FIREAUTH_API_KEY or api_key in the config file)")
	}
	if c.Credentials != "" && c.ProjectID == "" {
		return fmt.Errorf("project_id is required when credentials are set")
	}
	return nil
}
