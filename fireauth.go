// Package fireauth provides typed Go bindings for the client-side
// authentication surface of Google Identity Platform (Firebase
// Authentication): email/password sign-up and sign-in, email-link
// sign-in, and auth-state observation.
//
// All network traffic, token minting and refresh are delegated to the
// Google API clients underneath; this package only adapts their results
// and error codes into Go types.
package fireauth

import (
	"context"
	"fmt"

	"google.golang.org/api/option"

	"github.com/ayanel/fireauth/auth"
	"github.com/ayanel/fireauth/idverify"
)

// Config holds the client configuration for an App.
// APIKey is the Identity Platform web API key and is required.
// ProjectID and CredentialsPath only matter for IDVerifier.
type Config struct {
	APIKey          string `yaml:"api_key" json:"apiKey"`
	ProjectID       string `yaml:"project_id" json:"projectId"`
	TenantID        string `yaml:"tenant_id,omitempty" json:"tenantId,omitempty"`
	CredentialsPath string `yaml:"credentials,omitempty" json:"credentials,omitempty"`
}

// App is the entry point to the bindings. It is cheap to construct and
// safe for concurrent use; service handles are created on demand.
type App struct {
	cfg  Config
	opts []option.ClientOption
}

// NewApp creates an App from the given configuration. Additional client
// options (custom endpoint, HTTP client, ...) are passed through to the
// underlying Google API clients.
func NewApp(ctx context.Context, cfg *Config, opts ...option.ClientOption) (*App, error) {
	if cfg == nil {
		return nil, fmt.Errorf("fireauth: config is required")
	}
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("fireauth: config.APIKey is required")
	}
	return &App{cfg: *cfg, opts: opts}, nil
}

// Config returns a copy of the configuration the App was created with.
func (a *App) Config() Config {
	return a.cfg
}

// Auth returns an authentication client bound to this App's project.
func (a *App) Auth(ctx context.Context) (*auth.Client, error) {
	client, err := auth.NewClient(ctx, &auth.Config{
		APIKey:   a.cfg.APIKey,
		TenantID: a.cfg.TenantID,
	}, a.opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create auth client: %w", err)
	}
	return client, nil
}

// IDVerifier returns a server-side verifier for the ID tokens this
// App's sign-in flows mint. Config.ProjectID is required.
func (a *App) IDVerifier(ctx context.Context) (*idverify.Verifier, error) {
	if a.cfg.ProjectID == "" {
		return nil, fmt.Errorf("fireauth: config.ProjectID is required for ID token verification")
	}
	verifier, err := idverify.NewVerifierWithConfig(ctx, idverify.Config{
		ProjectID:       a.cfg.ProjectID,
		CredentialsPath: a.cfg.CredentialsPath,
		TenantID:        a.cfg.TenantID,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create ID token verifier: %w", err)
	}
	return verifier, nil
}
