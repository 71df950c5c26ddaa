// Package idverify verifies, on the server side, the ID tokens that the
// client sign-in flows in package auth mint. Verification is delegated
// to the Firebase Admin SDK; this package adapts its output into a flat
// Claims value and wires it into net/http handlers.
package idverify

import (
	"context"
	"fmt"

	firebase "firebase.google.com/go/v4"
	firebaseauth "firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"
)

// Claims are the identity claims extracted from a verified ID token.
type Claims struct {
	UID           string
	Email         string
	EmailVerified bool
	Name          string
	Picture       string
	ProviderID    string
}

// TokenVerifier verifies an ID token and returns its claims.
type TokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*Claims, error)
}

// idTokenVerifier is the slice of the Admin SDK both the project-level
// client and a tenant client implement.
type idTokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*firebaseauth.Token, error)
}

// Verifier implements TokenVerifier using the Firebase Admin SDK.
type Verifier struct {
	verifier idTokenVerifier
	tenantID string
}

var _ TokenVerifier = (*Verifier)(nil)

// Config holds configuration for a Verifier.
type Config struct {
	ProjectID       string
	CredentialsPath string
	TenantID        string // optional, for multi-tenant Identity Platform
}

// NewVerifier creates a Verifier for the given project.
func NewVerifier(ctx context.Context, projectID, credentialsPath string) (*Verifier, error) {
	return NewVerifierWithConfig(ctx, Config{
		ProjectID:       projectID,
		CredentialsPath: credentialsPath,
	})
}

// NewVerifierWithConfig creates a Verifier with full configuration.
func NewVerifierWithConfig(ctx context.Context, cfg Config) (*Verifier, error) {
	var opts []option.ClientOption
	if cfg.CredentialsPath != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsPath))
	}

	app, err := firebase.NewApp(ctx, &firebase.Config{
		ProjectID: cfg.ProjectID,
	}, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create firebase app: %w", err)
	}

	authClient, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get auth client: %w", err)
	}

	var verifier idTokenVerifier = authClient
	if cfg.TenantID != "" {
		tenantClient, err := authClient.TenantManager.AuthForTenant(cfg.TenantID)
		if err != nil {
			return nil, fmt.Errorf("failed to get tenant auth client for %s: %w", cfg.TenantID, err)
		}
		verifier = tenantClient
	}

	return &Verifier{verifier: verifier, tenantID: cfg.TenantID}, nil
}

// VerifyIDToken verifies an ID token and returns the decoded claims.
func (v *Verifier) VerifyIDToken(ctx context.Context, idToken string) (*Claims, error) {
	token, err := v.verifier.VerifyIDToken(ctx, idToken)
	if err != nil {
		return nil, fmt.Errorf("failed to verify ID token: %w", err)
	}

	claims := &Claims{
		UID:           token.UID,
		Email:         getStringClaim(token.Claims, "email"),
		EmailVerified: getBoolClaim(token.Claims, "email_verified"),
		Name:          getStringClaim(token.Claims, "name"),
		Picture:       getStringClaim(token.Claims, "picture"),
	}
	if token.Firebase.SignInProvider != "" {
		claims.ProviderID = token.Firebase.SignInProvider
	}
	return claims, nil
}

// getStringClaim safely extracts a string claim from the claims map.
func getStringClaim(claims map[string]any, key string) string {
	val, ok := claims[key]
	if !ok {
		return ""
	}
	str, ok := val.(string)
	if !ok {
		return ""
	}
	return str
}

// getBoolClaim safely extracts a boolean claim from the claims map.
func getBoolClaim(claims map[string]any, key string) bool {
	val, ok := claims[key]
	if !ok {
		return false
	}
	b, ok := val.(bool)
	if !ok {
		return false
	}
	return b
}
