// Package auth bridges the client-side authentication operations of
// Google Identity Platform into Go: email/password sign-up and sign-in,
// email-link sign-in, out-of-band emails, and auth-state observation.
//
// Every bridged operation blocks until the external call settles and
// fails with *Error, carrying the classified ErrorKind and the original
// cause. The package imposes no timeouts and no retries; pass a
// deadline through ctx if one is wanted.
package auth

import (
	"context"
	"fmt"
	"net/url"
	"sync"

	identitytoolkit "google.golang.org/api/identitytoolkit/v3"
	"google.golang.org/api/option"
)

// Config holds the configuration for a Client.
type Config struct {
	// APIKey is the Identity Platform web API key. Required.
	APIKey string
	// TenantID scopes all operations to a tenant when the project uses
	// multi-tenancy. Optional.
	TenantID string
}

// Client is the handle for one auth context. It holds no state beyond
// the current user and its observers; concurrent bridged calls are
// permitted, with no ordering promise between them.
type Client struct {
	api      backend
	tenantID string

	mu          sync.Mutex
	currentUser *User
	subscribers map[int]*subscriber
	nextSubID   int
}

// NewClient creates a Client. Most callers go through fireauth.App.Auth
// instead of calling this directly.
func NewClient(ctx context.Context, cfg *Config, opts ...option.ClientOption) (*Client, error) {
	if cfg == nil || cfg.APIKey == "" {
		return nil, fmt.Errorf("auth: config.APIKey is required")
	}
	clientOpts := append([]option.ClientOption{option.WithAPIKey(cfg.APIKey)}, opts...)
	api, err := newRESTBackend(ctx, clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create identity toolkit client: %w", err)
	}
	return &Client{api: api, tenantID: cfg.TenantID}, nil
}

// CreateUser creates a new email/password account and signs it in.
// On success the client's current user changes as a side effect.
func (c *Client) CreateUser(ctx context.Context, email, password string) (*UserCredential, error) {
	resp, err := c.api.SignUpNewUser(ctx, &identitytoolkit.IdentitytoolkitRelyingpartySignupNewUserRequest{
		Email:    email,
		Password: password,
		TenantId: c.tenantID,
	})
	if err != nil {
		return nil, fromBackendError(err)
	}
	user := newUser(resp.IdToken, resp.RefreshToken, resp.LocalId, resp.Email, resp.DisplayName)
	c.setCurrentUser(user)
	return &UserCredential{
		user:          user,
		providerID:    ProviderPassword,
		operationType: OperationSignIn,
	}, nil
}

// SignInWithPassword signs in an existing email/password account.
func (c *Client) SignInWithPassword(ctx context.Context, email, password string) (*UserCredential, error) {
	resp, err := c.api.VerifyPassword(ctx, &identitytoolkit.IdentitytoolkitRelyingpartyVerifyPasswordRequest{
		Email:             email,
		Password:          password,
		ReturnSecureToken: true,
		TenantId:          c.tenantID,
	})
	if err != nil {
		return nil, fromBackendError(err)
	}
	user := newUser(resp.IdToken, resp.RefreshToken, resp.LocalId, resp.Email, resp.DisplayName)
	c.setCurrentUser(user)
	return &UserCredential{
		user:          user,
		providerID:    ProviderPassword,
		operationType: OperationSignIn,
	}, nil
}

// SendSignInLink sends a sign-in link to email. The settings describe
// how the link routes back into the application and must carry a
// continuation URL.
func (c *Client) SendSignInLink(ctx context.Context, email string, settings *ActionCodeSettings) error {
	if settings == nil {
		return fmt.Errorf("auth: action code settings are required")
	}
	if err := settings.Validate(); err != nil {
		return err
	}
	if _, err := c.api.GetOOBConfirmationCode(ctx, settings.toOOBRequest(oobRequestTypeEmailSignIn, email)); err != nil {
		return fromBackendError(err)
	}
	return nil
}

// SignInWithEmailLink completes an email-link sign-in using the link
// received by mail. The link must contain a sign-in action code.
func (c *Client) SignInWithEmailLink(ctx context.Context, email, emailLink string) (*UserCredential, error) {
	code := actionCodeFromLink(emailLink)
	if code == "" {
		return nil, newError("auth/argument-error", fmt.Errorf("link carries no sign-in action code"))
	}
	resp, err := c.api.EmailLinkSignIn(ctx, &identitytoolkit.IdentitytoolkitRelyingpartyEmailLinkSigninRequest{
		Email:   email,
		OobCode: code,
	})
	if err != nil {
		return nil, fromBackendError(err)
	}
	user := newUser(resp.IdToken, resp.RefreshToken, resp.LocalId, resp.Email, "")
	c.setCurrentUser(user)
	return &UserCredential{
		user:          user,
		providerID:    ProviderPassword,
		operationType: OperationSignIn,
	}, nil
}

// IsSignInWithEmailLink reports whether link is a sign-in email link
// this client could complete. Purely local; no network.
func (c *Client) IsSignInWithEmailLink(link string) bool {
	q := actionCodeValues(link)
	return q != nil && q.Get("mode") == "signIn"
}

// SendPasswordResetEmail sends a password-reset email. Settings are
// optional; when present they must validate.
func (c *Client) SendPasswordResetEmail(ctx context.Context, email string, settings *ActionCodeSettings) error {
	req := &identitytoolkit.Relyingparty{
		RequestType: oobRequestTypePasswordReset,
		Email:       email,
	}
	if settings != nil {
		if err := settings.Validate(); err != nil {
			return err
		}
		req = settings.toOOBRequest(oobRequestTypePasswordReset, email)
	}
	if _, err := c.api.GetOOBConfirmationCode(ctx, req); err != nil {
		return fromBackendError(err)
	}
	return nil
}

// ConfirmPasswordReset completes a password reset with the action code
// from a reset email.
func (c *Client) ConfirmPasswordReset(ctx context.Context, oobCode, newPassword string) error {
	if _, err := c.api.ResetPassword(ctx, &identitytoolkit.IdentitytoolkitRelyingpartyResetPasswordRequest{
		OobCode:     oobCode,
		NewPassword: newPassword,
	}); err != nil {
		return fromBackendError(err)
	}
	return nil
}

// SignOut clears the current user and notifies observers. The session
// tokens themselves stay valid until they expire; revocation is the
// platform's concern.
func (c *Client) SignOut() {
	c.setCurrentUser(nil)
}

// actionCodeValues extracts the action-code query parameters from an
// out-of-band email link. Links delivered through a dynamic-link
// domain wrap the real link in a `link` parameter, one level deep.
func actionCodeValues(link string) url.Values {
	u, err := url.Parse(link)
	if err != nil {
		return nil
	}
	q := u.Query()
	if q.Get("oobCode") != "" {
		return q
	}
	if inner := q.Get("link"); inner != "" {
		iu, err := url.Parse(inner)
		if err != nil {
			return nil
		}
		if iq := iu.Query(); iq.Get("oobCode") != "" {
			return iq
		}
	}
	return nil
}

func actionCodeFromLink(link string) string {
	q := actionCodeValues(link)
	if q == nil {
		return ""
	}
	return q.Get("oobCode")
}
