package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Operation types reported on a UserCredential.
const (
	OperationSignIn = "signIn"
)

// Provider identifiers reported by the identity platform. Email-link
// sign-in is a method of the password provider, so both bridged flows
// report ProviderPassword; ProviderAnonymous only ever shows up on
// sessions established elsewhere.
const (
	ProviderPassword  = "password"
	ProviderAnonymous = "anonymous"
)

// UserCredential is the opaque result of a successful sign-in or
// sign-up. It is a read-only view over what the identity platform
// returned; the wrapper never mutates or caches it.
type UserCredential struct {
	user          *User
	providerID    string
	operationType string
}

// User returns the authenticated principal.
func (c *UserCredential) User() *User {
	return c.user
}

// ProviderID returns the identifier of the provider used to sign in,
// e.g. "password".
func (c *UserCredential) ProviderID() string {
	return c.providerID
}

// OperationType returns the kind of operation that produced this
// credential, e.g. "signIn".
func (c *UserCredential) OperationType() string {
	return c.operationType
}

// User is the identity platform's representation of an authenticated
// principal. Its lifecycle is owned by the platform: it comes into
// existence on sign-in and is invalidated on sign-out or token expiry.
// The accessors expose the fields reported at sign-in time; they are
// never refreshed locally.
type User struct {
	uid           string
	email         string
	displayName   string
	emailVerified bool
	isAnonymous   bool
	idToken       string
	refreshToken  string
	expiresAt     time.Time
}

// UID returns the principal's stable identifier.
func (u *User) UID() string { return u.uid }

// Email returns the principal's email address.
func (u *User) Email() string { return u.email }

// DisplayName returns the display name, if one is set.
func (u *User) DisplayName() string { return u.displayName }

// EmailVerified reports whether the platform has verified the email.
func (u *User) EmailVerified() bool { return u.emailVerified }

// IsAnonymous reports whether the session belongs to an anonymous
// principal. The flows this package bridges always authenticate with an
// email, so this is only true for tokens minted by an anonymous
// sign-in elsewhere.
func (u *User) IsAnonymous() bool { return u.isAnonymous }

// IDToken returns the JWT minted for this session. It is what a server
// verifies (see the idverify package).
func (u *User) IDToken() string { return u.idToken }

// RefreshToken returns the refresh token for this session. Refreshing
// is the platform's job and is not performed by this package.
func (u *User) RefreshToken() string { return u.refreshToken }

// ExpiresAt returns the ID token's expiry, when known.
func (u *User) ExpiresAt() time.Time { return u.expiresAt }

// idTokenClaims is the subset of ID-token claims the user handle cares
// about. The token is decoded without verification: it was just minted
// by the platform over TLS, and server-side code must verify it anyway.
type idTokenClaims struct {
	Email         string `json:"email"`
	EmailVerified bool   `json:"email_verified"`
	Firebase      struct {
		SignInProvider string `json:"sign_in_provider"`
	} `json:"firebase"`
	jwt.RegisteredClaims
}

func parseIDToken(raw string) (*idTokenClaims, error) {
	claims := &idTokenClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(raw, claims); err != nil {
		return nil, err
	}
	return claims, nil
}

// newUser builds a User from a sign-in response, preferring the
// response's own fields and filling gaps from the ID-token claims.
func newUser(idToken, refreshToken, localID, email, displayName string) *User {
	u := &User{
		uid:          localID,
		email:        email,
		displayName:  displayName,
		idToken:      idToken,
		refreshToken: refreshToken,
	}
	claims, err := parseIDToken(idToken)
	if err != nil {
		return u
	}
	if u.uid == "" {
		u.uid = claims.Subject
	}
	if u.email == "" {
		u.email = claims.Email
	}
	u.emailVerified = claims.EmailVerified
	u.isAnonymous = claims.Firebase.SignInProvider == ProviderAnonymous
	if claims.ExpiresAt != nil {
		u.expiresAt = claims.ExpiresAt.Time
	}
	return u
}
