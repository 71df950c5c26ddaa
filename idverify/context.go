package idverify

import (
	"context"
)

// claimsKey is unexported and zero-sized; only this package can place
// or look up claims in a context.
type claimsKey struct{}

// WithClaims returns a context carrying the verified claims.
func WithClaims(ctx context.Context, claims *Claims) context.Context {
	return context.WithValue(ctx, claimsKey{}, claims)
}

// GetClaims retrieves verified claims from the context, if present.
func GetClaims(ctx context.Context) (*Claims, bool) {
	claims, ok := ctx.Value(claimsKey{}).(*Claims)
	return claims, ok
}

// MustGetClaims retrieves claims or panics. For use in handlers that
// only run behind Middleware, where absence is a programming error.
func MustGetClaims(ctx context.Context) *Claims {
	claims, ok := GetClaims(ctx)
	if !ok {
		panic("idverify: claims not found in context")
	}
	return claims
}
