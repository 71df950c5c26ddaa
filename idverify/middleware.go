package idverify

import (
	"encoding/json"
	"net/http"
	"strings"
)

// Middleware returns middleware that verifies the ID token presented in
// the Authorization header (Bearer <token>). Requests without a usable
// token are rejected with 401 and a structured JSON body; on success
// the verified Claims are added to the request context.
func Middleware(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r)
			if !ok {
				writeUnauthenticated(w, "missing or malformed Authorization header")
				return
			}

			claims, err := verifier.VerifyIDToken(r.Context(), token)
			if err != nil {
				writeUnauthenticated(w, "ID token verification failed")
				return
			}

			next.ServeHTTP(w, r.WithContext(WithClaims(r.Context(), claims)))
		})
	}
}

// bearerToken extracts the token from a case-sensitive "Bearer" scheme.
func bearerToken(r *http.Request) (string, bool) {
	token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
	if !ok || token == "" {
		return "", false
	}
	return token, true
}

// writeUnauthenticated writes the 401 response body. The stable "code"
// field lets API clients branch without parsing the message.
func writeUnauthenticated(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("WWW-Authenticate", "Bearer")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"error": map[string]any{
			"code":    "unauthenticated",
			"message": message,
		},
	})
}
