package idverify

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubVerifier implements TokenVerifier for testing.
type stubVerifier struct {
	claims *Claims
	err    error
}

func (s *stubVerifier) VerifyIDToken(ctx context.Context, idToken string) (*Claims, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.claims, nil
}

type errorBody struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func decodeErrorBody(t *testing.T, rec *httptest.ResponseRecorder) errorBody {
	t.Helper()
	var body errorBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func assertUnauthenticated(t *testing.T, rec *httptest.ResponseRecorder, wantMessage string) {
	t.Helper()
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Bearer", rec.Header().Get("WWW-Authenticate"))

	body := decodeErrorBody(t, rec)
	assert.Equal(t, "unauthenticated", body.Error.Code)
	assert.Equal(t, wantMessage, body.Error.Message)
}

func TestMiddleware_MissingAuthorizationHeader(t *testing.T) {
	handler := Middleware(&stubVerifier{})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler should not be called when authorization header is missing")
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/test", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assertUnauthenticated(t, rec, "missing or malformed Authorization header")
}

func TestMiddleware_MalformedAuthorizationHeader(t *testing.T) {
	tests := []struct {
		name   string
		header string
	}{
		{name: "missing bearer prefix", header: "some-token"},
		{name: "lowercase bearer", header: "bearer some-token"},
		{name: "only bearer prefix", header: "Bearer "},
		{name: "empty after bearer", header: "Bearer"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := Middleware(&stubVerifier{})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				t.Error("handler should not be called when authorization format is invalid")
			}))

			req := httptest.NewRequest(http.MethodGet, "/api/test", nil)
			req.Header.Set("Authorization", tt.header)
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assertUnauthenticated(t, rec, "missing or malformed Authorization header")
		})
	}
}

func TestMiddleware_InvalidToken(t *testing.T) {
	verifier := &stubVerifier{err: errors.New("token verification failed")}
	handler := Middleware(verifier)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler should not be called when token is invalid")
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/test", nil)
	req.Header.Set("Authorization", "Bearer bad-token")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assertUnauthenticated(t, rec, "ID token verification failed")
}

func TestMiddleware_ValidToken(t *testing.T) {
	want := &Claims{
		UID:           "uid-1",
		Email:         "a@example.com",
		EmailVerified: true,
		ProviderID:    "password",
	}
	verifier := &stubVerifier{claims: want}

	called := false
	handler := Middleware(verifier)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		got, ok := GetClaims(r.Context())
		require.True(t, ok, "claims must be available to the handler")
		assert.Equal(t, want, got)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/test", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.True(t, called)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestBearerToken(t *testing.T) {
	tests := []struct {
		name      string
		header    string
		wantToken string
		wantOK    bool
	}{
		{name: "valid", header: "Bearer abc.def.ghi", wantToken: "abc.def.ghi", wantOK: true},
		{name: "empty header", header: "", wantOK: false},
		{name: "no prefix", header: "abc.def.ghi", wantOK: false},
		{name: "empty token", header: "Bearer ", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}

			token, ok := bearerToken(req)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantToken, token)
		})
	}
}
