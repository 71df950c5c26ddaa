package auth

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func marshalToMap(t *testing.T, s *ActionCodeSettings) map[string]any {
	t.Helper()
	data, err := json.Marshal(s)
	require.NoError(t, err)
	var m map[string]any
	require.NoError(t, json.Unmarshal(data, &m))
	return m
}

func TestActionCodeSettings_SerializeMinimal(t *testing.T) {
	m := marshalToMap(t, &ActionCodeSettings{URL: "https://x"})

	assert.Equal(t, map[string]any{"url": "https://x"}, m, "unset optional fields must be omitted, not serialized as null/false")
}

func TestActionCodeSettings_SerializePartialAndroid(t *testing.T) {
	m := marshalToMap(t, &ActionCodeSettings{
		URL: "https://x",
		Android: &AndroidActionCodeSettings{
			PackageName: "com.app",
			InstallApp:  Bool(true),
		},
	})

	require.Contains(t, m, "android")
	android, ok := m["android"].(map[string]any)
	require.True(t, ok)

	assert.Equal(t, "com.app", android["packageName"])
	assert.Equal(t, true, android["installApp"])
	assert.NotContains(t, android, "minimumVersion")
	assert.NotContains(t, m, "ios")
	assert.NotContains(t, m, "handleCodeInApp")
	assert.NotContains(t, m, "dynamicLinkDomain")
}

func TestActionCodeSettings_SerializeExplicitFalse(t *testing.T) {
	m := marshalToMap(t, &ActionCodeSettings{
		URL:             "https://x",
		HandleCodeInApp: Bool(false),
	})

	// An explicit false is not the same as absent.
	assert.Equal(t, false, m["handleCodeInApp"])
}

func TestActionCodeSettings_SerializeFull(t *testing.T) {
	m := marshalToMap(t, &ActionCodeSettings{
		URL: "https://example.com/finish",
		Android: &AndroidActionCodeSettings{
			PackageName:    "com.example.app",
			MinimumVersion: String("12"),
			InstallApp:     Bool(true),
		},
		IOS:               &IOSActionCodeSettings{BundleID: "com.example.ios"},
		HandleCodeInApp:   Bool(true),
		DynamicLinkDomain: String("example.page.link"),
	})

	assert.Equal(t, "https://example.com/finish", m["url"])
	assert.Equal(t, true, m["handleCodeInApp"])
	assert.Equal(t, "example.page.link", m["dynamicLinkDomain"])

	android := m["android"].(map[string]any)
	assert.Equal(t, "com.example.app", android["packageName"])
	assert.Equal(t, "12", android["minimumVersion"])
	assert.Equal(t, true, android["installApp"])

	ios := m["ios"].(map[string]any)
	assert.Equal(t, "com.example.ios", ios["bundleId"])
}

func TestActionCodeSettings_Validate(t *testing.T) {
	tests := []struct {
		name     string
		settings ActionCodeSettings
		wantErr  string
	}{
		{
			name:     "valid minimal",
			settings: ActionCodeSettings{URL: "https://x"},
		},
		{
			name:    "missing url",
			wantErr: "URL is required",
		},
		{
			name: "android without package name",
			settings: ActionCodeSettings{
				URL:     "https://x",
				Android: &AndroidActionCodeSettings{InstallApp: Bool(true)},
			},
			wantErr: "PackageName is required",
		},
		{
			name: "ios without bundle id",
			settings: ActionCodeSettings{
				URL: "https://x",
				IOS: &IOSActionCodeSettings{},
			},
			wantErr: "BundleID is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.settings.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestActionCodeSettings_ToOOBRequest(t *testing.T) {
	settings := &ActionCodeSettings{
		URL: "https://example.com/finish",
		Android: &AndroidActionCodeSettings{
			PackageName: "com.example.app",
			InstallApp:  Bool(true),
		},
		HandleCodeInApp: Bool(true),
	}

	req := settings.toOOBRequest(oobRequestTypeEmailSignIn, "a@example.com")

	assert.Equal(t, "EMAIL_SIGNIN", req.RequestType)
	assert.Equal(t, "a@example.com", req.Email)
	assert.Equal(t, "https://example.com/finish", req.ContinueUrl)
	assert.Equal(t, "com.example.app", req.AndroidPackageName)
	assert.True(t, req.AndroidInstallApp)
	assert.True(t, req.CanHandleCodeInApp)
	assert.Empty(t, req.AndroidMinimumVersion)
	assert.Empty(t, req.IOSBundleId)
	assert.Empty(t, req.DynamicLinkDomain)
}
