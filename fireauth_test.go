package fireauth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewApp(t *testing.T) {
	tests := []struct {
		name    string
		cfg     *Config
		wantErr string
	}{
		{
			name: "valid",
			cfg:  &Config{APIKey: "test-key", ProjectID: "test-project"},
		},
		{
			name:    "nil config",
			cfg:     nil,
			wantErr: "config is required",
		},
		{
			name:    "missing api key",
			cfg:     &Config{ProjectID: "test-project"},
			wantErr: "APIKey is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app, err := NewApp(context.Background(), tt.cfg)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, *tt.cfg, app.Config())
		})
	}
}

func TestIDVerifier_RequiresProjectID(t *testing.T) {
	app, err := NewApp(context.Background(), &Config{APIKey: "test-key"})
	require.NoError(t, err)

	_, err = app.IDVerifier(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ProjectID is required")
}

func TestNewApp_CopiesConfig(t *testing.T) {
	cfg := &Config{APIKey: "test-key"}
	app, err := NewApp(context.Background(), cfg)
	require.NoError(t, err)

	cfg.APIKey = "mutated"
	assert.Equal(t, "test-key", app.Config().APIKey, "App must not observe later mutation of the caller's config")
}
