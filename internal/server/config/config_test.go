package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("JWT_SECRET", "k")
	t.Setenv("JWT_ISSUER", "foliotrack")
	t.Setenv("JWT_AUDIENCE", "foliotrack-web")
}

func TestLoadConfig_Defaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.Equal(t, ":8080", cfg.HTTPAddr)
	require.Equal(t, 15*time.Minute, cfg.AccessTokenTTL)
	require.Equal(t, 7*24*time.Hour, cfg.RefreshTokenTTL)
	require.True(t, cfg.IsDevelopment())
	require.False(t, cfg.SeedDemoData)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("ACCESS_TOKEN_TTL", "5m")
	t.Setenv("ENVIRONMENT", "production")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.Equal(t, ":9090", cfg.HTTPAddr)
	require.Equal(t, 5*time.Minute, cfg.AccessTokenTTL)
	require.False(t, cfg.IsDevelopment())
}

func TestLoadConfig_MissingJWTSettings(t *testing.T) {
	tests := []struct {
		name string
		omit string
	}{
		{"no secret", "JWT_SECRET"},
		{"no issuer", "JWT_ISSUER"},
		{"no audience", "JWT_AUDIENCE"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setRequiredEnv(t)
			t.Setenv(tt.omit, "")

			_, err := LoadConfig()
			require.Error(t, err)
			require.Contains(t, err.Error(), tt.omit)
		})
	}
}
