package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func TestLoadConfig(t *testing.T) {
	tests := []struct {
		name        string
		envVars     map[string]string
		expectError string
	}{
		{
			name: "valid supabase configuration",
			envVars: map[string]string{
				"SUPABASE_JWT_SECRET":  testSecret,
				"SUPABASE_URL":         "https://project.supabase.co",
				"SUPABASE_SERVICE_KEY": "service-key",
			},
		},
		{
			name: "valid postgres configuration",
			envVars: map[string]string{
				"SUPABASE_JWT_SECRET": testSecret,
				"BACKEND_DRIVER":      DriverPostgres,
				"DB_HOST":             "db",
				"DB_PASSWORD":         "secret",
			},
		},
		{
			name: "short JWT secret",
			envVars: map[string]string{
				"SUPABASE_JWT_SECRET":  "short",
				"SUPABASE_URL":         "https://project.supabase.co",
				"SUPABASE_SERVICE_KEY": "service-key",
			},
			expectError: "JWT secret key",
		},
		{
			name: "supabase driver without URL",
			envVars: map[string]string{
				"SUPABASE_JWT_SECRET":  testSecret,
				"SUPABASE_SERVICE_KEY": "service-key",
			},
			expectError: "supabase URL is required",
		},
		{
			name: "unknown driver",
			envVars: map[string]string{
				"SUPABASE_JWT_SECRET": testSecret,
				"BACKEND_DRIVER":      "mysql",
			},
			expectError: "unknown backend driver",
		},
		{
			name: "non-positive balance TTL",
			envVars: map[string]string{
				"SUPABASE_JWT_SECRET":       testSecret,
				"SUPABASE_URL":              "https://project.supabase.co",
				"SUPABASE_SERVICE_KEY":      "service-key",
				"CACHE_BALANCE_TTL_SECONDS": "0",
			},
			expectError: "balance TTL",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for key, value := range tt.envVars {
				t.Setenv(key, value)
			}

			cfg, err := LoadConfig()
			if tt.expectError != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.expectError)
				assert.Nil(t, cfg)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, "8080", cfg.Server.Port)
			assert.Equal(t, testSecret, cfg.Server.JwtSecretKey)
			assert.Equal(t, 15*time.Second, cfg.Cache.BalanceTTL())
			assert.Equal(t, 5*time.Second, cfg.Cache.WriteTimeout())
		})
	}
}

func TestDatabaseURL(t *testing.T) {
	db := DatabaseConfig{Host: "db", Port: 5432, User: "split ly", Password: "p@ss", Name: "splitly"}
	assert.Equal(t, "postgres://split+ly:p%40ss@db:5432/splitly?sslmode=disable", db.URL())

	db.SSLMode = "require"
	assert.Contains(t, db.URL(), "sslmode=require")
}
