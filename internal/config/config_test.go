package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{"ENVIRONMENT", "PORT", "SUPABASE_URL", "SITE_URL", "LOG_MAX_FILES", "MIGRATE_ON_START"} {
		t.Setenv(k, "")
	}

	cfg := Load()
	assert.Equal(t, "dev", cfg.Environment)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "http://localhost:5173", cfg.SiteURL)
	assert.Equal(t, 10, cfg.LogMaxFiles)
	assert.True(t, cfg.MigrateOnStart)
}

func TestLoad_FromEnv(t *testing.T) {
	tests := []struct {
		name  string
		env   map[string]string
		check func(t *testing.T, cfg *Config)
	}{
		{
			name: "jwks url derived from supabase url",
			env:  map[string]string{"SUPABASE_URL": "https://abc.supabase.co/"},
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "https://abc.supabase.co", cfg.SupabaseURL)
				assert.Equal(t, "https://abc.supabase.co/auth/v1/.well-known/jwks.json", cfg.SupabaseJWKSURL)
			},
		},
		{
			name: "prod disables migrations by default",
			env:  map[string]string{"ENVIRONMENT": "prod"},
			check: func(t *testing.T, cfg *Config) {
				assert.False(t, cfg.MigrateOnStart)
			},
		},
		{
			name: "explicit migrate flag wins in prod",
			env:  map[string]string{"ENVIRONMENT": "prod", "MIGRATE_ON_START": "true"},
			check: func(t *testing.T, cfg *Config) {
				assert.True(t, cfg.MigrateOnStart)
			},
		},
		{
			name: "bad log file count falls back",
			env:  map[string]string{"LOG_MAX_FILES": "-3"},
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, 10, cfg.LogMaxFiles)
			},
		},
		{
			name: "site url trailing slash trimmed",
			env:  map[string]string{"SITE_URL": "https://rpg.example.com/"},
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "https://rpg.example.com", cfg.SiteURL)
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, k := range []string{"ENVIRONMENT", "SUPABASE_URL", "SITE_URL", "LOG_MAX_FILES", "MIGRATE_ON_START"} {
				t.Setenv(k, "")
			}
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			tt.check(t, Load())
		})
	}
}

func TestSetupLogFile_PrunesOldFiles(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{
		"server-2024-01-01T00-00-00.log",
		"server-2024-01-02T00-00-00.log",
		"server-2024-01-03T00-00-00.log",
		"seed-2024-01-01T00-00-00.log",
	} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, 0o644))
	}

	f, err := SetupLogFile(dir, "server", 2)
	require.NoError(t, err)
	t.Cleanup(func() { _ = f.Close() })

	servers, err := filepath.Glob(filepath.Join(dir, "server-*.log"))
	require.NoError(t, err)
	assert.Len(t, servers, 2)
	assert.Contains(t, servers, f.Name())
	assert.Contains(t, servers, filepath.Join(dir, "server-2024-01-03T00-00-00.log"))

	assert.FileExists(t, filepath.Join(dir, "seed-2024-01-01T00-00-00.log"))
}
