package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadConfig(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		env     map[string]string
		wantErr bool
		verify  func(t *testing.T, cfg *Config)
	}{
		{
			name: "file values",
			body: `
postgres:
  dsn: postgres://roster@localhost/roster
http:
  address: ":9000"
  allowed_origins: ["https://clan.example"]
notifications:
  mode: river
  timeout: 3s
`,
			verify: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "postgres://roster@localhost/roster", cfg.Postgres.DSN)
				assert.Equal(t, ":9000", cfg.HTTP.Address)
				assert.Equal(t, []string{"https://clan.example"}, cfg.HTTP.AllowedOrigins)
				assert.Equal(t, NotificationModeRiver, cfg.Notifications.Mode)
				assert.Equal(t, 3*time.Second, cfg.Notifications.Timeout)
				// untouched values keep their defaults
				assert.Equal(t, 5, cfg.HTTP.ApplyBurst)
				assert.Equal(t, StoreDriverPostgres, cfg.Store.Driver)
				assert.False(t, cfg.HTTP.TrustProxyHeaders)
			},
		},
		{
			name: "env overrides file",
			body: "postgres:\n  dsn: postgres://file\n",
			env: map[string]string{
				"DATABASE_URL":        "postgres://env",
				"ALLOWED_ORIGINS":     "https://a.example, https://b.example",
				"APPLY_BURST":         "9",
				"TRUST_PROXY_HEADERS": "true",
			},
			verify: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "postgres://env", cfg.Postgres.DSN)
				assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.HTTP.AllowedOrigins)
				assert.Equal(t, 9, cfg.HTTP.ApplyBurst)
				assert.True(t, cfg.HTTP.TrustProxyHeaders)
			},
		},
		{
			name: "memory store needs no dsn",
			body: "store:\n  driver: memory\n",
			verify: func(t *testing.T, cfg *Config) {
				assert.Equal(t, StoreDriverMemory, cfg.Store.Driver)
			},
		},
		{
			name:    "postgres store without dsn",
			body:    "store:\n  driver: postgres\n",
			wantErr: true,
		},
		{
			name:    "river requires postgres",
			body:    "store:\n  driver: memory\nnotifications:\n  mode: river\n",
			wantErr: true,
		},
		{
			name:    "invalid env duration",
			body:    "store:\n  driver: memory\n",
			env:     map[string]string{"NOTIFICATIONS_TIMEOUT": "soon"},
			wantErr: true,
		},
		{
			name:    "malformed yaml",
			body:    "store: [",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, k := range []string{"DATABASE_URL", "STORE_DRIVER", "NOTIFICATIONS_MODE", "NOTIFICATIONS_TIMEOUT", "TRUST_PROXY_HEADERS"} {
				t.Setenv(k, "")
			}
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			cfg, err := LoadConfig(writeConfig(t, tt.body))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			tt.verify(t, cfg)
		})
	}
}

func TestLoadConfig_MissingFileFallsBackToEnv(t *testing.T) {
	t.Setenv("STORE_DRIVER", "memory")

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, StoreDriverMemory, cfg.Store.Driver)
	assert.Equal(t, NotificationModePubSub, cfg.Notifications.Mode)
}
