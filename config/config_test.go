package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		envVars map[string]string
		wantErr bool
		check   func(*testing.T, *Config)
	}{
		{
			name:    "default configuration",
			envVars: map[string]string{},
			wantErr: false,
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "development", cfg.Environment)
				assert.Equal(t, "0.0.0.0", cfg.Server.Host)
				assert.Equal(t, 8080, cfg.Server.Port)
				assert.Equal(t, DefaultJWTSecret, cfg.Auth.JWTSecret)
				assert.Equal(t, 24*time.Hour, cfg.Auth.TokenTTL)
				assert.False(t, cfg.Database.HasDatabase())
			},
		},
		{
			name: "production with secret",
			envVars: map[string]string{
				"ENVIRONMENT": "production",
				"JWT_SECRET":  "super-secret-value",
				"SERVER_PORT": "9000",
			},
			wantErr: false,
			check: func(t *testing.T, cfg *Config) {
				assert.True(t, cfg.IsProduction())
				assert.Equal(t, 9000, cfg.Server.Port)
				assert.Equal(t, "super-secret-value", cfg.Auth.JWTSecret)
			},
		},
		{
			name: "production without secret fails",
			envVars: map[string]string{
				"ENVIRONMENT": "production",
			},
			wantErr: true,
		},
		{
			name: "database from DATABASE_URL",
			envVars: map[string]string{
				"DATABASE_URL": "postgres://erp:pw@db.example.com:5432/erp",
			},
			check: func(t *testing.T, cfg *Config) {
				assert.True(t, cfg.Database.HasDatabase())
				assert.Equal(t, "postgres://erp:pw@db.example.com:5432/erp", cfg.Database.DSN())
			},
		},
		{
			name: "database from DB_* vars",
			envVars: map[string]string{
				"DB_HOST":     "localhost",
				"DB_PASSWORD": "pw",
			},
			check: func(t *testing.T, cfg *Config) {
				assert.True(t, cfg.Database.HasDatabase())
				assert.Contains(t, cfg.Database.DSN(), "host=localhost")
				assert.NotContains(t, cfg.Database.LogString(), "pw")
			},
		},
		{
			name: "custom timeouts and TTL",
			envVars: map[string]string{
				"SERVER_READ_TIMEOUT": "60s",
				"JWT_TOKEN_TTL":       "15m",
			},
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, 60*time.Second, cfg.Server.ReadTimeout)
				assert.Equal(t, 15*time.Minute, cfg.Auth.TokenTTL)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Clearenv()
			for k, v := range tt.envVars {
				t.Setenv(k, v)
			}

			cfg, err := New()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			if tt.check != nil {
				tt.check(t, cfg)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		return &Config{
			Environment: "development",
			Auth:        AuthConfig{JWTSecret: "s", TokenTTL: time.Hour},
			Observability: ObservabilityConfig{
				LogLevel: "info", LogFormat: "json",
			},
		}
	}

	t.Run("valid", func(t *testing.T) {
		assert.NoError(t, base().Validate())
	})

	t.Run("empty secret", func(t *testing.T) {
		cfg := base()
		cfg.Auth.JWTSecret = ""
		assert.Error(t, cfg.Validate())
	})

	t.Run("non-positive TTL", func(t *testing.T) {
		cfg := base()
		cfg.Auth.TokenTTL = 0
		assert.Error(t, cfg.Validate())
	})
}
