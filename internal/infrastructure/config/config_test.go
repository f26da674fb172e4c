package config

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyDefaults(t *testing.T) {
	cfg := &Config{}
	applyDefaults(cfg)

	assert.Equal(t, "ledgerline-backend", cfg.App.Name)
	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, "8080", cfg.App.Port)
	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "ledgerline", cfg.Database.DBName)
	assert.Equal(t, 15*time.Minute, cfg.JWT.AccessTokenExpiration)
	assert.Equal(t, 168*time.Hour, cfg.JWT.RefreshTokenExpiration)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "1000", cfg.Accounting.CashAccountCode)
	assert.Equal(t, "4000", cfg.Accounting.SalesRevenueAccountCode)
	assert.Equal(t, "5000", cfg.Accounting.PurchaseExpenseAccountCode)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(cfg *Config)
		wantErr string
	}{
		{
			name:   "valid development defaults",
			mutate: func(cfg *Config) {},
		},
		{
			name: "idle conns exceed open conns",
			mutate: func(cfg *Config) {
				cfg.Database.MaxOpenConns = 5
				cfg.Database.MaxIdleConns = 10
			},
			wantErr: "max_idle_conns",
		},
		{
			name: "production requires jwt secret",
			mutate: func(cfg *Config) {
				cfg.App.Env = "production"
				cfg.Database.Password = "secret"
				cfg.Database.SSLMode = "require"
			},
			wantErr: "jwt.secret is required",
		},
		{
			name: "production rejects short jwt secret",
			mutate: func(cfg *Config) {
				cfg.App.Env = "production"
				cfg.JWT.Secret = "short"
				cfg.Database.Password = "secret"
				cfg.Database.SSLMode = "require"
			},
			wantErr: "at least 32 characters",
		},
		{
			name: "production rejects sslmode disable",
			mutate: func(cfg *Config) {
				cfg.App.Env = "production"
				cfg.JWT.Secret = strings.Repeat("x", 32)
				cfg.Database.Password = "secret"
			},
			wantErr: "sslmode",
		},
		{
			name: "production rejects wildcard cors origin",
			mutate: func(cfg *Config) {
				cfg.App.Env = "production"
				cfg.JWT.Secret = strings.Repeat("x", 32)
				cfg.Database.Password = "secret"
				cfg.Database.SSLMode = "require"
				cfg.HTTP.CORSAllowOrigins = []string{"*"}
			},
			wantErr: "cors_allow_origins",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{}
			applyDefaults(cfg)
			tt.mutate(cfg)

			err := cfg.validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestDatabaseDSN(t *testing.T) {
	d := DatabaseConfig{
		Host:     "db.internal",
		Port:     5433,
		User:     "ledger",
		Password: "p@ss word",
		DBName:   "ledgerline",
		SSLMode:  "require",
	}

	dsn := d.DSN()
	assert.Contains(t, dsn, "postgres://")
	assert.Contains(t, dsn, "db.internal:5433")
	assert.Contains(t, dsn, "sslmode=require")
	assert.NotContains(t, dsn, "p@ss word") // password must be escaped
}
