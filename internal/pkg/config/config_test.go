//go:build unit

package config_test

import (
	"testing"
	"time"

	"save-serve/internal/pkg/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_FromEnvironment(t *testing.T) {
	t.Chdir(t.TempDir()) // no stray .env
	t.Setenv("PORT", "9000")
	t.Setenv("JWT_SECRET", "x")
	t.Setenv("STORE_DRIVER", "memory")
	t.Setenv("CLAIM_RATE_WINDOW", "30s")
	t.Setenv("CORS_ALLOW_ORIGINS", "https://a.example,https://b.example")

	cfg, err := config.LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.Server.Port)
	assert.Equal(t, "memory", cfg.Store.Driver)
	assert.Equal(t, 30*time.Second, cfg.Claim.RateLimitWindow)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORS.AllowOrigins)
	assert.Equal(t, "24h", cfg.JWT.Duration)
	assert.NoError(t, cfg.Validate())
}

func TestLoadConfig_MissingRequired(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("PORT", "9000")

	_, err := config.LoadConfig()
	assert.ErrorContains(t, err, "JWT_SECRET")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*config.Config)
		wantErr string
	}{
		{name: "test config is valid", mutate: func(*config.Config) {}},
		{name: "unknown store", mutate: func(c *config.Config) { c.Store.Driver = "sqlite" }, wantErr: "STORE_DRIVER"},
		{name: "bad zone", mutate: func(c *config.Config) { c.Server.TimeZone = "Mars/Olympus" }, wantErr: "SERVICE_TIMEZONE"},
		{name: "bad token lifetime", mutate: func(c *config.Config) { c.JWT.Duration = "forever" }, wantErr: "JWT_DURATION"},
		{name: "negative token lifetime", mutate: func(c *config.Config) { c.JWT.Duration = "-1h" }, wantErr: "JWT_DURATION"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.NewTestConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}
