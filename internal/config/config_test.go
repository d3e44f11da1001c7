package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		Server: ServerConfig{},
		Session: SessionConfig{
			Secret:   "secret",
			Issuer:   "ransomproof",
			TokenTTL: 12 * time.Hour,
		},
		Marketplace: MarketplaceConfig{Mode: "static"},
	}
}

func TestValidateAcceptsCompleteConfig(t *testing.T) {
	assert.NoError(t, validConfig().Validate())
}

func TestValidateRequiresSecretOutsideDevMode(t *testing.T) {
	cfg := validConfig()
	cfg.Session.Secret = ""
	assert.Error(t, cfg.Validate())

	cfg.Server.DevMode = true
	assert.NoError(t, cfg.Validate())
}

func TestValidateRejectsNonPositiveTokenTTL(t *testing.T) {
	cfg := validConfig()
	cfg.Session.TokenTTL = 0
	assert.Error(t, cfg.Validate())
}

func TestValidateMarketplaceMode(t *testing.T) {
	cfg := validConfig()
	cfg.Marketplace.Mode = "grpc"
	assert.Error(t, cfg.Validate())

	cfg.Marketplace.Mode = "http"
	cfg.Marketplace.Endpoint = ""
	assert.Error(t, cfg.Validate())

	cfg.Marketplace.Endpoint = "https://resolver.internal/resolve"
	assert.NoError(t, cfg.Validate())
}

func TestDatabaseDSN(t *testing.T) {
	cfg := DatabaseConfig{
		Host: "db", Port: 5432, User: "vigia", Password: "pw",
		Database: "vigia", SSLMode: "disable",
	}
	assert.Equal(t,
		"host=db port=5432 user=vigia password=pw dbname=vigia sslmode=disable",
		cfg.DSN())
}

func TestLoadAppliesEnvOverrides(t *testing.T) {
	t.Setenv("VIGIA_SESSION_SECRET", "env-secret")
	t.Setenv("VIGIA_SERVER_PORT", "9090")
	t.Setenv("VIGIA_MARKETPLACE_MODE", "static")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "env-secret", cfg.Session.Secret)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "static", cfg.Marketplace.Mode)

	// Defaults still apply where nothing overrides them.
	assert.Equal(t, "ransomproof", cfg.Session.Issuer)
	assert.Equal(t, 12*time.Hour, cfg.Session.TokenTTL)
}
