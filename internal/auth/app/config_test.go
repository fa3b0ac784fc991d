package app

import (
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/aussiebroadwan/dynaform/pkg/httpx"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func validConfig() Config {
	return Config{
		Env:                  "test",
		LogLevel:             "info",
		LogFormat:            "json",
		HTTPAddr:             ":8080",
		ReadHeaderTimeout:    3 * time.Second,
		ShutdownGracePeriod:  10 * time.Second,
		DatabaseDSN:          ":memory:",
		Issuer:               "dynaform-auth",
		JWTSecret:            testSecret,
		Algorithm:            "HS256",
		AccessTTL:            15 * time.Minute,
		RefreshTTL:           7 * 24 * time.Hour,
		ChallengeTTL:         5 * time.Minute,
		HousekeepingInterval: 10 * time.Minute,
		RPID:                 "localhost",
		RPDisplayName:        "DynaForm",
		RPOrigins:            []string{"http://localhost:4200"},
	}
}

func TestConfigValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid", func(*Config) {}, ""},
		{"missing secret is allowed", func(c *Config) { c.JWTSecret = "" }, ""},
		{"short secret", func(c *Config) { c.JWTSecret = "short" }, "AUTH_JWT_SECRET"},
		{"short refresh secret", func(c *Config) { c.RefreshSecret = "short" }, "AUTH_JWT_REFRESH_SECRET"},
		{"unknown algorithm", func(c *Config) { c.Algorithm = "RS256" }, "AUTH_JWT_ALG"},
		{"empty issuer", func(c *Config) { c.Issuer = " " }, "AUTH_ISSUER"},
		{"empty dsn", func(c *Config) { c.DatabaseDSN = "" }, "AUTH_DB_DSN"},
		{"zero access ttl", func(c *Config) { c.AccessTTL = 0 }, "AUTH_ACCESS_TTL must be positive"},
		{"access outlives refresh", func(c *Config) { c.AccessTTL = 8 * 24 * time.Hour }, "must not exceed"},
		{"no origins", func(c *Config) { c.RPOrigins = nil }, "AUTH_RP_ORIGINS"},
		{"negative burst", func(c *Config) { c.RateLimits.StrictBurst = -1 }, "RATE_LIMIT_STRICT_BURST"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := validConfig()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			require.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestConfigValidateReportsEveryProblem(t *testing.T) {
	t.Parallel()

	cfg := validConfig()
	cfg.Issuer = ""
	cfg.Algorithm = "none"

	err := cfg.Validate()
	require.Error(t, err)
	require.Contains(t, err.Error(), "AUTH_ISSUER")
	require.Contains(t, err.Error(), "AUTH_JWT_ALG")
}

func TestRateLimitOverrides(t *testing.T) {
	t.Parallel()

	t.Run("no overrides keeps defaults", func(t *testing.T) {
		t.Parallel()
		require.Equal(t, httpx.DefaultRateLimits(), RateLimitOverrides{}.Profiles())
	})

	t.Run("rps replaces the window", func(t *testing.T) {
		t.Parallel()

		p := RateLimitOverrides{StrictRPS: 50}.Profiles()
		require.Equal(t, httpx.RateLimitConfig{Requests: 50, Window: time.Second, Burst: 50}, p.Strict)
		require.Equal(t, httpx.DefaultRateLimits().Moderate, p.Moderate)
	})

	t.Run("burst alone keeps the window", func(t *testing.T) {
		t.Parallel()

		p := RateLimitOverrides{PublicBurst: 5}.Profiles()
		require.Equal(t, httpx.DefaultRateLimits().Public.Window, p.Public.Window)
		require.Equal(t, 5, p.Public.Burst)
	})

	t.Run("rps and burst", func(t *testing.T) {
		t.Parallel()

		p := RateLimitOverrides{LenientRPS: 20, LenientBurst: 40}.Profiles()
		require.Equal(t, httpx.RateLimitConfig{Requests: 20, Window: time.Second, Burst: 40}, p.Lenient)
	})
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("AUTH_JWT_SECRET", testSecret)
	t.Setenv("AUTH_RP_ORIGINS", "https://app.example.com,https://admin.example.com")
	t.Setenv("AUTH_ADMIN_EMAILS", "root@example.com")
	t.Setenv("AUTH_ACCESS_TTL", "5m")
	t.Setenv("RATE_LIMIT_STRICT_RPS", "3")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	require.Equal(t, []string{"https://app.example.com", "https://admin.example.com"}, cfg.RPOrigins)
	require.Equal(t, []string{"root@example.com"}, cfg.AdminEmails)
	require.Equal(t, 5*time.Minute, cfg.AccessTTL)
	require.Equal(t, 7*24*time.Hour, cfg.RefreshTTL)
	require.Equal(t, "HS256", cfg.Algorithm)
	require.Equal(t, "localhost", cfg.RPID)
	require.Equal(t, 3, cfg.RateLimits.StrictRPS)
}

func TestLoadConfigRejectsBadEnv(t *testing.T) {
	t.Setenv("AUTH_JWT_ALG", "HS512")

	_, err := LoadConfig()
	require.Error(t, err)
	require.Contains(t, err.Error(), "AUTH_JWT_ALG")
}

func TestInitSessionKeys(t *testing.T) {
	t.Parallel()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	t.Run("missing secret yields no keys", func(t *testing.T) {
		t.Parallel()

		cfg := validConfig()
		cfg.JWTSecret = ""

		keys, err := InitSessionKeys(cfg, logger)
		require.NoError(t, err)
		require.Nil(t, keys)
	})

	t.Run("hs256", func(t *testing.T) {
		t.Parallel()

		keys, err := InitSessionKeys(validConfig(), logger)
		require.NoError(t, err)
		require.NotNil(t, keys)
		require.NotEqual(t, keys.Access.Signer.KID(), keys.Refresh.Signer.KID())
	})

	t.Run("eddsa", func(t *testing.T) {
		t.Parallel()

		cfg := validConfig()
		cfg.Algorithm = "EdDSA"

		keys, err := InitSessionKeys(cfg, logger)
		require.NoError(t, err)
		require.Equal(t, "EdDSA", keys.Access.Signer.Alg())
	})
}

func TestNewWiresHandler(t *testing.T) {
	t.Parallel()

	cfg := validConfig()
	cfg.LogLevel = "error"

	application, err := New(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = application.db.Close() })

	require.NotNil(t, application.Handler())
	require.True(t, strings.HasPrefix(application.server.Addr, ":"))
	require.NoError(t, application.tokenService.Ready())
}
