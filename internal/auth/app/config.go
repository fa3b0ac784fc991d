package app

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aussiebroadwan/dynaform/pkg/httpx"
	"github.com/aussiebroadwan/dynaform/pkg/jwtx"
	"github.com/caarlos0/env/v11"
)

type Config struct {
	Env       string `env:"AUTH_ENV"        envDefault:"dev"`  // dev, staging, prod
	LogLevel  string `env:"AUTH_LOG_LEVEL"  envDefault:"info"` // debug, info, warn, error
	LogFormat string `env:"AUTH_LOG_FORMAT" envDefault:"json"` // json, text

	HTTPAddr            string        `env:"AUTH_HTTP_ADDR"           envDefault:":8080"`
	ReadHeaderTimeout   time.Duration `env:"AUTH_READ_HEADER_TIMEOUT" envDefault:"3s"`
	ShutdownGracePeriod time.Duration `env:"AUTH_SHUTDOWN_GRACE"      envDefault:"10s"`

	DatabaseDSN string `env:"AUTH_DB_DSN"    envDefault:"file:auth.db?_pragma=journal_mode(WAL)"`
	RedisURL    string `env:"AUTH_REDIS_URL"` // Optional: share challenges and revocations between replicas

	Issuer        string `env:"AUTH_ISSUER"             envDefault:"dynaform-auth"`
	JWTSecret     string `env:"AUTH_JWT_SECRET"`         // Required to issue sessions
	RefreshSecret string `env:"AUTH_JWT_REFRESH_SECRET"` // Optional: defaults to a key derived from JWTSecret
	Algorithm     string `env:"AUTH_JWT_ALG"            envDefault:"HS256"`

	AccessTTL            time.Duration `env:"AUTH_ACCESS_TTL"            envDefault:"15m"`
	RefreshTTL           time.Duration `env:"AUTH_REFRESH_TTL"           envDefault:"168h"`
	ChallengeTTL         time.Duration `env:"AUTH_CHALLENGE_TTL"         envDefault:"5m"`
	HousekeepingInterval time.Duration `env:"AUTH_HOUSEKEEPING_INTERVAL" envDefault:"10m"`

	RPID          string   `env:"AUTH_RP_ID"      envDefault:"localhost"`
	RPDisplayName string   `env:"AUTH_RP_NAME"    envDefault:"DynaForm"`
	RPOrigins     []string `env:"AUTH_RP_ORIGINS" envDefault:"http://localhost:4200" envSeparator:","`

	AdminEmails []string `env:"AUTH_ADMIN_EMAILS" envSeparator:","`

	RateLimits RateLimitOverrides
}

// RateLimitOverrides replace the stock profile for a class when its RPS is set.
type RateLimitOverrides struct {
	StrictRPS     int `env:"RATE_LIMIT_STRICT_RPS"`
	StrictBurst   int `env:"RATE_LIMIT_STRICT_BURST"`
	ModerateRPS   int `env:"RATE_LIMIT_MODERATE_RPS"`
	ModerateBurst int `env:"RATE_LIMIT_MODERATE_BURST"`
	LenientRPS    int `env:"RATE_LIMIT_LENIENT_RPS"`
	LenientBurst  int `env:"RATE_LIMIT_LENIENT_BURST"`
	PublicRPS     int `env:"RATE_LIMIT_PUBLIC_RPS"`
	PublicBurst   int `env:"RATE_LIMIT_PUBLIC_BURST"`
}

// LoadConfig parses the environment and validates the result.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects settings the service cannot run with. A missing JWT
// secret is not an error here: the service starts and refuses to issue
// sessions.
func (c Config) Validate() error {
	var errs []error

	if strings.TrimSpace(c.HTTPAddr) == "" {
		errs = append(errs, errors.New("AUTH_HTTP_ADDR must not be empty"))
	}
	if strings.TrimSpace(c.DatabaseDSN) == "" {
		errs = append(errs, errors.New("AUTH_DB_DSN must not be empty"))
	}
	if strings.TrimSpace(c.Issuer) == "" {
		errs = append(errs, errors.New("AUTH_ISSUER must not be empty"))
	}

	switch c.Algorithm {
	case jwtx.AlgHS256, jwtx.AlgEdDSA:
	default:
		errs = append(errs, fmt.Errorf("AUTH_JWT_ALG %q is not supported (use %s or %s)", c.Algorithm, jwtx.AlgHS256, jwtx.AlgEdDSA))
	}

	if c.JWTSecret != "" && len(c.JWTSecret) < jwtx.MinSecretLength {
		errs = append(errs, fmt.Errorf("AUTH_JWT_SECRET must be at least %d bytes", jwtx.MinSecretLength))
	}
	if c.RefreshSecret != "" && len(c.RefreshSecret) < jwtx.MinSecretLength {
		errs = append(errs, fmt.Errorf("AUTH_JWT_REFRESH_SECRET must be at least %d bytes", jwtx.MinSecretLength))
	}

	for name, d := range map[string]time.Duration{
		"AUTH_ACCESS_TTL":            c.AccessTTL,
		"AUTH_REFRESH_TTL":           c.RefreshTTL,
		"AUTH_CHALLENGE_TTL":         c.ChallengeTTL,
		"AUTH_HOUSEKEEPING_INTERVAL": c.HousekeepingInterval,
		"AUTH_SHUTDOWN_GRACE":        c.ShutdownGracePeriod,
	} {
		if d <= 0 {
			errs = append(errs, fmt.Errorf("%s must be positive", name))
		}
	}
	if c.RefreshTTL > 0 && c.AccessTTL > c.RefreshTTL {
		errs = append(errs, errors.New("AUTH_ACCESS_TTL must not exceed AUTH_REFRESH_TTL"))
	}

	if len(c.RPOrigins) == 0 {
		errs = append(errs, errors.New("AUTH_RP_ORIGINS must list at least one origin"))
	}

	r := c.RateLimits
	for name, v := range map[string]int{
		"RATE_LIMIT_STRICT_RPS": r.StrictRPS, "RATE_LIMIT_STRICT_BURST": r.StrictBurst,
		"RATE_LIMIT_MODERATE_RPS": r.ModerateRPS, "RATE_LIMIT_MODERATE_BURST": r.ModerateBurst,
		"RATE_LIMIT_LENIENT_RPS": r.LenientRPS, "RATE_LIMIT_LENIENT_BURST": r.LenientBurst,
		"RATE_LIMIT_PUBLIC_RPS": r.PublicRPS, "RATE_LIMIT_PUBLIC_BURST": r.PublicBurst,
	} {
		if v < 0 {
			errs = append(errs, fmt.Errorf("%s must not be negative", name))
		}
	}

	return errors.Join(errs...)
}

// Profiles applies the overrides on top of httpx.DefaultRateLimits.
func (r RateLimitOverrides) Profiles() httpx.RateLimitProfiles {
	p := httpx.DefaultRateLimits()
	p.Strict = override(p.Strict, r.StrictRPS, r.StrictBurst)
	p.Moderate = override(p.Moderate, r.ModerateRPS, r.ModerateBurst)
	p.Lenient = override(p.Lenient, r.LenientRPS, r.LenientBurst)
	p.Public = override(p.Public, r.PublicRPS, r.PublicBurst)
	return p
}

func override(base httpx.RateLimitConfig, rps, burst int) httpx.RateLimitConfig {
	if rps > 0 {
		base = httpx.RateLimitConfig{Requests: rps, Window: time.Second, Burst: rps}
	}
	if burst > 0 {
		base.Burst = burst
	}
	return base
}
