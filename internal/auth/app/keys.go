package app

import (
	"fmt"
	"log/slog"

	"github.com/aussiebroadwan/dynaform/internal/auth/service"
)

// InitSessionKeys derives the session signing keys from the configured
// secrets. With no secret it returns nil keys: the token service then fails
// closed with ServerMisconfigured instead of signing with a default key.
func InitSessionKeys(cfg Config, logger *slog.Logger) (*service.SessionKeys, error) {
	if cfg.JWTSecret == "" {
		logger.Error("AUTH_JWT_SECRET is not set; sessions cannot be issued or verified")
		return nil, nil
	}

	keys, err := service.NewSessionKeys(
		cfg.Algorithm,
		[]byte(cfg.JWTSecret),
		[]byte(cfg.RefreshSecret),
		cfg.Issuer,
		nil,
	)
	if err != nil {
		return nil, fmt.Errorf("derive session keys: %w", err)
	}

	logger.Info("session keys ready",
		"alg", cfg.Algorithm,
		"access_kid", keys.Access.Signer.KID(),
		"refresh_kid", keys.Refresh.Signer.KID(),
		"separate_refresh_secret", cfg.RefreshSecret != "",
	)
	return keys, nil
}
