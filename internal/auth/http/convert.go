package http

import (
	"github.com/aussiebroadwan/dynaform/internal/auth/domain"
	"github.com/aussiebroadwan/dynaform/pkg/authsdk"
	"github.com/aussiebroadwan/dynaform/pkg/httpx"
)

func toUser(u domain.User) authsdk.User {
	return authsdk.User{
		ID:            u.ID,
		Username:      u.Username,
		Email:         u.Email,
		FullName:      u.DisplayName,
		Role:          string(u.Role),
		EmailVerified: u.EmailVerified,
		LastLoginAt:   u.LastLoginAt,
		CreatedAt:     u.CreatedAt,
	}
}

func toPasskey(p domain.PasskeyCredential) authsdk.Passkey {
	return authsdk.Passkey{
		CredentialID: p.CredentialID,
		FriendlyName: p.FriendlyName,
		DeviceType:   p.DeviceType,
		CreatedAt:    p.CreatedAt,
		LastUsedAt:   p.LastUsedAt,
	}
}

func toSession(u domain.User, pair domain.TokenPair) authsdk.SessionResponse {
	return authsdk.SessionResponse{
		Success:      true,
		User:         toUser(u),
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	}
}

func identityOf(p httpx.Principal) domain.Identity {
	return domain.Identity{
		UserID:   p.UserID,
		Username: p.Username,
		Email:    p.Email,
		Role:     domain.Role(p.Role),
	}
}
