package http

import (
	"net/http"

	"github.com/aussiebroadwan/dynaform/internal/auth/service"
	"github.com/aussiebroadwan/dynaform/pkg/authsdk"
	"github.com/aussiebroadwan/dynaform/pkg/httpx"
)

// JWKSHandler exposes the public session keys.
//
//	@Summary		Get JWKS
//	@Description	Returns the JSON Web Key Set for verifying session tokens. Empty when tokens are HMAC signed.
//	@Tags			well-known
//	@Produce		json
//	@Success		200	{object}	authsdk.JWKSResponse	"The JSON Web Key Set"
//	@Router			/.well-known/jwks.json [get].
func JWKSHandler(tokens *service.TokenService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		httpx.WriteJSON(w, http.StatusOK, authsdk.JWKSResponse(tokens.JWKS()))
	}
}
