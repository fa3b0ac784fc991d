package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/aussiebroadwan/dynaform/internal/auth/domain"
	"github.com/aussiebroadwan/dynaform/internal/auth/service"
	"github.com/aussiebroadwan/dynaform/internal/auth/store"
	"github.com/aussiebroadwan/dynaform/pkg/httpx"
	"github.com/aussiebroadwan/dynaform/pkg/slogx"

	_ "github.com/aussiebroadwan/dynaform/api/auth" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	buildVersion string
	startTime    time.Time
	logger       *slog.Logger
	limits       httpx.RateLimitProfiles

	store                 store.Store
	UserService           *service.UserService
	RegistrationService   *service.RegistrationService
	AuthenticationService *service.AuthenticationService
	TokenService          *service.TokenService
	Sessions              *service.SessionAuthenticator
}

func NewRouter(
	buildVersion string,
	st store.Store,
	limits httpx.RateLimitProfiles,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		limits:       limits,
		logger:       logger,
	}

	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerAccount()
	r.registerCeremonies()
	r.registerSession()
	r.registerPasskeys()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpx.Chain(httpSwagger.Handler(),
		httpx.RateLimitByIP(r.limits.Public),
	))
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			DynaForm Authentication Service API
//	@version		0.1.0
//	@description	Passkey (WebAuthn) authentication for DynaForm. Successful logins receive a short-lived JWT access token and a single-use refresh token.
//	@description
//	@description				Every failure uses the envelope {"success": false, "error": "<Kind>", "message": "..."}.
//
//	@contact.name				AussieBroadWAN Team
//	@contact.url				https://github.com/aussiebroadwan/dynaform
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:8080
//	@BasePath					/
//
//	@schemes					http https
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				JWT access token. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

// authed chains the session check in front of h, then limits by user.
func (r *Router) authed(h http.HandlerFunc, limit httpx.RateLimitConfig, extra ...httpx.Middleware) http.Handler {
	mws := append([]httpx.Middleware{RequireAuth(r.Sessions)}, extra...)
	mws = append(mws, httpx.RateLimitByUser(limit))
	return httpx.Chain(h, mws...)
}

func (r *Router) registerAccount() {
	h := &AccountHandler{UserService: r.UserService}

	// Sign-up creates rows, keep it tight.
	r.Mux.Handle("POST /auth/register",
		httpx.Chain(http.HandlerFunc(h.HandleRegister),
			httpx.RateLimitByIP(r.limits.Strict),
		),
	)

	r.Mux.Handle("GET /auth/me", r.authed(h.HandleMe, r.limits.Lenient))

	r.Mux.Handle("POST /auth/users/{id}/deactivate",
		r.authed(h.HandleDeactivate, r.limits.Moderate, RequireRole(domain.RoleAdmin)),
	)
}

func (r *Router) registerCeremonies() {
	h := &CeremonyHandler{
		Registration:   r.RegistrationService,
		Authentication: r.AuthenticationService,
	}

	// Begin endpoints only mint challenges; finish endpoints verify signatures.
	r.Mux.Handle("POST /auth/passkey/register/begin",
		httpx.Chain(http.HandlerFunc(h.HandleRegisterBegin), httpx.RateLimitByIP(r.limits.Moderate)),
	)
	r.Mux.Handle("POST /auth/passkey/register/finish",
		httpx.Chain(http.HandlerFunc(h.HandleRegisterFinish), httpx.RateLimitByIP(r.limits.Strict)),
	)
	r.Mux.Handle("POST /auth/passkey/authenticate/begin",
		httpx.Chain(http.HandlerFunc(h.HandleAuthenticateBegin), httpx.RateLimitByIP(r.limits.Moderate)),
	)
	r.Mux.Handle("POST /auth/passkey/authenticate/finish",
		httpx.Chain(http.HandlerFunc(h.HandleAuthenticateFinish), httpx.RateLimitByIP(r.limits.Strict)),
	)
}

func (r *Router) registerSession() {
	h := &SessionHandler{
		TokenService: r.TokenService,
		UserService:  r.UserService,
	}

	r.Mux.Handle("POST /auth/refresh",
		httpx.Chain(http.HandlerFunc(h.HandleRefresh), httpx.RateLimitByIP(r.limits.Strict)),
	)
	r.Mux.Handle("POST /auth/logout", r.authed(h.HandleLogout, r.limits.Moderate))

	// The probe is anonymous-friendly, so it can only be limited by IP.
	r.Mux.Handle("GET /auth/session",
		httpx.Chain(http.HandlerFunc(h.HandleProbe),
			OptionalAuth(r.Sessions),
			httpx.RateLimitByIP(r.limits.Lenient),
		),
	)
}

func (r *Router) registerPasskeys() {
	h := &PasskeysHandler{UserService: r.UserService}

	r.Mux.Handle("GET /auth/passkeys", r.authed(h.HandleList, r.limits.Lenient))
	r.Mux.Handle("DELETE /auth/passkeys/{credentialId}", r.authed(h.HandleDelete, r.limits.Moderate))
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(r.limits.Lenient),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store, r.TokenService),
			httpx.RateLimitByIP(r.limits.Lenient),
		),
	)
	r.Mux.Handle("GET /.well-known/jwks.json",
		httpx.Chain(JWKSHandler(r.TokenService),
			httpx.RateLimitByIP(r.limits.Public),
		),
	)
}
