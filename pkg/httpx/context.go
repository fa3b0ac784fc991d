package httpx

import "context"

type ctxKey string

const (
	ctxKeyPrincipal ctxKey = "principal"
	ctxKeyToken     ctxKey = "bearer_token"
)

// Principal is the authenticated caller attached to a request.
type Principal struct {
	UserID   string
	Username string
	Email    string
	Role     string
}

// WithPrincipal attaches the caller and the bearer token that proved it.
func WithPrincipal(ctx context.Context, p Principal, token string) context.Context {
	ctx = context.WithValue(ctx, ctxKeyPrincipal, p)
	return context.WithValue(ctx, ctxKeyToken, token)
}

// PrincipalFromContext returns the authenticated caller, if any.
func PrincipalFromContext(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(ctxKeyPrincipal).(Principal)
	return p, ok
}

// TokenFromContext returns the bearer token that authenticated the request.
func TokenFromContext(ctx context.Context) string {
	s, _ := ctx.Value(ctxKeyToken).(string)
	return s
}
