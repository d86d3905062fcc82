package auth

import "context"

// ContextWithPrincipal attaches a principal to the context.
// Handler tests use this to simulate an authenticated request without a token.
func ContextWithPrincipal(ctx context.Context, principal *Principal) context.Context {
	return context.WithValue(ctx, principalKey, principal)
}
