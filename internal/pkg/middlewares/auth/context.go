package auth

import (
	"context"

	"courier-tracking/internal/entities"
)

type principalKey struct{}

// Principal админ, прошедший проверку токена, и сам токен.
type Principal struct {
	Admin entities.Admin
	Token string
}

func WithPrincipal(ctx context.Context, principal Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, principal)
}

func PrincipalFromContext(ctx context.Context) (Principal, bool) {
	principal, ok := ctx.Value(principalKey{}).(Principal)
	return principal, ok
}
