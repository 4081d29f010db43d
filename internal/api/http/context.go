package http

import (
	"context"

	"groupmanagement/internal/domain"
)

type identityKey struct{}

func withIdentity(ctx context.Context, id *domain.Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

// IdentityFromContext returns the caller resolved by AuthMiddleware, or the
// anonymous identity when none was stored.
func IdentityFromContext(ctx context.Context) *domain.Identity {
	if id, ok := ctx.Value(identityKey{}).(*domain.Identity); ok && id != nil {
		return id
	}
	return domain.AnonymousIdentity()
}
