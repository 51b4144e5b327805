// Package httpctx carrega valores por requisição através do context.
package httpctx

import (
	"context"

	"github.com/SamPomeroy/workforce-analytics-api/internal/core/domain"
)

type requestIDKey struct{}

type identityKey struct{}

func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

func WithIdentity(ctx context.Context, identity domain.Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, identity)
}

// Identity devolve a identidade resolvida pelo gate; anônima quando a rota
// não exigiu autenticação.
func Identity(ctx context.Context) domain.Identity {
	if identity, ok := ctx.Value(identityKey{}).(domain.Identity); ok {
		return identity
	}
	return domain.AnonymousIdentity()
}
