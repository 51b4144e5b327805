// Package ports define contratos que conectam o domínio a implementações externas.
package ports

import (
	"context"

	"github.com/SamPomeroy/workforce-analytics-api/internal/core/domain"
)

type RateLimiter interface {
	// Check nunca bloqueia além da latência do store e nunca falha: quando o
	// store está indisponível a política é fail-open e a decisão devolvida
	// permite a requisição.
	Check(ctx context.Context, key domain.ClientKey, rule domain.RateLimitRule) domain.RateDecision
}
