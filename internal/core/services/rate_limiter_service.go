package services

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/SamPomeroy/workforce-analytics-api/internal/core/domain"
	"github.com/SamPomeroy/workforce-analytics-api/internal/core/ports"
)

// RateLimiterService implementa a lógica central de rate limiting sobre um
// CounterStore compartilhado. A janela é fixa com expiração preguiçosa: o
// primeiro incremento define a TTL e o contador morre sozinho no store. A
// aproximação admite até ~2x o limite na virada de janela; quem precisar de
// precisão estrita deve usar um log de timestamps, a um custo maior por chave.
type RateLimiterService struct {
	store   ports.CounterStore
	logger  zerolog.Logger
	timeout time.Duration
}

var _ ports.RateLimiter = (*RateLimiterService)(nil)

// NewRateLimiterService cria uma nova instância do serviço.
func NewRateLimiterService(store ports.CounterStore, logger zerolog.Logger, storeTimeout time.Duration) (*RateLimiterService, error) {
	if store == nil {
		return nil, fmt.Errorf("counter store is required")
	}
	if storeTimeout <= 0 {
		storeTimeout = 500 * time.Millisecond
	}

	return &RateLimiterService{store: store, logger: logger, timeout: storeTimeout}, nil
}

// Check avalia a requisição contra a regra da classe da rota. Toda
// coordenação entre requisições concorrentes é delegada à atomicidade do
// store; o serviço não guarda estado mutável de quota em processo.
func (s *RateLimiterService) Check(ctx context.Context, key domain.ClientKey, rule domain.RateLimitRule) domain.RateDecision {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	count, ttl, err := s.store.Incr(ctx, key.String(), rule.Window)
	if err != nil {
		// Fail-open: a disponibilidade da API vale mais que a precisão da
		// quota quando o store auxiliar está fora. O erro fica nos logs e
		// nunca chega ao chamador.
		s.logger.Warn().
			Err(fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)).
			Str("client_key", key.String()).
			Msg("rate limit check degraded, failing open")

		remaining := rule.Requests - 1
		if remaining < 0 {
			remaining = 0
		}
		return domain.RateDecision{
			Allowed:      true,
			Limit:        rule.Requests,
			Remaining:    remaining,
			ResetSeconds: secondsCeil(rule.Window),
		}
	}

	remaining := rule.Requests - int(count)
	if remaining < 0 {
		remaining = 0
	}

	reset := secondsCeil(ttl)
	if ttl <= 0 {
		reset = secondsCeil(rule.Window)
	}

	return domain.RateDecision{
		Allowed:      count <= int64(rule.Requests),
		Limit:        rule.Requests,
		Remaining:    remaining,
		ResetSeconds: reset,
	}
}

func secondsCeil(d time.Duration) int {
	if d <= 0 {
		return 0
	}
	return int((d + time.Second - 1) / time.Second)
}
