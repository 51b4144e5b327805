// Package ports define contratos que conectam o domínio a implementações externas.
package ports

import (
	"context"
	"time"
)

type CounterStore interface {
	// Incr incrementa atomicamente o contador da janela corrente; quando o
	// incremento cria o registro, a TTL da janela é definida na mesma
	// operação indivisível. Devolve a contagem pós-incremento e a TTL
	// restante (zero quando o store não souber informar).
	Incr(ctx context.Context, key string, window time.Duration) (count int64, ttl time.Duration, err error)

	Ping(ctx context.Context) error
}
