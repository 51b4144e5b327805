// Package redis disponibiliza a implementação do counter store baseada em Redis.
package redis

import (
	"context"
	"fmt"
	"time"

	redis "github.com/redis/go-redis/v9"

	"github.com/SamPomeroy/workforce-analytics-api/internal/core/ports"
)

// incrScript executa INCR, EXPIRE condicional e leitura da TTL como uma
// unidade atômica. Sem o script, duas primeiras-requisições concorrentes
// podem ambas abrir janela nova, ou um EXPIRE repetido pode esticar a janela
// a cada requisição.
var incrScript = redis.NewScript(`
local count = redis.call("INCR", KEYS[1])
if count == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
local ttl = redis.call("PTTL", KEYS[1])
return {count, ttl}
`)

type Storage struct {
	client *redis.Client
}

var _ ports.CounterStore = (*Storage)(nil)

type Config struct {
	Addr     string
	Password string
	DB       int
}

func New(cfg Config) (*Storage, error) {
	if cfg.Addr == "" {
		return nil, fmt.Errorf("redis address is required")
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	return &Storage{client: client}, nil
}

// NewWithClient monta o storage sobre um cliente já construído; usado em testes.
func NewWithClient(client *redis.Client) *Storage {
	return &Storage{client: client}
}

func (s *Storage) Close() error {
	return s.client.Close()
}

func (s *Storage) Incr(ctx context.Context, key string, window time.Duration) (int64, time.Duration, error) {
	values, err := incrScript.Run(ctx, s.client, []string{key}, window.Milliseconds()).Int64Slice()
	if err != nil {
		return 0, 0, fmt.Errorf("redis incr script failed for key %s: %w", key, err)
	}
	if len(values) != 2 {
		return 0, 0, fmt.Errorf("redis incr script returned %d values for key %s", len(values), key)
	}

	count := values[0]
	ttl := time.Duration(0)
	if values[1] > 0 {
		ttl = time.Duration(values[1]) * time.Millisecond
	}
	return count, ttl, nil
}

func (s *Storage) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}
