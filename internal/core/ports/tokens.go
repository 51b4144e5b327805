// Package ports define contratos que conectam o domínio a implementações externas.
package ports

import (
	"github.com/SamPomeroy/workforce-analytics-api/internal/core/domain"
)

type TokenCodec interface {
	Encode(identity domain.Identity) (string, error)
	Decode(token string) (domain.Identity, error)
}

type Gate interface {
	Authorize(token string, required []domain.Role) (domain.Identity, error)
}
