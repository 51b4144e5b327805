package services

import (
	"fmt"
	"strings"

	"github.com/SamPomeroy/workforce-analytics-api/internal/core/domain"
	"github.com/SamPomeroy/workforce-analytics-api/internal/core/ports"
)

// AuthService resolve a identidade do chamador a partir de um token assinado
// e aplica o controle de acesso por papel da rota.
type AuthService struct {
	codec ports.TokenCodec
}

var _ ports.Gate = (*AuthService)(nil)

// NewAuthService cria uma nova instância do serviço.
func NewAuthService(codec ports.TokenCodec) (*AuthService, error) {
	if codec == nil {
		return nil, fmt.Errorf("token codec is required")
	}
	return &AuthService{codec: codec}, nil
}

// Authorize decodifica o token e verifica se o papel resultante pertence a
// required. Rotas sem papel exigido curto-circuitam com identidade anônima
// sem sequer tentar a decodificação.
func (s *AuthService) Authorize(token string, required []domain.Role) (domain.Identity, error) {
	if len(required) == 0 {
		return domain.AnonymousIdentity(), nil
	}

	token = strings.TrimSpace(token)
	if token == "" {
		return domain.Identity{}, fmt.Errorf("missing bearer token: %w", domain.ErrTokenInvalid)
	}

	identity, err := s.codec.Decode(token)
	if err != nil {
		return domain.Identity{}, err
	}

	for _, role := range required {
		if identity.Role == role {
			return identity, nil
		}
	}

	return domain.Identity{}, fmt.Errorf("role %q is not allowed here: %w", identity.Role, domain.ErrForbidden)
}
