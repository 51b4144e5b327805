package domain

import (
	"fmt"
	"strings"
	"time"
)

// RateLimitRule define o orçamento de requisições de uma classe de rota.
type RateLimitRule struct {
	Requests int
	Window   time.Duration
}

// ClientKey identifica a entidade limitada: IP do chamador (ou subject
// autenticado, quando disponível) somado à classe da rota.
type ClientKey struct {
	Class      string
	Identifier string
}

func NewClientKey(class, identifier string) ClientKey {
	return ClientKey{
		Class:      strings.ToLower(strings.TrimSpace(class)),
		Identifier: strings.ToLower(strings.TrimSpace(identifier)),
	}
}

func (k ClientKey) String() string {
	return fmt.Sprintf("ratelimit:%s:%s", k.Class, k.Identifier)
}

// RateDecision é o resultado de uma avaliação do limiter, anexado à resposta
// tanto em permissões quanto em negações.
type RateDecision struct {
	Allowed      bool
	Limit        int
	Remaining    int
	ResetSeconds int
}
