// Package jwtcodec disponibiliza a implementação do TokenCodec baseada em JWT.
package jwtcodec

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/SamPomeroy/workforce-analytics-api/internal/core/domain"
	"github.com/SamPomeroy/workforce-analytics-api/internal/core/ports"
)

type claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// Codec assina e verifica tokens HS256 carregando subject, papel e expiração.
type Codec struct {
	secret []byte
	expiry time.Duration
	now    func() time.Time
}

var _ ports.TokenCodec = (*Codec)(nil)

type Config struct {
	Secret string
	Expiry time.Duration

	// Now substitui o relógio em testes; nil usa time.Now.
	Now func() time.Time
}

func New(cfg Config) (*Codec, error) {
	if cfg.Secret == "" {
		return nil, fmt.Errorf("signing secret is required")
	}
	if cfg.Expiry <= 0 {
		return nil, fmt.Errorf("token expiry must be positive")
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}

	return &Codec{secret: []byte(cfg.Secret), expiry: cfg.Expiry, now: now}, nil
}

func (c *Codec) Encode(identity domain.Identity) (string, error) {
	if identity.Subject == "" {
		return "", fmt.Errorf("identity subject is required")
	}
	if _, err := domain.ParseRole(string(identity.Role)); err != nil {
		return "", fmt.Errorf("cannot encode identity: %w", err)
	}

	now := c.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		Role: string(identity.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   identity.Subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.expiry)),
		},
	})

	signed, err := token.SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

func (c *Codec) Decode(token string) (domain.Identity, error) {
	parsed, err := jwt.ParseWithClaims(token, &claims{}, func(t *jwt.Token) (interface{}, error) {
		return c.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(c.now))
	if err != nil {
		// Um token bem assinado porém vencido nunca deve se apresentar como
		// inválido; o chamador distingue 401 de "renove seu token".
		if errors.Is(err, jwt.ErrTokenExpired) {
			return domain.Identity{}, fmt.Errorf("%w: %v", domain.ErrTokenExpired, err)
		}
		return domain.Identity{}, fmt.Errorf("%w: %v", domain.ErrTokenInvalid, err)
	}

	cl, ok := parsed.Claims.(*claims)
	if !ok || cl.Subject == "" {
		return domain.Identity{}, fmt.Errorf("%w: missing subject claim", domain.ErrTokenInvalid)
	}

	role, err := domain.ParseRole(cl.Role)
	if err != nil {
		return domain.Identity{}, fmt.Errorf("%w: %v", domain.ErrTokenInvalid, err)
	}

	identity := domain.Identity{Subject: cl.Subject, Role: role}
	if cl.ExpiresAt != nil {
		identity.ExpiresAt = cl.ExpiresAt.Time
	}
	return identity, nil
}
