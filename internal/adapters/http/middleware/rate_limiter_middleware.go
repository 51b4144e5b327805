package middleware

import (
	"net"
	"net/http"
	"strconv"
	"strings"

	"github.com/SamPomeroy/workforce-analytics-api/internal/adapters/http/httpctx"
	"github.com/SamPomeroy/workforce-analytics-api/internal/adapters/http/respond"
	"github.com/SamPomeroy/workforce-analytics-api/internal/core/domain"
	"github.com/SamPomeroy/workforce-analytics-api/internal/core/ports"
)

const (
	rateLimitLimitHeader     = "X-RateLimit-Limit"
	rateLimitRemainingHeader = "X-RateLimit-Remaining"
	rateLimitResetHeader     = "X-RateLimit-Reset"
)

// RateLimit aplica a regra da classe informada antes de qualquer lógica de
// negócio. Os cabeçalhos X-RateLimit-* acompanham toda resposta, permitida
// ou negada; requisições negadas terminam aqui com 429.
func RateLimit(limiter ports.RateLimiter, class string, rule domain.RateLimitRule) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if limiter == nil {
				next.ServeHTTP(w, r)
				return
			}

			key := domain.NewClientKey(class, clientIdentifier(r))
			decision := limiter.Check(r.Context(), key, rule)

			w.Header().Set(rateLimitLimitHeader, strconv.Itoa(decision.Limit))
			w.Header().Set(rateLimitRemainingHeader, strconv.Itoa(decision.Remaining))
			w.Header().Set(rateLimitResetHeader, strconv.Itoa(decision.ResetSeconds))

			if !decision.Allowed {
				w.Header().Set("Retry-After", strconv.Itoa(decision.ResetSeconds))
				respond.RateLimited(w, r, decision.ResetSeconds)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// clientIdentifier prefere o subject autenticado quando o gate já tiver
// rodado; no arranjo padrão o limiter vem antes e o IP é usado.
func clientIdentifier(r *http.Request) string {
	if identity := httpctx.Identity(r.Context()); !identity.IsAnonymous() {
		return identity.Subject
	}
	return extractIP(r)
}

func extractIP(r *http.Request) string {
	xForwardedFor := strings.TrimSpace(r.Header.Get("X-Forwarded-For"))
	if xForwardedFor != "" {
		parts := strings.Split(xForwardedFor, ",")
		if len(parts) > 0 {
			return strings.TrimSpace(parts[0])
		}
	}

	xRealIP := strings.TrimSpace(r.Header.Get("X-Real-IP"))
	if xRealIP != "" {
		return xRealIP
	}

	host, _, err := net.SplitHostPort(strings.TrimSpace(r.RemoteAddr))
	if err != nil {
		return strings.TrimSpace(r.RemoteAddr)
	}

	return host
}
