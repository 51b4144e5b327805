package middleware

import (
	"net/http"
	"strings"

	"github.com/SamPomeroy/workforce-analytics-api/internal/adapters/http/httpctx"
	"github.com/SamPomeroy/workforce-analytics-api/internal/adapters/http/respond"
	"github.com/SamPomeroy/workforce-analytics-api/internal/core/domain"
	"github.com/SamPomeroy/workforce-analytics-api/internal/core/ports"
)

// RequireRoles roda o gate de autorização para a rota. Sem papéis exigidos a
// rota é anônima e o token, presente ou não, é ignorado. Erros de token e de
// papel terminam a requisição aqui; a identidade resolvida segue no context
// para o handler.
func RequireRoles(gate ports.Gate, roles ...domain.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, err := gate.Authorize(bearerToken(r), roles)
			if err != nil {
				respond.AuthError(w, r, err)
				return
			}

			next.ServeHTTP(w, r.WithContext(httpctx.WithIdentity(r.Context(), identity)))
		})
	}
}

func bearerToken(r *http.Request) string {
	header := strings.TrimSpace(r.Header.Get("Authorization"))
	if token, ok := strings.CutPrefix(header, "Bearer "); ok {
		return strings.TrimSpace(token)
	}
	return ""
}
