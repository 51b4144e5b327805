// Package middleware disponibiliza middlewares HTTP específicos da aplicação.
package middleware

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/SamPomeroy/workforce-analytics-api/internal/adapters/http/httpctx"
)

const RequestIDHeader = "X-Request-ID"

// RequestID garante que toda resposta carregue um identificador de
// requisição, reaproveitando o que vier de um balanceador upstream.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimSpace(r.Header.Get(RequestIDHeader))
		if id == "" {
			id = uuid.NewString()
		}

		w.Header().Set(RequestIDHeader, id)
		next.ServeHTTP(w, r.WithContext(httpctx.WithRequestID(r.Context(), id)))
	})
}
