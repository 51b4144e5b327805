// Package respond padroniza as respostas JSON da API.
package respond

import (
	"encoding/json"
	"net/http"

	"github.com/SamPomeroy/workforce-analytics-api/internal/adapters/http/httpctx"
	"github.com/SamPomeroy/workforce-analytics-api/internal/core/domain"
)

func JSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// Error escreve o envelope {error, message, request_id}.
func Error(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	JSON(w, status, map[string]any{
		"error":      code,
		"message":    message,
		"request_id": httpctx.RequestID(r.Context()),
	})
}

// AuthError traduz os erros do gate para os status HTTP terminais: 401 para
// token inválido ou vencido, 403 para papel insuficiente.
func AuthError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case domain.IsForbiddenError(err):
		Error(w, r, http.StatusForbidden, "permission_denied", err.Error())
	case domain.IsAuthenticationError(err):
		w.Header().Set("WWW-Authenticate", "Bearer")
		Error(w, r, http.StatusUnauthorized, "authentication_error", err.Error())
	default:
		Error(w, r, http.StatusInternalServerError, "internal_server_error", "an unexpected error occurred")
	}
}

// RateLimited escreve a resposta 429 com a dica de reset.
func RateLimited(w http.ResponseWriter, r *http.Request, resetSeconds int) {
	JSON(w, http.StatusTooManyRequests, map[string]any{
		"error":        "rate_limit_exceeded",
		"message":      "you have reached the maximum number of requests allowed within this window",
		"resetSeconds": resetSeconds,
		"request_id":   httpctx.RequestID(r.Context()),
	})
}
