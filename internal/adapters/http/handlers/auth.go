package handlers

import (
	"crypto/subtle"
	"encoding/json"
	"net/http"
	"time"

	"github.com/SamPomeroy/workforce-analytics-api/internal/adapters/http/httpctx"
	"github.com/SamPomeroy/workforce-analytics-api/internal/adapters/http/respond"
	"github.com/SamPomeroy/workforce-analytics-api/internal/core/domain"
	"github.com/SamPomeroy/workforce-analytics-api/internal/core/ports"
)

// AuthHandler troca credenciais de cliente configuradas por tokens assinados
// e expõe a identidade resolvida da requisição corrente.
type AuthHandler struct {
	codec    ports.TokenCodec
	clients  map[string]domain.ClientCredential
	tokenTTL time.Duration
}

func NewAuthHandler(codec ports.TokenCodec, clients map[string]domain.ClientCredential, tokenTTL time.Duration) *AuthHandler {
	return &AuthHandler{codec: codec, clients: clients, tokenTTL: tokenTTL}
}

type tokenRequest struct {
	Subject string `json:"subject"`
	Secret  string `json:"secret"`
}

// IssueToken autentica uma credencial configurada e devolve um token com o
// papel associado a ela.
func (h *AuthHandler) IssueToken(w http.ResponseWriter, r *http.Request) {
	var req tokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, r, http.StatusBadRequest, "validation_error", "request body must be valid JSON")
		return
	}
	if req.Subject == "" || req.Secret == "" {
		respond.Error(w, r, http.StatusBadRequest, "validation_error", "subject and secret are required")
		return
	}

	credential, ok := h.clients[req.Subject]
	if !ok || subtle.ConstantTimeCompare([]byte(credential.Secret), []byte(req.Secret)) != 1 {
		w.Header().Set("WWW-Authenticate", "Bearer")
		respond.Error(w, r, http.StatusUnauthorized, "authentication_error", "invalid credentials")
		return
	}

	now := time.Now()
	token, err := h.codec.Encode(domain.Identity{Subject: credential.Subject, Role: credential.Role})
	if err != nil {
		respond.Error(w, r, http.StatusInternalServerError, "internal_server_error", "failed to issue token")
		return
	}

	respond.JSON(w, http.StatusOK, map[string]any{
		"token":      token,
		"expires_at": now.Add(h.tokenTTL).UTC().Format(time.RFC3339),
		"role":       credential.Role,
	})
}

// Me devolve a identidade que o gate resolveu para a requisição.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	identity := httpctx.Identity(r.Context())

	respond.JSON(w, http.StatusOK, map[string]any{
		"subject":    identity.Subject,
		"role":       identity.Role,
		"expires_at": identity.ExpiresAt.UTC().Format(time.RFC3339),
	})
}
