package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/SamPomeroy/workforce-analytics-api/internal/adapters/http/httpctx"
	"github.com/SamPomeroy/workforce-analytics-api/internal/adapters/http/respond"
	"github.com/SamPomeroy/workforce-analytics-api/internal/core/domain"
)

// OwnerHeader informa o subject dono do recurso alvo. A camada de persistência
// fica fora deste núcleo, então o dono chega por cabeçalho em vez de uma
// consulta; o gate só se compromete com a comparação em si.
const OwnerHeader = "X-Resource-Owner"

// JobsHandler responde a superfície de vagas protegida pelo pipeline. Os
// corpos são placeholders: o interesse aqui é o caminho limiter → gate →
// handler, não a semântica de vaga.
type JobsHandler struct{}

func NewJobsHandler() *JobsHandler {
	return &JobsHandler{}
}

func (h *JobsHandler) List(w http.ResponseWriter, r *http.Request) {
	respond.JSON(w, http.StatusOK, map[string]any{
		"items": []any{},
		"total": 0,
	})
}

func (h *JobsHandler) Create(w http.ResponseWriter, r *http.Request) {
	identity := httpctx.Identity(r.Context())

	respond.JSON(w, http.StatusCreated, map[string]any{
		"status": "created",
		"owner":  identity.Subject,
	})
}

// Update exige dono-ou-admin além do papel mínimo da rota.
func (h *JobsHandler) Update(w http.ResponseWriter, r *http.Request) {
	identity := httpctx.Identity(r.Context())
	owner := r.Header.Get(OwnerHeader)

	if !domain.IsOwnerOrAdmin(identity, owner) {
		respond.Error(w, r, http.StatusForbidden, "permission_denied", "you can only modify your own job postings")
		return
	}

	respond.JSON(w, http.StatusOK, map[string]any{
		"status": "updated",
		"id":     chi.URLParam(r, "id"),
	})
}

func (h *JobsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	respond.JSON(w, http.StatusOK, map[string]any{
		"status": "deleted",
		"id":     chi.URLParam(r, "id"),
	})
}
