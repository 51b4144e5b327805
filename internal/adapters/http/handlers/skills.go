package handlers

import (
	"net/http"

	"github.com/SamPomeroy/workforce-analytics-api/internal/adapters/http/httpctx"
	"github.com/SamPomeroy/workforce-analytics-api/internal/adapters/http/respond"
)

// SkillsHandler segue o mesmo padrão do JobsHandler: respostas finas servindo
// de alvo para o pipeline.
type SkillsHandler struct{}

func NewSkillsHandler() *SkillsHandler {
	return &SkillsHandler{}
}

func (h *SkillsHandler) List(w http.ResponseWriter, r *http.Request) {
	respond.JSON(w, http.StatusOK, map[string]any{
		"items": []any{},
		"total": 0,
	})
}

func (h *SkillsHandler) Create(w http.ResponseWriter, r *http.Request) {
	identity := httpctx.Identity(r.Context())

	respond.JSON(w, http.StatusCreated, map[string]any{
		"status":     "created",
		"created_by": identity.Subject,
	})
}
