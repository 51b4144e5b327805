// Package handlers agrupa os handlers HTTP da API.
package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/SamPomeroy/workforce-analytics-api/internal/adapters/http/respond"
	"github.com/SamPomeroy/workforce-analytics-api/internal/core/ports"
)

// Health reporta a vivacidade do processo e o estado do counter store. O
// store fora do ar degrada o status sem derrubar a resposta, coerente com a
// política fail-open do limiter.
func Health(store ports.CounterStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := "ok"
		storeStatus := "ok"

		if store != nil {
			ctx, cancel := context.WithTimeout(r.Context(), time.Second)
			defer cancel()
			if err := store.Ping(ctx); err != nil {
				status = "degraded"
				storeStatus = "unreachable"
			}
		}

		respond.JSON(w, http.StatusOK, map[string]string{
			"status":        status,
			"counter_store": storeStatus,
		})
	}
}
