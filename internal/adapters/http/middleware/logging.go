package middleware

import (
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/SamPomeroy/workforce-analytics-api/internal/adapters/http/httpctx"
)

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (sr *statusRecorder) WriteHeader(status int) {
	sr.status = status
	sr.ResponseWriter.WriteHeader(status)
}

// Flush mantém o wrapper transparente para handlers que fazem streaming.
func (sr *statusRecorder) Flush() {
	if f, ok := sr.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

// RequestLogger emite um evento estruturado por requisição concluída.
func RequestLogger(logger zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(rec, r)

			logger.Info().
				Str("request_id", httpctx.RequestID(r.Context())).
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Str("client", extractIP(r)).
				Int("status_code", rec.status).
				Float64("duration_ms", float64(time.Since(start).Microseconds())/1000).
				Msg("request completed")
		})
	}
}
