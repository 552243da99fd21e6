package middleware

import (
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/xavierca1/painel-crm/internal/infra/logger"
)

// Logger registra uma linha por requisição.
func Logger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

		next.ServeHTTP(rw, r)

		entry := logger.Log.WithFields(logrus.Fields{
			"method":     r.Method,
			"rota":       routePattern(r),
			"status":     rw.statusCode,
			"duracao_ms": time.Since(start).Milliseconds(),
		})
		if c := r.Header.Get(ClienteHeader); c != "" {
			entry = entry.WithField("cliente_id", c)
		}

		switch {
		case rw.statusCode >= 500:
			entry.Error("❌ Requisição com erro")
		case rw.statusCode >= 400:
			entry.Warn("⚠️ Requisição recusada")
		default:
			entry.Info("Requisição atendida")
		}
	})
}
