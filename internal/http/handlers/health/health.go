// Package health exposes a liveness check that also pings the database.
package health

import (
	"context"
	"net/http"
	"time"

	"github.com/aanand-mishra/professores-api/internal/logger"
	"github.com/aanand-mishra/professores-api/internal/storage"
	"github.com/aanand-mishra/professores-api/internal/utils/response"
)

const pingTimeout = 2 * time.Second

// Pinger is the part of storage.Storage the check needs.
type Pinger interface {
	Ping(ctx context.Context) error
}

var _ Pinger = (storage.Storage)(nil)

// Check handles GET /health.
//
// 200 { "status": "ok" }
// 503 { "message": "Serviço indisponível", "error": "..." }
func Check(db Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), pingTimeout)
		defer cancel()

		if err := db.Ping(ctx); err != nil {
			logger.Log.WithError(err).Warn("health check: database unreachable")
			response.WriteJSON(w, http.StatusServiceUnavailable,
				response.GeneralError(response.MsgUnavailable, err))
			return
		}

		response.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
