package api

import (
	"context"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type pinger interface {
	Ping(ctx context.Context) error
}

type healthHandler struct {
	responder   Responder
	logger      zerolog.Logger
	store       pinger
	startupTime time.Time
}

func newHealthHandler(store pinger, startupTime time.Time) healthHandler {
	logger := log.With().Str("handlerName", "healthHandler").Logger()

	return healthHandler{
		responder:   NewResponder(logger),
		logger:      logger,
		store:       store,
		startupTime: startupTime,
	}
}

// @Router /healthz [get]
func (h healthHandler) getHealth() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		status := HealthStatus{Status: "ok", Database: "ok", Uptime: time.Since(h.startupTime).Round(time.Second).String()}
		if err := h.store.Ping(ctx); err != nil {
			h.logger.Error().Err(err).Msg("Health check could not reach the database")
			status.Status = "degraded"
			status.Database = err.Error()
		}

		h.responder.WriteData(w, status)
	}
}
