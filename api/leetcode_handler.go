package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/rpupo63/portfolio-backend/errs"
	"github.com/rpupo63/portfolio-backend/services"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type leetCodeHandler struct {
	responder Responder
	logger    zerolog.Logger
	leetCode  *services.LeetCodeClient
}

func newLeetCodeHandler(leetCode *services.LeetCodeClient) leetCodeHandler {
	logger := log.With().Str("handlerName", "leetCodeHandler").Logger()

	return leetCodeHandler{
		responder: NewResponder(logger),
		logger:    logger,
		leetCode:  leetCode,
	}
}

// getStats returns the bare stats object, without the success envelope
// @Router /leetcode [get]
func (h leetCodeHandler) getStats() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		username := strings.TrimSpace(r.URL.Query().Get("username"))
		if username == "" {
			h.responder.WriteError(w, errs.NewBadRequestError("Missing username parameter"))
			return
		}
		if h.leetCode == nil {
			h.responder.WriteError(w, errs.NewServiceNotConfiguredError("leetcode"))
			return
		}

		stats, err := h.leetCode.Stats(r.Context(), username)
		if errors.Is(err, services.ErrLeetCodeUserNotFound) {
			h.responder.WriteError(w, errs.NewNotFoundError("No data found for user"))
			return
		}
		if err != nil {
			h.responder.WriteError(w, errs.NewUpstreamError("Failed to fetch LeetCode stats", err))
			return
		}

		h.responder.WriteJSON(w, http.StatusOK, stats)
	}
}
