package api

import (
	"net/http"

	"github.com/rpupo63/portfolio-backend/errs"
	"github.com/rpupo63/portfolio-backend/services"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type contactHandler struct {
	responder Responder
	logger    zerolog.Logger
	contact   *services.ContactService
}

func newContactHandler(contact *services.ContactService) contactHandler {
	logger := log.With().Str("handlerName", "contactHandler").Logger()

	return contactHandler{
		responder: NewResponder(logger),
		logger:    logger,
		contact:   contact,
	}
}

// @Router /contact [post]
func (h contactHandler) submit() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var msg services.ContactMessage
		if err := decodeJSON(w, r, &msg); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if h.contact == nil {
			h.responder.WriteError(w, errs.NewServiceNotConfiguredError("contact delivery"))
			return
		}

		if err := h.contact.Submit(r.Context(), msg); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.logger.Info().Str("from", msg.Email).Msg("Contact message delivered")
		h.responder.WriteSuccess(w)
	}
}
