package api

import (
	"net/http"

	"github.com/rpupo63/portfolio-backend/database"
	"github.com/rpupo63/portfolio-backend/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type experienceHandler struct {
	responder      Responder
	logger         zerolog.Logger
	experienceRepo *database.ExperienceRepo
}

func newExperienceHandler(experienceRepo *database.ExperienceRepo) experienceHandler {
	logger := log.With().Str("handlerName", "experienceHandler").Logger()

	return experienceHandler{
		responder:      NewResponder(logger),
		logger:         logger,
		experienceRepo: experienceRepo,
	}
}

// @Router /experience [get]
func (h experienceHandler) getExperience() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Has("id") {
			id, err := queryID(r, "Experience")
			if err != nil {
				h.responder.WriteError(w, err)
				return
			}
			experience, err := h.experienceRepo.FindByID(r.Context(), id)
			if err != nil {
				h.responder.WriteError(w, wrapDatabaseError("find experience", "experience", err))
				return
			}
			h.responder.WriteData(w, experience)
			return
		}

		experience, err := h.experienceRepo.FindAll(r.Context())
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find experience", "experience", err))
			return
		}
		h.responder.WriteData(w, experience)
	}
}

// @Router /experience [post]
func (h experienceHandler) createExperience() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.CreateExperienceRequest
		if err := decodeJSON(w, r, &req); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if err := req.Validate(); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		experience := req.Experience()
		if err := h.experienceRepo.Add(r.Context(), &experience); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create experience", "experience", err))
			return
		}

		h.logger.Info().Str("experienceID", experience.ID.String()).Msg("Created experience")
		h.responder.WriteData(w, experience)
	}
}

// @Router /experience [put]
func (h experienceHandler) updateExperience() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.UpdateExperienceRequest
		if err := decodeJSON(w, r, &req); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if err := req.Validate(); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := h.experienceRepo.Update(r.Context(), *req.ID, req.Changes()); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update experience", "experience", err))
			return
		}

		h.responder.WriteSuccess(w)
	}
}

// @Router /experience [delete]
func (h experienceHandler) deleteExperience() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		experienceID, err := queryID(r, "Experience")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := h.experienceRepo.Delete(r.Context(), experienceID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete experience", "experience", err))
			return
		}

		h.responder.WriteSuccess(w)
	}
}
