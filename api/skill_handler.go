package api

import (
	"net/http"
	"strings"

	"github.com/rpupo63/portfolio-backend/database"
	"github.com/rpupo63/portfolio-backend/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type skillHandler struct {
	responder         Responder
	logger            zerolog.Logger
	skillCategoryRepo *database.SkillCategoryRepo
}

func newSkillHandler(skillCategoryRepo *database.SkillCategoryRepo) skillHandler {
	logger := log.With().Str("handlerName", "skillHandler").Logger()

	return skillHandler{
		responder:         NewResponder(logger),
		logger:            logger,
		skillCategoryRepo: skillCategoryRepo,
	}
}

// getSkillCategories lists every category with its skills
// @Router /skills [get]
func (h skillHandler) getSkillCategories() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Has("id") {
			id, err := queryID(r, "Category")
			if err != nil {
				h.responder.WriteError(w, err)
				return
			}
			category, err := h.skillCategoryRepo.FindByID(r.Context(), id)
			if err != nil {
				h.responder.WriteError(w, wrapDatabaseError("find skill category", "skill_categories", err))
				return
			}
			h.responder.WriteData(w, category)
			return
		}

		categories, err := h.skillCategoryRepo.FindAll(r.Context())
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find skill categories", "skill_categories", err))
			return
		}
		h.responder.WriteData(w, categories)
	}
}

// createSkillCategory creates a category together with its skills
// @Router /skills [post]
func (h skillHandler) createSkillCategory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.CreateSkillCategoryRequest
		if err := decodeJSON(w, r, &req); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if err := req.Validate(); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		category := models.SkillCategory{Title: strings.TrimSpace(req.Title)}
		if err := h.skillCategoryRepo.Create(r.Context(), &category, req.Skills); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create skill category", "skill_categories", err))
			return
		}

		h.logger.Info().
			Str("categoryID", category.ID.String()).
			Int("skills", len(category.Skills)).
			Msg("Created skill category")
		h.responder.WriteData(w, category)
	}
}

// updateSkillCategory renames the category and, when skills are sent,
// replaces its skill collection with them
// @Router /skills [put]
func (h skillHandler) updateSkillCategory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.UpdateSkillCategoryRequest
		if err := decodeJSON(w, r, &req); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if err := req.Validate(); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		plan, err := h.skillCategoryRepo.Update(r.Context(), req)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update skill category", "skill_categories", err))
			return
		}

		event := h.logger.Info()
		if len(plan.Stale) > 0 {
			event = h.logger.Warn().Interface("staleSkillIDs", plan.Stale)
		}
		event.
			Str("categoryID", req.ID.String()).
			Int("deleted", len(plan.Delete)).
			Int("updated", len(plan.Update)).
			Int("inserted", len(plan.Insert)).
			Msg("Updated skill category")

		h.responder.WriteSuccess(w)
	}
}

// deleteSkillCategory deletes the category named by ?id= and all of its skills
// @Router /skills [delete]
func (h skillHandler) deleteSkillCategory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		categoryID, err := queryID(r, "Category")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := h.skillCategoryRepo.Delete(r.Context(), categoryID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete skill category", "skill_categories", err))
			return
		}

		h.responder.WriteSuccess(w)
	}
}
