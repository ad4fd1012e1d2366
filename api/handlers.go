package api

import (
	"time"

	"github.com/rpupo63/portfolio-backend/config"
)

// initializeHandlers creates and returns all handlers organized in a routeHandlers struct
func initializeHandlers(deps Dependencies, cfg config.ServerConfig, startupTime time.Time) *routeHandlers {
	db := deps.Database
	return &routeHandlers{
		projectHandler:    newProjectHandler(db.ProjectRepo()),
		experienceHandler: newExperienceHandler(db.ExperienceRepo()),
		skillHandler:      newSkillHandler(db.SkillCategoryRepo()),
		authHandler:       newAuthHandler(deps.Auth),
		leetCodeHandler:   newLeetCodeHandler(deps.LeetCode),
		contactHandler:    newContactHandler(deps.Contact),
		uploadHandler:     newUploadHandler(deps.Images, cfg.MaxUploadBytes),
		healthHandler:     newHealthHandler(db, startupTime),
	}
}
