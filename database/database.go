package database

import (
	"context"

	"github.com/rpupo63/portfolio-backend/models"
	"gorm.io/gorm"
)

type Database struct {
	db                *gorm.DB
	projectRepo       *ProjectRepo
	experienceRepo    *ExperienceRepo
	skillCategoryRepo *SkillCategoryRepo
	skillRepo         *SkillRepo
	userRepo          *UserRepo
}

// New initializes a new Database struct with each repository using a shared GORM database instance
func New(db *gorm.DB) Database {
	skillRepo := NewSkillRepo(db)
	return Database{
		db:                db,
		projectRepo:       NewProjectRepo(db),
		experienceRepo:    NewExperienceRepo(db),
		skillCategoryRepo: NewSkillCategoryRepo(db, skillRepo),
		skillRepo:         skillRepo,
		userRepo:          NewUserRepo(db),
	}
}

// Accessor methods for each repository

func (d Database) ProjectRepo() *ProjectRepo {
	return d.projectRepo
}

func (d Database) ExperienceRepo() *ExperienceRepo {
	return d.experienceRepo
}

func (d Database) SkillCategoryRepo() *SkillCategoryRepo {
	return d.skillCategoryRepo
}

func (d Database) SkillRepo() *SkillRepo {
	return d.skillRepo
}

func (d Database) UserRepo() *UserRepo {
	return d.userRepo
}

// Migrate creates or updates the tables of every model
func (d Database) Migrate() error {
	return models.AutoMigrate(d.db)
}

// Ping checks that the store answers
func (d Database) Ping(ctx context.Context) error {
	var result int
	return d.db.WithContext(ctx).Raw("SELECT 1").Scan(&result).Error
}
