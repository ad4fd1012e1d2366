package database

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/rpupo63/portfolio-backend/errs"
	"github.com/rpupo63/portfolio-backend/models"
	"github.com/rpupo63/portfolio-backend/reconcile"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SkillCategoryRepo struct {
	db     *gorm.DB
	skills *SkillRepo
}

func NewSkillCategoryRepo(db *gorm.DB, skills *SkillRepo) *SkillCategoryRepo {
	return &SkillCategoryRepo{db: db, skills: skills}
}

func orderedSkills(db *gorm.DB) *gorm.DB {
	return db.Order("created_at ASC")
}

// FindAll returns every category, newest first, each with its skills
func (r *SkillCategoryRepo) FindAll(ctx context.Context) ([]*models.SkillCategory, error) {
	categories := []*models.SkillCategory{}
	err := r.db.WithContext(ctx).
		Preload("Skills", orderedSkills).
		Order("created_at DESC").
		Find(&categories).Error
	if err != nil {
		return nil, err
	}
	for _, category := range categories {
		if category.Skills == nil {
			category.Skills = []models.Skill{}
		}
	}
	return categories, nil
}

func (r *SkillCategoryRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.SkillCategory, error) {
	var category models.SkillCategory
	err := r.db.WithContext(ctx).Preload("Skills", orderedSkills).Where("id = ?", id).First(&category).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.NewNotFound("category")
	}
	if err != nil {
		return nil, err
	}
	if category.Skills == nil {
		category.Skills = []models.Skill{}
	}
	return &category, nil
}

// Create inserts the category and all of its skills in one transaction. Ids
// carried by the skills are ignored: every skill is new.
func (r *SkillCategoryRepo) Create(ctx context.Context, category *models.SkillCategory, skills []models.SkillInput) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		category.Skills = nil
		if err := tx.Omit(clause.Associations).Create(category).Error; err != nil {
			return err
		}

		rows := make([]models.Skill, 0, len(skills))
		for _, input := range skills {
			input.ID = nil
			rows = append(rows, input.Skill(category.ID))
		}
		if err := r.skills.WithTx(tx).AddAll(rows); err != nil {
			return err
		}
		category.Skills = rows
		return nil
	})
}

// Update applies a title change and, when req.Skills is present, reconciles
// the persisted skills with it. All writes commit together or not at all. The
// returned plan lists what was written and which claimed ids were stale.
func (r *SkillCategoryRepo) Update(ctx context.Context, req models.UpdateSkillCategoryRequest) (reconcile.Plan, error) {
	var plan reconcile.Plan
	id := *req.ID

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if req.Title != nil {
			err := tx.Model(&models.SkillCategory{}).
				Where("id = ?", id).
				Update("title", strings.TrimSpace(*req.Title)).Error
			if err != nil {
				return err
			}
		}

		if req.Skills == nil {
			return nil
		}

		skills := r.skills.WithTx(tx)
		existing, err := skills.IDsByCategory(id)
		if err != nil {
			return err
		}

		plan = reconcile.Diff(existing, *req.Skills)

		if err := skills.DeleteIDs(plan.Delete); err != nil {
			return err
		}
		for _, input := range plan.Update {
			if err := skills.SetNameAndLevel(id, input.Skill(id)); err != nil {
				return err
			}
		}
		inserts := make([]models.Skill, 0, len(plan.Insert))
		for _, input := range plan.Insert {
			inserts = append(inserts, input.Skill(id))
		}
		return skills.AddAll(inserts)
	})
	if err != nil {
		return reconcile.Plan{}, errs.NewTransactionFailedError("update skill category", err)
	}
	return plan, nil
}

// Delete removes the category and every skill it owns
func (r *SkillCategoryRepo) Delete(ctx context.Context, id uuid.UUID) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := r.skills.WithTx(tx).DeleteByCategory(id); err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&models.SkillCategory{}).Error
	})
	if err != nil {
		return errs.NewTransactionFailedError("delete skill category", err)
	}
	return nil
}
