package database

import (
	"context"

	"github.com/google/uuid"
	"github.com/rpupo63/portfolio-backend/models"
	"gorm.io/gorm"
)

// SkillRepo reads and writes the skills of a category. Writes are issued by
// SkillCategoryRepo inside its transactions through WithTx.
type SkillRepo struct {
	db *gorm.DB
}

func NewSkillRepo(db *gorm.DB) *SkillRepo {
	return &SkillRepo{db}
}

// WithTx returns a repo bound to tx.
func (r *SkillRepo) WithTx(tx *gorm.DB) *SkillRepo {
	return &SkillRepo{tx}
}

// FindByCategory returns the skills of a category in insertion order
func (r *SkillRepo) FindByCategory(ctx context.Context, categoryID uuid.UUID) ([]models.Skill, error) {
	skills := []models.Skill{}
	err := r.db.WithContext(ctx).
		Where("category_id = ?", categoryID).
		Order("created_at ASC").
		Find(&skills).Error
	return skills, err
}

// IDsByCategory returns the ids of every skill persisted under a category
func (r *SkillRepo) IDsByCategory(categoryID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.Model(&models.Skill{}).Where("category_id = ?", categoryID).Pluck("id", &ids).Error
	return ids, err
}

// AddAll inserts skills in order
func (r *SkillRepo) AddAll(skills []models.Skill) error {
	for i := range skills {
		if err := r.db.Create(&skills[i]).Error; err != nil {
			return err
		}
	}
	return nil
}

// SetNameAndLevel overwrites name and level of a skill owned by categoryID.
// The owning category is never changed.
func (r *SkillRepo) SetNameAndLevel(categoryID uuid.UUID, skill models.Skill) error {
	return r.db.Model(&models.Skill{}).
		Where("id = ? AND category_id = ?", skill.ID, categoryID).
		Updates(map[string]any{"name": skill.Name, "level": skill.Level}).Error
}

func (r *SkillRepo) DeleteIDs(ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	return r.db.Where("id IN ?", ids).Delete(&models.Skill{}).Error
}

func (r *SkillRepo) DeleteByCategory(categoryID uuid.UUID) error {
	return r.db.Where("category_id = ?", categoryID).Delete(&models.Skill{}).Error
}
