package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DefaultSkillLevel is assigned to skills created from a bare name.
const DefaultSkillLevel = 80

// SkillCategory groups skills in the skills section. It exclusively owns its
// skills: deleting a category deletes them.
type SkillCategory struct {
	ID        uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	Title     string    `json:"title" db:"title" gorm:"type:text;not null"`
	Skills    []Skill   `json:"skills" gorm:"foreignKey:CategoryID;references:ID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time `json:"created_at" db:"created_at" gorm:"autoCreateTime;index"`
}

func (c *SkillCategory) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// Skill belongs to exactly one category for its whole life; moving a skill
// means deleting it and creating a new one under the other category.
type Skill struct {
	ID         uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	Name       string    `json:"name" db:"name" gorm:"type:text;not null"`
	Level      int       `json:"level" db:"level" gorm:"type:integer;not null"`
	CategoryID uuid.UUID `json:"category_id" db:"category_id" gorm:"type:uuid;not null;index:idx_skill_category_id"`
	CreatedAt  time.Time `json:"-" db:"created_at" gorm:"autoCreateTime"`
}

func (s *Skill) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
