package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Project is a portfolio entry shown in the projects section
type Project struct {
	ID           uuid.UUID                   `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	Title        string                      `json:"title" db:"title" gorm:"type:text;not null"`
	Description  string                      `json:"description" db:"description" gorm:"type:text;not null;default:''"`
	Image        *string                     `json:"image,omitempty" db:"image" gorm:"type:text"`
	Technologies datatypes.JSONSlice[string] `json:"technologies" db:"technologies"`
	Link         *string                     `json:"link,omitempty" db:"link" gorm:"type:text"`
	Github       *string                     `json:"github,omitempty" db:"github" gorm:"type:text"`
	CreatedAt    time.Time                   `json:"created_at" db:"created_at" gorm:"autoCreateTime;index"`
}

func (p *Project) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if p.Technologies == nil {
		p.Technologies = datatypes.JSONSlice[string]{}
	}
	return nil
}
