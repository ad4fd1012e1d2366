package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Experience is one entry of the work history timeline. Dates are free-form
// strings ("Jan 2022", "Present") and are never parsed.
type Experience struct {
	ID           uuid.UUID                   `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	Title        string                      `json:"title" db:"title" gorm:"type:text;not null"`
	Company      string                      `json:"company" db:"company" gorm:"type:text;not null"`
	Location     string                      `json:"location" db:"location" gorm:"type:text;not null;default:''"`
	Period       string                      `json:"period,omitempty" db:"period" gorm:"type:text;not null;default:''"`
	StartDate    string                      `json:"startDate" db:"start_date" gorm:"column:start_date;type:text;not null;default:''"`
	EndDate      string                      `json:"endDate" db:"end_date" gorm:"column:end_date;type:text;not null;default:''"`
	Description  string                      `json:"description" db:"description" gorm:"type:text;not null;default:''"`
	Achievements datatypes.JSONSlice[string] `json:"achievements" db:"achievements"`
	IconURL      *string                     `json:"iconUrl,omitempty" db:"icon_url" gorm:"column:icon_url;type:text"`
	CreatedAt    time.Time                   `json:"created_at" db:"created_at" gorm:"autoCreateTime;index"`
}

// TableName keeps the singular table name used by the existing deployment
func (Experience) TableName() string {
	return "experience"
}

func (e *Experience) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	if e.Achievements == nil {
		e.Achievements = datatypes.JSONSlice[string]{}
	}
	return nil
}
