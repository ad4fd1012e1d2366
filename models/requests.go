package models

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rpupo63/portfolio-backend/errs"
	"gorm.io/datatypes"
)

const (
	MinSkillLevel = 0
	MaxSkillLevel = 100
)

// CreateProjectRequest is the POST /projects body
type CreateProjectRequest struct {
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Image        *string  `json:"image,omitempty"`
	Technologies []string `json:"technologies,omitempty"`
	Link         *string  `json:"link,omitempty"`
	Github       *string  `json:"github,omitempty"`
}

func (r CreateProjectRequest) Validate() error {
	if strings.TrimSpace(r.Title) == "" {
		return errs.NewMissingRequiredFieldError("title")
	}
	return nil
}

func (r CreateProjectRequest) Project() Project {
	technologies := datatypes.JSONSlice[string]{}
	if r.Technologies != nil {
		technologies = datatypes.JSONSlice[string](r.Technologies)
	}
	return Project{
		Title:        strings.TrimSpace(r.Title),
		Description:  r.Description,
		Image:        optionalURL(r.Image),
		Technologies: technologies,
		Link:         optionalURL(r.Link),
		Github:       optionalURL(r.Github),
	}
}

// UpdateProjectRequest is the PUT /projects body. Nil fields are left untouched.
type UpdateProjectRequest struct {
	ID           *uuid.UUID `json:"id"`
	Title        *string    `json:"title,omitempty"`
	Description  *string    `json:"description,omitempty"`
	Image        *string    `json:"image,omitempty"`
	Technologies *[]string  `json:"technologies,omitempty"`
	Link         *string    `json:"link,omitempty"`
	Github       *string    `json:"github,omitempty"`
}

func (r UpdateProjectRequest) Validate() error {
	if r.ID == nil || *r.ID == uuid.Nil {
		return errs.IDRequired("Project")
	}
	if r.Title != nil && strings.TrimSpace(*r.Title) == "" {
		return errs.NewInvalidFieldError("title", "cannot be empty")
	}
	return nil
}

// Changes returns the columns to write, keyed by column name. The id is never included.
func (r UpdateProjectRequest) Changes() map[string]any {
	changes := map[string]any{}
	if r.Title != nil {
		changes["title"] = strings.TrimSpace(*r.Title)
	}
	if r.Description != nil {
		changes["description"] = *r.Description
	}
	if r.Image != nil {
		changes["image"] = optionalURL(r.Image)
	}
	if r.Technologies != nil {
		technologies := datatypes.JSONSlice[string]{}
		if *r.Technologies != nil {
			technologies = datatypes.JSONSlice[string](*r.Technologies)
		}
		changes["technologies"] = technologies
	}
	if r.Link != nil {
		changes["link"] = optionalURL(r.Link)
	}
	if r.Github != nil {
		changes["github"] = optionalURL(r.Github)
	}
	return changes
}

// CreateExperienceRequest is the POST /experience body
type CreateExperienceRequest struct {
	Title        string   `json:"title"`
	Company      string   `json:"company"`
	Location     string   `json:"location,omitempty"`
	Period       string   `json:"period,omitempty"`
	StartDate    string   `json:"startDate,omitempty"`
	EndDate      string   `json:"endDate,omitempty"`
	Description  string   `json:"description"`
	Achievements []string `json:"achievements,omitempty"`
	IconURL      *string  `json:"iconUrl,omitempty"`
}

func (r CreateExperienceRequest) Validate() error {
	if strings.TrimSpace(r.Title) == "" {
		return errs.NewMissingRequiredFieldError("title")
	}
	if strings.TrimSpace(r.Company) == "" {
		return errs.NewMissingRequiredFieldError("company")
	}
	return nil
}

func (r CreateExperienceRequest) Experience() Experience {
	achievements := datatypes.JSONSlice[string]{}
	if r.Achievements != nil {
		achievements = datatypes.JSONSlice[string](r.Achievements)
	}
	return Experience{
		Title:        strings.TrimSpace(r.Title),
		Company:      strings.TrimSpace(r.Company),
		Location:     r.Location,
		Period:       r.Period,
		StartDate:    r.StartDate,
		EndDate:      r.EndDate,
		Description:  r.Description,
		Achievements: achievements,
		IconURL:      optionalURL(r.IconURL),
	}
}

// UpdateExperienceRequest is the PUT /experience body. Nil fields are left untouched.
type UpdateExperienceRequest struct {
	ID           *uuid.UUID `json:"id"`
	Title        *string    `json:"title,omitempty"`
	Company      *string    `json:"company,omitempty"`
	Location     *string    `json:"location,omitempty"`
	Period       *string    `json:"period,omitempty"`
	StartDate    *string    `json:"startDate,omitempty"`
	EndDate      *string    `json:"endDate,omitempty"`
	Description  *string    `json:"description,omitempty"`
	Achievements *[]string  `json:"achievements,omitempty"`
	IconURL      *string    `json:"iconUrl,omitempty"`
}

func (r UpdateExperienceRequest) Validate() error {
	if r.ID == nil || *r.ID == uuid.Nil {
		return errs.IDRequired("Experience")
	}
	if r.Title != nil && strings.TrimSpace(*r.Title) == "" {
		return errs.NewInvalidFieldError("title", "cannot be empty")
	}
	if r.Company != nil && strings.TrimSpace(*r.Company) == "" {
		return errs.NewInvalidFieldError("company", "cannot be empty")
	}
	return nil
}

func (r UpdateExperienceRequest) Changes() map[string]any {
	changes := map[string]any{}
	if r.Title != nil {
		changes["title"] = strings.TrimSpace(*r.Title)
	}
	if r.Company != nil {
		changes["company"] = strings.TrimSpace(*r.Company)
	}
	if r.Location != nil {
		changes["location"] = *r.Location
	}
	if r.Period != nil {
		changes["period"] = *r.Period
	}
	if r.StartDate != nil {
		changes["start_date"] = *r.StartDate
	}
	if r.EndDate != nil {
		changes["end_date"] = *r.EndDate
	}
	if r.Description != nil {
		changes["description"] = *r.Description
	}
	if r.Achievements != nil {
		achievements := datatypes.JSONSlice[string]{}
		if *r.Achievements != nil {
			achievements = datatypes.JSONSlice[string](*r.Achievements)
		}
		changes["achievements"] = achievements
	}
	if r.IconURL != nil {
		changes["icon_url"] = optionalURL(r.IconURL)
	}
	return changes
}

// SkillInput is one skill of an incoming category payload. A skill without an
// id is new and is always inserted; a nil level means DefaultSkillLevel.
type SkillInput struct {
	ID    *uuid.UUID `json:"id,omitempty"`
	Name  string     `json:"name"`
	Level *int       `json:"level,omitempty"`
}

func (s SkillInput) HasID() bool {
	return s.ID != nil && *s.ID != uuid.Nil
}

func (s SkillInput) LevelOrDefault() int {
	if s.Level == nil {
		return DefaultSkillLevel
	}
	return *s.Level
}

// Skill converts the input into a row owned by categoryID. The id is dropped
// when the skill is new.
func (s SkillInput) Skill(categoryID uuid.UUID) Skill {
	skill := Skill{
		Name:       strings.TrimSpace(s.Name),
		Level:      s.LevelOrDefault(),
		CategoryID: categoryID,
	}
	if s.HasID() {
		skill.ID = *s.ID
	}
	return skill
}

// NewSkillInput builds an id-less skill.
func NewSkillInput(name string, level int) SkillInput {
	return SkillInput{Name: name, Level: &level}
}

func validateSkills(skills []SkillInput) error {
	for i, skill := range skills {
		if strings.TrimSpace(skill.Name) == "" {
			return errs.NewMissingRequiredFieldError(fmt.Sprintf("skills[%d].name", i))
		}
		if level := skill.LevelOrDefault(); level < MinSkillLevel || level > MaxSkillLevel {
			return errs.NewInvalidFieldError(fmt.Sprintf("skills[%d].level", i),
				fmt.Sprintf("must be between %d and %d", MinSkillLevel, MaxSkillLevel))
		}
	}
	return nil
}

// CreateSkillCategoryRequest is the POST /skills body
type CreateSkillCategoryRequest struct {
	Title  string       `json:"title"`
	Skills []SkillInput `json:"skills,omitempty"`
}

func (r CreateSkillCategoryRequest) Validate() error {
	if strings.TrimSpace(r.Title) == "" {
		return errs.NewMissingRequiredFieldError("title")
	}
	return validateSkills(r.Skills)
}

// UpdateSkillCategoryRequest is the PUT /skills body. When Skills is present it
// replaces the whole skill collection of the category.
type UpdateSkillCategoryRequest struct {
	ID     *uuid.UUID    `json:"id"`
	Title  *string       `json:"title,omitempty"`
	Skills *[]SkillInput `json:"skills,omitempty"`
}

func (r UpdateSkillCategoryRequest) Validate() error {
	if r.ID == nil || *r.ID == uuid.Nil {
		return errs.IDRequired("Category")
	}
	if r.Title != nil && strings.TrimSpace(*r.Title) == "" {
		return errs.NewInvalidFieldError("title", "cannot be empty")
	}
	if r.Skills != nil {
		return validateSkills(*r.Skills)
	}
	return nil
}

// optionalURL maps a blank URL to NULL.
func optionalURL(v *string) *string {
	if v == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*v)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
