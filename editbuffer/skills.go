package editbuffer

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rpupo63/portfolio-backend/models"
)

// SkillCategoryTarget saves a category and reloads it. The reload gives newly
// inserted skills the ids the server assigned.
type SkillCategoryTarget interface {
	UpdateSkillCategory(ctx context.Context, req models.UpdateSkillCategoryRequest) error
	GetSkillCategory(ctx context.Context, id uuid.UUID) (models.SkillCategory, error)
}

// SkillCategoryBuffer is a working copy of one category and its skills
type SkillCategoryBuffer struct {
	lifecycle

	id            uuid.UUID
	title         string
	skills        []models.SkillInput
	titleChanged  bool
	skillsChanged bool
}

func NewSkillCategoryBuffer(category models.SkillCategory) *SkillCategoryBuffer {
	b := &SkillCategoryBuffer{}
	b.seed(category)
	return b
}

// seed replaces the buffer contents with category and clears the staged flags
func (b *SkillCategoryBuffer) seed(category models.SkillCategory) {
	skills := make([]models.SkillInput, 0, len(category.Skills))
	for _, skill := range category.Skills {
		id := skill.ID
		level := skill.Level
		skills = append(skills, models.SkillInput{ID: &id, Name: skill.Name, Level: &level})
	}
	b.id = category.ID
	b.title = category.Title
	b.skills = skills
	b.titleChanged = false
	b.skillsChanged = false
}

func (b *SkillCategoryBuffer) ID() uuid.UUID {
	return b.id
}

func (b *SkillCategoryBuffer) Title() string {
	return b.title
}

func (b *SkillCategoryBuffer) SetTitle(title string) error {
	if err := b.check(); err != nil {
		return err
	}
	b.title = title
	b.titleChanged = true
	return nil
}

// Skills returns a copy of the staged skills
func (b *SkillCategoryBuffer) Skills() []models.SkillInput {
	out := make([]models.SkillInput, len(b.skills))
	for i, skill := range b.skills {
		out[i] = copySkill(skill)
	}
	return out
}

// AppendSkill adds a blank new skill at the default level and returns its index
func (b *SkillCategoryBuffer) AppendSkill() (int, error) {
	if err := b.check(); err != nil {
		return -1, err
	}
	b.skills = append(b.skills, models.NewSkillInput("", models.DefaultSkillLevel))
	b.skillsChanged = true
	return len(b.skills) - 1, nil
}

func (b *SkillCategoryBuffer) SetSkillName(index int, name string) error {
	if err := b.checkIndex(index); err != nil {
		return err
	}
	b.skills[index].Name = name
	b.skillsChanged = true
	return nil
}

func (b *SkillCategoryBuffer) SetSkillLevel(index, level int) error {
	if err := b.checkIndex(index); err != nil {
		return err
	}
	if level < models.MinSkillLevel || level > models.MaxSkillLevel {
		return errors.Errorf("level must be between %d and %d", models.MinSkillLevel, models.MaxSkillLevel)
	}
	b.skills[index].Level = &level
	b.skillsChanged = true
	return nil
}

// RemoveSkill drops the skill at index. A persisted skill is deleted on Flush.
func (b *SkillCategoryBuffer) RemoveSkill(index int) error {
	if err := b.checkIndex(index); err != nil {
		return err
	}
	b.skills = append(b.skills[:index], b.skills[index+1:]...)
	b.skillsChanged = true
	return nil
}

// IndexOf returns the position of the first skill named name, ignoring case, or -1
func (b *SkillCategoryBuffer) IndexOf(name string) int {
	for i, skill := range b.skills {
		if strings.EqualFold(strings.TrimSpace(skill.Name), strings.TrimSpace(name)) {
			return i
		}
	}
	return -1
}

func (b *SkillCategoryBuffer) Dirty() bool {
	return b.titleChanged || b.skillsChanged
}

// Request builds the update request for the staged changes. When the skills
// were touched the whole collection is sent.
func (b *SkillCategoryBuffer) Request() models.UpdateSkillCategoryRequest {
	id := b.id
	req := models.UpdateSkillCategoryRequest{ID: &id}
	if b.titleChanged {
		req.Title = stringPtr(b.title)
	}
	if b.skillsChanged {
		skills := b.Skills()
		req.Skills = &skills
	}
	return req
}

// Flush sends the staged changes in one request and then reseeds the buffer
// from the saved category, so skills inserted by this flush carry their ids in
// later flushes. A clean buffer sends nothing. Invalid staged values are
// reported without contacting the server. When the save succeeds but the
// reload fails the buffer is spent and every later call returns ErrSpent.
func (b *SkillCategoryBuffer) Flush(ctx context.Context, target SkillCategoryTarget) error {
	if err := b.check(); err != nil {
		return err
	}
	if !b.Dirty() {
		return nil
	}

	req := b.Request()
	if err := req.Validate(); err != nil {
		return err
	}
	if err := target.UpdateSkillCategory(ctx, req); err != nil {
		return errors.Wrap(err, "failed to save skill category")
	}

	saved, err := target.GetSkillCategory(ctx, b.id)
	if err != nil {
		b.spent = true
		return errors.Wrap(err, "skill category saved but could not be reloaded")
	}
	b.seed(saved)
	return nil
}

func (b *SkillCategoryBuffer) checkIndex(index int) error {
	if err := b.check(); err != nil {
		return err
	}
	if index < 0 || index >= len(b.skills) {
		return errors.Wrapf(ErrSkillIndex, "index %d of %d", index, len(b.skills))
	}
	return nil
}

func copySkill(skill models.SkillInput) models.SkillInput {
	out := models.SkillInput{Name: skill.Name}
	if skill.ID != nil {
		id := *skill.ID
		out.ID = &id
	}
	if skill.Level != nil {
		level := *skill.Level
		out.Level = &level
	}
	return out
}
