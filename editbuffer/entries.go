package editbuffer

import (
	"context"
	"strings"

	"github.com/pkg/errors"
	"github.com/rpupo63/portfolio-backend/models"
)

type ProjectTarget interface {
	UpdateProject(ctx context.Context, req models.UpdateProjectRequest) error
}

type ExperienceTarget interface {
	UpdateExperience(ctx context.Context, req models.UpdateExperienceRequest) error
}

// ProjectBuffer is a working copy of one project
type ProjectBuffer struct {
	lifecycle

	project models.Project
	req     models.UpdateProjectRequest
}

func NewProjectBuffer(project models.Project) *ProjectBuffer {
	id := project.ID
	project.Technologies = append([]string{}, project.Technologies...)
	return &ProjectBuffer{project: project, req: models.UpdateProjectRequest{ID: &id}}
}

// Project returns the project with the staged changes applied
func (b *ProjectBuffer) Project() models.Project {
	project := b.project
	project.Technologies = append([]string{}, b.project.Technologies...)
	return project
}

func (b *ProjectBuffer) set(apply func()) error {
	if err := b.check(); err != nil {
		return err
	}
	apply()
	return nil
}

func (b *ProjectBuffer) SetTitle(title string) error {
	return b.set(func() {
		b.project.Title = title
		b.req.Title = stringPtr(title)
	})
}

func (b *ProjectBuffer) SetDescription(description string) error {
	return b.set(func() {
		b.project.Description = description
		b.req.Description = stringPtr(description)
	})
}

// SetImage stages an image URL; an empty value clears it
func (b *ProjectBuffer) SetImage(image string) error {
	return b.set(func() {
		b.project.Image = optional(image)
		b.req.Image = stringPtr(image)
	})
}

func (b *ProjectBuffer) SetLink(link string) error {
	return b.set(func() {
		b.project.Link = optional(link)
		b.req.Link = stringPtr(link)
	})
}

func (b *ProjectBuffer) SetGithub(github string) error {
	return b.set(func() {
		b.project.Github = optional(github)
		b.req.Github = stringPtr(github)
	})
}

func (b *ProjectBuffer) SetTechnologies(technologies []string) error {
	return b.set(func() {
		list := append([]string{}, technologies...)
		b.project.Technologies = list
		staged := append([]string{}, list...)
		b.req.Technologies = &staged
	})
}

// SetTechnologiesText stages technologies from comma or newline separated text
func (b *ProjectBuffer) SetTechnologiesText(text string) error {
	return b.SetTechnologies(models.ParseTechnologies(text))
}

func (b *ProjectBuffer) TechnologiesText() string {
	return models.JoinTechnologies(b.project.Technologies)
}

func (b *ProjectBuffer) Dirty() bool {
	return len(b.req.Changes()) > 0
}

func (b *ProjectBuffer) Request() models.UpdateProjectRequest {
	return b.req
}

// Flush sends the staged fields in one request. A clean buffer sends nothing.
func (b *ProjectBuffer) Flush(ctx context.Context, target ProjectTarget) error {
	if err := b.check(); err != nil {
		return err
	}
	if !b.Dirty() {
		return nil
	}
	if err := b.req.Validate(); err != nil {
		return err
	}
	if err := target.UpdateProject(ctx, b.req); err != nil {
		return errors.Wrap(err, "failed to save project")
	}

	id := b.project.ID
	b.req = models.UpdateProjectRequest{ID: &id}
	return nil
}

// ExperienceBuffer is a working copy of one experience entry
type ExperienceBuffer struct {
	lifecycle

	experience models.Experience
	req        models.UpdateExperienceRequest
}

func NewExperienceBuffer(experience models.Experience) *ExperienceBuffer {
	id := experience.ID
	experience.Achievements = append([]string{}, experience.Achievements...)
	return &ExperienceBuffer{experience: experience, req: models.UpdateExperienceRequest{ID: &id}}
}

func (b *ExperienceBuffer) Experience() models.Experience {
	experience := b.experience
	experience.Achievements = append([]string{}, b.experience.Achievements...)
	return experience
}

func (b *ExperienceBuffer) set(apply func()) error {
	if err := b.check(); err != nil {
		return err
	}
	apply()
	return nil
}

func (b *ExperienceBuffer) SetTitle(title string) error {
	return b.set(func() {
		b.experience.Title = title
		b.req.Title = stringPtr(title)
	})
}

func (b *ExperienceBuffer) SetCompany(company string) error {
	return b.set(func() {
		b.experience.Company = company
		b.req.Company = stringPtr(company)
	})
}

func (b *ExperienceBuffer) SetLocation(location string) error {
	return b.set(func() {
		b.experience.Location = location
		b.req.Location = stringPtr(location)
	})
}

func (b *ExperienceBuffer) SetPeriod(period string) error {
	return b.set(func() {
		b.experience.Period = period
		b.req.Period = stringPtr(period)
	})
}

func (b *ExperienceBuffer) SetStartDate(startDate string) error {
	return b.set(func() {
		b.experience.StartDate = startDate
		b.req.StartDate = stringPtr(startDate)
	})
}

func (b *ExperienceBuffer) SetEndDate(endDate string) error {
	return b.set(func() {
		b.experience.EndDate = endDate
		b.req.EndDate = stringPtr(endDate)
	})
}

func (b *ExperienceBuffer) SetDescription(description string) error {
	return b.set(func() {
		b.experience.Description = description
		b.req.Description = stringPtr(description)
	})
}

func (b *ExperienceBuffer) SetIconURL(iconURL string) error {
	return b.set(func() {
		b.experience.IconURL = optional(iconURL)
		b.req.IconURL = stringPtr(iconURL)
	})
}

func (b *ExperienceBuffer) SetAchievements(achievements []string) error {
	return b.set(func() {
		list := append([]string{}, achievements...)
		b.experience.Achievements = list
		staged := append([]string{}, list...)
		b.req.Achievements = &staged
	})
}

// SetAchievementsText stages one achievement per non-blank line
func (b *ExperienceBuffer) SetAchievementsText(text string) error {
	return b.SetAchievements(models.ParseLines(text))
}

func (b *ExperienceBuffer) AchievementsText() string {
	return strings.Join(b.experience.Achievements, "\n")
}

func (b *ExperienceBuffer) Dirty() bool {
	return len(b.req.Changes()) > 0
}

func (b *ExperienceBuffer) Request() models.UpdateExperienceRequest {
	return b.req
}

// Flush sends the staged fields in one request. A clean buffer sends nothing.
func (b *ExperienceBuffer) Flush(ctx context.Context, target ExperienceTarget) error {
	if err := b.check(); err != nil {
		return err
	}
	if !b.Dirty() {
		return nil
	}
	if err := b.req.Validate(); err != nil {
		return err
	}
	if err := target.UpdateExperience(ctx, b.req); err != nil {
		return errors.Wrap(err, "failed to save experience")
	}

	id := b.experience.ID
	b.req = models.UpdateExperienceRequest{ID: &id}
	return nil
}

func optional(value string) *string {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	return &value
}
