package editbuffer

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/google/uuid"
	"github.com/rpupo63/portfolio-backend/database"
	"github.com/rpupo63/portfolio-backend/database/dbtest"
	"github.com/rpupo63/portfolio-backend/errs"
	"github.com/rpupo63/portfolio-backend/models"
)

type recordingTarget struct {
	skillReqs      []models.UpdateSkillCategoryRequest
	projectReqs    []models.UpdateProjectRequest
	experienceReqs []models.UpdateExperienceRequest
	err            error

	// saved is what GetSkillCategory reloads after a flush
	saved  models.SkillCategory
	getErr error
	gets   int
}

func (r *recordingTarget) UpdateSkillCategory(_ context.Context, req models.UpdateSkillCategoryRequest) error {
	r.skillReqs = append(r.skillReqs, req)
	return r.err
}

func (r *recordingTarget) GetSkillCategory(_ context.Context, _ uuid.UUID) (models.SkillCategory, error) {
	r.gets++
	return r.saved, r.getErr
}

func (r *recordingTarget) UpdateProject(_ context.Context, req models.UpdateProjectRequest) error {
	r.projectReqs = append(r.projectReqs, req)
	return r.err
}

func (r *recordingTarget) UpdateExperience(_ context.Context, req models.UpdateExperienceRequest) error {
	r.experienceReqs = append(r.experienceReqs, req)
	return r.err
}

func seedCategory() models.SkillCategory {
	id := uuid.New()
	return models.SkillCategory{
		ID:    id,
		Title: "Languages",
		Skills: []models.Skill{
			{ID: uuid.New(), Name: "Go", Level: 90, CategoryID: id},
			{ID: uuid.New(), Name: "Rust", Level: 60, CategoryID: id},
		},
	}
}

func TestSkillCategoryBufferFlushSendsOneRequest(t *testing.T) {
	category := seedCategory()
	buf := NewSkillCategoryBuffer(category)
	target := &recordingTarget{}

	if err := buf.SetSkillLevel(0, 95); err != nil {
		t.Fatalf("SetSkillLevel: %v", err)
	}
	idx, err := buf.AppendSkill()
	if err != nil {
		t.Fatalf("AppendSkill: %v", err)
	}
	if idx != 2 {
		t.Fatalf("appended index = %d, want 2", idx)
	}
	fresh := buf.Skills()[idx]
	if fresh.Name != "" || fresh.HasID() || fresh.LevelOrDefault() != models.DefaultSkillLevel {
		t.Errorf("appended skill = %+v", fresh)
	}
	if err := buf.SetSkillName(idx, "TypeScript"); err != nil {
		t.Fatalf("SetSkillName: %v", err)
	}
	if err := buf.RemoveSkill(buf.IndexOf("rust")); err != nil {
		t.Fatalf("RemoveSkill: %v", err)
	}

	if len(target.skillReqs) != 0 {
		t.Fatal("mutations must not reach the server before Flush")
	}
	if err := buf.Flush(context.Background(), target); err != nil {
		t.Fatalf("Flush: %v", err)
	}
	if len(target.skillReqs) != 1 {
		t.Fatalf("expected one request, got %d", len(target.skillReqs))
	}

	req := target.skillReqs[0]
	if *req.ID != category.ID {
		t.Errorf("id = %v", *req.ID)
	}
	if req.Title != nil {
		t.Errorf("untouched title should not be sent, got %q", *req.Title)
	}
	skills := *req.Skills
	if len(skills) != 2 {
		t.Fatalf("skills = %+v", skills)
	}
	if *skills[0].ID != category.Skills[0].ID || *skills[0].Level != 95 {
		t.Errorf("kept skill = %+v", skills[0])
	}
	if skills[1].HasID() || skills[1].Name != "TypeScript" || *skills[1].Level != 80 {
		t.Errorf("new skill = %+v", skills[1])
	}

	if buf.Dirty() {
		t.Error("buffer should be clean after a successful flush")
	}
	if err := buf.Flush(context.Background(), target); err != nil || len(target.skillReqs) != 1 {
		t.Errorf("clean flush should be a no-op, err=%v calls=%d", err, len(target.skillReqs))
	}
}

func TestSkillCategoryBufferTitleOnly(t *testing.T) {
	buf := NewSkillCategoryBuffer(seedCategory())
	target := &recordingTarget{}

	if err := buf.SetTitle("Programming Languages"); err != nil {
		t.Fatalf("SetTitle: %v", err)
	}
	if err := buf.Flush(context.Background(), target); err != nil {
		t.Fatalf("Flush: %v", err)
	}
	req := target.skillReqs[0]
	if req.Title == nil || *req.Title != "Programming Languages" {
		t.Errorf("title = %v", req.Title)
	}
	if req.Skills != nil {
		t.Error("untouched skills must not be sent")
	}
}

func TestSkillCategoryBufferValidation(t *testing.T) {
	buf := NewSkillCategoryBuffer(seedCategory())
	target := &recordingTarget{}

	if err := buf.SetSkillLevel(0, 101); err == nil {
		t.Error("level above 100 should be rejected")
	}
	if err := buf.SetSkillLevel(0, -1); err == nil {
		t.Error("negative level should be rejected")
	}
	if err := buf.SetSkillName(5, "x"); !errors.Is(err, ErrSkillIndex) {
		t.Errorf("out of range error = %v", err)
	}

	if _, err := buf.AppendSkill(); err != nil {
		t.Fatalf("AppendSkill: %v", err)
	}
	err := buf.Flush(context.Background(), target)
	if !errs.IsMissingRequiredFieldError(err) {
		t.Errorf("blank name error = %v", err)
	}
	if len(target.skillReqs) != 0 {
		t.Error("invalid buffer must not be sent")
	}
	if !buf.Dirty() {
		t.Error("failed flush should keep the staged changes")
	}
}

func TestSkillCategoryBufferSkillsIsACopy(t *testing.T) {
	buf := NewSkillCategoryBuffer(seedCategory())
	skills := buf.Skills()
	skills[0].Name = "changed"
	*skills[0].Level = 1

	again := buf.Skills()
	if again[0].Name != "Go" || *again[0].Level != 90 {
		t.Errorf("buffer was mutated through Skills(): %+v", again[0])
	}
}

func TestDiscardedBufferRejectsEverything(t *testing.T) {
	buf := NewSkillCategoryBuffer(seedCategory())
	target := &recordingTarget{}

	if err := buf.SetTitle("Other"); err != nil {
		t.Fatalf("SetTitle: %v", err)
	}
	buf.Discard()

	if err := buf.Flush(context.Background(), target); !errors.Is(err, ErrDiscarded) {
		t.Errorf("Flush after discard = %v", err)
	}
	if _, err := buf.AppendSkill(); !errors.Is(err, ErrDiscarded) {
		t.Errorf("AppendSkill after discard = %v", err)
	}
	if err := buf.SetSkillLevel(0, 50); !errors.Is(err, ErrDiscarded) {
		t.Errorf("SetSkillLevel after discard = %v", err)
	}
	if len(target.skillReqs) != 0 {
		t.Error("discarded buffer must never contact the server")
	}

	project := NewProjectBuffer(models.Project{ID: uuid.New(), Title: "Site"})
	project.Discard()
	if err := project.SetTitle("x"); !errors.Is(err, ErrDiscarded) {
		t.Errorf("project SetTitle after discard = %v", err)
	}
}

func TestFlushKeepsChangesOnServerError(t *testing.T) {
	buf := NewSkillCategoryBuffer(seedCategory())
	target := &recordingTarget{err: errors.New("boom")}

	if err := buf.SetTitle("Tools"); err != nil {
		t.Fatalf("SetTitle: %v", err)
	}
	if err := buf.Flush(context.Background(), target); err == nil {
		t.Fatal("expected the server error")
	}
	if !buf.Dirty() {
		t.Error("changes should survive a failed flush")
	}
}

func TestProjectBuffer(t *testing.T) {
	project := models.Project{ID: uuid.New(), Title: "Site", Technologies: []string{"Go"}}
	buf := NewProjectBuffer(project)
	target := &recordingTarget{}

	if buf.TechnologiesText() != "Go" {
		t.Errorf("TechnologiesText = %q", buf.TechnologiesText())
	}
	if err := buf.Flush(context.Background(), target); err != nil || len(target.projectReqs) != 0 {
		t.Fatalf("clean flush sent a request: %v", err)
	}

	if err := buf.SetTechnologiesText("Go, React\nPostgres"); err != nil {
		t.Fatalf("SetTechnologiesText: %v", err)
	}
	if err := buf.SetLink("  "); err != nil {
		t.Fatalf("SetLink: %v", err)
	}
	if got := buf.Project(); got.Link != nil || !reflect.DeepEqual([]string(got.Technologies), []string{"Go", "React", "Postgres"}) {
		t.Errorf("staged project = %+v", got)
	}

	if err := buf.Flush(context.Background(), target); err != nil {
		t.Fatalf("Flush: %v", err)
	}
	if len(target.projectReqs) != 1 {
		t.Fatalf("expected one request, got %d", len(target.projectReqs))
	}
	changes := target.projectReqs[0].Changes()
	if len(changes) != 2 {
		t.Errorf("changes = %v", changes)
	}
	if _, ok := changes["title"]; ok {
		t.Error("untouched title should not be sent")
	}

	if err := buf.SetTitle(" "); err != nil {
		t.Fatalf("SetTitle: %v", err)
	}
	if err := buf.Flush(context.Background(), target); !errs.IsInvalidFieldError(err) {
		t.Errorf("blank title error = %v", err)
	}
	if len(target.projectReqs) != 1 {
		t.Error("invalid project must not be sent")
	}
}

func TestExperienceBufferAchievementsText(t *testing.T) {
	buf := NewExperienceBuffer(models.Experience{ID: uuid.New(), Title: "Engineer", Company: "Acme"})
	target := &recordingTarget{}

	if err := buf.SetAchievementsText("Shipped v2\n\n  Cut latency in half  \n"); err != nil {
		t.Fatalf("SetAchievementsText: %v", err)
	}
	if err := buf.SetEndDate("Present"); err != nil {
		t.Fatalf("SetEndDate: %v", err)
	}
	if got := buf.AchievementsText(); got != "Shipped v2\nCut latency in half" {
		t.Errorf("AchievementsText = %q", got)
	}

	if err := buf.Flush(context.Background(), target); err != nil {
		t.Fatalf("Flush: %v", err)
	}
	req := target.experienceReqs[0]
	if !reflect.DeepEqual(*req.Achievements, []string{"Shipped v2", "Cut latency in half"}) {
		t.Errorf("achievements = %v", *req.Achievements)
	}
	if *req.EndDate != "Present" || req.Company != nil {
		t.Errorf("request = %+v", req)
	}
	if buf.Dirty() {
		t.Error("buffer should be clean after flush")
	}
}

// repoTarget saves through the real repository so reloads see store-assigned ids.
type repoTarget struct {
	repo *database.SkillCategoryRepo
}

func (r repoTarget) UpdateSkillCategory(ctx context.Context, req models.UpdateSkillCategoryRequest) error {
	_, err := r.repo.Update(ctx, req)
	return err
}

func (r repoTarget) GetSkillCategory(ctx context.Context, id uuid.UUID) (models.SkillCategory, error) {
	category, err := r.repo.FindByID(ctx, id)
	if err != nil {
		return models.SkillCategory{}, err
	}
	return *category, nil
}

func TestSkillCategoryBufferReflushKeepsInsertedSkills(t *testing.T) {
	ctx := context.Background()
	repo := dbtest.New(t).SkillCategoryRepo()
	level := 90
	category := &models.SkillCategory{Title: "Languages"}
	if err := repo.Create(ctx, category, []models.SkillInput{{Name: "Go", Level: &level}}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	seeded, err := repo.FindByID(ctx, category.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	buf := NewSkillCategoryBuffer(*seeded)
	target := repoTarget{repo: repo}

	idx, err := buf.AppendSkill()
	if err != nil {
		t.Fatalf("AppendSkill: %v", err)
	}
	if err := buf.SetSkillName(idx, "Rust"); err != nil {
		t.Fatalf("SetSkillName: %v", err)
	}
	if err := buf.Flush(ctx, target); err != nil {
		t.Fatalf("first Flush: %v", err)
	}
	rust := buf.Skills()[buf.IndexOf("Rust")]
	if !rust.HasID() {
		t.Fatalf("inserted skill has no id after flush: %+v", rust)
	}
	rustID := *rust.ID

	if err := buf.SetSkillLevel(buf.IndexOf("Go"), 95); err != nil {
		t.Fatalf("SetSkillLevel: %v", err)
	}
	if err := buf.Flush(ctx, target); err != nil {
		t.Fatalf("second Flush: %v", err)
	}

	stored, err := repo.FindByID(ctx, category.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if len(stored.Skills) != 2 {
		t.Fatalf("stored skills = %+v", stored.Skills)
	}
	for _, skill := range stored.Skills {
		switch skill.Name {
		case "Rust":
			if skill.ID != rustID {
				t.Errorf("Rust was re-inserted: id %v, want %v", skill.ID, rustID)
			}
		case "Go":
			if skill.Level != 95 {
				t.Errorf("Go level = %d, want 95", skill.Level)
			}
		default:
			t.Errorf("unexpected skill %+v", skill)
		}
	}
}

func TestSkillCategoryBufferSpentWhenReloadFails(t *testing.T) {
	buf := NewSkillCategoryBuffer(seedCategory())
	target := &recordingTarget{getErr: errors.New("timeout")}

	if _, err := buf.AppendSkill(); err != nil {
		t.Fatalf("AppendSkill: %v", err)
	}
	if err := buf.SetSkillName(2, "Zig"); err != nil {
		t.Fatalf("SetSkillName: %v", err)
	}
	if err := buf.Flush(context.Background(), target); err == nil {
		t.Fatal("expected the reload error")
	}
	if len(target.skillReqs) != 1 || target.gets != 1 {
		t.Fatalf("updates=%d gets=%d", len(target.skillReqs), target.gets)
	}

	if err := buf.Flush(context.Background(), target); !errors.Is(err, ErrSpent) {
		t.Errorf("Flush after failed reload = %v", err)
	}
	if err := buf.SetSkillLevel(0, 10); !errors.Is(err, ErrSpent) {
		t.Errorf("SetSkillLevel after failed reload = %v", err)
	}
	if len(target.skillReqs) != 1 {
		t.Error("spent buffer must not resend the saved changes")
	}
}

func TestSkillCategoryBufferReseedsFromReload(t *testing.T) {
	category := seedCategory()
	saved := category
	saved.Title = "Languages"
	saved.Skills = append([]models.Skill{}, category.Skills...)
	saved.Skills = append(saved.Skills, models.Skill{ID: uuid.New(), Name: "Zig", Level: 80, CategoryID: category.ID})
	buf := NewSkillCategoryBuffer(category)
	target := &recordingTarget{saved: saved}

	idx, err := buf.AppendSkill()
	if err != nil {
		t.Fatalf("AppendSkill: %v", err)
	}
	if err := buf.SetSkillName(idx, "Zig"); err != nil {
		t.Fatalf("SetSkillName: %v", err)
	}
	if err := buf.Flush(context.Background(), target); err != nil {
		t.Fatalf("Flush: %v", err)
	}
	zig := buf.Skills()[buf.IndexOf("zig")]
	if !zig.HasID() || *zig.ID != saved.Skills[2].ID {
		t.Errorf("reloaded skill = %+v", zig)
	}
	if buf.Dirty() {
		t.Error("buffer should be clean after reseeding")
	}
}
