package reconcile

import (
	"reflect"
	"testing"

	"github.com/google/uuid"
	"github.com/rpupo63/portfolio-backend/models"
)

func withID(id uuid.UUID, name string, level int) models.SkillInput {
	return models.SkillInput{ID: &id, Name: name, Level: &level}
}

func ids(skills []models.SkillInput) []uuid.UUID {
	var out []uuid.UUID
	for _, s := range skills {
		out = append(out, *s.ID)
	}
	return out
}

func TestDiffPartitions(t *testing.T) {
	goID, rustID, sqlID := uuid.New(), uuid.New(), uuid.New()
	existing := []uuid.UUID{goID, rustID, sqlID}

	incoming := []models.SkillInput{
		withID(goID, "Go", 90),
		models.NewSkillInput("Python", 80),
		withID(sqlID, "SQL", 70),
	}

	plan := Diff(existing, incoming)

	if !reflect.DeepEqual(plan.Delete, []uuid.UUID{rustID}) {
		t.Errorf("Delete = %v, want [%v]", plan.Delete, rustID)
	}
	if !reflect.DeepEqual(ids(plan.Update), []uuid.UUID{goID, sqlID}) {
		t.Errorf("Update = %v", ids(plan.Update))
	}
	if len(plan.Insert) != 1 || plan.Insert[0].Name != "Python" {
		t.Errorf("Insert = %+v", plan.Insert)
	}
	if len(plan.Stale) != 0 {
		t.Errorf("Stale = %v", plan.Stale)
	}
}

func TestDiffEmptyIncomingDeletesAll(t *testing.T) {
	existing := []uuid.UUID{uuid.New(), uuid.New()}
	plan := Diff(existing, nil)
	if !reflect.DeepEqual(plan.Delete, existing) {
		t.Errorf("Delete = %v, want %v", plan.Delete, existing)
	}
	if len(plan.Update) != 0 || len(plan.Insert) != 0 {
		t.Errorf("unexpected writes: %+v", plan)
	}
}

func TestDiffNoExistingInsertsAll(t *testing.T) {
	incoming := []models.SkillInput{
		models.NewSkillInput("Go", 80),
		models.NewSkillInput("Go", 80),
	}
	plan := Diff(nil, incoming)
	if len(plan.Insert) != 2 {
		t.Errorf("duplicate names must stay distinct, Insert = %+v", plan.Insert)
	}
	if len(plan.Delete) != 0 {
		t.Errorf("Delete = %v", plan.Delete)
	}
}

func TestDiffIdempotentSecondPass(t *testing.T) {
	goID, rustID := uuid.New(), uuid.New()
	incoming := []models.SkillInput{withID(goID, "Go", 90), withID(rustID, "Rust", 80)}

	plan := Diff([]uuid.UUID{goID, rustID}, incoming)
	if len(plan.Insert) != 0 || len(plan.Delete) != 0 {
		t.Errorf("second pass should only update, got %+v", plan)
	}
	if len(plan.Update) != 2 {
		t.Errorf("Update = %d, want 2", len(plan.Update))
	}
}

func TestDiffStaleIDs(t *testing.T) {
	goID, foreignID := uuid.New(), uuid.New()
	plan := Diff([]uuid.UUID{goID}, []models.SkillInput{withID(goID, "Go", 80), withID(foreignID, "Elixir", 50)})

	if !reflect.DeepEqual(plan.Stale, []uuid.UUID{foreignID}) {
		t.Errorf("Stale = %v", plan.Stale)
	}
	if len(plan.Update) != 1 || len(plan.Insert) != 0 || len(plan.Delete) != 0 {
		t.Errorf("stale ids must not be written: %+v", plan)
	}
}

func TestDiffNilUUIDIsNew(t *testing.T) {
	nilID := uuid.Nil
	plan := Diff(nil, []models.SkillInput{{ID: &nilID, Name: "Go"}})
	if len(plan.Insert) != 1 {
		t.Errorf("nil uuid should be inserted, got %+v", plan)
	}
}

func TestPlanEmpty(t *testing.T) {
	if !(Plan{}).Empty() {
		t.Error("zero plan should be empty")
	}
	if !(Plan{Stale: []uuid.UUID{uuid.New()}}).Empty() {
		t.Error("a plan with only stale ids writes nothing")
	}
	if (Plan{Delete: []uuid.UUID{uuid.New()}}).Empty() {
		t.Error("a plan with deletes is not empty")
	}
}
