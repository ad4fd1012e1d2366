package database_test

import (
	"context"
	"net/http"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/rpupo63/portfolio-backend/database"
	"github.com/rpupo63/portfolio-backend/database/dbtest"
	"github.com/rpupo63/portfolio-backend/errs"
	"github.com/rpupo63/portfolio-backend/models"
)

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }

func TestSQLiteDSN(t *testing.T) {
	if got := database.SQLiteDSN("site.db"); got != "site.db?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)" {
		t.Errorf("SQLiteDSN = %q", got)
	}
	if got := database.SQLiteDSN("file:site.db?cache=shared"); got != "file:site.db?cache=shared&_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)" {
		t.Errorf("SQLiteDSN with query = %q", got)
	}
}

func TestProjectRepo(t *testing.T) {
	ctx := context.Background()
	repo := dbtest.New(t).ProjectRepo()

	first := models.CreateProjectRequest{Title: "First", Description: "one", Technologies: []string{"Go"}}.Project()
	if err := repo.Add(ctx, &first); err != nil {
		t.Fatalf("add first: %v", err)
	}
	second := models.CreateProjectRequest{Title: "Second"}.Project()
	if err := repo.Add(ctx, &second); err != nil {
		t.Fatalf("add second: %v", err)
	}
	if first.ID == uuid.Nil || first.CreatedAt.IsZero() {
		t.Fatalf("store did not assign id and timestamp: %+v", first)
	}

	projects, err := repo.FindAll(ctx)
	if err != nil {
		t.Fatalf("find all: %v", err)
	}
	if len(projects) != 2 || projects[0].ID != second.ID {
		t.Fatalf("expected newest first, got %+v", projects)
	}
	if projects[0].Technologies == nil {
		t.Error("technologies should decode as an empty list")
	}

	changes := models.UpdateProjectRequest{ID: &first.ID, Description: strPtr("updated"), Link: strPtr("https://example.com")}.Changes()
	if err := repo.Update(ctx, first.ID, changes); err != nil {
		t.Fatalf("update: %v", err)
	}
	got, err := repo.FindByID(ctx, first.ID)
	if err != nil {
		t.Fatalf("find by id: %v", err)
	}
	if got.Title != "First" || got.Description != "updated" || got.Link == nil || *got.Link != "https://example.com" {
		t.Errorf("partial update wrote the wrong columns: %+v", got)
	}
	if len(got.Technologies) != 1 || got.Technologies[0] != "Go" {
		t.Errorf("technologies = %v", got.Technologies)
	}

	if err := repo.Update(ctx, uuid.New(), changes); err != nil {
		t.Errorf("updating an unknown id should not fail: %v", err)
	}

	if err := repo.Delete(ctx, first.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := repo.FindByID(ctx, first.ID); !errs.IsNotFound(err) {
		t.Errorf("expected not found after delete, got %v", err)
	}
	if err := repo.Delete(ctx, first.ID); err != nil {
		t.Errorf("deleting twice should not fail: %v", err)
	}
}

func TestExperienceRepo(t *testing.T) {
	ctx := context.Background()
	repo := dbtest.New(t).ExperienceRepo()

	exp := models.CreateExperienceRequest{
		Title:        "Engineer",
		Company:      "Acme",
		StartDate:    "Jan 2022",
		Achievements: []string{"Shipped v2", "Cut latency"},
	}.Experience()
	if err := repo.Add(ctx, &exp); err != nil {
		t.Fatalf("add: %v", err)
	}

	if err := repo.Update(ctx, exp.ID, map[string]any{"end_date": "Present"}); err != nil {
		t.Fatalf("update: %v", err)
	}

	all, err := repo.FindAll(ctx)
	if err != nil {
		t.Fatalf("find all: %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(all))
	}
	if all[0].EndDate != "Present" || all[0].StartDate != "Jan 2022" || len(all[0].Achievements) != 2 {
		t.Errorf("entry = %+v", all[0])
	}

	if err := repo.Delete(ctx, exp.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if all, _ := repo.FindAll(ctx); len(all) != 0 {
		t.Errorf("expected empty list, got %d", len(all))
	}
}

func TestUserRepo(t *testing.T) {
	ctx := context.Background()
	repo := dbtest.New(t).UserRepo()

	user := &models.User{Email: " Admin@Example.com ", Name: "Admin", PasswordHash: "hash"}
	if err := repo.Add(ctx, user); err != nil {
		t.Fatalf("add: %v", err)
	}
	if user.Role != models.RoleAdmin {
		t.Errorf("role = %q", user.Role)
	}

	found, err := repo.FindByEmail(ctx, "ADMIN@example.com")
	if err != nil {
		t.Fatalf("find by email: %v", err)
	}
	if found.ID != user.ID {
		t.Error("found a different user")
	}

	if err := repo.Add(ctx, &models.User{Email: "admin@example.com", PasswordHash: "x"}); !errs.IsAlreadyExists(err) {
		t.Errorf("duplicate email error = %v", err)
	}

	found.PasswordHash = "new-hash"
	if err := repo.UpdateCredentials(ctx, found); err != nil {
		t.Fatalf("update credentials: %v", err)
	}
	again, _ := repo.FindByEmail(ctx, "admin@example.com")
	if again.PasswordHash != "new-hash" {
		t.Errorf("hash = %q", again.PasswordHash)
	}

	if _, err := repo.FindByEmail(ctx, "nobody@example.com"); !errs.IsNotFound(err) {
		t.Errorf("missing user error = %v", err)
	}
}

func TestUserRepoConcurrentAddSameEmail(t *testing.T) {
	ctx := context.Background()
	repo := dbtest.New(t).UserRepo()

	const attempts = 8
	results := make(chan error, attempts)
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			email := "Race@Example.com"
			if i%2 == 0 {
				email = " race@example.com"
			}
			results <- repo.Add(ctx, &models.User{Email: email, PasswordHash: "hash"})
		}(i)
	}
	wg.Wait()
	close(results)

	created := 0
	for err := range results {
		switch {
		case err == nil:
			created++
		case errs.IsAlreadyExists(err):
			if errs.StatusCode(err) != http.StatusConflict {
				t.Errorf("duplicate status = %d, want 409", errs.StatusCode(err))
			}
		default:
			t.Errorf("unexpected error: %v", err)
		}
	}
	if created != 1 {
		t.Errorf("created %d users, want exactly 1", created)
	}
}
