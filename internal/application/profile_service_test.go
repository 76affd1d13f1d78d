package application

import (
	"context"
	"errors"
	"testing"
	"time"

	repo "github.com/devlinkhq/devlink/internal/domain/repository"
)

func strPtr(s string) *string { return &s }

func newProfileService() (*ProfileService, *fakeUserRepo) {
	users := newFakeUserRepo()
	profiles := newFakeProfileRepo(users)
	return NewProfileService(profiles, users, nil), users
}

func seedUser(t *testing.T, users *fakeUserRepo, email string) Identity {
	t.Helper()
	u, err := newAccountServiceWith(users).Register(context.Background(), "User", email, "secret123")
	if err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return Identity{UserID: u.ID, Name: u.Name, AvatarURL: u.AvatarURL}
}

func TestUpsertCreateRequiresHandle(t *testing.T) {
	svc, users := newProfileService()
	id := seedUser(t, users, "a@x.com")

	_, err := svc.Upsert(context.Background(), id, UpsertProfileInput{Status: strPtr("dev")})
	if !errors.Is(err, ErrHandleRequired) {
		t.Fatalf("want ErrHandleRequired, got %v", err)
	}
}

func TestUpsertCreateThenPartialUpdate(t *testing.T) {
	svc, users := newProfileService()
	id := seedUser(t, users, "a@x.com")
	ctx := context.Background()

	p, err := svc.Upsert(ctx, id, UpsertProfileInput{
		Handle: strPtr("alice"),
		Status: strPtr("developer"),
		Skills: strPtr("Go, Postgres , ,Redis"),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if p.Handle != "alice" || p.Status != "developer" {
		t.Fatalf("unexpected profile: %+v", p)
	}
	if len(p.Skills) != 3 || p.Skills[0] != "Go" || p.Skills[1] != "Postgres" || p.Skills[2] != "Redis" {
		t.Fatalf("skills not split and trimmed: %v", p.Skills)
	}

	// Partial update: only bio is sent; everything else must survive.
	p, err = svc.Upsert(ctx, id, UpsertProfileInput{Bio: strPtr("hello")})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if p.Bio != "hello" {
		t.Fatalf("bio not set: %+v", p)
	}
	if p.Handle != "alice" || p.Status != "developer" || len(p.Skills) != 3 {
		t.Fatalf("absent fields were overwritten: %+v", p)
	}
}

func TestUpsertHandleUniqueness(t *testing.T) {
	svc, users := newProfileService()
	alice := seedUser(t, users, "a@x.com")
	bob := seedUser(t, users, "b@x.com")
	ctx := context.Background()

	if _, err := svc.Upsert(ctx, alice, UpsertProfileInput{Handle: strPtr("alice")}); err != nil {
		t.Fatalf("alice create: %v", err)
	}

	// Another user claiming the handle fails, on create and on update.
	if _, err := svc.Upsert(ctx, bob, UpsertProfileInput{Handle: strPtr("alice")}); !errors.Is(err, ErrHandleExists) {
		t.Fatalf("want ErrHandleExists on create, got %v", err)
	}
	if _, err := svc.Upsert(ctx, bob, UpsertProfileInput{Handle: strPtr("bob")}); err != nil {
		t.Fatalf("bob create: %v", err)
	}
	if _, err := svc.Upsert(ctx, bob, UpsertProfileInput{Handle: strPtr("alice")}); !errors.Is(err, ErrHandleExists) {
		t.Fatalf("want ErrHandleExists on update, got %v", err)
	}

	// Re-submitting one's own handle is fine.
	if _, err := svc.Upsert(ctx, alice, UpsertProfileInput{Handle: strPtr("alice"), Bio: strPtr("hi")}); err != nil {
		t.Fatalf("own handle rejected: %v", err)
	}
}

func TestExperienceAddRemove(t *testing.T) {
	svc, users := newProfileService()
	id := seedUser(t, users, "a@x.com")
	ctx := context.Background()

	if _, err := svc.Upsert(ctx, id, UpsertProfileInput{Handle: strPtr("alice")}); err != nil {
		t.Fatalf("create: %v", err)
	}

	p, err := svc.AddExperience(ctx, id, ExperienceInput{Title: "Engineer", Company: "Acme", From: time.Now().AddDate(-2, 0, 0)})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if len(p.Experience) != 1 || p.Experience[0].ID == "" {
		t.Fatalf("experience not added with id: %+v", p.Experience)
	}

	// Newest entry goes first.
	p, err = svc.AddExperience(ctx, id, ExperienceInput{Title: "Senior Engineer", Company: "Acme", From: time.Now()})
	if err != nil {
		t.Fatalf("add second: %v", err)
	}
	if len(p.Experience) != 2 || p.Experience[0].Title != "Senior Engineer" {
		t.Fatalf("entries not prepended: %+v", p.Experience)
	}

	if _, err := svc.RemoveExperience(ctx, id, "no-such-id"); !errors.Is(err, ErrExperienceNotFound) {
		t.Fatalf("want ErrExperienceNotFound, got %v", err)
	}
	p, err = svc.RemoveExperience(ctx, id, p.Experience[0].ID)
	if err != nil {
		t.Fatalf("remove: %v", err)
	}
	if len(p.Experience) != 1 || p.Experience[0].Title != "Engineer" {
		t.Fatalf("wrong entry removed: %+v", p.Experience)
	}
}

func TestEducationAddRemove(t *testing.T) {
	svc, users := newProfileService()
	id := seedUser(t, users, "a@x.com")
	ctx := context.Background()

	if _, err := svc.Upsert(ctx, id, UpsertProfileInput{Handle: strPtr("alice")}); err != nil {
		t.Fatalf("create: %v", err)
	}

	p, err := svc.AddEducation(ctx, id, EducationInput{School: "MIT", Degree: "BSc", FieldOfStudy: "CS", From: time.Now().AddDate(-6, 0, 0)})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if len(p.Education) != 1 || p.Education[0].ID == "" {
		t.Fatalf("education not added with id: %+v", p.Education)
	}

	if _, err := svc.RemoveEducation(ctx, id, "no-such-id"); !errors.Is(err, ErrEducationNotFound) {
		t.Fatalf("want ErrEducationNotFound, got %v", err)
	}
	p, err = svc.RemoveEducation(ctx, id, p.Education[0].ID)
	if err != nil {
		t.Fatalf("remove: %v", err)
	}
	if len(p.Education) != 0 {
		t.Fatalf("entry not removed: %+v", p.Education)
	}
}

func TestCollectionOpsWithoutProfile(t *testing.T) {
	svc, users := newProfileService()
	id := seedUser(t, users, "a@x.com")

	if _, err := svc.AddExperience(context.Background(), id, ExperienceInput{Title: "Engineer", Company: "Acme", From: time.Now()}); !errors.Is(err, ErrProfileNotFound) {
		t.Fatalf("want ErrProfileNotFound, got %v", err)
	}
}

func TestGetAllEmpty(t *testing.T) {
	svc, _ := newProfileService()
	out, err := svc.GetAll(context.Background())
	if err != nil {
		t.Fatalf("getAll: %v", err)
	}
	if out == nil || len(out) != 0 {
		t.Fatalf("want empty non-nil slice, got %#v", out)
	}
}

func TestDeleteAccountCascade(t *testing.T) {
	svc, users := newProfileService()
	id := seedUser(t, users, "a@x.com")
	ctx := context.Background()

	if _, err := svc.Upsert(ctx, id, UpsertProfileInput{Handle: strPtr("alice")}); err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := svc.DeleteAccount(ctx, id); err != nil {
		t.Fatalf("delete: %v", err)
	}

	if _, err := svc.GetOwn(ctx, id); !errors.Is(err, ErrProfileNotFound) {
		t.Fatalf("profile survived deletion: %v", err)
	}
	if _, err := users.GetByID(ctx, id.UserID); !errors.Is(err, repo.ErrNotFound) {
		t.Fatalf("user survived deletion: %v", err)
	}

	// Second delete reports the missing user.
	if err := svc.DeleteAccount(ctx, id); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("want ErrUserNotFound, got %v", err)
	}
}

func TestDeleteAccountWithoutProfile(t *testing.T) {
	svc, users := newProfileService()
	id := seedUser(t, users, "a@x.com")
	ctx := context.Background()

	// No profile was ever created; the user is still removed.
	if err := svc.DeleteAccount(ctx, id); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := users.GetByID(ctx, id.UserID); !errors.Is(err, repo.ErrNotFound) {
		t.Fatalf("user survived deletion: %v", err)
	}
}
