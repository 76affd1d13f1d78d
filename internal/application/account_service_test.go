package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/devlinkhq/devlink/pkg/helpers"
)

func newAccountService() (*AccountService, *fakeUserRepo) {
	users := newFakeUserRepo()
	return newAccountServiceWith(users), users
}

func newAccountServiceWith(users *fakeUserRepo) *AccountService {
	return NewAccountService(users, helpers.NewJWTManager("test-secret", time.Hour), nil)
}

func TestRegisterHashesPassword(t *testing.T) {
	svc, _ := newAccountService()
	ctx := context.Background()

	u, err := svc.Register(ctx, "Alice", "a@x.com", "secret123")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if u.Password == "secret123" {
		t.Fatal("stored password equals plaintext")
	}
	if !helpers.CompareHashAndPassword(u.Password, "secret123") {
		t.Fatal("stored hash does not verify against plaintext")
	}
	if u.AvatarURL == "" {
		t.Fatal("avatar not derived from email")
	}
}

func TestRegisterNormalizesEmail(t *testing.T) {
	svc, _ := newAccountService()
	ctx := context.Background()

	u, err := svc.Register(ctx, "Alice", "  Alice@X.Com ", "secret123")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if u.Email != "alice@x.com" {
		t.Fatalf("email not normalized, got %q", u.Email)
	}

	// Same email in different case must collide.
	if _, err := svc.Register(ctx, "Alice2", "ALICE@x.com", "secret456"); !errors.Is(err, ErrEmailExists) {
		t.Fatalf("want ErrEmailExists, got %v", err)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, users := newAccountService()
	ctx := context.Background()

	if _, err := svc.Register(ctx, "Alice", "a@x.com", "secret123"); err != nil {
		t.Fatalf("first register: %v", err)
	}
	if _, err := svc.Register(ctx, "Bob", "a@x.com", "other456"); !errors.Is(err, ErrEmailExists) {
		t.Fatalf("want ErrEmailExists, got %v", err)
	}
	if len(users.users) != 1 {
		t.Fatalf("second user was created, have %d users", len(users.users))
	}
}

func TestRegisterSameEmailSameAvatar(t *testing.T) {
	svc, _ := newAccountService()
	ctx := context.Background()

	u1, err := svc.Register(ctx, "Alice", "a@x.com", "secret123")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if got := helpers.GravatarURL("a@x.com", 200); u1.AvatarURL != got {
		t.Fatalf("avatar not deterministic: %q vs %q", u1.AvatarURL, got)
	}
}

func TestLoginFailureOrdering(t *testing.T) {
	svc, _ := newAccountService()
	ctx := context.Background()

	if _, err := svc.Register(ctx, "Alice", "a@x.com", "secret123"); err != nil {
		t.Fatalf("register: %v", err)
	}

	// Unknown email: existence check fires first.
	if _, _, _, err := svc.Login(ctx, "nobody@x.com", "secret123"); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("want ErrUserNotFound, got %v", err)
	}

	// Known email + wrong password: never ErrUserNotFound.
	if _, _, _, err := svc.Login(ctx, "a@x.com", "wrongpass"); !errors.Is(err, ErrPasswordIncorrect) {
		t.Fatalf("want ErrPasswordIncorrect, got %v", err)
	}
}

func TestLoginTokenRoundTrip(t *testing.T) {
	svc, _ := newAccountService()
	ctx := context.Background()

	u, err := svc.Register(ctx, "Alice", "a@x.com", "secret123")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	_, token, exp, err := svc.Login(ctx, "a@x.com", "secret123")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if time.Until(exp) <= 0 {
		t.Fatal("token already expired")
	}

	claims, err := svc.JWT.Parse(token)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims.UserID != u.ID || claims.Name != u.Name || claims.AvatarURL != u.AvatarURL {
		t.Fatalf("claims do not round-trip: %+v", claims)
	}
}

func TestCurrent(t *testing.T) {
	svc, _ := newAccountService()
	ctx := context.Background()

	u, err := svc.Register(ctx, "Alice", "a@x.com", "secret123")
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	got, err := svc.Current(ctx, Identity{UserID: u.ID})
	if err != nil {
		t.Fatalf("current: %v", err)
	}
	if got.ID != u.ID || got.Email != "a@x.com" {
		t.Fatalf("unexpected current user: %+v", got)
	}

	if _, err := svc.Current(ctx, Identity{UserID: "missing"}); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("want ErrUserNotFound, got %v", err)
	}
}
