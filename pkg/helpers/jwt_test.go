package helpers

import (
	"errors"
	"testing"
	"time"
)

func TestJWTRoundTrip(t *testing.T) {
	m := NewJWTManager("secret-one", time.Hour)

	token, exp, err := m.Generate("user-1", "Alice", "https://img/a.png")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if time.Until(exp) <= 0 {
		t.Fatal("expiry not in the future")
	}

	claims, err := m.Parse(token)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims.UserID != "user-1" || claims.Name != "Alice" || claims.AvatarURL != "https://img/a.png" {
		t.Fatalf("claims lost in round trip: %+v", claims)
	}
}

func TestJWTWrongSecret(t *testing.T) {
	m := NewJWTManager("secret-one", time.Hour)
	other := NewJWTManager("secret-two", time.Hour)

	token, _, err := m.Generate("user-1", "Alice", "")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if _, err := other.Parse(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("want ErrInvalidToken, got %v", err)
	}
}

func TestJWTZeroTTLExpiresImmediately(t *testing.T) {
	m := NewJWTManager("secret-one", 0)

	token, _, err := m.Generate("user-1", "Alice", "")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if _, err := m.Parse(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("want ErrInvalidToken for expired token, got %v", err)
	}
}

func TestJWTGarbageInput(t *testing.T) {
	m := NewJWTManager("secret-one", time.Hour)
	for _, tok := range []string{"", "garbage", "a.b.c"} {
		if _, err := m.Parse(tok); !errors.Is(err, ErrInvalidToken) {
			t.Fatalf("Parse(%q): want ErrInvalidToken, got %v", tok, err)
		}
	}
}
