package jwt

import (
	"errors"
	"testing"
	"time"
)

func TestManager_RoundTrip(t *testing.T) {
	m := NewManager("secret", time.Hour, "meetingmind")

	token, err := m.Generate("user-1", "Alice")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	claims, err := m.Validate(token)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if claims.Subject != "user-1" || claims.Name != "Alice" {
		t.Fatalf("unexpected claims %+v", claims)
	}
	if claims.ID == "" {
		t.Fatal("expected token id")
	}
}

func TestManager_Rejects(t *testing.T) {
	m := NewManager("secret", time.Hour, "meetingmind")
	token, _ := m.Generate("user-1", "")

	other := NewManager("different", time.Hour, "meetingmind")
	if _, err := other.Validate(token); err == nil {
		t.Error("expected signature failure")
	}

	wrongIssuer := NewManager("secret", time.Hour, "someone-else")
	if _, err := wrongIssuer.Validate(token); err == nil {
		t.Error("expected issuer failure")
	}

	if _, err := m.Validate("not-a-token"); err == nil {
		t.Error("expected parse failure")
	}

	if _, err := m.Generate("", ""); err == nil {
		t.Error("expected error for empty subject")
	}
}

func TestManager_Expired(t *testing.T) {
	m := NewManager("secret", -time.Minute, "meetingmind")
	token, err := m.Generate("user-1", "")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if _, err := m.Validate(token); !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}
