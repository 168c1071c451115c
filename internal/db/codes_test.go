package db

import (
	"errors"
	"testing"

	"github.com/tverren/codevault/internal/model"
)

func newTestAccount(t *testing.T, s *Session) *model.Account {
	t.Helper()
	alice := mustCreateUser(t, s, "alice")
	account, err := NewAccountStore(s).Create(alice.ID, "GitHub", "TOTP")
	if err != nil {
		t.Fatalf("account Create failed: %v", err)
	}
	return account
}

func TestCodeCreate(t *testing.T) {
	s := newTestSession(t)
	codes := NewCodeStore(s)
	account := newTestAccount(t, s)

	code, err := codes.Create(account.ID, "12345678")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if code.ID == 0 || code.AccountID != account.ID || code.Value != "12345678" {
		t.Fatalf("unexpected code %+v", code)
	}

	if _, err := codes.Create(9999, "12345678"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for missing account, got: %v", err)
	}
	if _, err := codes.Create(account.ID, ""); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation for empty code, got: %v", err)
	}
}

func TestCodeForAccount_PreservesInsertionOrder(t *testing.T) {
	s := newTestSession(t)
	codes := NewCodeStore(s)
	account := newTestAccount(t, s)

	want := []string{"1111", "2222", "3333"}
	for _, v := range want {
		if _, err := codes.Create(account.ID, v); err != nil {
			t.Fatalf("Create(%q) failed: %v", v, err)
		}
	}

	got, err := codes.ForAccount(account.ID)
	if err != nil {
		t.Fatalf("ForAccount failed: %v", err)
	}
	if len(got) != len(want) {
		t.Fatalf("expected %d codes, got %d", len(want), len(got))
	}
	for i, c := range got {
		if c.Value != want[i] {
			t.Errorf("code %d: expected %q, got %q", i, want[i], c.Value)
		}
	}
}

func TestCodeUpdateAndDelete(t *testing.T) {
	s := newTestSession(t)
	codes := NewCodeStore(s)
	account := newTestAccount(t, s)

	code, err := codes.Create(account.ID, "before")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if err := codes.Update(code.ID, "after"); err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	fresh, err := codes.ByID(code.ID)
	if err != nil {
		t.Fatalf("ByID failed: %v", err)
	}
	if fresh.Value != "after" {
		t.Fatalf("expected updated value, got %q", fresh.Value)
	}
	if err := codes.Update(code.ID, ""); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation for empty value, got: %v", err)
	}
	if err := codes.Update(9999, "x"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for missing code, got: %v", err)
	}

	if err := codes.Delete(code.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if err := codes.Delete(code.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second delete, got: %v", err)
	}
}

func TestClearForAccount_ReturnsClearedCodes(t *testing.T) {
	s := newTestSession(t)
	codes := NewCodeStore(s)
	account := newTestAccount(t, s)

	for _, v := range []string{"1111", "2222"} {
		if _, err := codes.Create(account.ID, v); err != nil {
			t.Fatalf("Create failed: %v", err)
		}
	}

	cleared, err := codes.ClearForAccount(account.ID)
	if err != nil {
		t.Fatalf("ClearForAccount failed: %v", err)
	}
	if len(cleared) != 2 {
		t.Fatalf("expected 2 cleared codes, got %d", len(cleared))
	}
	remaining, err := codes.ForAccount(account.ID)
	if err != nil {
		t.Fatalf("ForAccount failed: %v", err)
	}
	if len(remaining) != 0 {
		t.Fatalf("expected no codes left, got %d", len(remaining))
	}

	// Clearing an account with nothing stored returns an empty slice.
	again, err := codes.ClearForAccount(account.ID)
	if err != nil {
		t.Fatalf("empty ClearForAccount failed: %v", err)
	}
	if len(again) != 0 {
		t.Fatalf("expected empty slice, got %d", len(again))
	}
}
