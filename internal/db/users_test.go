package db

import (
	"errors"
	"testing"

	"github.com/tverren/codevault/internal/model"
)

func mustCreateUser(t *testing.T, s *Session, username string) *model.User {
	t.Helper()
	user, err := NewUserStore(s).Create(username, "hash", "salt")
	if err != nil {
		t.Fatalf("Create(%q) failed: %v", username, err)
	}
	return user
}

func TestUserCreate_BecomesActiveSession(t *testing.T) {
	s := newTestSession(t)
	st := NewUserStore(s)

	alice := mustCreateUser(t, s, "alice")
	if !alice.LoggedIn {
		t.Fatalf("expected newly registered user to be logged in")
	}
	if alice.Theme != model.ThemeLight {
		t.Fatalf("expected default theme LIGHT, got %s", alice.Theme)
	}

	bob := mustCreateUser(t, s, "bob")
	if !bob.LoggedIn {
		t.Fatalf("expected newest registration to hold the session")
	}

	active, err := st.LoggedIn()
	if err != nil {
		t.Fatalf("LoggedIn failed: %v", err)
	}
	if active == nil || active.Username != "bob" {
		t.Fatalf("expected bob to be the single active user, got %+v", active)
	}

	// Exactly one user may hold the flag.
	users, err := st.All()
	if err != nil {
		t.Fatalf("All failed: %v", err)
	}
	count := 0
	for _, u := range users {
		if u.LoggedIn {
			count++
		}
	}
	if count != 1 {
		t.Fatalf("expected exactly one logged-in user, got %d", count)
	}
}

func TestUserCreate_DuplicateCaseInsensitive(t *testing.T) {
	s := newTestSession(t)
	st := NewUserStore(s)

	mustCreateUser(t, s, "Alice")
	if _, err := st.Create("alice", "h", "s"); !errors.Is(err, ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate for case-variant username, got: %v", err)
	}
	if _, err := st.Create("ALICE", "h", "s"); !errors.Is(err, ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate for upper-case variant, got: %v", err)
	}
}

func TestUserCreate_EmptyUsernameRejected(t *testing.T) {
	s := newTestSession(t)

	if _, err := NewUserStore(s).Create("", "h", "s"); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation for empty username, got: %v", err)
	}
}

func TestUserByUsername_CaseInsensitiveAndAbsent(t *testing.T) {
	s := newTestSession(t)
	st := NewUserStore(s)

	mustCreateUser(t, s, "Carol")
	user, err := st.ByUsername("cArOl")
	if err != nil {
		t.Fatalf("ByUsername failed: %v", err)
	}
	if user == nil || user.Username != "Carol" {
		t.Fatalf("expected case-insensitive lookup to find Carol, got %+v", user)
	}

	missing, err := st.ByUsername("nobody")
	if err != nil {
		t.Fatalf("absent lookup should not error, got: %v", err)
	}
	if missing != nil {
		t.Fatalf("expected nil for absent user, got %+v", missing)
	}
}

func TestSetLoggedIn_SingleActiveSession(t *testing.T) {
	s := newTestSession(t)
	st := NewUserStore(s)

	alice := mustCreateUser(t, s, "alice")
	bob := mustCreateUser(t, s, "bob")

	if err := st.SetLoggedIn(alice.ID); err != nil {
		t.Fatalf("SetLoggedIn failed: %v", err)
	}
	active, err := st.LoggedIn()
	if err != nil {
		t.Fatalf("LoggedIn failed: %v", err)
	}
	if active == nil || active.ID != alice.ID {
		t.Fatalf("expected alice active, got %+v", active)
	}

	fresh, err := st.ByID(bob.ID)
	if err != nil {
		t.Fatalf("ByID failed: %v", err)
	}
	if fresh.LoggedIn {
		t.Fatalf("expected bob to be forced out")
	}

	if err := st.SetLoggedIn(9999); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for missing user, got: %v", err)
	}
}

func TestLogout(t *testing.T) {
	s := newTestSession(t)
	st := NewUserStore(s)

	alice := mustCreateUser(t, s, "alice")
	if err := st.Logout(alice.ID); err != nil {
		t.Fatalf("Logout failed: %v", err)
	}
	active, err := st.LoggedIn()
	if err != nil {
		t.Fatalf("LoggedIn failed: %v", err)
	}
	if active != nil {
		t.Fatalf("expected no active user after logout, got %+v", active)
	}

	if err := st.Logout(9999); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for missing user, got: %v", err)
	}
}

func TestUpdateTheme(t *testing.T) {
	s := newTestSession(t)
	st := NewUserStore(s)

	alice := mustCreateUser(t, s, "alice")
	if err := st.UpdateTheme(alice.ID, model.ThemeHighContrast); err != nil {
		t.Fatalf("UpdateTheme failed: %v", err)
	}
	fresh, err := st.ByID(alice.ID)
	if err != nil {
		t.Fatalf("ByID failed: %v", err)
	}
	if fresh.Theme != model.ThemeHighContrast {
		t.Fatalf("expected HIGH_CONTRAST, got %s", fresh.Theme)
	}

	if err := st.UpdateTheme(alice.ID, model.Theme("NEON")); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown theme, got: %v", err)
	}
	if err := st.UpdateTheme(9999, model.ThemeDark); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for missing user, got: %v", err)
	}
}

func TestUserDelete_CascadesToAccountsAndCodes(t *testing.T) {
	s := newTestSession(t)
	users := NewUserStore(s)
	accounts := NewAccountStore(s)
	codes := NewCodeStore(s)

	alice := mustCreateUser(t, s, "alice")
	account, err := accounts.Create(alice.ID, "GitHub", "TOTP")
	if err != nil {
		t.Fatalf("account Create failed: %v", err)
	}
	if _, err := codes.Create(account.ID, "12345678"); err != nil {
		t.Fatalf("code Create failed: %v", err)
	}

	if err := users.Delete(alice.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	gone, err := accounts.ByID(account.ID)
	if err != nil {
		t.Fatalf("account lookup failed: %v", err)
	}
	if gone != nil {
		t.Fatalf("expected account to be cascade-deleted, got %+v", gone)
	}
	remaining, err := codes.ForAccount(account.ID)
	if err != nil {
		t.Fatalf("code lookup failed: %v", err)
	}
	if len(remaining) != 0 {
		t.Fatalf("expected codes to be cascade-deleted, got %d", len(remaining))
	}

	if err := users.Delete(alice.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second delete, got: %v", err)
	}
}
