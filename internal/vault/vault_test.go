package vault

import (
	"testing"

	"github.com/tverren/codevault/internal/db"
	"github.com/tverren/codevault/internal/model"
	"github.com/tverren/codevault/internal/security"
)

func newTestVault(t *testing.T) *Vault {
	t.Helper()
	s, err := db.Open("file:test_" + t.Name() + "?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return New(s)
}

func TestRegisterAndUsernameTaken(t *testing.T) {
	v := newTestVault(t)

	if !v.Register("Alice", security.FromString("pw")) {
		t.Fatalf("expected registration to succeed")
	}
	// Uniqueness is case-insensitive in both directions.
	if !v.UsernameTaken("alice") {
		t.Fatalf("expected lower-case variant to count as taken")
	}
	if !v.UsernameTaken("ALICE") {
		t.Fatalf("expected upper-case variant to count as taken")
	}
	if v.UsernameTaken("bob") {
		t.Fatalf("expected unregistered name to be free")
	}
	if v.Register("alice", security.FromString("pw2")) {
		t.Fatalf("expected duplicate registration to fail")
	}

	user, ok := v.LoggedInUser()
	if !ok {
		t.Fatalf("expected fresh registration to be signed in")
	}
	if user.Username != "Alice" || user.Theme != model.ThemeLight {
		t.Fatalf("unexpected view %+v", user)
	}
}

func TestAuthenticate(t *testing.T) {
	v := newTestVault(t)

	if !v.Register("Alice", security.FromString("correct")) {
		t.Fatalf("registration failed")
	}
	alice, _ := v.LoggedInUser()
	if !v.Logout(alice.ID) {
		t.Fatalf("logout failed")
	}

	// Case-variant username, correct password.
	if !v.Authenticate("ALICE", security.FromString("correct")) {
		t.Fatalf("expected case-insensitive authentication to succeed")
	}
	if _, ok := v.LoggedInUser(); !ok {
		t.Fatalf("expected authentication to open a session")
	}

	// Wrong password leaves the session state untouched.
	if v.Authenticate("Alice", security.FromString("wrong")) {
		t.Fatalf("expected wrong password to fail")
	}
	if current, ok := v.LoggedInUser(); !ok || current.Username != "Alice" {
		t.Fatalf("failed authentication must not change session state, got %+v ok=%v", current, ok)
	}

	// Unknown user fails without error noise.
	if v.Authenticate("nobody", security.FromString("pw")) {
		t.Fatalf("expected unknown user to fail")
	}
}

func TestAuthenticate_SingleActiveSession(t *testing.T) {
	v := newTestVault(t)

	if !v.Register("alice", security.FromString("a")) {
		t.Fatalf("register alice failed")
	}
	if !v.Register("bob", security.FromString("b")) {
		t.Fatalf("register bob failed")
	}
	// Registration of bob displaced alice.
	current, ok := v.LoggedInUser()
	if !ok || current.Username != "bob" {
		t.Fatalf("expected bob active, got %+v", current)
	}

	if !v.Authenticate("alice", security.FromString("a")) {
		t.Fatalf("authenticate alice failed")
	}
	current, ok = v.LoggedInUser()
	if !ok || current.Username != "alice" {
		t.Fatalf("expected alice to displace bob, got %+v", current)
	}
}

func TestUpdateTheme(t *testing.T) {
	v := newTestVault(t)

	v.Register("alice", security.FromString("pw"))
	alice, _ := v.LoggedInUser()

	if !v.UpdateTheme(alice.ID, model.ThemeDark) {
		t.Fatalf("expected theme update to succeed")
	}
	fresh, _ := v.LoggedInUser()
	if fresh.Theme != model.ThemeDark {
		t.Fatalf("expected DARK, got %s", fresh.Theme)
	}
	if v.UpdateTheme(alice.ID, model.Theme("NEON")) {
		t.Fatalf("expected unknown theme to fail")
	}
	if v.UpdateTheme(9999, model.ThemeDark) {
		t.Fatalf("expected missing user to fail")
	}
}

func TestAccountAndCodeLifecycle(t *testing.T) {
	v := newTestVault(t)

	v.Register("alice", security.FromString("pw"))
	alice, _ := v.LoggedInUser()

	account, ok := v.CreateAccount(alice.ID, "GitHub", "TOTP")
	if !ok {
		t.Fatalf("expected account creation to succeed")
	}
	if _, ok := v.CreateAccount(alice.ID, "", "TOTP"); ok {
		t.Fatalf("expected empty name to be rejected")
	}
	if _, ok := v.CreateAccount(9999, "X", "Y"); ok {
		t.Fatalf("expected missing owner to be rejected")
	}

	if _, ok := v.CreateCode(account.ID, "1111"); !ok {
		t.Fatalf("expected code creation to succeed")
	}
	if _, ok := v.CreateCode(account.ID, "2222"); !ok {
		t.Fatalf("expected code creation to succeed")
	}
	codes := v.Codes(account.ID)
	if len(codes) != 2 {
		t.Fatalf("expected 2 codes, got %d", len(codes))
	}

	if !v.UpdateCode(codes[0].ID, "9999") {
		t.Fatalf("expected code update to succeed")
	}
	if v.UpdateCode(123456, "x") {
		t.Fatalf("expected update of missing code to fail")
	}

	cleared := v.ClearCodes(account.ID)
	if len(cleared) != 2 {
		t.Fatalf("expected 2 cleared codes, got %d", len(cleared))
	}
	if got := v.Codes(account.ID); len(got) != 0 {
		t.Fatalf("expected no codes after clear, got %d", len(got))
	}

	if !v.DeleteAccount(account.ID) {
		t.Fatalf("expected account deletion to succeed")
	}
	if v.DeleteAccount(account.ID) {
		t.Fatalf("expected second deletion to fail")
	}
	if got := v.Accounts(alice.ID); len(got) != 0 {
		t.Fatalf("expected no accounts left, got %d", len(got))
	}
}

func TestDeleteUser_RemovesEverything(t *testing.T) {
	v := newTestVault(t)

	v.Register("alice", security.FromString("pw"))
	alice, _ := v.LoggedInUser()
	account, _ := v.CreateAccount(alice.ID, "GitHub", "TOTP")
	v.CreateCode(account.ID, "1111")

	if !v.DeleteUser(alice.ID) {
		t.Fatalf("expected user deletion to succeed")
	}
	if _, ok := v.LoggedInUser(); ok {
		t.Fatalf("expected no active session after deletion")
	}
	if v.UsernameTaken("alice") {
		t.Fatalf("expected username to be free again")
	}
	if got := v.Codes(account.ID); len(got) != 0 {
		t.Fatalf("expected codes to be cascade-deleted, got %d", len(got))
	}
}
