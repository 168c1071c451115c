package model

import "testing"

func TestParseTheme(t *testing.T) {
	for _, valid := range []string{"LIGHT", "DARK", "HIGH_CONTRAST"} {
		theme, err := ParseTheme(valid)
		if err != nil {
			t.Errorf("ParseTheme(%q) failed: %v", valid, err)
		}
		if string(theme) != valid {
			t.Errorf("ParseTheme(%q) = %q", valid, theme)
		}
	}
	for _, invalid := range []string{"", "light", "NEON"} {
		if _, err := ParseTheme(invalid); err == nil {
			t.Errorf("ParseTheme(%q) should fail", invalid)
		}
	}
}

func TestAccountString(t *testing.T) {
	a := Account{Name: "GitHub", Type: "TOTP"}
	if got := a.String(); got != "GitHub (TOTP)" {
		t.Fatalf("String() = %q", got)
	}
}
