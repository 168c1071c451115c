package config

import (
	"testing"

	"github.com/spf13/cobra"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cmd := &cobra.Command{Use: "test"}
	defaults := map[string]any{
		"database.path": "./codevault.db",
		"language":      "en",
		"debug":         false,
	}

	c, err := LoadConfig[Config](cmd, defaults, nil)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if c.Database.Path != "./codevault.db" {
		t.Errorf("database.path = %q", c.Database.Path)
	}
	if c.Language != "en" {
		t.Errorf("language = %q", c.Language)
	}
	if c.Debug {
		t.Errorf("debug should default to false")
	}
}

func TestLoadConfig_EnvOverridesDefaults(t *testing.T) {
	t.Setenv("CODEVAULT_LANGUAGE", "de")
	t.Setenv("CODEVAULT_DATABASE_PATH", "/tmp/vault.db")

	cmd := &cobra.Command{Use: "test"}
	defaults := map[string]any{
		"database.path": "./codevault.db",
		"language":      "en",
	}

	c, err := LoadConfig[Config](cmd, defaults, nil)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if c.Language != "de" {
		t.Errorf("language = %q, want de", c.Language)
	}
	if c.Database.Path != "/tmp/vault.db" {
		t.Errorf("database.path = %q, want /tmp/vault.db", c.Database.Path)
	}
}

func TestLoadConfig_FlagsOverrideEnv(t *testing.T) {
	t.Setenv("CODEVAULT_LANGUAGE", "de")

	cmd := &cobra.Command{Use: "test"}
	cmd.Flags().String("language", "en", "")
	if err := cmd.Flags().Set("language", "en"); err != nil {
		t.Fatalf("flag set failed: %v", err)
	}

	c, err := LoadConfig[Config](cmd, map[string]any{"language": "xx"}, nil)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if c.Language != "en" {
		t.Errorf("language = %q, want flag value en", c.Language)
	}
}
