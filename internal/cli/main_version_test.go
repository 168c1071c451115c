package cli

import (
	"runtime/debug"
	"testing"
)

func TestResolveBuildVersion_PrefersBuildInfo(t *testing.T) {
	info := &debug.BuildInfo{}
	info.Main.Version = "v1.2.3"
	info.Settings = []debug.BuildSetting{
		{Key: "vcs.revision", Value: "abc123"},
		{Key: "vcs.time", Value: "2025-06-01T00:00:00Z"},
	}

	v, c, d := resolveBuildVersion(info)
	if v != "v1.2.3" {
		t.Errorf("version = %q, want v1.2.3", v)
	}
	if c != "abc123" {
		t.Errorf("commit = %q, want abc123", c)
	}
	if d != "2025-06-01T00:00:00Z" {
		t.Errorf("date = %q", d)
	}
}

func TestResolveBuildVersion_IgnoresDevelMarker(t *testing.T) {
	info := &debug.BuildInfo{}
	info.Main.Version = "(devel)"

	v, _, _ := resolveBuildVersion(info)
	if v != version {
		t.Errorf("version = %q, want linker default %q", v, version)
	}
}

func TestNewRootCmd_RegistersSubcommands(t *testing.T) {
	cmd := NewRootCmd()
	want := []string{"register", "login", "logout", "whoami", "theme", "account", "code", "audit", "backup", "restore", "db-maintain"}
	have := map[string]bool{}
	for _, sub := range cmd.Commands() {
		have[sub.Name()] = true
	}
	for _, name := range want {
		if !have[name] {
			t.Errorf("expected subcommand %q to be registered", name)
		}
	}
}
