package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNewXDGConfigUsesEnv(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	x := NewXDGConfig()
	if x.GetConfigDir() != filepath.Join(dir, "secretgate") {
		t.Errorf("unexpected config dir %s", x.GetConfigDir())
	}
	if got := x.GetGlobalConfigPath("toml"); got != filepath.Join(dir, "secretgate", "global.toml") {
		t.Errorf("unexpected global config path %s", got)
	}
}

func TestLoadGlobalConfigMissing(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := NewXDGConfig().LoadGlobalConfig()
	if err != nil {
		t.Fatalf("LoadGlobalConfig failed: %v", err)
	}

	defaults := DefaultLogRotationConfig()
	if cfg.LogRotation != defaults {
		t.Errorf("expected default rotation %+v, got %+v", defaults, cfg.LogRotation)
	}
	if len(cfg.Patterns) != 0 {
		t.Errorf("expected no global patterns, got %+v", cfg.Patterns)
	}
}

func TestGlobalConfigRoundTripTOML(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	x := NewXDGConfig()

	in := &GlobalConfig{
		Patterns:    []PatternConfig{{Name: "corp-token", Regex: "corp-[0-9a-f]{40}"}},
		Skip:        SkipConfig{Prefixes: []string{"third_party/"}},
		LogRotation: LogRotationConfig{MaxAge: 7, MaxSize: 5, MaxBackups: 2, Compress: false},
	}
	if err := x.SaveGlobalConfig(in, "toml"); err != nil {
		t.Fatalf("SaveGlobalConfig failed: %v", err)
	}

	out, err := x.LoadGlobalConfig()
	if err != nil {
		t.Fatalf("LoadGlobalConfig failed: %v", err)
	}
	if len(out.Patterns) != 1 || out.Patterns[0].Name != "corp-token" {
		t.Errorf("unexpected patterns: %+v", out.Patterns)
	}
	if out.LogRotation.MaxAge != 7 || out.LogRotation.MaxBackups != 2 {
		t.Errorf("unexpected rotation config: %+v", out.LogRotation)
	}
}

func TestGlobalConfigPrefersTOMLOverJSON(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	x := NewXDGConfig()

	if err := x.SaveGlobalConfig(&GlobalConfig{Patterns: []PatternConfig{{Name: "from-json", Regex: "a+"}}}, "json"); err != nil {
		t.Fatalf("SaveGlobalConfig json failed: %v", err)
	}
	if err := x.SaveGlobalConfig(&GlobalConfig{Patterns: []PatternConfig{{Name: "from-toml", Regex: "b+"}}}, "toml"); err != nil {
		t.Fatalf("SaveGlobalConfig toml failed: %v", err)
	}

	cfg, err := x.LoadGlobalConfig()
	if err != nil {
		t.Fatalf("LoadGlobalConfig failed: %v", err)
	}
	if len(cfg.Patterns) != 1 || cfg.Patterns[0].Name != "from-toml" {
		t.Errorf("expected toml config to win, got %+v", cfg.Patterns)
	}
}

func TestLoadGlobalConfigInvalidRegex(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	x := NewXDGConfig()

	if err := os.MkdirAll(x.GetConfigDir(), 0o750); err != nil {
		t.Fatalf("MkdirAll failed: %v", err)
	}
	bad := "[[patterns]]\nname = \"broken\"\nregex = \"(unclosed\"\n"
	if err := os.WriteFile(x.GetGlobalConfigPath("toml"), []byte(bad), 0o600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	if _, err := x.LoadGlobalConfig(); err == nil {
		t.Fatal("expected error for invalid global pattern regex")
	}
}

func TestSaveGlobalConfigUnsupportedFormat(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	if err := NewXDGConfig().SaveGlobalConfig(&GlobalConfig{}, "xml"); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}
