package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/secretgate/secretgate/internal/constants"
)

func repoDir(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, constants.GitDir), 0o750); err != nil {
		t.Fatalf("MkdirAll failed: %v", err)
	}
	return dir
}

func TestInstallHookRequiresRepository(t *testing.T) {
	_, err := InstallHook(t.TempDir(), constants.DefaultHook, "/usr/local/bin/secretgate")
	if err == nil {
		t.Fatal("expected error outside a repository")
	}
	if !strings.Contains(err.Error(), "not a git repository") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestInstallHookWritesExecutableShim(t *testing.T) {
	dir := repoDir(t)

	hookPath, err := InstallHook(dir, constants.DefaultHook, "/usr/local/bin/secretgate")
	if err != nil {
		t.Fatalf("InstallHook failed: %v", err)
	}

	info, err := os.Stat(hookPath)
	if err != nil {
		t.Fatalf("hook file missing: %v", err)
	}
	if info.Mode().Perm()&0o111 == 0 {
		t.Errorf("expected executable hook, got mode %v", info.Mode())
	}

	data, err := os.ReadFile(hookPath)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	content := string(data)
	if !strings.HasPrefix(content, "#!/bin/sh\n") {
		t.Errorf("expected sh shebang, got:\n%s", content)
	}
	if !strings.Contains(content, constants.HookMarker) {
		t.Errorf("expected marker in hook, got:\n%s", content)
	}
	if !strings.Contains(content, `"/usr/local/bin/secretgate" scan`) {
		t.Errorf("expected scan invocation, got:\n%s", content)
	}
}

func TestInstallHookIdempotent(t *testing.T) {
	dir := repoDir(t)

	hookPath, err := InstallHook(dir, constants.DefaultHook, "/usr/local/bin/secretgate")
	if err != nil {
		t.Fatalf("first InstallHook failed: %v", err)
	}
	first, err := os.ReadFile(hookPath)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}

	if _, err := InstallHook(dir, constants.DefaultHook, "/usr/local/bin/secretgate"); err != nil {
		t.Fatalf("second InstallHook failed: %v", err)
	}
	second, err := os.ReadFile(hookPath)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}

	if !bytes.Equal(first, second) {
		t.Error("expected repeated install to produce a byte-identical hook")
	}
}

func TestInstallHookOverwritesExisting(t *testing.T) {
	dir := repoDir(t)
	hooksDir := filepath.Join(dir, constants.GitDir, constants.GitHooksDir)
	if err := os.MkdirAll(hooksDir, 0o750); err != nil {
		t.Fatalf("MkdirAll failed: %v", err)
	}
	prior := filepath.Join(hooksDir, constants.DefaultHook)
	if err := os.WriteFile(prior, []byte("#!/bin/sh\necho old hook\n"), 0o755); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	hookPath, err := InstallHook(dir, constants.DefaultHook, "/usr/local/bin/secretgate")
	if err != nil {
		t.Fatalf("InstallHook failed: %v", err)
	}

	data, err := os.ReadFile(hookPath)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if strings.Contains(string(data), "old hook") {
		t.Error("expected prior hook to be overwritten")
	}
}

func TestUninstallHook(t *testing.T) {
	dir := repoDir(t)
	hookPath, err := InstallHook(dir, constants.DefaultHook, "/usr/local/bin/secretgate")
	if err != nil {
		t.Fatalf("InstallHook failed: %v", err)
	}

	if _, err := UninstallHook(dir, constants.DefaultHook); err != nil {
		t.Fatalf("UninstallHook failed: %v", err)
	}
	if _, err := os.Stat(hookPath); !os.IsNotExist(err) {
		t.Error("expected hook to be removed")
	}
}

func TestUninstallHookMissing(t *testing.T) {
	dir := repoDir(t)

	if _, err := UninstallHook(dir, constants.DefaultHook); err == nil {
		t.Fatal("expected error when no hook is installed")
	}
}

func TestUninstallHookRefusesForeignHook(t *testing.T) {
	dir := repoDir(t)
	hooksDir := filepath.Join(dir, constants.GitDir, constants.GitHooksDir)
	if err := os.MkdirAll(hooksDir, 0o750); err != nil {
		t.Fatalf("MkdirAll failed: %v", err)
	}
	foreign := filepath.Join(hooksDir, constants.DefaultHook)
	if err := os.WriteFile(foreign, []byte("#!/bin/sh\nmake lint\n"), 0o755); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	_, err := UninstallHook(dir, constants.DefaultHook)
	if err == nil {
		t.Fatal("expected refusal to remove a foreign hook")
	}
	if !strings.Contains(err.Error(), "refusing") {
		t.Errorf("unexpected error: %v", err)
	}
	if _, statErr := os.Stat(foreign); statErr != nil {
		t.Error("expected foreign hook to be preserved")
	}
}

func TestWriteSampleConfig(t *testing.T) {
	dir := repoDir(t)

	path, created, err := WriteSampleConfig(dir)
	if err != nil {
		t.Fatalf("WriteSampleConfig failed: %v", err)
	}
	if !created {
		t.Fatal("expected sample config to be created")
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("sample config missing: %v", err)
	}

	// A second call must not clobber an existing config.
	if err := os.WriteFile(path, []byte("patterns: []\n"), 0o600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	_, created, err = WriteSampleConfig(dir)
	if err != nil {
		t.Fatalf("WriteSampleConfig failed: %v", err)
	}
	if created {
		t.Error("expected existing config to be left alone")
	}
	data, _ := os.ReadFile(path)
	if string(data) != "patterns: []\n" {
		t.Error("expected existing config content to be preserved")
	}
}
