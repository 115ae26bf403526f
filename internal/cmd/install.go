package cmd

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/secretgate/secretgate/internal/config"
	"github.com/secretgate/secretgate/internal/constants"
	"github.com/urfave/cli/v3"
)

// NewInstallCmd creates the install command
func NewInstallCmd() *cli.Command {
	return &cli.Command{
		Name:  "install",
		Usage: "Install the scan gate as a git hook",
		Description: `Install the scan gate into this repository's hook directory.
Any pre-existing hook at that path is overwritten; compose other hooks externally.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "hook",
				Value: constants.DefaultHook,
				Usage: "Hook to install into (pre-commit, pre-push, ...)",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cwd, err := os.Getwd()
			if err != nil {
				return fmt.Errorf("failed to get current directory: %v", err)
			}

			execPath, err := os.Executable()
			if err != nil {
				return fmt.Errorf("failed to get executable path: %v", err)
			}

			hookName := cmd.String("hook")
			hookPath, err := InstallHook(cwd, hookName, execPath)
			if err != nil {
				return err
			}

			fmt.Printf("✅ Successfully installed %s hook\n", hookName)
			fmt.Printf("   Hook: %s\n", hookPath)
			fmt.Printf("   Command: %s scan\n", execPath)
			fmt.Println()

			samplePath, created, err := WriteSampleConfig(cwd)
			if err != nil {
				fmt.Printf("⚠️  Could not create sample %s: %v\n", constants.ProjectConfigFileName, err)
			} else if created {
				fmt.Printf("📄 Created sample %s\n", samplePath)
				fmt.Printf("   Edit this file to add your own patterns and skip rules.\n")
			}

			fmt.Println()
			fmt.Println("The gate runs before every commit. Bypass once with 'git commit --no-verify'.")
			return nil
		},
	}
}

// NewUninstallCmd creates the uninstall command
func NewUninstallCmd() *cli.Command {
	return &cli.Command{
		Name:        "uninstall",
		Usage:       "Remove the installed git hook",
		Description: `Remove the hook previously written by 'install'. Hooks not written by us are left untouched.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "hook",
				Value: constants.DefaultHook,
				Usage: "Hook to remove (pre-commit, pre-push, ...)",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cwd, err := os.Getwd()
			if err != nil {
				return fmt.Errorf("failed to get current directory: %v", err)
			}

			hookName := cmd.String("hook")
			hookPath, err := UninstallHook(cwd, hookName)
			if err != nil {
				return err
			}

			fmt.Printf("✅ Successfully removed %s hook\n", hookName)
			fmt.Printf("   Hook: %s\n", hookPath)
			return nil
		},
	}
}

// hookScript renders the hook shim exec-ing the scan command.
func hookScript(execPath string) []byte {
	return []byte(fmt.Sprintf("#!/bin/sh\n%s\nexec %q scan\n", constants.HookMarker, execPath))
}

// InstallHook writes the hook shim into repoRoot's hook directory and marks
// it executable. It fails fast when repoRoot is not a repository root, and
// overwrites any existing hook at that path. Re-running with the same
// binary produces a byte-identical file.
func InstallHook(repoRoot, hookName, execPath string) (string, error) {
	gitDir := filepath.Join(repoRoot, constants.GitDir)
	info, err := os.Stat(gitDir)
	if err != nil || !info.IsDir() {
		return "", fmt.Errorf("not a git repository: %s not found\n  Suggestion: run '%s install' from the repository root", gitDir, constants.BinaryName)
	}

	hooksDir := filepath.Join(gitDir, constants.GitHooksDir)
	if err := os.MkdirAll(hooksDir, 0o750); err != nil {
		return "", fmt.Errorf("failed to create hooks directory: %w", err)
	}

	hookPath := filepath.Join(hooksDir, hookName)
	if err := os.WriteFile(hookPath, hookScript(execPath), 0o755); err != nil { // #nosec G306 - hook must be executable
		return "", fmt.Errorf("failed to write hook %s: %w", hookPath, err)
	}
	return hookPath, nil
}

// UninstallHook removes the installed hook. It refuses to delete a hook
// that does not carry our marker.
func UninstallHook(repoRoot, hookName string) (string, error) {
	hookPath := constants.HookPath(repoRoot, hookName)

	data, err := os.ReadFile(hookPath) // #nosec G304 - path derived from repo root
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("no %s hook is installed", hookName)
		}
		return "", fmt.Errorf("failed to read hook %s: %w", hookPath, err)
	}

	if !bytes.Contains(data, []byte(constants.HookMarker)) {
		return "", fmt.Errorf("%s hook was not installed by %s; refusing to remove it", hookName, constants.BinaryName)
	}

	if err := os.Remove(hookPath); err != nil {
		return "", fmt.Errorf("failed to remove hook %s: %w", hookPath, err)
	}
	return hookPath, nil
}

// WriteSampleConfig creates a commented sample project config when none
// exists. Returns created=false when a config is already present.
func WriteSampleConfig(repoRoot string) (string, bool, error) {
	path := config.ProjectConfigPath(repoRoot)
	if _, err := os.Stat(path); err == nil {
		return path, false, nil
	}

	if err := os.WriteFile(path, []byte(config.SampleProjectConfig), 0o600); err != nil {
		return "", false, err
	}
	return path, true, nil
}
