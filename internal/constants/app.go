package constants

import "path/filepath"

// Application constants - single source of truth for naming throughout the codebase
const (
	// Core application identity
	AppName        = "Secretgate"
	BinaryName     = "secretgate"
	ProjectTagline = "Keep your keys out of your commits"

	// Module and repository
	ModulePath    = "github.com/secretgate/secretgate"
	RepositoryURL = "https://github.com/secretgate/secretgate"

	// Configuration files
	ProjectConfigFileName = ".secretgate.yml"
	GlobalConfigBaseName  = "global"

	// Log files
	DefaultLogFile = "secretgate.log"

	// Version-control layout
	GitDir      = ".git"
	GitHooksDir = "hooks"
	DefaultHook = "pre-commit"
	CIConfigDir = ".github/"

	// Subdirectory of .git holding our event logs, so log cleanup never
	// walks the rest of the metadata directory.
	LogSubDir = BinaryName

	// Marker embedded in the installed hook script so uninstall can tell
	// our hook apart from a hand-written one.
	HookMarker = "# installed by " + BinaryName
)

// HookPath returns the hook file path for a repository root and hook name.
func HookPath(repoRoot, hookName string) string {
	return filepath.Join(repoRoot, GitDir, GitHooksDir, hookName)
}

// LogPath returns the event log path for a repository root.
func LogPath(repoRoot string) string {
	return filepath.Join(repoRoot, GitDir, LogSubDir, DefaultLogFile)
}
