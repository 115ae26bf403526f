package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"

	"github.com/secretgate/secretgate/internal/constants"
	"github.com/secretgate/secretgate/internal/scan"
	yaml "gopkg.in/yaml.v3"
)

// PatternConfig is one user-supplied secret pattern.
type PatternConfig struct {
	Name  string `yaml:"name" json:"name" toml:"name"`
	Regex string `yaml:"regex" json:"regex" toml:"regex"`
}

// SkipConfig appends entries to the built-in skip rules.
type SkipConfig struct {
	Extensions []string `yaml:"extensions,omitempty" json:"extensions,omitempty" toml:"extensions,omitempty"`
	Names      []string `yaml:"names,omitempty" json:"names,omitempty" toml:"names,omitempty"`
	Prefixes   []string `yaml:"prefixes,omitempty" json:"prefixes,omitempty" toml:"prefixes,omitempty"`
}

// ProjectConfig is the per-repository configuration (.secretgate.yml).
// Config only widens the net: built-in patterns and skip rules are always
// applied, and these entries are appended to them.
type ProjectConfig struct {
	Patterns []PatternConfig `yaml:"patterns,omitempty"`
	Skip     SkipConfig      `yaml:"skip,omitempty"`
}

// ProjectConfigPath returns the project config path for a repository root.
func ProjectConfigPath(repoRoot string) string {
	return filepath.Join(repoRoot, constants.ProjectConfigFileName)
}

// LoadProjectConfig loads .secretgate.yml from the repository root. A
// missing file is not an error and yields an empty config.
func LoadProjectConfig(repoRoot string) (*ProjectConfig, error) {
	path := ProjectConfigPath(repoRoot)

	data, err := os.ReadFile(path) // #nosec G304 - path derived from repo root
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &ProjectConfig{}, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var cfg ProjectConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if err := validatePatterns(cfg.Patterns); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &cfg, nil
}

func validatePatterns(patterns []PatternConfig) error {
	for _, p := range patterns {
		if p.Name == "" {
			return fmt.Errorf("pattern with empty name")
		}
		if _, err := regexp.Compile(p.Regex); err != nil {
			return fmt.Errorf("invalid regex for pattern %q: %w", p.Name, err)
		}
	}
	return nil
}

// ExtendPatterns appends the configured patterns to base.
func (c *ProjectConfig) ExtendPatterns(base []scan.Pattern) []scan.Pattern {
	return appendPatterns(base, c.Patterns)
}

// ExtendSkip appends the configured skip entries to base.
func (c *ProjectConfig) ExtendSkip(base scan.SkipRules) scan.SkipRules {
	return appendSkip(base, c.Skip)
}

func appendPatterns(base []scan.Pattern, extra []PatternConfig) []scan.Pattern {
	for _, p := range extra {
		base = append(base, scan.Pattern{Name: p.Name, Expr: p.Regex})
	}
	return base
}

func appendSkip(base scan.SkipRules, extra SkipConfig) scan.SkipRules {
	base.Extensions = append(base.Extensions, extra.Extensions...)
	base.Names = append(base.Names, extra.Names...)
	base.Prefixes = append(base.Prefixes, extra.Prefixes...)
	return base
}

// ExtendPatterns appends the globally configured patterns to base.
func (g *GlobalConfig) ExtendPatterns(base []scan.Pattern) []scan.Pattern {
	return appendPatterns(base, g.Patterns)
}

// ExtendSkip appends the globally configured skip entries to base.
func (g *GlobalConfig) ExtendSkip(base scan.SkipRules) scan.SkipRules {
	return appendSkip(base, g.Skip)
}

// SampleProjectConfig is written by the installer when no project config
// exists yet.
const SampleProjectConfig = `# secretgate project configuration
# Entries here are appended to the built-in patterns and skip rules;
# built-ins cannot be removed.

# patterns:
#   - name: internal-service-token
#     regex: "svc-[A-Za-z0-9]{32}"

# skip:
#   extensions: [".lock"]
#   names: ["testdata-fixtures.txt"]
#   prefixes: ["vendor/"]
`
