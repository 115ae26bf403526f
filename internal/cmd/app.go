package cmd

import (
	"fmt"

	"github.com/secretgate/secretgate/internal/config"
	"github.com/secretgate/secretgate/internal/constants"
	"github.com/secretgate/secretgate/internal/scan"
	"github.com/urfave/cli/v3"
)

// NewApp assembles the root command.
func NewApp(versionInfo VersionInfo) *cli.Command {
	return &cli.Command{
		Name:        constants.BinaryName,
		Usage:       "Pre-commit guard that blocks staged secrets",
		Description: constants.AppName + ` scans the staged content of files about to be committed and blocks the commit when anything looks like a leaked credential.`,
		Commands: []*cli.Command{
			NewInstallCmd(),
			NewUninstallCmd(),
			NewScanCmd(),
			NewAuditCmd(),
			NewRulesCmd(),
			NewVersionCmd(versionInfo),
		},
	}
}

// buildScanConfig assembles the effective scan configuration for a
// repository: built-ins first, then global extras, then project extras.
func buildScanConfig(repoRoot string) (scan.Config, *config.GlobalConfig, error) {
	global, err := config.NewXDGConfig().LoadGlobalConfig()
	if err != nil {
		return scan.Config{}, nil, err
	}

	project, err := config.LoadProjectConfig(repoRoot)
	if err != nil {
		return scan.Config{}, nil, err
	}

	patterns := scan.BuiltinPatterns()
	patterns = global.ExtendPatterns(patterns)
	patterns = project.ExtendPatterns(patterns)

	skip := scan.DefaultSkipRules()
	skip = global.ExtendSkip(skip)
	skip = project.ExtendSkip(skip)

	rules, err := scan.NewRuleSet(patterns)
	if err != nil {
		return scan.Config{}, nil, fmt.Errorf("failed to compile pattern set: %w", err)
	}

	return scan.Config{Rules: rules, Skip: skip}, global, nil
}
