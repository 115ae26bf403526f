package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/secretgate/secretgate/internal/constants"
	"github.com/urfave/cli/v3"
)

// NewRulesCmd creates the rules command listing the effective configuration.
func NewRulesCmd() *cli.Command {
	return &cli.Command{
		Name:        "rules",
		Usage:       "List secret patterns and skip rules",
		Description: `List the built-in secret patterns and skip rules, plus any extras from the global and project configuration.`,
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cwd, err := os.Getwd()
			if err != nil {
				return fmt.Errorf("failed to get current directory: %v", err)
			}

			cfg, _, err := buildScanConfig(cwd)
			if err != nil {
				return err
			}

			fmt.Println("Secret patterns:")
			fmt.Println()
			for _, p := range cfg.Rules.Patterns() {
				fmt.Printf("  %s - %s\n", p.Name, p.Expr)
			}
			fmt.Println()

			fmt.Println("Skip rules (never scanned):")
			fmt.Println()
			fmt.Printf("  Extensions: %s\n", strings.Join(cfg.Skip.Extensions, " "))
			fmt.Printf("  Names:      %s\n", strings.Join(cfg.Skip.Names, " "))
			fmt.Printf("  Prefixes:   %s\n", strings.Join(cfg.Skip.Prefixes, " "))
			fmt.Println()

			fmt.Printf("Add patterns or skip rules in %s (project) or the global config.\n", constants.ProjectConfigFileName)
			fmt.Printf("Use '%s scan' to run the gate against staged files.\n", constants.BinaryName)
			return nil
		},
	}
}
