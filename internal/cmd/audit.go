package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/schollz/progressbar/v3"
	"github.com/secretgate/secretgate/internal/gitx"
	"github.com/secretgate/secretgate/internal/scan"
	"github.com/urfave/cli/v3"
)

// NewAuditCmd creates the audit command: a whole-tree advisory scan.
func NewAuditCmd() *cli.Command {
	return &cli.Command{
		Name:  "audit",
		Usage: "Scan every file in HEAD for secrets",
		Description: `Scan all blobs reachable from HEAD with the same patterns and skip
rules as the commit gate, reporting which rule each finding matched.
Useful for checking a repository that predates the hook.`,
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cwd, err := os.Getwd()
			if err != nil {
				return fmt.Errorf("failed to get current directory: %v", err)
			}

			cfg, _, err := buildScanConfig(cwd)
			if err != nil {
				return err
			}

			stager, err := gitx.Open(cwd)
			if err != nil {
				return fmt.Errorf("%w\n  Suggestion: run audit from inside a git repository", err)
			}

			files, err := stager.HeadFiles()
			if err != nil {
				return err
			}
			if len(files) == 0 {
				fmt.Println("Nothing to audit: repository has no commits yet.")
				return nil
			}

			bar := progressbar.NewOptions(len(files),
				progressbar.OptionSetDescription("Scanning tracked files..."),
				progressbar.OptionSetWidth(40),
				progressbar.OptionShowCount(),
				progressbar.OptionShowIts(),
				progressbar.OptionSetRenderBlankState(true),
			)

			var findings []scan.Finding
			for _, file := range files {
				_ = bar.Add(1)
				if cfg.Skip.Skip(file.Path) {
					continue
				}
				content, err := stager.BlobContent(file.Hash)
				if err != nil {
					// Unreadable blobs are skipped like the gate skips
					// unreadable staged content.
					continue
				}
				if f := cfg.Check(file.Path, content); f != nil {
					findings = append(findings, *f)
				}
			}
			_ = bar.Finish()
			fmt.Println()

			if len(findings) == 0 {
				fmt.Println("✅ No secrets found in HEAD tree.")
				return nil
			}

			fmt.Printf("Found %d file(s) with potential secrets:\n\n", len(findings))
			for _, f := range findings {
				fmt.Printf("   %s (%s)\n", f.Path, f.Rule)
			}
			fmt.Println()
			fmt.Println("Rotate any real credentials above; they are already in history.")
			return cli.Exit("", 1)
		},
	}
}
