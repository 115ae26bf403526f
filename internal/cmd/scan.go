package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/secretgate/secretgate/internal/config"
	"github.com/secretgate/secretgate/internal/constants"
	"github.com/secretgate/secretgate/internal/gitx"
	"github.com/secretgate/secretgate/internal/scan"
	"github.com/urfave/cli/v3"
)

// NewScanCmd creates the scan command: the gate invoked by the hook.
func NewScanCmd() *cli.Command {
	return &cli.Command{
		Name:  "scan",
		Usage: "Scan staged files for secrets (the commit gate)",
		Description: `Scan the staged content of every file about to be committed.
Exits 0 when clean, 1 when anything matches a secret pattern. Takes no
arguments; behavior is driven entirely by the repository's staging area.`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "log",
				Aliases: []string{"l"},
				Value:   false,
				Usage:   "Enable detailed event logging to " + constants.LogPath("."),
			},
			&cli.StringFlag{
				Name:  "log-format",
				Value: config.LoggingFormatJSONL,
				Usage: "Log output format: jsonl or pretty (default jsonl)",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cwd, err := os.Getwd()
			if err != nil {
				return fmt.Errorf("failed to get current directory: %v", err)
			}

			cfg, global, err := buildScanConfig(cwd)
			if err != nil {
				return err
			}

			stager, err := gitx.Open(cwd)
			if err != nil {
				return fmt.Errorf("%w\n  Suggestion: the gate must run inside a git repository", err)
			}

			var opts []scan.Option
			logEnabled := cmd.Bool("log")
			logFormat := cmd.String("log-format")
			if logEnabled && !config.IsValidLoggingFormat(logFormat) {
				return fmt.Errorf("invalid --log-format '%s'. Valid: jsonl, pretty", logFormat)
			}
			if logEnabled {
				logPath := constants.LogPath(cwd)
				if writer := config.SetupLogRotation(logPath, global.LogRotation); writer != nil {
					defer func() { _ = writer.Close() }()
					opts = append(opts, scan.WithLogger(config.NewEventLogger(writer, logFormat)))
					if err := config.CleanupOldLogs(filepath.Dir(logPath), global.LogRotation.MaxAge); err != nil {
						fmt.Printf("Warning: Failed to cleanup old logs: %v\n", err)
					}
				}
			}

			result, err := scan.New(cfg, stager, opts...).Scan()
			if err != nil {
				return err
			}

			if result.Blocked() {
				scan.WriteReport(os.Stdout, result)
				return cli.Exit("", 1)
			}

			// Clean runs stay silent: the hook should be invisible when
			// there is nothing to report.
			return nil
		},
	}
}
