/*
Copyright © 2025 tsctl authors
SPDX-License-Identifier: Apache-2.0
*/

package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/homelab-ops/tsctl/pkg/report"
	"github.com/homelab-ops/tsctl/pkg/system"
)

func statusCmd() *cli.Command {
	return &cli.Command{
		Name:                  "status",
		EnableShellCompletion: true,
		Usage:                 "Show the host's time synchronization state",
		Description: `Dump the raw synchronization state: timezone, NTP service flag,
synchronization flag, and the daemon's run and boot states. Fields that
cannot be read are reported as unknown rather than failing the command.

# Examples

Human-readable status:
  tsctl status

Machine-readable status:
  tsctl status --output status.json`,
		Flags: []cli.Flag{
			outputFlag,
			formatFlag,
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			exp, err := expectations(cmd)
			if err != nil {
				return err
			}

			td, err := system.NewTimeDate()
			if err != nil {
				return fmt.Errorf("failed to connect to timedated: %w", err)
			}
			defer td.Close()

			um, err := system.NewSystemd(ctx)
			if err != nil {
				return fmt.Errorf("failed to connect to systemd: %w", err)
			}
			defer um.Close()

			st := system.ReadStatus(ctx, td, um, exp.DaemonUnit)

			if out := cmd.String("output"); out != "" {
				w := report.NewFileWriterOrStdout(report.Format(cmd.String("format")), out)
				defer func() {
					if err := w.Close(); err != nil {
						slog.Warn("failed to close output writer", "error", err)
					}
				}()
				return w.Serialize(ctx, st)
			}

			report.NewConsole(os.Stdout).PrintStatus(st)
			return nil
		},
	}
}
