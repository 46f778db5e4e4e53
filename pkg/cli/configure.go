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

	"github.com/homelab-ops/tsctl/pkg/configurator"
	"github.com/homelab-ops/tsctl/pkg/report"
	"github.com/homelab-ops/tsctl/pkg/system"
)

func configureCmd() *cli.Command {
	return &cli.Command{
		Name:                  "configure",
		EnableShellCompletion: true,
		Usage:                 "Apply the expected time configuration to the host",
		Description: `Set the host timezone, write the NTP server list into the time daemon
configuration, and restart and enable the daemon. Requires root.

# Examples

Apply the configuration:
  sudo tsctl configure

Apply and force an immediate resynchronization:
  sudo tsctl configure --resync

Stop at the first failed step instead of continuing:
  sudo tsctl configure --on-error halt`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "resync",
				Usage: "Force a resynchronization after applying the configuration",
			},
			&cli.StringFlag{
				Name:  "on-error",
				Value: string(configurator.PolicyContinue),
				Usage: "Step failure policy (continue, halt)",
			},
			&cli.BoolFlag{
				Name:  "legacy-append",
				Usage: "Append the NTP line unconditionally instead of upserting it",
			},
			outputFlag,
			formatFlag,
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			exp, err := expectations(cmd)
			if err != nil {
				return err
			}
			if cmd.Bool("legacy-append") {
				exp.LegacyAppend = true
			}

			policy := configurator.ErrorPolicy(cmd.String("on-error"))
			if !policy.IsValid() {
				return fmt.Errorf("unknown failure policy: %q", policy)
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

			c := configurator.New(exp,
				configurator.WithTimeDater(td),
				configurator.WithUnitManager(um),
				configurator.WithPolicy(policy),
			)

			res, err := c.Apply(ctx, cmd.Bool("resync"))
			if err != nil {
				return err
			}

			if out := cmd.String("output"); out != "" {
				w := report.NewFileWriterOrStdout(report.Format(cmd.String("format")), out)
				defer func() {
					if err := w.Close(); err != nil {
						slog.Warn("failed to close output writer", "error", err)
					}
				}()
				if err := w.Serialize(ctx, res); err != nil {
					return fmt.Errorf("failed to serialize configuration result: %w", err)
				}
			} else {
				report.NewConsole(os.Stdout).PrintConfigResult(res)
			}

			if res.Failed > 0 {
				return cli.Exit(fmt.Sprintf("%d configuration step(s) failed", res.Failed), 1)
			}
			return nil
		},
	}
}
