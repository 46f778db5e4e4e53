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
	"time"

	"github.com/urfave/cli/v3"

	"github.com/homelab-ops/tsctl/pkg/defaults"
	"github.com/homelab-ops/tsctl/pkg/probe"
	"github.com/homelab-ops/tsctl/pkg/report"
	"github.com/homelab-ops/tsctl/pkg/system"
	"github.com/homelab-ops/tsctl/pkg/validator"
)

func validateCmd() *cli.Command {
	return &cli.Command{
		Name:                  "validate",
		EnableShellCompletion: true,
		Usage:                 "Validate live host state against the expected time configuration",
		Description: `Run the time configuration checklist: timezone, NTP server line, daemon
run and boot states, and the synchronization flags. Each check compares a
live value against the expectation; the command exits with status 1 when
one or more checks fail and 0 when all pass.

# Examples

Validate with the built-in expectations:
  tsctl validate

Validate against a custom expectations file, writing YAML to a file:
  tsctl validate --config lab.yaml --output result.yaml --format yaml

Also query the expected NTP servers directly:
  tsctl validate --probe

Export Prometheus textfile metrics for node_exporter:
  tsctl validate --metrics-file /var/lib/node_exporter/tsctl.prom`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "probe",
				Usage: "Query the expected NTP servers and check the measured clock offset",
			},
			&cli.DurationFlag{
				Name:  "max-offset",
				Value: defaults.ProbeMaxOffset,
				Usage: "Largest acceptable clock offset for the probe check",
			},
			&cli.StringFlag{
				Name:  "metrics-file",
				Usage: "Write Prometheus textfile metrics to this path",
			},
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

			opts := []validator.Option{
				validator.WithVersion(version),
				validator.WithTimeDater(td),
				validator.WithUnitManager(um),
				validator.WithMaxOffset(cmd.Duration("max-offset")),
			}
			if cmd.Bool("probe") {
				opts = append(opts, validator.WithProber(probe.New(exp.NTPServers)))
			}

			start := time.Now()
			rep, err := validator.New(exp, opts...).Validate(ctx)
			if err != nil {
				return fmt.Errorf("validation failed: %w", err)
			}
			slog.Debug("validation finished", "duration", time.Since(start))

			if path := cmd.String("metrics-file"); path != "" {
				m := report.NewMetrics()
				m.Observe(rep)
				if err := m.WriteTextfile(path); err != nil {
					slog.Warn("failed to write metrics file", "error", err, "path", path)
				}
			}

			if out := cmd.String("output"); out != "" {
				w := report.NewFileWriterOrStdout(report.Format(cmd.String("format")), out)
				defer func() {
					if err := w.Close(); err != nil {
						slog.Warn("failed to close output writer", "error", err)
					}
				}()
				if err := w.Serialize(ctx, rep); err != nil {
					return fmt.Errorf("failed to serialize validation report: %w", err)
				}
			} else {
				report.NewConsole(os.Stdout).PrintReport(rep)
			}

			if code := rep.ExitCode(); code != 0 {
				return cli.Exit(fmt.Sprintf("validation failed: %d check(s) did not pass", rep.Summary.Failed), code)
			}
			return nil
		},
	}
}
