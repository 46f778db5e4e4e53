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
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"

	"github.com/homelab-ops/tsctl/pkg/config"
	"github.com/homelab-ops/tsctl/pkg/logging"
)

const (
	name           = "tsctl"
	versionDefault = "dev"
)

var (
	// overridden during build with ldflags
	version = versionDefault
	commit  = "unknown"
	date    = "unknown"
)

// Root builds the command tree.
func Root() *cli.Command {
	return &cli.Command{
		Name:    name,
		Usage:   "Host time synchronization manager",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
		Description: `tsctl brings a host's timezone and NTP configuration to a known
state and verifies it.

configure - sets the timezone, writes the NTP server list, and restarts
            and enables the time synchronization daemon.
validate  - compares live host state against the expected configuration
            and exits non-zero on any drift.
status    - dumps the raw synchronization state.
ifup      - brings up defined but downed network interfaces so that NTP
            traffic has a path out.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Sources: cli.EnvVars("TSCTL_CONFIG"),
				Usage:   "Path to the expectations file (YAML)",
			},
			&cli.StringFlag{
				Name:    "log-level",
				Value:   "info",
				Sources: cli.EnvVars("LOG_LEVEL"),
				Usage:   "Log level (debug, info, warn, error)",
			},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			logging.SetDefaultStructuredLoggerWithLevel(name, version, cmd.String("log-level"))
			slog.Debug("starting", "name", name, "version", version, "commit", commit)
			return ctx, nil
		},
		Commands: []*cli.Command{
			configureCmd(),
			validateCmd(),
			statusCmd(),
			ifupCmd(),
		},
	}
}

// Execute runs the CLI. It is called by main and handles SIGINT/SIGTERM
// by cancelling the command context.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := Root().Run(ctx, os.Args); err != nil {
		if ec, ok := err.(cli.ExitCoder); ok {
			if err.Error() != "" {
				fmt.Fprintln(os.Stderr, err)
			}
			os.Exit(ec.ExitCode())
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// expectations loads the expected configuration honoring the global
// --config flag. Without the flag, built-in defaults with environment
// overrides apply.
func expectations(cmd *cli.Command) (*config.Expectations, error) {
	exp, err := config.Load(cmd.String("config"))
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return exp, nil
}
