/*
Copyright © 2025 tsctl authors
SPDX-License-Identifier: Apache-2.0
*/

package cli

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/homelab-ops/tsctl/pkg/netif"
)

func ifupCmd() *cli.Command {
	return &cli.Command{
		Name:                  "ifup",
		EnableShellCompletion: true,
		Usage:                 "Bring up defined network interfaces that are down",
		Description: `Read the interface definitions file, filter for the configured name
prefix, and bring up every matching interface whose operational state is
down. Interfaces that are already up are left alone. Requires root.

# Examples

Bring up downed eth interfaces:
  sudo tsctl ifup

Use a different definitions file and prefix:
  sudo tsctl ifup --definitions /etc/network/interfaces --prefix en`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "definitions",
				Usage: "Interface definitions file (defaults to the expectations value)",
			},
			&cli.StringFlag{
				Name:  "prefix",
				Usage: "Interface name prefix filter (defaults to the expectations value)",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			exp, err := expectations(cmd)
			if err != nil {
				return err
			}

			path := exp.Interfaces.DefinitionsPath
			if v := cmd.String("definitions"); v != "" {
				path = v
			}
			prefix := exp.Interfaces.Prefix
			if v := cmd.String("prefix"); v != "" {
				prefix = v
			}

			results, err := netif.New(path, prefix).BringUp(ctx)
			if err != nil {
				return fmt.Errorf("interface bring-up failed: %w", err)
			}

			failed := 0
			for _, r := range results {
				switch {
				case r.Error != "":
					failed++
					fmt.Printf("FAIL  %s: %s\n", r.Name, r.Error)
				case r.BroughtUp:
					fmt.Printf("up    %s (was %s)\n", r.Name, r.State)
				default:
					fmt.Printf("ok    %s (already up)\n", r.Name)
				}
			}

			if failed > 0 {
				return cli.Exit(fmt.Sprintf("%d interface(s) failed to come up", failed), 1)
			}
			return nil
		},
	}
}
