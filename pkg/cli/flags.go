/*
Copyright © 2025 tsctl authors
SPDX-License-Identifier: Apache-2.0
*/

package cli

import (
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/homelab-ops/tsctl/pkg/report"
)

// Flags shared across subcommands.
var (
	outputFlag = &cli.StringFlag{
		Name:    "output",
		Aliases: []string{"o"},
		Usage:   "Write the result to this file instead of stdout",
	}

	formatFlag = &cli.StringFlag{
		Name:    "format",
		Aliases: []string{"f"},
		Value:   string(report.FormatJSON),
		Usage:   fmt.Sprintf("Output format (supported values: %s)", report.SupportedFormats()),
	}
)
