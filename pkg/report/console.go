/*
Copyright © 2025 tsctl authors
SPDX-License-Identifier: Apache-2.0
*/

package report

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"

	"github.com/homelab-ops/tsctl/pkg/configurator"
	"github.com/homelab-ops/tsctl/pkg/system"
	"github.com/homelab-ops/tsctl/pkg/validator"
)

// Console renders human-oriented summaries of validation and
// configuration runs. Color is suppressed automatically when the
// destination is not a terminal.
type Console struct {
	out io.Writer

	pass *color.Color
	fail *color.Color
	dim  *color.Color
	head *color.Color
}

// NewConsole creates a Console writing to out, or os.Stdout when nil.
func NewConsole(out io.Writer) *Console {
	if out == nil {
		out = os.Stdout
	}
	return &Console{
		out:  out,
		pass: color.New(color.FgGreen),
		fail: color.New(color.FgRed, color.Bold),
		dim:  color.New(color.Faint),
		head: color.New(color.Bold),
	}
}

// PrintReport renders a validation report: one line per check, the raw
// status dump, and remediation hints for every failed check.
func (c *Console) PrintReport(rep *validator.Report) {
	c.head.Fprintf(c.out, "Time configuration validation (%s)\n", rep.RunID())

	for _, cr := range rep.Checks {
		if cr.Status == validator.CheckStatusPassed {
			c.pass.Fprintf(c.out, "  ok    ")
			fmt.Fprintf(c.out, "%-16s %s\n", cr.Name, cr.Actual)
			continue
		}
		c.fail.Fprintf(c.out, "  FAIL  ")
		fmt.Fprintf(c.out, "%-16s expected %q, got %q", cr.Name, cr.Expected, cr.Actual)
		if cr.Message != "" {
			c.dim.Fprintf(c.out, "  (%s)", cr.Message)
		}
		fmt.Fprintln(c.out)
	}

	if rep.Live != nil {
		fmt.Fprintln(c.out)
		c.head.Fprintln(c.out, "Live status")
		c.printStatus(rep.Live)
	}

	failed := rep.FailedChecks()
	if len(failed) > 0 {
		fmt.Fprintln(c.out)
		c.head.Fprintln(c.out, "Remediation")
		for _, cr := range failed {
			if cr.Remediation != "" {
				fmt.Fprintf(c.out, "  %s: %s\n", cr.Name, cr.Remediation)
			}
		}
	}

	fmt.Fprintln(c.out)
	if rep.Summary.Status == validator.ReportStatusPass {
		c.pass.Fprintf(c.out, "PASS")
	} else {
		c.fail.Fprintf(c.out, "FAIL")
	}
	fmt.Fprintf(c.out, "  %d/%d checks passed in %s\n",
		rep.Summary.Passed, rep.Summary.Total, rep.Summary.Duration)
}

// PrintStatus renders a raw synchronization status snapshot.
func (c *Console) PrintStatus(st *system.SyncStatus) {
	c.head.Fprintln(c.out, "Time synchronization status")
	c.printStatus(st)
}

func (c *Console) printStatus(st *system.SyncStatus) {
	fmt.Fprintf(c.out, "  timezone:       %s\n", st.Timezone)
	fmt.Fprintf(c.out, "  ntp service:    %s\n", onOff(st.NTPService))
	fmt.Fprintf(c.out, "  synchronized:   %s\n", yesNo(st.Synchronized))
	fmt.Fprintf(c.out, "  daemon active:  %s\n", st.DaemonActive)
	fmt.Fprintf(c.out, "  daemon enabled: %s\n", st.DaemonEnabled)
}

// PrintConfigResult renders the per-step outcome of a configuration run.
func (c *Console) PrintConfigResult(res *configurator.Result) {
	c.head.Fprintln(c.out, "Time configuration")

	for _, s := range res.Steps {
		if s.Error == "" {
			c.pass.Fprintf(c.out, "  ok    ")
			fmt.Fprintln(c.out, s.Name)
		} else {
			c.fail.Fprintf(c.out, "  FAIL  ")
			fmt.Fprintf(c.out, "%s: %s\n", s.Name, s.Error)
		}
	}

	if res.Halted {
		c.dim.Fprintln(c.out, "  run halted at first failure")
	}
	if res.Failed == 0 {
		c.pass.Fprintln(c.out, "done")
	} else {
		c.fail.Fprintf(c.out, "%d step(s) failed\n", res.Failed)
	}
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func onOff(b bool) string {
	if b {
		return "active"
	}
	return "inactive"
}
