/*
Copyright © 2025 tsctl authors
SPDX-License-Identifier: Apache-2.0
*/

package configurator

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/homelab-ops/tsctl/pkg/conf"
	"github.com/homelab-ops/tsctl/pkg/config"
	"github.com/homelab-ops/tsctl/pkg/errors"
	"github.com/homelab-ops/tsctl/pkg/system"
)

// ErrorPolicy selects what happens when a configuration step fails.
type ErrorPolicy string

const (
	// PolicyContinue proceeds to the next step after a failure. This is
	// the default and mirrors the original maintenance scripts, which
	// never short-circuited; failures are still recorded and logged.
	PolicyContinue ErrorPolicy = "continue"

	// PolicyHalt stops at the first failed step.
	PolicyHalt ErrorPolicy = "halt"
)

// IsValid reports whether the policy is a recognized value.
func (p ErrorPolicy) IsValid() bool {
	return p == PolicyContinue || p == PolicyHalt
}

// Step names, in execution order.
const (
	StepSetTimezone = "set-timezone"
	StepNTPServers  = "ntp-servers"
	StepRestartUnit = "restart-daemon"
	StepEnableUnit  = "enable-daemon"
	StepForceResync = "force-resync"
)

// StepResult records the outcome of one configuration step.
type StepResult struct {
	// Name identifies the step.
	Name string `json:"name" yaml:"name"`

	// Error holds the step failure, empty on success.
	Error string `json:"error,omitempty" yaml:"error,omitempty"`
}

// Result aggregates step outcomes for one configuration run.
type Result struct {
	// Steps holds one entry per executed step, in order.
	Steps []StepResult `json:"steps" yaml:"steps"`

	// Failed is the count of failed steps.
	Failed int `json:"failed" yaml:"failed"`

	// Halted is true when a failure stopped the run early.
	Halted bool `json:"halted,omitempty" yaml:"halted,omitempty"`
}

// Option configures a Configurator.
type Option func(*Configurator)

// WithTimeDater sets the time configuration backend.
func WithTimeDater(td system.TimeDater) Option {
	return func(c *Configurator) {
		c.td = td
	}
}

// WithUnitManager sets the service manager backend.
func WithUnitManager(um system.UnitManager) Option {
	return func(c *Configurator) {
		c.um = um
	}
}

// WithPolicy sets the step failure policy.
func WithPolicy(p ErrorPolicy) Option {
	return func(c *Configurator) {
		c.policy = p
	}
}

// WithEUID overrides the effective-UID lookup, for tests.
func WithEUID(f func() int) Option {
	return func(c *Configurator) {
		c.euid = f
	}
}

// Configurator brings the host's timezone and NTP configuration to the
// expected values and applies them to the running daemon.
type Configurator struct {
	exp    *config.Expectations
	td     system.TimeDater
	um     system.UnitManager
	policy ErrorPolicy
	euid   func() int
}

// New creates a Configurator for the given expectations. The failure
// policy defaults to the expectations' HaltOnError setting.
func New(exp *config.Expectations, opts ...Option) *Configurator {
	c := &Configurator{
		exp:    exp,
		policy: PolicyContinue,
		euid:   os.Geteuid,
	}
	if exp != nil && exp.HaltOnError {
		c.policy = PolicyHalt
	}

	for _, opt := range opts {
		opt(c)
	}
	return c
}

// RequireElevatedPrivileges fails unless the process runs with
// administrative rights. This is a precondition: no partial execution
// happens without it.
func (c *Configurator) RequireElevatedPrivileges() error {
	if uid := c.euid(); uid != 0 {
		return errors.NewWithContext(errors.ErrCodePrivilege,
			"configuration requires root privileges", map[string]any{"euid": uid})
	}
	return nil
}

// Apply runs the configuration sequence: set timezone, write the NTP
// server line, restart and enable the daemon, and optionally force a
// resynchronization. Step failures are recorded in the result; whether
// they stop the run depends on the policy. The returned error is non-nil
// only for the privilege precondition or an invalid setup.
func (c *Configurator) Apply(ctx context.Context, resync bool) (*Result, error) {
	if c.exp == nil {
		return nil, errors.New(errors.ErrCodeInvalidRequest, "expectations cannot be nil")
	}
	if c.td == nil || c.um == nil {
		return nil, errors.New(errors.ErrCodeInvalidRequest, "system backends are required")
	}

	if err := c.RequireElevatedPrivileges(); err != nil {
		return nil, err
	}

	type step struct {
		name string
		run  func(context.Context) error
	}

	steps := []step{
		{StepSetTimezone, c.setTimezone},
		{StepNTPServers, c.writeNTPServers},
		{StepRestartUnit, c.restartDaemon},
		{StepEnableUnit, c.enableDaemon},
	}
	if resync {
		steps = append(steps, step{StepForceResync, c.forceResync})
	}

	res := &Result{Steps: make([]StepResult, 0, len(steps))}

	for _, s := range steps {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		sr := StepResult{Name: s.name}
		if err := s.run(ctx); err != nil {
			sr.Error = err.Error()
			res.Failed++
			slog.Error("configuration step failed", "step", s.name, "error", err)
		} else {
			slog.Info("configuration step completed", "step", s.name)
		}
		res.Steps = append(res.Steps, sr)

		if sr.Error != "" && c.policy == PolicyHalt {
			res.Halted = true
			break
		}
	}

	return res, nil
}

func (c *Configurator) setTimezone(ctx context.Context) error {
	slog.Info("setting timezone", "timezone", c.exp.Timezone)
	return c.td.SetTimezone(ctx, c.exp.Timezone)
}

func (c *Configurator) writeNTPServers(_ context.Context) error {
	changed, err := conf.EnsureNTPLine(c.exp.ConfPath, c.exp.NTPServers, c.exp.LegacyAppend)
	if err != nil {
		return err
	}
	if !changed {
		slog.Info("NTP servers already configured", "path", c.exp.ConfPath)
	}
	return nil
}

func (c *Configurator) restartDaemon(ctx context.Context) error {
	slog.Info("restarting time daemon", "unit", c.exp.DaemonUnit)
	return c.um.Restart(ctx, c.exp.DaemonUnit)
}

func (c *Configurator) enableDaemon(ctx context.Context) error {
	slog.Info("enabling time daemon", "unit", c.exp.DaemonUnit)
	return c.um.Enable(ctx, c.exp.DaemonUnit)
}

// forceResync toggles NTP on, waits for the configured delay so the daemon
// settles, restarts it once more to force an immediate synchronization
// attempt, and logs the resulting status for operator visibility.
func (c *Configurator) forceResync(ctx context.Context) error {
	slog.Info("forcing resynchronization", "delay", c.exp.ResyncDelay)

	if err := c.td.SetNTP(ctx, true); err != nil {
		return err
	}

	if err := wait(ctx, c.exp.ResyncDelay); err != nil {
		return errors.Wrap(errors.ErrCodeTimeout, "waiting before daemon restart", err)
	}

	if err := c.um.Restart(ctx, c.exp.DaemonUnit); err != nil {
		return err
	}

	st := system.ReadStatus(ctx, c.td, c.um, c.exp.DaemonUnit)
	slog.Info("resynchronization triggered",
		"synchronized", st.Synchronized,
		"ntpService", st.NTPService,
		"daemonActive", st.DaemonActive)
	return nil
}

// wait blocks for d or until the context is done.
func wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
