/*
Copyright © 2025 tsctl authors
SPDX-License-Identifier: Apache-2.0
*/

package validator

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/homelab-ops/tsctl/pkg/conf"
	"github.com/homelab-ops/tsctl/pkg/config"
	"github.com/homelab-ops/tsctl/pkg/defaults"
	"github.com/homelab-ops/tsctl/pkg/errors"
	"github.com/homelab-ops/tsctl/pkg/header"
	"github.com/homelab-ops/tsctl/pkg/probe"
	"github.com/homelab-ops/tsctl/pkg/system"
)

// APIVersion is the API version for validation reports.
const APIVersion = "timesync.homelab/v1alpha1"

// Check names, in evaluation order.
const (
	CheckTimezone      = "timezone"
	CheckNTPConfig     = "ntp-config"
	CheckDaemonActive  = "daemon-active"
	CheckDaemonEnabled = "daemon-enabled"
	CheckSynchronized  = "synchronized"
	CheckNTPService    = "ntp-service"
	CheckNTPProbe      = "ntp-probe"
)

// Prober is the live NTP probe dependency, optional.
type Prober interface {
	Probe(ctx context.Context) (*probe.Result, error)
}

// Validator reads live host time-configuration state and compares it
// against the expectations, producing a pass/fail report.
type Validator struct {
	version   string
	exp       *config.Expectations
	td        system.TimeDater
	um        system.UnitManager
	prober    Prober
	maxOffset time.Duration
}

// Option is a functional option for configuring Validator instances.
type Option func(*Validator)

// WithVersion sets the tool version stamped into the report header.
func WithVersion(version string) Option {
	return func(v *Validator) {
		v.version = version
	}
}

// WithTimeDater sets the time configuration backend.
func WithTimeDater(td system.TimeDater) Option {
	return func(v *Validator) {
		v.td = td
	}
}

// WithUnitManager sets the service manager backend.
func WithUnitManager(um system.UnitManager) Option {
	return func(v *Validator) {
		v.um = um
	}
}

// WithProber enables the live NTP probe check.
func WithProber(p Prober) Option {
	return func(v *Validator) {
		v.prober = p
	}
}

// WithMaxOffset sets the largest acceptable probe clock offset.
func WithMaxOffset(d time.Duration) Option {
	return func(v *Validator) {
		v.maxOffset = d
	}
}

// New creates a Validator for the given expectations.
func New(exp *config.Expectations, opts ...Option) *Validator {
	v := &Validator{
		exp:       exp,
		maxOffset: defaults.ProbeMaxOffset,
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Validate runs the fixed checklist once. Each check is a single
// read-and-compare; there are no transitions and no retries. Drift and
// missing files become failed checks, never errors — the returned error is
// non-nil only when the validator itself cannot run.
func (v *Validator) Validate(ctx context.Context) (*Report, error) {
	start := time.Now()

	if v.exp == nil {
		return nil, errors.New(errors.ErrCodeInvalidRequest, "expectations cannot be nil")
	}
	if v.td == nil || v.um == nil {
		return nil, errors.New(errors.ErrCodeInvalidRequest, "system backends are required")
	}

	report := NewReport()
	report.Init(header.KindSyncReport, APIVersion, v.version)
	report.Live = system.ReadStatus(ctx, v.td, v.um, v.exp.DaemonUnit)

	checks := []func(context.Context) CheckResult{
		v.checkTimezone,
		v.checkNTPConfig,
		v.checkDaemonActive,
		v.checkDaemonEnabled,
		v.checkSynchronized,
		v.checkNTPService,
	}
	if v.prober != nil {
		checks = append(checks, v.checkProbe)
	}

	for _, check := range checks {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		cr := check(ctx)
		report.Checks = append(report.Checks, cr)

		switch cr.Status {
		case CheckStatusPassed:
			report.Summary.Passed++
			slog.Debug("check passed", "name", cr.Name, "actual", cr.Actual)
		case CheckStatusFailed:
			report.Summary.Failed++
			slog.Debug("check failed", "name", cr.Name, "expected", cr.Expected,
				"actual", cr.Actual, "message", cr.Message)
		}
	}

	report.Summary.Total = len(report.Checks)
	report.Summary.Duration = time.Since(start)
	if report.Summary.Failed > 0 {
		report.Summary.Status = ReportStatusFail
	} else {
		report.Summary.Status = ReportStatusPass
	}

	slog.Info("validation completed",
		"status", report.Summary.Status,
		"passed", report.Summary.Passed,
		"failed", report.Summary.Failed,
		"duration", report.Summary.Duration)

	return report, nil
}

func (v *Validator) checkTimezone(ctx context.Context) CheckResult {
	cr := CheckResult{
		Name:        CheckTimezone,
		Expected:    v.exp.Timezone,
		Remediation: fmt.Sprintf("sudo timedatectl set-timezone %s", v.exp.Timezone),
	}

	tz, err := v.td.Timezone(ctx)
	if err != nil {
		cr.Status = CheckStatusFailed
		cr.Message = fmt.Sprintf("failed to read timezone: %v", err)
		return cr
	}
	cr.Actual = tz

	if tz == v.exp.Timezone {
		cr.Status = CheckStatusPassed
	} else {
		cr.Status = CheckStatusFailed
		cr.Message = fmt.Sprintf("expected %s, got %s", v.exp.Timezone, tz)
	}
	return cr
}

func (v *Validator) checkNTPConfig(_ context.Context) CheckResult {
	line := v.exp.NTPLine()
	cr := CheckResult{
		Name:     CheckNTPConfig,
		Expected: line,
		Remediation: fmt.Sprintf("echo '%s' | sudo tee -a %s && sudo systemctl restart %s",
			line, v.exp.ConfPath, v.exp.DaemonUnit),
	}

	found, err := conf.HasLine(v.exp.ConfPath, line)
	if err != nil {
		cr.Status = CheckStatusFailed
		if errors.CodeOf(err) == errors.ErrCodeNotFound {
			cr.Message = fmt.Sprintf("configuration file %s missing", v.exp.ConfPath)
		} else {
			cr.Message = fmt.Sprintf("failed to read configuration: %v", err)
		}
		return cr
	}

	if found {
		cr.Status = CheckStatusPassed
		cr.Actual = line
	} else {
		cr.Status = CheckStatusFailed
		cr.Message = fmt.Sprintf("line not present in %s", v.exp.ConfPath)
	}
	return cr
}

func (v *Validator) checkDaemonActive(ctx context.Context) CheckResult {
	cr := CheckResult{
		Name:        CheckDaemonActive,
		Expected:    "active",
		Remediation: fmt.Sprintf("sudo systemctl restart %s", v.exp.DaemonUnit),
	}

	state, err := v.um.ActiveState(ctx, v.exp.DaemonUnit)
	if err != nil {
		cr.Status = CheckStatusFailed
		cr.Message = fmt.Sprintf("failed to read unit state: %v", err)
		return cr
	}
	cr.Actual = state

	if state == "active" {
		cr.Status = CheckStatusPassed
	} else {
		cr.Status = CheckStatusFailed
		cr.Message = fmt.Sprintf("daemon is %s", state)
	}
	return cr
}

func (v *Validator) checkDaemonEnabled(ctx context.Context) CheckResult {
	cr := CheckResult{
		Name:        CheckDaemonEnabled,
		Expected:    "enabled",
		Remediation: fmt.Sprintf("sudo systemctl enable %s", v.exp.DaemonUnit),
	}

	state, err := v.um.UnitFileState(ctx, v.exp.DaemonUnit)
	if err != nil {
		cr.Status = CheckStatusFailed
		cr.Message = fmt.Sprintf("failed to read unit file state: %v", err)
		return cr
	}
	cr.Actual = state

	if state == "enabled" {
		cr.Status = CheckStatusPassed
	} else {
		cr.Status = CheckStatusFailed
		cr.Message = fmt.Sprintf("daemon is %s", state)
	}
	return cr
}

func (v *Validator) checkSynchronized(ctx context.Context) CheckResult {
	cr := CheckResult{
		Name:        CheckSynchronized,
		Expected:    "yes",
		Remediation: "sudo timedatectl set-ntp true",
	}

	synced, err := v.td.Synchronized(ctx)
	if err != nil {
		cr.Status = CheckStatusFailed
		cr.Message = fmt.Sprintf("failed to read synchronization flag: %v", err)
		return cr
	}
	cr.Actual = yesNo(synced)

	if synced {
		cr.Status = CheckStatusPassed
	} else {
		cr.Status = CheckStatusFailed
		cr.Message = "clock is not synchronized"
	}
	return cr
}

// checkNTPService reads the timedated NTP service flag. This is a distinct
// field from the daemon run state, sourced from a different query; both
// are checked because the OS may report them inconsistently.
func (v *Validator) checkNTPService(ctx context.Context) CheckResult {
	cr := CheckResult{
		Name:        CheckNTPService,
		Expected:    "active",
		Remediation: "sudo timedatectl set-ntp true",
	}

	on, err := v.td.NTP(ctx)
	if err != nil {
		cr.Status = CheckStatusFailed
		cr.Message = fmt.Sprintf("failed to read NTP service flag: %v", err)
		return cr
	}
	if on {
		cr.Actual = "active"
		cr.Status = CheckStatusPassed
	} else {
		cr.Actual = "inactive"
		cr.Status = CheckStatusFailed
		cr.Message = "NTP service is not active"
	}
	return cr
}

func (v *Validator) checkProbe(ctx context.Context) CheckResult {
	cr := CheckResult{
		Name:        CheckNTPProbe,
		Expected:    fmt.Sprintf("offset <= %s", v.maxOffset),
		Remediation: "timedatectl timesync-status",
	}

	res, err := v.prober.Probe(ctx)
	if err != nil {
		cr.Status = CheckStatusFailed
		cr.Message = fmt.Sprintf("probe failed: %v", err)
		return cr
	}

	off, reachable := res.MinOffset()
	if !reachable {
		cr.Status = CheckStatusFailed
		cr.Actual = "unreachable"
		cr.Message = "no NTP server answered"
		return cr
	}
	cr.Actual = off.String()

	if off <= v.maxOffset {
		cr.Status = CheckStatusPassed
	} else {
		cr.Status = CheckStatusFailed
		cr.Message = fmt.Sprintf("clock offset %s exceeds %s", off, v.maxOffset)
	}
	return cr
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
