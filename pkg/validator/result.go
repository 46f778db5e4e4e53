package validator

import (
	"time"

	"github.com/homelab-ops/tsctl/pkg/header"
	"github.com/homelab-ops/tsctl/pkg/system"
)

// ReportStatus represents the overall validation outcome.
type ReportStatus string

const (
	// ReportStatusPass indicates every check passed.
	ReportStatusPass ReportStatus = "pass"

	// ReportStatusFail indicates one or more checks failed.
	ReportStatusFail ReportStatus = "fail"
)

// CheckStatus represents the outcome of a single check.
type CheckStatus string

const (
	// CheckStatusPassed indicates the check was satisfied.
	CheckStatusPassed CheckStatus = "passed"

	// CheckStatusFailed indicates the check was not satisfied or could
	// not be evaluated. Both count toward the error total: an
	// unevaluable check is not a passing one.
	CheckStatusFailed CheckStatus = "failed"
)

// CheckResult is the outcome of evaluating a single check.
type CheckResult struct {
	// Name identifies the check, e.g. "timezone".
	Name string `json:"name" yaml:"name"`

	// Expected is the expected value.
	Expected string `json:"expected" yaml:"expected"`

	// Actual is the live value found on the host.
	Actual string `json:"actual" yaml:"actual"`

	// Status is the check outcome.
	Status CheckStatus `json:"status" yaml:"status"`

	// Message provides context, especially for failures.
	Message string `json:"message,omitempty" yaml:"message,omitempty"`

	// Remediation is the exact command an operator should run to fix a
	// failed check.
	Remediation string `json:"remediation,omitempty" yaml:"remediation,omitempty"`
}

// Summary contains aggregate statistics about a validation run.
type Summary struct {
	// Passed is the count of satisfied checks.
	Passed int `json:"passed" yaml:"passed"`

	// Failed is the count of failed checks (the error count).
	Failed int `json:"failed" yaml:"failed"`

	// Total is the number of checks evaluated.
	Total int `json:"total" yaml:"total"`

	// Status is the overall outcome.
	Status ReportStatus `json:"status" yaml:"status"`

	// Duration is how long the validation took.
	Duration time.Duration `json:"duration" yaml:"duration"`
}

// Report is the complete validation outcome.
type Report struct {
	header.Header `json:",inline" yaml:",inline"`

	// Live is the raw sync status dump captured during validation.
	Live *system.SyncStatus `json:"live,omitempty" yaml:"live,omitempty"`

	// Summary contains aggregate statistics.
	Summary Summary `json:"summary" yaml:"summary"`

	// Checks contains per-check details in evaluation order.
	Checks []CheckResult `json:"checks" yaml:"checks"`
}

// NewReport creates a Report with initialized slices.
func NewReport() *Report {
	return &Report{
		Checks: make([]CheckResult, 0),
	}
}

// ExitCode returns the process exit status for this report: 0 when every
// check passed, 1 when the error count is one or more.
func (r *Report) ExitCode() int {
	if r.Summary.Failed > 0 {
		return 1
	}
	return 0
}

// FailedChecks returns the checks that did not pass, in evaluation order.
func (r *Report) FailedChecks() []CheckResult {
	failed := make([]CheckResult, 0)
	for _, c := range r.Checks {
		if c.Status == CheckStatusFailed {
			failed = append(failed, c)
		}
	}
	return failed
}
