package report

import (
	"bytes"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"

	"github.com/homelab-ops/tsctl/pkg/configurator"
	"github.com/homelab-ops/tsctl/pkg/header"
	"github.com/homelab-ops/tsctl/pkg/system"
	"github.com/homelab-ops/tsctl/pkg/validator"
)

func testReport() *validator.Report {
	rep := validator.NewReport()
	rep.Init(header.KindSyncReport, validator.APIVersion, "test")
	rep.Live = &system.SyncStatus{
		Timezone:      "America/New_York",
		NTPService:    true,
		Synchronized:  true,
		DaemonActive:  "active",
		DaemonEnabled: "enabled",
	}
	rep.Checks = []validator.CheckResult{
		{
			Name:     validator.CheckTimezone,
			Expected: "America/New_York",
			Actual:   "America/New_York",
			Status:   validator.CheckStatusPassed,
		},
		{
			Name:        validator.CheckDaemonActive,
			Expected:    "active",
			Actual:      "inactive",
			Status:      validator.CheckStatusFailed,
			Message:     "daemon is inactive",
			Remediation: "sudo systemctl restart systemd-timesyncd.service",
		},
	}
	rep.Summary = validator.Summary{
		Passed: 1,
		Failed: 1,
		Total:  2,
		Status: validator.ReportStatusFail,
	}
	return rep
}

func TestConsole_PrintReport(t *testing.T) {
	color.NoColor = true
	var buf bytes.Buffer

	NewConsole(&buf).PrintReport(testReport())
	out := buf.String()

	assert.Contains(t, out, "ok    timezone")
	assert.Contains(t, out, "FAIL  daemon-active")
	assert.Contains(t, out, "daemon is inactive")
	assert.Contains(t, out, "Remediation")
	assert.Contains(t, out, "sudo systemctl restart systemd-timesyncd.service")
	assert.Contains(t, out, "1/2 checks passed")
	assert.Contains(t, out, "America/New_York")
}

func TestConsole_PrintStatus(t *testing.T) {
	color.NoColor = true
	var buf bytes.Buffer

	NewConsole(&buf).PrintStatus(&system.SyncStatus{
		Timezone:      "UTC",
		DaemonActive:  "active",
		DaemonEnabled: "enabled",
	})
	out := buf.String()

	assert.Contains(t, out, "timezone:       UTC")
	assert.Contains(t, out, "ntp service:    inactive")
	assert.Contains(t, out, "synchronized:   no")
}

func TestConsole_PrintConfigResult(t *testing.T) {
	color.NoColor = true
	var buf bytes.Buffer

	NewConsole(&buf).PrintConfigResult(&configurator.Result{
		Steps: []configurator.StepResult{
			{Name: configurator.StepSetTimezone},
			{Name: configurator.StepRestartUnit, Error: "unit not found"},
		},
		Failed: 1,
		Halted: true,
	})
	out := buf.String()

	assert.Contains(t, out, "ok    set-timezone")
	assert.Contains(t, out, "FAIL  restart-daemon: unit not found")
	assert.Contains(t, out, "halted at first failure")
	assert.Contains(t, out, "1 step(s) failed")
}
