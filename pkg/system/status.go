package system

import (
	"context"
	"log/slog"
)

// SyncStatus is the live host time-configuration state at read time. It is
// recomputed fresh on every read and never persisted.
type SyncStatus struct {
	// Timezone is the OS-reported timezone.
	Timezone string `json:"timezone" yaml:"timezone"`

	// NTPService is the timedated NTP service flag.
	NTPService bool `json:"ntpService" yaml:"ntpService"`

	// Synchronized is the OS-reported clock synchronization flag.
	Synchronized bool `json:"synchronized" yaml:"synchronized"`

	// DaemonActive is the daemon unit run state.
	DaemonActive string `json:"daemonActive" yaml:"daemonActive"`

	// DaemonEnabled is the daemon unit boot-enablement state.
	DaemonEnabled string `json:"daemonEnabled" yaml:"daemonEnabled"`
}

// ReadStatus collects the current sync status. Individual query failures
// degrade gracefully: the field stays at its zero value and a warning is
// logged, so one unavailable subsystem does not hide the rest.
func ReadStatus(ctx context.Context, td TimeDater, um UnitManager, unit string) *SyncStatus {
	st := &SyncStatus{}

	var err error
	if st.Timezone, err = td.Timezone(ctx); err != nil {
		slog.Warn("failed to read timezone", "error", err)
	}
	if st.NTPService, err = td.NTP(ctx); err != nil {
		slog.Warn("failed to read NTP service flag", "error", err)
	}
	if st.Synchronized, err = td.Synchronized(ctx); err != nil {
		slog.Warn("failed to read synchronization flag", "error", err)
	}
	if st.DaemonActive, err = um.ActiveState(ctx, unit); err != nil {
		slog.Warn("failed to read daemon active state", "unit", unit, "error", err)
	}
	if st.DaemonEnabled, err = um.UnitFileState(ctx, unit); err != nil {
		slog.Warn("failed to read daemon enablement state", "unit", unit, "error", err)
	}

	return st
}
