package system

import "context"

// TimeDater is the narrow capability set tsctl needs from the host's time
// configuration subsystem. The production implementation talks to
// org.freedesktop.timedate1 over D-Bus; tests substitute fakes.
type TimeDater interface {
	// Timezone returns the host timezone, e.g. "America/New_York".
	Timezone(ctx context.Context) (string, error)

	// SetTimezone sets the host timezone.
	SetTimezone(ctx context.Context, tz string) error

	// NTP reports whether the NTP service flag is on.
	NTP(ctx context.Context) (bool, error)

	// SetNTP toggles the NTP service flag.
	SetNTP(ctx context.Context, on bool) error

	// Synchronized reports whether the clock is NTP-synchronized.
	Synchronized(ctx context.Context) (bool, error)
}

// UnitManager is the capability set tsctl needs from the host's service
// manager: restart, boot-enablement, and state queries for the time
// synchronization daemon unit.
type UnitManager interface {
	// Restart restarts the unit and waits for the job result.
	Restart(ctx context.Context, unit string) error

	// Enable marks the unit to start on boot.
	Enable(ctx context.Context, unit string) error

	// ActiveState returns the unit run state, e.g. "active".
	ActiveState(ctx context.Context, unit string) (string, error)

	// UnitFileState returns the unit boot-enablement state, e.g. "enabled".
	UnitFileState(ctx context.Context, unit string) (string, error)
}
