package defaults

import "time"

// Expected host time configuration. These are the package defaults; the
// config package lets an expectations file or environment override them.
const (
	// Timezone is the expected host timezone.
	Timezone = "America/New_York"

	// TimesyncdConfPath is the systemd-timesyncd configuration file.
	TimesyncdConfPath = "/etc/systemd/timesyncd.conf"

	// TimesyncDaemonUnit is the time synchronization daemon unit.
	TimesyncDaemonUnit = "systemd-timesyncd.service"

	// InterfacesPath is the network interface definitions file used by
	// the ifup maintenance command.
	InterfacesPath = "/etc/network/interfaces"

	// InterfacePrefix is the default name prefix for interfaces the ifup
	// command considers.
	InterfacePrefix = "eth"
)

// NTPServers are the expected NTP servers, in the order they are written
// to the daemon configuration.
var NTPServers = []string{"192.168.1.103", "192.168.9.7", "192.168.9.3"}

// Operation timing.
const (
	// ResyncDelay is the pause between forcing NTP on and restarting the
	// daemon during a forced resynchronization.
	ResyncDelay = 5 * time.Second

	// DBusTimeout bounds individual D-Bus calls to timedated and systemd.
	DBusTimeout = 10 * time.Second

	// ProbeTimeout bounds a single NTP server query.
	ProbeTimeout = 5 * time.Second

	// ProbeMaxOffset is the largest clock offset a probed server may
	// report for the probe check to pass.
	ProbeMaxOffset = 500 * time.Millisecond

	// IfupTimeout bounds a single interface bring-up command.
	IfupTimeout = 10 * time.Second
)
