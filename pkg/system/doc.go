// Package system abstracts the OS interactions tsctl depends on behind two
// narrow interfaces: TimeDater (org.freedesktop.timedate1) for timezone and
// NTP state, and UnitManager (systemd) for daemon restart, enablement, and
// state queries. Both production implementations speak D-Bus; tests run
// against in-memory fakes without a live host.
package system
