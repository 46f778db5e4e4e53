// Package configurator applies the expected time configuration to the
// host: timezone, NTP server list, and the time synchronization daemon's
// run and boot states. Steps execute in a fixed order after a mandatory
// privilege check.
package configurator
