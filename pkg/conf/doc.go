// Package conf handles the time daemon's line-oriented configuration file:
// a generic parser for reading it (also used for the network interface
// definitions file) and the NTP= server line upsert/append writer.
package conf
