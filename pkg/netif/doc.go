// Package netif implements the network interface bring-up maintenance
// step: parse the interface definitions file, filter names by prefix, and
// issue a bring-up command for any interface not already up.
package netif
