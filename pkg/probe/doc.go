// Package probe queries the expected NTP servers directly and measures
// clock offset, round trip time, and stratum per server. It complements
// the daemon-reported synchronization flag with an independent reachability
// signal for the validator's optional probe check.
package probe
