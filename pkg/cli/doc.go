// Package cli implements the command-line interface for tsctl, the host
// time synchronization manager.
//
// # Commands
//
// configure - Apply the expected time configuration:
//
//	sudo tsctl configure [--resync] [--on-error continue|halt]
//
// Sets the host timezone, writes the NTP server list into the time daemon
// configuration, and restarts and enables the daemon. Requires root.
//
// validate - Check live state against the expectations:
//
//	tsctl validate [--probe] [--output FILE] [--format json|yaml|table]
//
// Runs the fixed checklist and exits 1 when any check fails. Without
// --output a colored console summary with remediation hints prints to
// stdout; with --output a structured report is written instead.
//
// status - Dump the raw synchronization state:
//
//	tsctl status [--output FILE]
//
// ifup - Bring up defined but downed network interfaces:
//
//	sudo tsctl ifup [--definitions FILE] [--prefix eth]
//
// # Global Flags
//
//	--config, -c     Expectations file (YAML)
//	--log-level      Logging verbosity (debug, info, warn, error)
//
// # Exit Codes
//
//	0  Success, all checks passed
//	1  Validation drift, step failure, or execution error
//
// Version information is embedded at build time using ldflags:
//
//	go build -ldflags="-X 'github.com/homelab-ops/tsctl/pkg/cli.version=1.0.0'"
package cli
