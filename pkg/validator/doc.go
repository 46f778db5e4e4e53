// Package validator runs the fixed time-configuration checklist against
// live host state: timezone, NTP config line, daemon run and boot states,
// the synchronization and NTP service flags, and optionally a direct NTP
// server probe. Results aggregate into a report whose error count decides
// the process exit status.
package validator
