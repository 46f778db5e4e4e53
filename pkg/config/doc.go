// Package config defines the expectations shared by the configurator and
// validator: the timezone and NTP servers the host must be set to, the
// daemon configuration file and unit, and operational knobs like the
// forced-resync delay and the step failure policy.
//
// Expectations are loaded from an optional YAML file layered over package
// defaults, with TSCTL_* environment variables taking final precedence.
package config
