// Package logging provides structured logging utilities for tsctl.
//
// It wraps the standard library slog package with project defaults:
// JSON output to stderr, module/version context on every record,
// LOG_LEVEL environment configuration, and source location tracking
// for debug logs.
//
// Usage:
//
//	logging.SetDefaultStructuredLoggerWithLevel("tsctl", version, "info")
//	slog.Info("configuring host", "timezone", tz)
package logging
