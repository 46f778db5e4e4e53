// Package errors provides structured error types for tsctl.
//
// Errors carry a code for programmatic classification (privilege failure,
// OS command failure, configuration drift, missing file), a message, an
// optional cause for errors.Is/As chains, and optional context values.
package errors
