// Package defaults centralizes default expected values and timeouts so the
// configurator and validator never drift apart on what "correct" means.
package defaults
