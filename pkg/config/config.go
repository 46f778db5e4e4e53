/*
Copyright © 2025 tsctl authors
SPDX-License-Identifier: Apache-2.0
*/

package config

import (
	"log/slog"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/homelab-ops/tsctl/pkg/defaults"
	"github.com/homelab-ops/tsctl/pkg/errors"
)

// Environment variables that override loaded expectations.
const (
	EnvTimezone   = "TSCTL_TIMEZONE"
	EnvNTPServers = "TSCTL_NTP_SERVERS"
	EnvConfPath   = "TSCTL_CONF_PATH"
)

// Expectations is the shared configuration both the configurator and the
// validator run against. Keeping it in one struct prevents the two sides
// from drifting apart on what the host is supposed to look like.
type Expectations struct {
	// Timezone is the expected host timezone, e.g. "America/New_York".
	Timezone string `json:"timezone" yaml:"timezone"`

	// NTPServers are the expected NTP servers in write order.
	NTPServers []string `json:"ntpServers" yaml:"ntpServers"`

	// ConfPath is the time daemon configuration file.
	ConfPath string `json:"confPath" yaml:"confPath"`

	// DaemonUnit is the systemd unit of the time synchronization daemon.
	DaemonUnit string `json:"daemonUnit" yaml:"daemonUnit"`

	// ResyncDelay is the pause used during forced resynchronization.
	ResyncDelay time.Duration `json:"resyncDelay" yaml:"resyncDelay"`

	// HaltOnError makes the configurator stop at the first failed step.
	// The default mirrors the continue-on-error behavior of the original
	// maintenance scripts.
	HaltOnError bool `json:"haltOnError" yaml:"haltOnError"`

	// LegacyAppend restores the original append-always behavior for the
	// NTP server line instead of the idempotent upsert.
	LegacyAppend bool `json:"legacyAppend" yaml:"legacyAppend"`

	// Interfaces configures the ifup maintenance command.
	Interfaces InterfaceExpectations `json:"interfaces" yaml:"interfaces"`
}

// InterfaceExpectations configures the network interface bring-up step.
type InterfaceExpectations struct {
	// DefinitionsPath is the interface definitions file.
	DefinitionsPath string `json:"definitionsPath" yaml:"definitionsPath"`

	// Prefix filters interface names, e.g. "eth".
	Prefix string `json:"prefix" yaml:"prefix"`
}

// NTPLine returns the exact daemon configuration line for the expected
// servers, e.g. "NTP=192.168.1.103 192.168.9.7 192.168.9.3".
func (e *Expectations) NTPLine() string {
	return "NTP=" + strings.Join(e.NTPServers, " ")
}

// Default returns expectations populated with package defaults.
func Default() *Expectations {
	return &Expectations{
		Timezone:    defaults.Timezone,
		NTPServers:  append([]string(nil), defaults.NTPServers...),
		ConfPath:    defaults.TimesyncdConfPath,
		DaemonUnit:  defaults.TimesyncDaemonUnit,
		ResyncDelay: defaults.ResyncDelay,
		Interfaces: InterfaceExpectations{
			DefinitionsPath: defaults.InterfacesPath,
			Prefix:          defaults.InterfacePrefix,
		},
	}
}

// Load reads expectations from a YAML file layered over the defaults, then
// applies environment overrides. An empty path yields defaults plus
// environment overrides.
func Load(path string) (*Expectations, error) {
	exp := Default()

	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeNotFound, "reading expectations file", err)
		}
		if err := yaml.Unmarshal(b, exp); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidRequest, "parsing expectations file", err)
		}
		slog.Debug("loaded expectations file", "path", path)
	}

	exp.applyEnv()

	if err := exp.Validate(); err != nil {
		return nil, err
	}
	return exp, nil
}

// applyEnv applies environment variable overrides.
func (e *Expectations) applyEnv() {
	if v := os.Getenv(EnvTimezone); v != "" {
		e.Timezone = v
	}
	if v := os.Getenv(EnvNTPServers); v != "" {
		e.NTPServers = strings.Fields(v)
	}
	if v := os.Getenv(EnvConfPath); v != "" {
		e.ConfPath = v
	}
}

// Validate checks the expectations for internal consistency.
func (e *Expectations) Validate() error {
	if strings.TrimSpace(e.Timezone) == "" {
		return errors.New(errors.ErrCodeInvalidRequest, "timezone cannot be empty")
	}
	if len(e.NTPServers) == 0 {
		return errors.New(errors.ErrCodeInvalidRequest, "at least one NTP server is required")
	}
	for _, s := range e.NTPServers {
		if strings.TrimSpace(s) == "" {
			return errors.New(errors.ErrCodeInvalidRequest, "NTP server entries cannot be empty")
		}
	}
	if e.ConfPath == "" {
		return errors.New(errors.ErrCodeInvalidRequest, "daemon configuration path cannot be empty")
	}
	if e.DaemonUnit == "" {
		return errors.New(errors.ErrCodeInvalidRequest, "daemon unit cannot be empty")
	}
	if e.ResyncDelay < 0 {
		return errors.New(errors.ErrCodeInvalidRequest, "resync delay cannot be negative")
	}
	return nil
}
