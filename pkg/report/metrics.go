/*
Copyright © 2025 tsctl authors
SPDX-License-Identifier: Apache-2.0
*/

package report

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"

	"github.com/homelab-ops/tsctl/pkg/validator"
)

// Metrics converts a validation report into Prometheus gauges and writes
// them in the text exposition format, suitable for the node_exporter
// textfile collector.
type Metrics struct {
	registry *prometheus.Registry

	checkPassed  *prometheus.GaugeVec
	checksFailed prometheus.Gauge
	duration     prometheus.Gauge
	synchronized prometheus.Gauge
	clockOffset  prometheus.Gauge
}

// NewMetrics creates a Metrics exporter with a dedicated registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		checkPassed: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "tsctl_check_passed",
			Help: "Whether the named time-configuration check passed (1) or failed (0).",
		}, []string{"check"}),
		checksFailed: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "tsctl_checks_failed",
			Help: "Number of failed time-configuration checks in the last run.",
		}),
		duration: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "tsctl_validation_duration_seconds",
			Help: "Duration of the last validation run.",
		}),
		synchronized: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "tsctl_clock_synchronized",
			Help: "Whether the system clock reports NTP synchronization.",
		}),
		clockOffset: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "tsctl_clock_offset_seconds",
			Help: "Smallest clock offset measured against the expected NTP servers.",
		}),
	}

	m.registry.MustRegister(
		m.checkPassed,
		m.checksFailed,
		m.duration,
		m.synchronized,
		m.clockOffset,
	)
	return m
}

// Observe records the report's outcome into the gauges.
func (m *Metrics) Observe(rep *validator.Report) {
	for _, cr := range rep.Checks {
		v := 0.0
		if cr.Status == validator.CheckStatusPassed {
			v = 1.0
		}
		m.checkPassed.WithLabelValues(cr.Name).Set(v)

		// The probe check carries the measured offset as its actual value.
		if cr.Name == validator.CheckNTPProbe {
			if off, err := time.ParseDuration(cr.Actual); err == nil {
				m.clockOffset.Set(off.Seconds())
			}
		}
	}

	m.checksFailed.Set(float64(rep.Summary.Failed))
	m.duration.Set(rep.Summary.Duration.Seconds())

	if rep.Live != nil && rep.Live.Synchronized {
		m.synchronized.Set(1)
	} else {
		m.synchronized.Set(0)
	}
}

// WriteTo encodes the gathered metrics in the text exposition format.
func (m *Metrics) WriteTo(w io.Writer) error {
	families, err := m.registry.Gather()
	if err != nil {
		return fmt.Errorf("failed to gather metrics: %w", err)
	}

	enc := expfmt.NewEncoder(w, expfmt.NewFormat(expfmt.TypeTextPlain))
	for _, mf := range families {
		if err := enc.Encode(mf); err != nil {
			return fmt.Errorf("failed to encode metric family %s: %w", mf.GetName(), err)
		}
	}
	return nil
}

// WriteTextfile writes the metrics to path atomically by writing a
// temporary file first, the convention the textfile collector expects.
func (m *Metrics) WriteTextfile(path string) error {
	tmp := path + ".tmp"

	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("failed to create metrics file: %w", err)
	}

	if err := m.WriteTo(f); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to close metrics file: %w", err)
	}

	return os.Rename(tmp, path)
}
