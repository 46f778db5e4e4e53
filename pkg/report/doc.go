// Package report renders validation and configuration outcomes for
// machines and humans: structured JSON/YAML/table serialization, a
// colored console summary with remediation hints, and Prometheus
// textfile metrics.
package report
