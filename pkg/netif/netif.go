package netif

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"

	"github.com/homelab-ops/tsctl/pkg/conf"
	"github.com/homelab-ops/tsctl/pkg/defaults"
	"github.com/homelab-ops/tsctl/pkg/errors"
)

// sysClassNet is where the kernel exposes per-interface state.
const sysClassNet = "/sys/class/net"

// operStateUp is the operstate value for an interface that is already up.
const operStateUp = "up"

// Runner executes an external command. Injectable so tests run without
// touching host interfaces.
type Runner func(ctx context.Context, name string, args ...string) error

// execRunner runs the command through os/exec and folds stderr into the
// returned error.
func execRunner(ctx context.Context, name string, args ...string) error {
	out, err := exec.CommandContext(ctx, name, args...).CombinedOutput()
	if err != nil {
		return fmt.Errorf("%s %s: %w: %s", name, strings.Join(args, " "), err, strings.TrimSpace(string(out)))
	}
	return nil
}

// Result records the outcome for one considered interface.
type Result struct {
	// Name is the interface name.
	Name string `json:"name" yaml:"name"`

	// State is the operstate read before any action.
	State string `json:"state" yaml:"state"`

	// BroughtUp is true when a bring-up command was issued.
	BroughtUp bool `json:"broughtUp" yaml:"broughtUp"`

	// Error holds the bring-up failure, empty otherwise.
	Error string `json:"error,omitempty" yaml:"error,omitempty"`
}

// Option configures a Manager.
type Option func(*Manager)

// WithRunner overrides the command runner.
func WithRunner(r Runner) Option {
	return func(m *Manager) {
		m.run = r
	}
}

// WithSysClassNet overrides the operstate directory, for tests.
func WithSysClassNet(dir string) Option {
	return func(m *Manager) {
		m.sysClassNet = dir
	}
}

// Manager brings up defined network interfaces that are not already up.
type Manager struct {
	definitionsPath string
	prefix          string
	sysClassNet     string
	run             Runner
}

// New creates a Manager reading interface definitions from definitionsPath
// and considering only interfaces whose name starts with prefix.
func New(definitionsPath, prefix string, opts ...Option) *Manager {
	m := &Manager{
		definitionsPath: definitionsPath,
		prefix:          prefix,
		sysClassNet:     sysClassNet,
		run:             execRunner,
	}

	for _, opt := range opts {
		opt(m)
	}
	return m
}

// BringUp parses the definitions file, filters interface names by prefix,
// and issues a bring-up command for each interface not already in the up
// state. Every considered interface is logged exactly once with its
// outcome. Bring-up failures are recorded per interface and do not stop
// the remaining interfaces.
func (m *Manager) BringUp(ctx context.Context) ([]Result, error) {
	names, err := m.definedInterfaces()
	if err != nil {
		return nil, err
	}

	results := make([]Result, 0, len(names))
	for _, name := range names {
		res := Result{Name: name, State: m.operState(name)}

		if res.State == operStateUp {
			slog.Info("interface already up", "interface", name)
			results = append(results, res)
			continue
		}

		if err := m.run(ctx, "ip", "link", "set", name, "up"); err != nil {
			res.Error = err.Error()
			slog.Warn("interface bring-up failed", "interface", name, "state", res.State, "error", err)
		} else {
			res.BroughtUp = true
			slog.Info("interface brought up", "interface", name, "state", res.State)
		}
		results = append(results, res)
	}

	return results, nil
}

// definedInterfaces extracts interface names from the definitions file,
// keeping auto/iface stanza names matching the prefix, deduplicated and
// sorted for deterministic processing order.
func (m *Manager) definedInterfaces() ([]string, error) {
	parser := conf.NewParser()
	lines, err := parser.GetLines(m.definitionsPath)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeNotFound, "reading interface definitions", err)
	}

	seen := make(map[string]struct{})
	for _, line := range lines {
		fields := strings.Fields(line)
		if len(fields) < 2 {
			continue
		}
		if fields[0] != "auto" && fields[0] != "iface" && fields[0] != "allow-hotplug" {
			continue
		}
		name := fields[1]
		if !strings.HasPrefix(name, m.prefix) {
			continue
		}
		seen[name] = struct{}{}
	}

	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// operState reads the kernel-reported interface state. Unknown or
// unreadable interfaces report "unknown" so they still get a bring-up
// attempt.
func (m *Manager) operState(name string) string {
	b, err := os.ReadFile(filepath.Join(m.sysClassNet, name, "operstate"))
	if err != nil {
		return "unknown"
	}
	return strings.TrimSpace(string(b))
}

// DefaultManager creates a Manager with the package default definitions
// path and prefix.
func DefaultManager(opts ...Option) *Manager {
	return New(defaults.InterfacesPath, defaults.InterfacePrefix, opts...)
}
