package system

import (
	"context"
	"fmt"

	sd "github.com/coreos/go-systemd/v22/dbus"

	"github.com/homelab-ops/tsctl/pkg/errors"
)

// Systemd implements UnitManager over the systemd D-Bus API.
type Systemd struct {
	conn *sd.Conn
}

// NewSystemd connects to systemd on the system bus.
func NewSystemd(ctx context.Context) (*Systemd, error) {
	conn, err := sd.NewWithContext(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeCommandFailed, "connecting to systemd", err)
	}
	return &Systemd{conn: conn}, nil
}

// Close releases the systemd connection.
func (s *Systemd) Close() {
	s.conn.Close()
}

// Restart restarts the unit and waits for the queued job to finish.
// The daemon briefly loses time-sync availability during the restart.
func (s *Systemd) Restart(ctx context.Context, unit string) error {
	ch := make(chan string, 1)
	if _, err := s.conn.RestartUnitContext(ctx, unit, "replace", ch); err != nil {
		return errors.WrapWithContext(errors.ErrCodeCommandFailed, "restarting unit", err,
			map[string]any{"unit": unit})
	}

	select {
	case result := <-ch:
		if result != "done" {
			return errors.NewWithContext(errors.ErrCodeCommandFailed, "unit restart did not complete",
				map[string]any{"unit": unit, "result": result})
		}
		return nil
	case <-ctx.Done():
		return errors.Wrap(errors.ErrCodeTimeout, "waiting for unit restart", ctx.Err())
	}
}

// Enable marks the unit to start on boot.
func (s *Systemd) Enable(ctx context.Context, unit string) error {
	if _, _, err := s.conn.EnableUnitFilesContext(ctx, []string{unit}, false, true); err != nil {
		return errors.WrapWithContext(errors.ErrCodeCommandFailed, "enabling unit", err,
			map[string]any{"unit": unit})
	}
	return nil
}

// ActiveState returns the unit's run state, e.g. "active" or "inactive".
func (s *Systemd) ActiveState(ctx context.Context, unit string) (string, error) {
	return s.unitProperty(ctx, unit, "ActiveState")
}

// UnitFileState returns the unit's boot-enablement state, e.g. "enabled".
func (s *Systemd) UnitFileState(ctx context.Context, unit string) (string, error) {
	return s.unitProperty(ctx, unit, "UnitFileState")
}

func (s *Systemd) unitProperty(ctx context.Context, unit, name string) (string, error) {
	p, err := s.conn.GetUnitPropertyContext(ctx, unit, name)
	if err != nil {
		return "", errors.WrapWithContext(errors.ErrCodeCommandFailed,
			fmt.Sprintf("reading unit property %s", name), err,
			map[string]any{"unit": unit})
	}

	var value string
	if err := p.Value.Store(&value); err != nil {
		return "", errors.Wrap(errors.ErrCodeInternal, "decoding unit property", err)
	}
	return value, nil
}
