package system

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeTimeDater struct {
	timezone     string
	ntp          bool
	synchronized bool
	err          error
}

func (f *fakeTimeDater) Timezone(context.Context) (string, error)   { return f.timezone, f.err }
func (f *fakeTimeDater) SetTimezone(context.Context, string) error  { return f.err }
func (f *fakeTimeDater) NTP(context.Context) (bool, error)          { return f.ntp, f.err }
func (f *fakeTimeDater) SetNTP(context.Context, bool) error         { return f.err }
func (f *fakeTimeDater) Synchronized(context.Context) (bool, error) { return f.synchronized, f.err }

type fakeUnitManager struct {
	active  string
	enabled string
	err     error
}

func (f *fakeUnitManager) Restart(context.Context, string) error { return f.err }
func (f *fakeUnitManager) Enable(context.Context, string) error  { return f.err }
func (f *fakeUnitManager) ActiveState(context.Context, string) (string, error) {
	return f.active, f.err
}
func (f *fakeUnitManager) UnitFileState(context.Context, string) (string, error) {
	return f.enabled, f.err
}

func TestReadStatus(t *testing.T) {
	td := &fakeTimeDater{timezone: "America/New_York", ntp: true, synchronized: true}
	um := &fakeUnitManager{active: "active", enabled: "enabled"}

	st := ReadStatus(context.TODO(), td, um, "systemd-timesyncd.service")

	assert.Equal(t, "America/New_York", st.Timezone)
	assert.True(t, st.NTPService)
	assert.True(t, st.Synchronized)
	assert.Equal(t, "active", st.DaemonActive)
	assert.Equal(t, "enabled", st.DaemonEnabled)
}

func TestReadStatus_GracefulDegradation(t *testing.T) {
	// All queries failing still yields a usable zero-valued status.
	td := &fakeTimeDater{err: errors.New("bus unavailable")}
	um := &fakeUnitManager{err: errors.New("bus unavailable")}

	st := ReadStatus(context.TODO(), td, um, "systemd-timesyncd.service")

	assert.NotNil(t, st)
	assert.Empty(t, st.Timezone)
	assert.False(t, st.Synchronized)
	assert.Empty(t, st.DaemonActive)
}

func TestNewTimeDate_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	td, err := NewTimeDate()
	if err != nil {
		t.Skipf("system bus unavailable: %v", err)
	}
	defer td.Close()

	tz, err := td.Timezone(context.TODO())
	if err != nil {
		t.Logf("timedated unavailable: %v", err)
		return
	}
	t.Logf("host timezone: %s", tz)
}

func TestNewSystemd_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	sd, err := NewSystemd(context.TODO())
	if err != nil {
		t.Skipf("systemd unavailable: %v", err)
	}
	defer sd.Close()

	state, err := sd.ActiveState(context.TODO(), "systemd-timesyncd.service")
	if err != nil {
		t.Logf("unit query failed: %v", err)
		return
	}
	t.Logf("daemon active state: %s", state)
}
