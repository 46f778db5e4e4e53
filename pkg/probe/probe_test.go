package probe

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/beevik/ntp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

func fakeQuery(responses map[string]*ntp.Response, errs map[string]error) QueryFunc {
	return func(server string) (*ntp.Response, error) {
		if err, ok := errs[server]; ok {
			return nil, err
		}
		return responses[server], nil
	}
}

func TestProbe_AllReachable(t *testing.T) {
	q := fakeQuery(map[string]*ntp.Response{
		"10.0.0.1": {ClockOffset: 20 * time.Millisecond, RTT: 5 * time.Millisecond, Stratum: 2},
		"10.0.0.2": {ClockOffset: -40 * time.Millisecond, RTT: 8 * time.Millisecond, Stratum: 3},
	}, nil)

	p := New([]string{"10.0.0.1", "10.0.0.2"},
		WithQueryFunc(q),
		WithRateLimit(rate.Inf, 1),
	)

	res, err := p.Probe(context.TODO())
	require.NoError(t, err)

	assert.Equal(t, 2, res.Reachable)
	require.Len(t, res.Servers, 2)
	assert.Equal(t, "10.0.0.1", res.Servers[0].Server)
	assert.Equal(t, 20*time.Millisecond, res.Servers[0].Offset)
	assert.Equal(t, uint8(2), res.Servers[0].Stratum)
	assert.Empty(t, res.Servers[0].Error)
}

func TestProbe_PartialFailure(t *testing.T) {
	q := fakeQuery(
		map[string]*ntp.Response{
			"10.0.0.1": {ClockOffset: 10 * time.Millisecond, Stratum: 2},
		},
		map[string]error{
			"10.0.0.2": errors.New("i/o timeout"),
		},
	)

	p := New([]string{"10.0.0.1", "10.0.0.2"},
		WithQueryFunc(q),
		WithRateLimit(rate.Inf, 1),
	)

	res, err := p.Probe(context.TODO())
	require.NoError(t, err)

	assert.Equal(t, 1, res.Reachable)
	assert.Empty(t, res.Servers[0].Error)
	assert.Contains(t, res.Servers[1].Error, "timeout")
}

func TestProbe_NoServers(t *testing.T) {
	p := New(nil)
	_, err := p.Probe(context.TODO())
	assert.Error(t, err)
}

func TestProbe_ContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.TODO())
	cancel()

	// A tight limiter forces Wait to observe the canceled context.
	p := New([]string{"10.0.0.1"},
		WithQueryFunc(fakeQuery(nil, nil)),
		WithRateLimit(rate.Every(time.Hour), 0),
	)

	_, err := p.Probe(ctx)
	assert.Error(t, err)
}

func TestResult_MinOffset(t *testing.T) {
	res := &Result{Servers: []ServerResult{
		{Server: "a", Offset: -30 * time.Millisecond},
		{Server: "b", Offset: 10 * time.Millisecond},
		{Server: "c", Error: "unreachable"},
	}}

	off, ok := res.MinOffset()
	require.True(t, ok)
	assert.Equal(t, 10*time.Millisecond, off)
}

func TestResult_MinOffset_NoneReachable(t *testing.T) {
	res := &Result{Servers: []ServerResult{{Server: "a", Error: "unreachable"}}}
	_, ok := res.MinOffset()
	assert.False(t, ok)
}

func TestResult_Healthy(t *testing.T) {
	res := &Result{Servers: []ServerResult{{Server: "a", Offset: 200 * time.Millisecond}}}

	assert.True(t, res.Healthy(500*time.Millisecond))
	assert.False(t, res.Healthy(100*time.Millisecond))
}
