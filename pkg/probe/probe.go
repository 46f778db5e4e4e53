package probe

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/beevik/ntp"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/homelab-ops/tsctl/pkg/defaults"
	"github.com/homelab-ops/tsctl/pkg/errors"
)

// QueryFunc performs a single NTP query against a server. Injectable so
// tests run without network access.
type QueryFunc func(server string) (*ntp.Response, error)

// ServerResult is the outcome of probing one server.
type ServerResult struct {
	// Server is the probed host.
	Server string `json:"server" yaml:"server"`

	// Offset is the measured clock offset.
	Offset time.Duration `json:"offset" yaml:"offset"`

	// RTT is the round trip time of the query.
	RTT time.Duration `json:"rtt" yaml:"rtt"`

	// Stratum is the server stratum (0 means kiss-of-death or invalid).
	Stratum uint8 `json:"stratum" yaml:"stratum"`

	// Error holds the query failure, empty on success.
	Error string `json:"error,omitempty" yaml:"error,omitempty"`
}

// Result aggregates the per-server probe outcomes.
type Result struct {
	// Servers holds one entry per probed server, in input order.
	Servers []ServerResult `json:"servers" yaml:"servers"`

	// Reachable is the count of servers that answered a valid response.
	Reachable int `json:"reachable" yaml:"reachable"`
}

// MinOffset returns the smallest absolute offset among reachable servers
// and whether any server was reachable.
func (r *Result) MinOffset() (time.Duration, bool) {
	found := false
	var minOff time.Duration
	for _, s := range r.Servers {
		if s.Error != "" {
			continue
		}
		off := s.Offset
		if off < 0 {
			off = -off
		}
		if !found || off < minOff {
			minOff = off
			found = true
		}
	}
	return minOff, found
}

// Healthy reports whether at least one server is reachable and its offset
// is within maxOffset.
func (r *Result) Healthy(maxOffset time.Duration) bool {
	off, ok := r.MinOffset()
	return ok && off <= maxOffset
}

// Option configures a Prober.
type Option func(*Prober)

// WithQueryFunc overrides the NTP query implementation.
func WithQueryFunc(q QueryFunc) Option {
	return func(p *Prober) {
		p.query = q
	}
}

// WithTimeout sets the per-query timeout.
func WithTimeout(d time.Duration) Option {
	return func(p *Prober) {
		p.timeout = d
	}
}

// WithRateLimit sets the query pacing. NTP servers answer abusive clients
// with kiss-of-death packets, so probes are paced rather than fired in a
// burst.
func WithRateLimit(limit rate.Limit, burst int) Option {
	return func(p *Prober) {
		p.limiter = rate.NewLimiter(limit, burst)
	}
}

// Prober queries a set of NTP servers concurrently and reports per-server
// offset, round trip time, and stratum.
type Prober struct {
	servers []string
	timeout time.Duration
	query   QueryFunc
	limiter *rate.Limiter
}

// New creates a Prober for the given servers.
func New(servers []string, opts ...Option) *Prober {
	p := &Prober{
		servers: servers,
		timeout: defaults.ProbeTimeout,
		limiter: rate.NewLimiter(rate.Every(100*time.Millisecond), 3),
	}
	p.query = func(server string) (*ntp.Response, error) {
		return ntp.QueryWithOptions(server, ntp.QueryOptions{Timeout: p.timeout})
	}

	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Probe queries every server and returns the aggregate result. Individual
// server failures are recorded per entry, not returned as errors; the
// returned error is non-nil only when the probe as a whole cannot run.
func (p *Prober) Probe(ctx context.Context) (*Result, error) {
	if len(p.servers) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidRequest, "no servers to probe")
	}

	res := &Result{Servers: make([]ServerResult, len(p.servers))}

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)

	for i, server := range p.servers {
		i, server := i, server
		g.Go(func() error {
			if err := p.limiter.Wait(gctx); err != nil {
				return err
			}

			sr := ServerResult{Server: server}
			resp, err := p.query(server)
			if err == nil {
				err = resp.Validate()
			}
			if err != nil {
				slog.Debug("NTP probe failed", "server", server, "error", err)
				sr.Error = err.Error()
			} else {
				sr.Offset = resp.ClockOffset
				sr.RTT = resp.RTT
				sr.Stratum = resp.Stratum
				slog.Debug("NTP probe succeeded",
					"server", server,
					"offset", resp.ClockOffset,
					"rtt", resp.RTT,
					"stratum", resp.Stratum)

				mu.Lock()
				res.Reachable++
				mu.Unlock()
			}

			res.Servers[i] = sr
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeTimeout, "probing NTP servers", err)
	}
	return res, nil
}
