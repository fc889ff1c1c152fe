// Package netx answers "can we reach the remote services right now".
package netx

import (
	"context"
	"net/http"
	"time"

	"github.com/bluecarbonlabs/fieldsync/internal/logging"
)

// Probe is a cheap, pollable connectivity check. Implementations never
// return an error: an unknown state is reported as offline so the sync
// engine skips futile passes.
type Probe interface {
	Online(ctx context.Context) bool
}

// HTTPProbe checks reachability with a HEAD request against a known
// endpoint, proving actual internet reachability rather than just link-up.
type HTTPProbe struct {
	url string
	hc  *http.Client
	log logging.Logger
}

// NewHTTPProbe returns a probe against url with the given per-check timeout.
func NewHTTPProbe(url string, timeout time.Duration, log logging.Logger) *HTTPProbe {
	return &HTTPProbe{
		url: url,
		hc:  &http.Client{Timeout: timeout},
		log: log,
	}
}

// Online reports whether the probe endpoint answered. Any internal failure
// is logged and treated as offline.
func (p *HTTPProbe) Online(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, p.url, nil)
	if err != nil {
		p.log.Warn(ctx, "building probe request failed", "url", p.url, "error", err)
		return false
	}

	resp, err := p.hc.Do(req)
	if err != nil {
		p.log.Debug(ctx, "probe failed, assuming offline", "error", err)
		return false
	}
	defer resp.Body.Close()

	// a 5xx answer means the service is up for TCP but down for work
	return resp.StatusCode < http.StatusInternalServerError
}

// StaticProbe always reports the same state. Useful in tests.
type StaticProbe bool

func (p StaticProbe) Online(context.Context) bool { return bool(p) }
