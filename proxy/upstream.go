package proxy

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/viant/jsonrpc/transport"
	"github.com/viant/jsonrpc/transport/client/http/sse"
	"github.com/viant/jsonrpc/transport/client/http/streamable"
	"github.com/viant/jsonrpc/transport/client/stdio"

	"github.com/mcpdispatch/mcpd/config"
)

// Dialer creates a transport connected to an upstream endpoint. The handler
// receives upstream initiated requests and notifications.
type Dialer func(ctx context.Context, spec *config.UpstreamSpec, handler transport.Handler) (transport.Transport, error)

// newDialer builds the default dialer; httpClient may be nil.
func newDialer(httpClient *http.Client) Dialer {
	return func(ctx context.Context, spec *config.UpstreamSpec, handler transport.Handler) (transport.Transport, error) {
		switch spec.Protocol {
		case config.ProtocolStdio:
			return stdio.New(spec.Command,
				stdio.WithArguments(spec.Arguments...),
				stdio.WithHandler(handler))
		case config.ProtocolSSE:
			options := []sse.Option{sse.WithHandler(handler)}
			if httpClient != nil {
				options = append(options, sse.WithHttpClient(httpClient), sse.WithMessageHttpClient(httpClient))
			}
			return sse.New(ctx, spec.URL, options...)
		case config.ProtocolStreamable:
			options := []streamable.Option{streamable.WithHandler(handler)}
			if httpClient != nil {
				options = append(options, streamable.WithHTTPClient(httpClient))
			}
			return streamable.New(ctx, spec.URL, options...)
		}
		return nil, fmt.Errorf("unsupported upstream protocol: %v", spec.Protocol)
	}
}

// upstream tracks one endpoint's connection and failure state for a session.
type upstream struct {
	spec    *config.UpstreamSpec
	dial    Dialer
	backoff *Backoff

	mux         sync.Mutex
	conduit     transport.Transport
	failures    int
	nextAttempt time.Time
	down        bool
}

func newUpstream(spec *config.UpstreamSpec, dial Dialer, backoff *Backoff) *upstream {
	return &upstream{spec: spec, dial: dial, backoff: backoff}
}

// available reports whether the upstream is connected or eligible for a dial
// attempt. A permanently down upstream is never available.
func (u *upstream) available() bool {
	u.mux.Lock()
	defer u.mux.Unlock()
	if u.down {
		return false
	}
	if u.conduit != nil {
		return true
	}
	return !time.Now().Before(u.nextAttempt)
}

// acquire returns the connected transport, dialing when disconnected.
func (u *upstream) acquire(ctx context.Context, handler transport.Handler) (transport.Transport, error) {
	u.mux.Lock()
	defer u.mux.Unlock()
	if u.down {
		return nil, fmt.Errorf("upstream %v is down after %v attempts", u.spec.Name, u.backoff.MaxRetries)
	}
	if u.conduit != nil {
		return u.conduit, nil
	}
	if time.Now().Before(u.nextAttempt) {
		return nil, fmt.Errorf("upstream %v is backing off until %v", u.spec.Name, u.nextAttempt.Format(time.RFC3339Nano))
	}
	conduit, err := u.dial(ctx, u.spec, handler)
	if err != nil {
		u.recordFailure()
		return nil, fmt.Errorf("failed to connect upstream %v: %w", u.spec.Name, err)
	}
	u.conduit = conduit
	return conduit, nil
}

// markFailure drops the connection and schedules the next dial attempt.
func (u *upstream) markFailure() {
	u.mux.Lock()
	defer u.mux.Unlock()
	u.conduit = nil
	u.recordFailure()
}

// markHealthy resets the failure state after a successful exchange.
func (u *upstream) markHealthy() {
	u.mux.Lock()
	defer u.mux.Unlock()
	u.failures = 0
	u.nextAttempt = time.Time{}
}

// recordFailure requires u.mux to be held.
func (u *upstream) recordFailure() {
	delay := u.backoff.Delay(u.failures)
	u.failures++
	if u.failures >= u.backoff.MaxRetries {
		u.down = true
		return
	}
	u.nextAttempt = time.Now().Add(delay)
}

// connected returns the current transport without dialing.
func (u *upstream) connected() transport.Transport {
	u.mux.Lock()
	defer u.mux.Unlock()
	return u.conduit
}
