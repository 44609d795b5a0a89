package proxy

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/viant/jsonrpc/transport"

	"github.com/mcpdispatch/mcpd/config"
)

// Service builds proxy handlers for stdio sessions. Each session dials its
// own upstream connections and keeps its own correlation table.
type Service struct {
	specs         []*config.UpstreamSpec
	timeout       time.Duration
	backoff       *Backoff
	dialer        Dialer
	httpClient    *http.Client
	inFlightLimit int
}

// NewHandler creates a session handler bound to the session transport.
func (s *Service) NewHandler(ctx context.Context, aTransport transport.Transport) transport.Handler {
	upstreams := make([]*upstream, 0, len(s.specs))
	for _, spec := range s.specs {
		upstreams = append(upstreams, newUpstream(spec, s.dialer, s.backoff))
	}
	return &Handler{
		ctx:         ctx,
		session:     aTransport,
		upstreams:   upstreams,
		correlation: newCorrelationTable(s.inFlightLimit),
		timeout:     s.timeout,
	}
}

// New creates a proxy service from resolved options.
func New(ctx context.Context, options *config.Options, opts ...Option) (*Service, error) {
	specs := options.UpstreamSpecs()
	if len(specs) == 0 {
		return nil, fmt.Errorf("proxy mode requires at least one upstream")
	}
	ret := &Service{
		specs:   specs,
		timeout: time.Duration(options.TimeoutSeconds) * time.Second,
		backoff: DefaultBackoff,
	}
	for _, opt := range opts {
		opt(ret)
	}
	if ret.timeout <= 0 {
		ret.timeout = 30 * time.Second
	}
	if ret.dialer == nil {
		if ret.httpClient == nil && options.OAuth2ConfigURL != "" {
			httpClient, err := newOAuthHTTPClient(ctx, options.OAuth2ConfigURL)
			if err != nil {
				return nil, fmt.Errorf("failed to configure oauth2 client: %w", err)
			}
			ret.httpClient = httpClient
		}
		ret.dialer = newDialer(ret.httpClient)
	}
	return ret, nil
}
