package proxy

import (
	"net/http"
	"time"
)

// Option customizes the proxy service.
type Option func(*Service)

// WithTimeout overrides the per request upstream timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(s *Service) {
		s.timeout = timeout
	}
}

// WithBackoff overrides the reconnection schedule.
func WithBackoff(backoff *Backoff) Option {
	return func(s *Service) {
		s.backoff = backoff
	}
}

// WithDialer overrides how upstream transports are created.
func WithDialer(dialer Dialer) Option {
	return func(s *Service) {
		s.dialer = dialer
	}
}

// WithHTTPClient sets the HTTP client used by sse and streamable upstreams.
func WithHTTPClient(client *http.Client) Option {
	return func(s *Service) {
		s.httpClient = client
	}
}

// WithInFlightLimit bounds the per session correlation table.
func WithInFlightLimit(limit int) Option {
	return func(s *Service) {
		s.inFlightLimit = limit
	}
}
