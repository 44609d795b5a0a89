package config

import (
	"fmt"
	"net/url"
	"path/filepath"
	"strings"
)

// Protocol identifies the transport an upstream target speaks.
type Protocol string

const (
	// ProtocolStdio launches the upstream as a child process.
	ProtocolStdio = Protocol("stdio")
	// ProtocolSSE connects over HTTP server-sent events.
	ProtocolSSE = Protocol("sse")
	// ProtocolStreamable connects over streamable HTTP.
	ProtocolStreamable = Protocol("streamable")
)

// UpstreamSpec describes one upstream MCP endpoint the proxy role forwards to.
type UpstreamSpec struct {
	Name      string
	Protocol  Protocol
	Command   string
	Arguments []string
	URL       string
}

// ParseUpstreamSpec parses one upstream endpoint spec. Recognized forms:
//
//	stdio:<command> [args...]
//	sse:<url>
//	streamable:<url>
//	http(s)://<host>/...   (treated as sse)
func ParseUpstreamSpec(raw string) (*UpstreamSpec, error) {
	value := strings.TrimSpace(raw)
	switch {
	case value == "":
		return nil, fmt.Errorf("empty upstream spec")
	case strings.HasPrefix(value, "stdio:"):
		fields := strings.Fields(strings.TrimPrefix(value, "stdio:"))
		if len(fields) == 0 {
			return nil, fmt.Errorf("invalid upstream spec %q: missing command", raw)
		}
		return &UpstreamSpec{
			Name:      filepath.Base(fields[0]),
			Protocol:  ProtocolStdio,
			Command:   fields[0],
			Arguments: fields[1:],
		}, nil
	case strings.HasPrefix(value, "sse:"):
		return newHTTPSpec(raw, ProtocolSSE, strings.TrimPrefix(value, "sse:"))
	case strings.HasPrefix(value, "streamable:"):
		return newHTTPSpec(raw, ProtocolStreamable, strings.TrimPrefix(value, "streamable:"))
	case strings.HasPrefix(value, "http://"), strings.HasPrefix(value, "https://"):
		return newHTTPSpec(raw, ProtocolSSE, value)
	default:
		return nil, fmt.Errorf("invalid upstream spec %q: unknown scheme", raw)
	}
}

func newHTTPSpec(raw string, protocol Protocol, endpoint string) (*UpstreamSpec, error) {
	parsed, err := url.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("invalid upstream spec %q: %w", raw, err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, fmt.Errorf("invalid upstream spec %q: expected http(s) url", raw)
	}
	if parsed.Host == "" {
		return nil, fmt.Errorf("invalid upstream spec %q: missing host", raw)
	}
	return &UpstreamSpec{Name: parsed.Host, Protocol: protocol, URL: endpoint}, nil
}
