package config

import (
	"fmt"
	"strings"
)

// Mode selects the role this process plays for its session.
type Mode string

const (
	// ModeServer answers MCP requests with local logic.
	ModeServer = Mode("server")
	// ModeProxy forwards MCP requests to upstream endpoints.
	ModeProxy = Mode("proxy")
)

// ParseMode resolves an MCP_SERVER_MODE value. An empty value selects
// ModeServer; anything outside the recognized set is a configuration error.
func ParseMode(raw string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(raw))) {
	case "":
		return ModeServer, nil
	case ModeServer:
		return ModeServer, nil
	case ModeProxy:
		return ModeProxy, nil
	default:
		return "", fmt.Errorf("unsupported MCP_SERVER_MODE: %q (expected server or proxy)", raw)
	}
}

// Options defines process configuration resolved from flags and environment
// variables before the first frame is read.
type Options struct {
	Mode            string   `short:"m" long:"mode" env:"MCP_SERVER_MODE" description:"operating mode: server or proxy"`
	Upstreams       []string `short:"u" long:"upstream" env:"MCP_UPSTREAM" env-delim:"," description:"upstream endpoint: stdio:<command> [args...], sse:<url>, streamable:<url> or a bare http(s) url"`
	TimeoutSeconds  int      `short:"t" long:"timeout" env:"MCP_UPSTREAM_TIMEOUT" description:"per request upstream timeout in seconds"`
	OAuth2ConfigURL string   `short:"c" long:"oauth2-config" env:"MCP_OAUTH2_CONFIG" description:"scy resource URL with an OAuth2 client config for protected upstreams"`
	Workspace       string   `short:"w" long:"workspace" env:"MCP_WORKSPACE" description:"base URL exposed as file resources in server mode"`
	Name            string   `short:"n" long:"name" description:"implementation name reported to the client"`
	Version         string   `short:"v" long:"version" description:"implementation version reported to the client"`

	mode      Mode
	upstreams []*UpstreamSpec
}

// Init populates defaults.
func (o *Options) Init() {
	if o.Name == "" {
		o.Name = "mcpd"
	}
	if o.Version == "" {
		o.Version = "0.1"
	}
	if o.TimeoutSeconds == 0 {
		o.TimeoutSeconds = 30
	}
}

// Validate resolves the mode and upstream specs, failing fast on any
// configuration error so that no partial startup is possible.
func (o *Options) Validate() error {
	mode, err := ParseMode(o.Mode)
	if err != nil {
		return err
	}
	o.mode = mode
	if o.TimeoutSeconds <= 0 {
		return fmt.Errorf("invalid MCP_UPSTREAM_TIMEOUT: %v", o.TimeoutSeconds)
	}
	if mode != ModeProxy {
		return nil
	}
	if len(o.Upstreams) == 0 {
		return fmt.Errorf("proxy mode requires at least one upstream (MCP_UPSTREAM)")
	}
	o.upstreams = o.upstreams[:0]
	for _, raw := range o.Upstreams {
		spec, err := ParseUpstreamSpec(raw)
		if err != nil {
			return err
		}
		o.upstreams = append(o.upstreams, spec)
	}
	return nil
}

// ResolvedMode returns the mode established by Validate.
func (o *Options) ResolvedMode() Mode {
	return o.mode
}

// UpstreamSpecs returns the upstream specs established by Validate.
func (o *Options) UpstreamSpecs() []*UpstreamSpec {
	return o.upstreams
}
