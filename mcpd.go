package mcpd

import (
	"context"
	"errors"
	"io"

	"github.com/viant/jsonrpc/transport/server/stdio"
	"github.com/viant/mcp-protocol/schema"

	"github.com/mcpdispatch/mcpd/builtin"
	"github.com/mcpdispatch/mcpd/config"
	"github.com/mcpdispatch/mcpd/proxy"
	"github.com/mcpdispatch/mcpd/server"
)

// Service is one dispatcher process: a stdio session served either locally or
// through the proxy, selected by the resolved mode.
type Service struct {
	options *config.Options
	server  *stdio.Server
}

// New validates options and builds the stdio server for the selected mode.
// Any configuration error fails construction before the first frame is read.
func New(ctx context.Context, options *config.Options) (*Service, error) {
	options.Init()
	if err := options.Validate(); err != nil {
		return nil, err
	}
	ret := &Service{options: options}
	switch options.ResolvedMode() {
	case config.ModeProxy:
		aProxy, err := proxy.New(ctx, options)
		if err != nil {
			return nil, err
		}
		ret.server = aProxy.Stdio(ctx)
	default:
		capabilities := schema.ServerCapabilities{Tools: &schema.ServerCapabilitiesTools{}}
		if options.Workspace != "" {
			capabilities.Resources = &schema.ServerCapabilitiesResources{}
		}
		aServer, err := server.New(
			server.WithNewImplementer(builtin.New(&builtin.Config{Workspace: options.Workspace})),
			server.WithImplementation(schema.Implementation{Name: options.Name, Version: options.Version}),
			server.WithCapabilities(capabilities),
		)
		if err != nil {
			return nil, err
		}
		ret.server = aServer.Stdio(ctx)
	}
	return ret, nil
}

// Mode returns the resolved operating mode.
func (s *Service) Mode() config.Mode {
	return s.options.ResolvedMode()
}

// ListenAndServe attaches to stdio and serves until the client closes its end.
// A clean EOF is a normal shutdown; any other transport failure is an error.
func (s *Service) ListenAndServe() error {
	err := s.server.ListenAndServe()
	if err == nil || errors.Is(err, io.EOF) {
		return nil
	}
	return err
}
