package server

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/viant/jsonrpc/transport"
	"github.com/viant/mcp-protocol/schema"
	"github.com/viant/mcp-protocol/syncmap"

	"github.com/mcpdispatch/mcpd/implementer"
)

// Server represents the server role: it owns session independent state and
// creates one Handler per transport connection.
type Server struct {
	activeContexts *syncmap.Map[string, *activeContext]
	capabilities   schema.ServerCapabilities
	info           schema.Implementation
	newImplementer implementer.NewImplementer

	instructions    *string
	protocolVersion string
	loggerName      string

	stdioServer
}

func (s *Server) cancelOperation(key string) {
	if active, ok := s.activeContexts.Get(key); ok {
		active.CancelFunc()
		s.activeContexts.Delete(key)
	}
}

// NewHandler creates a handler bound to one transport connection.
func (s *Server) NewHandler(ctx context.Context, aTransport transport.Transport) transport.Handler {
	return s.newHandler(ctx, aTransport)
}

func (s *Server) newHandler(ctx context.Context, notifier transport.Notifier) *Handler {
	ret := &Handler{
		Server:    s,
		Notifier:  notifier,
		sessionID: uuid.New().String(),
	}
	ret.Logger = NewLogger(s.loggerName, &ret.loggingLevel, notifier)
	ret.implementer, ret.err = s.newImplementer(ctx, notifier, ret.Logger)
	return ret
}

// New creates a new Server instance.
func New(options ...Option) (*Server, error) {
	s := &Server{
		capabilities: schema.ServerCapabilities{},
		info: schema.Implementation{
			Name:    "mcpd",
			Version: "0.1",
		},
		loggerName:      "server",
		protocolVersion: schema.LatestProtocolVersion,
		activeContexts:  syncmap.NewMap[string, *activeContext](),
	}
	for _, option := range options {
		if err := option(s); err != nil {
			return nil, err
		}
	}
	if s.newImplementer == nil {
		return nil, errors.New("no implementer specified")
	}
	return s, nil
}
