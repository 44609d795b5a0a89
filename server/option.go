package server

import (
	"github.com/viant/mcp-protocol/schema"

	"github.com/mcpdispatch/mcpd/implementer"
)

// Option is a function that configures the server.
type Option func(s *Server) error

// WithNewImplementer sets the implementer factory.
func WithNewImplementer(newImplementer implementer.NewImplementer) Option {
	return func(s *Server) error {
		s.newImplementer = newImplementer
		return nil
	}
}

// WithImplementation sets the server implementation info.
func WithImplementation(implementation schema.Implementation) Option {
	return func(s *Server) error {
		s.info = implementation
		return nil
	}
}

// WithCapabilities sets the advertised server capabilities.
func WithCapabilities(capabilities schema.ServerCapabilities) Option {
	return func(s *Server) error {
		s.capabilities = capabilities
		return nil
	}
}

// WithInstructions sets the instructions returned on initialize.
func WithInstructions(instructions string) Option {
	return func(s *Server) error {
		s.instructions = &instructions
		return nil
	}
}

// WithProtocolVersion sets the protocol version.
func WithProtocolVersion(version string) Option {
	return func(s *Server) error {
		s.protocolVersion = version
		return nil
	}
}

// WithLoggerName sets the logger name.
func WithLoggerName(name string) Option {
	return func(s *Server) error {
		s.loggerName = name
		return nil
	}
}
