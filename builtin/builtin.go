// Package builtin supplies the local implementer used in server mode: a
// terminal tool backed by gosh, an add tool and read-only resources exposing
// files of a configured workspace directory.
package builtin

import (
	"context"
	"strconv"

	"github.com/viant/afs"
	"github.com/viant/afs/storage"
	"github.com/viant/gosh"
	"github.com/viant/gosh/runner/local"
	"github.com/viant/jsonrpc"
	"github.com/viant/jsonrpc/transport"
	"github.com/viant/mcp-protocol/logger"
	"github.com/viant/mcp-protocol/schema"

	"github.com/mcpdispatch/mcpd/implementer"
)

type (
	// Config controls which built-in capabilities are exposed.
	Config struct {
		// Workspace is a directory whose files are listed as resources.
		// Resources are disabled when empty.
		Workspace string
		Options   []storage.Option
	}

	// Service is the server mode implementer.
	Service struct {
		*implementer.Base
		config *Config
		fs     afs.Service
	}

	// AddInput is the payload of the add tool.
	AddInput struct {
		A int `json:"a"`
		B int `json:"b"`
	}
)

// Implements reports resource methods only when a workspace is configured.
func (s *Service) Implements(method string) bool {
	switch method {
	case schema.MethodResourcesList, schema.MethodResourcesRead, schema.MethodSubscribe, schema.MethodUnsubscribe:
		return s.config.Workspace != ""
	}
	return s.Base.Implements(method)
}

// New creates an implementer factory with the built-in tools and resources.
func New(config *Config) implementer.NewImplementer {
	if config == nil {
		config = &Config{}
	}
	return func(ctx context.Context, notifier transport.Notifier, logger logger.Logger) (implementer.Implementer, error) {
		base := implementer.New(notifier, logger)
		goshService, err := gosh.New(ctx, local.New())
		if err != nil {
			return nil, err
		}
		terminal := &terminalTool{service: goshService}
		if err = implementer.RegisterTool[TerminalCommand](base, "terminal", "Run commands in a local terminal session", terminal.Call); err != nil {
			return nil, err
		}
		err = implementer.RegisterTool[AddInput](base, "add", "Add two integers", func(ctx context.Context, input *AddInput) (*schema.CallToolResult, *jsonrpc.Error) {
			return &schema.CallToolResult{
				Content: []schema.CallToolResultContentElem{
					{Text: strconv.Itoa(input.A + input.B)},
				},
			}, nil
		})
		if err != nil {
			return nil, err
		}
		return &Service{
			Base:   base,
			config: config,
			fs:     afs.New(),
		}, nil
	}
}
