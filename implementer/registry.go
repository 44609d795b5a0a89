package implementer

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/viant/jsonrpc"
	"github.com/viant/mcp-protocol/schema"
)

// ToolHandler executes one tool call with the raw argument map.
type ToolHandler func(ctx context.Context, arguments map[string]interface{}) (*schema.CallToolResult, *jsonrpc.Error)

// ResourceReader serves one resources/read request.
type ResourceReader func(ctx context.Context, request *schema.ReadResourceRequest) (*schema.ReadResourceResult, *jsonrpc.Error)

type toolEntry struct {
	tool   schema.Tool
	handle ToolHandler
}

type resourceEntry struct {
	resource schema.Resource
	read     ResourceReader
}

// RegisterTool registers a tool with an explicit schema.
func (b *Base) RegisterTool(tool schema.Tool, handler ToolHandler) {
	if _, ok := b.tools.Get(tool.Name); !ok {
		b.toolNames = append(b.toolNames, tool.Name)
	}
	b.tools.Put(tool.Name, &toolEntry{tool: tool, handle: handler})
}

// RegisterResource registers a resource addressed by its URI.
func (b *Base) RegisterResource(resource schema.Resource, reader ResourceReader) {
	if _, ok := b.resources.Get(resource.Uri); !ok {
		b.resourceNames = append(b.resourceNames, resource.Uri)
	}
	b.resources.Put(resource.Uri, &resourceEntry{resource: resource, read: reader})
}

// RegisterTool registers a typed tool; the input schema is derived from T's
// exported fields and the handler receives decoded arguments.
func RegisterTool[T any](base *Base, name, description string, handler func(ctx context.Context, input *T) (*schema.CallToolResult, *jsonrpc.Error)) error {
	var prototype T
	inputSchema, err := inputSchemaFor(&prototype)
	if err != nil {
		return fmt.Errorf("failed to derive schema for tool %v: %w", name, err)
	}
	tool := schema.Tool{
		Name:        name,
		Description: &description,
		InputSchema: *inputSchema,
	}
	base.RegisterTool(tool, func(ctx context.Context, arguments map[string]interface{}) (*schema.CallToolResult, *jsonrpc.Error) {
		input := new(T)
		if len(arguments) > 0 {
			data, err := json.Marshal(arguments)
			if err != nil {
				return nil, jsonrpc.NewInternalError(err.Error(), nil)
			}
			if err := json.Unmarshal(data, input); err != nil {
				return nil, jsonrpc.NewInvalidParamsError(fmt.Sprintf("invalid arguments for tool %v: %v", name, err), data)
			}
		}
		return handler(ctx, input)
	})
	return nil
}
