package implementer

import "github.com/viant/jsonrpc"

const (
	// ResourceNotFound is the MCP specific JSON-RPC error code for an unknown resource URI.
	ResourceNotFound = -32002
)

// NewResourceNotFound creates a resource not found error.
func NewResourceNotFound(uri string) *jsonrpc.Error {
	return jsonrpc.NewError(ResourceNotFound, "Resource not found", map[string]interface{}{"uri": uri})
}

// NewUnknownTool creates an unknown tool error.
func NewUnknownTool(toolName string) *jsonrpc.Error {
	return jsonrpc.NewError(jsonrpc.InvalidParams, "Unknown tool: "+toolName, nil)
}
