// Package implementer defines the contract between the session handler and the
// local service logic, together with a Base implementation that supplies
// method-not-found defaults and tool/resource registries.
package implementer

import (
	"context"
	"fmt"

	"github.com/viant/jsonrpc"
	"github.com/viant/jsonrpc/transport"
	"github.com/viant/mcp-protocol/logger"
	"github.com/viant/mcp-protocol/schema"
	"github.com/viant/mcp-protocol/syncmap"
)

// Implementer supplies the service logic behind a session. Each method is
// invoked with an already decoded request; a returned *jsonrpc.Error becomes
// an error response tagged with the originating request id.
type Implementer interface {
	Initialize(ctx context.Context, init *schema.InitializeRequestParams, result *schema.InitializeResult)
	ListResources(ctx context.Context, request *schema.ListResourcesRequest) (*schema.ListResourcesResult, *jsonrpc.Error)
	ListResourceTemplates(ctx context.Context, request *schema.ListResourceTemplatesRequest) (*schema.ListResourceTemplatesResult, *jsonrpc.Error)
	ReadResource(ctx context.Context, request *schema.ReadResourceRequest) (*schema.ReadResourceResult, *jsonrpc.Error)
	Subscribe(ctx context.Context, request *schema.SubscribeRequest) (*schema.SubscribeResult, *jsonrpc.Error)
	Unsubscribe(ctx context.Context, request *schema.UnsubscribeRequest) (*schema.UnsubscribeResult, *jsonrpc.Error)
	ListTools(ctx context.Context, request *schema.ListToolsRequest) (*schema.ListToolsResult, *jsonrpc.Error)
	CallTool(ctx context.Context, request *schema.CallToolRequest) (*schema.CallToolResult, *jsonrpc.Error)
	ListPrompts(ctx context.Context, request *schema.ListPromptsRequest) (*schema.ListPromptsResult, *jsonrpc.Error)
	GetPrompt(ctx context.Context, request *schema.GetPromptRequest) (*schema.GetPromptResult, *jsonrpc.Error)
	OnNotification(ctx context.Context, notification *jsonrpc.Notification)
	Implements(method string) bool
}

// NewImplementer creates an implementer bound to one session; the notifier and
// logger write to that session's transport.
type NewImplementer func(ctx context.Context, notifier transport.Notifier, logger logger.Logger) (Implementer, error)

// Base provides method-not-found defaults plus tool and resource registries.
// Embed it and override the methods the implementer supports.
type Base struct {
	Notifier         transport.Notifier
	Logger           logger.Logger
	ClientInitialize *schema.InitializeRequestParams
	Subscription     *syncmap.Map[string, bool]

	tools     *syncmap.Map[string, *toolEntry]
	toolNames []string
	resources *syncmap.Map[string, *resourceEntry]
	resourceNames []string
}

func (b *Base) Initialize(ctx context.Context, init *schema.InitializeRequestParams, result *schema.InitializeResult) {
	b.ClientInitialize = init
}

func (b *Base) ListResources(ctx context.Context, request *schema.ListResourcesRequest) (*schema.ListResourcesResult, *jsonrpc.Error) {
	if len(b.resourceNames) == 0 {
		return nil, methodNotFound(request.Method)
	}
	result := &schema.ListResourcesResult{}
	for _, name := range b.resourceNames {
		if entry, ok := b.resources.Get(name); ok {
			result.Resources = append(result.Resources, entry.resource)
		}
	}
	return result, nil
}

func (b *Base) ListResourceTemplates(ctx context.Context, request *schema.ListResourceTemplatesRequest) (*schema.ListResourceTemplatesResult, *jsonrpc.Error) {
	return nil, methodNotFound(request.Method)
}

func (b *Base) ReadResource(ctx context.Context, request *schema.ReadResourceRequest) (*schema.ReadResourceResult, *jsonrpc.Error) {
	entry, ok := b.resources.Get(request.Params.Uri)
	if !ok {
		return nil, NewResourceNotFound(request.Params.Uri)
	}
	return entry.read(ctx, request)
}

func (b *Base) Subscribe(ctx context.Context, request *schema.SubscribeRequest) (*schema.SubscribeResult, *jsonrpc.Error) {
	b.Subscription.Put(request.Params.Uri, true)
	return &schema.SubscribeResult{}, nil
}

func (b *Base) Unsubscribe(ctx context.Context, request *schema.UnsubscribeRequest) (*schema.UnsubscribeResult, *jsonrpc.Error) {
	b.Subscription.Delete(request.Params.Uri)
	return &schema.UnsubscribeResult{}, nil
}

func (b *Base) ListTools(ctx context.Context, request *schema.ListToolsRequest) (*schema.ListToolsResult, *jsonrpc.Error) {
	result := &schema.ListToolsResult{Tools: []schema.Tool{}}
	for _, name := range b.toolNames {
		if entry, ok := b.tools.Get(name); ok {
			result.Tools = append(result.Tools, entry.tool)
		}
	}
	return result, nil
}

func (b *Base) CallTool(ctx context.Context, request *schema.CallToolRequest) (*schema.CallToolResult, *jsonrpc.Error) {
	entry, ok := b.tools.Get(request.Params.Name)
	if !ok {
		return nil, NewUnknownTool(request.Params.Name)
	}
	return entry.handle(ctx, request.Params.Arguments)
}

func (b *Base) ListPrompts(ctx context.Context, request *schema.ListPromptsRequest) (*schema.ListPromptsResult, *jsonrpc.Error) {
	return nil, methodNotFound(request.Method)
}

func (b *Base) GetPrompt(ctx context.Context, request *schema.GetPromptRequest) (*schema.GetPromptResult, *jsonrpc.Error) {
	return nil, methodNotFound(request.Method)
}

func (b *Base) OnNotification(ctx context.Context, notification *jsonrpc.Notification) {}

func (b *Base) Implements(method string) bool {
	switch method {
	case schema.MethodToolsList, schema.MethodToolsCall:
		return len(b.toolNames) > 0
	case schema.MethodResourcesList, schema.MethodResourcesRead, schema.MethodSubscribe, schema.MethodUnsubscribe:
		return len(b.resourceNames) > 0
	}
	return false
}

func methodNotFound(method string) *jsonrpc.Error {
	return jsonrpc.NewMethodNotFound(fmt.Sprintf("method %v not found", method), nil)
}

// New creates a Base bound to the supplied session notifier and logger.
func New(notifier transport.Notifier, logger logger.Logger) *Base {
	return &Base{
		Notifier:     notifier,
		Logger:       logger,
		Subscription: syncmap.NewMap[string, bool](),
		tools:        syncmap.NewMap[string, *toolEntry](),
		resources:    syncmap.NewMap[string, *resourceEntry](),
	}
}
