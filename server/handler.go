package server

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/viant/jsonrpc"
	"github.com/viant/jsonrpc/transport"
	"github.com/viant/mcp-protocol/schema"

	"github.com/mcpdispatch/mcpd/implementer"
)

// Handler serves one session. The pending request table lives on the Server;
// only the dispatch path inserts and removes entries.
type Handler struct {
	transport.Notifier
	*Logger
	*Server
	sessionID        string
	implementer      implementer.Implementer
	clientInitialize *schema.InitializeRequestParams
	loggingLevel     schema.LoggingLevel
	Initialized      bool
	err              error
}

// SessionID returns the session identity assigned at construction.
func (h *Handler) SessionID() string {
	return h.sessionID
}

// Serve handles one incoming JSON-RPC request.
func (h *Handler) Serve(parent context.Context, request *jsonrpc.Request, response *jsonrpc.Response) {
	response.Id = request.Id
	response.Jsonrpc = request.Jsonrpc
	if jsonrpc.Version != request.Jsonrpc {
		response.Error = jsonrpc.NewInvalidRequest("invalid JSON-RPC version", nil)
		return
	}
	if h.err != nil {
		response.Error = jsonrpc.NewInternalError(h.err.Error(), nil)
		return
	}
	switch request.Method {
	case schema.MethodInitialize, schema.MethodPing, schema.MethodLoggingSetLevel:
	default:
		if !h.implementer.Implements(request.Method) {
			response.Error = jsonrpc.NewMethodNotFound(fmt.Sprintf("method: %v not found", request.Method), request.Params)
			return
		}
	}

	key := requestKey(request.Id)
	ctx, cancel := context.WithCancel(parent)
	active, ctx := newActiveContext(ctx, cancel, request)
	h.activeContexts.Put(key, active)
	defer h.cancelOperation(key)

	// Implementer failures surface as error responses, never as a crash.
	defer func() {
		if r := recover(); r != nil {
			response.Error = jsonrpc.NewInternalError(fmt.Sprintf("%v handler panicked: %v", request.Method, r), nil)
		}
	}()

	switch request.Method {
	case schema.MethodInitialize:
		result, err := h.Initialize(ctx, request)
		h.setResponse(response, result, err)
	case schema.MethodPing:
		result, err := h.Ping(ctx, request)
		h.setResponse(response, result, err)
	case schema.MethodResourcesList:
		result, err := h.ListResources(ctx, request)
		h.setResponse(response, result, err)
	case schema.MethodResourcesTemplatesList:
		result, err := h.ListResourceTemplates(ctx, request)
		h.setResponse(response, result, err)
	case schema.MethodResourcesRead:
		result, err := h.ReadResource(ctx, request)
		h.setResponse(response, result, err)
	case schema.MethodSubscribe:
		result, err := h.Subscribe(ctx, request)
		h.setResponse(response, result, err)
	case schema.MethodUnsubscribe:
		result, err := h.Unsubscribe(ctx, request)
		h.setResponse(response, result, err)
	case schema.MethodPromptsList:
		result, err := h.ListPrompts(ctx, request)
		h.setResponse(response, result, err)
	case schema.MethodPromptsGet:
		result, err := h.GetPrompt(ctx, request)
		h.setResponse(response, result, err)
	case schema.MethodToolsList:
		result, err := h.ListTools(ctx, request)
		h.setResponse(response, result, err)
	case schema.MethodToolsCall:
		result, err := h.CallTool(ctx, request)
		h.setResponse(response, result, err)
	case schema.MethodLoggingSetLevel:
		result, err := h.SetLevel(ctx, request)
		h.setResponse(response, result, err)
	default:
		response.Error = jsonrpc.NewMethodNotFound(fmt.Sprintf("method: %v not found", request.Method), request.Params)
	}
}

func (h *Handler) setResponse(response *jsonrpc.Response, result interface{}, rpcError *jsonrpc.Error) {
	if rpcError != nil {
		response.Error = rpcError
		return
	}
	var err error
	response.Result, err = json.Marshal(result)
	if err != nil {
		response.Error = jsonrpc.NewInternalError(err.Error(), nil)
	}
}

// OnNotification handles incoming JSON-RPC notifications.
func (h *Handler) OnNotification(ctx context.Context, notification *jsonrpc.Notification) {
	switch notification.Method {
	case schema.MethodNotificationCancel, schema.MethodNotificationCanceled:
		h.Cancel(ctx, notification)
		return
	case schema.MethodNotificationInitialized:
		h.Initialized = true
		return
	}
	h.implementer.OnNotification(ctx, notification)
}
