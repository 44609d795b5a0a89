package server

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/viant/jsonrpc"
	"github.com/viant/jsonrpc/transport"
	"github.com/viant/mcp-protocol/logger"
	"github.com/viant/mcp-protocol/schema"

	"github.com/mcpdispatch/mcpd/implementer"
)

type testNotifier struct {
	notifications []*jsonrpc.Notification
}

func (n *testNotifier) Notify(ctx context.Context, notification *jsonrpc.Notification) error {
	n.notifications = append(n.notifications, notification)
	return nil
}

type calculatorInput struct {
	A int `json:"a"`
	B int `json:"b"`
}

func newTestHandler(t *testing.T) *Handler {
	t.Helper()
	newImplementer := func(ctx context.Context, notifier transport.Notifier, logger logger.Logger) (implementer.Implementer, error) {
		base := implementer.New(notifier, logger)
		err := implementer.RegisterTool[calculatorInput](base, "add", "Add two integers", func(ctx context.Context, input *calculatorInput) (*schema.CallToolResult, *jsonrpc.Error) {
			data, _ := json.Marshal(map[string]int{"sum": input.A + input.B})
			return &schema.CallToolResult{Content: []schema.CallToolResultContentElem{{Text: string(data)}}}, nil
		})
		if err != nil {
			return nil, err
		}
		err = implementer.RegisterTool[calculatorInput](base, "panic", "Always panics", func(ctx context.Context, input *calculatorInput) (*schema.CallToolResult, *jsonrpc.Error) {
			panic("boom")
		})
		return base, err
	}
	srv, err := New(
		WithNewImplementer(newImplementer),
		WithImplementation(schema.Implementation{Name: "mcpd-test", Version: "0.1"}),
		WithCapabilities(schema.ServerCapabilities{Tools: &schema.ServerCapabilitiesTools{}}),
	)
	if err != nil {
		t.Fatalf("failed to create server: %v", err)
	}
	return srv.newHandler(context.Background(), &testNotifier{})
}

func newRequest(t *testing.T, id uint64, method string, params any) *jsonrpc.Request {
	t.Helper()
	request, err := jsonrpc.NewRequest(method, params)
	if err != nil {
		t.Fatalf("failed to create request: %v", err)
	}
	request.Id = id
	return request
}

func TestHandler_Serve_Initialize(t *testing.T) {
	handler := newTestHandler(t)
	request := newRequest(t, 1, schema.MethodInitialize, &schema.InitializeRequestParams{
		ClientInfo:      *schema.NewImplementation("client", "0.1"),
		ProtocolVersion: schema.LatestProtocolVersion,
	})
	response := &jsonrpc.Response{}
	handler.Serve(context.Background(), request, response)
	assert.Nil(t, response.Error)
	assert.EqualValues(t, uint64(1), response.Id)

	var result schema.InitializeResult
	assert.Nil(t, json.Unmarshal(response.Result, &result))
	assert.Equal(t, "mcpd-test", result.ServerInfo.Name)
	assert.Equal(t, schema.LatestProtocolVersion, result.ProtocolVersion)
}

func TestHandler_Serve_ListAndCallTool(t *testing.T) {
	handler := newTestHandler(t)

	response := &jsonrpc.Response{}
	handler.Serve(context.Background(), newRequest(t, 2, schema.MethodToolsList, &schema.ListToolsRequestParams{}), response)
	assert.Nil(t, response.Error)
	var listed schema.ListToolsResult
	assert.Nil(t, json.Unmarshal(response.Result, &listed))
	assert.Equal(t, 2, len(listed.Tools))

	response = &jsonrpc.Response{}
	handler.Serve(context.Background(), newRequest(t, 3, schema.MethodToolsCall, &schema.CallToolRequestParams{
		Name:      "add",
		Arguments: map[string]interface{}{"a": 2, "b": 3},
	}), response)
	assert.Nil(t, response.Error)
	var result schema.CallToolResult
	assert.Nil(t, json.Unmarshal(response.Result, &result))
	if assert.Equal(t, 1, len(result.Content)) {
		assert.Contains(t, result.Content[0].Text, `"sum":5`)
	}
}

func TestHandler_Serve_MethodNotFound(t *testing.T) {
	handler := newTestHandler(t)
	request := newRequest(t, 11, "resources/list", &schema.ListResourcesRequestParams{})
	response := &jsonrpc.Response{}
	handler.Serve(context.Background(), request, response)
	// no resources registered, so the method is not implemented
	if assert.NotNil(t, response.Error) {
		assert.EqualValues(t, -32601, response.Error.Code)
	}
	assert.EqualValues(t, uint64(11), response.Id)

	request = newRequest(t, 12, "frobnicate", map[string]interface{}{})
	response = &jsonrpc.Response{}
	handler.Serve(context.Background(), request, response)
	if assert.NotNil(t, response.Error) {
		assert.EqualValues(t, -32601, response.Error.Code)
	}
	assert.EqualValues(t, uint64(12), response.Id)
}

func TestHandler_Serve_PanicIsolated(t *testing.T) {
	handler := newTestHandler(t)
	request := newRequest(t, 21, schema.MethodToolsCall, &schema.CallToolRequestParams{Name: "panic"})
	response := &jsonrpc.Response{}
	assert.NotPanics(t, func() {
		handler.Serve(context.Background(), request, response)
	})
	if assert.NotNil(t, response.Error) {
		assert.Contains(t, response.Error.Message, "panicked")
	}
	assert.EqualValues(t, uint64(21), response.Id)
}

func TestHandler_Serve_InvalidVersion(t *testing.T) {
	handler := newTestHandler(t)
	request := &jsonrpc.Request{Jsonrpc: "1.0", Id: uint64(31), Method: schema.MethodPing}
	response := &jsonrpc.Response{}
	handler.Serve(context.Background(), request, response)
	assert.NotNil(t, response.Error)
}

func TestHandler_Serve_MalformedParams(t *testing.T) {
	handler := newTestHandler(t)
	request := &jsonrpc.Request{
		Jsonrpc: jsonrpc.Version,
		Id:      uint64(41),
		Method:  schema.MethodToolsCall,
		Params:  json.RawMessage(`{"name":"add",`),
	}
	response := &jsonrpc.Response{}
	handler.Serve(context.Background(), request, response)
	if assert.NotNil(t, response.Error) {
		assert.EqualValues(t, -32602, response.Error.Code)
	}
	assert.EqualValues(t, uint64(41), response.Id)
}

func TestHandler_CancelInFlight(t *testing.T) {
	handler := newTestHandler(t)
	cancelled := false
	handler.activeContexts.Put(requestKey(7), &activeContext{
		Context:    context.Background(),
		CancelFunc: func() { cancelled = true },
	})

	params, _ := json.Marshal(map[string]interface{}{"requestId": 7})
	handler.OnNotification(context.Background(), &jsonrpc.Notification{
		Method: schema.MethodNotificationCanceled,
		Params: params,
	})
	assert.True(t, cancelled)
	_, ok := handler.activeContexts.Get(requestKey(7))
	assert.False(t, ok)
}

func TestRequestKey(t *testing.T) {
	// numeric and string ids never share a key
	assert.NotEqual(t, requestKey(7), requestKey("7"))
	assert.NotEqual(t, requestKey("a"), requestKey("b"))
	// numeric representations converge on one key
	assert.Equal(t, requestKey(7), requestKey(uint64(7)))
}

func TestHandler_OnNotification(t *testing.T) {
	handler := newTestHandler(t)
	handler.OnNotification(context.Background(), &jsonrpc.Notification{Method: schema.MethodNotificationInitialized})
	assert.True(t, handler.Initialized)

	// cancellation for an unknown request id is a no-op
	params, _ := json.Marshal(map[string]interface{}{"requestId": 999})
	assert.NotPanics(t, func() {
		handler.OnNotification(context.Background(), &jsonrpc.Notification{
			Method: schema.MethodNotificationCancel,
			Params: params,
		})
	})
}
