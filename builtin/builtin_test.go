package builtin

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/viant/jsonrpc"
	"github.com/viant/mcp-protocol/schema"

	"github.com/mcpdispatch/mcpd/server"
)

type testNotifier struct{}

func (n *testNotifier) Notify(ctx context.Context, notification *jsonrpc.Notification) error {
	return nil
}

func newTestService(t *testing.T, config *Config) *Service {
	t.Helper()
	notifier := &testNotifier{}
	aLogger := server.NewLogger("test", nil, notifier)
	anImplementer, err := New(config)(context.Background(), notifier, aLogger)
	if err != nil {
		t.Fatalf("failed to create implementer: %v", err)
	}
	return anImplementer.(*Service)
}

func TestService_Terminal(t *testing.T) {
	service := newTestService(t, &Config{})
	result, rpcErr := service.CallTool(context.Background(), &schema.CallToolRequest{
		Params: schema.CallToolRequestParams{
			Name: "terminal",
			Arguments: map[string]interface{}{
				"commands": []interface{}{"echo hello"},
			},
		},
	})
	assert.Nil(t, rpcErr)
	if assert.Equal(t, 1, len(result.Content)) {
		assert.Contains(t, result.Content[0].Text, "hello")
		assert.NotContains(t, result.Content[0].Text, exitMarker)
	}
	assert.Nil(t, result.IsError)
}

func TestParseExitStatus(t *testing.T) {
	var testCases = []struct {
		description  string
		input        string
		expectOutput string
		expectStatus int
		expectOk     bool
	}{
		{
			description:  "success with output",
			input:        "hello\n" + exitMarker + "0\n",
			expectOutput: "hello",
			expectStatus: 0,
			expectOk:     true,
		},
		{
			description:  "failure without output",
			input:        exitMarker + "3",
			expectOutput: "",
			expectStatus: 3,
			expectOk:     true,
		},
		{
			description:  "trailing prompt noise after status",
			input:        "out\n" + exitMarker + "12 $ ",
			expectOutput: "out",
			expectStatus: 12,
			expectOk:     true,
		},
		{
			description:  "no marker",
			input:        "plain output",
			expectOutput: "plain output",
			expectOk:     false,
		},
	}
	for _, testCase := range testCases {
		output, status, ok := parseExitStatus(testCase.input)
		assert.Equal(t, testCase.expectOk, ok, testCase.description)
		assert.Equal(t, testCase.expectOutput, output, testCase.description)
		assert.Equal(t, testCase.expectStatus, status, testCase.description)
	}
}

func TestService_TerminalFailure(t *testing.T) {
	service := newTestService(t, &Config{})
	result, rpcErr := service.CallTool(context.Background(), &schema.CallToolRequest{
		Params: schema.CallToolRequestParams{
			Name: "terminal",
			Arguments: map[string]interface{}{
				"commands": []interface{}{"exit 3"},
			},
		},
	})
	assert.Nil(t, rpcErr)
	if assert.NotNil(t, result.IsError) {
		assert.True(t, *result.IsError)
	}
}

func TestService_Add(t *testing.T) {
	service := newTestService(t, &Config{})
	result, rpcErr := service.CallTool(context.Background(), &schema.CallToolRequest{
		Params: schema.CallToolRequestParams{
			Name:      "add",
			Arguments: map[string]interface{}{"a": 2, "b": 3},
		},
	})
	assert.Nil(t, rpcErr)
	if assert.Equal(t, 1, len(result.Content)) {
		assert.Equal(t, "5", result.Content[0].Text)
	}
}

func TestService_WorkspaceResources(t *testing.T) {
	workspace := t.TempDir()
	err := os.WriteFile(filepath.Join(workspace, "hello.txt"), []byte("hello resource"), 0o644)
	assert.Nil(t, err)

	service := newTestService(t, &Config{Workspace: workspace})
	assert.True(t, service.Implements(schema.MethodResourcesList))

	listed, rpcErr := service.ListResources(context.Background(), &schema.ListResourcesRequest{})
	assert.Nil(t, rpcErr)
	if !assert.Equal(t, 1, len(listed.Resources)) {
		return
	}
	assert.Equal(t, "hello.txt", listed.Resources[0].Name)

	read, rpcErr := service.ReadResource(context.Background(), &schema.ReadResourceRequest{
		Params: schema.ReadResourceRequestParams{Uri: listed.Resources[0].Uri},
	})
	assert.Nil(t, rpcErr)
	if assert.Equal(t, 1, len(read.Contents)) {
		assert.Equal(t, "hello resource", read.Contents[0].Text)
		assert.Empty(t, read.Contents[0].Blob)
	}
}

func TestService_NoWorkspace(t *testing.T) {
	service := newTestService(t, &Config{})
	assert.False(t, service.Implements(schema.MethodResourcesList))
	assert.True(t, service.Implements(schema.MethodToolsCall))
}

func TestIsBinary(t *testing.T) {
	assert.False(t, isBinary([]byte("plain text\nwith lines\n")))
	assert.True(t, isBinary([]byte{0x00, 0x01, 0x02, 0xff, 0xfe, 0x7f, 0x80, 0x81}))
}
