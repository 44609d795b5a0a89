package implementer

import (
	"context"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/viant/jsonrpc"
	"github.com/viant/mcp-protocol/schema"
)

type addition struct {
	A int `json:"a"`
	B int `json:"b"`
}

func TestRegisterTool(t *testing.T) {
	base := New(nil, nil)
	err := RegisterTool[addition](base, "add", "Add two integers", func(ctx context.Context, input *addition) (*schema.CallToolResult, *jsonrpc.Error) {
		sum := input.A + input.B
		return &schema.CallToolResult{Content: []schema.CallToolResultContentElem{{Text: strconv.Itoa(sum)}}}, nil
	})
	assert.Nil(t, err)

	tools, jErr := base.ListTools(context.Background(), &schema.ListToolsRequest{Method: schema.MethodToolsList})
	assert.Nil(t, jErr)
	if assert.Equal(t, 1, len(tools.Tools)) {
		tool := tools.Tools[0]
		assert.Equal(t, "add", tool.Name)
		assert.Equal(t, "object", tool.InputSchema.Type)
		assert.Contains(t, tool.InputSchema.Properties, "a")
		assert.Contains(t, tool.InputSchema.Properties, "b")
		assert.ElementsMatch(t, []string{"a", "b"}, tool.InputSchema.Required)
	}

	result, jErr := base.CallTool(context.Background(), &schema.CallToolRequest{
		Method: schema.MethodToolsCall,
		Params: schema.CallToolRequestParams{Name: "add", Arguments: map[string]interface{}{"a": 2, "b": 3}},
	})
	assert.Nil(t, jErr)
	if assert.Equal(t, 1, len(result.Content)) {
		assert.Equal(t, "5", result.Content[0].Text)
	}
}

func TestBase_CallTool_Unknown(t *testing.T) {
	base := New(nil, nil)
	_, jErr := base.CallTool(context.Background(), &schema.CallToolRequest{
		Method: schema.MethodToolsCall,
		Params: schema.CallToolRequestParams{Name: "missing"},
	})
	if assert.NotNil(t, jErr) {
		assert.Equal(t, jsonrpc.InvalidParams, jErr.Code)
	}
}

func TestBase_Resources(t *testing.T) {
	base := New(nil, nil)
	base.RegisterResource(schema.Resource{Name: "hello", Uri: "mem://localhost/hello"},
		func(ctx context.Context, request *schema.ReadResourceRequest) (*schema.ReadResourceResult, *jsonrpc.Error) {
			return &schema.ReadResourceResult{Contents: []schema.ReadResourceResultContentsElem{{Uri: request.Params.Uri, Text: "Hello, world!"}}}, nil
		})

	assert.True(t, base.Implements(schema.MethodResourcesList))
	assert.True(t, base.Implements(schema.MethodResourcesRead))
	assert.False(t, base.Implements(schema.MethodPromptsList))

	listed, jErr := base.ListResources(context.Background(), &schema.ListResourcesRequest{Method: schema.MethodResourcesList})
	assert.Nil(t, jErr)
	assert.Equal(t, 1, len(listed.Resources))

	read, jErr := base.ReadResource(context.Background(), &schema.ReadResourceRequest{
		Method: schema.MethodResourcesRead,
		Params: schema.ReadResourceRequestParams{Uri: "mem://localhost/hello"},
	})
	assert.Nil(t, jErr)
	if assert.Equal(t, 1, len(read.Contents)) {
		assert.Equal(t, "Hello, world!", read.Contents[0].Text)
	}

	_, jErr = base.ReadResource(context.Background(), &schema.ReadResourceRequest{
		Method: schema.MethodResourcesRead,
		Params: schema.ReadResourceRequestParams{Uri: "mem://localhost/missing"},
	})
	if assert.NotNil(t, jErr) {
		assert.Equal(t, ResourceNotFound, jErr.Code)
	}
}
