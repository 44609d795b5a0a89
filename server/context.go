package server

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/viant/jsonrpc"
	"github.com/viant/mcp-protocol/schema"
)

// requestKey derives the pending table key for a request id. Numeric and
// string ids live in separate namespaces so they can never collide.
func requestKey(id interface{}) string {
	if text, ok := id.(string); ok {
		return "s:" + text
	}
	if value, ok := jsonrpc.AsRequestIntId(id); ok {
		return "i:" + strconv.Itoa(value)
	}
	return "s:" + fmt.Sprint(id)
}

type activeContext struct {
	context.Context
	context.CancelFunc
}

func newActiveContext(ctx context.Context, cancel context.CancelFunc, request *jsonrpc.Request) (*activeContext, context.Context) {
	if progressToken := extractProgressToken(request); progressToken != nil {
		ctx = context.WithValue(ctx, schema.TokenProgressContextKey, *progressToken)
	}
	return &activeContext{
		Context:    ctx,
		CancelFunc: cancel,
	}, ctx
}

func extractProgressToken(request *jsonrpc.Request) *schema.ProgressToken {
	var ret *schema.ProgressToken
	meta := parameterMeta(request)
	if value, ok := meta["progressToken"]; ok {
		progressToken := schema.ProgressToken(asInt(value))
		ret = &progressToken
	}
	return ret
}

func parameterMeta(request *jsonrpc.Request) map[string]interface{} {
	type paramsMeta struct {
		Meta map[string]interface{} `json:"_meta,omitempty"`
	}
	meta := &paramsMeta{}
	if err := json.Unmarshal(request.Params, meta); err == nil {
		return meta.Meta
	}
	return make(map[string]interface{})
}

func asInt(value interface{}) int {
	switch actual := value.(type) {
	case int:
		return actual
	case int64:
		return int(actual)
	case uint64:
		return int(actual)
	case float64:
		return int(actual)
	case json.Number:
		ret, _ := actual.Int64()
		return int(ret)
	}
	return 0
}
