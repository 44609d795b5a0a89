package proxy

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/viant/jsonrpc"
	"github.com/viant/jsonrpc/transport"
	"github.com/viant/mcp-protocol/schema"
)

// Handler forwards one session's requests to upstream endpoints. Upstream
// connections and the correlation table are private to the session.
type Handler struct {
	// ctx is the session context; upstream connections outlive single requests.
	ctx         context.Context
	session     transport.Transport
	upstreams   []*upstream
	correlation *correlationTable
	timeout     time.Duration
}

// Serve forwards one request, remapping its id into the local outbound id
// space. The response always carries the originating client id; exactly one
// terminal response is produced whether the upstream answers, fails or times
// out.
func (h *Handler) Serve(parent context.Context, request *jsonrpc.Request, response *jsonrpc.Response) {
	response.Id = request.Id
	response.Jsonrpc = request.Jsonrpc
	if jsonrpc.Version != request.Jsonrpc {
		response.Error = jsonrpc.NewInvalidRequest("invalid JSON-RPC version", nil)
		return
	}
	defer func() {
		if r := recover(); r != nil {
			response.Error = jsonrpc.NewInternalError(fmt.Sprintf("%v forwarding panicked: %v", request.Method, r), nil)
		}
	}()

	clientIntId, ok := jsonrpc.AsRequestIntId(request.Id)
	if !ok {
		clientIntId = -1
	}
	ctx, cancel := context.WithTimeout(parent, h.timeout)
	defer cancel()

	var lastErr error
	for _, candidate := range h.upstreams {
		if !candidate.available() {
			continue
		}
		conduit, err := candidate.acquire(h.ctx, &relay{session: h.session})
		if err != nil {
			lastErr = err
			continue
		}
		localId, err := h.correlation.register(request.Id, clientIntId, request.Method, candidate.spec.Name, cancel)
		if err != nil {
			response.Error = jsonrpc.NewInternalError(err.Error(), nil)
			return
		}
		forwarded := &jsonrpc.Request{
			Jsonrpc: jsonrpc.Version,
			Id:      localId,
			Method:  request.Method,
			Params:  request.Params,
		}
		result, err := conduit.Send(ctx, forwarded)
		h.correlation.evict(localId)
		if err != nil {
			if ctx.Err() == context.DeadlineExceeded {
				response.Error = jsonrpc.NewInternalError(fmt.Sprintf("%v timed out after %v", request.Method, h.timeout), nil)
				return
			}
			if ctx.Err() == context.Canceled {
				response.Error = jsonrpc.NewInternalError(fmt.Sprintf("%v was cancelled", request.Method), nil)
				return
			}
			candidate.markFailure()
			h.correlation.cancelUpstream(candidate.spec.Name)
			lastErr = fmt.Errorf("upstream %v failed: %w", candidate.spec.Name, err)
			continue
		}
		candidate.markHealthy()
		response.Result = result.Result
		response.Error = result.Error
		return
	}
	if lastErr == nil {
		lastErr = fmt.Errorf("no upstream available")
	}
	response.Error = jsonrpc.NewInternalError(lastErr.Error(), nil)
}

// OnNotification forwards client notifications upstream. Cancellations are
// rewritten from the client id to the in-flight local id; a cancellation that
// matches no in-flight request is dropped.
func (h *Handler) OnNotification(ctx context.Context, notification *jsonrpc.Notification) {
	switch notification.Method {
	case schema.MethodNotificationCancel, schema.MethodNotificationCanceled:
		h.relayCancellation(ctx, notification)
		return
	}
	for _, candidate := range h.upstreams {
		if conduit := candidate.connected(); conduit != nil {
			_ = conduit.Notify(ctx, notification)
		}
	}
}

func (h *Handler) relayCancellation(ctx context.Context, notification *jsonrpc.Notification) {
	var params schema.CancelledNotificationParams
	if err := json.Unmarshal(notification.Params, &params); err != nil || params.RequestId == 0 {
		return
	}
	localId, entry, ok := h.correlation.localFor(int(params.RequestId))
	if !ok {
		return
	}
	if entry.cancel != nil {
		entry.cancel()
	}
	rewritten, err := json.Marshal(map[string]interface{}{"requestId": localId})
	if err != nil {
		return
	}
	for _, candidate := range h.upstreams {
		if candidate.spec.Name != entry.upstream {
			continue
		}
		if conduit := candidate.connected(); conduit != nil {
			_ = conduit.Notify(ctx, &jsonrpc.Notification{
				Method: notification.Method,
				Params: rewritten,
			})
		}
		return
	}
}

// relay hands upstream initiated traffic back to the session transport.
type relay struct {
	session transport.Transport
}

// Serve forwards an upstream request to the client and copies back the answer.
func (r *relay) Serve(ctx context.Context, request *jsonrpc.Request, response *jsonrpc.Response) {
	response.Id = request.Id
	response.Jsonrpc = jsonrpc.Version
	result, err := r.session.Send(ctx, &jsonrpc.Request{
		Jsonrpc: jsonrpc.Version,
		Method:  request.Method,
		Params:  request.Params,
	})
	if err != nil {
		response.Error = jsonrpc.NewInternalError(err.Error(), nil)
		return
	}
	response.Result = result.Result
	response.Error = result.Error
}

// OnNotification relays an upstream notification to the client.
func (r *relay) OnNotification(ctx context.Context, notification *jsonrpc.Notification) {
	_ = r.session.Notify(ctx, notification)
}
