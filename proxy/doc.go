// Package proxy implements the proxy role of the dispatcher: a JSON-RPC
// handler per stdio session that forwards MCP requests to configured upstream
// endpoints. Outbound requests carry locally assigned correlation ids so that
// upstream id spaces never leak to the client; responses are remapped back to
// the originating client id. Failed upstreams are retried with exponential
// backoff and in-flight requests are bounded by a per request timeout.
package proxy
