// Package server implements the server role of the dispatcher: a JSON-RPC
// handler per stdio session that decodes MCP requests, dispatches them to a
// registered implementer and guarantees exactly one terminal response per
// request id. Unknown methods answer with a method-not-found error carrying
// the original id; implementer failures are isolated into error responses.
package server
