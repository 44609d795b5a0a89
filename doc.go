// Package mcpd is an MCP stdio dispatcher. One process serves one client
// session over standard input and output, either answering requests locally
// (server mode) or forwarding them to upstream MCP endpoints with correlation
// id remapping (proxy mode). The mode is selected with MCP_SERVER_MODE before
// the first frame is read; standard output carries protocol frames only.
package mcpd
