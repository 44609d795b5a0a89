package builtin

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/viant/gosh"
	"github.com/viant/jsonrpc"
	"github.com/viant/mcp-protocol/schema"
)

// TerminalCommand is the payload of the terminal tool.
type TerminalCommand struct {
	Commands []string          `json:"commands"`
	Env      map[string]string `json:"env,omitempty"`
}

type terminalTool struct {
	service *gosh.Service
}

// exitMarker tags the in-band exit status line appended to every command.
const exitMarker = "__mcpd_exit="

// Call runs the supplied commands in sequence, stopping at the first failure.
func (t *terminalTool) Call(ctx context.Context, input *TerminalCommand) (*schema.CallToolResult, *jsonrpc.Error) {
	commands := make([]string, 0, len(input.Env)+len(input.Commands))
	keys := make([]string, 0, len(input.Env))
	for key := range input.Env {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		commands = append(commands, fmt.Sprintf("export %v=%q", key, input.Env[key]))
	}
	commands = append(commands, input.Commands...)
	cmdString := strings.Join(commands, " && ")

	// The runner keeps one shell session and does not surface the exit status
	// of a compound command, so capture it in band. The subshell also keeps an
	// "exit N" from terminating the session.
	script := fmt.Sprintf("(%v); echo %v$?", cmdString, exitMarker)
	output, code, err := t.service.Run(ctx, script)
	if err != nil {
		return nil, jsonrpc.NewInternalError(err.Error(), []byte(cmdString))
	}
	output, status, ok := parseExitStatus(output)
	if ok {
		code = status
	}

	result := &schema.CallToolResult{}
	if code != 0 {
		isError := true
		result.IsError = &isError
	}
	result.Content = []schema.CallToolResultContentElem{
		{
			Text: output,
		},
	}
	return result, nil
}

// parseExitStatus strips the trailing exit marker line and returns its value.
func parseExitStatus(output string) (string, int, bool) {
	index := strings.LastIndex(output, exitMarker)
	if index == -1 {
		return output, 0, false
	}
	remainder := strings.TrimSpace(output[index+len(exitMarker):])
	digits := remainder
	for i, r := range remainder {
		if r < '0' || r > '9' {
			digits = remainder[:i]
			break
		}
	}
	status, err := strconv.Atoi(digits)
	if err != nil {
		return output, 0, false
	}
	return strings.TrimRight(output[:index], "\r\n"), status, true
}
