// Package tools implements the MCP tools exposed to remote callers.
//
// Each tool is a struct holding its dependencies (the superprod.Client
// capability façade) with a Definition for registration and a Handle
// for dispatch. Failures from the façade never escape as protocol
// errors — they become error results with a human-readable message.
package tools

import (
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"
)

// jsonResult renders v as an indented JSON text result.
func jsonResult(v any) *mcp.CallToolResult {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError("Error: encoding result: " + err.Error())
	}
	return mcp.NewToolResultText(string(data))
}

// errResult renders a façade or validation failure the way callers
// expect it: a tool error with the message up front.
func errResult(err error) *mcp.CallToolResult {
	return mcp.NewToolResultError("Error: " + err.Error())
}
