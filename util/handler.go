package util

import (
	"context"
	"fmt"
	"runtime/debug"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/sirupsen/logrus"
)

// ErrorGuard converts panics and returned errors of a tool handler into tool error results
func ErrorGuard(handler server.ToolHandlerFunc) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (result *mcp.CallToolResult, err error) {
		defer func() {
			if r := recover(); r != nil {
				logrus.WithFields(logrus.Fields{
					"tool":  request.Params.Name,
					"panic": r,
				}).Error("Tool handler panicked\n" + string(debug.Stack()))
				result = mcp.NewToolResultError(fmt.Sprintf("Panic: %v", r))
				err = nil
			}
		}()

		result, err = handler(ctx, request)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Error: %v", err)), nil
		}
		return result, nil
	}
}

// AdaptLegacyHandler lets a handler that only needs the argument map be registered as a tool handler
func AdaptLegacyHandler(legacy func(arguments map[string]interface{}) (*mcp.CallToolResult, error)) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return legacy(request.GetArguments())
	}
}
