package mcpserver

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// LoggingMiddleware logs every MCP request with a generated request ID
// and duration.
func LoggingMiddleware(logger *slog.Logger) mcp.Middleware {
	return func(next mcp.MethodHandler) mcp.MethodHandler {
		return func(ctx context.Context, method string, req mcp.Request) (mcp.Result, error) {
			requestID := uuid.NewString()
			start := time.Now()

			result, err := next(ctx, method, req)

			attrs := []any{
				"method", method,
				"request_id", requestID,
				"duration_ms", time.Since(start).Milliseconds(),
			}
			if name := toolName(req); name != "" {
				attrs = append(attrs, "tool", name)
			}
			if err != nil {
				attrs = append(attrs, "error", err.Error())
				logger.Error("mcp request failed", attrs...)
			} else {
				logger.Info("mcp request", attrs...)
			}
			return result, err
		}
	}
}

// toolName extracts the tool name from a tools/call request, or "".
func toolName(req mcp.Request) string {
	params, ok := req.GetParams().(*mcp.CallToolParamsRaw)
	if !ok || params == nil {
		return ""
	}
	return params.Name
}
