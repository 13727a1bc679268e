// Package mcpserver exposes the registered connector tool tables over the
// Model Context Protocol. Every connector tool is registered with its
// explicit input schema; dispatch failures become error results, never
// protocol errors, so one bad call cannot kill the session.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/jbcom/vendor-connectors/pkg/connector"
	"github.com/jbcom/vendor-connectors/pkg/registry"
	"github.com/jbcom/vendor-connectors/pkg/tools"
)

// Server wraps an MCP server populated from a connector registry.
type Server struct {
	mcp      *mcp.Server
	logger   *slog.Logger
	registry *registry.Registry
	table    map[string]tools.Definition
}

// Option configures a Server.
type Option func(*options)

type options struct {
	name    string
	version string
	logger  *slog.Logger
}

// WithIdentity sets the server name and version reported to clients.
func WithIdentity(name, version string) Option {
	return func(o *options) {
		o.name = name
		o.version = version
	}
}

// WithLogger sets the request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// New builds an MCP server from the registry's discovered connectors.
func New(reg *registry.Registry, opts ...Option) *Server {
	o := &options{name: "vendor-connectors", version: "dev", logger: slog.Default()}
	for _, opt := range opts {
		opt(o)
	}

	s := &Server{
		mcp:      mcp.NewServer(&mcp.Implementation{Name: o.name, Version: o.version}, nil),
		logger:   o.logger,
		registry: reg,
		table:    make(map[string]tools.Definition),
	}
	s.mcp.AddReceivingMiddleware(LoggingMiddleware(o.logger))

	for _, def := range reg.AllTools() {
		def := def
		s.table[def.Name] = def
		s.mcp.AddTool(&mcp.Tool{
			Name:        def.Name,
			Description: def.Description,
			InputSchema: def.InputSchema,
		}, func(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			args, err := decodeArguments(req)
			if err != nil {
				return errorResult(err.Error()), nil
			}
			return s.Dispatch(ctx, def.Name, args), nil
		})
	}
	return s
}

// MCP returns the underlying MCP server, for embedding in other
// transports.
func (s *Server) MCP() *mcp.Server { return s.mcp }

// Run serves the MCP protocol over stdio until ctx is canceled or the
// client disconnects.
func (s *Server) Run(ctx context.Context) error {
	s.logger.Info("starting MCP server", "tools", len(s.table))
	return s.mcp.Run(ctx, &mcp.StdioTransport{})
}

// Dispatch executes one tool call by name. Unknown tools and handler
// failures are reported as error results with text content; Dispatch
// itself never fails.
func (s *Server) Dispatch(ctx context.Context, name string, args map[string]any) *mcp.CallToolResult {
	def, ok := s.table[name]
	if !ok {
		return errorResult(fmt.Sprintf("Unknown tool: %s", name))
	}

	validated, err := tools.ValidateArgs(def, args)
	if err != nil {
		return errorResult(connector.FormatError(err))
	}

	result, err := def.Handler(ctx, validated)
	if err != nil {
		return errorResult(connector.FormatError(err))
	}

	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return errorResult(connector.FormatError(fmt.Errorf("encoding result: %w", err)))
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: string(data)}},
	}
}

// decodeArguments parses the raw JSON arguments of a tool call. Absent
// arguments are an empty map.
func decodeArguments(req *mcp.CallToolRequest) (map[string]any, error) {
	if req.Params == nil || len(req.Params.Arguments) == 0 {
		return map[string]any{}, nil
	}
	var args map[string]any
	if err := json.Unmarshal(req.Params.Arguments, &args); err != nil {
		return nil, fmt.Errorf("arguments must be a JSON object: %v", err)
	}
	return args, nil
}

func errorResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
	}
}
