package anthropic

import (
	"context"

	"github.com/jbcom/vendor-connectors/pkg/agent"
	"github.com/jbcom/vendor-connectors/pkg/tools"
)

// Definitions returns the Anthropic tool table. The API key comes from
// ANTHROPIC_API_KEY.
func Definitions() []tools.Definition {
	return []tools.Definition{
		{
			Name:        "anthropic_create_message",
			Description: "Create a message using Anthropic Claude AI. Provide a model ID and prompt.",
			InputSchema: tools.Object(
				tools.String("model", "Model ID (e.g., 'claude-sonnet-4-5-20250929')"),
				tools.String("prompt", "The user prompt text"),
				tools.IntOpt("max_tokens", "Maximum tokens to generate", 1024),
				tools.StringOpt("system", "Optional system prompt", ""),
			),
			Handler: func(ctx context.Context, args map[string]any) (any, error) {
				c, err := New("")
				if err != nil {
					return nil, err
				}
				return c.CreateMessage(ctx,
					tools.ArgString(args, "model"),
					tools.ArgString(args, "prompt"),
					tools.ArgString(args, "system"),
					tools.ArgInt(args, "max_tokens", 1024))
			},
		},
		{
			Name:        "anthropic_list_models",
			Description: "List available Anthropic Claude models.",
			InputSchema: tools.Object(),
			Handler: func(ctx context.Context, args map[string]any) (any, error) {
				c, err := New("")
				if err != nil {
					return nil, err
				}
				return c.ListModels(ctx)
			},
		},
	}
}

// Tools returns the Anthropic tool table in the requested framework's form.
func Tools(framework string) ([]any, error) {
	return agent.Tools(framework, Definitions())
}
