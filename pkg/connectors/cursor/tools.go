package cursor

import (
	"context"

	"github.com/jbcom/vendor-connectors/pkg/agent"
	"github.com/jbcom/vendor-connectors/pkg/tools"
)

// Definitions returns the Cursor tool table. The API key comes from
// CURSOR_API_KEY.
func Definitions() []tools.Definition {
	return []tools.Definition{
		{
			Name:        "cursor_launch_agent",
			Description: "Launch a new Cursor Background Agent to perform a coding task.",
			InputSchema: tools.Object(
				tools.String("prompt", "Task description for the agent"),
				tools.String("repository", "Repository full name (owner/repo)"),
				tools.StringOpt("ref", "Git ref (branch/tag/commit)", ""),
				tools.StringOpt("branch_name", "Custom branch name for PR", ""),
			),
			Handler: func(ctx context.Context, args map[string]any) (any, error) {
				c, err := New("")
				if err != nil {
					return nil, err
				}
				return c.LaunchAgent(ctx,
					tools.ArgString(args, "prompt"),
					tools.ArgString(args, "repository"),
					tools.ArgString(args, "ref"),
					tools.ArgString(args, "branch_name"))
			},
		},
		{
			Name:        "cursor_get_agent_status",
			Description: "Check the status of a Cursor coding agent by its ID.",
			InputSchema: tools.Object(
				tools.String("agent_id", "The unique agent identifier"),
			),
			Handler: func(ctx context.Context, args map[string]any) (any, error) {
				c, err := New("")
				if err != nil {
					return nil, err
				}
				return c.GetAgentStatus(ctx, tools.ArgString(args, "agent_id"))
			},
		},
	}
}

// Tools returns the Cursor tool table in the requested framework's form.
func Tools(framework string) ([]any, error) {
	return agent.Tools(framework, Definitions())
}
