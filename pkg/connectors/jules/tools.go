package jules

import (
	"context"

	"github.com/jbcom/vendor-connectors/pkg/agent"
	"github.com/jbcom/vendor-connectors/pkg/tools"
)

// Definitions returns the Jules tool table. The API key comes from
// JULES_API_KEY.
func Definitions() []tools.Definition {
	return []tools.Definition{
		{
			Name:        "jules_list_sources",
			Description: "List sources (connected GitHub repositories) available to Jules.",
			InputSchema: tools.Object(
				tools.IntOpt("page_size", "Maximum number of results per page", 100),
			),
			Handler: func(ctx context.Context, args map[string]any) (any, error) {
				c, err := New("")
				if err != nil {
					return nil, err
				}
				return c.ListSources(ctx, tools.ArgInt(args, "page_size", 100))
			},
		},
		{
			Name:        "jules_list_sessions",
			Description: "List Jules sessions with their states and outputs.",
			InputSchema: tools.Object(
				tools.IntOpt("page_size", "Maximum number of results per page", 20),
			),
			Handler: func(ctx context.Context, args map[string]any) (any, error) {
				c, err := New("")
				if err != nil {
					return nil, err
				}
				return c.ListSessions(ctx, tools.ArgInt(args, "page_size", 20))
			},
		},
		{
			Name:        "jules_create_session",
			Description: "Create a new Jules session to perform a coding task on a source repository.",
			InputSchema: tools.Object(
				tools.String("prompt", "Task description for Jules"),
				tools.String("source", "Source resource name (e.g., sources/github/org/repo)"),
				tools.StringOpt("title", "Optional session title", ""),
				tools.StringOpt("starting_branch", "Git branch to start from", "main"),
				tools.StringOpt("automation_mode", "AUTO_CREATE_PR or MANUAL", "AUTO_CREATE_PR"),
				tools.BoolOpt("require_plan_approval", "Require explicit plan approval before Jules executes", false),
			),
			Handler: func(ctx context.Context, args map[string]any) (any, error) {
				c, err := New("")
				if err != nil {
					return nil, err
				}
				return c.CreateSession(ctx, CreateSessionRequest{
					Prompt:              tools.ArgString(args, "prompt"),
					Source:              tools.ArgString(args, "source"),
					Title:               tools.ArgString(args, "title"),
					StartingBranch:      tools.ArgString(args, "starting_branch"),
					AutomationMode:      tools.ArgString(args, "automation_mode"),
					RequirePlanApproval: tools.ArgBool(args, "require_plan_approval"),
				})
			},
		},
		{
			Name:        "jules_get_session",
			Description: "Get a Jules session by name or ID, including its state and outputs.",
			InputSchema: tools.Object(
				tools.String("session_name", "Session resource name (e.g., sessions/123) or bare ID"),
			),
			Handler: func(ctx context.Context, args map[string]any) (any, error) {
				c, err := New("")
				if err != nil {
					return nil, err
				}
				return c.GetSession(ctx, tools.ArgString(args, "session_name"))
			},
		},
		{
			Name:        "jules_approve_plan",
			Description: "Approve the plan for a Jules session awaiting plan approval.",
			InputSchema: tools.Object(
				tools.String("session_name", "Session resource name or bare ID"),
			),
			Handler: func(ctx context.Context, args map[string]any) (any, error) {
				c, err := New("")
				if err != nil {
					return nil, err
				}
				return c.ApprovePlan(ctx, tools.ArgString(args, "session_name"))
			},
		},
		{
			Name:        "jules_resume_session",
			Description: "Resume a paused or awaiting Jules session.",
			InputSchema: tools.Object(
				tools.String("session_name", "Session resource name or bare ID"),
			),
			Handler: func(ctx context.Context, args map[string]any) (any, error) {
				c, err := New("")
				if err != nil {
					return nil, err
				}
				return c.ResumeSession(ctx, tools.ArgString(args, "session_name"))
			},
		},
	}
}

// Tools returns the Jules tool table in the requested framework's form.
func Tools(framework string) ([]any, error) {
	return agent.Tools(framework, Definitions())
}
