package google

import (
	"context"

	"github.com/jbcom/vendor-connectors/pkg/agent"
	"github.com/jbcom/vendor-connectors/pkg/tools"
)

// Definitions returns the Google tool table. The access token comes from
// GOOGLE_ACCESS_TOKEN.
func Definitions() []tools.Definition {
	return []tools.Definition{
		{
			Name:        "google_list_projects",
			Description: "List Google Cloud projects with their IDs, names, and states.",
			InputSchema: tools.Object(
				tools.StringOpt("parent", "Parent resource (e.g., 'organizations/123' or 'folders/456'). Empty lists all accessible projects.", ""),
				tools.IntOpt("max_results", "Maximum number of projects to return", 100),
			),
			Handler: func(ctx context.Context, args map[string]any) (any, error) {
				c, err := New("")
				if err != nil {
					return nil, err
				}
				return c.ListProjects(ctx, tools.ArgString(args, "parent"), tools.ArgInt(args, "max_results", 100))
			},
		},
		{
			Name:        "google_list_enabled_services",
			Description: "List enabled APIs/services in a Google Cloud project.",
			InputSchema: tools.Object(
				tools.String("project_id", "The GCP project ID to list services for"),
				tools.IntOpt("max_results", "Maximum number of services to return", 100),
			),
			Handler: func(ctx context.Context, args map[string]any) (any, error) {
				c, err := New("")
				if err != nil {
					return nil, err
				}
				return c.ListEnabledServices(ctx, tools.ArgString(args, "project_id"), tools.ArgInt(args, "max_results", 100))
			},
		},
		{
			Name:        "google_list_billing_accounts",
			Description: "List Google Cloud billing accounts with their status.",
			InputSchema: tools.Object(
				tools.IntOpt("max_results", "Maximum number of billing accounts to return", 100),
			),
			Handler: func(ctx context.Context, args map[string]any) (any, error) {
				c, err := New("")
				if err != nil {
					return nil, err
				}
				return c.ListBillingAccounts(ctx, tools.ArgInt(args, "max_results", 100))
			},
		},
		{
			Name:        "google_list_workspace_users",
			Description: "List users from Google Workspace with their details.",
			InputSchema: tools.Object(
				tools.StringOpt("domain", "Domain to list users from. Empty uses the default domain.", ""),
				tools.IntOpt("max_results", "Maximum number of users to return", 100),
			),
			Handler: func(ctx context.Context, args map[string]any) (any, error) {
				c, err := New("")
				if err != nil {
					return nil, err
				}
				return c.ListWorkspaceUsers(ctx, tools.ArgString(args, "domain"), tools.ArgInt(args, "max_results", 100))
			},
		},
		{
			Name:        "google_list_workspace_groups",
			Description: "List groups from Google Workspace with member counts.",
			InputSchema: tools.Object(
				tools.StringOpt("domain", "Domain to list groups from. Empty uses the default domain.", ""),
				tools.IntOpt("max_results", "Maximum number of groups to return", 100),
			),
			Handler: func(ctx context.Context, args map[string]any) (any, error) {
				c, err := New("")
				if err != nil {
					return nil, err
				}
				return c.ListWorkspaceGroups(ctx, tools.ArgString(args, "domain"), tools.ArgInt(args, "max_results", 100))
			},
		},
	}
}

// Tools returns the Google tool table in the requested framework's form.
func Tools(framework string) ([]any, error) {
	return agent.Tools(framework, Definitions())
}
