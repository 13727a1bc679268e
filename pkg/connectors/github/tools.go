package github

import (
	"context"

	"github.com/jbcom/vendor-connectors/pkg/agent"
	"github.com/jbcom/vendor-connectors/pkg/tools"
)

// Definitions returns the GitHub tool table. Every tool takes github_owner
// plus an optional github_token override; the token otherwise comes from
// GITHUB_TOKEN.
func Definitions() []tools.Definition {
	return []tools.Definition{
		{
			Name:        "github_list_repositories",
			Description: "List repositories in the GitHub organization. Returns repository names, descriptions, and metadata.",
			InputSchema: tools.Object(
				tools.String("github_owner", "GitHub organization name"),
				tools.StringOpt("github_token", "GitHub personal access token. Defaults to GITHUB_TOKEN.", ""),
				tools.StringOpt("type_filter", "Filter type: all, public, private, forks, sources, member", "all"),
				tools.BoolOpt("include_branches", "Include branch names per repository", false),
			),
			Handler: func(ctx context.Context, args map[string]any) (any, error) {
				c, err := connectorFromArgs(args)
				if err != nil {
					return nil, err
				}
				return c.ListRepositories(ctx, tools.ArgString(args, "type_filter"), tools.ArgBool(args, "include_branches"))
			},
		},
		{
			Name:        "github_get_repository",
			Description: "Get a specific repository details by name.",
			InputSchema: tools.Object(
				tools.String("github_owner", "GitHub organization name"),
				tools.String("repo_name", "Repository name"),
				tools.StringOpt("github_token", "GitHub personal access token. Defaults to GITHUB_TOKEN.", ""),
			),
			Handler: func(ctx context.Context, args map[string]any) (any, error) {
				c, err := connectorFromArgs(args)
				if err != nil {
					return nil, err
				}
				return c.GetRepository(ctx, tools.ArgString(args, "repo_name"))
			},
		},
		{
			Name:        "github_list_teams",
			Description: "List teams in the GitHub organization with their metadata.",
			InputSchema: tools.Object(
				tools.String("github_owner", "GitHub organization name"),
				tools.StringOpt("github_token", "GitHub personal access token. Defaults to GITHUB_TOKEN.", ""),
				tools.BoolOpt("include_members", "Include member logins per team", false),
				tools.BoolOpt("include_repos", "Include repository names per team", false),
			),
			Handler: func(ctx context.Context, args map[string]any) (any, error) {
				c, err := connectorFromArgs(args)
				if err != nil {
					return nil, err
				}
				return c.ListTeams(ctx, tools.ArgBool(args, "include_members"), tools.ArgBool(args, "include_repos"))
			},
		},
		{
			Name:        "github_get_team",
			Description: "Get a specific team details by slug.",
			InputSchema: tools.Object(
				tools.String("github_owner", "GitHub organization name"),
				tools.String("team_slug", "Team slug"),
				tools.StringOpt("github_token", "GitHub personal access token. Defaults to GITHUB_TOKEN.", ""),
			),
			Handler: func(ctx context.Context, args map[string]any) (any, error) {
				c, err := connectorFromArgs(args)
				if err != nil {
					return nil, err
				}
				return c.GetTeam(ctx, tools.ArgString(args, "team_slug"))
			},
		},
		{
			Name:        "github_list_org_members",
			Description: "List members in the GitHub organization with their roles and details.",
			InputSchema: tools.Object(
				tools.String("github_owner", "GitHub organization name"),
				tools.StringOpt("github_token", "GitHub personal access token. Defaults to GITHUB_TOKEN.", ""),
				tools.StringOpt("role", "Filter by role: admin or member. Empty returns all.", ""),
				tools.BoolOpt("include_pending", "Include pending invitations", false),
			),
			Handler: func(ctx context.Context, args map[string]any) (any, error) {
				c, err := connectorFromArgs(args)
				if err != nil {
					return nil, err
				}
				return c.ListOrgMembers(ctx, tools.ArgString(args, "role"), tools.ArgBool(args, "include_pending"))
			},
		},
		{
			Name:        "github_get_repository_file",
			Description: "Get file contents from a repository. Returns the file content and metadata.",
			InputSchema: tools.Object(
				tools.String("github_owner", "GitHub organization name"),
				tools.String("github_repo", "Repository name"),
				tools.String("file_path", "Path to the file in the repository"),
				tools.StringOpt("github_token", "GitHub personal access token. Defaults to GITHUB_TOKEN.", ""),
				tools.StringOpt("github_branch", "Branch name. Defaults to the repository's default branch.", ""),
			),
			Handler: func(ctx context.Context, args map[string]any) (any, error) {
				c, err := connectorFromArgs(args)
				if err != nil {
					return nil, err
				}
				return c.GetRepositoryFile(ctx,
					tools.ArgString(args, "github_repo"),
					tools.ArgString(args, "file_path"),
					tools.ArgString(args, "github_branch"))
			},
		},
	}
}

// Tools returns the GitHub tool table in the requested framework's form.
func Tools(framework string) ([]any, error) {
	return agent.Tools(framework, Definitions())
}

func connectorFromArgs(args map[string]any) (*Connector, error) {
	return New(tools.ArgString(args, "github_owner"), tools.ArgString(args, "github_token"))
}
