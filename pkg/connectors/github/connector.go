// Package github is a thin connector for the GitHub REST API scoped to a
// single organization: repositories, teams, membership, and file contents.
package github

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/jbcom/vendor-connectors/pkg/connector"
)

const (
	Name          = "github"
	Description   = "GitHub organization operations: repositories, teams, members, and file contents."
	CredentialEnv = "GITHUB_TOKEN"

	baseURLEnv     = "GITHUB_API_URL"
	defaultBaseURL = "https://api.github.com"

	// GitHub caps per_page at 100; use it to minimize round trips.
	pageSize = 100
)

// BaseURL returns the API base URL, honoring the GITHUB_API_URL override.
func BaseURL() string {
	return connector.BaseURL(Name, baseURLEnv, defaultBaseURL)
}

// Connector wraps the GitHub REST API for one organization.
type Connector struct {
	client *connector.Client
	owner  string
}

// New creates a GitHub connector. An empty token falls back to GITHUB_TOKEN.
func New(owner, token string, opts ...connector.ClientOption) (*Connector, error) {
	if owner == "" {
		return nil, connector.ValidationError(Name, "github_owner is required")
	}
	resolved, err := connector.Credential(Name, token, CredentialEnv)
	if err != nil {
		return nil, err
	}

	headers := func(ctx context.Context) (map[string]string, error) {
		return map[string]string{
			"Authorization":        "Bearer " + resolved,
			"Accept":               "application/vnd.github+json",
			"X-GitHub-Api-Version": "2022-11-28",
		}, nil
	}

	opts = append([]connector.ClientOption{connector.WithHeaderFunc(headers)}, opts...)
	return &Connector{
		client: connector.NewClient(Name, BaseURL(), opts...),
		owner:  owner,
	}, nil
}

// Repository is the subset of repository metadata the tools expose.
type Repository struct {
	Name          string   `json:"name"`
	FullName      string   `json:"full_name"`
	Description   string   `json:"description"`
	Private       bool     `json:"private"`
	Archived      bool     `json:"archived"`
	DefaultBranch string   `json:"default_branch"`
	HTMLURL       string   `json:"html_url"`
	Language      string   `json:"language"`
	Topics        []string `json:"topics"`
	Branches      []string `json:"branches,omitempty"`
}

// ListRepositories lists the organization's repositories. typeFilter is one
// of all, public, private, forks, sources, member. When includeBranches is
// set, each repository carries its branch names as well.
func (c *Connector) ListRepositories(ctx context.Context, typeFilter string, includeBranches bool) ([]Repository, error) {
	if typeFilter == "" {
		typeFilter = "all"
	}

	var repos []Repository
	for page := 1; ; page++ {
		query := url.Values{
			"type":     {typeFilter},
			"per_page": {strconv.Itoa(pageSize)},
			"page":     {strconv.Itoa(page)},
		}
		var batch []Repository
		if err := c.client.Get(ctx, fmt.Sprintf("/orgs/%s/repos", c.owner), query, &batch); err != nil {
			return nil, err
		}
		repos = append(repos, batch...)
		if len(batch) < pageSize {
			break
		}
	}

	if includeBranches {
		for i := range repos {
			branches, err := c.listBranches(ctx, repos[i].Name)
			if err != nil {
				return nil, err
			}
			repos[i].Branches = branches
		}
	}
	return repos, nil
}

func (c *Connector) listBranches(ctx context.Context, repo string) ([]string, error) {
	var names []string
	for page := 1; ; page++ {
		query := url.Values{
			"per_page": {strconv.Itoa(pageSize)},
			"page":     {strconv.Itoa(page)},
		}
		var batch []struct {
			Name string `json:"name"`
		}
		if err := c.client.Get(ctx, fmt.Sprintf("/repos/%s/%s/branches", c.owner, repo), query, &batch); err != nil {
			return nil, err
		}
		for _, b := range batch {
			names = append(names, b.Name)
		}
		if len(batch) < pageSize {
			break
		}
	}
	return names, nil
}

// GetRepository returns one repository's details.
func (c *Connector) GetRepository(ctx context.Context, repo string) (*Repository, error) {
	var out Repository
	if err := c.client.Get(ctx, fmt.Sprintf("/repos/%s/%s", c.owner, repo), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Team is the subset of team metadata the tools expose.
type Team struct {
	Slug         string   `json:"slug"`
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Privacy      string   `json:"privacy"`
	Permission   string   `json:"permission"`
	HTMLURL      string   `json:"html_url"`
	MembersCount int      `json:"members_count"`
	ReposCount   int      `json:"repos_count"`
	Members      []string `json:"members,omitempty"`
	Repos        []string `json:"repos,omitempty"`
}

// ListTeams lists the organization's teams, optionally expanding member
// logins and repository names per team.
func (c *Connector) ListTeams(ctx context.Context, includeMembers, includeRepos bool) ([]Team, error) {
	var teams []Team
	for page := 1; ; page++ {
		query := url.Values{
			"per_page": {strconv.Itoa(pageSize)},
			"page":     {strconv.Itoa(page)},
		}
		var batch []Team
		if err := c.client.Get(ctx, fmt.Sprintf("/orgs/%s/teams", c.owner), query, &batch); err != nil {
			return nil, err
		}
		teams = append(teams, batch...)
		if len(batch) < pageSize {
			break
		}
	}

	for i := range teams {
		if includeMembers {
			members, err := c.teamMembers(ctx, teams[i].Slug)
			if err != nil {
				return nil, err
			}
			teams[i].Members = members
			teams[i].MembersCount = len(members)
		}
		if includeRepos {
			repos, err := c.teamRepos(ctx, teams[i].Slug)
			if err != nil {
				return nil, err
			}
			teams[i].Repos = repos
			teams[i].ReposCount = len(repos)
		}
	}
	return teams, nil
}

func (c *Connector) teamMembers(ctx context.Context, slug string) ([]string, error) {
	var logins []string
	var batch []struct {
		Login string `json:"login"`
	}
	if err := c.client.Get(ctx, fmt.Sprintf("/orgs/%s/teams/%s/members", c.owner, slug), nil, &batch); err != nil {
		return nil, err
	}
	for _, m := range batch {
		logins = append(logins, m.Login)
	}
	return logins, nil
}

func (c *Connector) teamRepos(ctx context.Context, slug string) ([]string, error) {
	var names []string
	var batch []struct {
		Name string `json:"name"`
	}
	if err := c.client.Get(ctx, fmt.Sprintf("/orgs/%s/teams/%s/repos", c.owner, slug), nil, &batch); err != nil {
		return nil, err
	}
	for _, r := range batch {
		names = append(names, r.Name)
	}
	return names, nil
}

// GetTeam returns one team's details by slug.
func (c *Connector) GetTeam(ctx context.Context, slug string) (*Team, error) {
	var out Team
	if err := c.client.Get(ctx, fmt.Sprintf("/orgs/%s/teams/%s", c.owner, slug), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Member is the subset of organization member metadata the tools expose.
type Member struct {
	Login     string `json:"login"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	State     string `json:"state"`
	AvatarURL string `json:"avatar_url"`
	HTMLURL   string `json:"html_url"`
}

// ListOrgMembers lists organization members. role filters by "admin" or
// "member"; empty returns all. includePending appends outstanding
// invitations with state "pending".
func (c *Connector) ListOrgMembers(ctx context.Context, role string, includePending bool) ([]Member, error) {
	roleFilter := role
	if roleFilter == "" {
		roleFilter = "all"
	}

	var members []Member
	for page := 1; ; page++ {
		query := url.Values{
			"role":     {roleFilter},
			"per_page": {strconv.Itoa(pageSize)},
			"page":     {strconv.Itoa(page)},
		}
		var batch []Member
		if err := c.client.Get(ctx, fmt.Sprintf("/orgs/%s/members", c.owner), query, &batch); err != nil {
			return nil, err
		}
		for _, m := range batch {
			m.State = "active"
			if m.Role == "" {
				m.Role = role
			}
			members = append(members, m)
		}
		if len(batch) < pageSize {
			break
		}
	}

	if includePending {
		var invites []struct {
			Login string `json:"login"`
			Email string `json:"email"`
			Role  string `json:"role"`
		}
		if err := c.client.Get(ctx, fmt.Sprintf("/orgs/%s/invitations", c.owner), nil, &invites); err != nil {
			return nil, err
		}
		for _, inv := range invites {
			members = append(members, Member{
				Login: inv.Login,
				Email: inv.Email,
				Role:  inv.Role,
				State: "pending",
			})
		}
	}
	return members, nil
}

// File is a decoded repository file.
type File struct {
	Path    string `json:"path"`
	Content string `json:"content"`
	SHA     string `json:"sha"`
	Status  string `json:"status"`
}

// GetRepositoryFile fetches and decodes one file from a repository. An
// empty ref uses the repository's default branch.
func (c *Connector) GetRepositoryFile(ctx context.Context, repo, path, ref string) (*File, error) {
	query := url.Values{}
	if ref != "" {
		query.Set("ref", ref)
	}

	var raw struct {
		Path     string `json:"path"`
		SHA      string `json:"sha"`
		Content  string `json:"content"`
		Encoding string `json:"encoding"`
	}
	if err := c.client.Get(ctx, fmt.Sprintf("/repos/%s/%s/contents/%s", c.owner, repo, strings.TrimLeft(path, "/")), query, &raw); err != nil {
		return nil, err
	}

	content := raw.Content
	if raw.Encoding == "base64" {
		decoded, err := base64.StdEncoding.DecodeString(strings.ReplaceAll(raw.Content, "\n", ""))
		if err != nil {
			return nil, connector.NewError(Name, connector.TypeProvider, fmt.Sprintf("decoding %s: %v", path, err))
		}
		content = string(decoded)
	}

	status := "retrieved"
	if content == "" {
		status = "empty"
	}
	return &File{Path: raw.Path, Content: content, SHA: raw.SHA, Status: status}, nil
}
