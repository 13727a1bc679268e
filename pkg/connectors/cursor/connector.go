// Package cursor is a thin connector for the Cursor Background Agents
// API: launching coding agents and polling their status.
package cursor

import (
	"context"
	"net/url"
	"strconv"

	"github.com/jbcom/vendor-connectors/pkg/connector"
)

const (
	Name          = "cursor"
	Description   = "Cursor Background Agent operations: launch coding agents and check status."
	CredentialEnv = "CURSOR_API_KEY"

	baseURLEnv     = "CURSOR_API_URL"
	defaultBaseURL = "https://api.cursor.com"
)

// BaseURL returns the API base URL, honoring the CURSOR_API_URL override.
func BaseURL() string {
	return connector.BaseURL(Name, baseURLEnv, defaultBaseURL)
}

// Connector wraps the Cursor Background Agents API.
type Connector struct {
	client *connector.Client
}

// New creates a Cursor connector. An empty key falls back to
// CURSOR_API_KEY.
func New(apiKey string, opts ...connector.ClientOption) (*Connector, error) {
	resolved, err := connector.Credential(Name, apiKey, CredentialEnv)
	if err != nil {
		return nil, err
	}

	headers := func(ctx context.Context) (map[string]string, error) {
		return map[string]string{"Authorization": "Bearer " + resolved}, nil
	}
	opts = append([]connector.ClientOption{connector.WithHeaderFunc(headers)}, opts...)
	return &Connector{client: connector.NewClient(Name, BaseURL(), opts...)}, nil
}

// agentResponse is the wire shape of an agent record.
type agentResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
	Source struct {
		Repository string `json:"repository"`
		Ref        string `json:"ref"`
	} `json:"source"`
	Target struct {
		BranchName string `json:"branchName"`
		PRURL      string `json:"prUrl"`
	} `json:"target"`
	Error string `json:"error,omitempty"`
}

// Agent is the reshaped agent record the tools expose.
type Agent struct {
	AgentID    string `json:"agent_id"`
	State      string `json:"state"`
	Repository string `json:"repository,omitempty"`
	BranchName string `json:"branch_name,omitempty"`
	PRURL      string `json:"pr_url,omitempty"`
	Error      string `json:"error,omitempty"`
}

// LaunchAgent starts a background coding agent against a repository.
// ref and branchName are optional.
func (c *Connector) LaunchAgent(ctx context.Context, prompt, repository, ref, branchName string) (*Agent, error) {
	if prompt == "" || repository == "" {
		return nil, connector.ValidationError(Name, "prompt and repository are required")
	}

	source := map[string]any{"repository": repository}
	if ref != "" {
		source["ref"] = ref
	}
	body := map[string]any{
		"prompt": map[string]any{"text": prompt},
		"source": source,
	}
	if branchName != "" {
		body["target"] = map[string]any{"branchName": branchName}
	}

	var resp agentResponse
	if err := c.client.Post(ctx, "/v0/agents", body, &resp); err != nil {
		return nil, err
	}
	return reshape(resp), nil
}

// GetAgentStatus returns an agent's current state.
func (c *Connector) GetAgentStatus(ctx context.Context, agentID string) (*Agent, error) {
	if agentID == "" {
		return nil, connector.ValidationError(Name, "agent_id is required")
	}

	var resp agentResponse
	if err := c.client.Get(ctx, "/v0/agents/"+agentID, nil, &resp); err != nil {
		return nil, err
	}
	return reshape(resp), nil
}

// ListAgents lists background agents, newest first. limit of 0 uses the
// API default.
func (c *Connector) ListAgents(ctx context.Context, limit int) ([]*Agent, error) {
	query := url.Values{}
	if limit > 0 {
		query.Set("limit", strconv.Itoa(limit))
	}

	var resp struct {
		Agents []agentResponse `json:"agents"`
	}
	if err := c.client.Get(ctx, "/v0/agents", query, &resp); err != nil {
		return nil, err
	}
	agents := make([]*Agent, len(resp.Agents))
	for i, a := range resp.Agents {
		agents[i] = reshape(a)
	}
	return agents, nil
}

func reshape(resp agentResponse) *Agent {
	return &Agent{
		AgentID:    resp.ID,
		State:      resp.Status,
		Repository: resp.Source.Repository,
		BranchName: resp.Target.BranchName,
		PRURL:      resp.Target.PRURL,
		Error:      resp.Error,
	}
}
