// Package jules is a thin connector for the Google Jules coding agent
// API: sources, sessions, plan approval, and session resumption.
package jules

import (
	"context"
	"net/url"
	"strconv"
	"strings"

	"github.com/jbcom/vendor-connectors/pkg/connector"
)

const (
	Name          = "jules"
	Description   = "Google Jules AI coding agent operations: sources, sessions, and plan approval."
	CredentialEnv = "JULES_API_KEY"

	baseURLEnv     = "JULES_API_URL"
	defaultBaseURL = "https://jules.googleapis.com/v1alpha"
)

// Jules session states.
const (
	StateRunning              = "RUNNING"
	StatePaused               = "PAUSED"
	StateCompleted            = "COMPLETED"
	StateFailed               = "FAILED"
	StateAwaitingPlanApproval = "AWAITING_PLAN_APPROVAL"
	StateAwaitingUserResponse = "AWAITING_USER_RESPONSE"
	StateCancelled            = "CANCELLED"
)

// BaseURL returns the API base URL, honoring the JULES_API_URL override.
func BaseURL() string {
	return connector.BaseURL(Name, baseURLEnv, defaultBaseURL)
}

// Connector wraps the Jules API.
type Connector struct {
	client *connector.Client
}

// New creates a Jules connector. An empty key falls back to JULES_API_KEY.
func New(apiKey string, opts ...connector.ClientOption) (*Connector, error) {
	resolved, err := connector.Credential(Name, apiKey, CredentialEnv)
	if err != nil {
		return nil, err
	}

	headers := func(ctx context.Context) (map[string]string, error) {
		return map[string]string{"X-Goog-Api-Key": resolved}, nil
	}
	opts = append([]connector.ClientOption{connector.WithHeaderFunc(headers)}, opts...)
	return &Connector{client: connector.NewClient(Name, BaseURL(), opts...)}, nil
}

// Source is a connected repository Jules can work on.
type Source struct {
	Name       string         `json:"name"`
	ID         string         `json:"id"`
	GitHubRepo map[string]any `json:"githubRepo,omitempty"`
}

// ListSources lists connected sources, following page-token pagination.
func (c *Connector) ListSources(ctx context.Context, pageSize int) ([]Source, error) {
	if pageSize <= 0 {
		pageSize = 100
	}

	var sources []Source
	pageToken := ""
	for {
		query := url.Values{"pageSize": {strconv.Itoa(pageSize)}}
		if pageToken != "" {
			query.Set("pageToken", pageToken)
		}

		var resp struct {
			Sources       []Source `json:"sources"`
			NextPageToken string   `json:"nextPageToken"`
		}
		if err := c.client.Get(ctx, "/sources", query, &resp); err != nil {
			return nil, err
		}
		sources = append(sources, resp.Sources...)
		pageToken = resp.NextPageToken
		if pageToken == "" {
			break
		}
	}
	return sources, nil
}

// SourceContext ties a session to its source repository.
type SourceContext struct {
	Source            string         `json:"source"`
	GitHubRepoContext map[string]any `json:"githubRepoContext,omitempty"`
}

// Session is a Jules work session.
type Session struct {
	Name          string           `json:"name"`
	ID            string           `json:"id,omitempty"`
	Title         string           `json:"title,omitempty"`
	Prompt        string           `json:"prompt,omitempty"`
	State         string           `json:"state,omitempty"`
	SourceContext *SourceContext   `json:"sourceContext,omitempty"`
	Outputs       []map[string]any `json:"outputs,omitempty"`
}

// PullRequest returns the PR output of a completed session, if any.
func (s *Session) PullRequest() (url, title string, ok bool) {
	for _, output := range s.Outputs {
		pr, found := output["pullRequest"].(map[string]any)
		if !found {
			continue
		}
		u, _ := pr["url"].(string)
		t, _ := pr["title"].(string)
		return u, t, true
	}
	return "", "", false
}

// CreateSessionRequest holds the inputs for CreateSession.
type CreateSessionRequest struct {
	Prompt              string
	Source              string
	Title               string
	StartingBranch      string
	AutomationMode      string
	RequirePlanApproval bool
}

// CreateSession starts a new Jules session against a source.
func (c *Connector) CreateSession(ctx context.Context, req CreateSessionRequest) (*Session, error) {
	if req.Prompt == "" || req.Source == "" {
		return nil, connector.ValidationError(Name, "prompt and source are required")
	}
	if req.StartingBranch == "" {
		req.StartingBranch = "main"
	}
	if req.AutomationMode == "" {
		req.AutomationMode = "AUTO_CREATE_PR"
	}

	body := map[string]any{
		"prompt": req.Prompt,
		"sourceContext": map[string]any{
			"source": req.Source,
			"githubRepoContext": map[string]any{
				"startingBranch": req.StartingBranch,
			},
		},
		"automationMode": req.AutomationMode,
	}
	if req.Title != "" {
		body["title"] = req.Title
	}
	if req.RequirePlanApproval {
		body["requirePlanApproval"] = true
	}

	var session Session
	if err := c.client.Post(ctx, "/sessions", body, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

// GetSession returns a session by resource name or bare ID.
func (c *Connector) GetSession(ctx context.Context, sessionName string) (*Session, error) {
	if sessionName == "" {
		return nil, connector.ValidationError(Name, "session_name is required")
	}

	var session Session
	if err := c.client.Get(ctx, "/"+qualify(sessionName), nil, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

// ListSessions lists sessions, following page-token pagination.
func (c *Connector) ListSessions(ctx context.Context, pageSize int) ([]Session, error) {
	if pageSize <= 0 {
		pageSize = 20
	}

	var sessions []Session
	pageToken := ""
	for {
		query := url.Values{"pageSize": {strconv.Itoa(pageSize)}}
		if pageToken != "" {
			query.Set("pageToken", pageToken)
		}

		var resp struct {
			Sessions      []Session `json:"sessions"`
			NextPageToken string    `json:"nextPageToken"`
		}
		if err := c.client.Get(ctx, "/sessions", query, &resp); err != nil {
			return nil, err
		}
		sessions = append(sessions, resp.Sessions...)
		pageToken = resp.NextPageToken
		if pageToken == "" {
			break
		}
	}
	return sessions, nil
}

// ApprovePlan approves a session awaiting plan approval. The API returns
// an empty body, so the updated session is fetched afterwards.
func (c *Connector) ApprovePlan(ctx context.Context, sessionName string) (*Session, error) {
	if sessionName == "" {
		return nil, connector.ValidationError(Name, "session_name is required")
	}

	if err := c.client.Post(ctx, "/"+qualify(sessionName)+":approvePlan", map[string]any{}, nil); err != nil {
		return nil, err
	}
	return c.GetSession(ctx, sessionName)
}

// ResumeSession resumes a paused or awaiting session via the sendMessage
// endpoint with an empty body.
func (c *Connector) ResumeSession(ctx context.Context, sessionName string) (*Session, error) {
	if sessionName == "" {
		return nil, connector.ValidationError(Name, "session_name is required")
	}

	if err := c.client.Post(ctx, "/"+qualify(sessionName)+":sendMessage", map[string]any{}, nil); err != nil {
		return nil, err
	}
	return c.GetSession(ctx, sessionName)
}

// qualify accepts both full resource names and bare session IDs.
func qualify(sessionName string) string {
	if strings.HasPrefix(sessionName, "sessions/") {
		return sessionName
	}
	return "sessions/" + sessionName
}
