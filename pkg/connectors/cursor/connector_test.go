package cursor

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jbcom/vendor-connectors/pkg/connector"
	"github.com/jbcom/vendor-connectors/pkg/tools"
)

func TestLaunchAgent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/v0/agents", r.URL.Path)
		assert.Equal(t, "Bearer key-1", r.Header.Get("Authorization"))

		var req map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		prompt := req["prompt"].(map[string]any)
		assert.Equal(t, "fix the flaky test", prompt["text"])

		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":     "bc_abc123",
			"status": "RUNNING",
			"source": map[string]any{"repository": "acme/api"},
		})
	}))
	t.Cleanup(srv.Close)
	t.Setenv(baseURLEnv, srv.URL)

	c, err := New("key-1")
	require.NoError(t, err)

	agent, err := c.LaunchAgent(context.Background(), "fix the flaky test", "acme/api", "", "")
	require.NoError(t, err)
	assert.Equal(t, "bc_abc123", agent.AgentID)
	assert.Equal(t, "RUNNING", agent.State)
	assert.Equal(t, "acme/api", agent.Repository)
}

func TestLaunchAgent_RequiresPromptAndRepo(t *testing.T) {
	c, err := New("key-1")
	require.NoError(t, err)

	_, err = c.LaunchAgent(context.Background(), "", "acme/api", "", "")
	require.Error(t, err)
	assert.Equal(t, connector.TypeValidation, connector.TypeOf(err))
}

func TestGetAgentStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v0/agents/bc_abc123", r.URL.Path)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":     "bc_abc123",
			"status": "FINISHED",
			"target": map[string]any{"prUrl": "https://github.com/acme/api/pull/7"},
		})
	}))
	t.Cleanup(srv.Close)
	t.Setenv(baseURLEnv, srv.URL)

	c, err := New("key-1")
	require.NoError(t, err)

	agent, err := c.GetAgentStatus(context.Background(), "bc_abc123")
	require.NoError(t, err)
	assert.Equal(t, "FINISHED", agent.State)
	assert.Equal(t, "https://github.com/acme/api/pull/7", agent.PRURL)
}

func TestListAgents(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v0/agents", r.URL.Path)
		assert.Equal(t, "5", r.URL.Query().Get("limit"))
		_ = json.NewEncoder(w).Encode(map[string]any{
			"agents": []map[string]any{
				{"id": "bc_new", "status": "RUNNING"},
				{"id": "bc_old", "status": "FINISHED"},
			},
		})
	}))
	t.Cleanup(srv.Close)
	t.Setenv(baseURLEnv, srv.URL)

	c, err := New("key-1")
	require.NoError(t, err)

	agents, err := c.ListAgents(context.Background(), 5)
	require.NoError(t, err)
	require.Len(t, agents, 2)
	assert.Equal(t, "bc_new", agents[0].AgentID)
	assert.Equal(t, "FINISHED", agents[1].State)
}

func TestDefinitions_TableInvariants(t *testing.T) {
	defs := Definitions()
	require.NoError(t, tools.Validate(Name, defs))
	assert.Len(t, defs, 2)
}
