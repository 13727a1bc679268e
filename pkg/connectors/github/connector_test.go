package github

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jbcom/vendor-connectors/pkg/connector"
	"github.com/jbcom/vendor-connectors/pkg/tools"
)

func newTestServer(t *testing.T, routes map[string]any) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		payload, ok := routes[r.URL.Path]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"message": "Not Found"}`))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(payload)
	}))
	t.Cleanup(srv.Close)
	t.Setenv(baseURLEnv, srv.URL)
	return srv
}

func TestNew_RequiresOwnerAndToken(t *testing.T) {
	t.Setenv(CredentialEnv, "")

	_, err := New("", "token")
	require.Error(t, err)
	assert.Equal(t, connector.TypeValidation, connector.TypeOf(err))

	_, err = New("acme", "")
	require.Error(t, err)
	assert.Equal(t, connector.TypeAuthentication, connector.TypeOf(err))
	assert.Contains(t, err.Error(), CredentialEnv)
}

func TestListRepositories(t *testing.T) {
	newTestServer(t, map[string]any{
		"/orgs/acme/repos": []map[string]any{
			{"name": "api", "full_name": "acme/api", "private": true, "default_branch": "main", "topics": []string{"go"}},
			{"name": "web", "full_name": "acme/web", "archived": true},
		},
	})

	c, err := New("acme", "test-token")
	require.NoError(t, err)

	repos, err := c.ListRepositories(context.Background(), "", false)
	require.NoError(t, err)
	require.Len(t, repos, 2)
	assert.Equal(t, "api", repos[0].Name)
	assert.True(t, repos[0].Private)
	assert.Equal(t, []string{"go"}, repos[0].Topics)
	assert.True(t, repos[1].Archived)
}

func TestListRepositories_IncludeBranches(t *testing.T) {
	newTestServer(t, map[string]any{
		"/orgs/acme/repos": []map[string]any{
			{"name": "api", "default_branch": "main"},
		},
		"/repos/acme/api/branches": []map[string]any{
			{"name": "main"}, {"name": "develop"},
		},
	})

	c, err := New("acme", "test-token")
	require.NoError(t, err)

	repos, err := c.ListRepositories(context.Background(), "all", true)
	require.NoError(t, err)
	require.Len(t, repos, 1)
	assert.Equal(t, []string{"main", "develop"}, repos[0].Branches)
}

func TestGetRepository_NotFound(t *testing.T) {
	newTestServer(t, map[string]any{})

	c, err := New("acme", "test-token")
	require.NoError(t, err)

	_, err = c.GetRepository(context.Background(), "missing")
	require.Error(t, err)
	assert.True(t, connector.IsNotFound(err))
}

func TestListTeams_Expanded(t *testing.T) {
	newTestServer(t, map[string]any{
		"/orgs/acme/teams": []map[string]any{
			{"slug": "platform", "name": "Platform", "privacy": "closed"},
		},
		"/orgs/acme/teams/platform/members": []map[string]any{
			{"login": "alice"}, {"login": "bob"},
		},
		"/orgs/acme/teams/platform/repos": []map[string]any{
			{"name": "api"},
		},
	})

	c, err := New("acme", "test-token")
	require.NoError(t, err)

	teams, err := c.ListTeams(context.Background(), true, true)
	require.NoError(t, err)
	require.Len(t, teams, 1)
	assert.Equal(t, []string{"alice", "bob"}, teams[0].Members)
	assert.Equal(t, 2, teams[0].MembersCount)
	assert.Equal(t, []string{"api"}, teams[0].Repos)
}

func TestListOrgMembers_IncludePending(t *testing.T) {
	newTestServer(t, map[string]any{
		"/orgs/acme/members": []map[string]any{
			{"login": "alice", "html_url": "https://github.com/alice"},
		},
		"/orgs/acme/invitations": []map[string]any{
			{"login": "carol", "email": "carol@example.com", "role": "direct_member"},
		},
	})

	c, err := New("acme", "test-token")
	require.NoError(t, err)

	members, err := c.ListOrgMembers(context.Background(), "", true)
	require.NoError(t, err)
	require.Len(t, members, 2)
	assert.Equal(t, "active", members[0].State)
	assert.Equal(t, "pending", members[1].State)
	assert.Equal(t, "carol", members[1].Login)
}

func TestGetRepositoryFile_DecodesBase64(t *testing.T) {
	encoded := base64.StdEncoding.EncodeToString([]byte("hello: world\n"))
	newTestServer(t, map[string]any{
		"/repos/acme/api/contents/config.yaml": map[string]any{
			"path": "config.yaml", "sha": "abc123", "content": encoded, "encoding": "base64",
		},
	})

	c, err := New("acme", "test-token")
	require.NoError(t, err)

	file, err := c.GetRepositoryFile(context.Background(), "api", "config.yaml", "")
	require.NoError(t, err)
	assert.Equal(t, "hello: world\n", file.Content)
	assert.Equal(t, "abc123", file.SHA)
	assert.Equal(t, "retrieved", file.Status)
}

func TestDefinitions_TableInvariants(t *testing.T) {
	defs := Definitions()
	require.NoError(t, tools.Validate(Name, defs))
	assert.Len(t, defs, 6)

	def, ok := tools.Find(Name, defs, "list_repositories")
	require.True(t, ok)
	assert.Equal(t, "github_list_repositories", def.Name)
}
