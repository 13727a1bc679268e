package google

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

func TestListProjects_SearchWhenNoParent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v3/projects:search", r.URL.Path)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		_ = json.NewEncoder(w).Encode(map[string]any{
			"projects": []map[string]any{
				{"projectId": "acme-prod", "displayName": "Acme Prod", "state": "ACTIVE", "parent": "organizations/1"},
			},
		})
	}))
	t.Cleanup(srv.Close)
	t.Setenv(crmURLEnv, srv.URL)

	c, err := New("tok")
	require.NoError(t, err)

	projects, err := c.ListProjects(context.Background(), "", 0)
	require.NoError(t, err)
	require.Len(t, projects, 1)
	assert.Equal(t, "acme-prod", projects[0].ProjectID)
	assert.Equal(t, "Acme Prod", projects[0].Name)
}

func TestListProjects_ParentScoped(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v3/projects", r.URL.Path)
		assert.Equal(t, "folders/456", r.URL.Query().Get("parent"))
		_ = json.NewEncoder(w).Encode(map[string]any{"projects": []map[string]any{}})
	}))
	t.Cleanup(srv.Close)
	t.Setenv(crmURLEnv, srv.URL)

	c, err := New("tok")
	require.NoError(t, err)

	_, err = c.ListProjects(context.Background(), "folders/456", 0)
	require.NoError(t, err)
}

func TestListEnabledServices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/projects/acme-prod/services", r.URL.Path)
		assert.Equal(t, "state:ENABLED", r.URL.Query().Get("filter"))
		_ = json.NewEncoder(w).Encode(map[string]any{
			"services": []map[string]any{
				{"name": "projects/1/services/compute.googleapis.com", "state": "ENABLED",
					"config": map[string]any{"title": "Compute Engine API"}},
			},
		})
	}))
	t.Cleanup(srv.Close)
	t.Setenv(serviceUsageURLEnv, srv.URL)

	c, err := New("tok")
	require.NoError(t, err)

	services, err := c.ListEnabledServices(context.Background(), "acme-prod", 0)
	require.NoError(t, err)
	require.Len(t, services, 1)
	assert.Equal(t, "Compute Engine API", services[0].Title)
}

func TestListWorkspaceGroups_ParsesCountString(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/admin/directory/v1/groups", r.URL.Path)
		assert.Equal(t, "my_customer", r.URL.Query().Get("customer"))
		_ = json.NewEncoder(w).Encode(map[string]any{
			"groups": []map[string]any{
				{"email": "eng@acme.com", "name": "Engineering", "directMembersCount": "42"},
			},
		})
	}))
	t.Cleanup(srv.Close)
	t.Setenv(adminURLEnv, srv.URL)

	c, err := New("tok")
	require.NoError(t, err)

	groups, err := c.ListWorkspaceGroups(context.Background(), "", 0)
	require.NoError(t, err)
	require.Len(t, groups, 1)
	assert.Equal(t, int64(42), groups[0].DirectMembersCount)
}

func TestListEnabledServices_RequiresProject(t *testing.T) {
	c, err := New("tok")
	require.NoError(t, err)

	_, err = c.ListEnabledServices(context.Background(), "", 0)
	require.Error(t, err)
	assert.Equal(t, connector.TypeValidation, connector.TypeOf(err))
}

func TestDefinitions_TableInvariants(t *testing.T) {
	defs := Definitions()
	require.NoError(t, tools.Validate(Name, defs))
	assert.Len(t, defs, 5)
}
