package zoom

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

// newTestServer mocks both the OAuth token endpoint and the API.
func newTestServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/oauth/token", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "account_credentials", r.FormValue("grant_type"))
		assert.Equal(t, "acct-1", r.FormValue("account_id"))
		assert.NotEmpty(t, r.Header.Get("Authorization"))
		_ = json.NewEncoder(w).Encode(map[string]any{"access_token": "tok-123", "expires_in": 3600})
	})
	mux.HandleFunc("/", handler)

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	t.Setenv(baseURLEnv, srv.URL)
	t.Setenv(oauthURLEnv, srv.URL+"/oauth/token")
	return srv
}

func newTestConnector(t *testing.T) *Connector {
	t.Helper()
	c, err := New("client-1", "secret-1", "acct-1")
	require.NoError(t, err)
	return c
}

func TestNew_MissingCredentials(t *testing.T) {
	t.Setenv(CredentialEnv, "")
	t.Setenv(clientSecretEnv, "")
	t.Setenv(accountIDEnv, "")

	_, err := New("", "", "")
	require.Error(t, err)
	assert.Equal(t, connector.TypeAuthentication, connector.TypeOf(err))
	assert.Contains(t, err.Error(), CredentialEnv)
}

func TestListUsers_Pagination(t *testing.T) {
	newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/users", r.URL.Path)
		assert.Equal(t, "Bearer tok-123", r.Header.Get("Authorization"))

		if r.URL.Query().Get("next_page_token") == "" {
			_ = json.NewEncoder(w).Encode(map[string]any{
				"users":           []map[string]any{{"email": "a@acme.com", "id": "u1", "status": "active"}},
				"next_page_token": "page2",
			})
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"users": []map[string]any{{"email": "b@acme.com", "id": "u2", "status": "active"}},
		})
	})

	users, err := newTestConnector(t).ListUsers(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "a@acme.com", users[0].Email)
	assert.Equal(t, "b@acme.com", users[1].Email)
}

func TestListUsers_MaxResults(t *testing.T) {
	newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"users": []map[string]any{
				{"email": "a@acme.com"}, {"email": "b@acme.com"}, {"email": "c@acme.com"},
			},
		})
	})

	users, err := newTestConnector(t).ListUsers(context.Background(), 2)
	require.NoError(t, err)
	assert.Len(t, users, 2)
}

func TestListMeetings_DefaultType(t *testing.T) {
	newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/users/u1/meetings", r.URL.Path)
		assert.Equal(t, "scheduled", r.URL.Query().Get("type"))
		_ = json.NewEncoder(w).Encode(map[string]any{
			"meetings": []map[string]any{
				{"id": 42, "topic": "standup", "join_url": "https://zoom.us/j/42"},
			},
		})
	})

	meetings, err := newTestConnector(t).ListMeetings(context.Background(), "u1", "", 0)
	require.NoError(t, err)
	require.Len(t, meetings, 1)
	assert.Equal(t, int64(42), meetings[0].ID)
	assert.Equal(t, "standup", meetings[0].Topic)
}

func TestAccessToken_Cached(t *testing.T) {
	tokenCalls := 0
	mux := http.NewServeMux()
	mux.HandleFunc("/oauth/token", func(w http.ResponseWriter, r *http.Request) {
		tokenCalls++
		_ = json.NewEncoder(w).Encode(map[string]any{"access_token": "tok-123", "expires_in": 3600})
	})
	mux.HandleFunc("/meetings/9", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"id": 9, "topic": "retro"})
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	t.Setenv(baseURLEnv, srv.URL)
	t.Setenv(oauthURLEnv, srv.URL+"/oauth/token")

	c, err := New("client-1", "secret-1", "acct-1")
	require.NoError(t, err)

	for range 3 {
		_, err := c.GetMeeting(context.Background(), "9")
		require.NoError(t, err)
	}
	assert.Equal(t, 1, tokenCalls)
}

func TestCreateUser(t *testing.T) {
	newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/users", r.URL.Path)

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "create", body["action"])
		info := body["user_info"].(map[string]any)
		assert.Equal(t, "dana@acme.com", info["email"])
		assert.Equal(t, float64(2), info["type"])

		w.WriteHeader(http.StatusCreated)
	})

	err := newTestConnector(t).CreateUser(context.Background(), "dana@acme.com", "Dana", "Lee")
	require.NoError(t, err)

	err = newTestConnector(t).CreateUser(context.Background(), "", "", "")
	require.Error(t, err)
	assert.Equal(t, connector.TypeValidation, connector.TypeOf(err))
}

func TestRemoveUser(t *testing.T) {
	newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodDelete, r.Method)
		require.Equal(t, "/users/u1", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	})

	require.NoError(t, newTestConnector(t).RemoveUser(context.Background(), "u1"))
}

func TestDefinitions_TableInvariants(t *testing.T) {
	defs := Definitions()
	require.NoError(t, tools.Validate(Name, defs))
	assert.Len(t, defs, 4)
}
