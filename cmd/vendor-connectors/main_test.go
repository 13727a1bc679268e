package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseArgValue(t *testing.T) {
	tests := []struct {
		in   string
		want any
	}{
		{`{"a":1}`, map[string]any{"a": float64(1)}},
		{`["x","y"]`, []any{"x", "y"}},
		{"true", true},
		{"True", true},
		{"FALSE", false},
		{"42", float64(42)},
		{"-7", float64(-7)},
		{"3.14", float64(3.14)},
		{"acme", "acme"},
		{"2024-01-01", "2024-01-01"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, parseArgValue(tt.in))
		})
	}
}

func TestParseCallArgs(t *testing.T) {
	args := parseCallArgs([]string{
		"--github-owner", "acme",
		"--include-branches",
		"--limit", "25",
		"stray",
		"--verbose", "false",
	})

	assert.Equal(t, map[string]any{
		"github_owner":     "acme",
		"include_branches": true,
		"limit":            float64(25),
		"verbose":          false,
	}, args)
}

func TestRun_UnknownCommand(t *testing.T) {
	assert.Equal(t, 1, run([]string{"bogus"}))
}

func TestRun_NoArgsPrintsUsage(t *testing.T) {
	assert.Equal(t, 0, run(nil))
}

func TestRun_List(t *testing.T) {
	assert.Equal(t, 0, run([]string{"list"}))
	assert.Equal(t, 0, run([]string{"list", "-json"}))
}

func TestRun_MethodsUnknownConnector(t *testing.T) {
	assert.Equal(t, 1, run([]string{"methods", "gitlab"}))
}

func TestRun_Info(t *testing.T) {
	assert.Equal(t, 0, run([]string{"info", "github"}))
}

func TestRun_Call(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/orgs/acme/repos", r.URL.Path)
		_ = json.NewEncoder(w).Encode([]map[string]any{{"name": "api"}})
	}))
	t.Cleanup(srv.Close)
	t.Setenv("GITHUB_API_URL", srv.URL)

	code := run([]string{"call", "github", "list_repositories",
		"--github_owner", "acme", "--github_token", "test-token"})
	assert.Equal(t, 0, code)
}

func TestRun_CallUnknownMethod(t *testing.T) {
	assert.Equal(t, 1, run([]string{"call", "github", "does_not_exist"}))
}

func TestRun_Version(t *testing.T) {
	assert.Equal(t, 0, run([]string{"version"}))
}
