package registry

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jbcom/vendor-connectors/pkg/tools"
)

func stubTools(prefix string) func() []tools.Definition {
	return func() []tools.Definition {
		return []tools.Definition{{
			Name:        prefix + "_ping",
			Description: "Ping.",
			InputSchema: tools.Object(),
			Handler: func(ctx context.Context, args map[string]any) (any, error) {
				return "pong", nil
			},
		}}
	}
}

func TestList_AllBuiltins(t *testing.T) {
	r := New()

	names := r.Names()
	assert.Len(t, names, len(builtinFactories))
	assert.Contains(t, names, "github")
	assert.Contains(t, names, "aws")
}

func TestWithEnabled_FiltersBuiltins(t *testing.T) {
	r := New(WithEnabled([]string{"GitHub", "slack"}))

	assert.Equal(t, []string{"github", "slack"}, r.Names())
}

func TestRegisterExternal_WinsOnConflict(t *testing.T) {
	r := New()
	err := r.RegisterExternal("github", func() (Entry, error) {
		return Entry{Description: "replacement", Tools: stubTools("github")}, nil
	})
	require.NoError(t, err)

	entry, err := r.Get("github")
	require.NoError(t, err)
	assert.Equal(t, "github", entry.Name)
	assert.Equal(t, "replacement", entry.Description)
}

func TestRegisterExternal_DuplicateRejected(t *testing.T) {
	r := New()
	require.NoError(t, r.RegisterExternal("custom", func() (Entry, error) {
		return Entry{Tools: stubTools("custom")}, nil
	}))

	err := r.RegisterExternal("custom", func() (Entry, error) {
		return Entry{Tools: stubTools("custom")}, nil
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already registered")
}

func TestBuild_SkipsFailingFactory(t *testing.T) {
	r := New(WithEnabled([]string{"github"}))
	r.builtins["broken"] = func() (Entry, error) {
		return Entry{}, fmt.Errorf("probing sdk: %w", ErrUnavailable)
	}
	r.enabled["broken"] = true

	names := r.Names()
	assert.Equal(t, []string{"github"}, names)
}

func TestGet_UnknownListsAvailable(t *testing.T) {
	r := New(WithEnabled([]string{"slack", "zoom"}))

	_, err := r.Get("gitlab")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown connector: gitlab")
	assert.Contains(t, err.Error(), "slack, zoom")
}

func TestTool_ResolvesBareAndPrefixed(t *testing.T) {
	r := New(WithEnabled([]string{"github"}))

	def, err := r.Tool("github", "list_repositories")
	require.NoError(t, err)
	assert.Equal(t, "github_list_repositories", def.Name)

	def, err = r.Tool("github", "github_list_repositories")
	require.NoError(t, err)
	assert.Equal(t, "github_list_repositories", def.Name)

	_, err = r.Tool("github", "nonexistent")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `method "nonexistent" not found on github`)
}

func TestAllTools_SortedAndPrefixed(t *testing.T) {
	r := New(WithEnabled([]string{"slack", "github"}))

	defs := r.AllTools()
	require.NotEmpty(t, defs)
	for i := 1; i < len(defs); i++ {
		assert.LessOrEqual(t, defs[i-1].Name, defs[i].Name)
	}
}

func TestClear_RebuildsAfterRegistration(t *testing.T) {
	r := New(WithEnabled([]string{"github"}))
	_ = r.Names()

	require.NoError(t, r.RegisterExternal("custom", func() (Entry, error) {
		return Entry{Description: "custom vendor", Tools: stubTools("custom")}, nil
	}))
	assert.Contains(t, r.Names(), "custom")

	r.Clear()
	assert.Contains(t, r.Names(), "custom")
}

func TestBuiltinFactories_AllBuild(t *testing.T) {
	for name, factory := range builtinFactories {
		entry, err := factory()
		if errors.Is(err, ErrUnavailable) {
			continue
		}
		require.NoError(t, err, name)
		assert.Equal(t, name, entry.Name)
		assert.NotEmpty(t, entry.Description, name)
		require.NotNil(t, entry.Tools, name)
		assert.NoError(t, tools.Validate(entry.Name, entry.Tools()), name)
	}
}
