package agent

import (
	"context"

	"github.com/jbcom/vendor-connectors/pkg/tools"
)

// Func is the framework-agnostic tool form: a named plain function.
// It is the fallback when no agent framework integration is enabled.
type Func struct {
	Name        string
	Description string
	Call        func(ctx context.Context, args map[string]any) (any, error)
}

// FunctionTools wraps a tool table as plain functions. Always available.
func FunctionTools(defs []tools.Definition) []Func {
	wrapped := make([]Func, len(defs))
	for i, def := range defs {
		def := def
		wrapped[i] = Func{
			Name:        def.Name,
			Description: def.Description,
			Call: func(ctx context.Context, args map[string]any) (any, error) {
				validated, err := tools.ValidateArgs(def, args)
				if err != nil {
					return nil, err
				}
				return def.Handler(ctx, validated)
			},
		}
	}
	return wrapped
}
