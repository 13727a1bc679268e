// Package tools defines the vendor-neutral tool tables shared by the agent
// framework adapters, the CLI, and the MCP server. Every public connector
// operation intended for agent use is described by a Definition with an
// explicit JSON schema declared alongside its handler.
package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/jsonschema-go/jsonschema"
)

// Handler executes one tool call. Arguments arrive validated against the
// definition's input schema.
type Handler func(ctx context.Context, args map[string]any) (any, error)

// Definition describes one invocable tool. Names are globally unique within
// a vendor's table and always carry the vendor prefix (e.g. aws_list_secrets).
// Tables are built once per call site and never mutated.
type Definition struct {
	Name        string
	Description string
	Handler     Handler
	InputSchema *jsonschema.Schema
}

// Validate checks table invariants: vendor prefix, non-nil handler, and
// unique names.
func Validate(vendor string, defs []Definition) error {
	seen := make(map[string]bool, len(defs))
	for _, def := range defs {
		if !strings.HasPrefix(def.Name, vendor+"_") {
			return fmt.Errorf("tool %q missing vendor prefix %q", def.Name, vendor+"_")
		}
		if def.Handler == nil {
			return fmt.Errorf("tool %q has no handler", def.Name)
		}
		if seen[def.Name] {
			return fmt.Errorf("duplicate tool name %q", def.Name)
		}
		seen[def.Name] = true
	}
	return nil
}

// Find returns the definition matching name. Both the fully prefixed tool
// name and the bare method name (without the vendor prefix) match, so
// "github_list_repositories" and "list_repositories" resolve identically.
func Find(vendor string, defs []Definition, name string) (Definition, bool) {
	prefixed := vendor + "_" + name
	for _, def := range defs {
		if def.Name == name || def.Name == prefixed {
			return def, true
		}
	}
	return Definition{}, false
}
