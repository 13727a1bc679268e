// Package agent adapts vendor tool tables to the agent frameworks this
// module supports. Each adapter is a pure transformation of a tool table;
// wrapper objects are rebuilt on every call.
package agent

import (
	"errors"
	"fmt"

	"github.com/jbcom/vendor-connectors/pkg/tools"
)

// ErrFrameworkUnavailable marks a framework integration that is disabled
// in this build.
var ErrFrameworkUnavailable = errors.New("framework unavailable")

// Supported framework names.
const (
	FrameworkAuto      = "auto"
	FrameworkAgents    = "agents"
	FrameworkLangChain = "langchain"
	FrameworkFunctions = "functions"
	// FrameworkStrands is an alias for the plain-function form, kept for
	// parity with deployments that name it after AWS Strands.
	FrameworkStrands = "strands"
)

// autoOrder is the fixed probe order for framework auto-detection. The
// order is policy, not a technical constraint: changing it changes agent
// behavior across environments, so keep it stable.
var autoOrder = []string{FrameworkAgents, FrameworkLangChain, FrameworkFunctions}

// available reports whether a framework integration is enabled. The
// plain-function form is always available. Embedders that ship without an
// optional framework disable it via SetAvailable; tests use the same hook.
var available = map[string]bool{
	FrameworkAgents:    true,
	FrameworkLangChain: true,
	FrameworkFunctions: true,
}

// SetAvailable toggles a framework integration on or off, returning a
// restore function. Intended for embedders and tests.
func SetAvailable(framework string, enabled bool) func() {
	prev := available[framework]
	available[framework] = enabled
	return func() { available[framework] = prev }
}

// unavailableErr names the missing module so callers get install
// instructions instead of a silently empty list.
func unavailableErr(framework, module string) error {
	return fmt.Errorf("%w: %s tools are not enabled: build with %s available", ErrFrameworkUnavailable, framework, module)
}

// Tools converts a tool table into the requested framework's native form.
// "auto" probes the enabled frameworks in fixed priority order (agents,
// langchain, then plain functions) and returns the first match.
func Tools(framework string, defs []tools.Definition) ([]any, error) {
	switch framework {
	case FrameworkAuto:
		for _, fw := range autoOrder {
			if available[fw] {
				return Tools(fw, defs)
			}
		}
		return Tools(FrameworkFunctions, defs)
	case FrameworkAgents:
		wrapped, err := AgentTools(defs)
		if err != nil {
			return nil, err
		}
		return anySlice(wrapped), nil
	case FrameworkLangChain:
		wrapped, err := LangChainTools(defs)
		if err != nil {
			return nil, err
		}
		return anySlice(wrapped), nil
	case FrameworkFunctions, FrameworkStrands:
		return anySlice(FunctionTools(defs)), nil
	default:
		return nil, fmt.Errorf("unknown framework: %s (options: auto, agents, langchain, strands, functions)", framework)
	}
}

func anySlice[T any](in []T) []any {
	out := make([]any, len(in))
	for i, v := range in {
		out[i] = v
	}
	return out
}
