package agent

import (
	"context"
	"encoding/json"
	"fmt"

	gatools "github.com/KamdynS/go-agents/tools"

	"github.com/jbcom/vendor-connectors/pkg/tools"
)

// agentTool adapts a tool definition to the go-agents Tool interface.
type agentTool struct {
	def tools.Definition
}

var _ gatools.Tool = agentTool{}

func (t agentTool) Name() string        { return t.def.Name }
func (t agentTool) Description() string { return t.def.Description }

func (t agentTool) Execute(ctx context.Context, input string) (string, error) {
	args, err := decodeArgs(input)
	if err != nil {
		return "", fmt.Errorf("%s: %w", t.def.Name, err)
	}
	return invoke(ctx, t.def, args)
}

// Schema exposes the input schema in the map form go-agents expects.
func (t agentTool) Schema() map[string]interface{} {
	if t.def.InputSchema == nil {
		return nil
	}
	data, err := json.Marshal(t.def.InputSchema)
	if err != nil {
		return nil
	}
	var schema map[string]interface{}
	if err := json.Unmarshal(data, &schema); err != nil {
		return nil
	}
	return schema
}

// AgentTools wraps a tool table as go-agents tools.
func AgentTools(defs []tools.Definition) ([]gatools.Tool, error) {
	if !available[FrameworkAgents] {
		return nil, unavailableErr("agents", "github.com/KamdynS/go-agents")
	}
	wrapped := make([]gatools.Tool, len(defs))
	for i, def := range defs {
		wrapped[i] = agentTool{def: def}
	}
	return wrapped, nil
}
