package agent

import (
	"context"
	"encoding/json"
	"fmt"

	lctools "github.com/tmc/langchaingo/tools"

	"github.com/jbcom/vendor-connectors/pkg/tools"
)

// langchainTool adapts a tool definition to the langchaingo Tool interface.
// Input arrives as a JSON object string and the result is returned as
// indented JSON.
type langchainTool struct {
	def tools.Definition
}

var _ lctools.Tool = langchainTool{}

func (t langchainTool) Name() string        { return t.def.Name }
func (t langchainTool) Description() string { return t.def.Description }

func (t langchainTool) Call(ctx context.Context, input string) (string, error) {
	args, err := decodeArgs(input)
	if err != nil {
		return "", fmt.Errorf("%s: %w", t.def.Name, err)
	}
	return invoke(ctx, t.def, args)
}

// LangChainTools wraps a tool table as langchaingo tools.
func LangChainTools(defs []tools.Definition) ([]lctools.Tool, error) {
	if !available[FrameworkLangChain] {
		return nil, unavailableErr("langchain", "github.com/tmc/langchaingo")
	}
	wrapped := make([]lctools.Tool, len(defs))
	for i, def := range defs {
		wrapped[i] = langchainTool{def: def}
	}
	return wrapped, nil
}

// decodeArgs parses a tool input string as a JSON object. Empty input is
// an empty argument map.
func decodeArgs(input string) (map[string]any, error) {
	if input == "" {
		return map[string]any{}, nil
	}
	var args map[string]any
	if err := json.Unmarshal([]byte(input), &args); err != nil {
		return nil, fmt.Errorf("input must be a JSON object: %w", err)
	}
	return args, nil
}

// invoke validates arguments, runs the handler, and serializes the result.
func invoke(ctx context.Context, def tools.Definition, args map[string]any) (string, error) {
	validated, err := tools.ValidateArgs(def, args)
	if err != nil {
		return "", err
	}
	result, err := def.Handler(ctx, validated)
	if err != nil {
		return "", err
	}
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return "", fmt.Errorf("%s: encoding result: %w", def.Name, err)
	}
	return string(data), nil
}
