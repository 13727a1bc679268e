package tools

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/google/jsonschema-go/jsonschema"
)

// Property declares one named parameter of a tool input schema.
// Parameters with defaults are optional; parameters without are required.
type Property struct {
	name     string
	schema   *jsonschema.Schema
	required bool
}

// Object builds a deterministic object schema from the given properties.
// The same property list always yields the same schema: the required list
// follows declaration order, and property serialization is handled by the
// schema package's stable marshaling.
func Object(props ...Property) *jsonschema.Schema {
	schema := &jsonschema.Schema{
		Type:       "object",
		Properties: make(map[string]*jsonschema.Schema, len(props)),
	}
	for _, p := range props {
		schema.Properties[p.name] = p.schema
		if p.required {
			schema.Required = append(schema.Required, p.name)
		}
	}
	return schema
}

// String declares a required string parameter.
func String(name, description string) Property {
	return Property{name: name, required: true, schema: &jsonschema.Schema{Type: "string", Description: description}}
}

// StringOpt declares an optional string parameter with a default.
func StringOpt(name, description, defaultValue string) Property {
	return Property{name: name, schema: &jsonschema.Schema{
		Type: "string", Description: description, Default: mustRaw(defaultValue),
	}}
}

// Int declares a required integer parameter.
func Int(name, description string) Property {
	return Property{name: name, required: true, schema: &jsonschema.Schema{Type: "integer", Description: description}}
}

// IntOpt declares an optional integer parameter with a default.
func IntOpt(name, description string, defaultValue int) Property {
	return Property{name: name, schema: &jsonschema.Schema{
		Type: "integer", Description: description, Default: mustRaw(defaultValue),
	}}
}

// Bool declares a required boolean parameter.
func Bool(name, description string) Property {
	return Property{name: name, required: true, schema: &jsonschema.Schema{Type: "boolean", Description: description}}
}

// BoolOpt declares an optional boolean parameter with a default.
func BoolOpt(name, description string, defaultValue bool) Property {
	return Property{name: name, schema: &jsonschema.Schema{
		Type: "boolean", Description: description, Default: mustRaw(defaultValue),
	}}
}

// StringArrayOpt declares an optional array-of-strings parameter.
func StringArrayOpt(name, description string) Property {
	return Property{name: name, schema: &jsonschema.Schema{
		Type: "array", Description: description,
		Items: &jsonschema.Schema{Type: "string"},
	}}
}

func mustRaw(v any) json.RawMessage {
	data, err := json.Marshal(v)
	if err != nil {
		panic(fmt.Sprintf("marshaling schema default: %v", err))
	}
	return data
}

// ValidateArgs checks args against the definition's input schema, applies
// defaults for absent optional parameters, and returns the merged argument
// map. Unknown arguments pass through untouched so credential overrides can
// ride along with tool inputs.
func ValidateArgs(def Definition, args map[string]any) (map[string]any, error) {
	merged := make(map[string]any, len(args))
	for k, v := range args {
		merged[k] = v
	}

	schema := def.InputSchema
	if schema == nil {
		return merged, nil
	}

	for _, name := range schema.Required {
		if _, ok := merged[name]; !ok {
			return nil, fmt.Errorf("%s: missing required argument %q", def.Name, name)
		}
	}

	// Stable iteration keeps error messages deterministic.
	names := make([]string, 0, len(schema.Properties))
	for name := range schema.Properties {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		prop := schema.Properties[name]
		value, ok := merged[name]
		if !ok {
			if len(prop.Default) > 0 {
				var def any
				if err := json.Unmarshal(prop.Default, &def); err == nil {
					merged[name] = def
				}
			}
			continue
		}
		if err := checkType(name, prop.Type, value); err != nil {
			return nil, fmt.Errorf("%s: %w", def.Name, err)
		}
	}

	return merged, nil
}

// checkType verifies a value against a primitive schema type. JSON numbers
// decode as float64, so integer parameters accept whole float64 values.
func checkType(name, schemaType string, value any) error {
	switch schemaType {
	case "string":
		if _, ok := value.(string); !ok {
			return fmt.Errorf("argument %q must be a string", name)
		}
	case "integer":
		switch v := value.(type) {
		case int, int64:
		case float64:
			if v != float64(int64(v)) {
				return fmt.Errorf("argument %q must be an integer", name)
			}
		default:
			return fmt.Errorf("argument %q must be an integer", name)
		}
	case "number":
		switch value.(type) {
		case int, int64, float64:
		default:
			return fmt.Errorf("argument %q must be a number", name)
		}
	case "boolean":
		if _, ok := value.(bool); !ok {
			return fmt.Errorf("argument %q must be a boolean", name)
		}
	case "array":
		if _, ok := value.([]any); !ok {
			if _, ok := value.([]string); !ok {
				return fmt.Errorf("argument %q must be an array", name)
			}
		}
	case "object":
		if _, ok := value.(map[string]any); !ok {
			return fmt.Errorf("argument %q must be an object", name)
		}
	}
	return nil
}

// ArgString extracts a string argument.
func ArgString(args map[string]any, name string) string {
	if v, ok := args[name].(string); ok {
		return v
	}
	return ""
}

// ArgInt extracts an integer argument, tolerating JSON float64 decoding.
func ArgInt(args map[string]any, name string, fallback int) int {
	switch v := args[name].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	default:
		return fallback
	}
}

// ArgBool extracts a boolean argument.
func ArgBool(args map[string]any, name string) bool {
	if v, ok := args[name].(bool); ok {
		return v
	}
	return false
}
