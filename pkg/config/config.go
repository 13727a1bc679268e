// Package config loads the vendor-connectors YAML configuration.
package config

import (
	"fmt"
	"os"
	"regexp"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the complete configuration.
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Connectors ConnectorsConfig `yaml:"connectors"`
}

// ServerConfig configures the MCP server identity.
type ServerConfig struct {
	Name    string `yaml:"name"`
	Version string `yaml:"version"`
}

// ConnectorsConfig configures connector discovery and per-connector
// settings. Enabled empty means all built-in connectors. Settings keys
// are connector names; each vendor parses its own map.
type ConnectorsConfig struct {
	Enabled  []string
	Settings map[string]map[string]any
}

// UnmarshalYAML splits the enabled list from the per-connector maps that
// sit beside it under the connectors key.
func (c *ConnectorsConfig) UnmarshalYAML(node *yaml.Node) error {
	var raw map[string]any
	if err := node.Decode(&raw); err != nil {
		return err
	}

	c.Settings = make(map[string]map[string]any)
	for key, value := range raw {
		if key == "enabled" {
			names, ok := value.([]any)
			if !ok {
				return fmt.Errorf("connectors.enabled must be a list")
			}
			for _, n := range names {
				name, ok := n.(string)
				if !ok {
					return fmt.Errorf("connectors.enabled entries must be strings")
				}
				c.Enabled = append(c.Enabled, name)
			}
			continue
		}
		settings, ok := value.(map[string]any)
		if !ok {
			return fmt.Errorf("connectors.%s must be a map", key)
		}
		c.Settings[key] = settings
	}
	return nil
}

// ConnectorConfig is the parsed per-connector settings block shared by
// all vendors.
type ConnectorConfig struct {
	BaseURL  string
	TokenEnv string
	Timeout  time.Duration
}

// DefaultTimeout is the per-request timeout applied when a connector
// block does not set one.
const DefaultTimeout = 30 * time.Second

// ParseConnector parses one connector's settings map.
func ParseConnector(cfg map[string]any) (ConnectorConfig, error) {
	c := ConnectorConfig{Timeout: DefaultTimeout}
	if cfg == nil {
		return c, nil
	}

	if v, ok := cfg["base_url"].(string); ok {
		c.BaseURL = v
	}
	if v, ok := cfg["token_env"].(string); ok {
		c.TokenEnv = v
	}
	switch v := cfg["timeout"].(type) {
	case nil:
	case string:
		d, err := time.ParseDuration(v)
		if err != nil {
			return c, fmt.Errorf("parsing timeout: %w", err)
		}
		c.Timeout = d
	case int:
		c.Timeout = time.Duration(v) * time.Second
	default:
		return c, fmt.Errorf("timeout must be a duration string or seconds")
	}
	return c, nil
}

// Connector returns the parsed settings for one connector. Absent blocks
// yield the defaults.
func (c *Config) Connector(name string) (ConnectorConfig, error) {
	return ParseConnector(c.Connectors.Settings[name])
}

// LoadConfig reads and parses a YAML config file, expanding ${VAR}
// references from the environment.
func LoadConfig(path string) (*Config, error) {
	// #nosec G304 -- path is from CLI args, controlled by the operator
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	data = []byte(expandEnvVars(string(data)))

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	applyDefaults(&cfg)
	return &cfg, nil
}

// Default returns the configuration used when no config file is given.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

// expandEnvVars expands ${VAR} patterns in the string.
func expandEnvVars(s string) string {
	re := regexp.MustCompile(`\$\{([^}]+)\}`)
	return re.ReplaceAllStringFunc(s, func(match string) string {
		varName := match[2 : len(match)-1]
		return os.Getenv(varName)
	})
}

// applyDefaults applies default values to the config. The server version
// stays empty when unset so callers can fall back to the build version.
func applyDefaults(cfg *Config) {
	if cfg.Server.Name == "" {
		cfg.Server.Name = "vendor-connectors"
	}
}
