package vault

import (
	"context"

	"github.com/jbcom/vendor-connectors/pkg/agent"
	"github.com/jbcom/vendor-connectors/pkg/tools"
)

// Definitions returns the Vault tool table. The token comes from
// VAULT_TOKEN and the server address from VAULT_ADDR.
func Definitions() []tools.Definition {
	return []tools.Definition{
		{
			Name:        "vault_list_secrets",
			Description: "Recursively list all secrets and their values under a specific Vault path.",
			InputSchema: tools.Object(
				tools.StringOpt("root_path", "Root path to search (e.g., '/')", "/"),
				tools.StringOpt("mount_point", "KV engine mount point", defaultMount),
				tools.IntOpt("max_depth", "Maximum directory depth to traverse", defaultMaxDepth),
			),
			Handler: func(ctx context.Context, args map[string]any) (any, error) {
				c, err := New("")
				if err != nil {
					return nil, err
				}
				return c.ListSecrets(ctx,
					tools.ArgString(args, "root_path"),
					tools.ArgString(args, "mount_point"),
					tools.ArgInt(args, "max_depth", defaultMaxDepth))
			},
		},
		{
			Name:        "vault_read_secret",
			Description: "Retrieve the data for a specific HashiCorp Vault secret by its path.",
			InputSchema: tools.Object(
				tools.String("path", "Path to the secret"),
				tools.StringOpt("mount_point", "KV engine mount point", defaultMount),
			),
			Handler: func(ctx context.Context, args map[string]any) (any, error) {
				c, err := New("")
				if err != nil {
					return nil, err
				}
				return c.ReadSecret(ctx, tools.ArgString(args, "path"), tools.ArgString(args, "mount_point"))
			},
		},
	}
}

// Tools returns the Vault tool table in the requested framework's form.
func Tools(framework string) ([]any, error) {
	return agent.Tools(framework, Definitions())
}
