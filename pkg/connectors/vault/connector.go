// Package vault is a thin connector for HashiCorp Vault KV v2 engines:
// recursive secret listing and single-secret reads.
package vault

import (
	"context"
	"errors"
	"path"
	"sort"
	"strings"

	vaultapi "github.com/hashicorp/vault/api"

	"github.com/jbcom/vendor-connectors/pkg/connector"
)

const (
	Name          = "vault"
	Description   = "HashiCorp Vault KV v2 operations: recursive secret listing and reads."
	CredentialEnv = "VAULT_TOKEN"

	addrEnv     = "VAULT_ADDR"
	defaultAddr = "https://127.0.0.1:8200"

	defaultMount    = "secret"
	defaultMaxDepth = 10
)

// BaseURL returns the Vault address, honoring the VAULT_ADDR override.
func BaseURL() string {
	return connector.BaseURL(Name, addrEnv, defaultAddr)
}

// Connector wraps a Vault API client.
type Connector struct {
	client *vaultapi.Client
}

// New creates a Vault connector. An empty token falls back to VAULT_TOKEN;
// the address comes from VAULT_ADDR per the Vault client's defaults.
func New(token string) (*Connector, error) {
	resolved, err := connector.Credential(Name, token, CredentialEnv)
	if err != nil {
		return nil, err
	}

	cfg := vaultapi.DefaultConfig()
	client, err := vaultapi.NewClient(cfg)
	if err != nil {
		return nil, connector.NewError(Name, connector.TypeProvider, err.Error())
	}
	client.SetToken(resolved)
	return &Connector{client: client}, nil
}

// Secret is one KV v2 secret with its decoded data.
type Secret struct {
	Path       string         `json:"path"`
	MountPoint string         `json:"mount_point"`
	Data       map[string]any `json:"data"`
	KeyCount   int            `json:"key_count"`
}

// ListSecrets walks the KV v2 tree under rootPath and returns every secret
// with its data, sorted by path. maxDepth of 0 uses the default depth cap.
func (c *Connector) ListSecrets(ctx context.Context, rootPath, mountPoint string, maxDepth int) ([]Secret, error) {
	if mountPoint == "" {
		mountPoint = defaultMount
	}
	if maxDepth <= 0 {
		maxDepth = defaultMaxDepth
	}
	rootPath = strings.Trim(rootPath, "/")

	var paths []string
	if err := c.walk(ctx, mountPoint, rootPath, maxDepth, &paths); err != nil {
		return nil, err
	}
	sort.Strings(paths)

	secrets := make([]Secret, 0, len(paths))
	for _, p := range paths {
		data, err := c.readData(ctx, p, mountPoint)
		if err != nil {
			if connector.IsNotFound(err) {
				continue
			}
			return nil, err
		}
		secrets = append(secrets, Secret{
			Path:       p,
			MountPoint: mountPoint,
			Data:       data,
			KeyCount:   len(data),
		})
	}
	return secrets, nil
}

// walk recursively lists metadata directories. Entries with a trailing
// slash are directories; the rest are secrets.
func (c *Connector) walk(ctx context.Context, mount, dir string, depth int, out *[]string) error {
	if depth < 0 {
		return nil
	}

	listPath := path.Join(mount, "metadata", dir)
	resp, err := c.client.Logical().ListWithContext(ctx, listPath)
	if err != nil {
		return connector.NewError(Name, connector.TypeProvider, err.Error())
	}
	if resp == nil || resp.Data == nil {
		return nil
	}
	keys, ok := resp.Data["keys"].([]any)
	if !ok {
		return nil
	}

	for _, k := range keys {
		key, ok := k.(string)
		if !ok {
			continue
		}
		if strings.HasSuffix(key, "/") {
			if err := c.walk(ctx, mount, path.Join(dir, strings.TrimSuffix(key, "/")), depth-1, out); err != nil {
				return err
			}
			continue
		}
		*out = append(*out, path.Join(dir, key))
	}
	return nil
}

// ReadSecret reads one secret. A missing secret is reported with
// Found=false rather than an error, so agents can probe paths safely.
func (c *Connector) ReadSecret(ctx context.Context, secretPath, mountPoint string) (*SecretRead, error) {
	if secretPath == "" {
		return nil, connector.ValidationError(Name, "path is required")
	}
	if mountPoint == "" {
		mountPoint = defaultMount
	}
	secretPath = strings.Trim(secretPath, "/")

	data, err := c.readData(ctx, secretPath, mountPoint)
	if err != nil {
		if connector.IsNotFound(err) {
			return &SecretRead{Path: secretPath, MountPoint: mountPoint, Data: map[string]any{}}, nil
		}
		return nil, err
	}
	return &SecretRead{Path: secretPath, MountPoint: mountPoint, Data: data, Found: true}, nil
}

// SecretRead is the result of a single secret read.
type SecretRead struct {
	Path       string         `json:"path"`
	MountPoint string         `json:"mount_point"`
	Data       map[string]any `json:"data"`
	Found      bool           `json:"found"`
}

func (c *Connector) readData(ctx context.Context, secretPath, mount string) (map[string]any, error) {
	secret, err := c.client.KVv2(mount).Get(ctx, secretPath)
	if err != nil {
		if errors.Is(err, vaultapi.ErrSecretNotFound) {
			return nil, connector.NotFoundError(Name, secretPath)
		}
		return nil, connector.NewError(Name, connector.TypeProvider, err.Error())
	}
	if secret == nil || secret.Data == nil {
		return nil, connector.NotFoundError(Name, secretPath)
	}
	return secret.Data, nil
}
