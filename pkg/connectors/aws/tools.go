package aws

import (
	"context"

	"github.com/jbcom/vendor-connectors/pkg/agent"
	"github.com/jbcom/vendor-connectors/pkg/tools"
)

// Definitions returns the AWS tool table. Credentials come from the
// standard SDK chain; there is no credential argument.
func Definitions() []tools.Definition {
	return []tools.Definition{
		{
			Name:        "aws_get_caller_account_id",
			Description: "Get the AWS account ID of the current caller identity.",
			InputSchema: tools.Object(),
			Handler: func(ctx context.Context, args map[string]any) (any, error) {
				c, err := New(ctx)
				if err != nil {
					return nil, err
				}
				id, err := c.GetCallerAccountID(ctx)
				if err != nil {
					return nil, err
				}
				return map[string]any{"account_id": id}, nil
			},
		},
		{
			Name:        "aws_list_s3_buckets",
			Description: "List all S3 buckets in the current AWS account.",
			InputSchema: tools.Object(),
			Handler: func(ctx context.Context, args map[string]any) (any, error) {
				c, err := New(ctx)
				if err != nil {
					return nil, err
				}
				return c.ListS3Buckets(ctx)
			},
		},
		{
			Name:        "aws_list_s3_objects",
			Description: "List objects in a specific S3 bucket.",
			InputSchema: tools.Object(
				tools.String("bucket", "The name of the S3 bucket."),
			),
			Handler: func(ctx context.Context, args map[string]any) (any, error) {
				c, err := New(ctx)
				if err != nil {
					return nil, err
				}
				return c.ListS3Objects(ctx, tools.ArgString(args, "bucket"))
			},
		},
		{
			Name:        "aws_list_accounts",
			Description: "List AWS organization accounts.",
			InputSchema: tools.Object(),
			Handler: func(ctx context.Context, args map[string]any) (any, error) {
				c, err := New(ctx)
				if err != nil {
					return nil, err
				}
				return c.ListAccounts(ctx)
			},
		},
		{
			Name:        "aws_list_sso_users",
			Description: "List IAM Identity Center users.",
			InputSchema: tools.Object(),
			Handler: func(ctx context.Context, args map[string]any) (any, error) {
				c, err := New(ctx)
				if err != nil {
					return nil, err
				}
				return c.ListSSOUsers(ctx)
			},
		},
		{
			Name:        "aws_list_sso_groups",
			Description: "List IAM Identity Center groups.",
			InputSchema: tools.Object(),
			Handler: func(ctx context.Context, args map[string]any) (any, error) {
				c, err := New(ctx)
				if err != nil {
					return nil, err
				}
				return c.ListSSOGroups(ctx)
			},
		},
		{
			Name:        "aws_list_secrets",
			Description: "List secrets from AWS Secrets Manager with optional name filtering.",
			InputSchema: tools.Object(
				tools.StringOpt("prefix", "Optional prefix to filter secrets by name.", ""),
				tools.BoolOpt("get_values", "If True, fetch actual secret values (slower).", false),
			),
			Handler: func(ctx context.Context, args map[string]any) (any, error) {
				c, err := New(ctx)
				if err != nil {
					return nil, err
				}
				return c.ListSecrets(ctx, tools.ArgString(args, "prefix"), tools.ArgBool(args, "get_values"))
			},
		},
		{
			Name:        "aws_get_secret",
			Description: "Retrieve a specific secret value from AWS Secrets Manager by ID or ARN.",
			InputSchema: tools.Object(
				tools.String("secret_id", "The ARN or name of the secret to retrieve."),
			),
			Handler: func(ctx context.Context, args map[string]any) (any, error) {
				c, err := New(ctx)
				if err != nil {
					return nil, err
				}
				return c.GetSecret(ctx, tools.ArgString(args, "secret_id"))
			},
		},
	}
}

// Tools returns the AWS tool table in the requested framework's form.
func Tools(framework string) ([]any, error) {
	return agent.Tools(framework, Definitions())
}
