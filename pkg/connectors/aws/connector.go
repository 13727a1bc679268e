// Package aws is a thin connector for AWS account operations: caller
// identity, S3, Organizations, IAM Identity Center, and Secrets Manager.
// Credentials come from the standard SDK chain (environment, shared
// config, instance roles).
package aws

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/identitystore"
	identitystoretypes "github.com/aws/aws-sdk-go-v2/service/identitystore/types"
	"github.com/aws/aws-sdk-go-v2/service/organizations"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	secretstypes "github.com/aws/aws-sdk-go-v2/service/secretsmanager/types"
	"github.com/aws/aws-sdk-go-v2/service/ssoadmin"
	"github.com/aws/aws-sdk-go-v2/service/sts"

	"github.com/jbcom/vendor-connectors/pkg/connector"
)

const (
	Name        = "aws"
	Description = "AWS account operations: identity, S3, Organizations, Identity Center, and Secrets Manager."
)

// Narrow service interfaces keep the connector testable without the SDK's
// full client surface.
type stsAPI interface {
	GetCallerIdentity(ctx context.Context, input *sts.GetCallerIdentityInput, optFns ...func(*sts.Options)) (*sts.GetCallerIdentityOutput, error)
}

type s3API interface {
	ListBuckets(ctx context.Context, input *s3.ListBucketsInput, optFns ...func(*s3.Options)) (*s3.ListBucketsOutput, error)
	ListObjectsV2(ctx context.Context, input *s3.ListObjectsV2Input, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error)
	GetBucketLocation(ctx context.Context, input *s3.GetBucketLocationInput, optFns ...func(*s3.Options)) (*s3.GetBucketLocationOutput, error)
}

type organizationsAPI interface {
	ListAccounts(ctx context.Context, input *organizations.ListAccountsInput, optFns ...func(*organizations.Options)) (*organizations.ListAccountsOutput, error)
}

type ssoAdminAPI interface {
	ListInstances(ctx context.Context, input *ssoadmin.ListInstancesInput, optFns ...func(*ssoadmin.Options)) (*ssoadmin.ListInstancesOutput, error)
}

type identityStoreAPI interface {
	ListUsers(ctx context.Context, input *identitystore.ListUsersInput, optFns ...func(*identitystore.Options)) (*identitystore.ListUsersOutput, error)
	ListGroups(ctx context.Context, input *identitystore.ListGroupsInput, optFns ...func(*identitystore.Options)) (*identitystore.ListGroupsOutput, error)
	ListGroupMemberships(ctx context.Context, input *identitystore.ListGroupMembershipsInput, optFns ...func(*identitystore.Options)) (*identitystore.ListGroupMembershipsOutput, error)
}

type secretsManagerAPI interface {
	ListSecrets(ctx context.Context, input *secretsmanager.ListSecretsInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.ListSecretsOutput, error)
	GetSecretValue(ctx context.Context, input *secretsmanager.GetSecretValueInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error)
}

// Connector wraps the AWS service clients used by the tools.
type Connector struct {
	sts           stsAPI
	s3            s3API
	organizations organizationsAPI
	ssoAdmin      ssoAdminAPI
	identityStore identityStoreAPI
	secrets       secretsManagerAPI
}

// New creates an AWS connector from the default credential chain.
func New(ctx context.Context) (*Connector, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, connector.AuthError(Name, "loading AWS configuration: "+err.Error())
	}
	return &Connector{
		sts:           sts.NewFromConfig(cfg),
		s3:            s3.NewFromConfig(cfg),
		organizations: organizations.NewFromConfig(cfg),
		ssoAdmin:      ssoadmin.NewFromConfig(cfg),
		identityStore: identitystore.NewFromConfig(cfg),
		secrets:       secretsmanager.NewFromConfig(cfg),
	}, nil
}

// NewWithClients injects service clients directly. Used by tests.
func NewWithClients(stsc stsAPI, s3c s3API, org organizationsAPI, sso ssoAdminAPI, ids identityStoreAPI, sm secretsManagerAPI) *Connector {
	return &Connector{
		sts:           stsc,
		s3:            s3c,
		organizations: org,
		ssoAdmin:      sso,
		identityStore: ids,
		secrets:       sm,
	}
}

// GetCallerAccountID returns the account ID of the current credentials.
func (c *Connector) GetCallerAccountID(ctx context.Context) (string, error) {
	out, err := c.sts.GetCallerIdentity(ctx, &sts.GetCallerIdentityInput{})
	if err != nil {
		return "", wrapErr(err)
	}
	return aws.ToString(out.Account), nil
}

// Bucket is the subset of S3 bucket metadata the tools expose.
type Bucket struct {
	Name         string `json:"name"`
	CreationDate string `json:"creation_date"`
	Region       string `json:"region"`
}

// ListS3Buckets lists the account's buckets with their regions.
func (c *Connector) ListS3Buckets(ctx context.Context) ([]Bucket, error) {
	out, err := c.s3.ListBuckets(ctx, &s3.ListBucketsInput{})
	if err != nil {
		return nil, wrapErr(err)
	}

	buckets := make([]Bucket, 0, len(out.Buckets))
	for _, b := range out.Buckets {
		bucket := Bucket{Name: aws.ToString(b.Name)}
		if b.CreationDate != nil {
			bucket.CreationDate = b.CreationDate.UTC().Format("2006-01-02T15:04:05Z")
		}

		loc, err := c.s3.GetBucketLocation(ctx, &s3.GetBucketLocationInput{Bucket: b.Name})
		if err == nil {
			bucket.Region = string(loc.LocationConstraint)
			// A null location constraint means us-east-1.
			if bucket.Region == "" {
				bucket.Region = "us-east-1"
			}
		}
		buckets = append(buckets, bucket)
	}
	return buckets, nil
}

// Object is the subset of S3 object metadata the tools expose.
type Object struct {
	Key          string `json:"key"`
	Size         int64  `json:"size"`
	LastModified string `json:"last_modified"`
}

// ListS3Objects lists a bucket's objects, following continuation tokens.
func (c *Connector) ListS3Objects(ctx context.Context, bucket string) ([]Object, error) {
	if bucket == "" {
		return nil, connector.ValidationError(Name, "bucket is required")
	}

	var objects []Object
	var token *string
	for {
		out, err := c.s3.ListObjectsV2(ctx, &s3.ListObjectsV2Input{
			Bucket:            aws.String(bucket),
			ContinuationToken: token,
		})
		if err != nil {
			return nil, wrapErr(err)
		}
		for _, obj := range out.Contents {
			o := Object{Key: aws.ToString(obj.Key), Size: aws.ToInt64(obj.Size)}
			if obj.LastModified != nil {
				o.LastModified = obj.LastModified.UTC().Format("2006-01-02T15:04:05Z")
			}
			objects = append(objects, o)
		}
		if out.NextContinuationToken == nil {
			break
		}
		token = out.NextContinuationToken
	}
	return objects, nil
}

// Account is the subset of organization account fields the tools expose.
type Account struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Status string `json:"status"`
}

// ListAccounts lists the organization's accounts.
func (c *Connector) ListAccounts(ctx context.Context) ([]Account, error) {
	var accounts []Account
	var token *string
	for {
		out, err := c.organizations.ListAccounts(ctx, &organizations.ListAccountsInput{NextToken: token})
		if err != nil {
			return nil, wrapErr(err)
		}
		for _, a := range out.Accounts {
			accounts = append(accounts, Account{
				ID:     aws.ToString(a.Id),
				Name:   aws.ToString(a.Name),
				Email:  aws.ToString(a.Email),
				Status: string(a.Status),
			})
		}
		if out.NextToken == nil {
			break
		}
		token = out.NextToken
	}
	return accounts, nil
}

// identityStoreID resolves the Identity Center store backing this account.
func (c *Connector) identityStoreID(ctx context.Context) (string, error) {
	out, err := c.ssoAdmin.ListInstances(ctx, &ssoadmin.ListInstancesInput{})
	if err != nil {
		return "", wrapErr(err)
	}
	if len(out.Instances) == 0 {
		return "", connector.NotFoundError(Name, "no IAM Identity Center instance found")
	}
	return aws.ToString(out.Instances[0].IdentityStoreId), nil
}

// SSOUser is the subset of Identity Center user fields the tools expose.
type SSOUser struct {
	UserID      string `json:"user_id"`
	UserName    string `json:"user_name"`
	DisplayName string `json:"display_name"`
	Email       string `json:"email"`
}

// ListSSOUsers lists IAM Identity Center users with their primary email.
func (c *Connector) ListSSOUsers(ctx context.Context) ([]SSOUser, error) {
	storeID, err := c.identityStoreID(ctx)
	if err != nil {
		return nil, err
	}

	var users []SSOUser
	var token *string
	for {
		out, err := c.identityStore.ListUsers(ctx, &identitystore.ListUsersInput{
			IdentityStoreId: aws.String(storeID),
			NextToken:       token,
		})
		if err != nil {
			return nil, wrapErr(err)
		}
		for _, u := range out.Users {
			users = append(users, SSOUser{
				UserID:      aws.ToString(u.UserId),
				UserName:    aws.ToString(u.UserName),
				DisplayName: aws.ToString(u.DisplayName),
				Email:       primaryEmail(u.Emails),
			})
		}
		if out.NextToken == nil {
			break
		}
		token = out.NextToken
	}
	return users, nil
}

func primaryEmail(emails []identitystoretypes.Email) string {
	for _, e := range emails {
		if e.Primary {
			return aws.ToString(e.Value)
		}
	}
	if len(emails) > 0 {
		return aws.ToString(emails[0].Value)
	}
	return ""
}

// SSOGroup is the subset of Identity Center group fields the tools expose.
type SSOGroup struct {
	GroupID     string `json:"group_id"`
	DisplayName string `json:"display_name"`
	MemberCount int    `json:"member_count"`
}

// ListSSOGroups lists IAM Identity Center groups with member counts.
func (c *Connector) ListSSOGroups(ctx context.Context) ([]SSOGroup, error) {
	storeID, err := c.identityStoreID(ctx)
	if err != nil {
		return nil, err
	}

	var groups []SSOGroup
	var token *string
	for {
		out, err := c.identityStore.ListGroups(ctx, &identitystore.ListGroupsInput{
			IdentityStoreId: aws.String(storeID),
			NextToken:       token,
		})
		if err != nil {
			return nil, wrapErr(err)
		}
		for _, g := range out.Groups {
			count, err := c.countGroupMembers(ctx, storeID, aws.ToString(g.GroupId))
			if err != nil {
				return nil, err
			}
			groups = append(groups, SSOGroup{
				GroupID:     aws.ToString(g.GroupId),
				DisplayName: aws.ToString(g.DisplayName),
				MemberCount: count,
			})
		}
		if out.NextToken == nil {
			break
		}
		token = out.NextToken
	}
	return groups, nil
}

func (c *Connector) countGroupMembers(ctx context.Context, storeID, groupID string) (int, error) {
	count := 0
	var token *string
	for {
		out, err := c.identityStore.ListGroupMemberships(ctx, &identitystore.ListGroupMembershipsInput{
			IdentityStoreId: aws.String(storeID),
			GroupId:         aws.String(groupID),
			NextToken:       token,
		})
		if err != nil {
			return 0, wrapErr(err)
		}
		count += len(out.GroupMemberships)
		if out.NextToken == nil {
			return count, nil
		}
		token = out.NextToken
	}
}

// Secret is one Secrets Manager entry. Value is populated only when the
// caller asked for values; JSON secret strings decode into a map with the
// secret's ARN included under "arn".
type Secret struct {
	Name  string `json:"name"`
	ARN   string `json:"arn"`
	Value any    `json:"value,omitempty"`
}

// ListSecrets lists secrets, optionally filtered by name prefix and
// optionally with their decoded values.
func (c *Connector) ListSecrets(ctx context.Context, prefix string, getValues bool) ([]Secret, error) {
	input := &secretsmanager.ListSecretsInput{}
	if prefix != "" {
		input.Filters = []secretstypes.Filter{{
			Key:    secretstypes.FilterNameStringTypeName,
			Values: []string{prefix},
		}}
	}

	var secrets []Secret
	for {
		out, err := c.secrets.ListSecrets(ctx, input)
		if err != nil {
			return nil, wrapErr(err)
		}
		for _, entry := range out.SecretList {
			secret := Secret{
				Name: aws.ToString(entry.Name),
				ARN:  aws.ToString(entry.ARN),
			}
			if getValues {
				value, _, err := c.secretValue(ctx, secret.ARN)
				if err != nil {
					return nil, err
				}
				secret.Value = value
			}
			secrets = append(secrets, secret)
		}
		if out.NextToken == nil {
			break
		}
		input.NextToken = out.NextToken
	}

	sort.Slice(secrets, func(i, j int) bool { return secrets[i].Name < secrets[j].Name })
	return secrets, nil
}

// SecretValue is the result of a single secret fetch.
type SecretValue struct {
	SecretName  string `json:"secret_name"`
	SecretValue any    `json:"secret_value"`
	Status      string `json:"status"`
}

// GetSecret fetches one secret by name or ARN. A missing secret reports
// status "not_found" instead of an error.
func (c *Connector) GetSecret(ctx context.Context, secretID string) (*SecretValue, error) {
	if secretID == "" {
		return nil, connector.ValidationError(Name, "secret_id is required")
	}

	value, found, err := c.secretValue(ctx, secretID)
	if err != nil {
		return nil, err
	}
	result := &SecretValue{SecretName: secretID, Status: "not_found"}
	if found {
		result.SecretValue = value
		result.Status = "retrieved"
	}
	return result, nil
}

// secretValue fetches and decodes one secret string. JSON object secrets
// decode to a map carrying the secret's ARN under "arn"; everything else
// stays a string.
func (c *Connector) secretValue(ctx context.Context, secretID string) (any, bool, error) {
	out, err := c.secrets.GetSecretValue(ctx, &secretsmanager.GetSecretValueInput{
		SecretId: aws.String(secretID),
	})
	if err != nil {
		var notFound *secretstypes.ResourceNotFoundException
		if errors.As(err, &notFound) {
			return nil, false, nil
		}
		return nil, false, wrapErr(err)
	}

	raw := aws.ToString(out.SecretString)
	var decoded map[string]any
	if err := json.Unmarshal([]byte(raw), &decoded); err == nil {
		// The SDK reports the key as ARN; expose it lowercase like the
		// rest of the reshaped fields.
		delete(decoded, "ARN")
		decoded["arn"] = aws.ToString(out.ARN)
		return decoded, true, nil
	}
	return raw, true, nil
}

// wrapErr maps SDK errors onto the connector taxonomy.
func wrapErr(err error) error {
	msg := err.Error()
	switch {
	case containsAny(msg, "ExpiredToken", "InvalidClientTokenId", "UnrecognizedClientException", "AccessDenied"):
		return connector.AuthError(Name, msg)
	case containsAny(msg, "ResourceNotFoundException", "NoSuchBucket"):
		return connector.NotFoundError(Name, msg)
	case containsAny(msg, "Throttling", "TooManyRequests"):
		return connector.NewError(Name, connector.TypeRateLimit, msg)
	default:
		return connector.NewError(Name, connector.TypeProvider, msg)
	}
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
