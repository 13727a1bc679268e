package aws

import (
	"context"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/identitystore"
	identitystoretypes "github.com/aws/aws-sdk-go-v2/service/identitystore/types"
	"github.com/aws/aws-sdk-go-v2/service/organizations"
	organizationstypes "github.com/aws/aws-sdk-go-v2/service/organizations/types"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	secretstypes "github.com/aws/aws-sdk-go-v2/service/secretsmanager/types"
	"github.com/aws/aws-sdk-go-v2/service/ssoadmin"
	ssoadmintypes "github.com/aws/aws-sdk-go-v2/service/ssoadmin/types"
	"github.com/aws/aws-sdk-go-v2/service/sts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jbcom/vendor-connectors/pkg/connector"
	"github.com/jbcom/vendor-connectors/pkg/tools"
)

type fakeSTS struct{ account string }

func (f *fakeSTS) GetCallerIdentity(ctx context.Context, input *sts.GetCallerIdentityInput, optFns ...func(*sts.Options)) (*sts.GetCallerIdentityOutput, error) {
	return &sts.GetCallerIdentityOutput{Account: aws.String(f.account)}, nil
}

type fakeS3 struct {
	buckets  []s3types.Bucket
	pages    [][]s3types.Object
	pageCall int
}

func (f *fakeS3) ListBuckets(ctx context.Context, input *s3.ListBucketsInput, optFns ...func(*s3.Options)) (*s3.ListBucketsOutput, error) {
	return &s3.ListBucketsOutput{Buckets: f.buckets}, nil
}

func (f *fakeS3) ListObjectsV2(ctx context.Context, input *s3.ListObjectsV2Input, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error) {
	page := f.pages[f.pageCall]
	f.pageCall++
	out := &s3.ListObjectsV2Output{Contents: page}
	if f.pageCall < len(f.pages) {
		out.NextContinuationToken = aws.String("next")
	}
	return out, nil
}

func (f *fakeS3) GetBucketLocation(ctx context.Context, input *s3.GetBucketLocationInput, optFns ...func(*s3.Options)) (*s3.GetBucketLocationOutput, error) {
	return &s3.GetBucketLocationOutput{LocationConstraint: ""}, nil
}

type fakeOrganizations struct{ accounts []organizationstypes.Account }

func (f *fakeOrganizations) ListAccounts(ctx context.Context, input *organizations.ListAccountsInput, optFns ...func(*organizations.Options)) (*organizations.ListAccountsOutput, error) {
	return &organizations.ListAccountsOutput{Accounts: f.accounts}, nil
}

type fakeSSOAdmin struct{ storeID string }

func (f *fakeSSOAdmin) ListInstances(ctx context.Context, input *ssoadmin.ListInstancesInput, optFns ...func(*ssoadmin.Options)) (*ssoadmin.ListInstancesOutput, error) {
	if f.storeID == "" {
		return &ssoadmin.ListInstancesOutput{}, nil
	}
	return &ssoadmin.ListInstancesOutput{Instances: []ssoadmintypes.InstanceMetadata{
		{IdentityStoreId: aws.String(f.storeID)},
	}}, nil
}

type fakeIdentityStore struct {
	users   []identitystoretypes.User
	groups  []identitystoretypes.Group
	members map[string]int
}

func (f *fakeIdentityStore) ListUsers(ctx context.Context, input *identitystore.ListUsersInput, optFns ...func(*identitystore.Options)) (*identitystore.ListUsersOutput, error) {
	return &identitystore.ListUsersOutput{Users: f.users}, nil
}

func (f *fakeIdentityStore) ListGroups(ctx context.Context, input *identitystore.ListGroupsInput, optFns ...func(*identitystore.Options)) (*identitystore.ListGroupsOutput, error) {
	return &identitystore.ListGroupsOutput{Groups: f.groups}, nil
}

func (f *fakeIdentityStore) ListGroupMemberships(ctx context.Context, input *identitystore.ListGroupMembershipsInput, optFns ...func(*identitystore.Options)) (*identitystore.ListGroupMembershipsOutput, error) {
	n := f.members[aws.ToString(input.GroupId)]
	memberships := make([]identitystoretypes.GroupMembership, n)
	return &identitystore.ListGroupMembershipsOutput{GroupMemberships: memberships}, nil
}

type fakeSecretsManager struct {
	list   []secretstypes.SecretListEntry
	values map[string]string
}

func (f *fakeSecretsManager) ListSecrets(ctx context.Context, input *secretsmanager.ListSecretsInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.ListSecretsOutput, error) {
	return &secretsmanager.ListSecretsOutput{SecretList: f.list}, nil
}

func (f *fakeSecretsManager) GetSecretValue(ctx context.Context, input *secretsmanager.GetSecretValueInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error) {
	id := aws.ToString(input.SecretId)
	value, ok := f.values[id]
	if !ok {
		return nil, &secretstypes.ResourceNotFoundException{Message: aws.String("Secrets Manager can't find the specified secret.")}
	}
	return &secretsmanager.GetSecretValueOutput{
		ARN:          aws.String("arn:aws:secretsmanager:us-east-1:123456789012:secret:" + id),
		SecretString: aws.String(value),
	}, nil
}

func newTestConnector(sm secretsManagerAPI) *Connector {
	return NewWithClients(
		&fakeSTS{account: "123456789012"},
		&fakeS3{},
		&fakeOrganizations{},
		&fakeSSOAdmin{storeID: "d-1234567890"},
		&fakeIdentityStore{},
		sm,
	)
}

func TestGetCallerAccountID(t *testing.T) {
	c := newTestConnector(&fakeSecretsManager{})

	id, err := c.GetCallerAccountID(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "123456789012", id)
}

func TestListS3Buckets_DefaultRegion(t *testing.T) {
	created := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	c := newTestConnector(&fakeSecretsManager{})
	c.s3 = &fakeS3{buckets: []s3types.Bucket{
		{Name: aws.String("logs"), CreationDate: &created},
	}}

	buckets, err := c.ListS3Buckets(context.Background())
	require.NoError(t, err)
	require.Len(t, buckets, 1)
	assert.Equal(t, "logs", buckets[0].Name)
	assert.Equal(t, "2025-03-01T12:00:00Z", buckets[0].CreationDate)
	assert.Equal(t, "us-east-1", buckets[0].Region)
}

func TestListS3Objects_FollowsContinuation(t *testing.T) {
	c := newTestConnector(&fakeSecretsManager{})
	c.s3 = &fakeS3{pages: [][]s3types.Object{
		{{Key: aws.String("a.txt"), Size: aws.Int64(10)}},
		{{Key: aws.String("b.txt"), Size: aws.Int64(20)}},
	}}

	objects, err := c.ListS3Objects(context.Background(), "logs")
	require.NoError(t, err)
	require.Len(t, objects, 2)
	assert.Equal(t, "b.txt", objects[1].Key)
	assert.Equal(t, int64(20), objects[1].Size)
}

func TestListS3Objects_RequiresBucket(t *testing.T) {
	c := newTestConnector(&fakeSecretsManager{})

	_, err := c.ListS3Objects(context.Background(), "")
	require.Error(t, err)
	assert.Equal(t, connector.TypeValidation, connector.TypeOf(err))
}

func TestListAccounts(t *testing.T) {
	c := newTestConnector(&fakeSecretsManager{})
	c.organizations = &fakeOrganizations{accounts: []organizationstypes.Account{
		{Id: aws.String("111111111111"), Name: aws.String("prod"), Email: aws.String("prod@acme.com"), Status: organizationstypes.AccountStatusActive},
	}}

	accounts, err := c.ListAccounts(context.Background())
	require.NoError(t, err)
	require.Len(t, accounts, 1)
	assert.Equal(t, "prod", accounts[0].Name)
	assert.Equal(t, "ACTIVE", accounts[0].Status)
}

func TestListSSOUsers_PrimaryEmail(t *testing.T) {
	c := newTestConnector(&fakeSecretsManager{})
	c.identityStore = &fakeIdentityStore{users: []identitystoretypes.User{
		{
			UserId:      aws.String("u-1"),
			UserName:    aws.String("alice"),
			DisplayName: aws.String("Alice Example"),
			Emails: []identitystoretypes.Email{
				{Value: aws.String("alt@acme.com"), Primary: false},
				{Value: aws.String("alice@acme.com"), Primary: true},
			},
		},
	}}

	users, err := c.ListSSOUsers(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "alice@acme.com", users[0].Email)
}

func TestListSSOUsers_NoInstance(t *testing.T) {
	c := newTestConnector(&fakeSecretsManager{})
	c.ssoAdmin = &fakeSSOAdmin{}

	_, err := c.ListSSOUsers(context.Background())
	require.Error(t, err)
	assert.True(t, connector.IsNotFound(err))
}

func TestListSSOGroups_MemberCounts(t *testing.T) {
	c := newTestConnector(&fakeSecretsManager{})
	c.identityStore = &fakeIdentityStore{
		groups: []identitystoretypes.Group{
			{GroupId: aws.String("g-1"), DisplayName: aws.String("platform")},
		},
		members: map[string]int{"g-1": 4},
	}

	groups, err := c.ListSSOGroups(context.Background())
	require.NoError(t, err)
	require.Len(t, groups, 1)
	assert.Equal(t, 4, groups[0].MemberCount)
}

func TestListSecrets_WithValues(t *testing.T) {
	sm := &fakeSecretsManager{
		list: []secretstypes.SecretListEntry{
			{Name: aws.String("prod/db"), ARN: aws.String("arn:aws:secretsmanager:us-east-1:123456789012:secret:prod/db")},
			{Name: aws.String("prod/api"), ARN: aws.String("arn:aws:secretsmanager:us-east-1:123456789012:secret:prod/api")},
		},
		values: map[string]string{
			"arn:aws:secretsmanager:us-east-1:123456789012:secret:prod/db":  `{"username":"admin","password":"hunter2"}`,
			"arn:aws:secretsmanager:us-east-1:123456789012:secret:prod/api": "plain-token",
		},
	}
	c := newTestConnector(sm)

	secrets, err := c.ListSecrets(context.Background(), "prod/", true)
	require.NoError(t, err)
	require.Len(t, secrets, 2)

	// Sorted by name.
	assert.Equal(t, "prod/api", secrets[0].Name)
	assert.Equal(t, "plain-token", secrets[0].Value)

	db, ok := secrets[1].Value.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "admin", db["username"])
	assert.Contains(t, db["arn"], "secret:prod/db")
}

func TestListSecrets_NamesOnly(t *testing.T) {
	sm := &fakeSecretsManager{list: []secretstypes.SecretListEntry{
		{Name: aws.String("prod/db"), ARN: aws.String("arn:x")},
	}}
	c := newTestConnector(sm)

	secrets, err := c.ListSecrets(context.Background(), "", false)
	require.NoError(t, err)
	require.Len(t, secrets, 1)
	assert.Nil(t, secrets[0].Value)
}

func TestGetSecret_NotFoundStatus(t *testing.T) {
	c := newTestConnector(&fakeSecretsManager{values: map[string]string{}})

	result, err := c.GetSecret(context.Background(), "missing")
	require.NoError(t, err)
	assert.Equal(t, "not_found", result.Status)
	assert.Nil(t, result.SecretValue)
}

func TestGetSecret_Retrieved(t *testing.T) {
	c := newTestConnector(&fakeSecretsManager{values: map[string]string{
		"prod/db": `{"host":"db.internal"}`,
	}})

	result, err := c.GetSecret(context.Background(), "prod/db")
	require.NoError(t, err)
	assert.Equal(t, "retrieved", result.Status)

	value, ok := result.SecretValue.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "db.internal", value["host"])
}

func TestDefinitions_TableInvariants(t *testing.T) {
	defs := Definitions()
	require.NoError(t, tools.Validate(Name, defs))
	assert.Len(t, defs, 8)
}
