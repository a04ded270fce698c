package s3

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/hupe1980/strintern/blobstore"
)

// CommitStore is a Store whose CURRENT pointer lives in DynamoDB.
//
// S3 has no compare-and-swap, so two writers publishing snapshots at the
// same time could each overwrite the other's CURRENT object. CommitStore
// instead appends a numbered version row per commit with a conditional
// write; the row with the highest version names the latest snapshot.
//
// Table schema:
//   - Partition key: base_uri (string) - the S3 bucket/prefix
//   - Sort key: version (number) - monotonically increasing version
//
// Create table with:
//
//	aws dynamodb create-table \
//	  --table-name strintern-commits \
//	  --attribute-definitions AttributeName=base_uri,AttributeType=S AttributeName=version,AttributeType=N \
//	  --key-schema AttributeName=base_uri,KeyType=HASH AttributeName=version,KeyType=RANGE \
//	  --billing-mode PAY_PER_REQUEST
type CommitStore struct {
	*Store
	ddbClient DDBClient
	tableName string
	baseURI   string
}

// DDBClient is the interface for DynamoDB operations.
type DDBClient interface {
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
}

// ErrConcurrentModification is returned when a concurrent commit is detected.
var ErrConcurrentModification = errors.New("concurrent modification detected")

var _ blobstore.Committer = (*CommitStore)(nil)

// NewCommitStore creates a new S3+DynamoDB commit store.
// baseURI (usually "s3://bucket/prefix") is the partition key.
func NewCommitStore(store *Store, ddbClient DDBClient, tableName, baseURI string) *CommitStore {
	return &CommitStore{
		Store:     store,
		ddbClient: ddbClient,
		tableName: tableName,
		baseURI:   baseURI,
	}
}

// NewCommitStoreFromConfig creates a DynamoDB client from cfg.
func NewCommitStoreFromConfig(store *Store, cfg aws.Config, tableName, baseURI string) *CommitStore {
	return NewCommitStore(store, dynamodb.NewFromConfig(cfg), tableName, baseURI)
}

// Get reads a blob. CURRENT is served from DynamoDB.
func (s *CommitStore) Get(ctx context.Context, name string) ([]byte, error) {
	if name == blobstore.CurrentName {
		current, err := s.Current(ctx)
		if err != nil {
			return nil, err
		}
		return []byte(current), nil
	}
	return s.Store.Get(ctx, name)
}

// Put writes a blob. Writing CURRENT commits through DynamoDB.
func (s *CommitStore) Put(ctx context.Context, name string, data []byte) error {
	if name == blobstore.CurrentName {
		return s.Commit(ctx, string(data))
	}
	return s.Store.Put(ctx, name, data)
}

// Current returns the snapshot name of the latest committed version.
func (s *CommitStore) Current(ctx context.Context) (string, error) {
	version, name, err := s.latest(ctx)
	if err != nil {
		return "", err
	}
	if version == 0 {
		return "", fmt.Errorf("s3: no committed snapshot for %s: %w", s.baseURI, blobstore.ErrNotFound)
	}
	return name, nil
}

// Version returns the latest committed version, 0 if none.
func (s *CommitStore) Version(ctx context.Context) (uint64, error) {
	version, _, err := s.latest(ctx)
	return version, err
}

// Commit atomically records name as the next version. It returns
// ErrConcurrentModification if another writer committed the same version
// first; the caller may retry.
func (s *CommitStore) Commit(ctx context.Context, name string) error {
	current, _, err := s.latest(ctx)
	if err != nil {
		return err
	}

	_, err = s.ddbClient.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.tableName),
		Item: map[string]types.AttributeValue{
			"base_uri":      &types.AttributeValueMemberS{Value: s.baseURI},
			"version":       &types.AttributeValueMemberN{Value: strconv.FormatUint(current+1, 10)},
			"snapshot_name": &types.AttributeValueMemberS{Value: name},
		},
		ConditionExpression: aws.String("attribute_not_exists(version)"),
	})
	if err != nil {
		var condErr *types.ConditionalCheckFailedException
		if errors.As(err, &condErr) {
			return ErrConcurrentModification
		}
		return fmt.Errorf("failed to commit version to DynamoDB: %w", err)
	}
	return nil
}

// latest queries DynamoDB for the latest committed version.
func (s *CommitStore) latest(ctx context.Context) (uint64, string, error) {
	resp, err := s.ddbClient.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(s.tableName),
		KeyConditionExpression: aws.String("base_uri = :uri"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":uri": &types.AttributeValueMemberS{Value: s.baseURI},
		},
		ScanIndexForward: aws.Bool(false), // Descending order
		Limit:            aws.Int32(1),
	})
	if err != nil {
		return 0, "", fmt.Errorf("failed to query DynamoDB: %w", err)
	}
	if len(resp.Items) == 0 {
		return 0, "", nil
	}

	item := resp.Items[0]
	versionAttr, ok := item["version"].(*types.AttributeValueMemberN)
	if !ok {
		return 0, "", errors.New("invalid version attribute in DynamoDB")
	}
	nameAttr, ok := item["snapshot_name"].(*types.AttributeValueMemberS)
	if !ok {
		return 0, "", errors.New("invalid snapshot_name attribute in DynamoDB")
	}

	version, err := strconv.ParseUint(versionAttr.Value, 10, 64)
	if err != nil {
		return 0, "", fmt.Errorf("failed to parse version: %w", err)
	}
	return version, nameAttr.Value, nil
}
