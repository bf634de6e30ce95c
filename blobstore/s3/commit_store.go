package s3

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"
	"github.com/hupe1980/prost/blobstore"
)

// ErrConcurrentModification is returned when another writer committed the
// same version first.
var ErrConcurrentModification = errors.New("s3: concurrent modification detected")

// DDBClient is the subset of the DynamoDB API used by CommitStore.
type DDBClient interface {
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
	DeleteItem(ctx context.Context, params *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error)
}

var _ DDBClient = (*dynamodb.Client)(nil)

const (
	attrKey     = "base_uri"
	attrVersion = "version"
	attrBlob    = "blob_path"
)

// CommitStore implements blobstore.BlobStore with versioned writes.
//
// Every Put stores the content under a fresh object name and then commits
// version N+1 of the logical name in DynamoDB with a conditional write. Open
// resolves the newest committed version. A writer that loses the race gets
// ErrConcurrentModification and its object is removed.
//
// Table schema:
//   - Partition key: base_uri (string), "<baseURI>#<name>"
//   - Sort key: version (number)
//
//	aws dynamodb create-table \
//	  --table-name prost-commits \
//	  --attribute-definitions AttributeName=base_uri,AttributeType=S AttributeName=version,AttributeType=N \
//	  --key-schema AttributeName=base_uri,KeyType=HASH AttributeName=version,KeyType=RANGE \
//	  --billing-mode PAY_PER_REQUEST
type CommitStore struct {
	blobs   blobstore.BlobStore
	ddb     DDBClient
	table   string
	baseURI string
}

// NewCommitStore creates a commit store over blobs.
// baseURI identifies the store in the table, e.g. "s3://bucket/prost".
func NewCommitStore(blobs blobstore.BlobStore, ddb DDBClient, table, baseURI string) *CommitStore {
	return &CommitStore{
		blobs:   blobs,
		ddb:     ddb,
		table:   table,
		baseURI: baseURI,
	}
}

func (s *CommitStore) partition(name string) string {
	return s.baseURI + "#" + name
}

type commit struct {
	version uint64
	blob    string
}

// Latest returns the newest committed version of name, or 0.
func (s *CommitStore) Latest(ctx context.Context, name string) (uint64, error) {
	c, err := s.latest(ctx, name)
	return c.version, err
}

func (s *CommitStore) latest(ctx context.Context, name string) (commit, error) {
	resp, err := s.ddb.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(s.table),
		KeyConditionExpression: aws.String("base_uri = :uri"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":uri": &types.AttributeValueMemberS{Value: s.partition(name)},
		},
		ScanIndexForward: aws.Bool(false),
		Limit:            aws.Int32(1),
	})
	if err != nil {
		return commit{}, fmt.Errorf("s3: query commits: %w", err)
	}
	if len(resp.Items) == 0 {
		return commit{}, nil
	}
	return parseCommit(resp.Items[0])
}

func parseCommit(item map[string]types.AttributeValue) (commit, error) {
	v, ok := item[attrVersion].(*types.AttributeValueMemberN)
	if !ok {
		return commit{}, errors.New("s3: invalid version attribute")
	}
	p, ok := item[attrBlob].(*types.AttributeValueMemberS)
	if !ok {
		return commit{}, errors.New("s3: invalid blob_path attribute")
	}
	version, err := strconv.ParseUint(v.Value, 10, 64)
	if err != nil {
		return commit{}, fmt.Errorf("s3: parse version: %w", err)
	}
	return commit{version: version, blob: p.Value}, nil
}

// Open opens the newest committed version of name.
func (s *CommitStore) Open(ctx context.Context, name string) (blobstore.Blob, error) {
	c, err := s.latest(ctx, name)
	if err != nil {
		return nil, err
	}
	if c.version == 0 {
		return nil, fmt.Errorf("s3: %s: %w", name, blobstore.ErrNotFound)
	}
	return s.blobs.Open(ctx, c.blob)
}

// Put stores data and commits it as the next version of name.
func (s *CommitStore) Put(ctx context.Context, name string, data []byte) error {
	c, err := s.latest(ctx, name)
	if err != nil {
		return err
	}
	next := c.version + 1
	object := fmt.Sprintf("%s.v%d-%s", name, next, uuid.NewString())

	if err := s.blobs.Put(ctx, object, data); err != nil {
		return err
	}

	_, err = s.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.table),
		Item: map[string]types.AttributeValue{
			attrKey:     &types.AttributeValueMemberS{Value: s.partition(name)},
			attrVersion: &types.AttributeValueMemberN{Value: strconv.FormatUint(next, 10)},
			attrBlob:    &types.AttributeValueMemberS{Value: object},
		},
		ConditionExpression: aws.String("attribute_not_exists(version)"),
	})
	if err != nil {
		_ = s.blobs.Delete(ctx, object)
		var condErr *types.ConditionalCheckFailedException
		if errors.As(err, &condErr) {
			return ErrConcurrentModification
		}
		return fmt.Errorf("s3: commit %s v%d: %w", name, next, err)
	}
	return nil
}

// Delete removes every committed version of name and its objects.
func (s *CommitStore) Delete(ctx context.Context, name string) error {
	var start map[string]types.AttributeValue
	for {
		resp, err := s.ddb.Query(ctx, &dynamodb.QueryInput{
			TableName:              aws.String(s.table),
			KeyConditionExpression: aws.String("base_uri = :uri"),
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":uri": &types.AttributeValueMemberS{Value: s.partition(name)},
			},
			ExclusiveStartKey: start,
		})
		if err != nil {
			return fmt.Errorf("s3: query commits: %w", err)
		}
		for _, item := range resp.Items {
			c, err := parseCommit(item)
			if err != nil {
				return err
			}
			if err := s.blobs.Delete(ctx, c.blob); err != nil {
				return err
			}
			if _, err := s.ddb.DeleteItem(ctx, &dynamodb.DeleteItemInput{
				TableName: aws.String(s.table),
				Key: map[string]types.AttributeValue{
					attrKey:     item[attrKey],
					attrVersion: item[attrVersion],
				},
			}); err != nil {
				return fmt.Errorf("s3: delete commit: %w", err)
			}
		}
		if len(resp.LastEvaluatedKey) == 0 {
			return nil
		}
		start = resp.LastEvaluatedKey
	}
}

// List returns the logical names of stored objects with the prefix.
// Names whose only object is an uncommitted upload are included.
func (s *CommitStore) List(ctx context.Context, prefix string) ([]string, error) {
	objects, err := s.blobs.List(ctx, prefix)
	if err != nil {
		return nil, err
	}
	var names []string
	for _, o := range objects {
		if name, ok := logicalName(o); ok {
			names = append(names, name)
		}
	}
	slices.Sort(names)
	return slices.Compact(names), nil
}

// logicalName strips the ".v<N>-<uuid>" suffix added by Put.
func logicalName(object string) (string, bool) {
	i := strings.LastIndex(object, ".v")
	if i < 0 {
		return "", false
	}
	version, id, ok := strings.Cut(object[i+2:], "-")
	if !ok {
		return "", false
	}
	if _, err := strconv.ParseUint(version, 10, 64); err != nil {
		return "", false
	}
	if _, err := uuid.Parse(id); err != nil {
		return "", false
	}
	return object[:i], true
}
