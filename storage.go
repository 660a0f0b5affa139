package listservice

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	dynamodbtypes "github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// PartitionKey is the DynamoDB partition key attribute name. The table uses
// a simple primary key: one item per list, keyed by its identifier.
const PartitionKey = "list_id"

// API is the subset of the DynamoDB client used by DynamoDBStorage. It
// exists so tests can inject a mock implementation via WithAPI.
type API interface {
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	DeleteItem(ctx context.Context, params *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error)
	Scan(ctx context.Context, params *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error)
	DescribeTable(ctx context.Context, params *dynamodb.DescribeTableInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DescribeTableOutput, error)
}

// DynamoDBStorage is a DynamoDB-backed implementation of the Storage
// interface. Each record is stored as a single item keyed by list_id.
//
// Use NewDynamoDBStorage to create an instance, Connect to initialize the
// underlying DynamoDB connection, and Init to validate the table schema.
// DynamoDBStorage is safe for concurrent use by multiple goroutines.
//
// Backend errors are wrapped and propagated unchanged to the caller. There
// are no retries and no backoff; mapping failures to a 500-class response is
// the caller's responsibility.
type DynamoDBStorage struct {
	client    API
	tableName string
	awsCfg    *aws.Config
	opts      *Options
}

var _ Storage = (*DynamoDBStorage)(nil)

// NewDynamoDBStorage creates a storage adapter configured with the given AWS
// config, table name, and optional options. Call Connect on the returned
// value before use.
func NewDynamoDBStorage(awsCfg *aws.Config, tableName string, opts ...Option) *DynamoDBStorage {
	options := newOptions()

	for _, o := range opts {
		o(options)
	}

	return &DynamoDBStorage{
		awsCfg:    awsCfg,
		tableName: tableName,
		opts:      options,
	}
}

// Connect initializes the DynamoDB client from the AWS config provided to
// NewDynamoDBStorage. It must complete before the storage is used
// concurrently.
func (s *DynamoDBStorage) Connect() error {
	if s.tableName == "" {
		return errors.New("table name cannot be empty")
	}

	switch {
	case s.opts.dynamoDBAPI != nil:
		// Use the injected DynamoDB API if provided (useful for testing).
		s.client = s.opts.dynamoDBAPI
	case s.opts.endpoint != "":
		s.client = dynamodb.NewFromConfig(*s.awsCfg, func(o *dynamodb.Options) {
			o.BaseEndpoint = aws.String(s.opts.endpoint)
		})
	default:
		s.client = dynamodb.NewFromConfig(*s.awsCfg)
	}

	return nil
}

// Init validates the DynamoDB table schema. It checks that the table exists,
// is active, and is keyed by a simple list_id partition key.
func (s *DynamoDBStorage) Init(ctx context.Context) error {
	input := &dynamodb.DescribeTableInput{
		TableName: aws.String(s.tableName),
	}

	response, err := s.client.DescribeTable(ctx, input)
	if err != nil {
		var notFoundError *dynamodbtypes.ResourceNotFoundException
		if errors.As(err, &notFoundError) {
			return fmt.Errorf("table %s does not exist", s.tableName)
		}
		return fmt.Errorf("failed to describe table %s: %w", s.tableName, err)
	}

	if len(response.Table.KeySchema) != 1 {
		return fmt.Errorf("table %s has a composite primary key, expected a simple key on %s", s.tableName, PartitionKey)
	}

	if aws.ToString(response.Table.KeySchema[0].AttributeName) != PartitionKey {
		return fmt.Errorf("table %s has partition key %s, expected %s", s.tableName, aws.ToString(response.Table.KeySchema[0].AttributeName), PartitionKey)
	}

	if response.Table.TableStatus != dynamodbtypes.TableStatusActive {
		return fmt.Errorf("table %s is not active (status: %s)", s.tableName, response.Table.TableStatus)
	}

	return nil
}

// Get retrieves a record by list identifier. Returns (nil, nil) when no
// record exists.
func (s *DynamoDBStorage) Get(ctx context.Context, listID string) (*Record, error) {
	input := &dynamodb.GetItemInput{
		TableName: aws.String(s.tableName),
		Key: map[string]dynamodbtypes.AttributeValue{
			PartitionKey: &dynamodbtypes.AttributeValueMemberS{Value: listID},
		},
	}

	output, err := s.client.GetItem(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to get list %s from DynamoDB table %s: %w", listID, s.tableName, err)
	}

	if len(output.Item) == 0 {
		return nil, nil
	}

	var record Record
	if err := attributevalue.UnmarshalMap(output.Item, &record); err != nil {
		return nil, fmt.Errorf("failed to unmarshal list %s: %w", listID, err)
	}

	return &record, nil
}

// Put creates or replaces a record. The original created_at is preserved
// when a record already exists; otherwise both timestamps are set to now.
// updated_at and count are refreshed on every write.
func (s *DynamoDBStorage) Put(ctx context.Context, listID string, items []string) (*Record, error) {
	existing, err := s.Get(ctx, listID)
	if err != nil {
		return nil, err
	}

	now := formatTimestamp(s.opts.clock())
	record := &Record{
		ListID:    listID,
		Items:     items,
		Count:     len(items),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if existing != nil {
		record.CreatedAt = existing.CreatedAt
	}

	if err := s.write(ctx, record); err != nil {
		return nil, err
	}

	return record, nil
}

// Create stores a new record under a generated identifier with both
// timestamps set to now. Identifiers are random 128-bit UUIDs, so collision
// probability is negligible and no existence check is made.
func (s *DynamoDBStorage) Create(ctx context.Context, items []string) (*Record, error) {
	now := formatTimestamp(s.opts.clock())
	record := &Record{
		ListID:    s.opts.newID(),
		Items:     items,
		Count:     len(items),
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.write(ctx, record); err != nil {
		return nil, err
	}

	return record, nil
}

// Update replaces the items of an existing record. Returns (nil, nil)
// without writing when no record exists for the id; it never creates.
func (s *DynamoDBStorage) Update(ctx context.Context, listID string, items []string) (*Record, error) {
	existing, err := s.Get(ctx, listID)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, nil
	}

	record := &Record{
		ListID:    listID,
		Items:     items,
		Count:     len(items),
		CreatedAt: existing.CreatedAt,
		UpdatedAt: formatTimestamp(s.opts.clock()),
	}

	if err := s.write(ctx, record); err != nil {
		return nil, err
	}

	return record, nil
}

// ScanAll returns every stored record by scanning the table in pages. There
// is no ordering guarantee and no pagination of the result; list counts are
// expected to be small.
func (s *DynamoDBStorage) ScanAll(ctx context.Context) ([]Record, error) {
	input := &dynamodb.ScanInput{
		TableName: aws.String(s.tableName),
	}

	records := make([]Record, 0)

	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		output, err := s.client.Scan(ctx, input)
		if err != nil {
			return nil, fmt.Errorf("failed to scan DynamoDB table %s: %w", s.tableName, err)
		}

		var page []Record
		if err := attributevalue.UnmarshalListOfMaps(output.Items, &page); err != nil {
			return nil, fmt.Errorf("failed to unmarshal scan page from table %s: %w", s.tableName, err)
		}
		records = append(records, page...)

		if output.LastEvaluatedKey == nil {
			break
		}

		input.ExclusiveStartKey = output.LastEvaluatedKey
	}

	return records, nil
}

// Delete removes a record if present and reports whether it existed
// beforehand. Deleting a nonexistent identifier is not an error.
func (s *DynamoDBStorage) Delete(ctx context.Context, listID string) (bool, error) {
	existing, err := s.Get(ctx, listID)
	if err != nil {
		return false, err
	}
	if existing == nil {
		return false, nil
	}

	input := &dynamodb.DeleteItemInput{
		TableName: aws.String(s.tableName),
		Key: map[string]dynamodbtypes.AttributeValue{
			PartitionKey: &dynamodbtypes.AttributeValueMemberS{Value: listID},
		},
	}

	if _, err := s.client.DeleteItem(ctx, input); err != nil {
		return false, fmt.Errorf("failed to delete list %s from DynamoDB table %s: %w", listID, s.tableName, err)
	}

	return true, nil
}

func (s *DynamoDBStorage) write(ctx context.Context, record *Record) error {
	item, err := attributevalue.MarshalMap(record)
	if err != nil {
		return fmt.Errorf("failed to marshal list %s: %w", record.ListID, err)
	}

	input := &dynamodb.PutItemInput{
		TableName: aws.String(s.tableName),
		Item:      item,
	}

	if _, err := s.client.PutItem(ctx, input); err != nil {
		return fmt.Errorf("failed to write list %s to DynamoDB table %s: %w", record.ListID, s.tableName, err)
	}

	return nil
}
