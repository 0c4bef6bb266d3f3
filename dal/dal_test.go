package dal

import (
	"context"
	"testing"

	"kishi-backend/models"
	"kishi-backend/utils/logger"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubDynamoAPI implements dynamoAPI with overridable behavior per call
type stubDynamoAPI struct {
	getItem       func(*dynamodb.GetItemInput) (*dynamodb.GetItemOutput, error)
	putItem       func(*dynamodb.PutItemInput) (*dynamodb.PutItemOutput, error)
	updateItem    func(*dynamodb.UpdateItemInput) (*dynamodb.UpdateItemOutput, error)
	query         func(*dynamodb.QueryInput) (*dynamodb.QueryOutput, error)
	scan          func(*dynamodb.ScanInput) (*dynamodb.ScanOutput, error)
	createTable   func(*dynamodb.CreateTableInput) (*dynamodb.CreateTableOutput, error)
	describeTable func(*dynamodb.DescribeTableInput) (*dynamodb.DescribeTableOutput, error)
	deleteTable   func(*dynamodb.DeleteTableInput) (*dynamodb.DeleteTableOutput, error)
}

func (s *stubDynamoAPI) GetItem(_ context.Context, in *dynamodb.GetItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
	if s.getItem != nil {
		return s.getItem(in)
	}
	return &dynamodb.GetItemOutput{}, nil
}

func (s *stubDynamoAPI) PutItem(_ context.Context, in *dynamodb.PutItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	if s.putItem != nil {
		return s.putItem(in)
	}
	return &dynamodb.PutItemOutput{}, nil
}

func (s *stubDynamoAPI) UpdateItem(_ context.Context, in *dynamodb.UpdateItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error) {
	if s.updateItem != nil {
		return s.updateItem(in)
	}
	return &dynamodb.UpdateItemOutput{}, nil
}

func (s *stubDynamoAPI) Query(_ context.Context, in *dynamodb.QueryInput, _ ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error) {
	if s.query != nil {
		return s.query(in)
	}
	return &dynamodb.QueryOutput{}, nil
}

func (s *stubDynamoAPI) Scan(_ context.Context, in *dynamodb.ScanInput, _ ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error) {
	if s.scan != nil {
		return s.scan(in)
	}
	return &dynamodb.ScanOutput{}, nil
}

func (s *stubDynamoAPI) CreateTable(_ context.Context, in *dynamodb.CreateTableInput, _ ...func(*dynamodb.Options)) (*dynamodb.CreateTableOutput, error) {
	if s.createTable != nil {
		return s.createTable(in)
	}
	return &dynamodb.CreateTableOutput{}, nil
}

func (s *stubDynamoAPI) DescribeTable(_ context.Context, in *dynamodb.DescribeTableInput, _ ...func(*dynamodb.Options)) (*dynamodb.DescribeTableOutput, error) {
	if s.describeTable != nil {
		return s.describeTable(in)
	}
	return &dynamodb.DescribeTableOutput{}, nil
}

func (s *stubDynamoAPI) DeleteTable(_ context.Context, in *dynamodb.DeleteTableInput, _ ...func(*dynamodb.Options)) (*dynamodb.DeleteTableOutput, error) {
	if s.deleteTable != nil {
		return s.deleteTable(in)
	}
	return &dynamodb.DeleteTableOutput{}, nil
}

func newStubClient(stub *stubDynamoAPI) *DynamoDBClient {
	return &DynamoDBClient{
		client: stub,
		config: &models.Config{},
		logger: logger.NewNop(),
	}
}

type testRecord struct {
	ID string `dynamodbav:"id"`
}

func item(id string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"id": &types.AttributeValueMemberS{Value: id},
	}
}

func TestBuildUpdateExpressionSingleField(t *testing.T) {
	expr, names, values, err := BuildUpdateExpression(map[string]interface{}{
		"status": "completed",
	})
	require.NoError(t, err)

	assert.Equal(t, "SET #status = :status", expr)
	assert.Equal(t, map[string]string{"#status": "status"}, names)

	sv, ok := values[":status"].(*types.AttributeValueMemberS)
	require.True(t, ok)
	assert.Equal(t, "completed", sv.Value)
}

func TestBuildUpdateExpressionIsDeterministic(t *testing.T) {
	updates := map[string]interface{}{
		"updated_at": "2026-01-02T03:04:05Z",
		"status":     "archived",
	}

	expr, names, values, err := BuildUpdateExpression(updates)
	require.NoError(t, err)

	// Fields come out sorted regardless of map iteration order
	assert.Equal(t, "SET #status = :status, #updated_at = :updated_at", expr)
	assert.Len(t, names, 2)
	assert.Len(t, values, 2)

	for i := 0; i < 10; i++ {
		again, _, _, err := BuildUpdateExpression(updates)
		require.NoError(t, err)
		assert.Equal(t, expr, again)
	}
}

func TestBuildUpdateExpressionRejectsEmptyUpdates(t *testing.T) {
	_, _, _, err := BuildUpdateExpression(map[string]interface{}{})
	assert.Error(t, err)
}

func TestQueryByIndexReadsNewestFirst(t *testing.T) {
	var captured *dynamodb.QueryInput
	stub := &stubDynamoAPI{
		query: func(in *dynamodb.QueryInput) (*dynamodb.QueryOutput, error) {
			captured = in
			return &dynamodb.QueryOutput{Items: []map[string]types.AttributeValue{item("a"), item("b")}}, nil
		},
	}
	db := newStubClient(stub)

	var results []testRecord
	err := db.QueryByIndex(context.Background(), "tbl", "status-index", "status", "new", 25, &results)
	require.NoError(t, err)

	require.NotNil(t, captured)
	// Descending sort-key order, so store-side truncation drops the oldest
	require.NotNil(t, captured.ScanIndexForward)
	assert.False(t, *captured.ScanIndexForward)
	assert.Equal(t, int32(25), *captured.Limit)
	assert.Equal(t, "status-index", *captured.IndexName)
	require.Len(t, results, 2)
	assert.Equal(t, "a", results[0].ID)
}

func TestScanFollowsPagination(t *testing.T) {
	pageKey := item("a")
	calls := 0
	var secondStart map[string]types.AttributeValue

	stub := &stubDynamoAPI{
		scan: func(in *dynamodb.ScanInput) (*dynamodb.ScanOutput, error) {
			calls++
			if calls == 1 {
				return &dynamodb.ScanOutput{
					Items:            []map[string]types.AttributeValue{item("a")},
					LastEvaluatedKey: pageKey,
				}, nil
			}
			secondStart = in.ExclusiveStartKey
			return &dynamodb.ScanOutput{Items: []map[string]types.AttributeValue{item("b")}}, nil
		},
	}
	db := newStubClient(stub)

	var results []testRecord
	err := db.Scan(context.Background(), "tbl", &results)
	require.NoError(t, err)

	assert.Equal(t, 2, calls)
	assert.Equal(t, pageKey, secondStart)
	require.Len(t, results, 2)
	assert.Equal(t, "a", results[0].ID)
	assert.Equal(t, "b", results[1].ID)
}

func TestPutItemIfNotExistsMapsConditionFailure(t *testing.T) {
	var captured *dynamodb.PutItemInput
	stub := &stubDynamoAPI{
		putItem: func(in *dynamodb.PutItemInput) (*dynamodb.PutItemOutput, error) {
			captured = in
			return nil, &types.ConditionalCheckFailedException{}
		},
	}
	db := newStubClient(stub)

	err := db.PutItemIfNotExists(context.Background(), "tbl", testRecord{ID: "a"}, "email")
	assert.ErrorIs(t, err, ErrConditionalCheckFailed)

	require.NotNil(t, captured)
	assert.Equal(t, "attribute_not_exists(#pk)", *captured.ConditionExpression)
	assert.Equal(t, "email", captured.ExpressionAttributeNames["#pk"])
}

func TestUpdateItemGuardsExistence(t *testing.T) {
	var captured *dynamodb.UpdateItemInput
	stub := &stubDynamoAPI{
		updateItem: func(in *dynamodb.UpdateItemInput) (*dynamodb.UpdateItemOutput, error) {
			captured = in
			return nil, &types.ConditionalCheckFailedException{}
		},
	}
	db := newStubClient(stub)

	err := db.UpdateItem(context.Background(), "tbl", "id", "abc", map[string]interface{}{"status": "archived"})
	assert.ErrorIs(t, err, ErrConditionalCheckFailed)

	require.NotNil(t, captured)
	assert.Equal(t, "attribute_exists(#pk)", *captured.ConditionExpression)
	assert.Equal(t, "id", captured.ExpressionAttributeNames["#pk"])
}
