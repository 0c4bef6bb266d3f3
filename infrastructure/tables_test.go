package infrastructure

import (
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetTablesContactSubmissions(t *testing.T) {
	input, err := GetTables("dev_contact_submissions")
	require.NoError(t, err)

	assert.Equal(t, "dev_contact_submissions", *input.TableName)
	require.Len(t, input.KeySchema, 1)
	assert.Equal(t, "id", *input.KeySchema[0].AttributeName)
	assert.Equal(t, types.KeyTypeHash, input.KeySchema[0].KeyType)

	require.Len(t, input.GlobalSecondaryIndexes, 1)
	gsi := input.GlobalSecondaryIndexes[0]
	assert.Equal(t, "status-index", *gsi.IndexName)
	require.Len(t, gsi.KeySchema, 2)
	assert.Equal(t, "status", *gsi.KeySchema[0].AttributeName)
	assert.Equal(t, "timestamp", *gsi.KeySchema[1].AttributeName)
	assert.Equal(t, types.ProjectionTypeAll, gsi.Projection.ProjectionType)
}

func TestGetTablesNewsletterSubscribers(t *testing.T) {
	input, err := GetTables("prod_newsletter_subscribers")
	require.NoError(t, err)

	assert.Equal(t, "prod_newsletter_subscribers", *input.TableName)
	require.Len(t, input.KeySchema, 1)
	assert.Equal(t, "email", *input.KeySchema[0].AttributeName)

	require.Len(t, input.GlobalSecondaryIndexes, 1)
	gsi := input.GlobalSecondaryIndexes[0]
	assert.Equal(t, "status-index", *gsi.IndexName)
	assert.Equal(t, "subscribed_at", *gsi.KeySchema[1].AttributeName)
}

func TestGetTablesUnknownSchema(t *testing.T) {
	_, err := GetTables("dev_unknown_table")
	assert.Error(t, err)
}

func TestExtractBaseTableName(t *testing.T) {
	assert.Equal(t, "contact_submissions", extractBaseTableName("dev_contact_submissions"))
	assert.Equal(t, "newsletter_subscribers", extractBaseTableName("prod_newsletter_subscribers"))
	assert.Equal(t, "plain", extractBaseTableName("plain"))
}
