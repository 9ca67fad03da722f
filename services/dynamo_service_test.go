package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubDynamoClient satisfies DynamoAPI with a pluggable BatchWriteItem; the
// other calls are not exercised here.
type stubDynamoClient struct {
	batchWrite func(*dynamodb.BatchWriteItemInput) (*dynamodb.BatchWriteItemOutput, error)
}

func (s *stubDynamoClient) GetItem(context.Context, *dynamodb.GetItemInput, ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
	return nil, fmt.Errorf("not implemented")
}

func (s *stubDynamoClient) PutItem(context.Context, *dynamodb.PutItemInput, ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	return nil, fmt.Errorf("not implemented")
}

func (s *stubDynamoClient) UpdateItem(context.Context, *dynamodb.UpdateItemInput, ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error) {
	return nil, fmt.Errorf("not implemented")
}

func (s *stubDynamoClient) DeleteItem(context.Context, *dynamodb.DeleteItemInput, ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error) {
	return nil, fmt.Errorf("not implemented")
}

func (s *stubDynamoClient) Query(context.Context, *dynamodb.QueryInput, ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error) {
	return nil, fmt.Errorf("not implemented")
}

func (s *stubDynamoClient) Scan(context.Context, *dynamodb.ScanInput, ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error) {
	return nil, fmt.Errorf("not implemented")
}

func (s *stubDynamoClient) BatchWriteItem(_ context.Context, params *dynamodb.BatchWriteItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.BatchWriteItemOutput, error) {
	return s.batchWrite(params)
}

func (s *stubDynamoClient) TransactWriteItems(context.Context, *dynamodb.TransactWriteItemsInput, ...func(*dynamodb.Options)) (*dynamodb.TransactWriteItemsOutput, error) {
	return nil, fmt.Errorf("not implemented")
}

func deleteRequests(n int) []types.WriteRequest {
	requests := make([]types.WriteRequest, 0, n)
	for i := 0; i < n; i++ {
		requests = append(requests, types.WriteRequest{
			DeleteRequest: &types.DeleteRequest{
				Key: map[string]types.AttributeValue{
					"id": &types.AttributeValueMemberS{Value: fmt.Sprintf("item-%d", i)},
				},
			},
		})
	}
	return requests
}

func TestBatchWriteItemsChunksAtTwentyFive(t *testing.T) {
	var batchSizes []int
	client := &stubDynamoClient{
		batchWrite: func(params *dynamodb.BatchWriteItemInput) (*dynamodb.BatchWriteItemOutput, error) {
			batchSizes = append(batchSizes, len(params.RequestItems["Things"]))
			return &dynamodb.BatchWriteItemOutput{}, nil
		},
	}
	service := &DynamoService{Client: client}

	require.NoError(t, service.BatchWriteItems(context.Background(), "Things", deleteRequests(60)))
	assert.Equal(t, []int{25, 25, 10}, batchSizes)
}

func TestBatchWriteItemsRetriesUnprocessedOnce(t *testing.T) {
	calls := 0
	client := &stubDynamoClient{
		batchWrite: func(params *dynamodb.BatchWriteItemInput) (*dynamodb.BatchWriteItemOutput, error) {
			calls++
			if calls == 1 {
				// Throttled: hand back the last two requests.
				pending := params.RequestItems["Things"]
				return &dynamodb.BatchWriteItemOutput{
					UnprocessedItems: map[string][]types.WriteRequest{
						"Things": pending[len(pending)-2:],
					},
				}, nil
			}
			assert.Len(t, params.RequestItems["Things"], 2)
			return &dynamodb.BatchWriteItemOutput{}, nil
		},
	}
	service := &DynamoService{Client: client}

	require.NoError(t, service.BatchWriteItems(context.Background(), "Things", deleteRequests(10)))
	assert.Equal(t, 2, calls)
}

func TestBatchWriteItemsFailsWhenStillUnprocessed(t *testing.T) {
	client := &stubDynamoClient{
		batchWrite: func(params *dynamodb.BatchWriteItemInput) (*dynamodb.BatchWriteItemOutput, error) {
			return &dynamodb.BatchWriteItemOutput{
				UnprocessedItems: map[string][]types.WriteRequest{
					"Things": params.RequestItems["Things"],
				},
			}, nil
		},
	}
	service := &DynamoService{Client: client}

	err := service.BatchWriteItems(context.Background(), "Things", deleteRequests(3))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unprocessed")
}
