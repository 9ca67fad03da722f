package services

import (
	"context"
	"errors"

	"github.com/claytonnetvision/wodpulse-back/models"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// FriendStore persists friendship request edges.
type FriendStore interface {
	Get(ctx context.Context, requesterID, targetID string) (*models.FriendEdge, error)
	Put(ctx context.Context, edge models.FriendEdge) error
	SetAccepted(ctx context.Context, requesterID, targetID string) error
	Delete(ctx context.Context, requesterID, targetID string) error
	ListByRequester(ctx context.Context, requesterID string) ([]models.FriendEdge, error)
	ListByTarget(ctx context.Context, targetID string) ([]models.FriendEdge, error)
}

// DynamoFriendStore is the DynamoDB-backed FriendStore.
type DynamoFriendStore struct {
	Dynamo *DynamoService
}

func friendEdgeKey(requesterID, targetID string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"requesterId": &types.AttributeValueMemberS{Value: requesterID},
		"targetId":    &types.AttributeValueMemberS{Value: targetID},
	}
}

// Get returns the edge for the exact orientation, or nil when none exists.
func (s *DynamoFriendStore) Get(ctx context.Context, requesterID, targetID string) (*models.FriendEdge, error) {
	item, err := s.Dynamo.GetItem(ctx, models.FriendEdgesTable, friendEdgeKey(requesterID, targetID))
	if errors.Is(err, ErrItemNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var edge models.FriendEdge
	if err := attributevalue.UnmarshalMap(item, &edge); err != nil {
		return nil, err
	}
	return &edge, nil
}

func (s *DynamoFriendStore) Put(ctx context.Context, edge models.FriendEdge) error {
	return s.Dynamo.PutItem(ctx, models.FriendEdgesTable, edge)
}

// SetAccepted flips an existing pending edge to accepted. The existence
// guard keeps a concurrent decline (which deletes the row) from being
// resurrected as an accepted friendship.
func (s *DynamoFriendStore) SetAccepted(ctx context.Context, requesterID, targetID string) error {
	return s.Dynamo.UpdateItem(ctx, models.FriendEdgesTable,
		friendEdgeKey(requesterID, targetID),
		"SET #s = :accepted",
		"attribute_exists(requesterId)",
		map[string]string{"#s": "status"},
		map[string]types.AttributeValue{
			":accepted": &types.AttributeValueMemberS{Value: models.FriendStatusAccepted},
		})
}

func (s *DynamoFriendStore) Delete(ctx context.Context, requesterID, targetID string) error {
	return s.Dynamo.DeleteItem(ctx, models.FriendEdgesTable, friendEdgeKey(requesterID, targetID))
}

func (s *DynamoFriendStore) ListByRequester(ctx context.Context, requesterID string) ([]models.FriendEdge, error) {
	items, err := s.Dynamo.QueryItems(ctx, models.FriendEdgesTable,
		"requesterId = :id",
		map[string]types.AttributeValue{
			":id": &types.AttributeValueMemberS{Value: requesterID},
		}, nil, 0)
	if err != nil {
		return nil, err
	}
	var edges []models.FriendEdge
	if err := attributevalue.UnmarshalListOfMaps(items, &edges); err != nil {
		return nil, err
	}
	return edges, nil
}

func (s *DynamoFriendStore) ListByTarget(ctx context.Context, targetID string) ([]models.FriendEdge, error) {
	items, err := s.Dynamo.QueryItemsWithIndex(ctx, models.FriendEdgesTable, models.FriendTargetIndex,
		"targetId = :id",
		map[string]types.AttributeValue{
			":id": &types.AttributeValueMemberS{Value: targetID},
		}, nil, 0)
	if err != nil {
		return nil, err
	}
	var edges []models.FriendEdge
	if err := attributevalue.UnmarshalListOfMaps(items, &edges); err != nil {
		return nil, err
	}
	return edges, nil
}
