package services

import (
	"context"
	"errors"
	"time"

	"github.com/claytonnetvision/wodpulse-back/models"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// MatchStore persists directed interest edges. PromoteMutual and
// DemoteMutual are atomic across both rows of a pair; everything else is a
// plain single-row operation.
type MatchStore interface {
	GetEdge(ctx context.Context, actorID, targetID string) (*models.MatchEdge, error)
	PutEdge(ctx context.Context, edge models.MatchEdge) error
	PromoteMutual(ctx context.Context, actorID, targetID string) (bool, error)
	DemoteMutual(ctx context.Context, actorID, targetID string) (bool, error)
	ListEdgesFrom(ctx context.Context, actorID string) ([]models.MatchEdge, error)
}

// DynamoMatchStore is the DynamoDB-backed MatchStore.
type DynamoMatchStore struct {
	Dynamo *DynamoService
}

func matchEdgeKey(actorID, targetID string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"actorId":  &types.AttributeValueMemberS{Value: actorID},
		"targetId": &types.AttributeValueMemberS{Value: targetID},
	}
}

// GetEdge returns the edge for the ordered pair, or nil when none exists.
func (s *DynamoMatchStore) GetEdge(ctx context.Context, actorID, targetID string) (*models.MatchEdge, error) {
	item, err := s.Dynamo.GetItem(ctx, models.MatchEdgesTable, matchEdgeKey(actorID, targetID))
	if errors.Is(err, ErrItemNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var edge models.MatchEdge
	if err := attributevalue.UnmarshalMap(item, &edge); err != nil {
		return nil, err
	}
	return &edge, nil
}

func (s *DynamoMatchStore) PutEdge(ctx context.Context, edge models.MatchEdge) error {
	return s.Dynamo.PutItem(ctx, models.MatchEdgesTable, edge)
}

// PromoteMutual flips both rows of the pair to mutual_match in one
// transaction. Each update is guarded so a reject landing between the
// caller's read and this write cancels the whole promotion; that case
// returns false with no error.
func (s *DynamoMatchStore) PromoteMutual(ctx context.Context, actorID, targetID string) (bool, error) {
	now := time.Now().UTC().Format(time.RFC3339)
	err := s.Dynamo.TransactWriteItems(ctx, []types.TransactWriteItem{
		{Update: mutualUpdate(actorID, targetID, now)},
		{Update: mutualUpdate(targetID, actorID, now)},
	})
	if errors.Is(err, ErrConditionFailed) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func mutualUpdate(actorID, targetID, now string) *types.Update {
	table := models.MatchEdgesTable
	update := "SET #s = :mutual, updatedAt = :now"
	// Re-promoting an already mutual row is allowed so two concurrent
	// reciprocal likes both succeed.
	condition := "#s IN (:matched, :mutual)"
	return &types.Update{
		TableName:           &table,
		Key:                 matchEdgeKey(actorID, targetID),
		UpdateExpression:    &update,
		ConditionExpression: &condition,
		ExpressionAttributeNames: map[string]string{
			"#s": "status",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":mutual":  &types.AttributeValueMemberS{Value: models.MatchStatusMutual},
			":matched": &types.AttributeValueMemberS{Value: models.MatchStatusMatched},
			":now":     &types.AttributeValueMemberS{Value: now},
		},
	}
}

// DemoteMutual turns the actor's row into a reject and the reverse row back
// into a plain like, atomically, so mutual_match never exists one-sided.
func (s *DynamoMatchStore) DemoteMutual(ctx context.Context, actorID, targetID string) (bool, error) {
	now := time.Now().UTC().Format(time.RFC3339)
	table := models.MatchEdgesTable
	update := "SET #s = :next, updatedAt = :now"
	condition := "#s = :mutual"

	item := func(a, t, next string) *types.Update {
		return &types.Update{
			TableName:           &table,
			Key:                 matchEdgeKey(a, t),
			UpdateExpression:    &update,
			ConditionExpression: &condition,
			ExpressionAttributeNames: map[string]string{
				"#s": "status",
			},
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":next":   &types.AttributeValueMemberS{Value: next},
				":mutual": &types.AttributeValueMemberS{Value: models.MatchStatusMutual},
				":now":    &types.AttributeValueMemberS{Value: now},
			},
		}
	}

	err := s.Dynamo.TransactWriteItems(ctx, []types.TransactWriteItem{
		{Update: item(actorID, targetID, models.MatchStatusRejected)},
		{Update: item(targetID, actorID, models.MatchStatusMatched)},
	})
	if errors.Is(err, ErrConditionFailed) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (s *DynamoMatchStore) ListEdgesFrom(ctx context.Context, actorID string) ([]models.MatchEdge, error) {
	items, err := s.Dynamo.QueryItems(ctx, models.MatchEdgesTable,
		"actorId = :actor",
		map[string]types.AttributeValue{
			":actor": &types.AttributeValueMemberS{Value: actorID},
		}, nil, 0)
	if err != nil {
		return nil, err
	}
	var edges []models.MatchEdge
	if err := attributevalue.UnmarshalListOfMaps(items, &edges); err != nil {
		return nil, err
	}
	return edges, nil
}
