package services

import (
	"context"
	"errors"

	"github.com/claytonnetvision/wodpulse-back/models"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// MemberStore reads the member roster. The roster itself is owned by an
// out-of-scope system; this engine never writes members.
type MemberStore interface {
	Get(ctx context.Context, memberID string) (*models.Member, error)
	ListAll(ctx context.Context) ([]models.Member, error)
	ListByBox(ctx context.Context, boxID string) ([]models.Member, error)
}

// DynamoMemberStore is the DynamoDB-backed MemberStore.
type DynamoMemberStore struct {
	Dynamo *DynamoService
}

// Get returns the member, or nil when no such member exists.
func (s *DynamoMemberStore) Get(ctx context.Context, memberID string) (*models.Member, error) {
	item, err := s.Dynamo.GetItem(ctx, models.MembersTable, map[string]types.AttributeValue{
		"memberId": &types.AttributeValueMemberS{Value: memberID},
	})
	if errors.Is(err, ErrItemNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var member models.Member
	if err := attributevalue.UnmarshalMap(item, &member); err != nil {
		return nil, err
	}
	return &member, nil
}

// ListAll scans every member. Candidate discovery is deliberately not
// box-scoped; it is the one tenant-wide read in the engine.
func (s *DynamoMemberStore) ListAll(ctx context.Context) ([]models.Member, error) {
	var members []models.Member
	if err := s.Dynamo.ScanWithFilter(ctx, models.MembersTable, nil, &members); err != nil {
		return nil, err
	}
	return members, nil
}

func (s *DynamoMemberStore) ListByBox(ctx context.Context, boxID string) ([]models.Member, error) {
	items, err := s.Dynamo.QueryItemsWithIndex(ctx, models.MembersTable, models.MemberBoxIndex,
		"boxId = :box",
		map[string]types.AttributeValue{
			":box": &types.AttributeValueMemberS{Value: boxID},
		}, nil, 0)
	if err != nil {
		return nil, err
	}
	var members []models.Member
	if err := attributevalue.UnmarshalListOfMaps(items, &members); err != nil {
		return nil, err
	}
	return members, nil
}
