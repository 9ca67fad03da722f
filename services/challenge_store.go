package services

import (
	"context"
	"errors"

	"github.com/claytonnetvision/wodpulse-back/models"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// ChallengeStore persists challenges, participant rows and results.
// CreateWithParticipants is all-or-nothing; Activate and AddParticipant are
// conditional single-row writes.
type ChallengeStore interface {
	CreateWithParticipants(ctx context.Context, challenge models.Challenge, participants []models.ChallengeParticipant, inviteeIDs []string) error
	Get(ctx context.Context, challengeID string) (*models.Challenge, error)
	ListParticipants(ctx context.Context, challengeID string) ([]models.ChallengeParticipant, error)
	GetParticipant(ctx context.Context, challengeID, participantID string) (*models.ChallengeParticipant, error)
	SetParticipantStatus(ctx context.Context, challengeID, participantID, status, respondedAt string) error
	AddParticipant(ctx context.Context, participant models.ChallengeParticipant) (bool, error)
	Activate(ctx context.Context, challengeID string) (bool, error)
	DeleteCascade(ctx context.Context, challengeID string) error
	PutResult(ctx context.Context, result models.ChallengeResult) error
	ListResults(ctx context.Context, challengeID string) ([]models.ChallengeResult, error)
	ListByParticipant(ctx context.Context, participantID string) ([]models.ChallengeParticipant, error)
}

// DynamoChallengeStore is the DynamoDB-backed ChallengeStore.
type DynamoChallengeStore struct {
	Dynamo *DynamoService
}

func challengeKey(challengeID string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"challengeId": &types.AttributeValueMemberS{Value: challengeID},
	}
}

func participantKey(challengeID, participantID string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"challengeId":   &types.AttributeValueMemberS{Value: challengeID},
		"participantId": &types.AttributeValueMemberS{Value: participantID},
	}
}

// CreateWithParticipants writes the challenge row and every participant row
// in one transaction, with an existence check per invited member against the
// roster. Any unknown invitee cancels the whole transaction, surfacing
// ErrConditionFailed with nothing persisted.
func (s *DynamoChallengeStore) CreateWithParticipants(ctx context.Context, challenge models.Challenge, participants []models.ChallengeParticipant, inviteeIDs []string) error {
	challengeTable := models.ChallengesTable
	participantTable := models.ChallengeParticipantsTable
	memberTable := models.MembersTable

	challengeItem, err := attributevalue.MarshalMap(challenge)
	if err != nil {
		return err
	}

	freshChallenge := "attribute_not_exists(challengeId)"
	items := []types.TransactWriteItem{
		{Put: &types.Put{
			TableName:           &challengeTable,
			Item:                challengeItem,
			ConditionExpression: &freshChallenge,
		}},
	}

	for _, participant := range participants {
		participantItem, err := attributevalue.MarshalMap(participant)
		if err != nil {
			return err
		}
		items = append(items, types.TransactWriteItem{Put: &types.Put{
			TableName: &participantTable,
			Item:      participantItem,
		}})
	}

	memberExists := "attribute_exists(memberId) AND boxId = :box"
	for _, inviteeID := range inviteeIDs {
		items = append(items, types.TransactWriteItem{ConditionCheck: &types.ConditionCheck{
			TableName: &memberTable,
			Key: map[string]types.AttributeValue{
				"memberId": &types.AttributeValueMemberS{Value: inviteeID},
			},
			ConditionExpression: &memberExists,
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":box": &types.AttributeValueMemberS{Value: challenge.BoxID},
			},
		}})
	}

	return s.Dynamo.TransactWriteItems(ctx, items)
}

// Get returns the challenge, or nil when no such challenge exists.
func (s *DynamoChallengeStore) Get(ctx context.Context, challengeID string) (*models.Challenge, error) {
	item, err := s.Dynamo.GetItem(ctx, models.ChallengesTable, challengeKey(challengeID))
	if errors.Is(err, ErrItemNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var challenge models.Challenge
	if err := attributevalue.UnmarshalMap(item, &challenge); err != nil {
		return nil, err
	}
	return &challenge, nil
}

func (s *DynamoChallengeStore) ListParticipants(ctx context.Context, challengeID string) ([]models.ChallengeParticipant, error) {
	items, err := s.Dynamo.QueryItems(ctx, models.ChallengeParticipantsTable,
		"challengeId = :id",
		map[string]types.AttributeValue{
			":id": &types.AttributeValueMemberS{Value: challengeID},
		}, nil, 0)
	if err != nil {
		return nil, err
	}
	var participants []models.ChallengeParticipant
	if err := attributevalue.UnmarshalListOfMaps(items, &participants); err != nil {
		return nil, err
	}
	return participants, nil
}

func (s *DynamoChallengeStore) GetParticipant(ctx context.Context, challengeID, participantID string) (*models.ChallengeParticipant, error) {
	item, err := s.Dynamo.GetItem(ctx, models.ChallengeParticipantsTable, participantKey(challengeID, participantID))
	if errors.Is(err, ErrItemNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var participant models.ChallengeParticipant
	if err := attributevalue.UnmarshalMap(item, &participant); err != nil {
		return nil, err
	}
	return &participant, nil
}

func (s *DynamoChallengeStore) SetParticipantStatus(ctx context.Context, challengeID, participantID, status, respondedAt string) error {
	return s.Dynamo.UpdateItem(ctx, models.ChallengeParticipantsTable,
		participantKey(challengeID, participantID),
		"SET #s = :status, respondedAt = :at",
		"attribute_exists(challengeId)",
		map[string]string{"#s": "status"},
		map[string]types.AttributeValue{
			":status": &types.AttributeValueMemberS{Value: status},
			":at":     &types.AttributeValueMemberS{Value: respondedAt},
		})
}

// AddParticipant inserts an invited row unless one already exists. Returns
// false for the duplicate case so re-inviting stays a silent no-op.
func (s *DynamoChallengeStore) AddParticipant(ctx context.Context, participant models.ChallengeParticipant) (bool, error) {
	err := s.Dynamo.PutItemConditional(ctx, models.ChallengeParticipantsTable, participant,
		"attribute_not_exists(challengeId)", nil, nil)
	if errors.Is(err, ErrConditionFailed) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Activate flips pending to active. Losing the condition means another
// acceptance already fired the transition, which is fine.
func (s *DynamoChallengeStore) Activate(ctx context.Context, challengeID string) (bool, error) {
	err := s.Dynamo.UpdateItem(ctx, models.ChallengesTable,
		challengeKey(challengeID),
		"SET #s = :active",
		"#s = :pending",
		map[string]string{"#s": "status"},
		map[string]types.AttributeValue{
			":active":  &types.AttributeValueMemberS{Value: models.ChallengeStatusActive},
			":pending": &types.AttributeValueMemberS{Value: models.ChallengeStatusPending},
		})
	if errors.Is(err, ErrConditionFailed) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// DeleteCascade removes the challenge with all its participant and result
// rows.
func (s *DynamoChallengeStore) DeleteCascade(ctx context.Context, challengeID string) error {
	participants, err := s.ListParticipants(ctx, challengeID)
	if err != nil {
		return err
	}
	results, err := s.ListResults(ctx, challengeID)
	if err != nil {
		return err
	}

	var participantDeletes []types.WriteRequest
	for _, p := range participants {
		participantDeletes = append(participantDeletes, types.WriteRequest{
			DeleteRequest: &types.DeleteRequest{Key: participantKey(challengeID, p.ParticipantID)},
		})
	}
	if err := s.Dynamo.BatchWriteItems(ctx, models.ChallengeParticipantsTable, participantDeletes); err != nil {
		return err
	}

	var resultDeletes []types.WriteRequest
	for _, r := range results {
		resultDeletes = append(resultDeletes, types.WriteRequest{
			DeleteRequest: &types.DeleteRequest{Key: participantKey(challengeID, r.ParticipantID)},
		})
	}
	if err := s.Dynamo.BatchWriteItems(ctx, models.ChallengeResultsTable, resultDeletes); err != nil {
		return err
	}

	return s.Dynamo.DeleteItem(ctx, models.ChallengesTable, challengeKey(challengeID))
}

func (s *DynamoChallengeStore) PutResult(ctx context.Context, result models.ChallengeResult) error {
	return s.Dynamo.PutItem(ctx, models.ChallengeResultsTable, result)
}

func (s *DynamoChallengeStore) ListResults(ctx context.Context, challengeID string) ([]models.ChallengeResult, error) {
	items, err := s.Dynamo.QueryItems(ctx, models.ChallengeResultsTable,
		"challengeId = :id",
		map[string]types.AttributeValue{
			":id": &types.AttributeValueMemberS{Value: challengeID},
		}, nil, 0)
	if err != nil {
		return nil, err
	}
	var results []models.ChallengeResult
	if err := attributevalue.UnmarshalListOfMaps(items, &results); err != nil {
		return nil, err
	}
	return results, nil
}

func (s *DynamoChallengeStore) ListByParticipant(ctx context.Context, participantID string) ([]models.ChallengeParticipant, error) {
	items, err := s.Dynamo.QueryItemsWithIndex(ctx, models.ChallengeParticipantsTable, models.ParticipantIndex,
		"participantId = :id",
		map[string]types.AttributeValue{
			":id": &types.AttributeValueMemberS{Value: participantID},
		}, nil, 0)
	if err != nil {
		return nil, err
	}
	var participants []models.ChallengeParticipant
	if err := attributevalue.UnmarshalListOfMaps(items, &participants); err != nil {
		return nil, err
	}
	return participants, nil
}
