package services

import (
	"context"
	"time"

	"github.com/claytonnetvision/wodpulse-back/models"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// PerformanceLedger reads the external per-session metrics store. The engine
// never writes it.
type PerformanceLedger interface {
	// SumMetric aggregates one participant's sessions over [start, end].
	SumMetric(ctx context.Context, participantID string, metric models.LeaderboardMetric, start, end time.Time) (float64, error)
	// ListBoxRange returns a box's sessions within [start, end); the
	// half-open end keeps week windows from double counting a boundary
	// session.
	ListBoxRange(ctx context.Context, boxID string, start, end time.Time) ([]models.PerformanceRecord, error)
}

// DynamoPerformanceLedger is the DynamoDB-backed read model of the ledger.
type DynamoPerformanceLedger struct {
	Dynamo *DynamoService
}

func (l *DynamoPerformanceLedger) SumMetric(ctx context.Context, participantID string, metric models.LeaderboardMetric, start, end time.Time) (float64, error) {
	items, err := l.Dynamo.QueryItems(ctx, models.PerformanceSessionsTable,
		"participantId = :id AND sessionStartTime BETWEEN :start AND :end",
		map[string]types.AttributeValue{
			":id":    &types.AttributeValueMemberS{Value: participantID},
			":start": &types.AttributeValueMemberS{Value: start.UTC().Format(time.RFC3339)},
			":end":   &types.AttributeValueMemberS{Value: end.UTC().Format(time.RFC3339)},
		}, nil, 0)
	if err != nil {
		return 0, err
	}

	var records []models.PerformanceRecord
	if err := attributevalue.UnmarshalListOfMaps(items, &records); err != nil {
		return 0, err
	}

	total := 0.0
	for _, record := range records {
		value := metric.Value(record)
		if metric.Aggregate == models.AggregateMax {
			if value > total {
				total = value
			}
		} else {
			total += value
		}
	}
	return total, nil
}

func (l *DynamoPerformanceLedger) ListBoxRange(ctx context.Context, boxID string, start, end time.Time) ([]models.PerformanceRecord, error) {
	endStr := end.UTC().Format(time.RFC3339)
	items, err := l.Dynamo.QueryItemsWithIndex(ctx, models.PerformanceSessionsTable, models.PerformanceBoxIndex,
		"boxId = :box AND sessionStartTime BETWEEN :start AND :end",
		map[string]types.AttributeValue{
			":box":   &types.AttributeValueMemberS{Value: boxID},
			":start": &types.AttributeValueMemberS{Value: start.UTC().Format(time.RFC3339)},
			":end":   &types.AttributeValueMemberS{Value: endStr},
		}, nil, 0)
	if err != nil {
		return nil, err
	}

	var records []models.PerformanceRecord
	if err := attributevalue.UnmarshalListOfMaps(items, &records); err != nil {
		return nil, err
	}

	// The key condition is inclusive on both ends; drop the exact end
	// boundary to keep the window half-open.
	filtered := records[:0]
	for _, record := range records {
		if record.SessionStartTime < endStr {
			filtered = append(filtered, record)
		}
	}
	return filtered, nil
}
