package models

// PerformanceRecord is one per-session, per-participant row of the external
// performance ledger. The ingestion endpoint writes these; this engine only
// ever reads them.
type PerformanceRecord struct {
	ParticipantID    string  `dynamodbav:"participantId" json:"participantId"`         // Partition Key
	SessionStartTime string  `dynamodbav:"sessionStartTime" json:"sessionStartTime"`   // Sort Key, RFC3339
	SessionID        string  `dynamodbav:"sessionId" json:"sessionId"`
	BoxID            string  `dynamodbav:"boxId" json:"boxId"`
	Calories         float64 `dynamodbav:"calories" json:"calories"`
	QueimaPoints     float64 `dynamodbav:"queimaPoints" json:"queimaPoints"`
	VO2Seconds       float64 `dynamodbav:"vo2Seconds" json:"vo2Seconds"`
	MaxHeartRate     float64 `dynamodbav:"maxHeartRate" json:"maxHeartRate"`
	TRIMP            float64 `dynamodbav:"trimp" json:"trimp"`
}

// PerformanceSessionsTable is the DynamoDB table name for the ledger
const PerformanceSessionsTable = "PerformanceSessions"

// PerformanceBoxIndex is the GSI keyed by boxId with sessionStartTime as the
// range key, used for box-wide leaderboard windows
const PerformanceBoxIndex = "boxId-index"

// MetricAggregation says how a leaderboard metric combines across sessions.
type MetricAggregation int

const (
	AggregateSum MetricAggregation = iota
	AggregateMax
)

// LeaderboardMetric is a caller-selectable weekly leaderboard metric.
type LeaderboardMetric struct {
	Name      string
	Aggregate MetricAggregation
	Value     func(PerformanceRecord) float64
}

var leaderboardMetrics = map[string]LeaderboardMetric{
	"queima_points": {Name: "queima_points", Aggregate: AggregateSum, Value: func(r PerformanceRecord) float64 { return r.QueimaPoints }},
	"calories":      {Name: "calories", Aggregate: AggregateSum, Value: func(r PerformanceRecord) float64 { return r.Calories }},
	"vo2":           {Name: "vo2", Aggregate: AggregateSum, Value: func(r PerformanceRecord) float64 { return r.VO2Seconds }},
	"maxhr":         {Name: "maxhr", Aggregate: AggregateMax, Value: func(r PerformanceRecord) float64 { return r.MaxHeartRate }},
	"trimp":         {Name: "trimp", Aggregate: AggregateSum, Value: func(r PerformanceRecord) float64 { return r.TRIMP }},
}

// ParseLeaderboardMetric resolves a metric by name; the empty string selects
// the default queima_points metric.
func ParseLeaderboardMetric(name string) (LeaderboardMetric, bool) {
	if name == "" {
		name = "queima_points"
	}
	m, ok := leaderboardMetrics[name]
	return m, ok
}
