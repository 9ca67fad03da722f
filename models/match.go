package models

// Match edge statuses
const (
	MatchStatusMatched  = "matched"
	MatchStatusRejected = "rejected"
	MatchStatusMutual   = "mutual_match"
)

// MatchEdge is one member's recorded interest in another. At most one row
// exists per ordered (actorId, targetId) pair. A mutual_match is stored as
// two rows, one per direction, written together so both sides always agree.
type MatchEdge struct {
	ActorID   string `dynamodbav:"actorId" json:"actorId"`   // Partition Key
	TargetID  string `dynamodbav:"targetId" json:"targetId"` // Sort Key
	Status    string `dynamodbav:"status" json:"status"`
	UpdatedAt string `dynamodbav:"updatedAt" json:"updatedAt"`
}

// MatchEdgesTable is the DynamoDB table name for match edges
const MatchEdgesTable = "MatchEdges"

// MatchActions accepted by the record-action endpoint
const (
	MatchActionLike   = "like"
	MatchActionReject = "reject"
)
