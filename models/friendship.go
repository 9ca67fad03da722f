package models

// Friend edge statuses
const (
	FriendStatusPending  = "pending"
	FriendStatusAccepted = "accepted"
)

// Friendship response actions
const (
	FriendActionAccept  = "accept"
	FriendActionDecline = "decline"
)

// FriendEdge is a friendship request from requester to target. Declining
// deletes the row, so only pending and accepted ever exist. "Are A and B
// friends" must check both orientations.
type FriendEdge struct {
	RequesterID string `dynamodbav:"requesterId" json:"requesterId"` // Partition Key
	TargetID    string `dynamodbav:"targetId" json:"targetId"`       // Sort Key
	Status      string `dynamodbav:"status" json:"status"`
	CreatedAt   string `dynamodbav:"createdAt" json:"createdAt"`
}

// FriendEdgesTable is the DynamoDB table name for friend edges
const FriendEdgesTable = "FriendEdges"

// FriendTargetIndex is the GSI keyed by targetId
const FriendTargetIndex = "targetId-index"
