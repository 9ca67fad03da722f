package models

// Challenge statuses. There is no stored "completed" status: a challenge is
// considered finished once its end date passes. A declined invitee leaves the
// challenge pending indefinitely; that matches observed product behavior and
// is deliberate.
const (
	ChallengeStatusPending = "pending"
	ChallengeStatusActive  = "active"
)

// Challenge participant statuses
const (
	ParticipantStatusInvited  = "invited"
	ParticipantStatusAccepted = "accepted"
	ParticipantStatusRejected = "rejected"
)

// Challenge response actions
const (
	ChallengeActionAccept  = "accept"
	ChallengeActionDecline = "decline"
)

// Challenge is a timed multi-party competition. The creator owns it; it
// activates once every participant row is accepted.
type Challenge struct {
	ChallengeID string `dynamodbav:"challengeId" json:"challengeId"` // Partition Key
	BoxID       string `dynamodbav:"boxId" json:"boxId"`
	CreatorID   string `dynamodbav:"creatorId" json:"creatorId"`
	Title       string `dynamodbav:"title" json:"title"`
	Type        string `dynamodbav:"type" json:"type"`
	StartDate   string `dynamodbav:"startDate" json:"startDate"`
	EndDate     string `dynamodbav:"endDate" json:"endDate"`
	Status      string `dynamodbav:"status" json:"status"`
	CreatedAt   string `dynamodbav:"createdAt" json:"createdAt"`
}

// ChallengeParticipant tracks one member's response to a challenge. The
// creator's row is inserted already accepted.
type ChallengeParticipant struct {
	ChallengeID   string `dynamodbav:"challengeId" json:"challengeId"`     // Partition Key
	ParticipantID string `dynamodbav:"participantId" json:"participantId"` // Sort Key
	Status        string `dynamodbav:"status" json:"status"`
	RespondedAt   string `dynamodbav:"respondedAt,omitempty" json:"respondedAt,omitempty"`
}

// ChallengeResult is one participant's recorded score. Upserted, later
// submissions overwrite.
type ChallengeResult struct {
	ChallengeID   string  `dynamodbav:"challengeId" json:"challengeId"`     // Partition Key
	ParticipantID string  `dynamodbav:"participantId" json:"participantId"` // Sort Key
	ResultValue   float64 `dynamodbav:"resultValue" json:"resultValue"`
	RecordedAt    string  `dynamodbav:"recordedAt" json:"recordedAt"`
}

// DynamoDB table names for the challenge engine
const (
	ChallengesTable            = "Challenges"
	ChallengeParticipantsTable = "ChallengeParticipants"
	ChallengeResultsTable      = "ChallengeResults"
)

// ParticipantIndex is the GSI on ChallengeParticipants keyed by participantId
const ParticipantIndex = "participantId-index"
