package models

// Member is a box member as owned by the roster management system.
// This engine only reads members; it never creates or deletes them.
type Member struct {
	MemberID  string `dynamodbav:"memberId" json:"memberId"`
	BoxID     string `dynamodbav:"boxId" json:"boxId"`
	Name      string `dynamodbav:"name" json:"name"`
	Gender    string `dynamodbav:"gender,omitempty" json:"gender,omitempty"`
	Age       int    `dynamodbav:"age,omitempty" json:"age,omitempty"`
	PhotoKey  string `dynamodbav:"photoKey,omitempty" json:"photoKey,omitempty"`
	CreatedAt string `dynamodbav:"createdAt" json:"createdAt"`
}

// MembersTable is the DynamoDB table name for members
const MembersTable = "Members"

// MemberBoxIndex is the GSI keyed by boxId
const MemberBoxIndex = "boxId-index"
