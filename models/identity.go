package models

// Identity is the caller identity resolved by the auth middleware. The
// engine trusts it as given and never reads identifiers from request bodies.
type Identity struct {
	BoxID         string `json:"boxId"`
	ParticipantID string `json:"participantId"`
}
