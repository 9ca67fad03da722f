package models

// ChallengeSummary is a challenge joined with the caller's own participant
// status, as listed on the "my challenges" screen.
type ChallengeSummary struct {
	Challenge
	MyStatus string `json:"myStatus"`
}

// ChallengeInvite is a pending invitation shown as a notification.
type ChallengeInvite struct {
	ChallengeID string `json:"challengeId"`
	Title       string `json:"title"`
	Type        string `json:"type"`
	CreatorID   string `json:"creatorId"`
	CreatorName string `json:"creatorName"`
}

// ChallengeDetail is a challenge with its participant rows.
type ChallengeDetail struct {
	Challenge
	Participants []ChallengeParticipant `json:"participants"`
}

// ChallengeRanking is the computed standing of a challenge.
type ChallengeRanking struct {
	Challenge Challenge      `json:"challenge"`
	Ranking   []RankedResult `json:"ranking"`
}
