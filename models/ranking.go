package models

// RankedResult is one participant's row in a challenge ranking. HasResult is
// false when the participant accepted but never recorded a score; such rows
// always rank last.
type RankedResult struct {
	ParticipantID string  `json:"participantId"`
	Name          string  `json:"name"`
	PhotoKey      string  `json:"photoKey,omitempty"`
	ResultValue   float64 `json:"resultValue"`
	HasResult     bool    `json:"hasResult"`
	RecordedAt    string  `json:"recordedAt,omitempty"`
	Rank          int     `json:"rank"`
}

// LeaderboardEntry is one participant's aggregate in the weekly leaderboard.
type LeaderboardEntry struct {
	ParticipantID string  `json:"participantId"`
	Name          string  `json:"name"`
	Gender        string  `json:"gender,omitempty"`
	Total         float64 `json:"total"`
	Rank          int     `json:"rank"`
}

// Leaderboard is a computed weekly leaderboard with its window echoed back
// so past weeks are reproducible.
type Leaderboard struct {
	WeekStart string             `json:"weekStart"`
	WeekEnd   string             `json:"weekEnd"`
	Metric    string             `json:"metric"`
	Entries   []LeaderboardEntry `json:"entries"`
}
