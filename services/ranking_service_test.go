package services

import (
	"context"
	"testing"
	"time"

	"github.com/claytonnetvision/wodpulse-back/apperrors"
	"github.com/claytonnetvision/wodpulse-back/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustType(t *testing.T, name string) models.ChallengeType {
	t.Helper()
	ct, ok := models.ParseChallengeType(name)
	require.True(t, ok)
	return ct
}

func TestRankResultsHigherIsBetter(t *testing.T) {
	ranked := RankResults([]models.RankedResult{
		{ParticipantID: "p1", ResultValue: 10, HasResult: true, RecordedAt: "2024-01-02T00:00:00Z"},
		{ParticipantID: "p2", ResultValue: 30, HasResult: true, RecordedAt: "2024-01-02T00:00:00Z"},
		{ParticipantID: "p3", ResultValue: 20, HasResult: true, RecordedAt: "2024-01-02T00:00:00Z"},
	}, mustType(t, "max_reps"))

	assert.Equal(t, "p2", ranked[0].ParticipantID)
	assert.Equal(t, "p3", ranked[1].ParticipantID)
	assert.Equal(t, "p1", ranked[2].ParticipantID)
	assert.Equal(t, []int{1, 2, 3}, []int{ranked[0].Rank, ranked[1].Rank, ranked[2].Rank})
}

func TestRankResultsLowerIsBetter(t *testing.T) {
	ranked := RankResults([]models.RankedResult{
		{ParticipantID: "p1", ResultValue: 600, HasResult: true},
		{ParticipantID: "p2", ResultValue: 540, HasResult: true},
	}, mustType(t, "for_time"))

	assert.Equal(t, "p2", ranked[0].ParticipantID)
	assert.Equal(t, "p1", ranked[1].ParticipantID)
}

func TestRankResultsMissingResultsSortLast(t *testing.T) {
	ranked := RankResults([]models.RankedResult{
		{ParticipantID: "p1"},
		{ParticipantID: "p2", ResultValue: 5, HasResult: true},
		{ParticipantID: "p3"},
	}, mustType(t, "max_reps"))

	assert.Equal(t, "p2", ranked[0].ParticipantID)
	assert.False(t, ranked[1].HasResult)
	assert.False(t, ranked[2].HasResult)
	// Among the unranked, participant id keeps the order deterministic.
	assert.Equal(t, "p1", ranked[1].ParticipantID)
	assert.Equal(t, "p3", ranked[2].ParticipantID)
}

func TestRankResultsTieBreaksByEarlierSubmission(t *testing.T) {
	ranked := RankResults([]models.RankedResult{
		{ParticipantID: "p1", ResultValue: 50, HasResult: true, RecordedAt: "2024-01-03T00:00:00Z"},
		{ParticipantID: "p2", ResultValue: 50, HasResult: true, RecordedAt: "2024-01-02T00:00:00Z"},
	}, mustType(t, "max_reps"))

	assert.Equal(t, "p2", ranked[0].ParticipantID)
	assert.Equal(t, "p1", ranked[1].ParticipantID)
}

func newLeaderboardFixture(records []models.PerformanceRecord, members ...models.Member) *LeaderboardService {
	return &LeaderboardService{
		Ledger:   &fakeLedger{records: records},
		Members:  newFakeMemberStore(members...),
		Location: time.UTC,
	}
}

func weekStartOf(t *testing.T, day string) *time.Time {
	t.Helper()
	ws, err := time.Parse("2006-01-02", day)
	require.NoError(t, err)
	return &ws
}

func TestWeeklyLeaderboardSumsAndRanks(t *testing.T) {
	// Week of Monday 2024-01-01 through Sunday 2024-01-07.
	records := []models.PerformanceRecord{
		{ParticipantID: "alice", BoxID: "box-1", SessionStartTime: "2024-01-01T06:00:00Z", QueimaPoints: 40},
		{ParticipantID: "alice", BoxID: "box-1", SessionStartTime: "2024-01-03T06:00:00Z", QueimaPoints: 30},
		{ParticipantID: "bob", BoxID: "box-1", SessionStartTime: "2024-01-04T06:00:00Z", QueimaPoints: 50},
		// Last second of the week counts; midnight Monday does not.
		{ParticipantID: "bob", BoxID: "box-1", SessionStartTime: "2024-01-07T23:59:59Z", QueimaPoints: 5},
		{ParticipantID: "bob", BoxID: "box-1", SessionStartTime: "2024-01-08T00:00:00Z", QueimaPoints: 1000},
		// Another box entirely.
		{ParticipantID: "eve", BoxID: "box-2", SessionStartTime: "2024-01-03T06:00:00Z", QueimaPoints: 900},
	}
	members := []models.Member{
		{MemberID: "alice", BoxID: "box-1", Name: "Alice", Gender: "female"},
		{MemberID: "bob", BoxID: "box-1", Name: "Bob", Gender: "male"},
	}
	service := newLeaderboardFixture(records, members...)

	board, err := service.WeeklyLeaderboard(context.Background(), identity("box-1", "alice"), LeaderboardQuery{
		WeekStart: weekStartOf(t, "2024-01-01"),
	})
	require.NoError(t, err)
	require.Len(t, board.Entries, 2)
	assert.Equal(t, "alice", board.Entries[0].ParticipantID)
	assert.Equal(t, 70.0, board.Entries[0].Total)
	assert.Equal(t, 1, board.Entries[0].Rank)
	assert.Equal(t, "bob", board.Entries[1].ParticipantID)
	assert.Equal(t, 55.0, board.Entries[1].Total)
	assert.Equal(t, "queima_points", board.Metric)
}

func TestWeeklyLeaderboardMaxHeartRateTakesPeak(t *testing.T) {
	records := []models.PerformanceRecord{
		{ParticipantID: "alice", BoxID: "box-1", SessionStartTime: "2024-01-02T06:00:00Z", MaxHeartRate: 160},
		{ParticipantID: "alice", BoxID: "box-1", SessionStartTime: "2024-01-03T06:00:00Z", MaxHeartRate: 185},
	}
	members := []models.Member{{MemberID: "alice", BoxID: "box-1", Name: "Alice"}}
	service := newLeaderboardFixture(records, members...)

	board, err := service.WeeklyLeaderboard(context.Background(), identity("box-1", "alice"), LeaderboardQuery{
		Metric:    "maxhr",
		WeekStart: weekStartOf(t, "2024-01-01"),
	})
	require.NoError(t, err)
	require.Len(t, board.Entries, 1)
	assert.Equal(t, 185.0, board.Entries[0].Total)
}

func TestWeeklyLeaderboardGenderFilter(t *testing.T) {
	records := []models.PerformanceRecord{
		{ParticipantID: "alice", BoxID: "box-1", SessionStartTime: "2024-01-02T06:00:00Z", QueimaPoints: 30},
		{ParticipantID: "bob", BoxID: "box-1", SessionStartTime: "2024-01-02T06:00:00Z", QueimaPoints: 80},
	}
	members := []models.Member{
		{MemberID: "alice", BoxID: "box-1", Name: "Alice", Gender: "female"},
		{MemberID: "bob", BoxID: "box-1", Name: "Bob", Gender: "male"},
	}
	service := newLeaderboardFixture(records, members...)

	board, err := service.WeeklyLeaderboard(context.Background(), identity("box-1", "alice"), LeaderboardQuery{
		Gender:    "female",
		WeekStart: weekStartOf(t, "2024-01-01"),
	})
	require.NoError(t, err)
	require.Len(t, board.Entries, 1)
	assert.Equal(t, "alice", board.Entries[0].ParticipantID)
}

func TestWeeklyLeaderboardLimit(t *testing.T) {
	records := []models.PerformanceRecord{}
	members := []models.Member{}
	for _, id := range []string{"a", "b", "c"} {
		records = append(records, models.PerformanceRecord{
			ParticipantID: id, BoxID: "box-1", SessionStartTime: "2024-01-02T06:00:00Z", QueimaPoints: 10,
		})
		members = append(members, models.Member{MemberID: id, BoxID: "box-1", Name: id})
	}
	service := newLeaderboardFixture(records, members...)

	board, err := service.WeeklyLeaderboard(context.Background(), identity("box-1", "a"), LeaderboardQuery{
		Limit:     2,
		WeekStart: weekStartOf(t, "2024-01-01"),
	})
	require.NoError(t, err)
	assert.Len(t, board.Entries, 2)
}

func TestWeeklyLeaderboardUnknownMetric(t *testing.T) {
	service := newLeaderboardFixture(nil)
	_, err := service.WeeklyLeaderboard(context.Background(), identity("box-1", "alice"), LeaderboardQuery{Metric: "steps"})
	assert.True(t, apperrors.IsCode(err, apperrors.CodeInvalidArgument))
}

func TestTopCaloriesRollingWindow(t *testing.T) {
	now := time.Date(2024, 1, 10, 12, 0, 0, 0, time.UTC)
	records := []models.PerformanceRecord{
		{ParticipantID: "alice", BoxID: "box-1", SessionStartTime: "2024-01-10T06:00:00Z", Calories: 300},
		{ParticipantID: "alice", BoxID: "box-1", SessionStartTime: "2024-01-08T06:00:00Z", Calories: 250},
		{ParticipantID: "bob", BoxID: "box-1", SessionStartTime: "2024-01-10T08:00:00Z", Calories: 400},
		// Outside even the 7-day window.
		{ParticipantID: "bob", BoxID: "box-1", SessionStartTime: "2024-01-01T08:00:00Z", Calories: 999},
		// Another box.
		{ParticipantID: "eve", BoxID: "box-2", SessionStartTime: "2024-01-10T08:00:00Z", Calories: 800},
	}
	members := []models.Member{
		{MemberID: "alice", BoxID: "box-1", Name: "Alice"},
		{MemberID: "bob", BoxID: "box-1", Name: "Bob"},
	}
	service := newLeaderboardFixture(records, members...)
	service.Now = func() time.Time { return now }

	// One day back only today's sessions count.
	entries, err := service.TopCalories(context.Background(), identity("box-1", "alice"), 1, 0)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "bob", entries[0].ParticipantID)
	assert.Equal(t, 400.0, entries[0].Total)
	assert.Equal(t, 1, entries[0].Rank)
	assert.Equal(t, 300.0, entries[1].Total)

	// Three days back picks up the Jan 8 session too.
	entries, err = service.TopCalories(context.Background(), identity("box-1", "alice"), 3, 0)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "alice", entries[0].ParticipantID)
	assert.Equal(t, 550.0, entries[0].Total)
}

func TestTopCaloriesCoercesUnknownDays(t *testing.T) {
	now := time.Date(2024, 1, 10, 12, 0, 0, 0, time.UTC)
	records := []models.PerformanceRecord{
		{ParticipantID: "alice", BoxID: "box-1", SessionStartTime: "2024-01-10T06:00:00Z", Calories: 100},
		{ParticipantID: "alice", BoxID: "box-1", SessionStartTime: "2024-01-08T06:00:00Z", Calories: 200},
	}
	members := []models.Member{{MemberID: "alice", BoxID: "box-1", Name: "Alice"}}
	service := newLeaderboardFixture(records, members...)
	service.Now = func() time.Time { return now }

	// Anything but 3 or 7 falls back to a single day.
	entries, err := service.TopCalories(context.Background(), identity("box-1", "alice"), 30, 0)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, 100.0, entries[0].Total)
}

func TestTopCaloriesCapsAtFive(t *testing.T) {
	now := time.Date(2024, 1, 10, 12, 0, 0, 0, time.UTC)
	records := []models.PerformanceRecord{}
	members := []models.Member{}
	for _, id := range []string{"a", "b", "c", "d", "e", "f", "g"} {
		records = append(records, models.PerformanceRecord{
			ParticipantID: id, BoxID: "box-1", SessionStartTime: "2024-01-10T06:00:00Z", Calories: 100,
		})
		members = append(members, models.Member{MemberID: id, BoxID: "box-1", Name: id})
	}
	service := newLeaderboardFixture(records, members...)
	service.Now = func() time.Time { return now }

	entries, err := service.TopCalories(context.Background(), identity("box-1", "a"), 1, 0)
	require.NoError(t, err)
	assert.Len(t, entries, 5)
}

func TestWeeklyLeaderboardSkipsDepartedMembers(t *testing.T) {
	records := []models.PerformanceRecord{
		{ParticipantID: "ghost", BoxID: "box-1", SessionStartTime: "2024-01-02T06:00:00Z", QueimaPoints: 99},
	}
	service := newLeaderboardFixture(records)

	board, err := service.WeeklyLeaderboard(context.Background(), identity("box-1", "alice"), LeaderboardQuery{
		WeekStart: weekStartOf(t, "2024-01-01"),
	})
	require.NoError(t, err)
	assert.Empty(t, board.Entries)
}
