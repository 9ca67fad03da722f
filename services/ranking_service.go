package services

import (
	"context"
	"sort"
	"time"

	"github.com/claytonnetvision/wodpulse-back/apperrors"
	"github.com/claytonnetvision/wodpulse-back/models"
	"github.com/claytonnetvision/wodpulse-back/utils"
)

// RankResults orders challenge results by the challenge type's direction.
// Rows without a result sort last. Ties break by recordedAt ascending
// (earlier submission wins), then participantId, so the order is total and
// stable across calls.
func RankResults(results []models.RankedResult, challengeType models.ChallengeType) []models.RankedResult {
	ranked := make([]models.RankedResult, len(results))
	copy(ranked, results)

	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		if a.HasResult != b.HasResult {
			return a.HasResult
		}
		if a.HasResult && a.ResultValue != b.ResultValue {
			if challengeType.Direction == models.LowerIsBetter {
				return a.ResultValue < b.ResultValue
			}
			return a.ResultValue > b.ResultValue
		}
		if a.RecordedAt != b.RecordedAt {
			return a.RecordedAt < b.RecordedAt
		}
		return a.ParticipantID < b.ParticipantID
	})

	for i := range ranked {
		ranked[i].Rank = i + 1
	}
	return ranked
}

// LeaderboardService computes box-wide rankings from the performance ledger:
// the weekly leaderboard and the rolling top-calories board.
type LeaderboardService struct {
	Ledger   PerformanceLedger
	Members  MemberStore
	Location *time.Location
	Now      func() time.Time // nil means time.Now
}

func (ls *LeaderboardService) now() time.Time {
	if ls.Now != nil {
		return ls.Now()
	}
	return time.Now()
}

// LeaderboardQuery selects the week, metric and filters for a leaderboard
// request. A nil WeekStart means the ISO week containing now.
type LeaderboardQuery struct {
	Metric    string
	Gender    string
	Limit     int
	WeekStart *time.Time
}

// DefaultLeaderboardLimit caps the leaderboard when the caller asks for
// nothing specific.
const DefaultLeaderboardLimit = 10

// WeeklyLeaderboard aggregates the caller's box over one ISO week: Monday
// 00:00 inclusive through the next Monday exclusive in the box's reference
// time zone, or an explicitly supplied past week.
func (ls *LeaderboardService) WeeklyLeaderboard(ctx context.Context, caller models.Identity, query LeaderboardQuery) (*models.Leaderboard, error) {
	metric, ok := models.ParseLeaderboardMetric(query.Metric)
	if !ok {
		return nil, apperrors.InvalidArgument("unknown leaderboard metric")
	}

	limit := query.Limit
	if limit <= 0 {
		limit = DefaultLeaderboardLimit
	}

	loc := ls.Location
	if loc == nil {
		loc = time.UTC
	}

	var start, end time.Time
	if query.WeekStart != nil {
		start, end = utils.WeekWindowFrom(*query.WeekStart, loc)
	} else {
		start, end = utils.WeekWindow(ls.now(), loc)
	}

	entries, err := ls.rankRange(ctx, caller.BoxID, metric, start, end, query.Gender, limit)
	if err != nil {
		return nil, err
	}

	return &models.Leaderboard{
		WeekStart: start.Format(time.RFC3339),
		WeekEnd:   end.Format(time.RFC3339),
		Metric:    metric.Name,
		Entries:   entries,
	}, nil
}

// DefaultTopCaloriesLimit matches the fixed top-5 of the original board.
const DefaultTopCaloriesLimit = 5

// TopCalories ranks the caller's box by calories burned over the last 1, 3 or
// 7 days ending now. Any other day count falls back to 1, same as the
// original board's coercion.
func (ls *LeaderboardService) TopCalories(ctx context.Context, caller models.Identity, days, limit int) ([]models.LeaderboardEntry, error) {
	if days != 3 && days != 7 {
		days = 1
	}
	if limit <= 0 {
		limit = DefaultTopCaloriesLimit
	}

	end := ls.now().UTC()
	start := end.AddDate(0, 0, -days)
	calories, _ := models.ParseLeaderboardMetric("calories")

	return ls.rankRange(ctx, caller.BoxID, calories, start, end, "", limit)
}

// rankRange aggregates a box's ledger rows over [start, end) per the metric,
// joins the roster, and returns the ranked top-N.
func (ls *LeaderboardService) rankRange(ctx context.Context, boxID string, metric models.LeaderboardMetric, start, end time.Time, gender string, limit int) ([]models.LeaderboardEntry, error) {
	records, err := ls.Ledger.ListBoxRange(ctx, boxID, start, end)
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	totals := map[string]float64{}
	for _, record := range records {
		value := metric.Value(record)
		if metric.Aggregate == models.AggregateMax {
			if value > totals[record.ParticipantID] {
				totals[record.ParticipantID] = value
			}
		} else {
			totals[record.ParticipantID] += value
		}
	}

	members, err := ls.Members.ListByBox(ctx, boxID)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	profiles := map[string]models.Member{}
	for _, member := range members {
		profiles[member.MemberID] = member
	}

	entries := []models.LeaderboardEntry{}
	for participantID, total := range totals {
		profile, known := profiles[participantID]
		if !known {
			continue // not in this box's roster anymore
		}
		if gender != "" && profile.Gender != gender {
			continue
		}
		entries = append(entries, models.LeaderboardEntry{
			ParticipantID: participantID,
			Name:          profile.Name,
			Gender:        profile.Gender,
			Total:         total,
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Total != entries[j].Total {
			return entries[i].Total > entries[j].Total
		}
		return entries[i].ParticipantID < entries[j].ParticipantID
	})
	if len(entries) > limit {
		entries = entries[:limit]
	}
	for i := range entries {
		entries[i].Rank = i + 1
	}
	return entries, nil
}
