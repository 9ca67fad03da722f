package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/claytonnetvision/wodpulse-back/apperrors"
	"github.com/claytonnetvision/wodpulse-back/services"
)

// LeaderboardController handles HTTP requests for the weekly leaderboard
type LeaderboardController struct {
	LeaderboardService *services.LeaderboardService
}

// NewLeaderboardController creates a new LeaderboardController instance
func NewLeaderboardController(leaderboardService *services.LeaderboardService) *LeaderboardController {
	return &LeaderboardController{LeaderboardService: leaderboardService}
}

// GetWeekly handles fetching the box leaderboard for one ISO week
func (lc *LeaderboardController) GetWeekly(w http.ResponseWriter, r *http.Request) {
	identity, ok := caller(w, r)
	if !ok {
		return
	}

	params := r.URL.Query()
	query := services.LeaderboardQuery{
		Metric: params.Get("metric"),
		Gender: params.Get("gender"),
	}
	if raw := params.Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			apperrors.WriteHTTP(w, apperrors.InvalidArgument("limit must be an integer"))
			return
		}
		query.Limit = limit
	}
	if raw := params.Get("weekStart"); raw != "" {
		weekStart, err := time.Parse("2006-01-02", raw)
		if err != nil {
			apperrors.WriteHTTP(w, apperrors.InvalidArgument("weekStart must be a YYYY-MM-DD date"))
			return
		}
		query.WeekStart = &weekStart
	}

	leaderboard, err := lc.LeaderboardService.WeeklyLeaderboard(r.Context(), identity, query)
	if err != nil {
		apperrors.WriteHTTP(w, err)
		return
	}
	respondJSON(w, http.StatusOK, leaderboard)
}

// GetTopCalories handles the rolling calorie ranking over the last few days
func (lc *LeaderboardController) GetTopCalories(w http.ResponseWriter, r *http.Request) {
	identity, ok := caller(w, r)
	if !ok {
		return
	}

	params := r.URL.Query()
	days, _ := strconv.Atoi(params.Get("days"))
	limit, _ := strconv.Atoi(params.Get("limit"))

	entries, err := lc.LeaderboardService.TopCalories(r.Context(), identity, days, limit)
	if err != nil {
		apperrors.WriteHTTP(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"entries": entries})
}
