package routes

import (
	"github.com/claytonnetvision/wodpulse-back/controllers"
	"github.com/claytonnetvision/wodpulse-back/services"

	"github.com/gorilla/mux"
)

// RegisterLeaderboardRoutes sets up routes for the box leaderboards under /api/leaderboard
func RegisterLeaderboardRoutes(r *mux.Router, leaderboardService *services.LeaderboardService) {
	controller := controllers.NewLeaderboardController(leaderboardService)

	leaderboardRouter := r.PathPrefix("/leaderboard").Subrouter()
	leaderboardRouter.HandleFunc("/weekly", controller.GetWeekly).Methods("GET")
	leaderboardRouter.HandleFunc("/top-calories", controller.GetTopCalories).Methods("GET")
}
