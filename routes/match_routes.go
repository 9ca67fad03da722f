package routes

import (
	"github.com/claytonnetvision/wodpulse-back/controllers"
	"github.com/claytonnetvision/wodpulse-back/services"

	"github.com/gorilla/mux"
)

// RegisterMatchRoutes sets up routes for match operations under /api/matches
func RegisterMatchRoutes(r *mux.Router, matchService *services.MatchService) {
	controller := controllers.NewMatchController(matchService)

	matchRouter := r.PathPrefix("/matches").Subrouter()
	matchRouter.HandleFunc("/actions", controller.RecordAction).Methods("POST")
	matchRouter.HandleFunc("/candidates", controller.GetCandidates).Methods("GET")
	matchRouter.HandleFunc("/mutual", controller.GetMutualMatches).Methods("GET")
}
