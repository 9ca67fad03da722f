package routes

import (
	"github.com/claytonnetvision/wodpulse-back/controllers"
	"github.com/claytonnetvision/wodpulse-back/services"

	"github.com/gorilla/mux"
)

// RegisterChallengeRoutes sets up routes for challenge operations under /api/challenges
func RegisterChallengeRoutes(r *mux.Router, challengeService *services.ChallengeService) {
	controller := controllers.NewChallengeController(challengeService)

	challengeRouter := r.PathPrefix("/challenges").Subrouter()
	challengeRouter.HandleFunc("", controller.Create).Methods("POST")
	challengeRouter.HandleFunc("", controller.GetMine).Methods("GET")
	challengeRouter.HandleFunc("/invites", controller.GetInvites).Methods("GET")
	challengeRouter.HandleFunc("/{challengeId}", controller.Get).Methods("GET")
	challengeRouter.HandleFunc("/{challengeId}", controller.Delete).Methods("DELETE")
	challengeRouter.HandleFunc("/{challengeId}/respond", controller.Respond).Methods("POST")
	challengeRouter.HandleFunc("/{challengeId}/participants", controller.AddParticipants).Methods("POST")
	challengeRouter.HandleFunc("/{challengeId}/results", controller.SubmitResult).Methods("POST")
	challengeRouter.HandleFunc("/{challengeId}/results/compute", controller.ComputeResult).Methods("POST")
	challengeRouter.HandleFunc("/{challengeId}/ranking", controller.GetRanking).Methods("GET")
}
