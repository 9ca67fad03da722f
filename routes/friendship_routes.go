package routes

import (
	"github.com/claytonnetvision/wodpulse-back/controllers"
	"github.com/claytonnetvision/wodpulse-back/services"

	"github.com/gorilla/mux"
)

// RegisterFriendshipRoutes sets up routes for friendship operations under /api/friends
func RegisterFriendshipRoutes(r *mux.Router, friendshipService *services.FriendshipService) {
	controller := controllers.NewFriendshipController(friendshipService)

	friendRouter := r.PathPrefix("/friends").Subrouter()
	friendRouter.HandleFunc("/requests", controller.Request).Methods("POST")
	friendRouter.HandleFunc("/requests/respond", controller.Respond).Methods("POST")
	friendRouter.HandleFunc("/requests", controller.GetPendingRequests).Methods("GET")
	friendRouter.HandleFunc("", controller.GetFriends).Methods("GET")
}
