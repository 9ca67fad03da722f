package routes

import (
	"github.com/claytonnetvision/wodpulse-back/controllers"
	"github.com/claytonnetvision/wodpulse-back/services"

	"github.com/gorilla/mux"
)

// RegisterMemberRoutes sets up routes for member profiles under /api/members
func RegisterMemberRoutes(r *mux.Router, members services.MemberStore) {
	controller := controllers.NewMemberController(members)

	memberRouter := r.PathPrefix("/members").Subrouter()
	memberRouter.HandleFunc("", controller.GetBoxMembers).Methods("GET")
	memberRouter.HandleFunc("/me", controller.GetMe).Methods("GET")
	memberRouter.HandleFunc("/{memberId}", controller.GetMember).Methods("GET")
}
