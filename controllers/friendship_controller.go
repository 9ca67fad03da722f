package controllers

import (
	"net/http"

	"github.com/claytonnetvision/wodpulse-back/apperrors"
	"github.com/claytonnetvision/wodpulse-back/services"
)

// FriendshipController handles HTTP requests for friendship actions
type FriendshipController struct {
	FriendshipService *services.FriendshipService
}

// NewFriendshipController creates a new FriendshipController instance
func NewFriendshipController(friendshipService *services.FriendshipService) *FriendshipController {
	return &FriendshipController{FriendshipService: friendshipService}
}

// Request handles sending a friend request
func (fc *FriendshipController) Request(w http.ResponseWriter, r *http.Request) {
	identity, ok := caller(w, r)
	if !ok {
		return
	}

	var body struct {
		TargetID string `json:"targetId"`
	}
	if !decodeBody(w, r, &body) {
		return
	}

	if err := fc.FriendshipService.Request(r.Context(), identity, body.TargetID); err != nil {
		apperrors.WriteHTTP(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "pending"})
}

// Respond handles accepting or declining a friend request
func (fc *FriendshipController) Respond(w http.ResponseWriter, r *http.Request) {
	identity, ok := caller(w, r)
	if !ok {
		return
	}

	var body struct {
		RequesterID string `json:"requesterId"`
		Action      string `json:"action"`
	}
	if !decodeBody(w, r, &body) {
		return
	}

	if err := fc.FriendshipService.Respond(r.Context(), identity, body.RequesterID, body.Action); err != nil {
		apperrors.WriteHTTP(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetFriends handles fetching the caller's accepted friends
func (fc *FriendshipController) GetFriends(w http.ResponseWriter, r *http.Request) {
	identity, ok := caller(w, r)
	if !ok {
		return
	}

	friends, err := fc.FriendshipService.ListFriends(r.Context(), identity)
	if err != nil {
		apperrors.WriteHTTP(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"friends": friends})
}

// GetPendingRequests handles fetching requests waiting on the caller
func (fc *FriendshipController) GetPendingRequests(w http.ResponseWriter, r *http.Request) {
	identity, ok := caller(w, r)
	if !ok {
		return
	}

	pending, err := fc.FriendshipService.ListPendingRequests(r.Context(), identity)
	if err != nil {
		apperrors.WriteHTTP(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"requests": pending})
}
