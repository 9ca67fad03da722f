package controllers

import (
	"net/http"
	"strconv"

	"github.com/claytonnetvision/wodpulse-back/apperrors"
	"github.com/claytonnetvision/wodpulse-back/services"
)

// MatchController handles HTTP requests for match-related actions
type MatchController struct {
	MatchService *services.MatchService
}

// NewMatchController creates a new MatchController instance
func NewMatchController(matchService *services.MatchService) *MatchController {
	return &MatchController{MatchService: matchService}
}

// RecordAction handles a like or reject toward another member
func (mc *MatchController) RecordAction(w http.ResponseWriter, r *http.Request) {
	identity, ok := caller(w, r)
	if !ok {
		return
	}

	var body struct {
		TargetID string `json:"targetId"`
		Action   string `json:"action"`
	}
	if !decodeBody(w, r, &body) {
		return
	}

	status, err := mc.MatchService.RecordAction(r.Context(), identity, body.TargetID, body.Action)
	if err != nil {
		apperrors.WriteHTTP(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": status})
}

// GetCandidates handles fetching members the caller has not acted on yet
func (mc *MatchController) GetCandidates(w http.ResponseWriter, r *http.Request) {
	identity, ok := caller(w, r)
	if !ok {
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	candidates, err := mc.MatchService.ListCandidates(r.Context(), identity, limit)
	if err != nil {
		apperrors.WriteHTTP(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"candidates": candidates})
}

// GetMutualMatches handles fetching the caller's mutual matches
func (mc *MatchController) GetMutualMatches(w http.ResponseWriter, r *http.Request) {
	identity, ok := caller(w, r)
	if !ok {
		return
	}

	matches, err := mc.MatchService.ListMutualMatches(r.Context(), identity)
	if err != nil {
		apperrors.WriteHTTP(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"matches": matches})
}
