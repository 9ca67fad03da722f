package controllers

import (
	"net/http"

	"github.com/claytonnetvision/wodpulse-back/apperrors"
	"github.com/claytonnetvision/wodpulse-back/services"

	"github.com/gorilla/mux"
)

// ChallengeController handles HTTP requests for the challenge lifecycle
type ChallengeController struct {
	ChallengeService *services.ChallengeService
}

// NewChallengeController creates a new ChallengeController instance
func NewChallengeController(challengeService *services.ChallengeService) *ChallengeController {
	return &ChallengeController{ChallengeService: challengeService}
}

// Create handles creating a challenge with its invitations
func (cc *ChallengeController) Create(w http.ResponseWriter, r *http.Request) {
	identity, ok := caller(w, r)
	if !ok {
		return
	}

	var input services.CreateChallengeInput
	if !decodeBody(w, r, &input) {
		return
	}

	challenge, err := cc.ChallengeService.Create(r.Context(), identity, input)
	if err != nil {
		apperrors.WriteHTTP(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, challenge)
}

// Get handles fetching a challenge with its participants
func (cc *ChallengeController) Get(w http.ResponseWriter, r *http.Request) {
	identity, ok := caller(w, r)
	if !ok {
		return
	}

	detail, err := cc.ChallengeService.Get(r.Context(), identity, mux.Vars(r)["challengeId"])
	if err != nil {
		apperrors.WriteHTTP(w, err)
		return
	}
	respondJSON(w, http.StatusOK, detail)
}

// Respond handles accepting or declining an invitation
func (cc *ChallengeController) Respond(w http.ResponseWriter, r *http.Request) {
	identity, ok := caller(w, r)
	if !ok {
		return
	}

	var body struct {
		Action string `json:"action"`
	}
	if !decodeBody(w, r, &body) {
		return
	}

	status, err := cc.ChallengeService.Respond(r.Context(), identity, mux.Vars(r)["challengeId"], body.Action)
	if err != nil {
		apperrors.WriteHTTP(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"challengeStatus": status})
}

// AddParticipants handles the creator inviting more members
func (cc *ChallengeController) AddParticipants(w http.ResponseWriter, r *http.Request) {
	identity, ok := caller(w, r)
	if !ok {
		return
	}

	var body struct {
		ParticipantIDs []string `json:"participantIds"`
	}
	if !decodeBody(w, r, &body) {
		return
	}

	if err := cc.ChallengeService.AddParticipants(r.Context(), identity, mux.Vars(r)["challengeId"], body.ParticipantIDs); err != nil {
		apperrors.WriteHTTP(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Delete handles the creator removing a challenge and all its rows
func (cc *ChallengeController) Delete(w http.ResponseWriter, r *http.Request) {
	identity, ok := caller(w, r)
	if !ok {
		return
	}

	if err := cc.ChallengeService.Delete(r.Context(), identity, mux.Vars(r)["challengeId"]); err != nil {
		apperrors.WriteHTTP(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// SubmitResult handles a participant posting a score
func (cc *ChallengeController) SubmitResult(w http.ResponseWriter, r *http.Request) {
	identity, ok := caller(w, r)
	if !ok {
		return
	}

	var body struct {
		Value float64 `json:"value"`
	}
	if !decodeBody(w, r, &body) {
		return
	}

	if err := cc.ChallengeService.SubmitResult(r.Context(), identity, mux.Vars(r)["challengeId"], body.Value); err != nil {
		apperrors.WriteHTTP(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "recorded"})
}

// ComputeResult handles deriving the caller's score from the performance ledger
func (cc *ChallengeController) ComputeResult(w http.ResponseWriter, r *http.Request) {
	identity, ok := caller(w, r)
	if !ok {
		return
	}

	total, err := cc.ChallengeService.ComputeCaloriesResult(r.Context(), identity, mux.Vars(r)["challengeId"])
	if err != nil {
		apperrors.WriteHTTP(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]float64{"resultValue": total})
}

// GetRanking handles fetching the challenge standing
func (cc *ChallengeController) GetRanking(w http.ResponseWriter, r *http.Request) {
	identity, ok := caller(w, r)
	if !ok {
		return
	}

	ranking, err := cc.ChallengeService.Ranking(r.Context(), identity, mux.Vars(r)["challengeId"])
	if err != nil {
		apperrors.WriteHTTP(w, err)
		return
	}
	respondJSON(w, http.StatusOK, ranking)
}

// GetMine handles listing the caller's challenges
func (cc *ChallengeController) GetMine(w http.ResponseWriter, r *http.Request) {
	identity, ok := caller(w, r)
	if !ok {
		return
	}

	challenges, err := cc.ChallengeService.ListMine(r.Context(), identity)
	if err != nil {
		apperrors.WriteHTTP(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"challenges": challenges})
}

// GetInvites handles listing the caller's open invitations
func (cc *ChallengeController) GetInvites(w http.ResponseWriter, r *http.Request) {
	identity, ok := caller(w, r)
	if !ok {
		return
	}

	invites, err := cc.ChallengeService.ListInvites(r.Context(), identity)
	if err != nil {
		apperrors.WriteHTTP(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"invites": invites})
}
