package controllers

import (
	"net/http"

	"github.com/claytonnetvision/wodpulse-back/apperrors"
	"github.com/claytonnetvision/wodpulse-back/services"

	"github.com/gorilla/mux"
)

// MemberController handles HTTP requests for member profiles
type MemberController struct {
	Members services.MemberStore
}

// NewMemberController creates a new MemberController instance
func NewMemberController(members services.MemberStore) *MemberController {
	return &MemberController{Members: members}
}

// GetMe handles fetching the caller's own profile
func (mc *MemberController) GetMe(w http.ResponseWriter, r *http.Request) {
	identity, ok := caller(w, r)
	if !ok {
		return
	}

	member, err := mc.Members.Get(r.Context(), identity.ParticipantID)
	if err != nil {
		apperrors.WriteHTTP(w, apperrors.Internal(err))
		return
	}
	if member == nil {
		apperrors.WriteHTTP(w, apperrors.NotFound("member not found"))
		return
	}
	respondJSON(w, http.StatusOK, member)
}

// GetMember handles fetching a single member profile. A member in another box
// reports not found, same as the challenge reads.
func (mc *MemberController) GetMember(w http.ResponseWriter, r *http.Request) {
	identity, ok := caller(w, r)
	if !ok {
		return
	}

	member, err := mc.Members.Get(r.Context(), mux.Vars(r)["memberId"])
	if err != nil {
		apperrors.WriteHTTP(w, apperrors.Internal(err))
		return
	}
	if member == nil || member.BoxID != identity.BoxID {
		apperrors.WriteHTTP(w, apperrors.NotFound("member not found"))
		return
	}
	respondJSON(w, http.StatusOK, member)
}

// GetBoxMembers handles listing the caller's box roster
func (mc *MemberController) GetBoxMembers(w http.ResponseWriter, r *http.Request) {
	identity, ok := caller(w, r)
	if !ok {
		return
	}

	members, err := mc.Members.ListByBox(r.Context(), identity.BoxID)
	if err != nil {
		apperrors.WriteHTTP(w, apperrors.Internal(err))
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"members": members})
}
