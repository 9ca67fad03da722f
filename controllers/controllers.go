package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/claytonnetvision/wodpulse-back/apperrors"
	"github.com/claytonnetvision/wodpulse-back/middleware"
	"github.com/claytonnetvision/wodpulse-back/models"
)

// HealthCheckHandler reports service liveness
func HealthCheckHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "healthy"})
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

// caller pulls the authenticated identity out of the request context. The
// auth middleware guarantees it is present on protected routes; a miss means
// the route was wired without the middleware.
func caller(w http.ResponseWriter, r *http.Request) (models.Identity, bool) {
	identity, ok := middleware.IdentityFrom(r.Context())
	if !ok {
		apperrors.WriteHTTP(w, apperrors.Unauthenticated("authentication required"))
		return models.Identity{}, false
	}
	return identity, true
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		apperrors.WriteHTTP(w, apperrors.InvalidArgument("invalid JSON body"))
		return false
	}
	return true
}
