package middleware

import (
	"context"
	"net/http"
	"os"
	"strings"

	"github.com/claytonnetvision/wodpulse-back/apperrors"
	"github.com/claytonnetvision/wodpulse-back/models"

	"github.com/golang-jwt/jwt/v5"
)

type contextKey string

const identityKey contextKey = "identity"

// Authenticate validates the Bearer token and stores the caller's identity in
// the request context. Every claim the handlers rely on (boxId, participant
// id) comes from the verified token, never from the request body.
func Authenticate(next http.Handler) http.Handler {
	secret := []byte(os.Getenv("JWT_SECRET"))

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			apperrors.WriteHTTP(w, apperrors.Unauthenticated("missing bearer token"))
			return
		}
		tokenString := strings.TrimPrefix(header, "Bearer ")

		claims := jwt.MapClaims{}
		token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return secret, nil
		})
		if err != nil || !token.Valid {
			apperrors.WriteHTTP(w, apperrors.Unauthenticated("invalid token"))
			return
		}

		identity, ok := identityFromClaims(claims)
		if !ok {
			apperrors.WriteHTTP(w, apperrors.Unauthenticated("token is missing identity claims"))
			return
		}

		ctx := context.WithValue(r.Context(), identityKey, identity)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func identityFromClaims(claims jwt.MapClaims) (models.Identity, bool) {
	boxID, _ := claims["boxId"].(string)
	participantID, _ := claims["participantId"].(string)
	if participantID == "" {
		participantID, _ = claims["sub"].(string)
	}
	if boxID == "" || participantID == "" {
		return models.Identity{}, false
	}
	return models.Identity{BoxID: boxID, ParticipantID: participantID}, true
}

// IdentityFrom returns the authenticated caller stored by Authenticate.
func IdentityFrom(ctx context.Context) (models.Identity, bool) {
	identity, ok := ctx.Value(identityKey).(models.Identity)
	return identity, ok
}
