package controllers

import (
	"net/http"

	"github.com/claytonnetvision/wodpulse-back/apperrors"
	"github.com/claytonnetvision/wodpulse-back/services"
)

// S3Controller handles HTTP requests for profile photo URLs
type S3Controller struct {
	S3Service *services.S3Service
}

// NewS3Controller creates a new S3Controller instance
func NewS3Controller(s3Service *services.S3Service) *S3Controller {
	return &S3Controller{S3Service: s3Service}
}

// GetUploadURL handles generating a presigned upload URL for the caller's photo
func (sc *S3Controller) GetUploadURL(w http.ResponseWriter, r *http.Request) {
	identity, ok := caller(w, r)
	if !ok {
		return
	}

	var body struct {
		FileName string `json:"fileName"`
		FileType string `json:"fileType"`
	}
	if !decodeBody(w, r, &body) {
		return
	}
	if body.FileName == "" || body.FileType == "" {
		apperrors.WriteHTTP(w, apperrors.InvalidArgument("fileName and fileType are required"))
		return
	}

	url, key, err := sc.S3Service.GenerateUploadURL(r.Context(), identity.ParticipantID, body.FileName, body.FileType)
	if err != nil {
		apperrors.WriteHTTP(w, apperrors.Internal(err))
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"uploadURL": url, "photoKey": key})
}

// GetReadURL handles generating a presigned read URL for a photo key
func (sc *S3Controller) GetReadURL(w http.ResponseWriter, r *http.Request) {
	if _, ok := caller(w, r); !ok {
		return
	}

	key := r.URL.Query().Get("key")
	if key == "" {
		apperrors.WriteHTTP(w, apperrors.InvalidArgument("key is required"))
		return
	}

	url, err := sc.S3Service.GenerateReadURL(r.Context(), key)
	if err != nil {
		apperrors.WriteHTTP(w, apperrors.Internal(err))
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"readURL": url})
}
