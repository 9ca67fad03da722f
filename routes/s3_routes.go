package routes

import (
	"github.com/claytonnetvision/wodpulse-back/controllers"
	"github.com/claytonnetvision/wodpulse-back/services"

	"github.com/gorilla/mux"
)

// RegisterS3Routes sets up routes for profile photo URLs under /api/s3
func RegisterS3Routes(r *mux.Router, s3Service *services.S3Service) {
	controller := controllers.NewS3Controller(s3Service)

	s3Router := r.PathPrefix("/s3").Subrouter()
	s3Router.HandleFunc("/upload-url", controller.GetUploadURL).Methods("POST")
	s3Router.HandleFunc("/read-url", controller.GetReadURL).Methods("GET")
}
