package main

import (
	"log"
	"net/http"
	"os"
	"time"

	"github.com/claytonnetvision/wodpulse-back/controllers"
	"github.com/claytonnetvision/wodpulse-back/middleware"
	"github.com/claytonnetvision/wodpulse-back/routes"
	"github.com/claytonnetvision/wodpulse-back/services"
	"github.com/claytonnetvision/wodpulse-back/socket"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
)

func main() {
	// Initialize DynamoDB client and service
	log.Println("Initializing DynamoDB client...")
	dynamoClient := services.InitializeDynamoDBClient()
	dynamoService := &services.DynamoService{Client: dynamoClient}
	log.Println("DynamoDB client initialized.")

	// Socket.io server for social event pushes
	socketServer := socket.NewServer()
	go func() {
		if err := socketServer.Serve(); err != nil {
			log.Printf("Socket server error: %v", err)
		}
	}()
	defer socketServer.Close()
	notifier := &services.SocketNotifier{Server: socketServer}

	// Box reference time zone for weekly windows
	location := time.UTC
	if tz := os.Getenv("BOX_TIMEZONE"); tz != "" {
		loc, err := time.LoadLocation(tz)
		if err != nil {
			log.Fatalf("Invalid BOX_TIMEZONE %q: %v", tz, err)
		}
		location = loc
	}

	// Stores
	matchStore := &services.DynamoMatchStore{Dynamo: dynamoService}
	friendStore := &services.DynamoFriendStore{Dynamo: dynamoService}
	challengeStore := &services.DynamoChallengeStore{Dynamo: dynamoService}
	memberStore := &services.DynamoMemberStore{Dynamo: dynamoService}
	ledger := &services.DynamoPerformanceLedger{Dynamo: dynamoService}

	// Services
	matchService := &services.MatchService{Store: matchStore, Members: memberStore, Notify: notifier}
	friendshipService := &services.FriendshipService{Store: friendStore, Members: memberStore}
	challengeService := &services.ChallengeService{Store: challengeStore, Members: memberStore, Ledger: ledger, Notify: notifier}
	leaderboardService := &services.LeaderboardService{Ledger: ledger, Members: memberStore, Location: location}

	s3Service, err := services.InitializeS3Service()
	if err != nil {
		log.Fatalf("Failed to initialize S3 service: %v", err)
	}

	// Set up the server port
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("Using server port: %s\n", port)

	// Initialize the router
	r := mux.NewRouter()
	r.HandleFunc("/health", controllers.HealthCheckHandler).Methods("GET")
	r.Handle("/socket.io/", socketServer)

	// Everything under /api requires a valid token
	api := r.PathPrefix("/api").Subrouter()
	api.Use(middleware.Authenticate)

	routes.RegisterMatchRoutes(api, matchService)
	routes.RegisterFriendshipRoutes(api, friendshipService)
	routes.RegisterChallengeRoutes(api, challengeService)
	routes.RegisterLeaderboardRoutes(api, leaderboardService)
	routes.RegisterMemberRoutes(api, memberStore)
	routes.RegisterS3Routes(api, s3Service)

	// Add CORS middleware
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}).Handler(r)

	// Start the HTTP server
	log.Printf("Starting server on port %s...\n", port)
	log.Fatal(http.ListenAndServe(":"+port, corsHandler))
}
