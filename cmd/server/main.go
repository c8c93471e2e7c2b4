package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/tmarin7/messagely/internal/config"
	"github.com/tmarin7/messagely/internal/database"
	postgresrepo "github.com/tmarin7/messagely/internal/repository/postgres"
	"github.com/tmarin7/messagely/internal/service"
	"github.com/tmarin7/messagely/internal/token"
	"github.com/tmarin7/messagely/internal/transport/http/handlers"
	"github.com/tmarin7/messagely/internal/transport/http/middleware"
)

func main() {
	cfg := config.Load()

	// Database
	if err := database.Migrate(context.Background(), cfg); err != nil {
		log.Fatal(err)
	}
	pool, err := database.Connect(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer pool.Close()
	log.Println("Connected to database")

	// Repositories
	userRepo := postgresrepo.NewUserRepo(pool)
	messageRepo := postgresrepo.NewMessageRepo(pool)

	// Token issuer
	issuer := token.NewIssuer(cfg.JWTSecret)

	// Services
	authService := service.NewAuthService(userRepo, issuer, cfg.BcryptCost)
	userService := service.NewUserService(userRepo)
	messageService := service.NewMessageService(messageRepo, userRepo)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(userService, messageService)
	messageHandler := handlers.NewMessageHandler(messageService)

	// Auth middleware
	auth := middleware.Auth(issuer)

	// Routes
	mux := http.NewServeMux()

	// Public
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status": "ok"}`))
	})
	mux.HandleFunc("POST /api/v1/auth/register", authHandler.Register)
	mux.HandleFunc("POST /api/v1/auth/login", authHandler.Login)

	// Protected - Users
	mux.Handle("GET /api/v1/users", auth(http.HandlerFunc(userHandler.List)))
	mux.Handle("GET /api/v1/users/{username}", auth(http.HandlerFunc(userHandler.Get)))
	mux.Handle("GET /api/v1/users/{username}/messages/from", auth(http.HandlerFunc(userHandler.MessagesFrom)))
	mux.Handle("GET /api/v1/users/{username}/messages/to", auth(http.HandlerFunc(userHandler.MessagesTo)))

	// Protected - Messages
	mux.Handle("POST /api/v1/messages", auth(http.HandlerFunc(messageHandler.Send)))
	mux.Handle("GET /api/v1/messages/{id}", auth(http.HandlerFunc(messageHandler.Get)))
	mux.Handle("POST /api/v1/messages/{id}/read", auth(http.HandlerFunc(messageHandler.MarkRead)))

	// Start server with CORS and request logging
	addr := fmt.Sprintf(":%s", cfg.ServerPort)
	log.Printf("Starting server on %s", addr)
	log.Fatal(http.ListenAndServe(addr, middleware.CORS(middleware.Logging(mux))))
}
