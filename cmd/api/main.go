package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gorilla/mux"
	"chirp/cmd/app"
	"chirp/internal/config"
	handlers "chirp/internal/handler"
	"chirp/internal/middleware"
	"chirp/internal/models"
)

func main() {
	// setting up config
	cfg := config.LoadConfig()

	if cfg.JWTSecretKey == "" {
		log.Fatal("JWT_SECRET_KEY не установлен в .env файле")
	}

	db, repo, services := app.App(cfg)
	defer db.CloseDB()

	handler := handlers.NewHandlers(repo, services, cfg)

	limiter, err := middleware.NewRedisRateLimiter(cfg)
	if err != nil {
		log.Printf("Внимание: Redis недоступен, ограничитель запросов выключен: %v", err)
	}
	if limiter != nil {
		defer limiter.Close()
	}

	r := mux.NewRouter()

	// public routes
	r.HandleFunc("/", handlers.HomeHandler).Methods(http.MethodGet)
	r.HandleFunc("/health", handlers.HealthHandler).Methods(http.MethodGet)
	r.HandleFunc("/stats", handler.StatsHandler).Methods(http.MethodGet)

	authRouter := r.PathPrefix("/api/auth").Subrouter()
	authRouter.Use(middleware.RateLimitMiddleware(limiter, cfg.Redis.AuthLimit, cfg.Redis.AuthWindow))
	authRouter.HandleFunc("/register", handler.Register).Methods(http.MethodPost)
	authRouter.HandleFunc("/login", handler.Login).Methods(http.MethodPost)

	r.HandleFunc("/api/users/{id}", handler.GetUser).Methods(http.MethodGet)
	r.HandleFunc("/api/profiles/{user_id}", handler.GetProfile).Methods(http.MethodGet)
	r.HandleFunc("/api/tweets", handler.GetTweets).Methods(http.MethodGet)
	r.HandleFunc("/api/tweets/{id}", handler.GetTweet).Methods(http.MethodGet)
	r.HandleFunc("/api/tweets/{id}/comments", handler.GetComments).Methods(http.MethodGet)

	// protected routes
	protected := r.PathPrefix("/api").Subrouter()
	protected.Use(middleware.AuthMiddleware(cfg))

	protected.HandleFunc("/me", handler.GetCurrentUser).Methods(http.MethodGet)

	// admin only
	protected.Handle("/users", middleware.RequireRole(models.RoleAdmin)(http.HandlerFunc(handler.GetUsers))).Methods(http.MethodGet)
	protected.Handle("/users", middleware.RequireRole(models.RoleAdmin)(http.HandlerFunc(handler.CreateUser))).Methods(http.MethodPost)

	protected.HandleFunc("/users/{id}", handler.UpdateUser).Methods(http.MethodPut)
	protected.HandleFunc("/users/{id}", handler.DeleteUser).Methods(http.MethodDelete)

	protected.HandleFunc("/profiles", handler.UpdateProfile).Methods(http.MethodPut)
	protected.HandleFunc("/profiles/avatar", handler.UploadAvatar).Methods(http.MethodPost)
	protected.HandleFunc("/profiles/follow/{user_id}", handler.Follow).Methods(http.MethodPost)
	protected.HandleFunc("/profiles/follow/{user_id}", handler.Unfollow).Methods(http.MethodDelete)

	protected.HandleFunc("/tweets", handler.CreateTweet).Methods(http.MethodPost)
	protected.HandleFunc("/tweets/{id}", handler.DeleteTweet).Methods(http.MethodDelete)
	protected.HandleFunc("/tweets/{id}/comments", handler.CreateComment).Methods(http.MethodPost)
	protected.HandleFunc("/tweets/{id}/like", handler.LikeTweet).Methods(http.MethodPost)
	protected.HandleFunc("/tweets/{id}/like", handler.UnlikeTweet).Methods(http.MethodDelete)
	protected.HandleFunc("/tweets/{id}/retweet", handler.RetweetTweet).Methods(http.MethodPost)
	protected.HandleFunc("/tweets/{id}/retweet", handler.UnretweetTweet).Methods(http.MethodDelete)
	protected.HandleFunc("/tweets/{id}/media", handler.AddTweetMedia).Methods(http.MethodPost)

	handlerChain := middleware.Chain(
		r,
		middleware.LoggingMiddleware,
		middleware.CORSMiddleware,
	)

	// Starting the server
	addr := fmt.Sprintf(":%d", cfg.ServerPort)
	fmt.Printf("Сервер запущен на %s\n", addr)
	fmt.Printf("База данных: %s\n", cfg.DB.DbNAME)

	if err := http.ListenAndServe(addr, handlerChain); err != nil {
		log.Fatalf("Ошибка запуска сервера: %v", err)
	}
}
