package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"
	"chirp/internal/config"
	"chirp/internal/repository"
	"chirp/internal/service"
)

type Handlers struct {
	AuthService    service.AuthService
	UserService    service.UserService
	ProfileService service.ProfileService
	TweetService   service.TweetService
	StatsService   service.StatsService
	UserRepo       repository.UserRepository
	Cfg            *config.Config
	Validate       *validator.Validate
}

func NewHandlers(repo *repository.Repository, service *service.Service, config *config.Config) *Handlers {
	return &Handlers{
		AuthService:    service.Auth,
		UserService:    service.User,
		ProfileService: service.Profile,
		TweetService:   service.Tweet,
		StatsService:   service.Stats,
		UserRepo:       repo.User,
		Cfg:            config,
		Validate:       validator.New(),
	}
}

func HomeHandler(w http.ResponseWriter, r *http.Request) {
	WriteSuccess(w, map[string]string{"service": "chirp", "status": "ok"}, http.StatusOK)
}

func HealthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{"status": "healthy"})
}

func (h *Handlers) StatsHandler(w http.ResponseWriter, r *http.Request) {
	stats, err := h.StatsService.GetStats(r.Context())
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, stats, http.StatusOK)
}
