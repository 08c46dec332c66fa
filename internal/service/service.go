package service

import (
	"errors"

	"chirp/internal/config"
	"chirp/internal/repository"
	"chirp/internal/storage"
)

// ErrForbidden - аутентифицированный пользователь не имеет прав на операцию
var ErrForbidden = errors.New("недостаточно прав")

// ErrValidation - входные данные не прошли проверку на уровне сервиса
var ErrValidation = errors.New("неверные данные")

type Service struct {
	Auth    AuthService
	User    UserService
	Profile ProfileService
	Tweet   TweetService
	Stats   StatsService
}

func NewService(rep *repository.Repository, cfg *config.Config, storage storage.Storage) *Service {
	return &Service{
		Auth:    NewAuthService(rep.User, cfg),
		User:    NewUserService(rep.User, cfg),
		Profile: NewProfileService(rep.Profile, rep.User, storage),
		Tweet:   NewTweetService(rep.Tweet, storage, cfg),
		Stats:   NewStatsService(rep.Stats),
	}
}
