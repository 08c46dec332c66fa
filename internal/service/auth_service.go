package service

import (
	"context"
	"errors"
	"fmt"

	"chirp/internal/config"
	"chirp/internal/models"
	"chirp/internal/repository"
	"chirp/internal/token"
)

type AuthService interface {
	Register(ctx context.Context, req repository.CreateUserRequest) (*models.User, string, error)
	Login(ctx context.Context, login, password string) (*models.User, string, error)
}

type authService struct {
	userRepo repository.UserRepository
	cfg      *config.Config
}

func NewAuthService(userRepo repository.UserRepository, cfg *config.Config) AuthService {
	return &authService{
		userRepo: userRepo,
		cfg:      cfg,
	}
}

// Register создает пользователя с пустым профилем и выдает access токен.
// Предварительные проверки дают читаемые ошибки, гонку окончательно
// закрывают уникальные индексы в БД
func (s *authService) Register(ctx context.Context, req repository.CreateUserRequest) (*models.User, string, error) {
	existing, err := s.userRepo.GetUserByEmail(ctx, req.Email)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, "", fmt.Errorf("ошибка при проверке email: %w", err)
	}
	if existing != nil {
		return nil, "", repository.ErrDuplicateEmail
	}

	existing, err = s.userRepo.GetUserByUsername(ctx, req.Username)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, "", fmt.Errorf("ошибка при проверке username: %w", err)
	}
	if existing != nil {
		return nil, "", repository.ErrDuplicateUsername
	}

	role := req.Role
	if role == "" {
		role = models.RoleUser
	}

	user := &models.User{
		Name:     req.Name,
		Username: req.Username,
		Email:    req.Email,
		Role:     role,
	}

	err = s.userRepo.CreateUser(ctx, user, req.Password)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) || errors.Is(err, repository.ErrDuplicateUsername) {
			return nil, "", err
		}
		return nil, "", fmt.Errorf("ошибка при создании пользователя: %w", err)
	}

	accessToken, err := token.Issue(user.UserID, user.Role, s.cfg.JWTSecretKey, s.cfg.AccessTokenDuration)
	if err != nil {
		return nil, "", fmt.Errorf("ошибка генерации access token: %w", err)
	}

	return user, accessToken, nil
}

// Login принимает email или username в качестве логина
func (s *authService) Login(ctx context.Context, login, password string) (*models.User, string, error) {
	user, err := s.userRepo.VerifyPassword(ctx, login, password)
	if err != nil {
		if errors.Is(err, repository.ErrInvalidCredentials) {
			return nil, "", err
		}
		return nil, "", fmt.Errorf("ошибка аутентификации: %w", err)
	}

	accessToken, err := token.Issue(user.UserID, user.Role, s.cfg.JWTSecretKey, s.cfg.AccessTokenDuration)
	if err != nil {
		return nil, "", fmt.Errorf("ошибка генерации access token: %w", err)
	}

	return user, accessToken, nil
}
