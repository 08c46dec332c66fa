package service

import (
	"context"
	"errors"
	"fmt"

	"chirp/internal/config"
	"chirp/internal/models"
	"chirp/internal/repository"
)

type UserService interface {
	CreateUser(ctx context.Context, req repository.CreateUserRequest) (*models.User, error)
	GetUser(ctx context.Context, userID string) (*models.User, error)
	ListUsers(ctx context.Context, filter repository.UserFilter, params repository.ListParams) (*repository.ListResult, error)
	UpdateUser(ctx context.Context, req repository.UpdateUserRequest) error
	DeleteUser(ctx context.Context, userID string) error
}

type userService struct {
	userRepo repository.UserRepository
	cfg      *config.Config
}

func NewUserService(userRepo repository.UserRepository, cfg *config.Config) UserService {
	return &userService{
		userRepo: userRepo,
		cfg:      cfg,
	}
}

// CreateUser - административное создание пользователя с явной ролью
func (s *userService) CreateUser(ctx context.Context, req repository.CreateUserRequest) (*models.User, error) {
	existing, err := s.userRepo.GetUserByEmail(ctx, req.Email)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("ошибка при проверке email: %w", err)
	}
	if existing != nil {
		return nil, repository.ErrDuplicateEmail
	}

	existing, err = s.userRepo.GetUserByUsername(ctx, req.Username)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("ошибка при проверке username: %w", err)
	}
	if existing != nil {
		return nil, repository.ErrDuplicateUsername
	}

	user := &models.User{
		Name:     req.Name,
		Username: req.Username,
		Email:    req.Email,
		Role:     req.Role,
	}

	err = s.userRepo.CreateUser(ctx, user, req.Password)
	if err != nil {
		return nil, err
	}

	return user, nil
}

func (s *userService) GetUser(ctx context.Context, userID string) (*models.User, error) {
	return s.userRepo.GetUserByID(ctx, userID)
}

func (s *userService) ListUsers(ctx context.Context, filter repository.UserFilter, params repository.ListParams) (*repository.ListResult, error) {
	return s.userRepo.ListUsers(ctx, filter, params)
}

func (s *userService) UpdateUser(ctx context.Context, req repository.UpdateUserRequest) error {
	// get user by id
	user, err := s.userRepo.GetUserByID(ctx, req.UserID)
	if err != nil {
		return err
	}

	user.Name = req.Name
	user.Email = req.Email

	// update user
	err = s.userRepo.UpdateUser(ctx, user)
	if err != nil {
		return err
	}

	return nil
}

func (s *userService) DeleteUser(ctx context.Context, userID string) error {
	err := s.userRepo.DeleteUser(ctx, userID)
	if err != nil {
		return err
	}

	return nil
}
