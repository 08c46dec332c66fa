package service

import (
	"context"
	"fmt"
	"io"

	"chirp/internal/models"
	"chirp/internal/repository"
	"chirp/internal/storage"
)

type ProfileService interface {
	GetProfile(ctx context.Context, userID string) (*models.Profile, error)
	UpdateProfile(ctx context.Context, req repository.UpdateProfileRequest) error
	Follow(ctx context.Context, followerID, followedID string) error
	Unfollow(ctx context.Context, followerID, followedID string) error
	UploadAvatar(ctx context.Context, userID, fileName string, file io.Reader, size int64) (string, error)
}

type profileService struct {
	profileRepo repository.ProfileRepository
	userRepo    repository.UserRepository
	storage     storage.Storage
}

func NewProfileService(profileRepo repository.ProfileRepository, userRepo repository.UserRepository, storage storage.Storage) ProfileService {
	return &profileService{
		profileRepo: profileRepo,
		userRepo:    userRepo,
		storage:     storage,
	}
}

func (s *profileService) GetProfile(ctx context.Context, userID string) (*models.Profile, error) {
	return s.profileRepo.GetByUserID(ctx, userID)
}

func (s *profileService) UpdateProfile(ctx context.Context, req repository.UpdateProfileRequest) error {
	profile, err := s.profileRepo.GetByUserID(ctx, req.UserID)
	if err != nil {
		return err
	}

	profile.Bio = req.Bio
	profile.Location = req.Location
	profile.Website = req.Website

	return s.profileRepo.Update(ctx, profile)
}

// Follow проверяет существование цели, чтобы вернуть осмысленный 404
// до обращения к таблице подписок
func (s *profileService) Follow(ctx context.Context, followerID, followedID string) error {
	if _, err := s.userRepo.GetUserByID(ctx, followedID); err != nil {
		return err
	}

	return s.profileRepo.Follow(ctx, followerID, followedID)
}

func (s *profileService) Unfollow(ctx context.Context, followerID, followedID string) error {
	return s.profileRepo.Unfollow(ctx, followerID, followedID)
}

func (s *profileService) UploadAvatar(ctx context.Context, userID, fileName string, file io.Reader, size int64) (string, error) {
	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return "", err
	}

	objectName, avatarURL, err := s.storage.UploadMedia(ctx, userID, fileName, file, size)
	if err != nil {
		return "", fmt.Errorf("ошибка загрузки аватара в MinIO: %w", err)
	}

	profile.AvatarURL = avatarURL

	if err := s.profileRepo.Update(ctx, profile); err != nil {
		// compensate the orphan object
		s.storage.DeleteMedia(ctx, objectName)
		return "", fmt.Errorf("ошибка сохранения аватара в БД: %w", err)
	}

	return avatarURL, nil
}
