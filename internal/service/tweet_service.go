package service

import (
	"context"
	"fmt"
	"io"
	"unicode/utf8"

	"chirp/internal/config"
	"chirp/internal/models"
	"chirp/internal/repository"
	"chirp/internal/storage"
)

const maxTweetLength = 280

type TweetService interface {
	CreateTweet(ctx context.Context, req repository.CreateTweetRequest) (*models.Tweet, error)
	GetTweet(ctx context.Context, tweetID string) (*models.Tweet, error)
	ListTweets(ctx context.Context, filter repository.TweetFilter, params repository.ListParams) (*repository.ListResult, error)
	GetComments(ctx context.Context, parentTweetID string) ([]models.Tweet, error)
	CreateComment(ctx context.Context, parentTweetID string, req repository.CreateTweetRequest) (*models.Tweet, error)
	DeleteTweet(ctx context.Context, tweetID, requesterID, requesterRole string) error
	Like(ctx context.Context, tweetID, userID string) error
	Unlike(ctx context.Context, tweetID, userID string) error
	Retweet(ctx context.Context, tweetID, userID string) error
	Unretweet(ctx context.Context, tweetID, userID string) error
	AddMedia(ctx context.Context, tweetID, requesterID, fileName string, file io.Reader, size int64) (*models.Tweet, error)
}

type tweetService struct {
	tweetRepo repository.TweetRepository
	storage   storage.Storage
	cfg       *config.Config
}

func NewTweetService(tweetRepo repository.TweetRepository, storage storage.Storage, cfg *config.Config) TweetService {
	return &tweetService{
		tweetRepo: tweetRepo,
		storage:   storage,
		cfg:       cfg,
	}
}

func (s *tweetService) CreateTweet(ctx context.Context, req repository.CreateTweetRequest) (*models.Tweet, error) {
	if utf8.RuneCountInString(req.Text) == 0 || utf8.RuneCountInString(req.Text) > maxTweetLength {
		return nil, fmt.Errorf("%w: текст твита должен быть от 1 до %d символов", ErrValidation, maxTweetLength)
	}

	tweet := &models.Tweet{
		AuthorID: req.AuthorID,
		Text:     req.Text,
		MediaURL: req.MediaURL,
	}

	err := s.tweetRepo.Create(ctx, tweet)
	if err != nil {
		return nil, err
	}

	return tweet, nil
}

func (s *tweetService) GetTweet(ctx context.Context, tweetID string) (*models.Tweet, error) {
	return s.tweetRepo.GetByID(ctx, tweetID)
}

func (s *tweetService) ListTweets(ctx context.Context, filter repository.TweetFilter, params repository.ListParams) (*repository.ListResult, error) {
	return s.tweetRepo.ListTweets(ctx, filter, params)
}

// GetComments сначала убеждается, что родительский твит существует
func (s *tweetService) GetComments(ctx context.Context, parentTweetID string) ([]models.Tweet, error) {
	if _, err := s.tweetRepo.GetByID(ctx, parentTweetID); err != nil {
		return nil, err
	}

	return s.tweetRepo.GetComments(ctx, parentTweetID)
}

// CreateComment создает комментарий: тот же твит, но с флагом is_comment
// и ссылкой на родителя
func (s *tweetService) CreateComment(ctx context.Context, parentTweetID string, req repository.CreateTweetRequest) (*models.Tweet, error) {
	if _, err := s.tweetRepo.GetByID(ctx, parentTweetID); err != nil {
		return nil, err
	}

	if utf8.RuneCountInString(req.Text) == 0 || utf8.RuneCountInString(req.Text) > maxTweetLength {
		return nil, fmt.Errorf("%w: текст комментария должен быть от 1 до %d символов", ErrValidation, maxTweetLength)
	}

	comment := &models.Tweet{
		AuthorID:      req.AuthorID,
		Text:          req.Text,
		MediaURL:      req.MediaURL,
		IsComment:     true,
		ParentTweetID: &parentTweetID,
	}

	err := s.tweetRepo.Create(ctx, comment)
	if err != nil {
		return nil, err
	}

	return comment, nil
}

// DeleteTweet разрешен автору и администратору
func (s *tweetService) DeleteTweet(ctx context.Context, tweetID, requesterID, requesterRole string) error {
	tweet, err := s.tweetRepo.GetByID(ctx, tweetID)
	if err != nil {
		return err
	}

	if tweet.AuthorID != requesterID && requesterRole != models.RoleAdmin {
		return ErrForbidden
	}

	return s.tweetRepo.Delete(ctx, tweetID)
}

func (s *tweetService) Like(ctx context.Context, tweetID, userID string) error {
	return s.tweetRepo.Like(ctx, tweetID, userID)
}

func (s *tweetService) Unlike(ctx context.Context, tweetID, userID string) error {
	return s.tweetRepo.Unlike(ctx, tweetID, userID)
}

func (s *tweetService) Retweet(ctx context.Context, tweetID, userID string) error {
	return s.tweetRepo.Retweet(ctx, tweetID, userID)
}

func (s *tweetService) Unretweet(ctx context.Context, tweetID, userID string) error {
	return s.tweetRepo.Unretweet(ctx, tweetID, userID)
}

func (s *tweetService) AddMedia(ctx context.Context, tweetID, requesterID, fileName string, file io.Reader, size int64) (*models.Tweet, error) {
	tweet, err := s.tweetRepo.GetByID(ctx, tweetID)
	if err != nil {
		return nil, err
	}

	if tweet.AuthorID != requesterID {
		return nil, ErrForbidden
	}

	objectName, mediaURL, err := s.storage.UploadMedia(ctx, requesterID, fileName, file, size)
	if err != nil {
		return nil, fmt.Errorf("ошибка загрузки медиа в MinIO: %w", err)
	}

	if err := s.tweetRepo.SetMediaURL(ctx, tweetID, mediaURL); err != nil {
		s.storage.DeleteMedia(ctx, objectName)
		return nil, fmt.Errorf("ошибка сохранения медиа в БД: %w", err)
	}

	tweet.MediaURL = &mediaURL

	return tweet, nil
}
