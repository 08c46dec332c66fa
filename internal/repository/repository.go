package repository

import (
	"context"
	"chirp/internal/models"

	"github.com/jmoiron/sqlx"
)

type UserRepository interface {
	CreateUser(ctx context.Context, user *models.User, password string) error
	GetUserByID(ctx context.Context, userID string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	UpdateUser(ctx context.Context, user *models.User) error
	DeleteUser(ctx context.Context, userID string) error
	VerifyPassword(ctx context.Context, login, password string) (*models.User, error)
	ListUsers(ctx context.Context, filter UserFilter, params ListParams) (*ListResult, error)
}

type ProfileRepository interface {
	GetByUserID(ctx context.Context, userID string) (*models.Profile, error)
	Update(ctx context.Context, profile *models.Profile) error
	Follow(ctx context.Context, followerID, followedID string) error
	Unfollow(ctx context.Context, followerID, followedID string) error
}

type TweetRepository interface {
	Create(ctx context.Context, tweet *models.Tweet) error
	GetByID(ctx context.Context, tweetID string) (*models.Tweet, error)
	ListTweets(ctx context.Context, filter TweetFilter, params ListParams) (*ListResult, error)
	GetComments(ctx context.Context, parentTweetID string) ([]models.Tweet, error)
	SetMediaURL(ctx context.Context, tweetID, mediaURL string) error
	Delete(ctx context.Context, tweetID string) error
	Like(ctx context.Context, tweetID, userID string) error
	Unlike(ctx context.Context, tweetID, userID string) error
	Retweet(ctx context.Context, tweetID, userID string) error
	Unretweet(ctx context.Context, tweetID, userID string) error
}

type StatsRepository interface {
	CountStats(ctx context.Context) (*Stats, error)
}

type Repository struct {
	User    UserRepository
	Profile ProfileRepository
	Tweet   TweetRepository
	Stats   StatsRepository
}

func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{
		User:    NewUserRepository(db),
		Profile: NewProfileRepository(db),
		Tweet:   NewTweetRepository(db),
		Stats:   NewStatsRepository(db),
	}
}
