package test

import (
	"context"
	"io"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/mock"
	"chirp/internal/config"
	handlers "chirp/internal/handler"
	"chirp/internal/models"
	"chirp/internal/repository"
)

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(ctx context.Context, req repository.CreateUserRequest) (*models.User, string, error) {
	args := m.Called(ctx, req)
	var user *models.User
	if args.Get(0) != nil {
		user = args.Get(0).(*models.User)
	}
	return user, args.String(1), args.Error(2)
}

func (m *MockAuthService) Login(ctx context.Context, login, password string) (*models.User, string, error) {
	args := m.Called(ctx, login, password)
	var user *models.User
	if args.Get(0) != nil {
		user = args.Get(0).(*models.User)
	}
	return user, args.String(1), args.Error(2)
}

type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) CreateUser(ctx context.Context, req repository.CreateUserRequest) (*models.User, error) {
	args := m.Called(ctx, req)
	var user *models.User
	if args.Get(0) != nil {
		user = args.Get(0).(*models.User)
	}
	return user, args.Error(1)
}

func (m *MockUserService) GetUser(ctx context.Context, userID string) (*models.User, error) {
	args := m.Called(ctx, userID)
	var user *models.User
	if args.Get(0) != nil {
		user = args.Get(0).(*models.User)
	}
	return user, args.Error(1)
}

func (m *MockUserService) ListUsers(ctx context.Context, filter repository.UserFilter, params repository.ListParams) (*repository.ListResult, error) {
	args := m.Called(ctx, filter, params)
	var result *repository.ListResult
	if args.Get(0) != nil {
		result = args.Get(0).(*repository.ListResult)
	}
	return result, args.Error(1)
}

func (m *MockUserService) UpdateUser(ctx context.Context, req repository.UpdateUserRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}

func (m *MockUserService) DeleteUser(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

type MockProfileService struct {
	mock.Mock
}

func (m *MockProfileService) GetProfile(ctx context.Context, userID string) (*models.Profile, error) {
	args := m.Called(ctx, userID)
	var profile *models.Profile
	if args.Get(0) != nil {
		profile = args.Get(0).(*models.Profile)
	}
	return profile, args.Error(1)
}

func (m *MockProfileService) UpdateProfile(ctx context.Context, req repository.UpdateProfileRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}

func (m *MockProfileService) Follow(ctx context.Context, followerID, followedID string) error {
	args := m.Called(ctx, followerID, followedID)
	return args.Error(0)
}

func (m *MockProfileService) Unfollow(ctx context.Context, followerID, followedID string) error {
	args := m.Called(ctx, followerID, followedID)
	return args.Error(0)
}

func (m *MockProfileService) UploadAvatar(ctx context.Context, userID, fileName string, file io.Reader, size int64) (string, error) {
	args := m.Called(ctx, userID, fileName, file, size)
	return args.String(0), args.Error(1)
}

type MockTweetService struct {
	mock.Mock
}

func (m *MockTweetService) CreateTweet(ctx context.Context, req repository.CreateTweetRequest) (*models.Tweet, error) {
	args := m.Called(ctx, req)
	var tweet *models.Tweet
	if args.Get(0) != nil {
		tweet = args.Get(0).(*models.Tweet)
	}
	return tweet, args.Error(1)
}

func (m *MockTweetService) GetTweet(ctx context.Context, tweetID string) (*models.Tweet, error) {
	args := m.Called(ctx, tweetID)
	var tweet *models.Tweet
	if args.Get(0) != nil {
		tweet = args.Get(0).(*models.Tweet)
	}
	return tweet, args.Error(1)
}

func (m *MockTweetService) ListTweets(ctx context.Context, filter repository.TweetFilter, params repository.ListParams) (*repository.ListResult, error) {
	args := m.Called(ctx, filter, params)
	var result *repository.ListResult
	if args.Get(0) != nil {
		result = args.Get(0).(*repository.ListResult)
	}
	return result, args.Error(1)
}

func (m *MockTweetService) GetComments(ctx context.Context, parentTweetID string) ([]models.Tweet, error) {
	args := m.Called(ctx, parentTweetID)
	var comments []models.Tweet
	if args.Get(0) != nil {
		comments = args.Get(0).([]models.Tweet)
	}
	return comments, args.Error(1)
}

func (m *MockTweetService) CreateComment(ctx context.Context, parentTweetID string, req repository.CreateTweetRequest) (*models.Tweet, error) {
	args := m.Called(ctx, parentTweetID, req)
	var comment *models.Tweet
	if args.Get(0) != nil {
		comment = args.Get(0).(*models.Tweet)
	}
	return comment, args.Error(1)
}

func (m *MockTweetService) DeleteTweet(ctx context.Context, tweetID, requesterID, requesterRole string) error {
	args := m.Called(ctx, tweetID, requesterID, requesterRole)
	return args.Error(0)
}

func (m *MockTweetService) Like(ctx context.Context, tweetID, userID string) error {
	args := m.Called(ctx, tweetID, userID)
	return args.Error(0)
}

func (m *MockTweetService) Unlike(ctx context.Context, tweetID, userID string) error {
	args := m.Called(ctx, tweetID, userID)
	return args.Error(0)
}

func (m *MockTweetService) Retweet(ctx context.Context, tweetID, userID string) error {
	args := m.Called(ctx, tweetID, userID)
	return args.Error(0)
}

func (m *MockTweetService) Unretweet(ctx context.Context, tweetID, userID string) error {
	args := m.Called(ctx, tweetID, userID)
	return args.Error(0)
}

func (m *MockTweetService) AddMedia(ctx context.Context, tweetID, requesterID, fileName string, file io.Reader, size int64) (*models.Tweet, error) {
	args := m.Called(ctx, tweetID, requesterID, fileName, file, size)
	var tweet *models.Tweet
	if args.Get(0) != nil {
		tweet = args.Get(0).(*models.Tweet)
	}
	return tweet, args.Error(1)
}

type MockStatsService struct {
	mock.Mock
}

func (m *MockStatsService) GetStats(ctx context.Context) (*repository.Stats, error) {
	args := m.Called(ctx)
	var stats *repository.Stats
	if args.Get(0) != nil {
		stats = args.Get(0).(*repository.Stats)
	}
	return stats, args.Error(1)
}

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) CreateUser(ctx context.Context, user *models.User, password string) error {
	args := m.Called(ctx, user, password)
	return args.Error(0)
}

func (m *MockUserRepository) GetUserByID(ctx context.Context, userID string) (*models.User, error) {
	args := m.Called(ctx, userID)
	var user *models.User
	if args.Get(0) != nil {
		user = args.Get(0).(*models.User)
	}
	return user, args.Error(1)
}

func (m *MockUserRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	var user *models.User
	if args.Get(0) != nil {
		user = args.Get(0).(*models.User)
	}
	return user, args.Error(1)
}

func (m *MockUserRepository) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	args := m.Called(ctx, username)
	var user *models.User
	if args.Get(0) != nil {
		user = args.Get(0).(*models.User)
	}
	return user, args.Error(1)
}

func (m *MockUserRepository) UpdateUser(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) DeleteUser(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *MockUserRepository) VerifyPassword(ctx context.Context, login, password string) (*models.User, error) {
	args := m.Called(ctx, login, password)
	var user *models.User
	if args.Get(0) != nil {
		user = args.Get(0).(*models.User)
	}
	return user, args.Error(1)
}

func (m *MockUserRepository) ListUsers(ctx context.Context, filter repository.UserFilter, params repository.ListParams) (*repository.ListResult, error) {
	args := m.Called(ctx, filter, params)
	var result *repository.ListResult
	if args.Get(0) != nil {
		result = args.Get(0).(*repository.ListResult)
	}
	return result, args.Error(1)
}

type testMocks struct {
	auth    *MockAuthService
	user    *MockUserService
	profile *MockProfileService
	tweet   *MockTweetService
	stats   *MockStatsService
	repo    *MockUserRepository
}

func newTestHandlers() (*handlers.Handlers, *testMocks) {
	m := &testMocks{
		auth:    new(MockAuthService),
		user:    new(MockUserService),
		profile: new(MockProfileService),
		tweet:   new(MockTweetService),
		stats:   new(MockStatsService),
		repo:    new(MockUserRepository),
	}

	h := &handlers.Handlers{
		AuthService:    m.auth,
		UserService:    m.user,
		ProfileService: m.profile,
		TweetService:   m.tweet,
		StatsService:   m.stats,
		UserRepo:       m.repo,
		Cfg:            &config.Config{MaxUploadSize: 10 << 20},
		Validate:       validator.New(),
	}

	return h, m
}
