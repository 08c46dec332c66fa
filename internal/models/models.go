package models

import (
	"time"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type User struct {
	UserID       string    `json:"userId" db:"user_id"`
	Name         string    `json:"name" db:"name"`
	Username     string    `json:"username" db:"username"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	Role         string    `json:"role" db:"role"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time `json:"updatedAt" db:"updated_at"`
}

type Profile struct {
	ProfileID string    `json:"profileId" db:"profile_id"`
	UserID    string    `json:"userId" db:"user_id"`
	Bio       string    `json:"bio" db:"bio"`
	Location  string    `json:"location" db:"location"`
	Website   string    `json:"website" db:"website"`
	AvatarURL string    `json:"avatarUrl" db:"avatar_url"`
	BannerURL string    `json:"bannerUrl" db:"banner_url"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
	Followers []string  `json:"followers" db:"-"`
	Following []string  `json:"following" db:"-"`
}

type Tweet struct {
	TweetID       string    `json:"tweetId" db:"tweet_id"`
	AuthorID      string    `json:"authorId" db:"author_id"`
	Text          string    `json:"text" db:"text_content"`
	MediaURL      *string   `json:"mediaUrl,omitempty" db:"media_url"`
	IsComment     bool      `json:"isComment" db:"is_comment"`
	ParentTweetID *string   `json:"parentTweetId,omitempty" db:"parent_tweet_id"`
	CreatedAt     time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt     time.Time `json:"updatedAt" db:"updated_at"`
	LikeCount     int       `json:"likeCount" db:"like_count"`
	RetweetCount  int       `json:"retweetCount" db:"retweet_count"`
	CommentCount  int       `json:"commentCount" db:"comment_count"`
	Likes         []string  `json:"likes,omitempty" db:"-"`
	Retweets      []string  `json:"retweets,omitempty" db:"-"`
}
