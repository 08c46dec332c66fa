package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"chirp/internal/models"
)

type tweetRepository struct {
	db *sqlx.DB
}

type CreateTweetRequest struct {
	AuthorID string  `json:"author_id"`
	Text     string  `json:"text"`
	MediaURL *string `json:"media_url"`
}

// TweetFilter - фильтр списка твитов
type TweetFilter struct {
	AuthorID string
	// nil - любые записи, false - только твиты, true - только комментарии
	IsComment *bool
}

const tweetColumns = `
	tweets.*,
	(SELECT COUNT(*) FROM tweet_likes WHERE tweet_likes.tweet_id = tweets.tweet_id) AS like_count,
	(SELECT COUNT(*) FROM tweet_retweets WHERE tweet_retweets.tweet_id = tweets.tweet_id) AS retweet_count,
	(SELECT COUNT(*) FROM tweets AS c WHERE c.parent_tweet_id = tweets.tweet_id) AS comment_count`

func NewTweetRepository(db *sqlx.DB) TweetRepository {
	return &tweetRepository{db: db}
}

func (r *tweetRepository) Create(ctx context.Context, tweet *models.Tweet) error {
	if tweet.TweetID == "" {
		tweet.TweetID = uuid.New().String()
	}

	now := time.Now()
	tweet.CreatedAt = now
	tweet.UpdatedAt = now

	query := `
		INSERT INTO tweets (tweet_id, author_id, text_content, media_url, is_comment, parent_tweet_id, created_at, updated_at)
		VALUES (:tweet_id, :author_id, :text_content, :media_url, :is_comment, :parent_tweet_id, :created_at, :updated_at)
	`

	_, err := r.db.NamedExecContext(ctx, query, tweet)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23503" {
			// author or parent tweet disappeared
			return ErrNotFound
		}
		return fmt.Errorf("ошибка при создании твита: %w", err)
	}

	return nil
}

func (r *tweetRepository) GetByID(ctx context.Context, tweetID string) (*models.Tweet, error) {
	var tweet models.Tweet

	query := `SELECT` + tweetColumns + ` FROM tweets WHERE tweets.tweet_id = $1`

	err := r.db.GetContext(ctx, &tweet, query, tweetID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("ошибка при получении твита: %w", err)
	}

	tweet.Likes = make([]string, 0)
	err = r.db.SelectContext(ctx, &tweet.Likes,
		`SELECT user_id FROM tweet_likes WHERE tweet_id = $1 ORDER BY created_at, user_id`, tweetID)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении лайков: %w", err)
	}

	tweet.Retweets = make([]string, 0)
	err = r.db.SelectContext(ctx, &tweet.Retweets,
		`SELECT user_id FROM tweet_retweets WHERE tweet_id = $1 ORDER BY created_at, user_id`, tweetID)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении ретвитов: %w", err)
	}

	return &tweet, nil
}

var tweetSortColumns = map[string]string{
	"createdAt": "created_at",
}

func (r *tweetRepository) ListTweets(ctx context.Context, filter TweetFilter, params ListParams) (*ListResult, error) {
	params = params.Normalized()

	where := make([]string, 0, 2)
	args := make([]interface{}, 0, 4)

	if filter.AuthorID != "" {
		args = append(args, filter.AuthorID)
		where = append(where, fmt.Sprintf("author_id = $%d", len(args)))
	}
	if filter.IsComment != nil {
		args = append(args, *filter.IsComment)
		where = append(where, fmt.Sprintf("is_comment = $%d", len(args)))
	}

	whereSQL := ""
	if len(where) > 0 {
		whereSQL = " WHERE " + strings.Join(where, " AND ")
	}

	var totalResults int
	countQuery := `SELECT COUNT(*) FROM tweets` + whereSQL
	if err := r.db.GetContext(ctx, &totalResults, countQuery, args...); err != nil {
		return nil, fmt.Errorf("ошибка при подсчете твитов: %w", err)
	}

	args = append(args, params.Limit)
	limitPos := len(args)
	args = append(args, params.Offset())
	offsetPos := len(args)

	query := `SELECT` + tweetColumns + ` FROM tweets` + whereSQL +
		orderClause(params, tweetSortColumns, "tweet_id") +
		fmt.Sprintf(" LIMIT $%d OFFSET $%d", limitPos, offsetPos)

	tweets := make([]models.Tweet, 0, params.Limit)
	if err := r.db.SelectContext(ctx, &tweets, query, args...); err != nil {
		return nil, fmt.Errorf("ошибка при получении списка твитов: %w", err)
	}

	return &ListResult{
		Results:      tweets,
		Page:         params.Page,
		Limit:        params.Limit,
		TotalPages:   TotalPages(totalResults, params.Limit),
		TotalResults: totalResults,
	}, nil
}

// GetComments возвращает комментарии твита, новые сверху
func (r *tweetRepository) GetComments(ctx context.Context, parentTweetID string) ([]models.Tweet, error) {
	query := `SELECT` + tweetColumns + ` FROM tweets
		WHERE parent_tweet_id = $1
		ORDER BY created_at DESC, tweet_id`

	comments := make([]models.Tweet, 0)
	err := r.db.SelectContext(ctx, &comments, query, parentTweetID)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении комментариев: %w", err)
	}

	return comments, nil
}

func (r *tweetRepository) SetMediaURL(ctx context.Context, tweetID, mediaURL string) error {
	query := `
		UPDATE tweets
		SET media_url = $1, updated_at = CURRENT_TIMESTAMP
		WHERE tweet_id = $2
	`

	result, err := r.db.ExecContext(ctx, query, mediaURL, tweetID)
	if err != nil {
		return fmt.Errorf("ошибка при обновлении медиа твита: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("ошибка при проверке обновленных строк: %w", err)
	}

	if rowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

func (r *tweetRepository) Delete(ctx context.Context, tweetID string) error {
	query := `DELETE FROM tweets WHERE tweet_id = $1`

	result, err := r.db.ExecContext(ctx, query, tweetID)
	if err != nil {
		return fmt.Errorf("ошибка при удалении твита: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("ошибка при проверке удаленных строк: %w", err)
	}

	if rowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

// Like ставит лайк. Уникальность на уровне первичного ключа:
// повторный лайк того же пользователя невозможен
func (r *tweetRepository) Like(ctx context.Context, tweetID, userID string) error {
	query := `
		INSERT INTO tweet_likes (tweet_id, user_id)
		VALUES ($1, $2)
		ON CONFLICT (tweet_id, user_id) DO NOTHING
	`

	result, err := r.db.ExecContext(ctx, query, tweetID, userID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23503" {
			return ErrNotFound
		}
		return fmt.Errorf("ошибка при добавлении лайка: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("ошибка при проверке добавленных строк: %w", err)
	}

	if rowsAffected == 0 {
		return ErrAlreadyLiked
	}

	return nil
}

func (r *tweetRepository) Unlike(ctx context.Context, tweetID, userID string) error {
	query := `DELETE FROM tweet_likes WHERE tweet_id = $1 AND user_id = $2`

	_, err := r.db.ExecContext(ctx, query, tweetID, userID)
	if err != nil {
		return fmt.Errorf("ошибка при удалении лайка: %w", err)
	}

	return nil
}

func (r *tweetRepository) Retweet(ctx context.Context, tweetID, userID string) error {
	query := `
		INSERT INTO tweet_retweets (tweet_id, user_id)
		VALUES ($1, $2)
		ON CONFLICT (tweet_id, user_id) DO NOTHING
	`

	result, err := r.db.ExecContext(ctx, query, tweetID, userID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23503" {
			return ErrNotFound
		}
		return fmt.Errorf("ошибка при добавлении ретвита: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("ошибка при проверке добавленных строк: %w", err)
	}

	if rowsAffected == 0 {
		return ErrAlreadyRetweeted
	}

	return nil
}

func (r *tweetRepository) Unretweet(ctx context.Context, tweetID, userID string) error {
	query := `DELETE FROM tweet_retweets WHERE tweet_id = $1 AND user_id = $2`

	_, err := r.db.ExecContext(ctx, query, tweetID, userID)
	if err != nil {
		return fmt.Errorf("ошибка при удалении ретвита: %w", err)
	}

	return nil
}
