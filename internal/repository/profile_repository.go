package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"chirp/internal/models"
)

type profileRepository struct {
	db *sqlx.DB
}

type UpdateProfileRequest struct {
	UserID   string `json:"user_id"`
	Bio      string `json:"bio"`
	Location string `json:"location"`
	Website  string `json:"website"`
}

func NewProfileRepository(db *sqlx.DB) ProfileRepository {
	return &profileRepository{db: db}
}

func (r *profileRepository) GetByUserID(ctx context.Context, userID string) (*models.Profile, error) {
	var profile models.Profile

	query := `SELECT * FROM profiles WHERE user_id = $1`

	err := r.db.GetContext(ctx, &profile, query, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("ошибка при получении профиля: %w", err)
	}

	// followers: who follows this user, following: who this user follows
	profile.Followers = make([]string, 0)
	err = r.db.SelectContext(ctx, &profile.Followers,
		`SELECT follower_id FROM follows WHERE followed_id = $1 ORDER BY created_at, follower_id`, userID)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении подписчиков: %w", err)
	}

	profile.Following = make([]string, 0)
	err = r.db.SelectContext(ctx, &profile.Following,
		`SELECT followed_id FROM follows WHERE follower_id = $1 ORDER BY created_at, followed_id`, userID)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении подписок: %w", err)
	}

	return &profile, nil
}

func (r *profileRepository) Update(ctx context.Context, profile *models.Profile) error {
	query := `
		UPDATE profiles
		SET bio = :bio, location = :location, website = :website,
			avatar_url = :avatar_url, banner_url = :banner_url, updated_at = :updated_at
		WHERE user_id = :user_id
	`

	profile.UpdatedAt = time.Now()

	result, err := r.db.NamedExecContext(ctx, query, profile)
	if err != nil {
		return fmt.Errorf("ошибка при обновлении профиля: %w", err)
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

// Follow добавляет подписку. Повторная подписка не ошибка (ON CONFLICT),
// подписка на себя и на несуществующего пользователя отклоняются
func (r *profileRepository) Follow(ctx context.Context, followerID, followedID string) error {
	if followerID == followedID {
		return ErrSelfFollow
	}

	query := `
		INSERT INTO follows (follower_id, followed_id)
		VALUES ($1, $2)
		ON CONFLICT (follower_id, followed_id) DO NOTHING
	`

	_, err := r.db.ExecContext(ctx, query, followerID, followedID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) {
			// 23503: foreign key, 23514: check follower <> followed
			if pqErr.Code == "23503" {
				return ErrNotFound
			}
			if pqErr.Code == "23514" {
				return ErrSelfFollow
			}
		}
		return fmt.Errorf("ошибка при создании подписки: %w", err)
	}

	return nil
}

func (r *profileRepository) Unfollow(ctx context.Context, followerID, followedID string) error {
	query := `DELETE FROM follows WHERE follower_id = $1 AND followed_id = $2`

	_, err := r.db.ExecContext(ctx, query, followerID, followedID)
	if err != nil {
		return fmt.Errorf("ошибка при удалении подписки: %w", err)
	}

	return nil
}
