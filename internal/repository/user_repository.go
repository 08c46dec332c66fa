package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"golang.org/x/crypto/bcrypt"
	"chirp/internal/models"
)

type userRepository struct {
	db *sqlx.DB
}

type CreateUserRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type UpdateUserRequest struct {
	UserID string `json:"user_id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
}

// UserFilter - фильтр списка пользователей: подстрока имени и точная роль
type UserFilter struct {
	Name string
	Role string
}

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// NormalizeUsername приводит username к каноничному виду перед записью
// и перед каждым поиском
func NormalizeUsername(username string) string {
	return strings.ToLower(strings.TrimSpace(username))
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func IsEmail(value string) bool {
	return emailPattern.MatchString(value)
}

func NewUserRepository(db *sqlx.DB) UserRepository {
	return &userRepository{db: db}
}

// translateUserInsertError переводит нарушение уникального индекса в
// сигнальную ошибку по имени constraint
func translateUserInsertError(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" {
		switch pqErr.Constraint {
		case "users_email_key":
			return ErrDuplicateEmail
		case "users_username_key":
			return ErrDuplicateUsername
		}
		if strings.Contains(pqErr.Detail, "email") {
			return ErrDuplicateEmail
		}
		return ErrDuplicateUsername
	}
	return nil
}

func (r *userRepository) CreateUser(ctx context.Context, user *models.User, password string) error {
	// create password hash
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("ошибка при хешировании пароля: %w", err)
	}

	user.UserID = uuid.New().String()
	user.PasswordHash = string(hashedPassword)
	user.Username = NormalizeUsername(user.Username)
	user.Email = NormalizeEmail(user.Email)
	if user.Role == "" {
		user.Role = models.RoleUser
	}

	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now

	// user and empty profile are created in one transaction:
	// either both rows exist or neither
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("ошибка при открытии транзакции: %w", err)
	}
	defer tx.Rollback()

	userQuery := `
		INSERT INTO users (user_id, name, username, email, password_hash, role, created_at, updated_at)
		VALUES (:user_id, :name, :username, :email, :password_hash, :role, :created_at, :updated_at)
	`

	_, err = tx.NamedExecContext(ctx, userQuery, user)
	if err != nil {
		if dupErr := translateUserInsertError(err); dupErr != nil {
			return dupErr
		}
		return fmt.Errorf("ошибка при создании пользователя: %w", err)
	}

	profileQuery := `
		INSERT INTO profiles (profile_id, user_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4)
	`

	_, err = tx.ExecContext(ctx, profileQuery, uuid.New().String(), user.UserID, now, now)
	if err != nil {
		return fmt.Errorf("ошибка при создании профиля: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("ошибка при фиксации транзакции: %w", err)
	}

	return nil
}

func (r *userRepository) GetUserByID(ctx context.Context, userID string) (*models.User, error) {
	var user models.User

	query := `SELECT * FROM users WHERE user_id = $1`

	err := r.db.GetContext(ctx, &user, query, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("ошибка при получении пользователя: %w", err)
	}

	return &user, nil
}

func (r *userRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User

	query := `SELECT * FROM users WHERE email = $1`

	err := r.db.GetContext(ctx, &user, query, NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("ошибка при получении пользователя по email: %w", err)
	}

	return &user, nil
}

func (r *userRepository) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User

	query := `SELECT * FROM users WHERE username = $1`

	err := r.db.GetContext(ctx, &user, query, NormalizeUsername(username))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("ошибка при получении пользователя по username: %w", err)
	}

	return &user, nil
}

// VerifyPassword ищет пользователя по email или username и сверяет пароль.
// Отсутствие пользователя и неверный пароль неразличимы для вызывающего
func (r *userRepository) VerifyPassword(ctx context.Context, login, password string) (*models.User, error) {
	var user *models.User
	var err error

	if IsEmail(login) {
		user, err = r.GetUserByEmail(ctx, login)
	} else {
		user, err = r.GetUserByUsername(ctx, login)
	}

	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	err = bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password))
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

func (r *userRepository) UpdateUser(ctx context.Context, user *models.User) error {
	query := `
		UPDATE users
		SET name = :name, email = :email, role = :role, updated_at = :updated_at
		WHERE user_id = :user_id
	`

	user.Email = NormalizeEmail(user.Email)
	user.UpdatedAt = time.Now()

	result, err := r.db.NamedExecContext(ctx, query, user)
	if err != nil {
		if dupErr := translateUserInsertError(err); dupErr != nil {
			return dupErr
		}
		return fmt.Errorf("ошибка при обновлении пользователя: %w", err)
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

func (r *userRepository) DeleteUser(ctx context.Context, userID string) error {
	query := `DELETE FROM users WHERE user_id = $1`

	result, err := r.db.ExecContext(ctx, query, userID)
	if err != nil {
		return fmt.Errorf("ошибка при удалении пользователя: %w", err)
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

var userSortColumns = map[string]string{
	"name":      "name",
	"username":  "username",
	"createdAt": "created_at",
}

func (r *userRepository) ListUsers(ctx context.Context, filter UserFilter, params ListParams) (*ListResult, error) {
	params = params.Normalized()

	where := make([]string, 0, 2)
	args := make([]interface{}, 0, 4)

	if filter.Name != "" {
		args = append(args, "%"+filter.Name+"%")
		where = append(where, fmt.Sprintf("name ILIKE $%d", len(args)))
	}
	if filter.Role != "" {
		args = append(args, filter.Role)
		where = append(where, fmt.Sprintf("role = $%d", len(args)))
	}

	whereSQL := ""
	if len(where) > 0 {
		whereSQL = " WHERE " + strings.Join(where, " AND ")
	}

	var totalResults int
	countQuery := `SELECT COUNT(*) FROM users` + whereSQL
	if err := r.db.GetContext(ctx, &totalResults, countQuery, args...); err != nil {
		return nil, fmt.Errorf("ошибка при подсчете пользователей: %w", err)
	}

	args = append(args, params.Limit)
	limitPos := len(args)
	args = append(args, params.Offset())
	offsetPos := len(args)

	query := `SELECT * FROM users` + whereSQL +
		orderClause(params, userSortColumns, "user_id") +
		fmt.Sprintf(" LIMIT $%d OFFSET $%d", limitPos, offsetPos)

	users := make([]models.User, 0, params.Limit)
	if err := r.db.SelectContext(ctx, &users, query, args...); err != nil {
		return nil, fmt.Errorf("ошибка при получении списка пользователей: %w", err)
	}

	return &ListResult{
		Results:      users,
		Page:         params.Page,
		Limit:        params.Limit,
		TotalPages:   TotalPages(totalResults, params.Limit),
		TotalResults: totalResults,
	}, nil
}
