package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrTokenExpired = errors.New("токен истек")
	ErrTokenInvalid = errors.New("недействительный токен")
)

// Claims - полезная нагрузка access токена
type Claims struct {
	UserID string
	Role   string
}

// Issue создает подписанный HS256 токен со сроком действия ttl
func Issue(userID, role, secret string, ttl time.Duration) (string, error) {
	now := time.Now()

	claims := jwt.MapClaims{
		"userId": userID,
		"role":   role,
		"exp":    now.Add(ttl).Unix(),
		"iat":    now.Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := t.SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("ошибка подписи токена: %w", err)
	}

	return tokenString, nil
}

// Verify проверяет подпись и срок действия токена и возвращает claims
func Verify(tokenString, secret string) (*Claims, error) {
	t, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		// allow only HMAC signing
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("неожиданный метод подписи: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}

	if !t.Valid {
		return nil, ErrTokenInvalid
	}

	mapClaims, ok := t.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrTokenInvalid
	}

	userID, ok1 := mapClaims["userId"].(string)
	role, ok2 := mapClaims["role"].(string)
	if !ok1 || !ok2 {
		return nil, ErrTokenInvalid
	}

	return &Claims{UserID: userID, Role: role}, nil
}
