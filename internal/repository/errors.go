package repository

import "errors"

// Сигнальные ошибки слоя хранения. Хендлеры переводят их в HTTP статусы
// через errors.Is, текст наружу не уходит как есть.
var (
	ErrNotFound           = errors.New("запись не найдена")
	ErrDuplicateEmail     = errors.New("email уже используется")
	ErrDuplicateUsername  = errors.New("username уже используется")
	ErrInvalidCredentials = errors.New("неверная комбинация логина и пароля")
	ErrSelfFollow         = errors.New("нельзя подписаться на самого себя")
	ErrAlreadyLiked       = errors.New("лайк уже поставлен")
	ErrAlreadyRetweeted   = errors.New("ретвит уже сделан")
)
