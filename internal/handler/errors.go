package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"chirp/internal/repository"
	"chirp/internal/service"
)

// FieldError - одна ошибка в конверте ответа, с привязкой к полю
// для ошибок валидации
type FieldError struct {
	Field string `json:"field,omitempty"`
	Msg   string `json:"msg"`
}

type ErrorsResponse struct {
	Errors []FieldError `json:"errors"`
}

// WriteError - универсальная функция для отправки одной ошибки
func WriteError(w http.ResponseWriter, message string, statusCode int) {
	WriteFieldErrors(w, []FieldError{{Msg: message}}, statusCode)
}

// WriteFieldErrors отправляет ошибки валидации с привязкой к полям
func WriteFieldErrors(w http.ResponseWriter, fieldErrors []FieldError, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(ErrorsResponse{Errors: fieldErrors})
}

// WriteSuccess - функция для успешных ответов
func WriteSuccess(w http.ResponseWriter, data interface{}, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}

// WriteServiceError переводит сигнальные ошибки сервисного слоя в HTTP статусы.
// Неизвестные ошибки логируются и наружу уходят обезличенными
func WriteServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		WriteError(w, "Запись не найдена", http.StatusNotFound)
	case errors.Is(err, repository.ErrDuplicateEmail):
		WriteFieldErrors(w, []FieldError{{Field: "email", Msg: "Email уже используется"}}, http.StatusBadRequest)
	case errors.Is(err, repository.ErrDuplicateUsername):
		WriteFieldErrors(w, []FieldError{{Field: "username", Msg: "Username уже используется"}}, http.StatusBadRequest)
	case errors.Is(err, repository.ErrInvalidCredentials):
		WriteError(w, "Неверная комбинация логина и пароля", http.StatusUnauthorized)
	case errors.Is(err, repository.ErrSelfFollow):
		WriteError(w, "Нельзя подписаться на самого себя", http.StatusBadRequest)
	case errors.Is(err, repository.ErrAlreadyLiked):
		WriteError(w, "Лайк уже поставлен", http.StatusBadRequest)
	case errors.Is(err, repository.ErrAlreadyRetweeted):
		WriteError(w, "Ретвит уже сделан", http.StatusBadRequest)
	case errors.Is(err, service.ErrForbidden):
		WriteError(w, "Доступ запрещен", http.StatusForbidden)
	case errors.Is(err, service.ErrValidation):
		WriteError(w, err.Error(), http.StatusBadRequest)
	default:
		log.Printf("внутренняя ошибка: %v", err)
		WriteError(w, "Внутренняя ошибка сервера", http.StatusInternalServerError)
	}
}
