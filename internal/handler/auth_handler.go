package handlers

import (
	"encoding/json"
	"net/http"
	"unicode/utf8"

	"chirp/internal/models"
	"chirp/internal/repository"
)

type RegisterRequest struct {
	Name           string `json:"name" validate:"required,min=2,max=50"`
	Email          string `json:"email" validate:"required,email"`
	Username       string `json:"username" validate:"required,min=3,max=30"`
	Password       string `json:"password" validate:"required,min=8,max=128"`
	RepeatPassword string `json:"repeat_password" validate:"required,eqfield=Password"`
}

type LoginRequest struct {
	// принимает username или email
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type AuthResponse struct {
	User  *models.User `json:"user"`
	Token string       `json:"token"`
}

// validateRegister собирает ошибки по всем полям сразу, до любого I/O
func validateRegister(req RegisterRequest) []FieldError {
	fieldErrors := make([]FieldError, 0)

	// name verification
	nameLen := utf8.RuneCountInString(req.Name)
	if nameLen < 2 || nameLen > 50 {
		fieldErrors = append(fieldErrors, FieldError{Field: "name", Msg: "Имя должно быть от 2 до 50 символов"})
	}

	// email verification
	if !repository.IsEmail(req.Email) {
		fieldErrors = append(fieldErrors, FieldError{Field: "email", Msg: "Неверный формат email"})
	}

	// username verification
	usernameLen := utf8.RuneCountInString(req.Username)
	if usernameLen < 3 || usernameLen > 30 {
		fieldErrors = append(fieldErrors, FieldError{Field: "username", Msg: "Username должен быть от 3 до 30 символов"})
	}

	// password verification
	if utf8.RuneCountInString(req.Password) < 8 {
		fieldErrors = append(fieldErrors, FieldError{Field: "password", Msg: "Пароль должен быть не менее 8 символов"})
	}

	if req.Password != req.RepeatPassword {
		fieldErrors = append(fieldErrors, FieldError{Field: "repeat_password", Msg: "Пароли не совпадают"})
	}

	return fieldErrors
}

func (h *Handlers) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Неверный формат запроса", http.StatusBadRequest)
		return
	}

	if fieldErrors := validateRegister(req); len(fieldErrors) > 0 {
		WriteFieldErrors(w, fieldErrors, http.StatusBadRequest)
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		WriteError(w, "Неверные данные", http.StatusBadRequest)
		return
	}

	// creating a form to create user, role is always "user" here
	serviceReq := repository.CreateUserRequest{
		Name:     req.Name,
		Email:    req.Email,
		Username: req.Username,
		Password: req.Password,
		Role:     models.RoleUser,
	}

	user, accessToken, err := h.AuthService.Register(r.Context(), serviceReq)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, AuthResponse{User: user, Token: accessToken}, http.StatusCreated)
}

func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Неверный формат запроса", http.StatusBadRequest)
		return
	}

	if req.Username == "" || req.Password == "" {
		WriteError(w, "Логин и пароль обязательны", http.StatusBadRequest)
		return
	}

	user, accessToken, err := h.AuthService.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, AuthResponse{User: user, Token: accessToken}, http.StatusOK)
}
