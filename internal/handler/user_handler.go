package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"chirp/internal/models"
	"chirp/internal/repository"
)

type CreateUserRequest struct {
	Name           string `json:"name" validate:"required,min=2,max=50"`
	Email          string `json:"email" validate:"required,email"`
	Username       string `json:"username" validate:"required,min=3,max=30"`
	Password       string `json:"password" validate:"required,min=8,max=128"`
	RepeatPassword string `json:"repeat_password" validate:"required,eqfield=Password"`
	Role           string `json:"role" validate:"required,oneof=user admin"`
}

type UpdateUserRequest struct {
	Name  string `json:"name" validate:"required,min=2,max=50"`
	Email string `json:"email" validate:"required,email"`
}

// parseListParams читает page/limit/sortBy/sortOrder из query.
// Невалидные значения приводятся к значениям по умолчанию в репозитории
func parseListParams(r *http.Request) repository.ListParams {
	query := r.URL.Query()

	page, _ := strconv.Atoi(query.Get("page"))
	limit, _ := strconv.Atoi(query.Get("limit"))

	return repository.ListParams{
		Page:      page,
		Limit:     limit,
		SortBy:    query.Get("sortBy"),
		SortOrder: query.Get("sortOrder"),
	}
}

// GetUsers - список пользователей с фильтрами, только для администратора
func (h *Handlers) GetUsers(w http.ResponseWriter, r *http.Request) {
	filter := repository.UserFilter{
		Name: r.URL.Query().Get("name"),
		Role: r.URL.Query().Get("role"),
	}

	result, err := h.UserService.ListUsers(r.Context(), filter, parseListParams(r))
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, result, http.StatusOK)
}

// CreateUser - административное создание пользователя с явной ролью
func (h *Handlers) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Неверный формат запроса", http.StatusBadRequest)
		return
	}

	fieldErrors := validateRegister(RegisterRequest{
		Name:           req.Name,
		Email:          req.Email,
		Username:       req.Username,
		Password:       req.Password,
		RepeatPassword: req.RepeatPassword,
	})
	if req.Role != models.RoleUser && req.Role != models.RoleAdmin {
		fieldErrors = append(fieldErrors, FieldError{Field: "role", Msg: "Роль должна быть user или admin"})
	}
	if len(fieldErrors) > 0 {
		WriteFieldErrors(w, fieldErrors, http.StatusBadRequest)
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		WriteError(w, "Неверные данные", http.StatusBadRequest)
		return
	}

	serviceReq := repository.CreateUserRequest{
		Name:     req.Name,
		Email:    req.Email,
		Username: req.Username,
		Password: req.Password,
		Role:     req.Role,
	}

	user, err := h.UserService.CreateUser(r.Context(), serviceReq)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, map[string]interface{}{"user": user}, http.StatusCreated)
}

// GetUser - публичная карточка пользователя по id
func (h *Handlers) GetUser(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["id"]

	user, err := h.UserService.GetUser(r.Context(), userID)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, map[string]interface{}{"user": user}, http.StatusOK)
}

func (h *Handlers) GetCurrentUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		WriteError(w, "Требуется аутентификация", http.StatusUnauthorized)
		return
	}

	user, err := h.UserRepo.GetUserByID(r.Context(), userID)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, map[string]interface{}{"user": user}, http.StatusOK)
}

func (h *Handlers) UpdateUser(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["id"]

	currentUserID, ok := r.Context().Value("userID").(string)
	if !ok {
		WriteError(w, "Требуется аутентификация", http.StatusUnauthorized)
		return
	}

	if userID != currentUserID {
		WriteError(w, "Нет прав для обновления этого пользователя", http.StatusForbidden)
		return
	}

	var req UpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Неверный формат запроса", http.StatusBadRequest)
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		WriteError(w, "Неверные данные", http.StatusBadRequest)
		return
	}

	serviceReq := repository.UpdateUserRequest{
		UserID: userID,
		Name:   req.Name,
		Email:  req.Email,
	}

	if err := h.UserService.UpdateUser(r.Context(), serviceReq); err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, map[string]string{"message": "Пользователь обновлен"}, http.StatusOK)
}

func (h *Handlers) DeleteUser(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["id"]

	currentUserID, ok := r.Context().Value("userID").(string)
	if !ok {
		WriteError(w, "Требуется аутентификация", http.StatusUnauthorized)
		return
	}

	currentUserRole, _ := r.Context().Value("role").(string)
	if userID != currentUserID && currentUserRole != models.RoleAdmin {
		WriteError(w, "Нет прав для удаления этого пользователя", http.StatusForbidden)
		return
	}

	if err := h.UserService.DeleteUser(r.Context(), userID); err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, map[string]string{"message": "Пользователь удален"}, http.StatusOK)
}
