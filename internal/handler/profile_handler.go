package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"chirp/internal/repository"
)

type UpdateProfileRequest struct {
	Bio      string `json:"bio" validate:"max=160"`
	Location string `json:"location" validate:"max=100"`
	Website  string `json:"website" validate:"omitempty,url,max=255"`
}

// GetProfile - публичный профиль со списками подписчиков и подписок
func (h *Handlers) GetProfile(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["user_id"]

	profile, err := h.ProfileService.GetProfile(r.Context(), userID)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, profile, http.StatusOK)
}

// UpdateProfile меняет только собственный профиль
func (h *Handlers) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	currentUserID, ok := r.Context().Value("userID").(string)
	if !ok {
		WriteError(w, "Требуется аутентификация", http.StatusUnauthorized)
		return
	}

	var req UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Неверный формат запроса", http.StatusBadRequest)
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		WriteError(w, "Неверные данные", http.StatusBadRequest)
		return
	}

	serviceReq := repository.UpdateProfileRequest{
		UserID:   currentUserID,
		Bio:      req.Bio,
		Location: req.Location,
		Website:  req.Website,
	}

	if err := h.ProfileService.UpdateProfile(r.Context(), serviceReq); err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, map[string]string{"message": "Профиль обновлен"}, http.StatusOK)
}

func (h *Handlers) Follow(w http.ResponseWriter, r *http.Request) {
	followedID := mux.Vars(r)["user_id"]

	currentUserID, ok := r.Context().Value("userID").(string)
	if !ok {
		WriteError(w, "Требуется аутентификация", http.StatusUnauthorized)
		return
	}

	if err := h.ProfileService.Follow(r.Context(), currentUserID, followedID); err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, map[string]string{"message": "Подписка оформлена"}, http.StatusOK)
}

func (h *Handlers) Unfollow(w http.ResponseWriter, r *http.Request) {
	followedID := mux.Vars(r)["user_id"]

	currentUserID, ok := r.Context().Value("userID").(string)
	if !ok {
		WriteError(w, "Требуется аутентификация", http.StatusUnauthorized)
		return
	}

	if err := h.ProfileService.Unfollow(r.Context(), currentUserID, followedID); err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, map[string]string{"message": "Подписка отменена"}, http.StatusOK)
}

// UploadAvatar принимает multipart файл в поле "avatar"
func (h *Handlers) UploadAvatar(w http.ResponseWriter, r *http.Request) {
	currentUserID, ok := r.Context().Value("userID").(string)
	if !ok {
		WriteError(w, "Требуется аутентификация", http.StatusUnauthorized)
		return
	}

	if err := r.ParseMultipartForm(h.Cfg.MaxUploadSize); err != nil {
		WriteError(w, "Файл слишком большой", http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("avatar")
	if err != nil {
		WriteError(w, "Файл avatar не найден в запросе", http.StatusBadRequest)
		return
	}
	defer file.Close()

	avatarURL, err := h.ProfileService.UploadAvatar(r.Context(), currentUserID, header.Filename, file, header.Size)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, map[string]string{"avatarUrl": avatarURL}, http.StatusCreated)
}
