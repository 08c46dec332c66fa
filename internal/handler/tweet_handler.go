package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"chirp/internal/repository"
)

type CreateTweetRequest struct {
	Text     string  `json:"text" validate:"required,min=1,max=280"`
	MediaURL *string `json:"media,omitempty" validate:"omitempty,url"`
}

func (h *Handlers) CreateTweet(w http.ResponseWriter, r *http.Request) {
	currentUserID, ok := r.Context().Value("userID").(string)
	if !ok {
		WriteError(w, "Требуется аутентификация", http.StatusUnauthorized)
		return
	}

	var req CreateTweetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Неверный формат запроса", http.StatusBadRequest)
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		WriteFieldErrors(w, []FieldError{{Field: "text", Msg: "Текст твита должен быть от 1 до 280 символов"}}, http.StatusBadRequest)
		return
	}

	serviceReq := repository.CreateTweetRequest{
		AuthorID: currentUserID,
		Text:     req.Text,
		MediaURL: req.MediaURL,
	}

	tweet, err := h.TweetService.CreateTweet(r.Context(), serviceReq)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, tweet, http.StatusCreated)
}

// GetTweets - публичная постраничная лента.
// Фильтры: author (id автора), comments (true/false)
func (h *Handlers) GetTweets(w http.ResponseWriter, r *http.Request) {
	filter := repository.TweetFilter{
		AuthorID: r.URL.Query().Get("author"),
	}

	if raw := r.URL.Query().Get("comments"); raw != "" {
		if isComment, err := strconv.ParseBool(raw); err == nil {
			filter.IsComment = &isComment
		}
	}

	result, err := h.TweetService.ListTweets(r.Context(), filter, parseListParams(r))
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, result, http.StatusOK)
}

func (h *Handlers) GetTweet(w http.ResponseWriter, r *http.Request) {
	tweetID := mux.Vars(r)["id"]

	tweet, err := h.TweetService.GetTweet(r.Context(), tweetID)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, tweet, http.StatusOK)
}

func (h *Handlers) DeleteTweet(w http.ResponseWriter, r *http.Request) {
	tweetID := mux.Vars(r)["id"]

	currentUserID, ok := r.Context().Value("userID").(string)
	if !ok {
		WriteError(w, "Требуется аутентификация", http.StatusUnauthorized)
		return
	}

	currentUserRole, _ := r.Context().Value("role").(string)

	if err := h.TweetService.DeleteTweet(r.Context(), tweetID, currentUserID, currentUserRole); err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, map[string]string{"message": "Твит удален"}, http.StatusOK)
}

func (h *Handlers) GetComments(w http.ResponseWriter, r *http.Request) {
	tweetID := mux.Vars(r)["id"]

	comments, err := h.TweetService.GetComments(r.Context(), tweetID)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, comments, http.StatusOK)
}

func (h *Handlers) CreateComment(w http.ResponseWriter, r *http.Request) {
	tweetID := mux.Vars(r)["id"]

	currentUserID, ok := r.Context().Value("userID").(string)
	if !ok {
		WriteError(w, "Требуется аутентификация", http.StatusUnauthorized)
		return
	}

	var req CreateTweetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Неверный формат запроса", http.StatusBadRequest)
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		WriteFieldErrors(w, []FieldError{{Field: "text", Msg: "Текст комментария должен быть от 1 до 280 символов"}}, http.StatusBadRequest)
		return
	}

	serviceReq := repository.CreateTweetRequest{
		AuthorID: currentUserID,
		Text:     req.Text,
		MediaURL: req.MediaURL,
	}

	comment, err := h.TweetService.CreateComment(r.Context(), tweetID, serviceReq)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, comment, http.StatusCreated)
}

func (h *Handlers) LikeTweet(w http.ResponseWriter, r *http.Request) {
	tweetID := mux.Vars(r)["id"]

	currentUserID, ok := r.Context().Value("userID").(string)
	if !ok {
		WriteError(w, "Требуется аутентификация", http.StatusUnauthorized)
		return
	}

	if err := h.TweetService.Like(r.Context(), tweetID, currentUserID); err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, map[string]string{"message": "Лайк поставлен"}, http.StatusOK)
}

func (h *Handlers) UnlikeTweet(w http.ResponseWriter, r *http.Request) {
	tweetID := mux.Vars(r)["id"]

	currentUserID, ok := r.Context().Value("userID").(string)
	if !ok {
		WriteError(w, "Требуется аутентификация", http.StatusUnauthorized)
		return
	}

	if err := h.TweetService.Unlike(r.Context(), tweetID, currentUserID); err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, map[string]string{"message": "Лайк удален"}, http.StatusOK)
}

func (h *Handlers) RetweetTweet(w http.ResponseWriter, r *http.Request) {
	tweetID := mux.Vars(r)["id"]

	currentUserID, ok := r.Context().Value("userID").(string)
	if !ok {
		WriteError(w, "Требуется аутентификация", http.StatusUnauthorized)
		return
	}

	if err := h.TweetService.Retweet(r.Context(), tweetID, currentUserID); err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, map[string]string{"message": "Ретвит сделан"}, http.StatusOK)
}

func (h *Handlers) UnretweetTweet(w http.ResponseWriter, r *http.Request) {
	tweetID := mux.Vars(r)["id"]

	currentUserID, ok := r.Context().Value("userID").(string)
	if !ok {
		WriteError(w, "Требуется аутентификация", http.StatusUnauthorized)
		return
	}

	if err := h.TweetService.Unretweet(r.Context(), tweetID, currentUserID); err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, map[string]string{"message": "Ретвит отменен"}, http.StatusOK)
}

// AddTweetMedia принимает multipart файл в поле "media"
func (h *Handlers) AddTweetMedia(w http.ResponseWriter, r *http.Request) {
	tweetID := mux.Vars(r)["id"]

	currentUserID, ok := r.Context().Value("userID").(string)
	if !ok {
		WriteError(w, "Требуется аутентификация", http.StatusUnauthorized)
		return
	}

	if err := r.ParseMultipartForm(h.Cfg.MaxUploadSize); err != nil {
		WriteError(w, "Файл слишком большой", http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("media")
	if err != nil {
		WriteError(w, "Файл media не найден в запросе", http.StatusBadRequest)
		return
	}
	defer file.Close()

	tweet, err := h.TweetService.AddMedia(r.Context(), tweetID, currentUserID, header.Filename, file, header.Size)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, tweet, http.StatusCreated)
}
