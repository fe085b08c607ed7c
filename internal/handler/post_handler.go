package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"newsportal/internal/repository"
	"newsportal/internal/service"
)

type PostRequest struct {
	Title string `json:"title" validate:"required,max=255"`
	Text  string `json:"text" validate:"required"`
	Topic string `json:"topic" validate:"required,oneof=nature sport art travel"`
}

type UpdatePostPayload struct {
	Title string `json:"title" validate:"omitempty,max=255"`
	Text  string `json:"text" validate:"omitempty"`
	Topic string `json:"topic" validate:"omitempty,oneof=nature sport art travel"`
}

// ListPosts - лента постов; staff может фильтровать по title, text,
// company и topic через query-параметры
func (h *Handlers) ListPosts(w http.ResponseWriter, r *http.Request) {
	actor, err := h.currentUser(r)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	query := r.URL.Query()
	filter := repository.PostFilter{
		Title:     query.Get("title"),
		Text:      query.Get("text"),
		CompanyID: query.Get("company"),
		Topic:     query.Get("topic"),
	}

	posts, err := h.PostService.List(r.Context(), actor, filter)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, posts, http.StatusOK)
}

// GetPost - пост по id
func (h *Handlers) GetPost(w http.ResponseWriter, r *http.Request) {
	actor, err := h.currentUser(r)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	post, err := h.PostService.Get(r.Context(), actor, mux.Vars(r)["id"])
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, post, http.StatusOK)
}

// CreatePost - публикация поста от имени текущего пользователя
func (h *Handlers) CreatePost(w http.ResponseWriter, r *http.Request) {
	actor, err := h.currentUser(r)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	var req PostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Неверный формат запроса", http.StatusBadRequest)
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		WriteError(w, "Неверные данные: "+err.Error(), http.StatusBadRequest)
		return
	}

	post, err := h.PostService.Create(r.Context(), actor, service.CreatePostRequest{
		Title: req.Title,
		Text:  req.Text,
		Topic: req.Topic,
	})
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, post, http.StatusCreated)
}

// UpdatePost - изменение поста (автор или staff)
func (h *Handlers) UpdatePost(w http.ResponseWriter, r *http.Request) {
	actor, err := h.currentUser(r)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	var req UpdatePostPayload
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Неверный формат запроса", http.StatusBadRequest)
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		WriteError(w, "Неверные данные: "+err.Error(), http.StatusBadRequest)
		return
	}

	post, err := h.PostService.Update(r.Context(), actor, mux.Vars(r)["id"], service.UpdatePostRequest{
		Title: req.Title,
		Text:  req.Text,
		Topic: req.Topic,
	})
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, post, http.StatusOK)
}

// DeletePost - мягкое удаление поста (только staff)
func (h *Handlers) DeletePost(w http.ResponseWriter, r *http.Request) {
	actor, err := h.currentUser(r)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	if err := h.PostService.Delete(r.Context(), actor, mux.Vars(r)["id"]); err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, map[string]string{"message": "Пост удален"}, http.StatusOK)
}

// BulkUpdatePosts - массовое обновление постов; каждый элемент
// обрабатывается отдельно и получает свой статус в ответе
func (h *Handlers) BulkUpdatePosts(w http.ResponseWriter, r *http.Request) {
	actor, err := h.currentUser(r)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	var items []service.BulkUpdateItem
	if err := json.NewDecoder(r.Body).Decode(&items); err != nil {
		WriteError(w, "Неверный формат запроса", http.StatusBadRequest)
		return
	}

	if len(items) == 0 {
		WriteError(w, "Пустой список постов", http.StatusBadRequest)
		return
	}

	results, err := h.PostService.BulkUpdate(r.Context(), actor, items)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, map[string]interface{}{"results": results}, http.StatusOK)
}
