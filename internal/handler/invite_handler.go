package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"newsportal/internal/service"
)

type InviteUsersRequest struct {
	Emails []string `json:"emails" validate:"required,min=1,dive,email"`
}

// InviteUsers - приглашение сотрудников в компанию текущего пользователя
func (h *Handlers) InviteUsers(w http.ResponseWriter, r *http.Request) {
	actor, err := h.currentUser(r)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	var req InviteUsersRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Неверный формат запроса", http.StatusBadRequest)
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		WriteError(w, "Неверный список email: "+err.Error(), http.StatusBadRequest)
		return
	}

	results, err := h.InviteService.InviteUsers(r.Context(), req.Emails, actor)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, map[string]interface{}{"results": results}, http.StatusOK)
}

type AcceptInviteBody struct {
	Password    string `json:"password" validate:"required,min=6,max=128"`
	FirstName   string `json:"firstName" validate:"omitempty,max=255"`
	LastName    string `json:"lastName" validate:"omitempty,max=255"`
	PhoneNumber string `json:"phoneNumber" validate:"omitempty,max=24"`
}

// AcceptInvite - активация приглашенного пользователя по одноразовому токену
func (h *Handlers) AcceptInvite(w http.ResponseWriter, r *http.Request) {
	token := mux.Vars(r)["token"]
	if token == "" {
		WriteError(w, "Отсутствует токен приглашения", http.StatusBadRequest)
		return
	}

	var body AcceptInviteBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		WriteError(w, "Неверный формат запроса", http.StatusBadRequest)
		return
	}

	if err := h.Validate.Struct(body); err != nil {
		WriteError(w, "Неверные данные: "+err.Error(), http.StatusBadRequest)
		return
	}

	user, err := h.InviteService.AcceptInvite(r.Context(), token, service.AcceptInviteRequest{
		Password:    body.Password,
		FirstName:   body.FirstName,
		LastName:    body.LastName,
		PhoneNumber: body.PhoneNumber,
	})
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, user, http.StatusOK)
}

type ResetPasswordRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,max=128"`
}

// RequestPasswordReset - отправка письма со ссылкой на сброс пароля
func (h *Handlers) RequestPasswordReset(w http.ResponseWriter, r *http.Request) {
	var req ResetPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Неверный формат запроса", http.StatusBadRequest)
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		WriteError(w, "Неверные данные: "+err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.InviteService.RequestPasswordReset(r.Context(), req.Email, req.Password); err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, map[string]string{"message": "Письмо для сброса пароля отправлено"}, http.StatusOK)
}

// ConfirmPasswordReset - применение нового пароля по токену из письма;
// пользователь сразу получает новую сессию
func (h *Handlers) ConfirmPasswordReset(w http.ResponseWriter, r *http.Request) {
	token := mux.Vars(r)["token"]
	if token == "" {
		WriteError(w, "Отсутствует токен сброса пароля", http.StatusBadRequest)
		return
	}

	user, accessToken, refreshToken, err := h.InviteService.ConfirmPasswordReset(r.Context(), token)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         user,
	}, http.StatusOK)
}

// ActivateAccount - активация учетной записи по токену из письма;
// по ссылке пользователь оказывается залогиненным
func (h *Handlers) ActivateAccount(w http.ResponseWriter, r *http.Request) {
	token := mux.Vars(r)["token"]
	if token == "" {
		WriteError(w, "Отсутствует токен активации", http.StatusBadRequest)
		return
	}

	user, accessToken, refreshToken, err := h.InviteService.ActivateAccount(r.Context(), token)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         user,
	}, http.StatusOK)
}
