package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"newsportal/internal/service"
)

type CreateUserRequest struct {
	Email       string `json:"email" validate:"required,email,max=255"`
	Password    string `json:"password" validate:"omitempty,min=6,max=128"`
	Role        string `json:"role" validate:"required,oneof=Superuser Admin Client"`
	FirstName   string `json:"firstName" validate:"omitempty,max=255"`
	LastName    string `json:"lastName" validate:"omitempty,max=255"`
	PhoneNumber string `json:"phoneNumber" validate:"omitempty,max=24"`
	CompanyID   string `json:"companyId" validate:"omitempty,uuid4"`
}

type UpdateUserRequest struct {
	Email       string `json:"email" validate:"omitempty,email,max=255"`
	Role        string `json:"role" validate:"omitempty,oneof=Superuser Admin Client"`
	FirstName   string `json:"firstName" validate:"omitempty,max=255"`
	LastName    string `json:"lastName" validate:"omitempty,max=255"`
	PhoneNumber string `json:"phoneNumber" validate:"omitempty,max=24"`
}

// ListUsers - список пользователей (staff видит всех, остальные только себя)
func (h *Handlers) ListUsers(w http.ResponseWriter, r *http.Request) {
	actor, err := h.currentUser(r)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	users, err := h.UserService.ListUsers(r.Context(), actor)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, users, http.StatusOK)
}

// GetUser - профиль пользователя по id
func (h *Handlers) GetUser(w http.ResponseWriter, r *http.Request) {
	actor, err := h.currentUser(r)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	user, err := h.UserService.GetUser(r.Context(), actor, mux.Vars(r)["id"])
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, user, http.StatusOK)
}

// CreateUser - создание пользователя сотрудником портала
func (h *Handlers) CreateUser(w http.ResponseWriter, r *http.Request) {
	actor, err := h.currentUser(r)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	var req CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Неверный формат запроса", http.StatusBadRequest)
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		WriteError(w, "Неверные данные: "+err.Error(), http.StatusBadRequest)
		return
	}

	user, err := h.UserService.CreateUser(r.Context(), actor, service.CreateUserRequest{
		Email:       req.Email,
		Password:    req.Password,
		Role:        req.Role,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		PhoneNumber: req.PhoneNumber,
		CompanyID:   req.CompanyID,
	})
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, user, http.StatusCreated)
}

// UpdateUser - обновление профиля (владелец или staff)
func (h *Handlers) UpdateUser(w http.ResponseWriter, r *http.Request) {
	actor, err := h.currentUser(r)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	var req UpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Неверный формат запроса", http.StatusBadRequest)
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		WriteError(w, "Неверные данные: "+err.Error(), http.StatusBadRequest)
		return
	}

	user, err := h.UserService.UpdateUser(r.Context(), actor, mux.Vars(r)["id"], service.UpdateUserRequest{
		Email:       req.Email,
		Role:        req.Role,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		PhoneNumber: req.PhoneNumber,
	})
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, user, http.StatusOK)
}

// DeleteUser - удаление пользователя (только staff)
func (h *Handlers) DeleteUser(w http.ResponseWriter, r *http.Request) {
	actor, err := h.currentUser(r)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	if err := h.UserService.DeleteUser(r.Context(), actor, mux.Vars(r)["id"]); err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, map[string]string{"message": "Пользователь удален"}, http.StatusOK)
}
