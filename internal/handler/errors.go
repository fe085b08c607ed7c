package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"newsportal/internal/apperrors"
)

// ErrorResponse - стандартный ответ с ошибкой
type ErrorResponse struct {
	Error string `json:"error"`
}

var errNoAuth = errors.New("требуется аутентификация")

// WriteError - универсальная функция для отправки ошибок
func WriteError(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(ErrorResponse{Error: message})
}

// WriteSuccess - функция для успешных ответов
func WriteSuccess(w http.ResponseWriter, data interface{}, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}

// WriteServiceError maps the taxonomy errors onto HTTP statuses.
func WriteServiceError(w http.ResponseWriter, err error) {
	if errors.Is(err, errNoAuth) {
		WriteError(w, errNoAuth.Error(), http.StatusUnauthorized)
		return
	}

	status := apperrors.StatusCode(err)
	if status == http.StatusInternalServerError {
		WriteError(w, "внутренняя ошибка сервера", status)
		return
	}

	WriteError(w, err.Error(), status)
}
