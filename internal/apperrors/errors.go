package apperrors

import (
	"errors"
	"net/http"

	"github.com/lib/pq"
)

// ErrValidation - некорректные или неполные входные данные
var ErrValidation = errors.New("некорректные данные запроса")

// ErrAuthenticationFailed - неверные учетные данные или неактивный аккаунт
var ErrAuthenticationFailed = errors.New("ошибка аутентификации")

// ErrForbidden - нарушение прав владения или роли
var ErrForbidden = errors.New("доступ запрещен")

// ErrNotFound - ресурс или токен не найден
var ErrNotFound = errors.New("не найдено")

// ErrConflict - конфликт уникальности, дубликат email
var ErrConflict = errors.New("конфликт данных")

// ErrInvalidToken - подпись токена не прошла проверку
var ErrInvalidToken = errors.New("недействительный токен")

// ErrTokenExpired - срок действия токена истек
var ErrTokenExpired = errors.New("токен истек")

// StatusCode maps a taxonomy error to an HTTP status.
func StatusCode(err error) int {
	switch {
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ErrAuthenticationFailed):
		return http.StatusUnauthorized
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrConflict):
		return http.StatusConflict
	case errors.Is(err, ErrInvalidToken), errors.Is(err, ErrTokenExpired):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// IsUniqueViolation will check for a Postgres duplicate key error (23505).
func IsUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	return false
}
