package test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"newsportal/internal/models"
	"newsportal/internal/service"
)

func TestListUsers(t *testing.T) {
	h, mocks := createTestHandler()

	actor := &models.User{UserID: "staff-id", Email: "staff@example.com", Role: models.RoleAdmin, IsStaff: true}

	mocks.user.On("ListUsers", mock.Anything, actor).Return([]models.User{
		{UserID: "staff-id", Email: "staff@example.com"},
		{UserID: "client-id", Email: "client@example.com"},
	}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/users", nil)
	req = authenticate(req, mocks, actor)
	rr := httptest.NewRecorder()

	h.ListUsers(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	var users []models.User
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &users))
	assert.Len(t, users, 2)
}

func TestCreateUser(t *testing.T) {
	t.Run("Staff создает пользователя", func(t *testing.T) {
		h, mocks := createTestHandler()

		actor := &models.User{UserID: "staff-id", Email: "staff@example.com", Role: models.RoleAdmin, IsStaff: true}

		mocks.user.On("CreateUser", mock.Anything, actor, service.CreateUserRequest{
			Email: "new@example.com",
			Role:  models.RoleClient,
		}).Return(&models.User{UserID: "new-id", Email: "new@example.com", Role: models.RoleClient}, nil)

		body := `{"email": "new@example.com", "role": "Client"}`
		req := httptest.NewRequest(http.MethodPost, "/api/users", strings.NewReader(body))
		req = authenticate(req, mocks, actor)
		rr := httptest.NewRecorder()

		h.CreateUser(rr, req)

		assert.Equal(t, http.StatusCreated, rr.Code)
		mocks.user.AssertExpectations(t)
	})

	t.Run("Неизвестная роль отклоняется", func(t *testing.T) {
		h, mocks := createTestHandler()

		actor := &models.User{UserID: "staff-id", Email: "staff@example.com", Role: models.RoleAdmin, IsStaff: true}

		body := `{"email": "new@example.com", "role": "Hacker"}`
		req := httptest.NewRequest(http.MethodPost, "/api/users", strings.NewReader(body))
		req = authenticate(req, mocks, actor)
		rr := httptest.NewRecorder()

		h.CreateUser(rr, req)

		assertJSONError(t, rr, http.StatusBadRequest, "Неверные данные")
	})
}

func TestUpdateUser(t *testing.T) {
	h, mocks := createTestHandler()

	actor := &models.User{UserID: "client-id", Email: "client@example.com", Role: models.RoleClient}

	mocks.user.On("UpdateUser", mock.Anything, actor, "client-id", service.UpdateUserRequest{
		FirstName: "Иван",
	}).Return(&models.User{UserID: "client-id", Email: "client@example.com"}, nil)

	body := `{"firstName": "Иван"}`
	req := httptest.NewRequest(http.MethodPut, "/api/users/client-id", strings.NewReader(body))
	req = mux.SetURLVars(req, map[string]string{"id": "client-id"})
	req = authenticate(req, mocks, actor)
	rr := httptest.NewRecorder()

	h.UpdateUser(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	mocks.user.AssertExpectations(t)
}

func TestDeleteUser(t *testing.T) {
	h, mocks := createTestHandler()

	actor := &models.User{UserID: "staff-id", Email: "staff@example.com", Role: models.RoleAdmin, IsStaff: true}

	mocks.user.On("DeleteUser", mock.Anything, actor, "client-id").Return(nil)

	req := httptest.NewRequest(http.MethodDelete, "/api/users/client-id", nil)
	req = mux.SetURLVars(req, map[string]string{"id": "client-id"})
	req = authenticate(req, mocks, actor)
	rr := httptest.NewRecorder()

	h.DeleteUser(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	mocks.user.AssertExpectations(t)
}
