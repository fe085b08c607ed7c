package test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"newsportal/internal/config"
	handlers "newsportal/internal/handler"
	"newsportal/internal/models"
)

type testMocks struct {
	auth    *MockAuthService
	invite  *MockInviteService
	user    *MockUserService
	company *MockCompanyService
	post    *MockPostService
	stats   *MockStatsService
	repo    *MockUserRepository
}

func createTestHandler() (*handlers.Handlers, *testMocks) {
	mocks := &testMocks{
		auth:    new(MockAuthService),
		invite:  new(MockInviteService),
		user:    new(MockUserService),
		company: new(MockCompanyService),
		post:    new(MockPostService),
		stats:   new(MockStatsService),
		repo:    new(MockUserRepository),
	}

	cfg := &config.Config{
		JWTSecretKey:  "test-secret-key",
		ServerPort:    8080,
		MaxUploadSize: 10 * 1024 * 1024,
	}

	h := &handlers.Handlers{
		AuthService:    mocks.auth,
		InviteService:  mocks.invite,
		UserService:    mocks.user,
		CompanyService: mocks.company,
		PostService:    mocks.post,
		StatsService:   mocks.stats,
		UserRepo:       mocks.repo,
		Cfg:            cfg,
		Validate:       validator.New(),
	}

	return h, mocks
}

// authenticate puts the actor's id into the request context the way the
// auth middleware does and teaches the repo mock to load it.
func authenticate(r *http.Request, mocks *testMocks, actor *models.User) *http.Request {
	mocks.repo.On("GetUserByID", mock.Anything, actor.UserID).Return(actor, nil)

	ctx := context.WithValue(r.Context(), "userID", actor.UserID)
	ctx = context.WithValue(ctx, "email", actor.Email)
	ctx = context.WithValue(ctx, "role", actor.Role)
	return r.WithContext(ctx)
}

// assertJSONError checks the JSON response with an error
func assertJSONError(t *testing.T, rr *httptest.ResponseRecorder, expectedStatus int, expectedError string) {
	assert.Equal(t, expectedStatus, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))

	var response map[string]string
	err := json.Unmarshal(rr.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Contains(t, response["error"], expectedError)
}
