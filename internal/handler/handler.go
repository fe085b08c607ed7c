package handlers

import (
	"net/http"

	"github.com/go-playground/validator/v10"

	"newsportal/internal/config"
	"newsportal/internal/models"
	"newsportal/internal/repository"
	"newsportal/internal/service"
)

type Handlers struct {
	AuthService    service.AuthService
	InviteService  service.InviteService
	UserService    service.UserService
	CompanyService service.CompanyService
	PostService    service.PostService
	StatsService   service.StatsService
	UserRepo       repository.UserRepository
	Cfg            *config.Config
	Validate       *validator.Validate
}

func NewHandlers(repo *repository.Repository, services *service.Service, config *config.Config) *Handlers {
	return &Handlers{
		AuthService:    services.Auth,
		InviteService:  services.Invite,
		UserService:    services.User,
		CompanyService: services.Company,
		PostService:    services.Post,
		StatsService:   services.Stats,
		UserRepo:       repo.User,
		Cfg:            config,
		Validate:       validator.New(),
	}
}

// currentUser loads the authenticated user placed in the context by the
// auth middleware.
func (h *Handlers) currentUser(r *http.Request) (*models.User, error) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok || userID == "" {
		return nil, errNoAuth
	}

	return h.UserRepo.GetUserByID(r.Context(), userID)
}

// HealthHandler reports process liveness.
func (h *Handlers) HealthHandler(w http.ResponseWriter, r *http.Request) {
	WriteSuccess(w, map[string]string{"status": "ok"}, http.StatusOK)
}
