package service

import (
	"context"
	"fmt"

	"newsportal/internal/apperrors"
	"newsportal/internal/config"
	"newsportal/internal/models"
	"newsportal/internal/permissions"
	"newsportal/internal/repository"
)

type CreateUserRequest struct {
	Email       string
	Password    string
	Role        string
	FirstName   string
	LastName    string
	PhoneNumber string
	CompanyID   string
}

type UpdateUserRequest struct {
	Email       string
	Role        string
	FirstName   string
	LastName    string
	PhoneNumber string
}

type UserService interface {
	ListUsers(ctx context.Context, actor *models.User) ([]models.User, error)
	GetUser(ctx context.Context, actor *models.User, userID string) (*models.User, error)
	CreateUser(ctx context.Context, actor *models.User, req CreateUserRequest) (*models.User, error)
	UpdateUser(ctx context.Context, actor *models.User, userID string, req UpdateUserRequest) (*models.User, error)
	DeleteUser(ctx context.Context, actor *models.User, userID string) error
}

type userService struct {
	userRepo  repository.UserRepository
	invites   InviteService
	evaluator *permissions.Evaluator
	cfg       *config.Config
}

func NewUserService(userRepo repository.UserRepository, invites InviteService, evaluator *permissions.Evaluator, cfg *config.Config) UserService {
	return &userService{
		userRepo:  userRepo,
		invites:   invites,
		evaluator: evaluator,
		cfg:       cfg,
	}
}

// ListUsers: staff sees everyone, everyone else sees only themselves.
func (s *userService) ListUsers(ctx context.Context, actor *models.User) ([]models.User, error) {
	if !actor.IsStaff {
		return []models.User{*actor}, nil
	}

	return s.userRepo.ListUsers(ctx)
}

func (s *userService) GetUser(ctx context.Context, actor *models.User, userID string) (*models.User, error) {
	if userID != actor.UserID && !actor.IsStaff {
		return nil, fmt.Errorf("можно просматривать только свой профиль: %w", apperrors.ErrForbidden)
	}

	return s.userRepo.GetUserByID(ctx, userID)
}

// CreateUser is a staff operation. The account starts inactive and gets
// an activation email.
func (s *userService) CreateUser(ctx context.Context, actor *models.User, req CreateUserRequest) (*models.User, error) {
	if !s.evaluator.Allows(actor, permissions.ActionManage) {
		return nil, fmt.Errorf("создание пользователей доступно только staff: %w", apperrors.ErrForbidden)
	}

	user := &models.User{
		Email:    req.Email,
		Role:     req.Role,
		IsActive: false,
	}
	if req.Role == models.RoleAdmin {
		user.IsStaff = true
	}
	if req.FirstName != "" {
		user.FirstName = &req.FirstName
	}
	if req.LastName != "" {
		user.LastName = &req.LastName
	}
	if req.PhoneNumber != "" {
		user.PhoneNumber = &req.PhoneNumber
	}
	if req.CompanyID != "" {
		user.CompanyID = &req.CompanyID
	}

	if err := s.userRepo.CreateUser(ctx, user, req.Password); err != nil {
		return nil, err
	}

	if err := s.invites.SendActivationEmail(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

func (s *userService) UpdateUser(ctx context.Context, actor *models.User, userID string, req UpdateUserRequest) (*models.User, error) {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	// staff may not touch a superuser account
	if !s.evaluator.AllowsUserObject(actor, user) {
		return nil, fmt.Errorf("нет прав для обновления этого пользователя: %w", apperrors.ErrForbidden)
	}

	if req.Email != "" {
		user.Email = req.Email
	}
	if req.Role != "" {
		user.Role = req.Role
		user.IsStaff = req.Role == models.RoleAdmin || req.Role == models.RoleSuperuser
	}
	if req.FirstName != "" {
		user.FirstName = &req.FirstName
	}
	if req.LastName != "" {
		user.LastName = &req.LastName
	}
	if req.PhoneNumber != "" {
		user.PhoneNumber = &req.PhoneNumber
	}

	if err := s.userRepo.UpdateUser(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// DeleteUser hard-deletes the row, posts cascade away with it.
func (s *userService) DeleteUser(ctx context.Context, actor *models.User, userID string) error {
	if !s.evaluator.Allows(actor, permissions.ActionManage) {
		return fmt.Errorf("удаление пользователей доступно только staff: %w", apperrors.ErrForbidden)
	}

	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return err
	}

	if !s.evaluator.AllowsUserObject(actor, user) {
		return fmt.Errorf("нет прав для удаления этого пользователя: %w", apperrors.ErrForbidden)
	}

	return s.userRepo.DeleteUser(ctx, userID)
}
