package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"newsportal/internal/apperrors"
	"newsportal/internal/config"
	"newsportal/internal/models"
	"newsportal/internal/repository"
)

type AdminRegisterRequest struct {
	Email       string
	Password    string
	FirstName   string
	LastName    string
	PhoneNumber string
	Company     CompanyRequest
}

type CompanyRequest struct {
	Name    string
	URL     string
	Address string
}

type AuthService interface {
	RegisterAdmin(ctx context.Context, req AdminRegisterRequest) (*models.User, string, string, error)
	Login(ctx context.Context, email, password string) (*models.User, string, string, error)
	RefreshTokens(ctx context.Context, refreshToken string) (*models.User, string, string, error)
	IssueSession(ctx context.Context, user *models.User) (string, string, error)
}

type authService struct {
	userRepo    repository.UserRepository
	companyRepo repository.CompanyRepository
	cfg         *config.Config
}

func NewAuthService(userRepo repository.UserRepository, companyRepo repository.CompanyRepository, cfg *config.Config) AuthService {
	return &authService{
		userRepo:    userRepo,
		companyRepo: companyRepo,
		cfg:         cfg,
	}
}

// RegisterAdmin creates the company together with its first staff Admin
// and logs them in right away.
func (s *authService) RegisterAdmin(ctx context.Context, req AdminRegisterRequest) (*models.User, string, string, error) {
	// email is checked before any write so a duplicate leaves no orphan company
	if _, err := s.userRepo.GetUserByEmail(ctx, req.Email); err == nil {
		return nil, "", "", fmt.Errorf("пользователь с email %s уже существует: %w", req.Email, apperrors.ErrConflict)
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, "", "", err
	}

	company := &models.Company{
		Name: req.Company.Name,
	}
	if req.Company.URL != "" {
		company.URL = &req.Company.URL
	}
	if req.Company.Address != "" {
		company.Address = &req.Company.Address
	}

	if err := s.companyRepo.Create(ctx, company); err != nil {
		return nil, "", "", err
	}

	user := &models.User{
		Email:     req.Email,
		Role:      models.RoleAdmin,
		IsStaff:   true,
		IsActive:  true,
		CompanyID: &company.CompanyID,
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

	if err := s.userRepo.CreateUser(ctx, user, req.Password); err != nil {
		return nil, "", "", err
	}

	accessToken, refreshToken, err := s.IssueSession(ctx, user)
	if err != nil {
		return nil, "", "", err
	}

	return user, accessToken, refreshToken, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (*models.User, string, string, error) {
	user, err := s.userRepo.VerifyPassword(ctx, email, password)
	if err != nil {
		return nil, "", "", fmt.Errorf("ошибка аутентификации: %w", err)
	}

	if !user.IsActive {
		return nil, "", "", fmt.Errorf("аккаунт не активирован: %w", apperrors.ErrAuthenticationFailed)
	}

	accessToken, refreshToken, err := s.IssueSession(ctx, user)
	if err != nil {
		return nil, "", "", err
	}

	return user, accessToken, refreshToken, nil
}

func (s *authService) RefreshTokens(ctx context.Context, refreshToken string) (*models.User, string, string, error) {
	user, err := s.userRepo.GetUserByRefreshToken(ctx, refreshToken)
	if err != nil {
		return nil, "", "", fmt.Errorf("недействительный refresh token: %w", err)
	}

	accessToken, newRefreshToken, err := s.IssueSession(ctx, user)
	if err != nil {
		return nil, "", "", err
	}

	return user, accessToken, newRefreshToken, nil
}

// IssueSession mints the access/refresh pair, stores the refresh token on
// the user row and stamps last_login.
func (s *authService) IssueSession(ctx context.Context, user *models.User) (string, string, error) {
	accessToken, err := s.generateAccessToken(user)
	if err != nil {
		return "", "", fmt.Errorf("ошибка генерации access token: %w", err)
	}

	refreshToken := uuid.New().String()
	refreshTokenExpiry := time.Now().Add(s.cfg.RefreshTokenDuration)

	err = s.userRepo.UpdateRefreshToken(ctx, user.UserID, refreshToken, refreshTokenExpiry)
	if err != nil {
		return "", "", fmt.Errorf("ошибка сохранения refresh token: %w", err)
	}

	if err := s.userRepo.UpdateLastLogin(ctx, user.UserID); err != nil {
		return "", "", fmt.Errorf("ошибка обновления last_login: %w", err)
	}

	return accessToken, refreshToken, nil
}

func (s *authService) generateAccessToken(user *models.User) (string, error) {
	claims := jwt.MapClaims{
		"user_id":  user.UserID,
		"email":    user.Email,
		"role":     user.Role,
		"is_staff": user.IsStaff,
		"exp":      time.Now().Add(s.cfg.AccessTokenDuration).Unix(),
		"iat":      time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString([]byte(s.cfg.JWTSecretKey))
	if err != nil {
		return "", fmt.Errorf("ошибка подписи токена: %w", err)
	}

	return tokenString, nil
}
