package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"newsportal/internal/apperrors"
	"newsportal/internal/config"
	"newsportal/internal/mailer"
	"newsportal/internal/models"
	"newsportal/internal/permissions"
	"newsportal/internal/queue"
	"newsportal/internal/repository"
)

// InviteResult is the per-email outcome of an invite batch. A duplicate
// email fails its own entry without aborting the rest.
type InviteResult struct {
	Email string `json:"email"`
	Sent  bool   `json:"sent"`
	Error string `json:"error,omitempty"`
}

type AcceptInviteRequest struct {
	Password    string
	FirstName   string
	LastName    string
	PhoneNumber string
}

type InviteService interface {
	InviteUsers(ctx context.Context, emails []string, inviter *models.User) ([]InviteResult, error)
	AcceptInvite(ctx context.Context, tokenValue string, req AcceptInviteRequest) (*models.User, error)
	RequestPasswordReset(ctx context.Context, email, newPassword string) error
	ConfirmPasswordReset(ctx context.Context, tokenValue string) (*models.User, string, string, error)
	ActivateAccount(ctx context.Context, tokenValue string) (*models.User, string, string, error)
	SendActivationEmail(ctx context.Context, user *models.User) error
}

type inviteService struct {
	userRepo  repository.UserRepository
	tokenRepo repository.InviteTokenRepository
	tokens    TokenService
	auth      AuthService
	evaluator *permissions.Evaluator
	queue     queue.Queue
	mailer    mailer.Mailer
	cfg       *config.Config
}

func NewInviteService(
	userRepo repository.UserRepository,
	tokenRepo repository.InviteTokenRepository,
	tokens TokenService,
	auth AuthService,
	evaluator *permissions.Evaluator,
	q queue.Queue,
	m mailer.Mailer,
	cfg *config.Config,
) InviteService {
	return &inviteService{
		userRepo:  userRepo,
		tokenRepo: tokenRepo,
		tokens:    tokens,
		auth:      auth,
		evaluator: evaluator,
		queue:     q,
		mailer:    m,
		cfg:       cfg,
	}
}

// emailJob carries one rendered-and-sent email through the queue.
type emailJob struct {
	mailer   mailer.Mailer
	to       string
	subject  string
	template string
	data     mailer.TemplateData
}

func (j *emailJob) Name() string { return "email:" + j.template }

func (j *emailJob) Run(ctx context.Context) error {
	return j.mailer.Send(j.to, j.subject, j.template, j.data)
}

// InviteUsers creates an inactive user and a fresh single-use token per
// email, scoped to the inviter's company. The batch never aborts: each
// email reports its own result.
func (s *inviteService) InviteUsers(ctx context.Context, emails []string, inviter *models.User) ([]InviteResult, error) {
	if !s.evaluator.Allows(inviter, permissions.ActionManage) {
		return nil, fmt.Errorf("приглашение пользователей доступно только staff: %w", apperrors.ErrForbidden)
	}

	results := make([]InviteResult, 0, len(emails))

	for _, email := range emails {
		result := InviteResult{Email: email}

		user := &models.User{
			Email:     email,
			Role:      models.RoleClient,
			IsActive:  false,
			CompanyID: inviter.CompanyID,
		}

		err := s.userRepo.CreateUser(ctx, user, "")
		if err != nil {
			if errors.Is(err, apperrors.ErrConflict) {
				result.Error = "email уже зарегистрирован"
			} else {
				result.Error = "не удалось создать пользователя"
				log.Printf("Ошибка при создании приглашенного пользователя %s: %v", email, err)
			}
			results = append(results, result)
			continue
		}

		token := &models.InviteToken{
			Value:   uuid.New().String(),
			UserID:  user.UserID,
			ExpDate: time.Now().Add(s.cfg.InviteTokenDuration),
		}

		if err := s.tokenRepo.Create(ctx, token); err != nil {
			result.Error = "не удалось создать invite-токен"
			log.Printf("Ошибка при создании invite-токена для %s: %v", email, err)
			results = append(results, result)
			continue
		}

		s.enqueueEmail(user, "Приглашение к сотрудничеству", "invite_email.html", token.Value)

		result.Sent = true
		results = append(results, result)
	}

	return results, nil
}

// AcceptInvite consumes the token exactly once: profile and password are
// applied, the account becomes active, the token is invalidated.
func (s *inviteService) AcceptInvite(ctx context.Context, tokenValue string, req AcceptInviteRequest) (*models.User, error) {
	token, err := s.tokenRepo.GetActiveByValue(ctx, tokenValue)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetUserByID(ctx, token.UserID)
	if err != nil {
		return nil, err
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

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("ошибка при хешировании пароля: %w", err)
	}

	if err := s.userRepo.UpdatePassword(ctx, user.UserID, string(hashedPassword)); err != nil {
		return nil, err
	}

	if err := s.userRepo.ActivateUser(ctx, user.UserID, true); err != nil {
		return nil, err
	}

	if err := s.tokenRepo.Consume(ctx, token.TokenID); err != nil {
		return nil, err
	}

	user.IsActive = true
	user.InviteAccepted = true
	return user, nil
}

// RequestPasswordReset does not touch the user: the new hash travels
// inside the signed token until confirmation.
func (s *inviteService) RequestPasswordReset(ctx context.Context, email, newPassword string) error {
	user, err := s.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		return err
	}

	if !user.IsActive {
		return fmt.Errorf("пользователь %s не активен: %w", email, apperrors.ErrNotFound)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("ошибка при хешировании пароля: %w", err)
	}

	tokenString, err := s.tokens.IssueToken(TokenClaims{
		UserID:   user.UserID,
		Password: string(hashedPassword),
	}, s.cfg.ResetTokenDuration)
	if err != nil {
		return err
	}

	s.enqueueEmail(user, "Смена пароля", "reset_password.html", tokenString)

	return nil
}

// ConfirmPasswordReset applies the hash embedded in the token and logs
// the user in right away.
func (s *inviteService) ConfirmPasswordReset(ctx context.Context, tokenValue string) (*models.User, string, string, error) {
	claims, err := s.tokens.VerifyToken(tokenValue)
	if err != nil {
		return nil, "", "", err
	}

	if claims.Password == "" {
		return nil, "", "", fmt.Errorf("в токене отсутствует пароль: %w", apperrors.ErrInvalidToken)
	}

	user, err := s.userRepo.GetUserByID(ctx, claims.UserID)
	if err != nil {
		return nil, "", "", err
	}

	if err := s.userRepo.UpdatePassword(ctx, user.UserID, claims.Password); err != nil {
		return nil, "", "", err
	}

	accessToken, refreshToken, err := s.auth.IssueSession(ctx, user)
	if err != nil {
		return nil, "", "", err
	}

	return user, accessToken, refreshToken, nil
}

// ActivateAccount flips the account active and issues a session, so the
// activation link lands the user in a logged-in state.
func (s *inviteService) ActivateAccount(ctx context.Context, tokenValue string) (*models.User, string, string, error) {
	claims, err := s.tokens.VerifyToken(tokenValue)
	if err != nil {
		return nil, "", "", err
	}

	user, err := s.userRepo.GetUserByID(ctx, claims.UserID)
	if err != nil {
		return nil, "", "", err
	}

	if err := s.userRepo.ActivateUser(ctx, user.UserID, false); err != nil {
		return nil, "", "", err
	}

	user.IsActive = true

	accessToken, refreshToken, err := s.auth.IssueSession(ctx, user)
	if err != nil {
		return nil, "", "", err
	}

	return user, accessToken, refreshToken, nil
}

// SendActivationEmail is used when staff creates an account directly.
func (s *inviteService) SendActivationEmail(ctx context.Context, user *models.User) error {
	tokenString, err := s.tokens.IssueToken(TokenClaims{UserID: user.UserID}, s.cfg.ActivateTokenDuration)
	if err != nil {
		return err
	}

	s.enqueueEmail(user, "Активация аккаунта", "acc_activate_email.html", tokenString)

	return nil
}

// enqueueEmail is fire-and-forget: a dispatch failure is the queue's to
// log, the HTTP caller never sees it.
func (s *inviteService) enqueueEmail(user *models.User, subject, template, token string) {
	job := &emailJob{
		mailer:   s.mailer,
		to:       user.Email,
		subject:  subject,
		template: template,
		data: mailer.TemplateData{
			User:   user.Email,
			Domain: s.cfg.Domain,
			Token:  token,
		},
	}

	if _, err := s.queue.Enqueue(job); err != nil {
		log.Printf("Не удалось поставить письмо в очередь для %s: %v", user.Email, err)
	}
}
