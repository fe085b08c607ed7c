package service

import (
	"newsportal/internal/config"
	"newsportal/internal/mailer"
	"newsportal/internal/permissions"
	"newsportal/internal/queue"
	"newsportal/internal/repository"
	"newsportal/internal/storage"
)

type Service struct {
	Auth    AuthService
	Invite  InviteService
	User    UserService
	Company CompanyService
	Post    PostService
	Stats   StatsService
	Tokens  TokenService
}

func NewService(rep *repository.Repository, cfg *config.Config, st storage.Storage, q queue.Queue, m mailer.Mailer) *Service {
	evaluator := permissions.NewEvaluator()
	tokens := NewTokenService(cfg)
	auth := NewAuthService(rep.User, rep.Company, cfg)
	invites := NewInviteService(rep.User, rep.InviteToken, tokens, auth, evaluator, q, m, cfg)

	return &Service{
		Auth:    auth,
		Invite:  invites,
		User:    NewUserService(rep.User, invites, evaluator, cfg),
		Company: NewCompanyService(rep.Company, st, evaluator, cfg),
		Post:    NewPostService(rep.Post, evaluator, cfg),
		Stats:   NewStatsService(rep.Stats, evaluator),
		Tokens:  tokens,
	}
}
