package repository

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	"newsportal/internal/models"
)

type UserRepository interface {
	CreateUser(ctx context.Context, user *models.User, password string) error
	GetUserByID(ctx context.Context, userID string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	ListUsers(ctx context.Context) ([]models.User, error)
	UpdateUser(ctx context.Context, user *models.User) error
	UpdatePassword(ctx context.Context, userID, passwordHash string) error
	ActivateUser(ctx context.Context, userID string, inviteAccepted bool) error
	UpdateLastLogin(ctx context.Context, userID string) error
	DeleteUser(ctx context.Context, userID string) error
	VerifyPassword(ctx context.Context, email, password string) (*models.User, error)
	UpdateRefreshToken(ctx context.Context, userID, refreshToken string, expiryTime time.Time) error
	GetUserByRefreshToken(ctx context.Context, refreshToken string) (*models.User, error)
}

type CompanyRepository interface {
	Create(ctx context.Context, company *models.Company) error
	GetByID(ctx context.Context, companyID string) (*models.Company, error)
	List(ctx context.Context) ([]models.Company, error)
	ListSelection(ctx context.Context) ([]models.SelectionCompany, error)
	Update(ctx context.Context, company *models.Company) error
	UpdateLogo(ctx context.Context, companyID, objectPath string) error
	Delete(ctx context.Context, companyID string) error
}

// PostFilter AND-combines the optional staff listing filters.
type PostFilter struct {
	Title     string
	Text      string
	CompanyID string
	Topic     string
}

type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, postID string) (*models.Post, error)
	GetByIDAny(ctx context.Context, postID string) (*models.Post, error)
	List(ctx context.Context, filter PostFilter) ([]models.Post, error)
	ListByAuthor(ctx context.Context, authorID string) ([]models.Post, error)
	ListByCompany(ctx context.Context, companyID string) ([]models.Post, error)
	Update(ctx context.Context, post *models.Post) error
	SoftDelete(ctx context.Context, postID string) error
}

type InviteTokenRepository interface {
	Create(ctx context.Context, token *models.InviteToken) error
	GetActiveByValue(ctx context.Context, value string) (*models.InviteToken, error)
	Consume(ctx context.Context, tokenID string) error
}

type StatsRepository interface {
	CountEntities(ctx context.Context) (*models.PortalStats, error)
}

type Repository struct {
	User        UserRepository
	Company     CompanyRepository
	Post        PostRepository
	InviteToken InviteTokenRepository
	Stats       StatsRepository
}

func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{
		User:        NewUserRepository(db),
		Company:     NewCompanyRepository(db),
		Post:        NewPostRepository(db),
		InviteToken: NewInviteTokenRepository(db),
		Stats:       NewStatsRepository(db),
	}
}
