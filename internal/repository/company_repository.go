package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"newsportal/internal/apperrors"
	"newsportal/internal/models"
)

type companyRepository struct {
	db *sqlx.DB
}

func NewCompanyRepository(db *sqlx.DB) CompanyRepository {
	return &companyRepository{db: db}
}

func (r *companyRepository) Create(ctx context.Context, company *models.Company) error {
	if company.CompanyID == "" {
		company.CompanyID = uuid.New().String()
	}
	if company.DateCreated.IsZero() {
		company.DateCreated = time.Now()
	}

	query := `
		INSERT INTO companies (company_id, name, url, address, date_created, logo)
		VALUES (:company_id, :name, :url, :address, :date_created, :logo)
	`

	_, err := r.db.NamedExecContext(ctx, query, company)
	if err != nil {
		return fmt.Errorf("ошибка при создании компании: %w", err)
	}

	return nil
}

func (r *companyRepository) GetByID(ctx context.Context, companyID string) (*models.Company, error) {
	var company models.Company

	query := `SELECT * FROM companies WHERE company_id = $1`

	err := r.db.GetContext(ctx, &company, query, companyID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("компания с ID %s: %w", companyID, apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("ошибка при получении компании: %w", err)
	}

	return &company, nil
}

func (r *companyRepository) List(ctx context.Context) ([]models.Company, error) {
	var companies []models.Company

	query := `SELECT * FROM companies ORDER BY name`

	err := r.db.SelectContext(ctx, &companies, query)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении списка компаний: %w", err)
	}

	return companies, nil
}

// ListSelection assembles the nested companies -> users -> posts view in
// three queries, soft-deleted posts excluded.
func (r *companyRepository) ListSelection(ctx context.Context) ([]models.SelectionCompany, error) {
	var companies []models.SelectionCompany

	err := r.db.SelectContext(ctx, &companies, `SELECT company_id, name, url, address FROM companies ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении списка компаний: %w", err)
	}

	var users []struct {
		models.SelectionUser
		CompanyID string `db:"company_id"`
	}
	err = r.db.SelectContext(ctx, &users, `SELECT user_id, email, first_name, last_name, company_id FROM users WHERE company_id IS NOT NULL ORDER BY email`)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении пользователей компаний: %w", err)
	}

	var posts []models.Post
	err = r.db.SelectContext(ctx, &posts, `SELECT * FROM posts WHERE is_deleted = FALSE ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении постов: %w", err)
	}

	postsByAuthor := make(map[string][]models.Post)
	for _, post := range posts {
		postsByAuthor[post.AuthorID] = append(postsByAuthor[post.AuthorID], post)
	}

	usersByCompany := make(map[string][]models.SelectionUser)
	for _, user := range users {
		u := user.SelectionUser
		u.Posts = postsByAuthor[u.UserID]
		if u.Posts == nil {
			u.Posts = []models.Post{}
		}
		usersByCompany[user.CompanyID] = append(usersByCompany[user.CompanyID], u)
	}

	for i := range companies {
		companies[i].Users = usersByCompany[companies[i].CompanyID]
		if companies[i].Users == nil {
			companies[i].Users = []models.SelectionUser{}
		}
	}

	return companies, nil
}

func (r *companyRepository) Update(ctx context.Context, company *models.Company) error {
	query := `
		UPDATE companies SET name = :name, url = :url, address = :address
		WHERE company_id = :company_id
	`

	result, err := r.db.NamedExecContext(ctx, query, company)
	if err != nil {
		return fmt.Errorf("ошибка при обновлении компании: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("ошибка при проверке обновленных строк: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("компания с ID %s: %w", company.CompanyID, apperrors.ErrNotFound)
	}

	return nil
}

func (r *companyRepository) UpdateLogo(ctx context.Context, companyID, objectPath string) error {
	query := `UPDATE companies SET logo = $1 WHERE company_id = $2`

	result, err := r.db.ExecContext(ctx, query, objectPath, companyID)
	if err != nil {
		return fmt.Errorf("ошибка при обновлении логотипа: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("ошибка при проверке обновленных строк: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("компания с ID %s: %w", companyID, apperrors.ErrNotFound)
	}

	return nil
}

// Delete removes the company. Users keep their rows, company_id becomes
// NULL via ON DELETE SET NULL.
func (r *companyRepository) Delete(ctx context.Context, companyID string) error {
	query := `DELETE FROM companies WHERE company_id = $1`

	result, err := r.db.ExecContext(ctx, query, companyID)
	if err != nil {
		return fmt.Errorf("ошибка при удалении компании: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("ошибка при проверке удаленных строк: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("компания с ID %s: %w", companyID, apperrors.ErrNotFound)
	}

	return nil
}
