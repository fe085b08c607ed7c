package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"newsportal/internal/apperrors"
	"newsportal/internal/models"
)

type postRepository struct {
	db *sqlx.DB
}

func NewPostRepository(db *sqlx.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	if post.PostID == "" {
		post.PostID = uuid.New().String()
	}

	now := time.Now()
	post.CreatedAt = now
	post.UpdatedAt = now

	query := `
		INSERT INTO posts (post_id, title, text, topic, author_id, is_deleted, created_at, updated_at)
		VALUES (:post_id, :title, :text, :topic, :author_id, :is_deleted, :created_at, :updated_at)
	`

	_, err := r.db.NamedExecContext(ctx, query, post)
	if err != nil {
		return fmt.Errorf("ошибка при создании поста: %w", err)
	}

	return nil
}

// GetByID skips soft-deleted rows, like every default query here.
func (r *postRepository) GetByID(ctx context.Context, postID string) (*models.Post, error) {
	var post models.Post

	query := `SELECT * FROM posts WHERE post_id = $1 AND is_deleted = FALSE`

	err := r.db.GetContext(ctx, &post, query, postID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("пост с ID %s: %w", postID, apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("ошибка при получении поста: %w", err)
	}

	return &post, nil
}

// GetByIDAny returns the row even when it is soft-deleted.
func (r *postRepository) GetByIDAny(ctx context.Context, postID string) (*models.Post, error) {
	var post models.Post

	query := `SELECT * FROM posts WHERE post_id = $1`

	err := r.db.GetContext(ctx, &post, query, postID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("пост с ID %s: %w", postID, apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("ошибка при получении поста: %w", err)
	}

	return &post, nil
}

// List applies the staff filters: title exact, text substring, company,
// topic. Empty filter fields are skipped.
func (r *postRepository) List(ctx context.Context, filter PostFilter) ([]models.Post, error) {
	query := `SELECT posts.* FROM posts`
	conditions := []string{"posts.is_deleted = FALSE"}
	args := []interface{}{}

	if filter.CompanyID != "" {
		query += ` JOIN users ON users.user_id = posts.author_id`
		args = append(args, filter.CompanyID)
		conditions = append(conditions, "users.company_id = $"+strconv.Itoa(len(args)))
	}
	if filter.Title != "" {
		args = append(args, filter.Title)
		conditions = append(conditions, "posts.title = $"+strconv.Itoa(len(args)))
	}
	if filter.Text != "" {
		args = append(args, "%"+filter.Text+"%")
		conditions = append(conditions, "posts.text LIKE $"+strconv.Itoa(len(args)))
	}
	if filter.Topic != "" {
		args = append(args, filter.Topic)
		conditions = append(conditions, "posts.topic = $"+strconv.Itoa(len(args)))
	}

	query += " WHERE " + strings.Join(conditions, " AND ") + " ORDER BY posts.created_at"

	var posts []models.Post
	err := r.db.SelectContext(ctx, &posts, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении списка постов: %w", err)
	}

	return posts, nil
}

func (r *postRepository) ListByAuthor(ctx context.Context, authorID string) ([]models.Post, error) {
	var posts []models.Post

	query := `SELECT * FROM posts WHERE author_id = $1 AND is_deleted = FALSE ORDER BY created_at`

	err := r.db.SelectContext(ctx, &posts, query, authorID)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении постов пользователя: %w", err)
	}

	return posts, nil
}

// ListByCompany returns the posts of every author in the company.
func (r *postRepository) ListByCompany(ctx context.Context, companyID string) ([]models.Post, error) {
	var posts []models.Post

	query := `SELECT posts.* FROM posts JOIN users ON users.user_id = posts.author_id WHERE users.company_id = $1 AND posts.is_deleted = FALSE ORDER BY posts.created_at`

	err := r.db.SelectContext(ctx, &posts, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении постов компании: %w", err)
	}

	return posts, nil
}

func (r *postRepository) Update(ctx context.Context, post *models.Post) error {
	post.UpdatedAt = time.Now()

	query := `
		UPDATE posts SET title = :title, text = :text, topic = :topic, updated_at = :updated_at
		WHERE post_id = :post_id AND is_deleted = FALSE
	`

	result, err := r.db.NamedExecContext(ctx, query, post)
	if err != nil {
		return fmt.Errorf("ошибка при обновлении поста: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("ошибка при проверке обновленных строк: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("пост с ID %s: %w", post.PostID, apperrors.ErrNotFound)
	}

	return nil
}

// SoftDelete marks the row hidden, keeping it in storage.
func (r *postRepository) SoftDelete(ctx context.Context, postID string) error {
	query := `UPDATE posts SET is_deleted = TRUE, updated_at = CURRENT_TIMESTAMP WHERE post_id = $1 AND is_deleted = FALSE`

	result, err := r.db.ExecContext(ctx, query, postID)
	if err != nil {
		return fmt.Errorf("ошибка при удалении поста: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("ошибка при проверке удаленных строк: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("пост с ID %s: %w", postID, apperrors.ErrNotFound)
	}

	return nil
}
