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

type inviteTokenRepository struct {
	db *sqlx.DB
}

func NewInviteTokenRepository(db *sqlx.DB) InviteTokenRepository {
	return &inviteTokenRepository{db: db}
}

func (r *inviteTokenRepository) Create(ctx context.Context, token *models.InviteToken) error {
	if token.TokenID == "" {
		token.TokenID = uuid.New().String()
	}
	if token.Value == "" {
		token.Value = uuid.New().String()
	}

	now := time.Now()
	if token.CreatedAt.IsZero() {
		token.CreatedAt = now
	}
	// expiry is computed per row at creation time
	if token.ExpDate.IsZero() {
		token.ExpDate = now.Add(30 * 24 * time.Hour)
	}
	token.Status = true

	query := `
		INSERT INTO invite_tokens (token_id, value, status, user_id, created_at, exp_date)
		VALUES (:token_id, :value, :status, :user_id, :created_at, :exp_date)
	`

	_, err := r.db.NamedExecContext(ctx, query, token)
	if err != nil {
		return fmt.Errorf("ошибка при создании invite-токена: %w", err)
	}

	return nil
}

// GetActiveByValue returns the token only while it is consumable:
// status=true and not expired.
func (r *inviteTokenRepository) GetActiveByValue(ctx context.Context, value string) (*models.InviteToken, error) {
	var token models.InviteToken

	query := `SELECT * FROM invite_tokens WHERE value = $1 AND status = TRUE AND exp_date > NOW()`

	err := r.db.GetContext(ctx, &token, query, value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("invite-токен не существует или истек: %w", apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("ошибка при получении invite-токена: %w", err)
	}

	return &token, nil
}

// Consume invalidates the token: status=false, exp_date=now. The row is
// kept, single use is enforced by this transition.
func (r *inviteTokenRepository) Consume(ctx context.Context, tokenID string) error {
	query := `UPDATE invite_tokens SET status = FALSE, exp_date = NOW() WHERE token_id = $1 AND status = TRUE`

	result, err := r.db.ExecContext(ctx, query, tokenID)
	if err != nil {
		return fmt.Errorf("ошибка при погашении invite-токена: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("ошибка при проверке обновленных строк: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("invite-токен %s уже погашен: %w", tokenID, apperrors.ErrNotFound)
	}

	return nil
}
