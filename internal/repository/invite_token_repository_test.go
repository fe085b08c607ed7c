package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"newsportal/internal/apperrors"
	"newsportal/internal/models"
)

func TestInviteTokenRepository_Create(t *testing.T) {
	sqlxDB, mock := newMockDB(t)
	repo := NewInviteTokenRepository(sqlxDB)
	ctx := context.Background()

	userID := uuid.New().String()

	t.Run("Значение и срок действия генерируются при создании", func(t *testing.T) {
		token := &models.InviteToken{UserID: userID}

		mock.ExpectExec(`
			INSERT INTO invite_tokens (token_id, value, status, user_id, created_at, exp_date)
			VALUES (?, ?, ?, ?, ?, ?)
		`).
			WithArgs(
				sqlmock.AnyArg(),
				sqlmock.AnyArg(),
				true,
				userID,
				sqlmock.AnyArg(),
				sqlmock.AnyArg(),
			).
			WillReturnResult(sqlmock.NewResult(1, 1))

		err := repo.Create(ctx, token)

		require.NoError(t, err)
		assert.NotEmpty(t, token.Value)
		assert.True(t, token.Status)
		// срок действия вычисляется на строку при создании
		expected := time.Now().Add(30 * 24 * time.Hour)
		assert.WithinDuration(t, expected, token.ExpDate, time.Minute)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestInviteTokenRepository_GetActiveByValue(t *testing.T) {
	sqlxDB, mock := newMockDB(t)
	repo := NewInviteTokenRepository(sqlxDB)
	ctx := context.Background()

	query := `SELECT * FROM invite_tokens WHERE value = $1 AND status = TRUE AND exp_date > NOW()`
	value := uuid.New().String()

	t.Run("Активный токен найден", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{"token_id", "value", "status", "user_id", "created_at", "exp_date"}).
			AddRow(uuid.New().String(), value, true, uuid.New().String(), time.Now(), time.Now().Add(time.Hour))

		mock.ExpectQuery(query).WithArgs(value).WillReturnRows(rows)

		token, err := repo.GetActiveByValue(ctx, value)

		require.NoError(t, err)
		assert.Equal(t, value, token.Value)
		assert.True(t, token.Status)
	})

	t.Run("Погашенный или просроченный токен не возвращается", func(t *testing.T) {
		mock.ExpectQuery(query).WithArgs(value).WillReturnError(sql.ErrNoRows)

		token, err := repo.GetActiveByValue(ctx, value)

		assert.Nil(t, token)
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})
}

func TestInviteTokenRepository_Consume(t *testing.T) {
	sqlxDB, mock := newMockDB(t)
	repo := NewInviteTokenRepository(sqlxDB)
	ctx := context.Background()

	query := `UPDATE invite_tokens SET status = FALSE, exp_date = NOW() WHERE token_id = $1 AND status = TRUE`
	tokenID := uuid.New().String()

	t.Run("Первое погашение проходит", func(t *testing.T) {
		mock.ExpectExec(query).
			WithArgs(tokenID).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.Consume(ctx, tokenID))
	})

	t.Run("Повторное погашение невозможно", func(t *testing.T) {
		mock.ExpectExec(query).
			WithArgs(tokenID).
			WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, repo.Consume(ctx, tokenID), apperrors.ErrNotFound)
	})
}
