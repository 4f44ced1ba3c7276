package option

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/wellmio-booking/internal/domain"
)

func newRepo(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return NewRepository(db), mock
}

func TestRepository_GetByName(t *testing.T) {
	const query = "SELECT id, name, value, created_at FROM booking_options WHERE name = $1"
	id := uuid.New()
	createdAt := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	t.Run("found", func(t *testing.T) {
		repo, mock := newRepo(t)
		mock.ExpectQuery(regexp.QuoteMeta(query)).
			WithArgs(domain.OptionPrice).
			WillReturnRows(sqlmock.NewRows([]string{"id", "name", "value", "created_at"}).
				AddRow(id.String(), "price", "150", createdAt))

		opt, err := repo.GetByName(context.Background(), domain.OptionPrice)

		require.NoError(t, err)
		assert.Equal(t, id, opt.ID)
		assert.Equal(t, "150", opt.Value)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing", func(t *testing.T) {
		repo, mock := newRepo(t)
		mock.ExpectQuery(regexp.QuoteMeta(query)).
			WithArgs(domain.OptionTimezone).
			WillReturnError(sql.ErrNoRows)

		_, err := repo.GetByName(context.Background(), domain.OptionTimezone)

		assert.ErrorIs(t, err, ErrOptionNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRepository_Update_NotFound(t *testing.T) {
	repo, mock := newRepo(t)
	id := uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta(
		"UPDATE booking_options SET name = $1, value = $2 WHERE id = $3 RETURNING id, name, value, created_at")).
		WithArgs(domain.OptionPrice, "50.00", id).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.Update(context.Background(), id, domain.OptionPrice, "50.00")

	assert.ErrorIs(t, err, ErrOptionNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
