package option

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/m04kA/wellmio-booking/internal/domain"
	"github.com/m04kA/wellmio-booking/pkg/dbmetrics"
	"github.com/m04kA/wellmio-booking/pkg/psqlbuilder"
)

const returningColumns = "RETURNING id, name, value, created_at"

var optionColumns = []string{"id", "name", "value", "created_at"}

// Repository репозиторий настроек бронирования
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория настроек
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// List возвращает все настройки, отсортированные по имени
func (r *Repository) List(ctx context.Context) ([]*domain.BookingOption, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(optionColumns...).
		From("booking_options").
		OrderBy("name ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute select: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	options := make([]*domain.BookingOption, 0)
	for rows.Next() {
		opt, err := scanOption(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan option: %v", ErrScanRow, err)
		}
		options = append(options, opt)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %v", ErrScanRow, err)
	}

	return options, nil
}

// GetByID получает настройку по ID
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*domain.BookingOption, error) {
	return r.getOne(ctx, "GetByID", squirrel.Eq{"id": id})
}

// GetByName получает настройку по имени
func (r *Repository) GetByName(ctx context.Context, name domain.OptionName) (*domain.BookingOption, error) {
	return r.getOne(ctx, "GetByName", squirrel.Eq{"name": name})
}

// Create сохраняет новую настройку с ID, заданным вызывающим кодом
func (r *Repository) Create(ctx context.Context, opt *domain.BookingOption) (*domain.BookingOption, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("booking_options").
		Columns("id", "name", "value").
		Values(opt.ID, opt.Name, opt.Value).
		Suffix(returningColumns).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	created, err := scanOption(executor.QueryRowContext(ctx, query, args...))
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return created, nil
}

// Update перезаписывает имя и значение настройки
func (r *Repository) Update(ctx context.Context, id uuid.UUID, name domain.OptionName, value string) (*domain.BookingOption, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("booking_options").
		Set("name", name).
		Set("value", value).
		Where(squirrel.Eq{"id": id}).
		Suffix(returningColumns).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	updated, err := scanOption(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrOptionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	return updated, nil
}

func (r *Repository) getOne(ctx context.Context, op string, where squirrel.Eq) (*domain.BookingOption, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(optionColumns...).
		From("booking_options").
		Where(where).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	opt, err := scanOption(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrOptionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan option: %v", ErrScanRow, op, err)
	}

	return opt, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanOption(row rowScanner) (*domain.BookingOption, error) {
	var opt domain.BookingOption
	var createdAt sql.NullTime

	if err := row.Scan(&opt.ID, &opt.Name, &opt.Value, &createdAt); err != nil {
		return nil, err
	}

	opt.CreatedAt = createdAt.Time
	return &opt, nil
}
