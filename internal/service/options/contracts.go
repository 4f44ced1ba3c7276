package options

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/wellmio-booking/internal/domain"
)

// OptionRepository интерфейс репозитория настроек
type OptionRepository interface {
	List(ctx context.Context) ([]*domain.BookingOption, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.BookingOption, error)
	GetByName(ctx context.Context, name domain.OptionName) (*domain.BookingOption, error)
	Create(ctx context.Context, opt *domain.BookingOption) (*domain.BookingOption, error)
	Update(ctx context.Context, id uuid.UUID, name domain.OptionName, value string) (*domain.BookingOption, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
