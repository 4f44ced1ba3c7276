package options

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/m04kA/wellmio-booking/internal/domain"
	optionRepo "github.com/m04kA/wellmio-booking/internal/infra/storage/option"
	"github.com/m04kA/wellmio-booking/internal/service/options/models"
)

// Service сервис настроек бронирования
type Service struct {
	repo            OptionRepository
	txManager       TransactionManager
	defaultLocation *time.Location
	logger          Logger
}

// NewService создает новый экземпляр сервиса настроек.
// defaultLocation используется, когда настройка timezone отсутствует или некорректна.
func NewService(
	repo OptionRepository,
	txManager TransactionManager,
	defaultLocation *time.Location,
	logger Logger,
) *Service {
	if defaultLocation == nil {
		defaultLocation = time.UTC
	}
	return &Service{
		repo:            repo,
		txManager:       txManager,
		defaultLocation: defaultLocation,
		logger:          logger,
	}
}

// List возвращает все настройки, отсортированные по имени
func (s *Service) List(ctx context.Context) ([]*models.Option, error) {
	opts, err := s.repo.List(ctx)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: fetched %d options", len(opts))
	return models.FromDomainOptionList(opts), nil
}

// Upsert создает или обновляет настройку.
// Поиск сначала по ID (обновляются имя и значение), затем по имени (обновляется значение),
// иначе создаётся новая запись с переданным ID.
func (s *Service) Upsert(ctx context.Context, req *models.UpsertRequest) (*models.Option, error) {
	s.logger.Info("Upsert: id=%s, name=%s", req.ID, req.Name)

	id, err := uuid.Parse(req.ID)
	if err != nil {
		s.logger.Warn("Upsert: invalid id=%q", req.ID)
		return nil, fmt.Errorf("%w: id must be a UUID", ErrInvalidInput)
	}

	name := domain.OptionName(req.Name)
	if err := validateOption(name, req.Value); err != nil {
		s.logger.Warn("Upsert: validation failed for name=%s: %v", req.Name, err)
		return nil, err
	}

	var result *domain.BookingOption

	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		byName, err := s.repo.GetByName(txCtx, name)
		if err != nil && !errors.Is(err, optionRepo.ErrOptionNotFound) {
			return fmt.Errorf("%w: Upsert - get by name: %v", ErrInternal, err)
		}

		existing, err := s.repo.GetByID(txCtx, id)
		switch {
		case err == nil:
			if byName != nil && byName.ID != existing.ID {
				return ErrNameTaken
			}
			result, err = s.repo.Update(txCtx, existing.ID, name, req.Value)
		case errors.Is(err, optionRepo.ErrOptionNotFound) && byName != nil:
			result, err = s.repo.Update(txCtx, byName.ID, name, req.Value)
		case errors.Is(err, optionRepo.ErrOptionNotFound):
			result, err = s.repo.Create(txCtx, &domain.BookingOption{ID: id, Name: name, Value: req.Value})
		default:
			return fmt.Errorf("%w: Upsert - get by id: %v", ErrInternal, err)
		}

		if err != nil {
			return fmt.Errorf("%w: Upsert - save: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrNameTaken) {
			s.logger.Warn("Upsert: name=%s already used by another option", req.Name)
		} else {
			s.logger.Error("Upsert: failed for id=%s: %v", req.ID, err)
		}
		return nil, err
	}

	s.logger.Info("Upsert: saved option id=%s name=%s", result.ID, result.Name)
	return models.FromDomainOption(result), nil
}

// EnsureDefaults создает отсутствующие настройки со значениями по умолчанию
func (s *Service) EnsureDefaults(ctx context.Context) error {
	for _, name := range domain.OptionNames {
		value, ok := domain.DefaultOptions[name]
		if !ok {
			continue
		}

		_, err := s.repo.GetByName(ctx, name)
		if err == nil {
			continue
		}
		if !errors.Is(err, optionRepo.ErrOptionNotFound) {
			return fmt.Errorf("%w: EnsureDefaults - get %s: %v", ErrInternal, name, err)
		}

		if _, err := s.repo.Create(ctx, &domain.BookingOption{ID: uuid.New(), Name: name, Value: value}); err != nil {
			return fmt.Errorf("%w: EnsureDefaults - create %s: %v", ErrInternal, name, err)
		}
		s.logger.Info("EnsureDefaults: created %s=%s", name, value)
	}
	return nil
}

// Pricing возвращает цену сеанса и валюту с учетом значений по умолчанию
func (s *Service) Pricing(ctx context.Context) (*models.Pricing, error) {
	priceValue, err := s.valueOrDefault(ctx, domain.OptionPrice)
	if err != nil {
		return nil, err
	}
	currency, err := s.valueOrDefault(ctx, domain.OptionCurrency)
	if err != nil {
		return nil, err
	}

	amount, err := decimal.NewFromString(strings.TrimSpace(priceValue))
	if err != nil || !amount.IsPositive() {
		s.logger.Warn("Pricing: stored price %q is invalid, using default", priceValue)
		amount = decimal.RequireFromString(domain.DefaultPrice)
	}

	return &models.Pricing{
		Amount:   amount,
		Currency: strings.ToUpper(strings.TrimSpace(currency)),
	}, nil
}

// Location возвращает часовой пояс, в котором интерпретируются календарные даты
func (s *Service) Location(ctx context.Context) *time.Location {
	opt, err := s.repo.GetByName(ctx, domain.OptionTimezone)
	if err != nil {
		if !errors.Is(err, optionRepo.ErrOptionNotFound) {
			s.logger.Warn("Location: failed to read timezone option: %v", err)
		}
		return s.defaultLocation
	}

	loc, err := time.LoadLocation(strings.TrimSpace(opt.Value))
	if err != nil {
		s.logger.Warn("Location: stored timezone %q is invalid: %v", opt.Value, err)
		return s.defaultLocation
	}
	return loc
}

// BookingWindowDays горизонт бронирования в днях; 0 означает без ограничения
func (s *Service) BookingWindowDays(ctx context.Context) (int, error) {
	return s.positiveInt(ctx, domain.OptionBookingWindowDays)
}

// DurationMinutes длительность сеанса в минутах
func (s *Service) DurationMinutes(ctx context.Context) (int, error) {
	value, err := s.valueOrDefault(ctx, domain.OptionDurationMinutes)
	if err != nil {
		return 0, err
	}
	minutes, err := parseCount(value)
	if err != nil {
		s.logger.Warn("DurationMinutes: stored value %q is invalid, using default", value)
		minutes, _ = strconv.Atoi(domain.DefaultDurationMinutes)
	}
	return minutes, nil
}

func (s *Service) positiveInt(ctx context.Context, name domain.OptionName) (int, error) {
	opt, err := s.repo.GetByName(ctx, name)
	if errors.Is(err, optionRepo.ErrOptionNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("%w: read %s: %v", ErrInternal, name, err)
	}

	n, err := parseCount(opt.Value)
	if err != nil {
		s.logger.Warn("positiveInt: stored %s=%q is invalid, ignoring", name, opt.Value)
		return 0, nil
	}
	return n, nil
}

func (s *Service) valueOrDefault(ctx context.Context, name domain.OptionName) (string, error) {
	opt, err := s.repo.GetByName(ctx, name)
	if errors.Is(err, optionRepo.ErrOptionNotFound) {
		return domain.DefaultOptions[name], nil
	}
	if err != nil {
		return "", fmt.Errorf("%w: read %s: %v", ErrInternal, name, err)
	}
	return opt.Value, nil
}
