package timeslots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/wellmio-booking/internal/domain"
	timeslotRepo "github.com/m04kA/wellmio-booking/internal/infra/storage/timeslot"
	"github.com/m04kA/wellmio-booking/internal/service/timeslots/models"
)

// Service реестр временных слотов
type Service struct {
	repo         SlotRepository
	cache        SlotCache
	location     LocationProvider
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр реестра слотов
func NewService(
	repo SlotRepository,
	cache SlotCache,
	location LocationProvider,
	logger Logger,
) *Service {
	if cache == nil {
		cache = NopCache{}
	}
	return &Service{
		repo:         repo,
		cache:        cache,
		location:     location,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// WithTimeProvider подменяет источник текущего времени
func (s *Service) WithTimeProvider(tp TimeProvider) *Service {
	s.timeProvider = tp
	return s
}

// ListAvailable возвращает свободные слоты, которые ещё не начались, по возрастанию времени начала.
// Если date задана, остаются слоты, начинающиеся в эту календарную дату
// в часовом поясе из настроек.
func (s *Service) ListAvailable(ctx context.Context, date *time.Time) ([]*models.Slot, error) {
	now := s.timeProvider.Now()

	if date == nil {
		slots, err := s.listUpcoming(ctx, now)
		if err != nil {
			return nil, err
		}
		return models.FromDomainSlotList(slots), nil
	}

	loc := s.location.Location(ctx)
	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, loc)
	to := dayStart.AddDate(0, 0, 1)
	from := dayStart
	if now.After(from) {
		from = now
	}

	slots, err := s.repo.ListAvailable(ctx, &from, &to)
	if err != nil {
		s.logger.Error("ListAvailable: repository error for date=%s: %v", dayStart.Format(domain.DateFormat), err)
		return nil, fmt.Errorf("%w: ListAvailable - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListAvailable: %d slots on %s (%s)", len(slots), dayStart.Format(domain.DateFormat), loc)
	return models.FromDomainSlotList(slots), nil
}

// listUpcoming читает полный список через кэш; начавшиеся слоты отбрасываются и из закэшированного списка
func (s *Service) listUpcoming(ctx context.Context, now time.Time) ([]*domain.TimeSlot, error) {
	cached, ok, err := s.cache.GetAvailable(ctx)
	if err != nil {
		s.logger.Warn("ListAvailable: cache read failed: %v", err)
	}
	if ok {
		return startingFrom(cached, now), nil
	}

	slots, err := s.repo.ListAvailable(ctx, &now, nil)
	if err != nil {
		s.logger.Error("ListAvailable: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListAvailable - repository error: %v", ErrInternal, err)
	}

	if err := s.cache.SetAvailable(ctx, slots); err != nil {
		s.logger.Warn("ListAvailable: cache write failed: %v", err)
	}

	s.logger.Info("ListAvailable: %d slots", len(slots))
	return slots, nil
}

func startingFrom(slots []*domain.TimeSlot, now time.Time) []*domain.TimeSlot {
	upcoming := make([]*domain.TimeSlot, 0, len(slots))
	for _, slot := range slots {
		if !slot.StartTime.Before(now) {
			upcoming = append(upcoming, slot)
		}
	}
	return upcoming
}

// Create создает свободный слот
func (s *Service) Create(ctx context.Context, start, end time.Time) (*models.Slot, error) {
	if !domain.ValidInterval(start, end) {
		s.logger.Warn("Create: invalid interval start=%s end=%s", start.Format(time.RFC3339), end.Format(time.RFC3339))
		return nil, ErrInvalidInterval
	}

	created, err := s.repo.Create(ctx, &domain.TimeSlot{
		ID:        uuid.New(),
		StartTime: start,
		EndTime:   end,
		Status:    domain.SlotAvailable,
	})
	if err != nil {
		s.logger.Error("Create: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.InvalidateCache(ctx)
	s.logger.Info("Create: slot id=%s created", created.ID)
	return models.FromDomainSlot(created), nil
}

// Update меняет границы слота; статус не меняется
func (s *Service) Update(ctx context.Context, id string, start, end time.Time) (*models.Slot, error) {
	slotID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("%w: slot id must be a UUID", ErrInvalidInput)
	}
	if !domain.ValidInterval(start, end) {
		s.logger.Warn("Update: invalid interval for slot id=%s", id)
		return nil, ErrInvalidInterval
	}

	updated, err := s.repo.Update(ctx, slotID, start, end)
	if err != nil {
		if errors.Is(err, timeslotRepo.ErrSlotNotFound) {
			s.logger.Warn("Update: slot id=%s not found", id)
			return nil, ErrSlotNotFound
		}
		s.logger.Error("Update: repository error for slot id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	s.InvalidateCache(ctx)
	s.logger.Info("Update: slot id=%s updated", id)
	return models.FromDomainSlot(updated), nil
}

// Delete удаляет свободный слот
func (s *Service) Delete(ctx context.Context, id string) error {
	slotID, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("%w: slot id must be a UUID", ErrInvalidInput)
	}

	if err := s.repo.Delete(ctx, slotID); err != nil {
		switch {
		case errors.Is(err, timeslotRepo.ErrSlotNotFound):
			s.logger.Warn("Delete: slot id=%s not found", id)
			return ErrSlotNotFound
		case errors.Is(err, timeslotRepo.ErrSlotBooked):
			s.logger.Warn("Delete: slot id=%s is booked", id)
			return ErrSlotBooked
		default:
			s.logger.Error("Delete: repository error for slot id=%s: %v", id, err)
			return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
		}
	}

	s.InvalidateCache(ctx)
	s.logger.Info("Delete: slot id=%s deleted", id)
	return nil
}

// GetByID возвращает слот
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*domain.TimeSlot, error) {
	slot, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, timeslotRepo.ErrSlotNotFound) {
			return nil, ErrSlotNotFound
		}
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}
	return slot, nil
}

// Claim атомарно переводит слот в booked. Из конкурирующих вызовов успешен ровно один.
func (s *Service) Claim(ctx context.Context, id uuid.UUID) (*domain.TimeSlot, error) {
	slot, err := s.repo.Claim(ctx, id)
	if err != nil {
		if errors.Is(err, timeslotRepo.ErrSlotNotAvailable) {
			s.logger.Warn("Claim: slot id=%s is not available", id)
			return nil, ErrSlotUnavailable
		}
		s.logger.Error("Claim: repository error for slot id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: Claim - repository error: %v", ErrInternal, err)
	}

	s.InvalidateCache(ctx)
	return slot, nil
}

// Release возвращает слот в available; идемпотентна
func (s *Service) Release(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Release(ctx, id); err != nil {
		if errors.Is(err, timeslotRepo.ErrSlotNotFound) {
			s.logger.Warn("Release: slot id=%s not found", id)
			return ErrSlotNotFound
		}
		s.logger.Error("Release: repository error for slot id=%s: %v", id, err)
		return fmt.Errorf("%w: Release - repository error: %v", ErrInternal, err)
	}

	s.InvalidateCache(ctx)
	return nil
}

// InvalidateCache сбрасывает кэш. Ошибка кэша не влияет на результат операции.
// Вызывается повторно после коммита транзакции, в которой слот был захвачен или освобождён.
func (s *Service) InvalidateCache(ctx context.Context) {
	if err := s.cache.Invalidate(ctx); err != nil {
		s.logger.Warn("cache invalidation failed: %v", err)
	}
}
