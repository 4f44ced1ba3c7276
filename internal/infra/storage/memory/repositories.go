package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/wellmio-booking/internal/domain"
	bookingRepo "github.com/m04kA/wellmio-booking/internal/infra/storage/booking"
	optionRepo "github.com/m04kA/wellmio-booking/internal/infra/storage/option"
	timeslotRepo "github.com/m04kA/wellmio-booking/internal/infra/storage/timeslot"
)

// SlotRepository слоты в памяти
type SlotRepository struct {
	store *Store
}

func (r *SlotRepository) ListAvailable(ctx context.Context, from, to *time.Time) ([]*domain.TimeSlot, error) {
	defer r.store.lock(ctx)()

	slots := make([]*domain.TimeSlot, 0)
	for _, slot := range r.store.slots {
		if slot.Status != domain.SlotAvailable {
			continue
		}
		if from != nil && slot.StartTime.Before(*from) {
			continue
		}
		if to != nil && !slot.StartTime.Before(*to) {
			continue
		}
		slot := slot
		slots = append(slots, &slot)
	}

	sort.Slice(slots, func(i, j int) bool {
		if slots[i].StartTime.Equal(slots[j].StartTime) {
			return slots[i].ID.String() < slots[j].ID.String()
		}
		return slots[i].StartTime.Before(slots[j].StartTime)
	})

	return slots, nil
}

func (r *SlotRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.TimeSlot, error) {
	defer r.store.lock(ctx)()

	slot, ok := r.store.slots[id]
	if !ok {
		return nil, timeslotRepo.ErrSlotNotFound
	}
	return &slot, nil
}

func (r *SlotRepository) Create(ctx context.Context, slot *domain.TimeSlot) (*domain.TimeSlot, error) {
	defer r.store.lock(ctx)()

	if _, exists := r.store.slots[slot.ID]; exists {
		return nil, fmt.Errorf("%w: Create - duplicate id %s", timeslotRepo.ErrExecQuery, slot.ID)
	}

	created := *slot
	created.CreatedAt = r.store.now()
	r.store.slots[created.ID] = created
	return &created, nil
}

func (r *SlotRepository) Update(ctx context.Context, id uuid.UUID, start, end time.Time) (*domain.TimeSlot, error) {
	defer r.store.lock(ctx)()

	slot, ok := r.store.slots[id]
	if !ok {
		return nil, timeslotRepo.ErrSlotNotFound
	}
	slot.StartTime = start
	slot.EndTime = end
	r.store.slots[id] = slot
	return &slot, nil
}

func (r *SlotRepository) Delete(ctx context.Context, id uuid.UUID) error {
	defer r.store.lock(ctx)()

	slot, ok := r.store.slots[id]
	if !ok {
		return timeslotRepo.ErrSlotNotFound
	}
	if slot.Status != domain.SlotAvailable {
		return timeslotRepo.ErrSlotBooked
	}
	delete(r.store.slots, id)
	return nil
}

func (r *SlotRepository) Claim(ctx context.Context, id uuid.UUID) (*domain.TimeSlot, error) {
	defer r.store.lock(ctx)()

	slot, ok := r.store.slots[id]
	if !ok || slot.Status != domain.SlotAvailable {
		return nil, timeslotRepo.ErrSlotNotAvailable
	}
	slot.Status = domain.SlotBooked
	r.store.slots[id] = slot
	return &slot, nil
}

func (r *SlotRepository) Release(ctx context.Context, id uuid.UUID) error {
	defer r.store.lock(ctx)()

	slot, ok := r.store.slots[id]
	if !ok {
		return timeslotRepo.ErrSlotNotFound
	}
	slot.Status = domain.SlotAvailable
	r.store.slots[id] = slot
	return nil
}

// BookingRepository бронирования в памяти
type BookingRepository struct {
	store *Store
}

func (r *BookingRepository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	defer r.store.lock(ctx)()

	for _, existing := range r.store.bookings {
		if existing.SlotID == booking.SlotID && existing.IsActive() {
			return nil, fmt.Errorf("%w: Create - slot %s already has an active booking", bookingRepo.ErrExecQuery, booking.SlotID)
		}
	}

	created := *booking
	created.CreatedAt = r.store.now()
	r.store.bookings[created.ID] = created
	return &created, nil
}

func (r *BookingRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error) {
	defer r.store.lock(ctx)()

	booking, ok := r.store.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	return &booking, nil
}

func (r *BookingRepository) List(ctx context.Context) ([]*domain.Booking, error) {
	defer r.store.lock(ctx)()

	bookings := make([]*domain.Booking, 0, len(r.store.bookings))
	for _, booking := range r.store.bookings {
		booking := booking
		bookings = append(bookings, &booking)
	}

	sort.Slice(bookings, func(i, j int) bool {
		return bookings[i].CreatedAt.After(bookings[j].CreatedAt)
	})

	return bookings, nil
}

func (r *BookingRepository) SetPaymentSession(ctx context.Context, id uuid.UUID, sessionID string) error {
	defer r.store.lock(ctx)()

	booking, ok := r.store.bookings[id]
	if !ok {
		return bookingRepo.ErrBookingNotFound
	}
	booking.PaymentSessionID = &sessionID
	r.store.bookings[id] = booking
	return nil
}

func (r *BookingRepository) TransitionPaymentStatus(
	ctx context.Context,
	id uuid.UUID,
	from, to domain.PaymentStatus,
) (*domain.Booking, error) {
	defer r.store.lock(ctx)()

	booking, ok := r.store.bookings[id]
	if !ok || booking.PaymentStatus != from {
		return nil, bookingRepo.ErrStatusConflict
	}
	booking.PaymentStatus = to
	r.store.bookings[id] = booking
	return &booking, nil
}

// OptionRepository настройки в памяти
type OptionRepository struct {
	store *Store
}

func (r *OptionRepository) List(ctx context.Context) ([]*domain.BookingOption, error) {
	defer r.store.lock(ctx)()

	options := make([]*domain.BookingOption, 0, len(r.store.options))
	for _, opt := range r.store.options {
		opt := opt
		options = append(options, &opt)
	}

	sort.Slice(options, func(i, j int) bool {
		return options[i].Name < options[j].Name
	})

	return options, nil
}

func (r *OptionRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.BookingOption, error) {
	defer r.store.lock(ctx)()

	opt, ok := r.store.options[id]
	if !ok {
		return nil, optionRepo.ErrOptionNotFound
	}
	return &opt, nil
}

func (r *OptionRepository) GetByName(ctx context.Context, name domain.OptionName) (*domain.BookingOption, error) {
	defer r.store.lock(ctx)()

	for _, opt := range r.store.options {
		if opt.Name == name {
			return &opt, nil
		}
	}
	return nil, optionRepo.ErrOptionNotFound
}

func (r *OptionRepository) Create(ctx context.Context, opt *domain.BookingOption) (*domain.BookingOption, error) {
	defer r.store.lock(ctx)()

	for _, existing := range r.store.options {
		if existing.ID == opt.ID || existing.Name == opt.Name {
			return nil, fmt.Errorf("%w: Create - duplicate option %s", optionRepo.ErrExecQuery, opt.Name)
		}
	}

	created := *opt
	created.CreatedAt = r.store.now()
	r.store.options[created.ID] = created
	return &created, nil
}

func (r *OptionRepository) Update(ctx context.Context, id uuid.UUID, name domain.OptionName, value string) (*domain.BookingOption, error) {
	defer r.store.lock(ctx)()

	opt, ok := r.store.options[id]
	if !ok {
		return nil, optionRepo.ErrOptionNotFound
	}
	for otherID, other := range r.store.options {
		if otherID != id && other.Name == name {
			return nil, fmt.Errorf("%w: Update - duplicate option %s", optionRepo.ErrExecQuery, name)
		}
	}
	opt.Name = name
	opt.Value = value
	r.store.options[id] = opt
	return &opt, nil
}
