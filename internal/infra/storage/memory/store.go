// Package memory хранилище в памяти с теми же контрактами, что и PostgreSQL репозитории.
// Используется в тестах.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/wellmio-booking/internal/domain"
)

// Store общее состояние репозиториев
type Store struct {
	mu   sync.Mutex
	txMu sync.Mutex

	slots    map[uuid.UUID]domain.TimeSlot
	bookings map[uuid.UUID]domain.Booking
	options  map[uuid.UUID]domain.BookingOption

	lastTime time.Time
}

// NewStore создает пустое хранилище
func NewStore() *Store {
	return &Store{
		slots:    make(map[uuid.UUID]domain.TimeSlot),
		bookings: make(map[uuid.UUID]domain.Booking),
		options:  make(map[uuid.UUID]domain.BookingOption),
	}
}

// Slots репозиторий слотов поверх хранилища
func (s *Store) Slots() *SlotRepository {
	return &SlotRepository{store: s}
}

// Bookings репозиторий бронирований поверх хранилища
func (s *Store) Bookings() *BookingRepository {
	return &BookingRepository{store: s}
}

// Options репозиторий настроек поверх хранилища
func (s *Store) Options() *OptionRepository {
	return &OptionRepository{store: s}
}

// TxManager менеджер транзакций поверх хранилища
func (s *Store) TxManager() *TxManager {
	return &TxManager{store: s}
}

// now возвращает строго возрастающее время, чтобы сортировка по created_at была однозначной.
// Вызывается под s.mu.
func (s *Store) now() time.Time {
	t := time.Now().UTC()
	if !t.After(s.lastTime) {
		t = s.lastTime.Add(time.Microsecond)
	}
	s.lastTime = t
	return t
}

// lock захватывает хранилище для одного вызова репозитория.
// Вне транзакции вызов ждёт, пока активная транзакция завершится,
// поэтому откат к снимку не затирает чужие записи.
func (s *Store) lock(ctx context.Context) func() {
	if ctx.Value(txKey{}) != nil {
		s.mu.Lock()
		return s.mu.Unlock
	}

	s.txMu.Lock()
	s.mu.Lock()
	return func() {
		s.mu.Unlock()
		s.txMu.Unlock()
	}
}

type snapshot struct {
	slots    map[uuid.UUID]domain.TimeSlot
	bookings map[uuid.UUID]domain.Booking
	options  map[uuid.UUID]domain.BookingOption
}

func (s *Store) snapshot() snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := snapshot{
		slots:    make(map[uuid.UUID]domain.TimeSlot, len(s.slots)),
		bookings: make(map[uuid.UUID]domain.Booking, len(s.bookings)),
		options:  make(map[uuid.UUID]domain.BookingOption, len(s.options)),
	}
	for k, v := range s.slots {
		snap.slots[k] = v
	}
	for k, v := range s.bookings {
		snap.bookings[k] = v
	}
	for k, v := range s.options {
		snap.options[k] = v
	}
	return snap
}

func (s *Store) restore(snap snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.slots = snap.slots
	s.bookings = snap.bookings
	s.options = snap.options
}

type txKey struct{}

// TxManager выполняет функции последовательно; при ошибке состояние откатывается к снимку
type TxManager struct {
	store *Store
}

func (m *TxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	if ctx.Value(txKey{}) != nil {
		return fn(ctx)
	}

	m.store.txMu.Lock()
	defer m.store.txMu.Unlock()

	snap := m.store.snapshot()
	if err := fn(context.WithValue(ctx, txKey{}, struct{}{})); err != nil {
		m.store.restore(snap)
		return err
	}
	return nil
}

func (m *TxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.Do(ctx, fn)
}

func (m *TxManager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.Do(ctx, fn)
}
