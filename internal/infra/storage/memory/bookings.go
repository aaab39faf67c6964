package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/areninha/booking-service/internal/domain"
	bookingrepo "github.com/areninha/booking-service/internal/infra/storage/booking"
)

// BookingStore журнал бронирований в памяти
// Проверка занятости и добавление выполняются под одной блокировкой
type BookingStore struct {
	mu       sync.RWMutex
	bookings []*domain.Booking
	byID     map[string]*domain.Booking
}

// NewBookingStore создает пустой журнал
func NewBookingStore() *BookingStore {
	return &BookingStore{byID: make(map[string]*domain.Booking)}
}

// Create добавляет бронирование, если слот на дату не занят подтвержденным бронированием
func (s *BookingStore) Create(_ context.Context, b *domain.Booking) (*domain.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if b.IsConfirmed() {
		for _, existing := range s.bookings {
			if existing.Occupies(b.FieldID, b.TimeSlotID, b.BookingDate) {
				return nil, bookingrepo.ErrSlotNotAvailable
			}
		}
	}

	stored := cloneBooking(b)
	stored.BookingDate = domain.DateOnly(b.BookingDate)
	s.bookings = append(s.bookings, stored)
	s.byID[stored.ID] = stored

	return cloneBooking(stored), nil
}

// GetByID получает бронирование по ID
func (s *BookingStore) GetByID(_ context.Context, id string) (*domain.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	b, ok := s.byID[id]
	if !ok {
		return nil, bookingrepo.ErrBookingNotFound
	}
	return cloneBooking(b), nil
}

// GetByFieldAndDate получает бронирования площадки на дату в любом статусе
func (s *BookingStore) GetByFieldAndDate(_ context.Context, fieldID string, date time.Time) ([]*domain.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*domain.Booking, 0)
	for _, b := range s.bookings {
		if b.FieldID == fieldID && domain.SameDate(b.BookingDate, date) {
			result = append(result, cloneBooking(b))
		}
	}
	return result, nil
}

// GetByPlayer получает бронирования игрока, сначала самые поздние по дате
func (s *BookingStore) GetByPlayer(_ context.Context, filter domain.PlayerBookingsFilter) ([]*domain.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*domain.Booking, 0)
	for _, b := range s.bookings {
		if b.PlayerID != filter.PlayerID {
			continue
		}
		if filter.Status != nil && b.Status != *filter.Status {
			continue
		}
		result = append(result, cloneBooking(b))
	}

	sort.SliceStable(result, func(i, j int) bool {
		if !result[i].BookingDate.Equal(result[j].BookingDate) {
			return result[i].BookingDate.After(result[j].BookingDate)
		}
		return result[j].Snapshot.StartTime.IsBefore(result[i].Snapshot.StartTime)
	})

	return result, nil
}

// Cancel переводит подтвержденное бронирование в статус cancelled
func (s *BookingStore) Cancel(_ context.Context, id string, cancelledAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.byID[id]
	if !ok {
		return bookingrepo.ErrBookingNotFound
	}
	if !b.IsConfirmed() {
		return bookingrepo.ErrCannotCancel
	}

	b.Status = domain.StatusCancelled
	b.CancelledAt = &cancelledAt
	b.UpdatedAt = cancelledAt

	return nil
}

func cloneBooking(b *domain.Booking) *domain.Booking {
	c := *b
	if b.PlayerEmail != nil {
		email := *b.PlayerEmail
		c.PlayerEmail = &email
	}
	if b.Notes != nil {
		notes := *b.Notes
		c.Notes = &notes
	}
	if b.CancelledAt != nil {
		at := *b.CancelledAt
		c.CancelledAt = &at
	}
	return &c
}
