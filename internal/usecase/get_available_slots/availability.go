package get_available_slots

import (
	"time"

	"github.com/areninha/booking-service/internal/domain"
)

// resolveAvailable возвращает шаблоны слотов площадки на день недели даты,
// открытые владельцем и не занятые подтвержденными бронированиями
func resolveAvailable(field *domain.Field, date time.Time, bookings []*domain.Booking) []domain.TimeSlot {
	taken := make(map[string]struct{}, len(bookings))
	for _, b := range bookings {
		// Отмененные и ожидающие бронирования слот не занимают
		if b.Occupies(field.ID, b.TimeSlotID, date) {
			taken[b.TimeSlotID] = struct{}{}
		}
	}

	result := make([]domain.TimeSlot, 0)
	for _, slot := range field.TimeSlots {
		if !slot.MatchesDate(date) || !slot.Available {
			continue
		}
		if _, ok := taken[slot.ID]; ok {
			continue
		}
		result = append(result, slot)
	}

	domain.SortTimeSlots(result)
	return result
}
