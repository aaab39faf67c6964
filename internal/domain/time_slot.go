package domain

import (
	"errors"
	"sort"
	"time"

	"github.com/areninha/booking-service/pkg/types"
)

var (
	// ErrInvalidDayOfWeek возвращается, когда день недели вне диапазона 0-6
	ErrInvalidDayOfWeek = errors.New("domain: day of week must be between 0 and 6")

	// ErrInvalidSlotRange возвращается, когда начало слота не раньше конца
	ErrInvalidSlotRange = errors.New("domain: slot start must be before end")

	// ErrSlotFieldMismatch возвращается, когда слот привязан к другой площадке
	ErrSlotFieldMismatch = errors.New("domain: time slot belongs to another field")
)

// TimeSlot еженедельный шаблон слота площадки
type TimeSlot struct {
	ID        string
	FieldID   string
	DayOfWeek int // 0 = воскресенье ... 6 = суббота (как time.Weekday)
	StartTime types.TimeString
	EndTime   types.TimeString
	Price     float64
	// Available - переключатель владельца "открыто для бронирования",
	// не связан с занятостью слота бронированиями
	Available bool
}

// Validate проверяет инварианты шаблона слота
func (s *TimeSlot) Validate() error {
	if s.DayOfWeek < 0 || s.DayOfWeek > 6 {
		return ErrInvalidDayOfWeek
	}
	if err := s.StartTime.Validate(); err != nil {
		return err
	}
	if err := s.EndTime.Validate(); err != nil {
		return err
	}
	if !s.StartTime.IsBefore(s.EndTime) {
		return ErrInvalidSlotRange
	}
	if s.Price < 0 {
		return ErrNegativePrice
	}
	return nil
}

// MatchesDate возвращает true, если день недели слота совпадает с днем недели даты
func (s *TimeSlot) MatchesDate(date time.Time) bool {
	return s.DayOfWeek == int(date.Weekday())
}

// SortTimeSlots сортирует слоты по времени начала, затем по времени окончания и ID
func SortTimeSlots(slots []TimeSlot) {
	sort.SliceStable(slots, func(i, j int) bool {
		if slots[i].StartTime != slots[j].StartTime {
			return slots[i].StartTime.IsBefore(slots[j].StartTime)
		}
		if slots[i].EndTime != slots[j].EndTime {
			return slots[i].EndTime.IsBefore(slots[j].EndTime)
		}
		return slots[i].ID < slots[j].ID
	})
}
