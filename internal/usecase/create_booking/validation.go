package create_booking

import (
	"fmt"
	"net/mail"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/areninha/booking-service/internal/domain"
)

// validateRequest валидирует входные данные запроса и возвращает способ оплаты
func validateRequest(req *Request) (domain.PaymentMethod, error) {
	if strings.TrimSpace(req.PlayerID) == "" {
		return "", fmt.Errorf("%w: playerID is required", ErrInvalidInput)
	}

	if strings.TrimSpace(req.FieldID) == "" {
		return "", fmt.Errorf("%w: fieldId is required", ErrInvalidInput)
	}

	if strings.TrimSpace(req.TimeSlotID) == "" {
		return "", fmt.Errorf("%w: timeSlotId is required", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return "", fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	name := strings.TrimSpace(req.PlayerName)
	if name == "" {
		return "", fmt.Errorf("%w: playerName is required", ErrInvalidInput)
	}
	if utf8.RuneCountInString(name) > domain.MaxPlayerNameLength {
		return "", fmt.Errorf("%w: playerName must be at most %d characters", ErrInvalidInput, domain.MaxPlayerNameLength)
	}

	whatsapp := strings.TrimSpace(req.PlayerWhatsapp)
	if whatsapp == "" {
		return "", fmt.Errorf("%w: playerWhatsapp is required", ErrInvalidInput)
	}
	if len(whatsapp) > domain.MaxWhatsappLength {
		return "", fmt.Errorf("%w: playerWhatsapp must be at most %d characters", ErrInvalidInput, domain.MaxWhatsappLength)
	}

	if req.PlayerEmail != nil && *req.PlayerEmail != "" {
		if len(*req.PlayerEmail) > domain.MaxEmailLength {
			return "", fmt.Errorf("%w: playerEmail is too long", ErrInvalidInput)
		}
		if _, err := mail.ParseAddress(*req.PlayerEmail); err != nil {
			return "", fmt.Errorf("%w: invalid playerEmail: %v", ErrInvalidInput, err)
		}
	}

	if req.Notes != nil && utf8.RuneCountInString(*req.Notes) > domain.MaxNotesLength {
		return "", fmt.Errorf("%w: notes must be at most %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	method, ok := domain.ParsePaymentMethod(req.PaymentMethod)
	if !ok {
		return "", fmt.Errorf("%w: unknown payment method %q", ErrInvalidInput, req.PaymentMethod)
	}

	return method, nil
}

// validateSlot проверяет, что слот можно бронировать на указанную дату
func validateSlot(slot *domain.TimeSlot, date time.Time) error {
	if !slot.MatchesDate(date) {
		return fmt.Errorf("%w: slot is for day %d, date %s is day %d",
			ErrInvalidTimeSlot, slot.DayOfWeek, date.Format(domain.DateFormat), int(date.Weekday()))
	}

	if !slot.Available {
		return fmt.Errorf("%w: slot is closed by the owner", ErrSlotNotAvailable)
	}

	return nil
}

// validateDate проверяет, что дата не раньше сегодняшней
func validateDate(date, today time.Time) error {
	if domain.DateOnly(date).Before(domain.DateOnly(today)) {
		return fmt.Errorf("%w: date %s is in the past", ErrInvalidDate, date.Format(domain.DateFormat))
	}
	return nil
}

// isSlotTaken проверяет, занят ли слот подтвержденным бронированием
func isSlotTaken(bookings []*domain.Booking, fieldID, timeSlotID string, date time.Time) bool {
	for _, b := range bookings {
		if b.Occupies(fieldID, timeSlotID, date) {
			return true
		}
	}
	return false
}

// normalizeOptional обрезает пробелы и превращает пустую строку в nil
func normalizeOptional(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
