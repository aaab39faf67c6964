package domain

import (
	"strings"
	"time"

	"github.com/areninha/booking-service/pkg/types"
)

// BookingStatus статус бронирования
type BookingStatus string

const (
	// StatusPending объявлен, но при создании не используется:
	// бронирование сразу создается подтвержденным
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusCancelled BookingStatus = "cancelled"
)

// IsValid возвращает true для известных статусов
func (s BookingStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled:
		return true
	}
	return false
}

// PaymentMethod способ оплаты
type PaymentMethod string

const (
	PaymentPix        PaymentMethod = "PIX"
	PaymentCreditCard PaymentMethod = "CREDIT_CARD"
	PaymentCash       PaymentMethod = "CASH"
)

// ParsePaymentMethod разбирает способ оплаты, "CARD" считается синонимом CREDIT_CARD
func ParsePaymentMethod(s string) (PaymentMethod, bool) {
	switch PaymentMethod(strings.ToUpper(strings.TrimSpace(s))) {
	case PaymentPix:
		return PaymentPix, true
	case PaymentCreditCard, "CARD":
		return PaymentCreditCard, true
	case PaymentCash:
		return PaymentCash, true
	}
	return "", false
}

// BookingSnapshot копия данных площадки и слота на момент бронирования
// Нужна, чтобы история бронирований не менялась после правок каталога
type BookingSnapshot struct {
	FieldName     string
	FieldLocation string
	FieldAddress  string
	FieldType     FieldType
	DayOfWeek     int
	StartTime     types.TimeString
	EndTime       types.TimeString
	Price         float64
}

// NewBookingSnapshot снимает копию площадки и слота
func NewBookingSnapshot(field *Field, slot *TimeSlot) BookingSnapshot {
	return BookingSnapshot{
		FieldName:     field.Name,
		FieldLocation: field.Location,
		FieldAddress:  field.Address,
		FieldType:     field.Type,
		DayOfWeek:     slot.DayOfWeek,
		StartTime:     slot.StartTime,
		EndTime:       slot.EndTime,
		Price:         slot.Price,
	}
}

// Booking бронирование одного слота на конкретную дату
type Booking struct {
	ID          string
	FieldID     string
	TimeSlotID  string
	BookingDate time.Time // Календарная дата, 00:00 UTC
	Status      BookingStatus

	PlayerID       string // Идентификатор игрока от identity-провайдера
	PlayerName     string
	PlayerWhatsapp string
	PlayerEmail    *string

	PaymentMethod PaymentMethod
	Notes         *string

	Snapshot BookingSnapshot

	CancelledAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsConfirmed возвращает true, если бронирование занимает слот
func (b *Booking) IsConfirmed() bool {
	return b.Status == StatusConfirmed
}

// Occupies возвращает true, если бронирование занимает слот на дату
func (b *Booking) Occupies(fieldID, timeSlotID string, date time.Time) bool {
	return b.IsConfirmed() &&
		b.FieldID == fieldID &&
		b.TimeSlotID == timeSlotID &&
		SameDate(b.BookingDate, date)
}

// CanBeCancelled возвращает true, если бронирование подтверждено
// и его дата строго позже сегодняшней (today - календарная дата в часовом поясе сервиса)
func (b *Booking) CanBeCancelled(today time.Time) bool {
	return b.IsConfirmed() && DateOnly(b.BookingDate).After(DateOnly(today))
}

// PlayerBookingsFilter фильтр бронирований игрока
type PlayerBookingsFilter struct {
	PlayerID string
	Status   *BookingStatus
}
