package models

import (
	"errors"
	"strings"
	"time"

	"github.com/areninha/booking-service/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid booking status")
)

// SnapshotResponse данные площадки и слота на момент бронирования
type SnapshotResponse struct {
	FieldName     string  `json:"fieldName"`
	FieldLocation string  `json:"fieldLocation"`
	FieldAddress  string  `json:"fieldAddress"`
	FieldType     string  `json:"fieldType"`
	DayOfWeek     int     `json:"dayOfWeek"`
	StartTime     string  `json:"startTime"`
	EndTime       string  `json:"endTime"`
	Price         float64 `json:"price"`
}

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID             string  `json:"id"`
	FieldID        string  `json:"fieldId"`
	TimeSlotID     string  `json:"timeSlotId"`
	BookingDate    string  `json:"bookingDate"` // "2026-10-26"
	Status         string  `json:"status"`
	PlayerID       string  `json:"playerId"`
	PlayerName     string  `json:"playerName"`
	PlayerWhatsapp string  `json:"playerWhatsapp"`
	PlayerEmail    *string `json:"playerEmail,omitempty"`
	PaymentMethod  string  `json:"paymentMethod"`
	Notes          *string `json:"notes,omitempty"`

	Snapshot SnapshotResponse `json:"snapshot"`

	CancelledAt *string   `json:"cancelledAt,omitempty"` // ISO 8601
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	resp := &BookingResponse{
		ID:             b.ID,
		FieldID:        b.FieldID,
		TimeSlotID:     b.TimeSlotID,
		BookingDate:    b.BookingDate.Format(domain.DateFormat),
		Status:         string(b.Status),
		PlayerID:       b.PlayerID,
		PlayerName:     b.PlayerName,
		PlayerWhatsapp: b.PlayerWhatsapp,
		PlayerEmail:    b.PlayerEmail,
		PaymentMethod:  string(b.PaymentMethod),
		Notes:          b.Notes,
		Snapshot: SnapshotResponse{
			FieldName:     b.Snapshot.FieldName,
			FieldLocation: b.Snapshot.FieldLocation,
			FieldAddress:  b.Snapshot.FieldAddress,
			FieldType:     string(b.Snapshot.FieldType),
			DayOfWeek:     b.Snapshot.DayOfWeek,
			StartTime:     b.Snapshot.StartTime.String(),
			EndTime:       b.Snapshot.EndTime.String(),
			Price:         b.Snapshot.Price,
		},
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}

	if b.CancelledAt != nil {
		cancelledStr := b.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &cancelledStr
	}

	return resp
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
	}

	for _, booking := range bookings {
		if bookingResp := FromDomainBooking(booking); bookingResp != nil {
			resp.Bookings = append(resp.Bookings, *bookingResp)
		}
	}

	return resp
}

// ToDomainBookingStatus конвертирует строку в domain.BookingStatus с валидацией
// Регистр не учитывается: "CONFIRMED" и "confirmed" равнозначны
func ToDomainBookingStatus(status string) (domain.BookingStatus, error) {
	s := domain.BookingStatus(strings.ToLower(strings.TrimSpace(status)))
	if !s.IsValid() {
		return "", ErrInvalidStatus
	}
	return s, nil
}
