// Package events публикация событий жизненного цикла бронирований
package events

import (
	"context"
	"errors"
	"time"

	"github.com/areninha/booking-service/internal/domain"
)

const (
	TypeBookingConfirmed = "booking.confirmed"
	TypeBookingCancelled = "booking.cancelled"
)

var (
	// ErrConnect возвращается, когда не удалось подключиться к брокеру
	ErrConnect = errors.New("events: failed to connect to broker")

	// ErrPublish возвращается при ошибке публикации события
	ErrPublish = errors.New("events: failed to publish event")
)

// Publisher публикует события бронирований
type Publisher interface {
	Publish(ctx context.Context, event BookingEvent) error
	Close() error
}

// BookingEvent событие изменения бронирования
type BookingEvent struct {
	Type          string    `json:"type"`
	BookingID     string    `json:"booking_id"`
	FieldID       string    `json:"field_id"`
	FieldName     string    `json:"field_name"`
	TimeSlotID    string    `json:"time_slot_id"`
	BookingDate   string    `json:"booking_date"`
	StartTime     string    `json:"start_time"`
	EndTime       string    `json:"end_time"`
	PlayerID      string    `json:"player_id"`
	Status        string    `json:"status"`
	PaymentMethod string    `json:"payment_method"`
	Price         float64   `json:"price"`
	OccurredAt    time.Time `json:"occurred_at"`
}

// NewBookingEvent строит событие по бронированию
func NewBookingEvent(eventType string, b *domain.Booking, occurredAt time.Time) BookingEvent {
	return BookingEvent{
		Type:          eventType,
		BookingID:     b.ID,
		FieldID:       b.FieldID,
		FieldName:     b.Snapshot.FieldName,
		TimeSlotID:    b.TimeSlotID,
		BookingDate:   b.BookingDate.Format(domain.DateFormat),
		StartTime:     b.Snapshot.StartTime.String(),
		EndTime:       b.Snapshot.EndTime.String(),
		PlayerID:      b.PlayerID,
		Status:        string(b.Status),
		PaymentMethod: string(b.PaymentMethod),
		Price:         b.Snapshot.Price,
		OccurredAt:    occurredAt.UTC(),
	}
}

// NopPublisher отбрасывает события (events.driver = "none")
type NopPublisher struct{}

// Publish ничего не делает
func (NopPublisher) Publish(context.Context, BookingEvent) error { return nil }

// Close ничего не делает
func (NopPublisher) Close() error { return nil }
