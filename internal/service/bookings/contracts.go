package bookings

import (
	"context"
	"time"

	"github.com/areninha/booking-service/internal/domain"
	"github.com/areninha/booking-service/internal/infra/events"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Booking, error)
	GetByPlayer(ctx context.Context, filter domain.PlayerBookingsFilter) ([]*domain.Booking, error)
	Cancel(ctx context.Context, id string, cancelledAt time.Time) error
}

// EventPublisher публикует события бронирований
type EventPublisher interface {
	Publish(ctx context.Context, event events.BookingEvent) error
}

// Metrics счетчики отмен
type Metrics interface {
	IncBookingCancelled()
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
