package create_booking

import (
	"context"
	"time"

	"github.com/areninha/booking-service/internal/domain"
	"github.com/areninha/booking-service/internal/infra/events"
)

// FieldRepository интерфейс хранилища площадок
type FieldRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Field, error)
}

// BookingRepository интерфейс журнала бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	GetByFieldAndDate(ctx context.Context, fieldID string, date time.Time) ([]*domain.Booking, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// EventPublisher интерфейс публикации событий бронирований
type EventPublisher interface {
	Publish(ctx context.Context, event events.BookingEvent) error
}

// Metrics счетчики исходов бронирования
type Metrics interface {
	IncBookingCreated()
	IncBookingConflict()
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
