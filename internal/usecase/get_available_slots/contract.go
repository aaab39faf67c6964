package get_available_slots

import (
	"context"
	"time"

	"github.com/areninha/booking-service/internal/domain"
)

// FieldRepository интерфейс хранилища площадок
type FieldRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Field, error)
}

// BookingRepository интерфейс журнала бронирований
type BookingRepository interface {
	GetByFieldAndDate(ctx context.Context, fieldID string, date time.Time) ([]*domain.Booking, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
