package get_booking

import (
	"context"

	"github.com/areninha/booking-service/internal/service/bookings/models"
)

// BookingService чтение бронирования владельцем
type BookingService interface {
	GetByID(ctx context.Context, id string, playerID string) (*models.BookingResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
