package get_player_bookings

import (
	"context"

	"github.com/areninha/booking-service/internal/service/bookings/models"
)

// BookingService список бронирований игрока
type BookingService interface {
	GetPlayerBookings(ctx context.Context, playerID string, status *string) (*models.BookingListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
