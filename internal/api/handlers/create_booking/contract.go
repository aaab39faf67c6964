package create_booking

import (
	"context"

	createBooking "github.com/areninha/booking-service/internal/usecase/create_booking"
)

// CreateBookingUseCase сценарий бронирования слота на дату
type CreateBookingUseCase interface {
	Execute(ctx context.Context, req *createBooking.Request) (*createBooking.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
