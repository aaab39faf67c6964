package cancel_booking

import "context"

// BookingService отмена бронирования игроком
type BookingService interface {
	Cancel(ctx context.Context, bookingID string, playerID string) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
