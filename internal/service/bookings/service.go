package bookings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/areninha/booking-service/internal/domain"
	"github.com/areninha/booking-service/internal/infra/events"
	bookingRepo "github.com/areninha/booking-service/internal/infra/storage/booking"
	"github.com/areninha/booking-service/internal/service/bookings/models"
)

// Service сервис для работы с бронированиями игрока
type Service struct {
	bookingRepo BookingRepository
	publisher   EventPublisher
	metrics     Metrics
	location    *time.Location
	logger      Logger
	now         func() time.Time
}

// NewService создает новый экземпляр сервиса бронирований
// location - часовой пояс, в котором вычисляется "сегодня" для окна отмены
func NewService(
	bookingRepo BookingRepository,
	publisher EventPublisher,
	metrics Metrics,
	location *time.Location,
	logger Logger,
) *Service {
	if location == nil {
		location = time.UTC
	}
	return &Service{
		bookingRepo: bookingRepo,
		publisher:   publisher,
		metrics:     metrics,
		location:    location,
		logger:      logger,
		now:         time.Now,
	}
}

// GetByID получает бронирование по ID
// Игрок может видеть только своё бронирование
func (s *Service) GetByID(ctx context.Context, id string, playerID string) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%s for player=%s", id, playerID)

	booking, err := s.getOwned(ctx, "GetByID", id, playerID)
	if err != nil {
		return nil, err
	}

	s.logger.Info("GetByID: successfully fetched booking id=%s", id)
	return models.FromDomainBooking(booking), nil
}

// GetPlayerBookings возвращает бронирования игрока, новые первыми
// Опционально фильтрует по статусу
func (s *Service) GetPlayerBookings(ctx context.Context, playerID string, status *string) (*models.BookingListResponse, error) {
	s.logger.Info("GetPlayerBookings: fetching bookings for player=%s, status=%v", playerID, status)

	if playerID == "" {
		return nil, fmt.Errorf("%w: player id is required", ErrInvalidInput)
	}

	filter := domain.PlayerBookingsFilter{PlayerID: playerID}
	if status != nil {
		domainStatus, err := models.ToDomainBookingStatus(*status)
		if err != nil {
			s.logger.Warn("GetPlayerBookings: invalid status=%s for player=%s", *status, playerID)
			return nil, fmt.Errorf("%w: invalid status %q", ErrInvalidInput, *status)
		}
		filter.Status = &domainStatus
	}

	bookings, err := s.bookingRepo.GetByPlayer(ctx, filter)
	if err != nil {
		s.logger.Error("GetPlayerBookings: repository error for player=%s: %v", playerID, err)
		return nil, fmt.Errorf("%w: GetPlayerBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetPlayerBookings: successfully fetched %d bookings for player=%s", len(bookings), playerID)
	return models.FromDomainBookingList(bookings), nil
}

// Cancel отменяет бронирование игрока
// Отменить можно только подтвержденное бронирование на дату строго позже сегодняшней.
// Запись остается в журнале со статусом cancelled, слот снова становится доступен
func (s *Service) Cancel(ctx context.Context, bookingID string, playerID string) error {
	s.logger.Info("Cancel: cancelling booking id=%s by player=%s", bookingID, playerID)

	booking, err := s.getOwned(ctx, "Cancel", bookingID, playerID)
	if err != nil {
		return err
	}

	if !booking.IsConfirmed() {
		s.logger.Warn("Cancel: booking id=%s cannot be cancelled, status=%s", bookingID, booking.Status)
		return ErrCannotCancel
	}

	now := s.now()
	today := domain.Today(now, s.location)
	if !booking.CanBeCancelled(today) {
		s.logger.Warn("Cancel: cancellation window closed for booking id=%s, date=%s, today=%s",
			bookingID, booking.BookingDate.Format(domain.DateFormat), today.Format(domain.DateFormat))
		return ErrCancellationWindowClosed
	}

	cancelledAt := now.UTC()
	if err := s.bookingRepo.Cancel(ctx, bookingID, cancelledAt); err != nil {
		switch {
		case errors.Is(err, bookingRepo.ErrBookingNotFound):
			s.logger.Warn("Cancel: booking id=%s not found during cancellation", bookingID)
			return ErrBookingNotFound
		case errors.Is(err, bookingRepo.ErrCannotCancel):
			// Параллельная отмена успела раньше
			s.logger.Warn("Cancel: booking id=%s changed status concurrently", bookingID)
			return ErrCannotCancel
		}
		s.logger.Error("Cancel: repository error for booking id=%s: %v", bookingID, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	booking.Status = domain.StatusCancelled
	booking.CancelledAt = &cancelledAt
	booking.UpdatedAt = cancelledAt

	if s.metrics != nil {
		s.metrics.IncBookingCancelled()
	}
	s.logger.Info("Cancel: successfully cancelled booking id=%s", bookingID)

	if s.publisher != nil {
		event := events.NewBookingEvent(events.TypeBookingCancelled, booking, now)
		if err := s.publisher.Publish(ctx, event); err != nil {
			s.logger.Warn("Cancel: failed to publish %s for booking id=%s: %v", event.Type, bookingID, err)
		}
	}

	return nil
}

// getOwned загружает бронирование и проверяет, что оно принадлежит игроку
func (s *Service) getOwned(ctx context.Context, op, id, playerID string) (*domain.Booking, error) {
	if id == "" || playerID == "" {
		return nil, fmt.Errorf("%w: booking id and player id are required", ErrInvalidInput)
	}

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("%s: booking id=%s not found", op, id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("%s: repository error for booking id=%s: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}

	if booking.PlayerID != playerID {
		s.logger.Warn("%s: access denied for player=%s to booking id=%s", op, playerID, id)
		return nil, ErrAccessDenied
	}

	return booking, nil
}
