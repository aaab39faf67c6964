package create_booking

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/areninha/booking-service/internal/domain"
	"github.com/areninha/booking-service/internal/infra/events"
	bookingRepo "github.com/areninha/booking-service/internal/infra/storage/booking"
	fieldRepo "github.com/areninha/booking-service/internal/infra/storage/field"
	"github.com/areninha/booking-service/pkg/txmanager"
)

// UseCase use case для создания бронирования
type UseCase struct {
	fieldRepo    FieldRepository
	bookingRepo  BookingRepository
	txManager    TransactionManager
	publisher    EventPublisher
	metrics      Metrics
	timeProvider TimeProvider
	location     *time.Location
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
// location - часовой пояс, в котором вычисляется "сегодня"
func NewUseCase(
	fieldRepo FieldRepository,
	bookingRepo BookingRepository,
	txManager TransactionManager,
	publisher EventPublisher,
	metrics Metrics,
	location *time.Location,
	logger Logger,
) *UseCase {
	if location == nil {
		location = time.UTC
	}
	return &UseCase{
		fieldRepo:    fieldRepo,
		bookingRepo:  bookingRepo,
		txManager:    txManager,
		publisher:    publisher,
		metrics:      metrics,
		timeProvider: &RealTimeProvider{},
		location:     location,
		logger:       logger,
	}
}

// Execute выполняет use case создания бронирования
// Проверка занятости и запись выполняются в одной сериализуемой транзакции,
// уникальный индекс по подтвержденным бронированиям закрывает оставшуюся гонку
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	date := domain.DateOnly(req.Date)
	uc.logger.Info("CreateBooking: player=%s, field=%s, slot=%s, date=%s",
		req.PlayerID, req.FieldID, req.TimeSlotID, date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	paymentMethod, err := validateRequest(req)
	if err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Получаем площадку и слот
	field, err := uc.fieldRepo.GetByID(ctx, req.FieldID)
	if err != nil {
		if errors.Is(err, fieldRepo.ErrFieldNotFound) {
			uc.logger.Warn("CreateBooking: field id=%s not found", req.FieldID)
			return nil, ErrFieldNotFound
		}
		uc.logger.Error("CreateBooking: failed to get field id=%s: %v", req.FieldID, err)
		return nil, fmt.Errorf("%w: failed to get field: %v", ErrInternal, err)
	}

	slot, ok := field.TimeSlotByID(req.TimeSlotID)
	if !ok {
		uc.logger.Warn("CreateBooking: slot id=%s not found in field id=%s", req.TimeSlotID, req.FieldID)
		return nil, ErrTimeSlotNotFound
	}

	// 4. Слот должен подходить к дате и быть открыт владельцем, дата не в прошлом
	if err := validateSlot(slot, date); err != nil {
		uc.logger.Warn("CreateBooking: slot validation failed: %v", err)
		uc.recordConflict(err)
		return nil, err
	}

	if err := validateDate(date, domain.Today(now, uc.location)); err != nil {
		uc.logger.Warn("CreateBooking: date validation failed: %v", err)
		return nil, err
	}

	booking := &domain.Booking{
		FieldID:        field.ID,
		TimeSlotID:     slot.ID,
		BookingDate:    date,
		Status:         domain.StatusConfirmed,
		PlayerID:       req.PlayerID,
		PlayerName:     strings.TrimSpace(req.PlayerName),
		PlayerWhatsapp: strings.TrimSpace(req.PlayerWhatsapp),
		PlayerEmail:    normalizeOptional(req.PlayerEmail),
		PaymentMethod:  paymentMethod,
		Notes:          normalizeOptional(req.Notes),
		Snapshot:       domain.NewBookingSnapshot(field, slot),
	}

	var result *domain.Booking

	// 5. Проверка занятости и запись в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 5.1. Бронирования площадки на дату с блокировкой (FOR UPDATE)
		bookings, err := uc.bookingRepo.GetByFieldAndDate(txCtx, field.ID, date)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get bookings: %v", err)
			return fmt.Errorf("%w: failed to get bookings: %w", ErrInternal, err)
		}

		// 5.2. Слот не должен быть занят подтвержденным бронированием
		if isSlotTaken(bookings, field.ID, slot.ID, date) {
			uc.logger.Warn("CreateBooking: slot id=%s on %s is already booked", slot.ID, date.Format(domain.DateFormat))
			return ErrSlotNotAvailable
		}

		// 5.3. Новый ID и время создания на каждую попытку транзакции
		createdAt := uc.timeProvider.Now().UTC()
		booking.ID = uuid.NewString()
		booking.CreatedAt = createdAt
		booking.UpdatedAt = createdAt

		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrSlotNotAvailable) {
				uc.logger.Warn("CreateBooking: slot id=%s on %s taken concurrently", slot.ID, date.Format(domain.DateFormat))
				return ErrSlotNotAvailable
			}
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %w", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		// Повторы сериализуемой транзакции исчерпаны - слот забрал конкурент
		if txmanager.IsSerializationFailure(err) {
			uc.logger.Warn("CreateBooking: serialization conflict for slot id=%s on %s: %v",
				slot.ID, date.Format(domain.DateFormat), err)
			err = ErrSlotNotAvailable
		}
		uc.recordConflict(err)
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.IncBookingCreated()
	}
	uc.logger.Info("CreateBooking: successfully created booking id=%s", result.ID)

	uc.publish(ctx, events.NewBookingEvent(events.TypeBookingConfirmed, result, now))

	return &Response{
		ID:      result.ID,
		Booking: result,
	}, nil
}

func (uc *UseCase) recordConflict(err error) {
	if uc.metrics != nil && errors.Is(err, ErrSlotNotAvailable) {
		uc.metrics.IncBookingConflict()
	}
}

// publish отправляет событие после коммита, ошибка публикации не отменяет бронирование
func (uc *UseCase) publish(ctx context.Context, event events.BookingEvent) {
	if uc.publisher == nil {
		return
	}
	if err := uc.publisher.Publish(ctx, event); err != nil {
		uc.logger.Warn("CreateBooking: failed to publish %s for booking id=%s: %v", event.Type, event.BookingID, err)
	}
}
