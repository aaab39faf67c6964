package get_available_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/areninha/booking-service/internal/domain"
	fieldRepo "github.com/areninha/booking-service/internal/infra/storage/field"
)

// UseCase use case получения свободных слотов площадки на дату
// Занятость не хранится, а вычисляется из журнала бронирований при каждом запросе
type UseCase struct {
	fieldRepo   FieldRepository
	bookingRepo BookingRepository
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	fieldRepo FieldRepository,
	bookingRepo BookingRepository,
	logger Logger,
) *UseCase {
	return &UseCase{
		fieldRepo:   fieldRepo,
		bookingRepo: bookingRepo,
		logger:      logger,
	}
}

// Execute выполняет use case получения свободных слотов
// Для неизвестной площадки возвращает пустой список без ошибки
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	date := domain.DateOnly(req.Date)
	uc.logger.Info("GetAvailableSlots: field=%s, date=%s", req.FieldID, date.Format(domain.DateFormat))

	response := &Response{
		FieldID: req.FieldID,
		Date:    date,
		Slots:   make([]Slot, 0),
	}

	// 1. Получаем площадку
	field, err := uc.fieldRepo.GetByID(ctx, req.FieldID)
	if err != nil {
		if errors.Is(err, fieldRepo.ErrFieldNotFound) {
			uc.logger.Warn("GetAvailableSlots: field id=%s not found, returning no slots", req.FieldID)
			return response, nil
		}
		uc.logger.Error("GetAvailableSlots: failed to get field id=%s: %v", req.FieldID, err)
		return nil, fmt.Errorf("%w: failed to get field: %v", ErrInternal, err)
	}

	// 2. Получаем бронирования площадки на дату
	bookings, err := uc.bookingRepo.GetByFieldAndDate(ctx, field.ID, date)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get bookings for field id=%s: %v", field.ID, err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	// 3. Вычитаем занятые слоты из шаблонов дня недели
	for _, slot := range resolveAvailable(field, date, bookings) {
		response.Slots = append(response.Slots, Slot{
			ID:        slot.ID,
			DayOfWeek: slot.DayOfWeek,
			StartTime: slot.StartTime,
			EndTime:   slot.EndTime,
			Price:     slot.Price,
		})
	}

	uc.logger.Info("GetAvailableSlots: field=%s, date=%s, %d slots available",
		field.ID, date.Format(domain.DateFormat), len(response.Slots))

	return response, nil
}
