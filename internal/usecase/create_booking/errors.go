package create_booking

import "errors"

var (
	// ErrFieldNotFound возвращается, когда площадка не найдена
	ErrFieldNotFound = errors.New("create_booking: field not found")

	// ErrTimeSlotNotFound возвращается, когда слот не найден у площадки
	ErrTimeSlotNotFound = errors.New("create_booking: time slot not found")

	// ErrInvalidTimeSlot возвращается, когда день недели слота не совпадает с датой
	ErrInvalidTimeSlot = errors.New("create_booking: time slot does not match booking date")

	// ErrInvalidDate возвращается, когда дата бронирования уже прошла
	ErrInvalidDate = errors.New("create_booking: invalid booking date")

	// ErrSlotNotAvailable возвращается, когда слот на дату уже занят или закрыт владельцем
	ErrSlotNotAvailable = errors.New("create_booking: slot is not available")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
