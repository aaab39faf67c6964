package create_booking

import (
	"errors"
	"net/http"

	"github.com/areninha/booking-service/internal/api/handlers"
	"github.com/areninha/booking-service/internal/api/middleware"
	createBooking "github.com/areninha/booking-service/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgInvalidDate        = "invalid booking date format, expected YYYY-MM-DD"
	msgMissingUserID      = "missing user id"
	msgSlotNotAvailable   = "slot no longer available"
	msgFieldNotFound      = "field not found"
	msgTimeSlotNotFound   = "time slot not found"
	msgInvalidBookingDate = "booking date must not be in the past"
	msgInvalidTimeSlot    = "time slot does not match the booking date"
	msgInvalidInput       = "invalid booking data"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	playerID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	var identityEmail *string
	if email, ok := middleware.GetUserEmail(r.Context()); ok {
		identityEmail = &email
	}

	useCaseReq, err := req.ToUseCaseRequest(playerID, identityEmail)
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrSlotNotAvailable):
			h.logger.Warn("POST /bookings - Slot not available: player_id=%s, field_id=%s, slot_id=%s, date=%s",
				playerID, req.FieldID, req.TimeSlotID, req.Date)
			handlers.RespondConflict(w, msgSlotNotAvailable)

		case errors.Is(err, createBooking.ErrFieldNotFound):
			h.logger.Warn("POST /bookings - Field not found: field_id=%s", req.FieldID)
			handlers.RespondNotFound(w, msgFieldNotFound)

		case errors.Is(err, createBooking.ErrTimeSlotNotFound):
			h.logger.Warn("POST /bookings - Time slot not found: field_id=%s, slot_id=%s", req.FieldID, req.TimeSlotID)
			handlers.RespondNotFound(w, msgTimeSlotNotFound)

		case errors.Is(err, createBooking.ErrInvalidDate):
			h.logger.Warn("POST /bookings - Invalid booking date: player_id=%s, date=%s", playerID, req.Date)
			handlers.RespondBadRequest(w, msgInvalidBookingDate)

		case errors.Is(err, createBooking.ErrInvalidTimeSlot):
			h.logger.Warn("POST /bookings - Invalid time slot: slot_id=%s, date=%s", req.TimeSlotID, req.Date)
			handlers.RespondBadRequest(w, msgInvalidTimeSlot)

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: player_id=%s, error=%v", playerID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: player_id=%s, field_id=%s, error=%v",
				playerID, req.FieldID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%s, player_id=%s, field_id=%s",
		result.ID, playerID, req.FieldID)
	handlers.RespondJSON(w, http.StatusCreated, response)
}
