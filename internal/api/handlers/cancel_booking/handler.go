package cancel_booking

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/areninha/booking-service/internal/api/handlers"
	"github.com/areninha/booking-service/internal/api/middleware"
	"github.com/areninha/booking-service/internal/domain"
	"github.com/areninha/booking-service/internal/service/bookings"
)

const (
	msgInvalidBookingID = "invalid booking id"
	msgMissingUserID    = "missing user id"
	msgNotFound         = "booking not found"
	msgForbidden        = "access denied"
	msgCannotCancel     = "booking cannot be cancelled"
	msgWindowClosed     = "booking can no longer be cancelled"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings/{bookingId}/cancel
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID := strings.TrimSpace(mux.Vars(r)["bookingId"])
	if bookingID == "" {
		h.logger.Warn("POST /bookings/{id}/cancel - Missing booking ID")
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	playerID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings/{id}/cancel - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	err := h.service.Cancel(r.Context(), bookingID, playerID)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrBookingNotFound):
			h.logger.Warn("POST /bookings/{id}/cancel - Booking not found: booking_id=%s", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, bookings.ErrAccessDenied):
			h.logger.Warn("POST /bookings/{id}/cancel - Access denied: booking_id=%s, player_id=%s",
				bookingID, playerID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, bookings.ErrCancellationWindowClosed):
			h.logger.Warn("POST /bookings/{id}/cancel - Cancellation window closed: booking_id=%s", bookingID)
			handlers.RespondConflict(w, msgWindowClosed)

		case errors.Is(err, bookings.ErrCannotCancel):
			h.logger.Warn("POST /bookings/{id}/cancel - Cannot cancel: booking_id=%s", bookingID)
			handlers.RespondConflict(w, msgCannotCancel)

		default:
			h.logger.Error("POST /bookings/{id}/cancel - Failed to cancel booking: booking_id=%s, error=%v",
				bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings/{id}/cancel - Booking cancelled successfully: booking_id=%s, player_id=%s",
		bookingID, playerID)
	handlers.RespondJSON(w, http.StatusOK, CancelBookingResponse{
		ID:     bookingID,
		Status: string(domain.StatusCancelled),
	})
}
