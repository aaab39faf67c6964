package get_player_bookings

import (
	"errors"
	"net/http"
	"strings"

	"github.com/areninha/booking-service/internal/api/handlers"
	"github.com/areninha/booking-service/internal/api/middleware"
	"github.com/areninha/booking-service/internal/service/bookings"
)

const (
	msgMissingUserID = "missing user id"
	msgInvalidStatus = "invalid booking status"
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

// Handle GET /api/v1/players/me/bookings
// Query params: status (опционально: pending, confirmed, cancelled)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	playerID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /players/me/bookings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var statusPtr *string
	if status := strings.TrimSpace(r.URL.Query().Get("status")); status != "" {
		statusPtr = &status
	}

	result, err := h.service.GetPlayerBookings(r.Context(), playerID, statusPtr)
	if err != nil {
		if errors.Is(err, bookings.ErrInvalidInput) {
			h.logger.Warn("GET /players/me/bookings - Invalid status: player_id=%s, error=%v", playerID, err)
			handlers.RespondBadRequest(w, msgInvalidStatus)
			return
		}
		h.logger.Error("GET /players/me/bookings - Failed to get bookings: player_id=%s, error=%v",
			playerID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /players/me/bookings - Bookings retrieved successfully: player_id=%s, count=%d",
		playerID, len(result.Bookings))
	handlers.RespondJSON(w, http.StatusOK, result.Bookings)
}
