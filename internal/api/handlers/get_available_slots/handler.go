package get_available_slots

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/areninha/booking-service/internal/api/handlers"
	getAvailableSlots "github.com/areninha/booking-service/internal/usecase/get_available_slots"
)

const (
	msgInvalidFieldID = "invalid field id"
	msgMissingDate    = "date is required"
	msgInvalidDate    = "invalid date format, expected YYYY-MM-DD"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/fields/{fieldId}/slots
// Query params: date (required, YYYY-MM-DD)
// Неизвестная площадка дает пустой список, а не 404
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	fieldID := strings.TrimSpace(mux.Vars(r)["fieldId"])
	if fieldID == "" {
		h.logger.Warn("GET /fields/{id}/slots - Missing field ID")
		handlers.RespondBadRequest(w, msgInvalidFieldID)
		return
	}

	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /fields/{id}/slots - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	useCaseReq, err := ToUseCaseRequest(fieldID, dateStr)
	if err != nil {
		h.logger.Warn("GET /fields/{id}/slots - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		if errors.Is(err, getAvailableSlots.ErrInvalidInput) {
			h.logger.Warn("GET /fields/{id}/slots - Invalid input: field_id=%s, error=%v", fieldID, err)
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
		h.logger.Error("GET /fields/{id}/slots - Failed to get slots: field_id=%s, date=%s, error=%v",
			fieldID, dateStr, err)
		handlers.RespondInternalError(w)
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("GET /fields/{id}/slots - Slots retrieved successfully: field_id=%s, date=%s, slots_count=%d",
		fieldID, dateStr, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, response)
}
