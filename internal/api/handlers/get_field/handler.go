package get_field

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/areninha/booking-service/internal/api/handlers"
	"github.com/areninha/booking-service/internal/service/catalog"
)

const (
	msgInvalidFieldID = "invalid field id"
	msgNotFound       = "field not found"
)

type Handler struct {
	service CatalogService
	logger  Logger
}

func NewHandler(service CatalogService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/fields/{fieldId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	fieldID := strings.TrimSpace(mux.Vars(r)["fieldId"])
	if fieldID == "" {
		h.logger.Warn("GET /fields/{id} - Missing field ID")
		handlers.RespondBadRequest(w, msgInvalidFieldID)
		return
	}

	field, err := h.service.GetByID(r.Context(), fieldID)
	if err != nil {
		if errors.Is(err, catalog.ErrFieldNotFound) {
			h.logger.Warn("GET /fields/{id} - Field not found: field_id=%s", fieldID)
			handlers.RespondNotFound(w, msgNotFound)
			return
		}
		h.logger.Error("GET /fields/{id} - Failed to get field: field_id=%s, error=%v", fieldID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /fields/{id} - Field retrieved successfully: field_id=%s", fieldID)
	handlers.RespondJSON(w, http.StatusOK, field)
}
