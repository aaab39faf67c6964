package list_fields

import (
	"errors"
	"net/http"

	"github.com/areninha/booking-service/internal/api/handlers"
	"github.com/areninha/booking-service/internal/service/catalog"
)

const (
	msgInvalidQuery  = "invalid query parameters"
	msgInvalidFilter = "invalid search filter"
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

// Handle GET /api/v1/fields
// Query params: location, minPrice, maxPrice, type, amenities (все опциональны)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	filter, err := ToDomainFilter(r.URL.Query())
	if err != nil {
		h.logger.Warn("GET /fields - Invalid query: %v", err)
		handlers.RespondBadRequest(w, msgInvalidQuery)
		return
	}

	fields, err := h.service.Search(r.Context(), filter)
	if err != nil {
		if errors.Is(err, catalog.ErrInvalidInput) {
			h.logger.Warn("GET /fields - Invalid filter: %v", err)
			handlers.RespondBadRequest(w, msgInvalidFilter)
			return
		}
		h.logger.Error("GET /fields - Failed to list fields: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /fields - Fields retrieved successfully: count=%d", len(fields))
	handlers.RespondJSON(w, http.StatusOK, fields)
}
