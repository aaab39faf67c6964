package list_fields

import (
	"context"

	"github.com/areninha/booking-service/internal/domain"
	"github.com/areninha/booking-service/internal/service/catalog/models"
)

type CatalogService interface {
	Search(ctx context.Context, filter domain.FieldFilter) ([]*models.FieldResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
