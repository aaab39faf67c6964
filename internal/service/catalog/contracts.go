package catalog

import (
	"context"

	"github.com/areninha/booking-service/internal/domain"
)

// FieldRepository интерфейс хранилища площадок
type FieldRepository interface {
	List(ctx context.Context) ([]*domain.Field, error)
	Search(ctx context.Context, filter domain.FieldFilter) ([]*domain.Field, error)
	GetByID(ctx context.Context, id string) (*domain.Field, error)
	Count(ctx context.Context) (int, error)
	Create(ctx context.Context, field *domain.Field) error
}

// FieldCache интерфейс кеша площадок (опционально)
type FieldCache interface {
	GetFields(ctx context.Context) ([]*domain.Field, bool, error)
	SetFields(ctx context.Context, fields []*domain.Field) error
	GetField(ctx context.Context, id string) (*domain.Field, bool, error)
	SetField(ctx context.Context, field *domain.Field) error
	Invalidate(ctx context.Context, ids ...string) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
