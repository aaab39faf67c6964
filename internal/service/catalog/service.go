package catalog

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/areninha/booking-service/internal/domain"
	fieldRepo "github.com/areninha/booking-service/internal/infra/storage/field"
	"github.com/areninha/booking-service/internal/service/catalog/models"
)

// Service сервис каталога площадок
type Service struct {
	fieldRepo FieldRepository
	cache     FieldCache
	txManager TransactionManager
	logger    Logger
	now       func() time.Time

	seedMu sync.Mutex
	seeded bool
}

// NewService создает сервис каталога
// cache может быть nil, тогда все чтения идут в хранилище
func NewService(
	fieldRepo FieldRepository,
	cache FieldCache,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		fieldRepo: fieldRepo,
		cache:     cache,
		txManager: txManager,
		logger:    logger,
		now:       time.Now,
	}
}

// ListAll возвращает все площадки
// При первом обращении к пустому каталогу засевает демонстрационные площадки
func (s *Service) ListAll(ctx context.Context) ([]*models.FieldResponse, error) {
	fields, err := s.listAll(ctx)
	if err != nil {
		return nil, err
	}
	return models.FromDomainFieldList(fields), nil
}

// Search возвращает площадки, удовлетворяющие фильтру
// Пустой фильтр эквивалентен ListAll
func (s *Service) Search(ctx context.Context, filter domain.FieldFilter) ([]*models.FieldResponse, error) {
	if err := validateFilter(filter); err != nil {
		s.logger.Warn("Search: invalid filter: %v", err)
		return nil, err
	}

	if filter.IsEmpty() {
		return s.ListAll(ctx)
	}

	if err := s.ensureSeeded(ctx); err != nil {
		return nil, err
	}

	fields, err := s.fieldRepo.Search(ctx, filter)
	if err != nil {
		s.logger.Error("Search: repository error: %v", err)
		return nil, fmt.Errorf("%w: Search - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Search: found %d fields", len(fields))
	return models.FromDomainFieldList(fields), nil
}

// GetByID возвращает площадку по ID
func (s *Service) GetByID(ctx context.Context, id string) (*models.FieldResponse, error) {
	if err := s.ensureSeeded(ctx); err != nil {
		return nil, err
	}

	if s.cache != nil {
		cached, ok, err := s.cache.GetField(ctx, id)
		if err != nil {
			s.logger.Warn("GetByID: cache read failed for field id=%s: %v", id, err)
		}
		if ok {
			return models.FromDomainField(cached), nil
		}
	}

	field, err := s.fieldRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, fieldRepo.ErrFieldNotFound) {
			s.logger.Warn("GetByID: field id=%s not found", id)
			return nil, ErrFieldNotFound
		}
		s.logger.Error("GetByID: repository error for field id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	if s.cache != nil {
		if err := s.cache.SetField(ctx, field); err != nil {
			s.logger.Warn("GetByID: cache write failed for field id=%s: %v", id, err)
		}
	}

	return models.FromDomainField(field), nil
}

func (s *Service) listAll(ctx context.Context) ([]*domain.Field, error) {
	if err := s.ensureSeeded(ctx); err != nil {
		return nil, err
	}

	if s.cache != nil {
		cached, ok, err := s.cache.GetFields(ctx)
		if err != nil {
			s.logger.Warn("ListAll: cache read failed: %v", err)
		}
		if ok {
			return cached, nil
		}
	}

	fields, err := s.fieldRepo.List(ctx)
	if err != nil {
		s.logger.Error("ListAll: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListAll - repository error: %v", ErrInternal, err)
	}

	if s.cache != nil {
		if err := s.cache.SetFields(ctx, fields); err != nil {
			s.logger.Warn("ListAll: cache write failed: %v", err)
		}
	}

	return fields, nil
}

// Seed засевает пустой каталог демо-площадками, повторный вызов ничего не делает
func (s *Service) Seed(ctx context.Context) error {
	return s.ensureSeeded(ctx)
}

// ensureSeeded засевает каталог один раз за жизнь процесса, если хранилище пустое
func (s *Service) ensureSeeded(ctx context.Context) error {
	s.seedMu.Lock()
	defer s.seedMu.Unlock()

	if s.seeded {
		return nil
	}

	count, err := s.fieldRepo.Count(ctx)
	if err != nil {
		s.logger.Error("ensureSeeded: failed to count fields: %v", err)
		return fmt.Errorf("%w: ensureSeeded - count fields: %v", ErrInternal, err)
	}

	if count > 0 {
		s.seeded = true
		return nil
	}

	samples := SampleFields(s.now().UTC())
	ids := make([]string, len(samples))

	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		for i, f := range samples {
			if err := f.Validate(); err != nil {
				return fmt.Errorf("sample field %s: %w", f.Name, err)
			}
			if err := s.fieldRepo.Create(txCtx, f); err != nil {
				return err
			}
			ids[i] = f.ID
		}
		return nil
	})
	if err != nil {
		// Другая реплика могла засеять каталог параллельно
		if recount, countErr := s.fieldRepo.Count(ctx); countErr == nil && recount > 0 {
			s.logger.Warn("ensureSeeded: seeding skipped, catalog already has %d fields: %v", recount, err)
			s.seeded = true
			return nil
		}
		s.logger.Error("ensureSeeded: failed to seed sample fields: %v", err)
		return fmt.Errorf("%w: ensureSeeded - seed: %v", ErrInternal, err)
	}

	if s.cache != nil {
		if err := s.cache.Invalidate(ctx, ids...); err != nil {
			s.logger.Warn("ensureSeeded: cache invalidation failed: %v", err)
		}
	}

	s.seeded = true
	s.logger.Info("ensureSeeded: seeded %d sample fields", len(samples))
	return nil
}

func validateFilter(filter domain.FieldFilter) error {
	if !isFinite(filter.MinPrice) || !isFinite(filter.MaxPrice) {
		return fmt.Errorf("%w: price bounds must be finite numbers", ErrInvalidInput)
	}
	if filter.MinPrice != nil && *filter.MinPrice < 0 {
		return fmt.Errorf("%w: minPrice must not be negative", ErrInvalidInput)
	}
	if filter.MaxPrice != nil && *filter.MaxPrice < 0 {
		return fmt.Errorf("%w: maxPrice must not be negative", ErrInvalidInput)
	}
	if filter.MinPrice != nil && filter.MaxPrice != nil && *filter.MinPrice > *filter.MaxPrice {
		return fmt.Errorf("%w: minPrice must not exceed maxPrice", ErrInvalidInput)
	}
	if filter.Type != nil && !filter.Type.IsValid() {
		return fmt.Errorf("%w: unknown field type %q", ErrInvalidInput, *filter.Type)
	}
	return nil
}

func isFinite(v *float64) bool {
	return v == nil || !(math.IsNaN(*v) || math.IsInf(*v, 0))
}
