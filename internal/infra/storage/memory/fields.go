// Package memory хранилище каталога и журнала бронирований в памяти процесса
// Используется при storage.driver = "memory" и в тестах
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/areninha/booking-service/internal/domain"
	fieldrepo "github.com/areninha/booking-service/internal/infra/storage/field"
)

// FieldStore каталог площадок в памяти
type FieldStore struct {
	mu     sync.RWMutex
	fields map[string]*domain.Field
}

// NewFieldStore создает пустой каталог
func NewFieldStore() *FieldStore {
	return &FieldStore{fields: make(map[string]*domain.Field)}
}

// List возвращает все площадки, отсортированные по названию
func (s *FieldStore) List(ctx context.Context) ([]*domain.Field, error) {
	return s.Search(ctx, domain.FieldFilter{})
}

// Search возвращает площадки, удовлетворяющие всем условиям фильтра
func (s *FieldStore) Search(_ context.Context, filter domain.FieldFilter) ([]*domain.Field, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*domain.Field, 0, len(s.fields))
	for _, f := range s.fields {
		if matches(f, filter) {
			result = append(result, cloneField(f))
		}
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].Name != result[j].Name {
			return result[i].Name < result[j].Name
		}
		return result[i].ID < result[j].ID
	})

	return result, nil
}

// GetByID получает площадку по ID
func (s *FieldStore) GetByID(_ context.Context, id string) (*domain.Field, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	f, ok := s.fields[id]
	if !ok {
		return nil, fieldrepo.ErrFieldNotFound
	}
	return cloneField(f), nil
}

// Count возвращает количество площадок
func (s *FieldStore) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.fields), nil
}

// Create сохраняет площадку вместе со слотами
func (s *FieldStore) Create(_ context.Context, f *domain.Field) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fields[f.ID] = cloneField(f)
	return nil
}

func matches(f *domain.Field, filter domain.FieldFilter) bool {
	if filter.Location != "" {
		needle := strings.ToLower(filter.Location)
		if !strings.Contains(strings.ToLower(f.Location), needle) &&
			!strings.Contains(strings.ToLower(f.Address), needle) {
			return false
		}
	}
	if filter.MinPrice != nil && f.PricePerHour < *filter.MinPrice {
		return false
	}
	if filter.MaxPrice != nil && f.PricePerHour > *filter.MaxPrice {
		return false
	}
	if filter.Type != nil && f.Type != *filter.Type {
		return false
	}
	if len(filter.Amenities) > 0 && !f.HasAnyAmenity(filter.Amenities) {
		return false
	}
	return true
}

func cloneField(f *domain.Field) *domain.Field {
	c := *f
	c.Photos = append([]string(nil), f.Photos...)
	c.Amenities = append([]string(nil), f.Amenities...)
	c.Rules = append([]string(nil), f.Rules...)
	c.TimeSlots = append([]domain.TimeSlot(nil), f.TimeSlots...)
	return &c
}
