package domain

import (
	"errors"
	"time"
)

// FieldType тип площадки
type FieldType string

const (
	FieldTypeSociety FieldType = "SOCIETY"
	FieldTypeFutsal  FieldType = "FUTSAL"
	FieldTypeBeach   FieldType = "BEACH"
	FieldTypeIndoor  FieldType = "INDOOR"
)

// ErrNegativePrice возвращается, когда цена за час отрицательная
var ErrNegativePrice = errors.New("domain: price per hour must not be negative")

// ErrInvalidFieldType возвращается при неизвестном типе площадки
var ErrInvalidFieldType = errors.New("domain: invalid field type")

// IsValid возвращает true для известных типов площадки
func (t FieldType) IsValid() bool {
	switch t {
	case FieldTypeSociety, FieldTypeFutsal, FieldTypeBeach, FieldTypeIndoor:
		return true
	}
	return false
}

// Contact контакты владельца площадки
type Contact struct {
	Phone    string
	Whatsapp string
	Email    string
}

// Field площадка, доступная для бронирования
type Field struct {
	ID           string
	Name         string
	Location     string
	Address      string
	Description  string
	Type         FieldType
	PricePerHour float64
	Rating       float64
	OwnerID      string
	Photos       []string
	Amenities    []string
	Rules        []string
	Contact      Contact

	// Еженедельные шаблоны слотов площадки
	TimeSlots []TimeSlot

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Validate проверяет инварианты площадки и всех её слотов
func (f *Field) Validate() error {
	if f.PricePerHour < 0 {
		return ErrNegativePrice
	}
	if !f.Type.IsValid() {
		return ErrInvalidFieldType
	}
	for i := range f.TimeSlots {
		if f.TimeSlots[i].FieldID != f.ID {
			return ErrSlotFieldMismatch
		}
		if err := f.TimeSlots[i].Validate(); err != nil {
			return err
		}
	}
	return nil
}

// TimeSlotByID ищет шаблон слота, принадлежащий площадке
func (f *Field) TimeSlotByID(slotID string) (*TimeSlot, bool) {
	for i := range f.TimeSlots {
		if f.TimeSlots[i].ID == slotID {
			return &f.TimeSlots[i], true
		}
	}
	return nil, false
}

// HasAnyAmenity возвращает true, если у площадки есть хотя бы одно из удобств
func (f *Field) HasAnyAmenity(amenities []string) bool {
	for _, want := range amenities {
		for _, have := range f.Amenities {
			if have == want {
				return true
			}
		}
	}
	return false
}

// FieldFilter фильтр поиска площадок
// Пустые поля означают "без ограничения", условия объединяются через AND
type FieldFilter struct {
	Location  string     // Подстрока в location или address (без учета регистра)
	MinPrice  *float64   // Минимальная цена за час (включительно)
	MaxPrice  *float64   // Максимальная цена за час (включительно)
	Type      *FieldType // Точное совпадение типа
	Amenities []string   // Хотя бы одно из удобств
}

// IsEmpty возвращает true, если фильтр не задает ни одного условия
func (f FieldFilter) IsEmpty() bool {
	return f.Location == "" && f.MinPrice == nil && f.MaxPrice == nil && f.Type == nil && len(f.Amenities) == 0
}
