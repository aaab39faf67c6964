package models

import (
	"time"

	"github.com/areninha/booking-service/internal/domain"
)

// ContactResponse контакты площадки
type ContactResponse struct {
	Phone    string `json:"phone"`
	Whatsapp string `json:"whatsapp"`
	Email    string `json:"email"`
}

// TimeSlotResponse шаблон слота площадки
type TimeSlotResponse struct {
	ID        string  `json:"id"`
	FieldID   string  `json:"fieldId"`
	DayOfWeek int     `json:"dayOfWeek"` // 0 = воскресенье
	StartTime string  `json:"startTime"` // "18:00"
	EndTime   string  `json:"endTime"`   // "19:00"
	Price     float64 `json:"price"`
	Available bool    `json:"available"`
}

// FieldResponse ответ с данными площадки
type FieldResponse struct {
	ID           string             `json:"id"`
	Name         string             `json:"name"`
	Location     string             `json:"location"`
	Address      string             `json:"address"`
	Description  string             `json:"description"`
	Type         string             `json:"type"`
	PricePerHour float64            `json:"pricePerHour"`
	Rating       float64            `json:"rating"`
	OwnerID      string             `json:"ownerId"`
	Photos       []string           `json:"photos"`
	Amenities    []string           `json:"amenities"`
	Rules        []string           `json:"rules"`
	Contact      ContactResponse    `json:"contact"`
	TimeSlots    []TimeSlotResponse `json:"timeSlots"`
	CreatedAt    time.Time          `json:"createdAt"`
	UpdatedAt    time.Time          `json:"updatedAt"`
}

// FromDomainTimeSlot конвертирует шаблон слота в response
func FromDomainTimeSlot(s domain.TimeSlot) TimeSlotResponse {
	return TimeSlotResponse{
		ID:        s.ID,
		FieldID:   s.FieldID,
		DayOfWeek: s.DayOfWeek,
		StartTime: s.StartTime.String(),
		EndTime:   s.EndTime.String(),
		Price:     s.Price,
		Available: s.Available,
	}
}

// FromDomainTimeSlots конвертирует список шаблонов слотов
func FromDomainTimeSlots(slots []domain.TimeSlot) []TimeSlotResponse {
	result := make([]TimeSlotResponse, len(slots))
	for i, s := range slots {
		result[i] = FromDomainTimeSlot(s)
	}
	return result
}

// FromDomainField конвертирует площадку в response
func FromDomainField(f *domain.Field) *FieldResponse {
	return &FieldResponse{
		ID:           f.ID,
		Name:         f.Name,
		Location:     f.Location,
		Address:      f.Address,
		Description:  f.Description,
		Type:         string(f.Type),
		PricePerHour: f.PricePerHour,
		Rating:       f.Rating,
		OwnerID:      f.OwnerID,
		Photos:       nonNil(f.Photos),
		Amenities:    nonNil(f.Amenities),
		Rules:        nonNil(f.Rules),
		Contact: ContactResponse{
			Phone:    f.Contact.Phone,
			Whatsapp: f.Contact.Whatsapp,
			Email:    f.Contact.Email,
		},
		TimeSlots: FromDomainTimeSlots(f.TimeSlots),
		CreatedAt: f.CreatedAt,
		UpdatedAt: f.UpdatedAt,
	}
}

// FromDomainFieldList конвертирует список площадок
func FromDomainFieldList(fields []*domain.Field) []*FieldResponse {
	result := make([]*FieldResponse, len(fields))
	for i, f := range fields {
		result[i] = FromDomainField(f)
	}
	return result
}

// В JSON пустые списки отдаются как [], а не null
func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
