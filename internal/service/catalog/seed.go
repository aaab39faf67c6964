package catalog

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/areninha/booking-service/internal/domain"
	"github.com/areninha/booking-service/pkg/types"
)

// seedNamespace пространство имен для детерминированных ID демо-данных
var seedNamespace = uuid.MustParse("6f1f6c1e-8f0e-4c55-9a55-7a3f0b2e4d10")

func seedID(parts ...interface{}) string {
	return uuid.NewSHA1(seedNamespace, []byte(fmt.Sprint(parts...))).String()
}

// weeklySlots строит часовые слоты с start по end (не включая) для указанных дней недели
func weeklySlots(fieldID string, days []time.Weekday, startHour, endHour int, price float64) []domain.TimeSlot {
	slots := make([]domain.TimeSlot, 0, len(days)*(endHour-startHour))
	for _, day := range days {
		for h := startHour; h < endHour; h++ {
			start := types.MustTimeString(fmt.Sprintf("%02d:00", h))
			end, err := start.AddMinutes(60)
			if err != nil {
				// Слот до полуночи не помещается в сутки
				break
			}
			slots = append(slots, domain.TimeSlot{
				ID:        seedID(fieldID, "/", int(day), "/", start),
				FieldID:   fieldID,
				DayOfWeek: int(day),
				StartTime: start,
				EndTime:   end,
				Price:     price,
				Available: true,
			})
		}
	}
	return slots
}

var (
	weekdays = []time.Weekday{time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday}
	weekend  = []time.Weekday{time.Saturday, time.Sunday}
	allWeek  = append(append([]time.Weekday{}, weekdays...), weekend...)
)

// SampleFields три демонстрационные площадки для пустого каталога
func SampleFields(now time.Time) []*domain.Field {
	societyID := seedID("field/arena-pinheiros")
	futsalID := seedID("field/quadra-centro")
	beachID := seedID("field/beach-santos")

	society := &domain.Field{
		ID:           societyID,
		Name:         "Arena Pinheiros",
		Location:     "Pinheiros, São Paulo",
		Address:      "Rua dos Pinheiros, 1200",
		Description:  "Campo society com grama sintética e iluminação noturna",
		Type:         domain.FieldTypeSociety,
		PricePerHour: 180,
		Rating:       4.7,
		OwnerID:      seedID("owner/1"),
		Photos:       []string{"fields/arena-pinheiros/1.jpg", "fields/arena-pinheiros/2.jpg"},
		Amenities:    []string{"parking", "showers", "lighting", "bar"},
		Rules:        []string{"Somente chuteira society", "Chegar 10 minutos antes"},
		Contact:      domain.Contact{Phone: "+55 11 3000-1000", Whatsapp: "+55 11 99000-1000", Email: "contato@arenapinheiros.com.br"},
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	society.TimeSlots = append(
		weeklySlots(societyID, weekdays, 18, 23, 180),
		weeklySlots(societyID, weekend, 8, 20, 220)...,
	)

	futsal := &domain.Field{
		ID:           futsalID,
		Name:         "Quadra Centro",
		Location:     "Centro, São Paulo",
		Address:      "Rua Augusta, 350",
		Description:  "Quadra coberta de futsal com arquibancada",
		Type:         domain.FieldTypeFutsal,
		PricePerHour: 120,
		Rating:       4.3,
		OwnerID:      seedID("owner/2"),
		Photos:       []string{"fields/quadra-centro/1.jpg"},
		Amenities:    []string{"showers", "lockers", "covered"},
		Rules:        []string{"Proibido tênis com sola preta"},
		Contact:      domain.Contact{Phone: "+55 11 3000-2000", Whatsapp: "+55 11 99000-2000", Email: "reservas@quadracentro.com.br"},
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	futsal.TimeSlots = weeklySlots(futsalID, allWeek, 7, 23, 120)

	beach := &domain.Field{
		ID:           beachID,
		Name:         "Beach Arena Santos",
		Location:     "Gonzaga, Santos",
		Address:      "Av. Bartolomeu de Gusmão, 80",
		Description:  "Duas quadras de areia para beach soccer e futevôlei",
		Type:         domain.FieldTypeBeach,
		PricePerHour: 90,
		Rating:       4.5,
		OwnerID:      seedID("owner/3"),
		Photos:       []string{"fields/beach-santos/1.jpg"},
		Amenities:    []string{"bar", "lighting"},
		Rules:        []string{"Jogar descalço"},
		Contact:      domain.Contact{Phone: "+55 13 3000-3000", Whatsapp: "+55 13 99000-3000", Email: "ola@beacharena.com.br"},
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	beach.TimeSlots = weeklySlots(beachID, allWeek, 6, 22, 90)

	return []*domain.Field{society, futsal, beach}
}
