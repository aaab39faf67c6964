package get_available_slots

import (
	"github.com/areninha/booking-service/internal/domain"
	getAvailableSlots "github.com/areninha/booking-service/internal/usecase/get_available_slots"
)

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	FieldID string          `json:"fieldId"`
	Date    string          `json:"date"`
	Slots   []AvailableSlot `json:"slots"`
}

// AvailableSlot свободный слот на дату
type AvailableSlot struct {
	ID        string  `json:"id"`
	DayOfWeek int     `json:"dayOfWeek"`
	StartTime string  `json:"startTime"`
	EndTime   string  `json:"endTime"`
	Price     float64 `json:"price"`
	Available bool    `json:"available"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	slots := make([]AvailableSlot, len(resp.Slots))
	for i, slot := range resp.Slots {
		slots[i] = AvailableSlot{
			ID:        slot.ID,
			DayOfWeek: slot.DayOfWeek,
			StartTime: slot.StartTime.String(),
			EndTime:   slot.EndTime.String(),
			Price:     slot.Price,
			Available: true,
		}
	}

	return &AvailableSlotsResponse{
		FieldID: resp.FieldID,
		Date:    resp.Date.Format(domain.DateFormat),
		Slots:   slots,
	}
}

// ToUseCaseRequest создает запрос use case из параметров пути и query
func ToUseCaseRequest(fieldID, dateStr string) (*getAvailableSlots.Request, error) {
	date, err := domain.ParseDate(dateStr)
	if err != nil {
		return nil, err
	}

	return &getAvailableSlots.Request{
		FieldID: fieldID,
		Date:    date,
	}, nil
}
