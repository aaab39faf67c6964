package get_available_slots

import (
	"time"

	"github.com/areninha/booking-service/pkg/types"
)

// Request модель запроса на получение свободных слотов
type Request struct {
	FieldID string    // ID площадки
	Date    time.Time // Календарная дата (время игнорируется)
}

// Response модель ответа со списком свободных слотов
type Response struct {
	FieldID string    // ID площадки
	Date    time.Time // Дата, на которую запрашивались слоты
	Slots   []Slot    // Свободные слоты по возрастанию времени начала
}

// Slot свободный слот площадки
type Slot struct {
	ID        string
	DayOfWeek int
	StartTime types.TimeString
	EndTime   types.TimeString
	Price     float64
}
