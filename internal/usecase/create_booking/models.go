package create_booking

import (
	"time"

	"github.com/areninha/booking-service/internal/domain"
)

// Request модель запроса на создание бронирования
type Request struct {
	FieldID        string    // ID площадки
	TimeSlotID     string    // ID шаблона слота площадки
	Date           time.Time // Дата бронирования (без времени)
	PlayerID       string    // ID игрока от identity-провайдера
	PlayerName     string    // Имя игрока
	PlayerWhatsapp string    // WhatsApp для связи (обязателен)
	PlayerEmail    *string   // Email (опционально)
	PaymentMethod  string    // PIX | CREDIT_CARD | CASH
	Notes          *string   // Заметки (опционально)
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID      string          // ID созданного бронирования
	Booking *domain.Booking // Созданное бронирование со снимком площадки и слота
}
