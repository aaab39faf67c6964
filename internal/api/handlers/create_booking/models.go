package create_booking

import (
	"net/mail"
	"strings"

	"github.com/areninha/booking-service/internal/domain"
	"github.com/areninha/booking-service/internal/service/bookings/models"
	createBooking "github.com/areninha/booking-service/internal/usecase/create_booking"
)

// CreateBookingRequest HTTP request model
// ID игрока берется из X-User-ID, а не из тела
type CreateBookingRequest struct {
	FieldID        string  `json:"fieldId"`
	TimeSlotID     string  `json:"timeSlotId"`
	Date           string  `json:"date"` // "2026-10-26"
	PlayerName     string  `json:"playerName"`
	PlayerWhatsapp string  `json:"playerWhatsapp"`
	PlayerEmail    *string `json:"playerEmail,omitempty"`
	PaymentMethod  string  `json:"paymentMethod"` // PIX | CREDIT_CARD | CASH
	Notes          *string `json:"notes,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
// Если email не передан в теле, используется email из заголовка identity,
// некорректный email из заголовка игнорируется
func (r *CreateBookingRequest) ToUseCaseRequest(playerID string, identityEmail *string) (*createBooking.Request, error) {
	date, err := domain.ParseDate(r.Date)
	if err != nil {
		return nil, err
	}

	email := r.PlayerEmail
	if email == nil {
		email = usableIdentityEmail(identityEmail)
	}

	return &createBooking.Request{
		FieldID:        r.FieldID,
		TimeSlotID:     r.TimeSlotID,
		Date:           date,
		PlayerID:       playerID,
		PlayerName:     r.PlayerName,
		PlayerWhatsapp: r.PlayerWhatsapp,
		PlayerEmail:    email,
		PaymentMethod:  r.PaymentMethod,
		Notes:          r.Notes,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *models.BookingResponse {
	return models.FromDomainBooking(resp.Booking)
}

func usableIdentityEmail(email *string) *string {
	if email == nil {
		return nil
	}
	v := strings.TrimSpace(*email)
	if v == "" || len(v) > domain.MaxEmailLength {
		return nil
	}
	if _, err := mail.ParseAddress(v); err != nil {
		return nil
	}
	return &v
}
