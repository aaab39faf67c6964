package create_booking

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/areninha/booking-service/internal/api/handlers"
	"github.com/areninha/booking-service/internal/api/middleware"
	"github.com/areninha/booking-service/internal/domain"
	"github.com/areninha/booking-service/internal/service/bookings/models"
	createBooking "github.com/areninha/booking-service/internal/usecase/create_booking"
	"github.com/areninha/booking-service/pkg/logger"
)

type MockUseCase struct {
	mock.Mock
}

func (m *MockUseCase) Execute(ctx context.Context, req *createBooking.Request) (*createBooking.Response, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*createBooking.Response), args.Error(1)
}

const validBody = `{
	"fieldId": "f1",
	"timeSlotId": "mon-18",
	"date": "2026-10-26",
	"playerName": "João Silva",
	"playerWhatsapp": "+55 11 99999-0000",
	"paymentMethod": "PIX"
}`

func newRequest(body string, userID string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", strings.NewReader(body))
	if userID == "" {
		return req
	}
	return req.WithContext(middleware.WithUserID(req.Context(), userID))
}

func TestHandle_Created(t *testing.T) {
	uc := &MockUseCase{}
	date := time.Date(2026, 10, 26, 0, 0, 0, 0, time.UTC)
	booking := &domain.Booking{
		ID:            "b1",
		FieldID:       "f1",
		TimeSlotID:    "mon-18",
		BookingDate:   date,
		Status:        domain.StatusConfirmed,
		PlayerID:      "player-1",
		PlayerName:    "João Silva",
		PaymentMethod: domain.PaymentPix,
		Snapshot:      domain.BookingSnapshot{FieldName: "Arena", StartTime: "18:00", EndTime: "19:00", Price: 200},
	}

	uc.On("Execute", mock.Anything, mock.MatchedBy(func(r *createBooking.Request) bool {
		return r.PlayerID == "player-1" &&
			r.FieldID == "f1" &&
			r.TimeSlotID == "mon-18" &&
			r.Date.Equal(date) &&
			r.PaymentMethod == "PIX" &&
			r.PlayerEmail == nil
	})).Return(&createBooking.Response{ID: "b1", Booking: booking}, nil).Once()

	rec := httptest.NewRecorder()
	NewHandler(uc, logger.Nop()).Handle(rec, newRequest(validBody, "player-1"))

	require.Equal(t, http.StatusCreated, rec.Code)
	var body models.BookingResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "b1", body.ID)
	assert.Equal(t, "2026-10-26", body.BookingDate)
	assert.Equal(t, "confirmed", body.Status)
	assert.Equal(t, "Arena", body.Snapshot.FieldName)
	uc.AssertExpectations(t)
}

func TestHandle_EmailFromIdentity(t *testing.T) {
	uc := &MockUseCase{}
	uc.On("Execute", mock.Anything, mock.MatchedBy(func(r *createBooking.Request) bool {
		return r.PlayerEmail != nil && *r.PlayerEmail == "joao@example.com"
	})).Return(&createBooking.Response{ID: "b1", Booking: &domain.Booking{ID: "b1"}}, nil).Once()

	// Email из заголовка попадает в контекст через Auth
	h := middleware.Auth(http.HandlerFunc(NewHandler(uc, logger.Nop()).Handle))
	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", strings.NewReader(validBody))
	req.Header.Set(middleware.HeaderUserID, "player-1")
	req.Header.Set(middleware.HeaderUserEmail, "joao@example.com")

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	uc.AssertExpectations(t)
}

func TestHandle_MalformedIdentityEmailIsIgnored(t *testing.T) {
	uc := &MockUseCase{}
	uc.On("Execute", mock.Anything, mock.MatchedBy(func(r *createBooking.Request) bool {
		return r.PlayerEmail == nil
	})).Return(&createBooking.Response{ID: "b1", Booking: &domain.Booking{ID: "b1"}}, nil).Once()

	h := middleware.Auth(http.HandlerFunc(NewHandler(uc, logger.Nop()).Handle))
	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", strings.NewReader(validBody))
	req.Header.Set(middleware.HeaderUserID, "player-1")
	req.Header.Set(middleware.HeaderUserEmail, "not an email")

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	uc.AssertExpectations(t)
}

func TestHandle_BodyEmailWinsOverIdentity(t *testing.T) {
	uc := &MockUseCase{}
	uc.On("Execute", mock.Anything, mock.MatchedBy(func(r *createBooking.Request) bool {
		return r.PlayerEmail != nil && *r.PlayerEmail == "maria@example.com"
	})).Return(&createBooking.Response{ID: "b1", Booking: &domain.Booking{ID: "b1"}}, nil).Once()

	body := strings.Replace(validBody, `"paymentMethod": "PIX"`, `"paymentMethod": "PIX", "playerEmail": "maria@example.com"`, 1)
	h := middleware.Auth(http.HandlerFunc(NewHandler(uc, logger.Nop()).Handle))
	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", strings.NewReader(body))
	req.Header.Set(middleware.HeaderUserID, "player-1")
	req.Header.Set(middleware.HeaderUserEmail, "joao@example.com")

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	uc.AssertExpectations(t)
}

func TestHandle_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{name: "slot taken", err: createBooking.ErrSlotNotAvailable, wantStatus: http.StatusConflict, wantMsg: "slot no longer available"},
		{name: "field not found", err: createBooking.ErrFieldNotFound, wantStatus: http.StatusNotFound, wantMsg: "field not found"},
		{name: "slot not found", err: createBooking.ErrTimeSlotNotFound, wantStatus: http.StatusNotFound, wantMsg: "time slot not found"},
		{name: "past date", err: createBooking.ErrInvalidDate, wantStatus: http.StatusBadRequest},
		{name: "weekday mismatch", err: createBooking.ErrInvalidTimeSlot, wantStatus: http.StatusBadRequest},
		{name: "invalid input", err: fmt.Errorf("%w: whatsapp is required", createBooking.ErrInvalidInput), wantStatus: http.StatusBadRequest},
		{name: "internal", err: fmt.Errorf("%w: boom", createBooking.ErrInternal), wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &MockUseCase{}
			uc.On("Execute", mock.Anything, mock.Anything).Return(nil, tt.err)

			rec := httptest.NewRecorder()
			NewHandler(uc, logger.Nop()).Handle(rec, newRequest(validBody, "player-1"))

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantMsg != "" {
				var body handlers.ErrorResponse
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
				assert.Equal(t, tt.wantMsg, body.Error)
			}
		})
	}
}

func TestHandle_BadRequests(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		userID     string
		wantStatus int
	}{
		{name: "no identity", body: validBody, wantStatus: http.StatusUnauthorized},
		{name: "malformed body", body: `{"fieldId":`, userID: "player-1", wantStatus: http.StatusBadRequest},
		{name: "bad date", body: strings.Replace(validBody, "2026-10-26", "26.10.2026", 1), userID: "player-1", wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &MockUseCase{}
			rec := httptest.NewRecorder()
			NewHandler(uc, logger.Nop()).Handle(rec, newRequest(tt.body, tt.userID))

			assert.Equal(t, tt.wantStatus, rec.Code)
			uc.AssertNotCalled(t, "Execute", mock.Anything, mock.Anything)
		})
	}
}
