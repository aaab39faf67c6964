package cancel_booking

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/areninha/booking-service/internal/api/handlers"
	"github.com/areninha/booking-service/internal/api/middleware"
	"github.com/areninha/booking-service/internal/service/bookings"
	"github.com/areninha/booking-service/pkg/logger"
)

type MockBookingService struct {
	mock.Mock
}

func (m *MockBookingService) Cancel(ctx context.Context, bookingID string, playerID string) error {
	args := m.Called(ctx, bookingID, playerID)
	return args.Error(0)
}

func newRequest(bookingID, playerID string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings/booking/cancel", nil)
	req = mux.SetURLVars(req, map[string]string{"bookingId": bookingID})
	if playerID != "" {
		req = req.WithContext(middleware.WithUserID(req.Context(), playerID))
	}
	return req
}

func TestHandle_Success(t *testing.T) {
	svc := &MockBookingService{}
	svc.On("Cancel", mock.Anything, "b1", "player-1").Return(nil).Once()

	rec := httptest.NewRecorder()
	NewHandler(svc, logger.Nop()).Handle(rec, newRequest("b1", "player-1"))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"id":"b1","status":"cancelled"}`, rec.Body.String())
	svc.AssertExpectations(t)
}

func TestHandle_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{name: "not found", err: bookings.ErrBookingNotFound, wantStatus: http.StatusNotFound, wantMsg: "booking not found"},
		{name: "not owner", err: bookings.ErrAccessDenied, wantStatus: http.StatusForbidden, wantMsg: "access denied"},
		{name: "already cancelled", err: bookings.ErrCannotCancel, wantStatus: http.StatusConflict, wantMsg: "booking cannot be cancelled"},
		{name: "window closed", err: bookings.ErrCancellationWindowClosed, wantStatus: http.StatusConflict, wantMsg: "booking can no longer be cancelled"},
		{name: "internal", err: errors.New("boom"), wantStatus: http.StatusInternalServerError, wantMsg: "internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &MockBookingService{}
			svc.On("Cancel", mock.Anything, "b1", "player-1").Return(tt.err)

			rec := httptest.NewRecorder()
			NewHandler(svc, logger.Nop()).Handle(rec, newRequest("b1", "player-1"))

			assert.Equal(t, tt.wantStatus, rec.Code)
			var body handlers.ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.wantMsg, body.Error)
		})
	}
}

func TestHandle_MissingIdentity(t *testing.T) {
	svc := &MockBookingService{}

	rec := httptest.NewRecorder()
	NewHandler(svc, logger.Nop()).Handle(rec, newRequest("b1", ""))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	svc.AssertNotCalled(t, "Cancel", mock.Anything, mock.Anything, mock.Anything)
}
