package get_player_bookings

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/areninha/booking-service/internal/api/middleware"
	"github.com/areninha/booking-service/internal/service/bookings"
	"github.com/areninha/booking-service/internal/service/bookings/models"
	"github.com/areninha/booking-service/pkg/logger"
)

type MockBookingService struct {
	mock.Mock
}

func (m *MockBookingService) GetPlayerBookings(ctx context.Context, playerID string, status *string) (*models.BookingListResponse, error) {
	args := m.Called(ctx, playerID, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.BookingListResponse), args.Error(1)
}

func newRequest(query, playerID string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/players/me/bookings"+query, nil)
	if playerID != "" {
		req = req.WithContext(middleware.WithUserID(req.Context(), playerID))
	}
	return req
}

func TestHandle_ReturnsBookings(t *testing.T) {
	svc := &MockBookingService{}
	svc.On("GetPlayerBookings", mock.Anything, "player-1", (*string)(nil)).Return(&models.BookingListResponse{
		Bookings: []models.BookingResponse{{ID: "b2"}, {ID: "b1"}},
	}, nil).Once()

	rec := httptest.NewRecorder()
	NewHandler(svc, logger.Nop()).Handle(rec, newRequest("", "player-1"))

	require.Equal(t, http.StatusOK, rec.Code)
	var body []models.BookingResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body, 2)
	assert.Equal(t, "b2", body[0].ID)
	svc.AssertExpectations(t)
}

func TestHandle_StatusFilter(t *testing.T) {
	svc := &MockBookingService{}
	svc.On("GetPlayerBookings", mock.Anything, "player-1", mock.MatchedBy(func(s *string) bool {
		return s != nil && *s == "cancelled"
	})).Return(&models.BookingListResponse{Bookings: []models.BookingResponse{}}, nil).Once()

	rec := httptest.NewRecorder()
	NewHandler(svc, logger.Nop()).Handle(rec, newRequest("?status=cancelled", "player-1"))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
	svc.AssertExpectations(t)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name       string
		playerID   string
		err        error
		wantStatus int
	}{
		{name: "no identity", wantStatus: http.StatusUnauthorized},
		{name: "invalid status", playerID: "player-1", err: fmt.Errorf("%w: invalid status", bookings.ErrInvalidInput), wantStatus: http.StatusBadRequest},
		{name: "internal", playerID: "player-1", err: fmt.Errorf("%w: boom", bookings.ErrInternal), wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &MockBookingService{}
			if tt.err != nil {
				svc.On("GetPlayerBookings", mock.Anything, tt.playerID, mock.Anything).Return(nil, tt.err)
			}

			rec := httptest.NewRecorder()
			NewHandler(svc, logger.Nop()).Handle(rec, newRequest("?status=x", tt.playerID))
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
