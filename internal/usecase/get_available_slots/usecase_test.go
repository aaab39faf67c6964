package get_available_slots

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/areninha/booking-service/internal/domain"
	"github.com/areninha/booking-service/internal/infra/storage/memory"
	"github.com/areninha/booking-service/pkg/logger"
	"github.com/areninha/booking-service/pkg/types"
)

// 2026-10-26 - понедельник
var monday = time.Date(2026, 10, 26, 0, 0, 0, 0, time.UTC)

func testField() *domain.Field {
	slot := func(id string, day time.Weekday, start, end types.TimeString, available bool) domain.TimeSlot {
		return domain.TimeSlot{
			ID: id, FieldID: "field-1", DayOfWeek: int(day),
			StartTime: start, EndTime: end, Price: 100, Available: available,
		}
	}

	return &domain.Field{
		ID:           "field-1",
		Name:         "Arena",
		Type:         domain.FieldTypeSociety,
		PricePerHour: 100,
		TimeSlots: []domain.TimeSlot{
			slot("mon-20", time.Monday, "20:00", "21:00", true),
			slot("mon-18", time.Monday, "18:00", "19:00", true),
			slot("mon-19", time.Monday, "19:00", "20:00", true),
			slot("mon-closed", time.Monday, "21:00", "22:00", false),
			slot("tue-18", time.Tuesday, "18:00", "19:00", true),
		},
	}
}

type fixture struct {
	uc       *UseCase
	bookings *memory.BookingStore
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	fields := memory.NewFieldStore()
	require.NoError(t, fields.Create(context.Background(), testField()))
	bookings := memory.NewBookingStore()

	return &fixture{
		uc:       NewUseCase(fields, bookings, logger.Nop()),
		bookings: bookings,
	}
}

func (f *fixture) book(t *testing.T, id, slotID string, date time.Time, status domain.BookingStatus) {
	t.Helper()
	_, err := f.bookings.Create(context.Background(), &domain.Booking{
		ID: id, FieldID: "field-1", TimeSlotID: slotID, BookingDate: date, Status: status, PlayerID: "p1",
	})
	require.NoError(t, err)
}

func slotIDs(slots []Slot) []string {
	ids := make([]string, len(slots))
	for i, s := range slots {
		ids[i] = s.ID
	}
	return ids
}

func TestExecute_FiltersByWeekdayAndSorts(t *testing.T) {
	f := newFixture(t)

	resp, err := f.uc.Execute(context.Background(), &Request{FieldID: "field-1", Date: monday})
	require.NoError(t, err)

	assert.Equal(t, "field-1", resp.FieldID)
	assert.Equal(t, monday, resp.Date)
	assert.Equal(t, []string{"mon-18", "mon-19", "mon-20"}, slotIDs(resp.Slots))
}

func TestExecute_ExcludesOnlyConfirmedBookings(t *testing.T) {
	f := newFixture(t)

	f.book(t, "b1", "mon-19", monday, domain.StatusConfirmed)
	f.book(t, "b2", "mon-18", monday, domain.StatusCancelled)
	f.book(t, "b3", "mon-20", monday, domain.StatusPending)
	// Бронирование на следующий понедельник не влияет
	f.book(t, "b4", "mon-20", monday.AddDate(0, 0, 7), domain.StatusConfirmed)

	resp, err := f.uc.Execute(context.Background(), &Request{FieldID: "field-1", Date: monday})
	require.NoError(t, err)
	assert.Equal(t, []string{"mon-18", "mon-20"}, slotIDs(resp.Slots))
}

func TestExecute_SlotReturnsAfterCancellation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.book(t, "b1", "mon-18", monday, domain.StatusConfirmed)

	resp, err := f.uc.Execute(ctx, &Request{FieldID: "field-1", Date: monday})
	require.NoError(t, err)
	assert.NotContains(t, slotIDs(resp.Slots), "mon-18")

	require.NoError(t, f.bookings.Cancel(ctx, "b1", time.Now()))

	resp, err = f.uc.Execute(ctx, &Request{FieldID: "field-1", Date: monday})
	require.NoError(t, err)
	assert.Contains(t, slotIDs(resp.Slots), "mon-18")
}

func TestExecute_IgnoresTimeOfDay(t *testing.T) {
	f := newFixture(t)

	resp, err := f.uc.Execute(context.Background(), &Request{FieldID: "field-1", Date: monday.Add(23 * time.Hour)})
	require.NoError(t, err)
	assert.Len(t, resp.Slots, 3)
	assert.Equal(t, monday, resp.Date)
}

func TestExecute_UnknownFieldReturnsEmpty(t *testing.T) {
	f := newFixture(t)

	resp, err := f.uc.Execute(context.Background(), &Request{FieldID: "nope", Date: monday})
	require.NoError(t, err)
	assert.NotNil(t, resp.Slots)
	assert.Empty(t, resp.Slots)
}

func TestExecute_DayWithoutTemplates(t *testing.T) {
	f := newFixture(t)

	resp, err := f.uc.Execute(context.Background(), &Request{FieldID: "field-1", Date: monday.AddDate(0, 0, 3)})
	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
}

func TestExecute_Idempotent(t *testing.T) {
	f := newFixture(t)
	f.book(t, "b1", "mon-19", monday, domain.StatusConfirmed)

	req := &Request{FieldID: "field-1", Date: monday}
	first, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)
	second, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestExecute_InvalidInput(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.Execute(context.Background(), &Request{FieldID: "", Date: monday})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = f.uc.Execute(context.Background(), &Request{FieldID: "field-1"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

type failingBookings struct{}

func (failingBookings) GetByFieldAndDate(context.Context, string, time.Time) ([]*domain.Booking, error) {
	return nil, errors.New("connection reset")
}

func TestExecute_StorageFailure(t *testing.T) {
	fields := memory.NewFieldStore()
	require.NoError(t, fields.Create(context.Background(), testField()))
	uc := NewUseCase(fields, failingBookings{}, logger.Nop())

	_, err := uc.Execute(context.Background(), &Request{FieldID: "field-1", Date: monday})
	assert.ErrorIs(t, err, ErrInternal)
}
