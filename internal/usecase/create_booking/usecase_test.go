package create_booking

import (
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/areninha/booking-service/internal/domain"
	"github.com/areninha/booking-service/internal/infra/events"
	"github.com/areninha/booking-service/internal/infra/storage/memory"
	"github.com/areninha/booking-service/pkg/logger"
	"github.com/areninha/booking-service/pkg/ptr"
)

var (
	saoPaulo = time.FixedZone("BRT", -3*60*60)
	// Понедельник 19.10.2026, 09:00 по Сан-Паулу
	testNow = time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)
	// Следующий понедельник
	nextMonday = time.Date(2026, 10, 26, 0, 0, 0, 0, time.UTC)
)

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.BookingEvent
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, event events.BookingEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return p.err
}

type countingMetrics struct {
	created  int32
	conflict int32
}

func (m *countingMetrics) IncBookingCreated()  { atomic.AddInt32(&m.created, 1) }
func (m *countingMetrics) IncBookingConflict() { atomic.AddInt32(&m.conflict, 1) }

func testField() *domain.Field {
	return &domain.Field{
		ID:           "field-1",
		Name:         "Arena Pinheiros",
		Location:     "Pinheiros, São Paulo",
		Address:      "Rua dos Pinheiros, 1200",
		Type:         domain.FieldTypeSociety,
		PricePerHour: 180,
		TimeSlots: []domain.TimeSlot{
			{ID: "mon-18", FieldID: "field-1", DayOfWeek: int(time.Monday), StartTime: "18:00", EndTime: "19:00", Price: 200, Available: true},
			{ID: "mon-22", FieldID: "field-1", DayOfWeek: int(time.Monday), StartTime: "22:00", EndTime: "23:00", Price: 150, Available: false},
			{ID: "tue-18", FieldID: "field-1", DayOfWeek: int(time.Tuesday), StartTime: "18:00", EndTime: "19:00", Price: 200, Available: true},
		},
	}
}

type fixture struct {
	uc        *UseCase
	bookings  *memory.BookingStore
	publisher *recordingPublisher
	metrics   *countingMetrics
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	fields := memory.NewFieldStore()
	require.NoError(t, fields.Create(context.Background(), testField()))

	f := &fixture{
		bookings:  memory.NewBookingStore(),
		publisher: &recordingPublisher{},
		metrics:   &countingMetrics{},
	}
	f.uc = NewUseCase(fields, f.bookings, memory.NewTxManager(), f.publisher, f.metrics, saoPaulo, logger.Nop())
	f.uc.timeProvider = fixedTime{now: testNow}
	return f
}

func validRequest() *Request {
	return &Request{
		FieldID:        "field-1",
		TimeSlotID:     "mon-18",
		Date:           nextMonday,
		PlayerID:       "player-1",
		PlayerName:     "  João Silva ",
		PlayerWhatsapp: "+55 11 99999-0000",
		PlayerEmail:    ptr.Ptr("joao@example.com"),
		PaymentMethod:  "PIX",
		Notes:          ptr.Ptr(""),
	}
}

func TestExecute_Success(t *testing.T) {
	f := newFixture(t)

	resp, err := f.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	_, parseErr := uuid.Parse(resp.ID)
	assert.NoError(t, parseErr)

	b := resp.Booking
	assert.Equal(t, resp.ID, b.ID)
	assert.Equal(t, domain.StatusConfirmed, b.Status)
	assert.Equal(t, nextMonday, b.BookingDate)
	assert.Equal(t, "João Silva", b.PlayerName)
	assert.Equal(t, domain.PaymentPix, b.PaymentMethod)
	assert.Nil(t, b.Notes)
	assert.Equal(t, domain.BookingSnapshot{
		FieldName:     "Arena Pinheiros",
		FieldLocation: "Pinheiros, São Paulo",
		FieldAddress:  "Rua dos Pinheiros, 1200",
		FieldType:     domain.FieldTypeSociety,
		DayOfWeek:     int(time.Monday),
		StartTime:     "18:00",
		EndTime:       "19:00",
		Price:         200,
	}, b.Snapshot)
	assert.Equal(t, testNow, b.CreatedAt)

	stored, err := f.bookings.GetByID(context.Background(), resp.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusConfirmed, stored.Status)

	require.Len(t, f.publisher.events, 1)
	assert.Equal(t, events.TypeBookingConfirmed, f.publisher.events[0].Type)
	assert.Equal(t, resp.ID, f.publisher.events[0].BookingID)
	assert.Equal(t, int32(1), f.metrics.created)
}

func TestExecute_CardAlias(t *testing.T) {
	f := newFixture(t)
	req := validRequest()
	req.PaymentMethod = "card"

	resp, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentCreditCard, resp.Booking.PaymentMethod)
}

func TestExecute_SlotAlreadyBooked(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.uc.Execute(ctx, validRequest())
	require.NoError(t, err)

	second := validRequest()
	second.PlayerID = "player-2"
	_, err = f.uc.Execute(ctx, second)
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
	assert.Equal(t, int32(1), f.metrics.conflict)

	// Другой день для того же шаблона свободен
	third := validRequest()
	third.Date = nextMonday.AddDate(0, 0, 7)
	_, err = f.uc.Execute(ctx, third)
	assert.NoError(t, err)
}

func TestExecute_CancelledBookingFreesSlot(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	resp, err := f.uc.Execute(ctx, validRequest())
	require.NoError(t, err)
	require.NoError(t, f.bookings.Cancel(ctx, resp.ID, testNow))

	again, err := f.uc.Execute(ctx, validRequest())
	require.NoError(t, err)
	assert.NotEqual(t, resp.ID, again.ID)
}

func TestExecute_ConcurrentAttempts(t *testing.T) {
	f := newFixture(t)

	const attempts = 20
	var wg sync.WaitGroup
	var succeeded, conflicts int32

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.uc.Execute(context.Background(), validRequest())
			switch {
			case err == nil:
				atomic.AddInt32(&succeeded, 1)
			case errors.Is(err, ErrSlotNotAvailable):
				atomic.AddInt32(&conflicts, 1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), succeeded)
	assert.Equal(t, int32(attempts-1), conflicts)

	bookings, err := f.bookings.GetByFieldAndDate(context.Background(), "field-1", nextMonday)
	require.NoError(t, err)
	assert.Len(t, bookings, 1)
}

func TestExecute_Rejections(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(r *Request)
		wantErr error
	}{
		{name: "unknown field", mutate: func(r *Request) { r.FieldID = "nope" }, wantErr: ErrFieldNotFound},
		{name: "unknown slot", mutate: func(r *Request) { r.TimeSlotID = "nope" }, wantErr: ErrTimeSlotNotFound},
		{name: "weekday mismatch", mutate: func(r *Request) { r.TimeSlotID = "tue-18" }, wantErr: ErrInvalidTimeSlot},
		{name: "slot closed by owner", mutate: func(r *Request) { r.TimeSlotID = "mon-22" }, wantErr: ErrSlotNotAvailable},
		{name: "past date", mutate: func(r *Request) { r.Date = nextMonday.AddDate(0, 0, -14) }, wantErr: ErrInvalidDate},
		{name: "missing name", mutate: func(r *Request) { r.PlayerName = "  " }, wantErr: ErrInvalidInput},
		{name: "missing whatsapp", mutate: func(r *Request) { r.PlayerWhatsapp = "" }, wantErr: ErrInvalidInput},
		{name: "bad email", mutate: func(r *Request) { r.PlayerEmail = ptr.Ptr("not-an-email") }, wantErr: ErrInvalidInput},
		{name: "unknown payment", mutate: func(r *Request) { r.PaymentMethod = "BOLETO" }, wantErr: ErrInvalidInput},
		{name: "notes too long", mutate: func(r *Request) { r.Notes = ptr.Ptr(strings.Repeat("a", 501)) }, wantErr: ErrInvalidInput},
		{name: "zero date", mutate: func(r *Request) { r.Date = time.Time{} }, wantErr: ErrInvalidInput},
		{name: "no player", mutate: func(r *Request) { r.PlayerID = "" }, wantErr: ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			req := validRequest()
			tt.mutate(req)

			_, err := f.uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Empty(t, f.publisher.events)
			assert.Equal(t, int32(0), f.metrics.created)
		})
	}
}

func TestExecute_TodayUsesServiceTimezone(t *testing.T) {
	f := newFixture(t)
	// 01:00 UTC 20.10 - еще понедельник 19.10 в Сан-Паулу
	f.uc.timeProvider = fixedTime{now: time.Date(2026, 10, 20, 1, 0, 0, 0, time.UTC)}

	req := validRequest()
	req.Date = time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC)

	_, err := f.uc.Execute(context.Background(), req)
	assert.NoError(t, err)
}

func TestExecute_PublishFailureDoesNotFailBooking(t *testing.T) {
	f := newFixture(t)
	f.publisher.err = errors.New("broker down")

	resp, err := f.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)
	assert.NotEmpty(t, resp.ID)
}

type serializationFailingTx struct{}

func (serializationFailingTx) DoSerializable(context.Context, func(ctx context.Context) error) error {
	return &pq.Error{Code: "40001", Message: "could not serialize access"}
}

func TestExecute_SerializationFailureMapsToSlotNotAvailable(t *testing.T) {
	f := newFixture(t)
	f.uc.txManager = serializationFailingTx{}

	_, err := f.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
	assert.Equal(t, int32(1), f.metrics.conflict)
}
