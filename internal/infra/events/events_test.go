package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/areninha/booking-service/internal/domain"
)

type fakeWriter struct {
	messages []kafka.Message
	err      error
	closed   bool
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.messages = append(w.messages, msgs...)
	return nil
}

func (w *fakeWriter) Close() error {
	w.closed = true
	return nil
}

func sampleBooking() *domain.Booking {
	return &domain.Booking{
		ID:            "booking-1",
		FieldID:       "field-1",
		TimeSlotID:    "slot-1",
		BookingDate:   time.Date(2026, 10, 26, 0, 0, 0, 0, time.UTC),
		Status:        domain.StatusConfirmed,
		PlayerID:      "player-1",
		PaymentMethod: domain.PaymentPix,
		Snapshot: domain.BookingSnapshot{
			FieldName: "Arena Pinheiros",
			StartTime: "18:00",
			EndTime:   "19:00",
			Price:     150,
		},
	}
}

func TestNewBookingEvent(t *testing.T) {
	at := time.Date(2026, 10, 19, 9, 0, 0, 0, time.FixedZone("BRT", -3*60*60))

	event := NewBookingEvent(TypeBookingConfirmed, sampleBooking(), at)

	assert.Equal(t, TypeBookingConfirmed, event.Type)
	assert.Equal(t, "booking-1", event.BookingID)
	assert.Equal(t, "2026-10-26", event.BookingDate)
	assert.Equal(t, "18:00", event.StartTime)
	assert.Equal(t, "confirmed", event.Status)
	assert.Equal(t, "PIX", event.PaymentMethod)
	assert.Equal(t, time.UTC, event.OccurredAt.Location())
}

func TestKafkaPublisher_Publish(t *testing.T) {
	writer := &fakeWriter{}
	publisher := &KafkaPublisher{writer: writer}

	event := NewBookingEvent(TypeBookingCancelled, sampleBooking(), time.Now())
	require.NoError(t, publisher.Publish(context.Background(), event))

	require.Len(t, writer.messages, 1)
	msg := writer.messages[0]
	assert.Equal(t, []byte("booking-1"), msg.Key)
	assert.Equal(t, []kafka.Header{{Key: "type", Value: []byte(TypeBookingCancelled)}}, msg.Headers)

	var decoded BookingEvent
	require.NoError(t, json.Unmarshal(msg.Value, &decoded))
	assert.Equal(t, TypeBookingCancelled, decoded.Type)
	assert.Equal(t, "field-1", decoded.FieldID)

	require.NoError(t, publisher.Close())
	assert.True(t, writer.closed)
}

func TestKafkaPublisher_PublishError(t *testing.T) {
	publisher := &KafkaPublisher{writer: &fakeWriter{err: errors.New("broker down")}}

	err := publisher.Publish(context.Background(), NewBookingEvent(TypeBookingConfirmed, sampleBooking(), time.Now()))
	assert.ErrorIs(t, err, ErrPublish)
}

func TestNopPublisher(t *testing.T) {
	var p Publisher = NopPublisher{}
	assert.NoError(t, p.Publish(context.Background(), BookingEvent{}))
	assert.NoError(t, p.Close())
}
