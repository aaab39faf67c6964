package cache

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/areninha/booking-service/internal/domain"
)

func sampleField() *domain.Field {
	return &domain.Field{
		ID:           "field-1",
		Name:         "Arena Pinheiros",
		Location:     "Pinheiros, São Paulo",
		Type:         domain.FieldTypeSociety,
		PricePerHour: 150,
		Amenities:    []string{"parking"},
		TimeSlots: []domain.TimeSlot{
			{ID: "slot-1", FieldID: "field-1", DayOfWeek: 1, StartTime: "18:00", EndTime: "19:00", Price: 150, Available: true},
		},
	}
}

func TestFieldCache_GetFields_Hit(t *testing.T) {
	client, mock := redismock.NewClientMock()
	cache := NewFieldCache(client, time.Minute)

	payload, err := json.Marshal([]*domain.Field{sampleField()})
	require.NoError(t, err)
	mock.ExpectGet(fieldsListKey).SetVal(string(payload))

	fields, ok, err := cache.GetFields(context.Background())
	require.NoError(t, err)
	assert.True(t, ok)
	require.Len(t, fields, 1)
	assert.Equal(t, sampleField(), fields[0])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFieldCache_GetField_Miss(t *testing.T) {
	client, mock := redismock.NewClientMock()
	cache := NewFieldCache(client, time.Minute)

	mock.ExpectGet("arena:fields:field-1").RedisNil()

	field, ok, err := cache.GetField(context.Background(), "field-1")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, field)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFieldCache_Get_Error(t *testing.T) {
	client, mock := redismock.NewClientMock()
	cache := NewFieldCache(client, time.Minute)

	mock.ExpectGet(fieldsListKey).SetErr(errors.New("connection refused"))

	_, _, err := cache.GetFields(context.Background())
	assert.ErrorIs(t, err, ErrCacheRead)
}

func TestFieldCache_Get_CorruptedValue(t *testing.T) {
	client, mock := redismock.NewClientMock()
	cache := NewFieldCache(client, time.Minute)

	mock.ExpectGet("arena:fields:field-1").SetVal("{not json")

	_, _, err := cache.GetField(context.Background(), "field-1")
	assert.ErrorIs(t, err, ErrDecode)
}

func TestFieldCache_Invalidate(t *testing.T) {
	client, mock := redismock.NewClientMock()
	cache := NewFieldCache(client, time.Minute)

	mock.ExpectDel(fieldsListKey, "arena:fields:a", "arena:fields:b").SetVal(3)

	require.NoError(t, cache.Invalidate(context.Background(), "a", "b"))
	assert.NoError(t, mock.ExpectationsWereMet())
}
