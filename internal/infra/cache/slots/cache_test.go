package slots

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCache_GetAvailable_Miss(t *testing.T) {
	client, mock := redismock.NewClientMock()
	cache := NewCache(client, 30*time.Second)

	mock.ExpectGet(AvailableKey).RedisNil()

	slots, ok, err := cache.GetAvailable(context.Background())

	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, slots)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCache_GetAvailable_Hit(t *testing.T) {
	client, mock := redismock.NewClientMock()
	cache := NewCache(client, 30*time.Second)
	id := uuid.MustParse("0b3c6a5e-3a37-4a38-9a9e-4f1d3c1f6a01")

	mock.ExpectGet(AvailableKey).SetVal(`[{"id":"` + id.String() + `","start_time":"2025-10-15T09:00:00Z",` +
		`"end_time":"2025-10-15T09:30:00Z","status":"available","created_at":"2025-10-01T00:00:00Z"}]`)

	slots, ok, err := cache.GetAvailable(context.Background())

	require.NoError(t, err)
	assert.True(t, ok)
	require.Len(t, slots, 1)
	assert.Equal(t, id, slots[0].ID)
	assert.Equal(t, time.Date(2025, 10, 15, 9, 0, 0, 0, time.UTC), slots[0].StartTime.UTC())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCache_GetAvailable_Error(t *testing.T) {
	client, mock := redismock.NewClientMock()
	cache := NewCache(client, 30*time.Second)

	mock.ExpectGet(AvailableKey).SetErr(errors.New("connection refused"))

	_, ok, err := cache.GetAvailable(context.Background())

	assert.ErrorIs(t, err, ErrCacheRead)
	assert.False(t, ok)
}

func TestCache_Invalidate(t *testing.T) {
	client, mock := redismock.NewClientMock()
	cache := NewCache(client, 30*time.Second)

	mock.ExpectDel(AvailableKey).SetVal(1)

	require.NoError(t, cache.Invalidate(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}
