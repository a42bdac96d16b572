package resapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vanrent/internal/model"
)

func newBackend(t *testing.T, hits *atomic.Int64, slots []model.ReservedSlot) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		assert.Equal(t, "/api/v1/reservations", r.URL.Path)
		assert.Equal(t, "secret", r.Header.Get("X-API-Key"))

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(reservedSlotsResponse{Slots: slots})
	}))
}

func TestReservedSlots(t *testing.T) {
	var hits atomic.Int64
	want := []model.ReservedSlot{
		{StartDate: "2026-04-10", EndDate: "2026-04-10", StartTime: "10:00", EndTime: "11:00", IsSameDay: true},
	}
	backend := newBackend(t, &hits, want)
	defer backend.Close()

	client := NewClient(backend.URL, "secret")
	got, err := client.ReservedSlots(context.Background(), "leeds", "2026-04-10", model.RolePickup)
	require.NoError(t, err)
	assert.Equal(t, want, got)
	assert.EqualValues(t, 1, hits.Load())
}

func TestReservedSlotsRedisCache(t *testing.T) {
	var hits atomic.Int64
	want := []model.ReservedSlot{
		{StartDate: "2026-04-10", EndDate: "2026-04-12", StartTime: "09:00", EndTime: "09:30"},
	}
	backend := newBackend(t, &hits, want)
	defer backend.Close()

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	client := NewClient(backend.URL, "secret")
	client.UseRedisCache(rdb, time.Minute)

	ctx := context.Background()
	first, err := client.ReservedSlots(ctx, "leeds", "2026-04-10", model.RoleReturn)
	require.NoError(t, err)
	assert.Equal(t, want, first)

	// Second call is served from the cache.
	second, err := client.ReservedSlots(ctx, "leeds", "2026-04-10", model.RoleReturn)
	require.NoError(t, err)
	assert.Equal(t, want, second)
	assert.EqualValues(t, 1, hits.Load())

	// Different role is a different cache key.
	_, err = client.ReservedSlots(ctx, "leeds", "2026-04-10", model.RolePickup)
	require.NoError(t, err)
	assert.EqualValues(t, 2, hits.Load())
}

func TestReservedSlotsBackendError(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer backend.Close()

	client := NewClient(backend.URL, "")
	_, err := client.ReservedSlots(context.Background(), "leeds", "2026-04-10", model.RolePickup)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "500")
}
