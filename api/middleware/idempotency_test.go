package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryStore struct {
	values map[string]string
}

func newMemoryStore() *memoryStore {
	return &memoryStore{values: map[string]string{}}
}

func (m *memoryStore) Get(_ context.Context, key string) (string, error) {
	if v, ok := m.values[key]; ok {
		return v, nil
	}
	return "", redis.Nil
}

func (m *memoryStore) SetNX(_ context.Context, key string, value any, _ time.Duration) (bool, error) {
	if _, ok := m.values[key]; ok {
		return false, nil
	}
	m.values[key] = value.(string)
	return true, nil
}

func (m *memoryStore) IdempotencyKey(scope, id string) string {
	return "idem:" + scope + ":" + id
}

func orderHandler(calls *atomic.Int64) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"data":{"orderId":1}}`))
	})
}

func TestIdempotencyReplaysFirstResponse(t *testing.T) {
	var calls atomic.Int64
	handler := Idempotency(newMemoryStore(), time.Hour, nil)(orderHandler(&calls))

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/orders", strings.NewReader(`{"items":[]}`))
		req.Header.Set("Idempotency-Key", "abc-123")
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"data":{"orderId":1}}`, w.Body.String())
	}

	assert.Equal(t, int64(1), calls.Load(), "second request must be served from the cache")
}

func TestIdempotencyRejectsKeyReuseWithDifferentBody(t *testing.T) {
	var calls atomic.Int64
	handler := Idempotency(newMemoryStore(), time.Hour, nil)(orderHandler(&calls))

	first := httptest.NewRequest(http.MethodPost, "/api/v1/orders", strings.NewReader(`{"items":[1]}`))
	first.Header.Set("Idempotency-Key", "abc-123")
	handler.ServeHTTP(httptest.NewRecorder(), first)

	second := httptest.NewRequest(http.MethodPost, "/api/v1/orders", strings.NewReader(`{"items":[2]}`))
	second.Header.Set("Idempotency-Key", "abc-123")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, second)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, int64(1), calls.Load())
}

func TestIdempotencyWithoutHeaderPassesThrough(t *testing.T) {
	var calls atomic.Int64
	handler := Idempotency(newMemoryStore(), time.Hour, nil)(orderHandler(&calls))

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/orders", strings.NewReader(`{}`))
		handler.ServeHTTP(httptest.NewRecorder(), req)
	}

	assert.Equal(t, int64(2), calls.Load())
}
