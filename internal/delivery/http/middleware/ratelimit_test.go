package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRateLimit(t *testing.T) {
	store, err := NewLimiterStore(nil)
	require.NoError(t, err)
	wrap, err := RateLimit("2-M", store, testLogger)
	require.NoError(t, err)

	handler := wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) }))

	var codes []int
	for range 3 {
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/modules/configs", nil))
		codes = append(codes, rr.Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)

	other := httptest.NewRequest(http.MethodGet, "/api/modules/configs", nil)
	other.RemoteAddr = "198.51.100.7:4000"
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, other)
	assert.Equal(t, http.StatusOK, rr.Code, "limits are per client")
	assert.Equal(t, "2", rr.Header().Get("X-RateLimit-Limit"))
}

func TestRateLimit_BadFormat(t *testing.T) {
	store, err := NewLimiterStore(nil)
	require.NoError(t, err)
	_, err = RateLimit("lots", store, testLogger)
	require.Error(t, err)
}

func TestLatency(t *testing.T) {
	called := false
	next := func(w http.ResponseWriter, r *http.Request) { called = true }

	t.Run("disabled", func(t *testing.T) {
		called = false
		Latency(0)(next)(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
		assert.True(t, called)
	})

	t.Run("delays", func(t *testing.T) {
		called = false
		start := time.Now()
		Latency(20*time.Millisecond)(next)(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
		assert.True(t, called)
		assert.GreaterOrEqual(t, time.Since(start), 20*time.Millisecond)
	})

	t.Run("cancelled request is dropped", func(t *testing.T) {
		called = false
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		req := httptest.NewRequest(http.MethodGet, "/", nil).WithContext(ctx)
		Latency(time.Hour)(next)(httptest.NewRecorder(), req)
		assert.False(t, called)
	})
}
