package payments

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type noopLogger struct{}

func (l *noopLogger) Info(format string, v ...interface{})  {}
func (l *noopLogger) Warn(format string, v ...interface{})  {}
func (l *noopLogger) Error(format string, v ...interface{}) {}

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, 2*time.Second, &noopLogger{})
}

func TestVerifyOrder_Paid(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/internal/orders/verify", r.URL.Path)
		assert.Equal(t, "order-777", r.URL.Query().Get("reference"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"reference":"order-777","status":"paid","amount":100,"currency":"RUB"}`))
	})

	order, err := client.VerifyOrder(context.Background(), "order-777")

	require.NoError(t, err)
	assert.Equal(t, "order-777", order.Reference)
	assert.True(t, order.IsPaid())
}

func TestVerifyOrder_NotFound(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	_, err := client.VerifyOrder(context.Background(), "order-000")

	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestVerifyOrder_UnexpectedStatusBodyBounded(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(strings.Repeat("x", 1<<20)))
	})

	_, err := client.VerifyOrder(context.Background(), "order-777")

	require.ErrorIs(t, err, ErrInvalidResponse)
	// Тело ответа с ошибкой читается ограниченно
	assert.Less(t, len(err.Error()), maxErrorBodyBytes+256)
}
