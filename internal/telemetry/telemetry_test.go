package telemetry_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"ordering/internal/core/application/usecases/queries"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/telemetry"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newOrder(t *testing.T) *order.Order {
	t.Helper()

	price, err := kernel.MoneyFromString("29.99")
	require.NoError(t, err)
	item, err := order.NewItem("sku-1", "Mug", 2, price)
	require.NoError(t, err)
	address, err := kernel.NewAddress("1 Main St", "Springfield", "IL", "US", "62701")
	require.NoError(t, err)
	o, err := order.NewOrder(kernel.NewUUID(), "customer-1", []order.Item{item}, address, order.CreditCard)
	require.NoError(t, err)
	return o
}

func TestBusinessMetrics_Publish(t *testing.T) {
	metrics := telemetry.NewBusinessMetrics(prometheus.NewRegistry(), "test")
	o := newOrder(t)
	require.NoError(t, o.UpdateStatus(order.Processing))
	require.NoError(t, o.Cancel())

	err := metrics.Publish(t.Context(), o.DomainEvents()...)

	require.NoError(t, err)
	assert.InDelta(t, 1, testutil.ToFloat64(metrics.OrdersCreated.WithLabelValues("CREDIT_CARD")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(metrics.StatusTransitions.WithLabelValues("PENDING", "PROCESSING")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(metrics.StatusTransitions.WithLabelValues("PROCESSING", "CANCELLED")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(metrics.OrdersCancelled.WithLabelValues("PROCESSING")), 0)
}

func TestBusinessMetrics_RecordStats(t *testing.T) {
	metrics := telemetry.NewBusinessMetrics(prometheus.NewRegistry(), "test")
	amount, err := kernel.MoneyFromString("120.50")
	require.NoError(t, err)

	metrics.RecordStats(queries.GetOrderStatsQueryResponse{
		ByStatus: map[order.Status]queries.StatusStats{
			order.Pending: {Count: 3, Amount: amount},
		},
	})

	assert.InDelta(t, 3, testutil.ToFloat64(metrics.OrdersByStatus.WithLabelValues("PENDING")), 0)
	assert.InDelta(t, 120.5, testutil.ToFloat64(metrics.OrderAmountByStatus.WithLabelValues("PENDING")), 0.001)
	assert.InDelta(t, 0, testutil.ToFloat64(metrics.OrdersByStatus.WithLabelValues("SHIPPED")), 0)
}

type stubPublisher struct {
	calls int
	err   error
}

func (p *stubPublisher) Publish(_ context.Context, _ ...order.DomainEvent) error {
	p.calls++
	return p.err
}

func TestFanOutPublisher_Publish(t *testing.T) {
	t.Run("should call every publisher and join failures", func(t *testing.T) {
		failing := &stubPublisher{err: errors.New("broker down")}
		healthy := &stubPublisher{}
		o := newOrder(t)

		err := telemetry.NewFanOutPublisher(failing, healthy).Publish(t.Context(), o.DomainEvents()...)

		require.ErrorContains(t, err, "broker down")
		assert.Equal(t, 1, failing.calls)
		assert.Equal(t, 1, healthy.calls)
	})

	t.Run("should skip empty batches", func(t *testing.T) {
		p := &stubPublisher{}

		err := telemetry.NewFanOutPublisher(p).Publish(t.Context())

		require.NoError(t, err)
		assert.Zero(t, p.calls)
	})
}

func TestHTTPMetrics_Middleware(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := telemetry.NewHTTPMetrics(reg, "test")
	e := echo.New()
	e.Use(metrics.Middleware())
	e.GET("/api/v1/orders/:id", func(c echo.Context) error {
		if c.Param("id") == "missing" {
			return echo.NewHTTPError(http.StatusNotFound, "Order not found")
		}
		return c.NoContent(http.StatusOK)
	})

	for _, id := range []string{"a", "b", "missing"} {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/orders/"+id, nil))
	}

	count, err := testutil.GatherAndCount(reg, "test_http_requests_total")
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	families, err := reg.Gather()
	require.NoError(t, err)
	var ok, notFound float64
	for _, family := range families {
		if family.GetName() != "test_http_requests_total" {
			continue
		}
		for _, m := range family.GetMetric() {
			for _, label := range m.GetLabel() {
				if label.GetName() != "status" {
					continue
				}
				switch label.GetValue() {
				case "200":
					ok = m.GetCounter().GetValue()
				case "404":
					notFound = m.GetCounter().GetValue()
				}
			}
		}
	}
	assert.InDelta(t, 2, ok, 0)
	assert.InDelta(t, 1, notFound, 0)
}
