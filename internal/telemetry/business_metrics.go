package telemetry

import (
	"context"

	"ordering/internal/core/application/usecases/queries"
	"ordering/internal/core/domain/model/order"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// BusinessMetrics counts order lifecycle events and exposes the latest
// per-status snapshot. It implements ports.EventPublisher so it can sit next
// to the broker publisher behind a FanOutPublisher.
type BusinessMetrics struct {
	OrdersCreated       *prometheus.CounterVec
	OrderValue          prometheus.Histogram
	OrderItemCount      prometheus.Histogram
	StatusTransitions   *prometheus.CounterVec
	OrdersCancelled     *prometheus.CounterVec
	OrdersByStatus      *prometheus.GaugeVec
	OrderAmountByStatus *prometheus.GaugeVec
}

func NewBusinessMetrics(reg prometheus.Registerer, namespace string) *BusinessMetrics {
	if namespace == "" {
		namespace = DefaultNamespace
	}
	factory := promauto.With(reg)
	subsystem := "business"

	return &BusinessMetrics{
		OrdersCreated: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "orders_created_total",
				Help:      "Orders created, by payment method",
			},
			[]string{"payment_method"},
		),
		OrderValue: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "order_value",
				Help:      "Total amount of created orders",
				Buckets:   []float64{10, 25, 50, 100, 250, 500, 1000, 2500, 5000},
			},
		),
		OrderItemCount: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "order_item_count",
				Help:      "Number of lines in created orders",
				Buckets:   []float64{1, 2, 3, 5, 10, 20, 50},
			},
		),
		StatusTransitions: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "order_status_transitions_total",
				Help:      "Order status changes, by source and target status",
			},
			[]string{"from", "to"},
		),
		OrdersCancelled: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "orders_cancelled_total",
				Help:      "Cancelled orders, by status they were cancelled from",
			},
			[]string{"from"},
		),
		OrdersByStatus: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "orders_by_status",
				Help:      "Number of stored orders per status, refreshed by the stats job",
			},
			[]string{"status"},
		),
		OrderAmountByStatus: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "order_amount_by_status",
				Help:      "Sum of order totals per status, refreshed by the stats job",
			},
			[]string{"status"},
		),
	}
}

// Publish updates the counters for each event. It never fails.
func (m *BusinessMetrics) Publish(_ context.Context, events ...order.DomainEvent) error {
	for _, event := range events {
		switch e := event.(type) {
		case order.OrderCreated:
			m.OrdersCreated.WithLabelValues(e.PaymentMethod.String()).Inc()
			m.OrderValue.Observe(e.TotalAmount.Float64())
			m.OrderItemCount.Observe(float64(e.ItemCount))
		case order.OrderStatusChanged:
			m.StatusTransitions.WithLabelValues(e.From.String(), e.To.String()).Inc()
		case order.OrderCancelled:
			m.OrdersCancelled.WithLabelValues(e.From.String()).Inc()
		}
	}
	return nil
}

// RecordStats replaces the per-status gauges with a fresh snapshot. Statuses
// missing from the snapshot are reported as zero.
func (m *BusinessMetrics) RecordStats(stats queries.GetOrderStatsQueryResponse) {
	for _, status := range order.Statuses() {
		s := stats.ByStatus[status]
		m.OrdersByStatus.WithLabelValues(status.String()).Set(float64(s.Count))
		m.OrderAmountByStatus.WithLabelValues(status.String()).Set(s.Amount.Float64())
	}
}
