// Package metrics defines the Prometheus counters of the delivery engine.
package metrics

import "github.com/prometheus/client_golang/prometheus"

// NewOrdersAssignedTotal returns a counter of orders claimed by couriers
func NewOrdersAssignedTotal() prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Name: "candydelivery_orders_assigned_total",
		Help: "Total number of orders claimed by couriers",
	})
}

// NewOrdersEvictedTotal returns a counter of orders returned to NEW by profile reconciliation
func NewOrdersEvictedTotal() prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Name: "candydelivery_orders_evicted_total",
		Help: "Total number of orders returned to NEW by profile reconciliation",
	})
}

// NewOrdersCompletedTotal returns a counter of delivered orders
func NewOrdersCompletedTotal() prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Name: "candydelivery_orders_completed_total",
		Help: "Total number of delivered orders",
	})
}

// NewRoundsSettledTotal returns a counter of closed delivery rounds
func NewRoundsSettledTotal() prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Name: "candydelivery_rounds_settled_total",
		Help: "Total number of closed delivery rounds",
	})
}

// NewOutboxPublishedTotal returns a counter of domain events relayed to the broker
func NewOutboxPublishedTotal() prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Name: "candydelivery_outbox_published_total",
		Help: "Total number of domain events relayed to the broker",
	})
}

// Recorder groups the engine counters.
type Recorder struct {
	OrdersAssigned  prometheus.Counter
	OrdersEvicted   prometheus.Counter
	OrdersCompleted prometheus.Counter
	RoundsSettled   prometheus.Counter
	OutboxPublished prometheus.Counter
}

// NewRecorder creates the counters and registers them with reg.
func NewRecorder(reg prometheus.Registerer) *Recorder {
	r := &Recorder{
		OrdersAssigned:  NewOrdersAssignedTotal(),
		OrdersEvicted:   NewOrdersEvictedTotal(),
		OrdersCompleted: NewOrdersCompletedTotal(),
		RoundsSettled:   NewRoundsSettledTotal(),
		OutboxPublished: NewOutboxPublishedTotal(),
	}
	reg.MustRegister(r.OrdersAssigned, r.OrdersEvicted, r.OrdersCompleted, r.RoundsSettled, r.OutboxPublished)
	return r
}

func (r *Recorder) Assigned(n int) {
	r.OrdersAssigned.Add(float64(n))
}

func (r *Recorder) Evicted(n int) {
	r.OrdersEvicted.Add(float64(n))
}

func (r *Recorder) Completed() {
	r.OrdersCompleted.Inc()
}

func (r *Recorder) Settled() {
	r.RoundsSettled.Inc()
}

func (r *Recorder) Published(n int) {
	r.OutboxPublished.Add(float64(n))
}
