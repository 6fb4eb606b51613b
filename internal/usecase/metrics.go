package usecase

import (
	"event-ticketing/pkg/apperror"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ordersCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "orders_created_total",
			Help: "Orders created with a payment link",
		},
	)

	ordersCompleted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "orders_completed_total",
			Help: "Orders moved to completed",
		},
	)

	ticketsSold = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "tickets_sold_total",
			Help: "Ticket units committed by completed orders",
		},
	)

	orderTransitionFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "order_transition_failures_total",
			Help: "Failed order operations by operation and error kind",
		},
		[]string{"op", "kind"},
	)
)

func trackOrderFailure(op string, err error) {
	orderTransitionFailures.WithLabelValues(op, string(apperror.KindOf(err))).Inc()
}
