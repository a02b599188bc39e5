package http

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	apiErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "api_errors_total",
		Help: "Error responses written by the API, by error kind.",
	}, []string{"kind"})

	lendingTransitionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "book_lending_transitions_total",
		Help: "Borrow, return and approve attempts, by outcome.",
	}, []string{"action", "result"})
)

func recordTransition(action string, err error) {
	result := "ok"
	if err != nil {
		result = "rejected"
	}
	lendingTransitionsTotal.WithLabelValues(action, result).Inc()
}
