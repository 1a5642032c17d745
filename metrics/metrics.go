// Package metrics exports validation outcomes as Prometheus metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	skema "github.com/reoring/skema"
)

// Observer counts validation results by target and kind. It implements
// skema.Observer.
type Observer struct {
	results *prometheus.CounterVec
}

var _ skema.Observer = (*Observer)(nil)

// NewObserver registers the skema_validation_results_total counter with reg.
// A nil reg means prometheus.DefaultRegisterer.
func NewObserver(reg prometheus.Registerer, namespace string) *Observer {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	return &Observer{
		results: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "skema_validation_results_total",
				Help:      "Total number of validation results by target and kind",
			},
			[]string{"target", "kind"},
		),
	}
}

// ObserveResult implements skema.Observer.
func (o *Observer) ObserveResult(target string, kind skema.Kind) {
	o.results.WithLabelValues(target, kind.String()).Inc()
}
