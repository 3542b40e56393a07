package collection

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type metrics struct {
	mints       prometheus.Counter
	unitsMinted prometheus.Counter
	burns       prometheus.Counter
	unitsBurned prometheus.Counter
	revenue     *prometheus.CounterVec
	refunds     prometheus.Counter
}

// newMetrics wires the collection's counters into r. A nil registerer
// still yields working counters, just unregistered.
func newMetrics(r prometheus.Registerer) *metrics {
	f := promauto.With(r)
	return &metrics{
		mints: f.NewCounter(prometheus.CounterOpts{
			Namespace: "collection",
			Name:      "mints_total",
			Help:      "Completed mint operations.",
		}),
		unitsMinted: f.NewCounter(prometheus.CounterOpts{
			Namespace: "collection",
			Name:      "units_minted_total",
			Help:      "Units credited by mints, bonus units included.",
		}),
		burns: f.NewCounter(prometheus.CounterOpts{
			Namespace: "collection",
			Name:      "burns_total",
			Help:      "Completed burn-to-mint and burn-to-remint operations.",
		}),
		unitsBurned: f.NewCounter(prometheus.CounterOpts{
			Namespace: "collection",
			Name:      "units_burned_total",
			Help:      "Source units consumed by burns.",
		}),
		revenue: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "collection",
			Name:      "revenue_total",
			Help:      "Gross revenue collected, by currency.",
		}, []string{"currency"}),
		refunds: f.NewCounter(prometheus.CounterOpts{
			Namespace: "collection",
			Name:      "refunds_total",
			Help:      "Native currency returned as overpayment refunds.",
		}),
	}
}
