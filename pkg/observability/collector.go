package observability

import (
	"context"
	"errors"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/aretw0/arbor/pkg/domain"
)

// Collector records transition and failure metrics for one or more
// machines. Wire its TransitionHook into arbor.New and call ObserveResult
// with every ReadSymbol outcome.
type Collector struct {
	transitions *prometheus.CounterVec
	failures    *prometheus.CounterVec
	reads       *prometheus.CounterVec
	chainHops   prometheus.Histogram
}

// NewCollector creates the metric vectors and registers them with reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		transitions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "arbor_transitions_total",
				Help: "Committed transitions by source state, symbol and target state.",
			},
			[]string{"from", "symbol", "to"},
		),
		failures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "arbor_failures_total",
				Help: "Failures accumulated by symbol chains, by taxonomy kind.",
			},
			[]string{"kind"},
		),
		reads: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "arbor_reads_total",
				Help: "ReadSymbol calls by outcome (ok or error).",
			},
			[]string{"outcome"},
		),
		chainHops: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "arbor_chain_hops",
				Help:    "Committed transitions per resolved symbol chain.",
				Buckets: []float64{0, 1, 2, 3, 4, 6, 8, 12, 16},
			},
		),
	}
	reg.MustRegister(c.transitions, c.failures, c.reads, c.chainHops)
	return c
}

// ChainObserver returns an observer feeding the chain-hops histogram.
// Wire it into arbor.New with arbor.WithChainObserver.
func (c *Collector) ChainObserver() func(hops int, err error) {
	return func(hops int, err error) {
		c.chainHops.Observe(float64(hops))
	}
}

// TransitionHook returns a machine-wide hook recording every committed
// transition. The hook never fails.
func (c *Collector) TransitionHook() domain.TransitionHook {
	return func(ctx context.Context, from *domain.State, symbol string, to *domain.State) error {
		c.transitions.WithLabelValues(from.ID(), symbol, to.ID()).Inc()
		return nil
	}
}

// ObserveResult records the outcome of one ReadSymbol call. Aggregated
// failures are unfolded so each accumulated kind is counted once.
func (c *Collector) ObserveResult(err error) {
	if err == nil {
		c.reads.WithLabelValues("ok").Inc()
		return
	}
	c.reads.WithLabelValues("error").Inc()

	var chain *domain.ChainError
	if errors.As(err, &chain) {
		for _, sub := range chain.Errs {
			c.failures.WithLabelValues(domain.Kind(sub)).Inc()
		}
		return
	}
	c.failures.WithLabelValues(domain.Kind(err)).Inc()
}

// BusyGauge registers a 0/1 gauge exposing a machine's transient-busy
// flag. The machine label distinguishes multiple registrations.
func BusyGauge(reg prometheus.Registerer, machine string, busy func() bool) {
	reg.MustRegister(prometheus.NewGaugeFunc(
		prometheus.GaugeOpts{
			Name:        "arbor_transient_busy",
			Help:        "Whether an automation callback is currently executing.",
			ConstLabels: prometheus.Labels{"machine": machine},
		},
		func() float64 {
			if busy() {
				return 1
			}
			return 0
		},
	))
}
