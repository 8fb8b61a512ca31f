package colony

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics exposes colony progress to Prometheus. A nil *Metrics records nothing.
type Metrics struct {
	iterations     prometheus.Counter
	evaluations    *prometheus.CounterVec
	bestFitness    prometheus.Gauge
	pheromones     prometheus.Gauge
	oracleDuration prometheus.Histogram
}

// NewMetrics registers the colony collectors on reg. Collectors already registered by
// a previous colony are reused, so several runs can share one registry.
// A nil reg disables metrics.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	if reg == nil {
		return nil, nil
	}

	iterations, err := register(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Name: "flowant_iterations_total",
		Help: "Number of completed colony iterations.",
	}))
	if err != nil {
		return nil, err
	}
	evaluations, err := register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "flowant_ant_evaluations_total",
		Help: "Number of evaluated candidates by status.",
	}, []string{"status"}))
	if err != nil {
		return nil, err
	}
	bestFitness, err := register(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "flowant_best_fitness",
		Help: "Best fitness found by the current run.",
	}))
	if err != nil {
		return nil, err
	}
	pheromones, err := register(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "flowant_pheromone_entries",
		Help: "Number of non-zero pheromone entries after evaporation.",
	}))
	if err != nil {
		return nil, err
	}
	oracleDuration, err := register(reg, prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "flowant_oracle_duration_seconds",
		Help:    "Latency of fitness oracle calls.",
		Buckets: prometheus.ExponentialBuckets(0.0005, 4, 8),
	}))
	if err != nil {
		return nil, err
	}

	return &Metrics{
		iterations:     iterations,
		evaluations:    evaluations,
		bestFitness:    bestFitness,
		pheromones:     pheromones,
		oracleDuration: oracleDuration,
	}, nil
}

func register[T prometheus.Collector](reg prometheus.Registerer, c T) (T, error) {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(T); ok {
				return existing, nil
			}
		}
		return c, err
	}
	return c, nil
}

func (m *Metrics) observeEvaluation(failed bool) {
	if m == nil {
		return
	}
	status := "ok"
	if failed {
		status = "failed"
	}
	m.evaluations.WithLabelValues(status).Inc()
}

func (m *Metrics) observeOracle(d time.Duration) {
	if m == nil {
		return
	}
	m.oracleDuration.Observe(d.Seconds())
}

func (m *Metrics) observeIteration(best float64, entries int) {
	if m == nil {
		return
	}
	m.iterations.Inc()
	m.bestFitness.Set(best)
	m.pheromones.Set(float64(entries))
}
