package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const (
	namespace = "poolcalc"

	calculationsTotal = "calculations_total"
	coilsRequired     = "coils_required"
	recordsStored     = "records_stored_total"
	reportsRendered   = "reports_rendered_total"

	// Labels
	shapeLabel   = "shape"
	outcomeLabel = "outcome"
	sourceLabel  = "source"
)

const (
	OutcomeOK      = "ok"
	OutcomeInvalid = "invalid"
)

var calculationsTotalMetric = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      calculationsTotal,
		Help:      "number of pool calculations by shape and outcome",
	},
	[]string{shapeLabel, outcomeLabel},
)

var coilsRequiredMetric = prometheus.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      coilsRequired,
		Help:      "coils required per roll-based calculation",
		Buckets:   []float64{1, 2, 3, 4, 6, 8, 12, 20},
	},
)

var recordsStoredMetric = prometheus.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      recordsStored,
		Help:      "number of calculations persisted",
	},
)

var reportsRenderedMetric = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      reportsRendered,
		Help:      "number of PDF reports rendered",
	},
	[]string{sourceLabel},
)

func IncreaseCalculationsMetric(shape, outcome string) {
	calculationsTotalMetric.With(prometheus.Labels{shapeLabel: shape, outcomeLabel: outcome}).Inc()
}

func ObserveCoils(coils int) {
	if coils > 0 {
		coilsRequiredMetric.Observe(float64(coils))
	}
}

func IncreaseRecordsStoredMetric() {
	recordsStoredMetric.Inc()
}

func IncreaseReportsMetric(source string) {
	reportsRenderedMetric.With(prometheus.Labels{sourceLabel: source}).Inc()
}

func init() {
	registerMetrics()
}

func registerMetrics() {
	prometheus.MustRegister(calculationsTotalMetric)
	prometheus.MustRegister(coilsRequiredMetric)
	prometheus.MustRegister(recordsStoredMetric)
	prometheus.MustRegister(reportsRenderedMetric)
	prometheus.MustRegister(requestsMetric)
	prometheus.MustRegister(latencyMetric)
}
