package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Report outcome label values.
const (
	OutcomeOK    = "ok"
	OutcomeError = "error"
)

var (
	// reportsGenerated counts report computations by report name and outcome.
	reportsGenerated = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reports_generated_total",
			Help: "Total number of analytics reports computed.",
		},
		[]string{"report", "outcome"},
	)

	// reportDuration records how long each report took to compute.
	reportDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "report_duration_seconds",
			Help:    "Duration of analytics report computation in seconds.",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5},
		},
		[]string{"report"},
	)
)

func init() {
	prometheus.MustRegister(reportsGenerated, reportDuration)
}

// ObserveReport records one computation of report that started at start.
// A nil err counts as OutcomeOK.
func ObserveReport(report string, start time.Time, err error) {
	outcome := OutcomeOK
	if err != nil {
		outcome = OutcomeError
	}
	reportsGenerated.WithLabelValues(report, outcome).Inc()
	reportDuration.WithLabelValues(report).Observe(time.Since(start).Seconds())
}

// ReportsGenerated exposes the counter for tests.
func ReportsGenerated() *prometheus.CounterVec { return reportsGenerated }
