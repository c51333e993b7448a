// Package telemetry records Prometheus metrics for scoring, availability checks,
// slot recommendations, visits and store access.
package telemetry

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/push"
)

// JobName is the Pushgateway job that athome pushes under.
const JobName = "athome"

// Registry is the custom prometheus registry for athome
var Registry = prometheus.NewRegistry()

// factory registers metrics to the custom Registry directly
var factory = promauto.With(Registry)

// =============================================================================
// ENGINE METRICS
// =============================================================================

// ScoresComputedTotal counts scored profiles by resulting category.
var ScoresComputedTotal = factory.NewCounterVec(prometheus.CounterOpts{
	Namespace: "athome",
	Name:      "scores_computed_total",
	Help:      "Total availability scores computed, by category",
}, []string{"category"})

// ScoreValue tracks the distribution of computed scores.
var ScoreValue = factory.NewHistogram(prometheus.HistogramOpts{
	Namespace: "athome",
	Name:      "score_value",
	Help:      "Distribution of computed availability scores",
	Buckets:   []float64{10, 20, 30, 40, 50, 60, 70, 80, 90, 100},
})

// AvailabilityChecksTotal counts availability checks by result.
var AvailabilityChecksTotal = factory.NewCounterVec(prometheus.CounterOpts{
	Namespace: "athome",
	Name:      "availability_checks_total",
	Help:      "Total availability checks, by result (available, unavailable, unknown)",
}, []string{"result"})

// SlotsRecommended tracks how many slots each recommendation returned.
var SlotsRecommended = factory.NewHistogram(prometheus.HistogramOpts{
	Namespace: "athome",
	Name:      "slots_recommended",
	Help:      "Number of slots returned per recommendation",
	Buckets:   []float64{0, 1, 2, 3, 4, 5},
})

// VisitsRecordedTotal counts recorded visits by outcome.
var VisitsRecordedTotal = factory.NewCounterVec(prometheus.CounterOpts{
	Namespace: "athome",
	Name:      "visits_recorded_total",
	Help:      "Total visits recorded, by outcome (home, away)",
}, []string{"outcome"})

// =============================================================================
// STORE METRICS
// =============================================================================

// StoreOperationsTotal counts store calls by operation and status.
var StoreOperationsTotal = factory.NewCounterVec(prometheus.CounterOpts{
	Namespace: "athome",
	Subsystem: "store",
	Name:      "operations_total",
	Help:      "Total profile store operations, by operation and status",
}, []string{"op", "status"})

// StoreDurationSeconds tracks store latency by operation.
var StoreDurationSeconds = factory.NewHistogramVec(prometheus.HistogramOpts{
	Namespace: "athome",
	Subsystem: "store",
	Name:      "duration_seconds",
	Help:      "Time taken by profile store operations",
	Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 1.0},
}, []string{"op"})

// =============================================================================
// Helper Functions
// =============================================================================

// ObserveScore records one computed score.
func ObserveScore(score int, category string) {
	ScoresComputedTotal.WithLabelValues(category).Inc()
	ScoreValue.Observe(float64(score))
}

// ObserveCheck records an availability check; nil means there was no data.
func ObserveCheck(available *bool) {
	result := "unknown"
	if available != nil {
		result = "unavailable"
		if *available {
			result = "available"
		}
	}
	AvailabilityChecksTotal.WithLabelValues(result).Inc()
}

// ObserveSlots records the size of a slot recommendation.
func ObserveSlots(n int) {
	SlotsRecommended.Observe(float64(n))
}

// ObserveVisit records a visit outcome.
func ObserveVisit(wasHome bool) {
	outcome := "away"
	if wasHome {
		outcome = "home"
	}
	VisitsRecordedTotal.WithLabelValues(outcome).Inc()
}

// ObserveStore records a store call that started at start.
func ObserveStore(op string, start time.Time, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	StoreOperationsTotal.WithLabelValues(op, status).Inc()
	StoreDurationSeconds.WithLabelValues(op).Observe(time.Since(start).Seconds())
}

// Push sends everything in Registry to a Pushgateway at url.
func Push(url string) error {
	if url == "" {
		return nil
	}
	if err := push.New(url, JobName).Gatherer(Registry).Push(); err != nil {
		return fmt.Errorf("failed to push metrics to %s: %w", url, err)
	}
	return nil
}
