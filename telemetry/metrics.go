// SPDX-License-Identifier: MIT

package telemetry

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	namespace = "xtalgraph"
	subsystem = "grouping"
)

// Pair outcomes used as the "relation" label of PairsEvaluated.
const (
	RelationNone      = "none"
	RelationSimilar   = "similar"
	RelationReindexed = "reindexed"
)

// Pipeline stages used as the "stage" label of StageDuration.
const (
	StageIngest = "ingest"
	StageGraph  = "graph"
	StageGroups = "groups"
)

// Metrics groups the pipeline collectors.
type Metrics struct {
	// PairsEvaluated counts pair evaluations by relation.
	PairsEvaluated *prometheus.CounterVec
	// ReindexSearches counts operator searches, by whether one was found.
	ReindexSearches *prometheus.CounterVec
	// Excluded counts observations rejected at ingestion, by reason.
	Excluded *prometheus.CounterVec
	// Groups counts groups produced.
	Groups prometheus.Counter
	// StageDuration observes the wall time of each pipeline stage.
	StageDuration *prometheus.HistogramVec
}

// NewMetrics builds the collectors and registers them on reg.
// A nil reg returns unregistered collectors.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		PairsEvaluated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "pairs_evaluated_total",
			Help:      "Cell pairs evaluated, by relation found.",
		}, []string{"relation"}),
		ReindexSearches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "reindex_searches_total",
			Help:      "Change-of-basis searches run, by outcome.",
		}, []string{"found"}),
		Excluded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "observations_excluded_total",
			Help:      "Observations rejected at ingestion, by reason.",
		}, []string{"reason"}),
		Groups: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "groups_total",
			Help:      "Compatible groups produced.",
		}),
		StageDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "stage_duration_seconds",
			Help:      "Wall time per pipeline stage.",
			Buckets:   []float64{.001, .005, .01, .05, .1, .5, 1, 5, 30},
		}, []string{"stage"}),
	}
	if reg == nil {
		return m, nil
	}
	for _, c := range []prometheus.Collector{m.PairsEvaluated, m.ReindexSearches, m.Excluded, m.Groups, m.StageDuration} {
		if err := reg.Register(c); err != nil {
			return nil, fmt.Errorf("telemetry: register: %w", err)
		}
	}

	return m, nil
}

// ObservePair records one pair evaluation.
func (m *Metrics) ObservePair(relation string) {
	if m == nil {
		return
	}
	m.PairsEvaluated.WithLabelValues(relation).Inc()
}

// ObserveSearch records one reindex search.
func (m *Metrics) ObserveSearch(found bool) {
	if m == nil {
		return
	}
	label := "false"
	if found {
		label = "true"
	}
	m.ReindexSearches.WithLabelValues(label).Inc()
}

// ObserveExcluded records one rejected observation.
func (m *Metrics) ObserveExcluded(reason string) {
	if m == nil {
		return
	}
	m.Excluded.WithLabelValues(reason).Inc()
}

// AddGroups adds n produced groups.
func (m *Metrics) AddGroups(n int) {
	if m == nil {
		return
	}
	m.Groups.Add(float64(n))
}

// ObserveStage records the time elapsed since start for stage.
func (m *Metrics) ObserveStage(stage string, start time.Time) {
	if m == nil {
		return
	}
	m.StageDuration.WithLabelValues(stage).Observe(time.Since(start).Seconds())
}
